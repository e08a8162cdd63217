package toolkit

// Registry maps tool names to tool instances. Entries are added only at
// startup by the factory; afterwards the registry is read-only, so lookups
// from concurrent protocol calls need no synchronization.
type Registry struct {
	tools map[string]*Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register inserts a tool. Registration is strict: a second tool with the
// same name fails with DuplicateNameError instead of replacing the first.
func (r *Registry) Register(t *Tool) error {
	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (*Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return t, nil
}

// Schemas returns every registered tool's schema exactly once, in
// registration order.
func (r *Registry) Schemas() []Schema {
	schemas := make([]Schema, 0, len(r.order))
	for _, name := range r.order {
		schemas = append(schemas, r.tools[name].Schema())
	}
	return schemas
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}
