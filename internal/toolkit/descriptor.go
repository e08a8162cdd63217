// Package toolkit implements the configuration-driven tool core: declarative
// descriptors are turned into callable, validated tool instances, registered
// in a registry, and invoked through an executor that never lets a failure
// escape as anything but text.
//
// The design is deliberately data-driven: adding a tool means adding a
// descriptor to a catalog table and an operation to a service's OpSet —
// no new types, no reflection.
package toolkit

import "fmt"

// Property describes one input schema property in JSON-Schema terms.
// The schema is advisory to the caller: beyond required-field presence,
// nothing here is enforced server-side.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Default     any       `json:"default,omitempty"`
	Minimum     *float64  `json:"minimum,omitempty"`
	Maximum     *float64  `json:"maximum,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// InputSchema is the object schema for a tool's arguments.
type InputSchema struct {
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Descriptor is the immutable declarative metadata for one tool. It names
// the tool, describes its input schema, and binds it to an operation on a
// backing service role. Descriptors carry no behavior beyond validation;
// the Factory rejects malformed ones.
type Descriptor struct {
	// Name is the unique tool name exposed over the protocol.
	Name string

	// Description is the human-readable tool description.
	Description string

	// Schema describes the tool's input object.
	Schema InputSchema

	// Service is the backing-service role this tool delegates to
	// (e.g. "memory", "nlp").
	Service string

	// Operation is the identifier of the target operation in the
	// service's OpSet.
	Operation string

	// Label is the human operation label used in success and error text
	// (e.g. "storing project requirement").
	Label string

	// ArgMapping optionally renames call arguments to operation parameter
	// names: operation param -> input argument name. When set, only mapped
	// arguments are forwarded. When nil, arguments pass through unchanged.
	ArgMapping map[string]string
}

// Validate checks the structural invariants the Factory relies on:
// a non-empty name, an operation binding, and required ⊆ properties.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return &MalformedConfigError{Name: d.Name, Reason: "tool name is empty"}
	}
	if d.Service == "" {
		return &MalformedConfigError{Name: d.Name, Reason: "service role is empty"}
	}
	if d.Operation == "" {
		return &MalformedConfigError{Name: d.Name, Reason: "operation identifier is empty"}
	}
	for _, req := range d.Schema.Required {
		if _, ok := d.Schema.Properties[req]; !ok {
			return &MalformedConfigError{
				Name:   d.Name,
				Reason: fmt.Sprintf("required field %q is not declared in properties", req),
			}
		}
	}
	return nil
}

// Schema is the protocol-facing view of a tool: name, description, and
// input schema, as returned by listTools.
type Schema struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}
