package toolkit

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Factory turns declarative descriptors into wired tool instances. It
// resolves each descriptor's service role and operation identifier against
// the OpSets supplied at construction, so unknown roles and operations
// fail at startup instead of at call time.
//
// The factory is a pure, synchronous build step executed once at startup.
type Factory struct {
	services map[string]OpSet
	log      *logrus.Logger
}

// NewFactory creates a factory over the given service-role → OpSet map.
func NewFactory(services map[string]OpSet, log *logrus.Logger) *Factory {
	return &Factory{services: services, log: log}
}

// BuildAll constructs a tool instance for every buildable descriptor.
// A malformed entry is logged and skipped; one bad config never fails
// the whole batch.
func (f *Factory) BuildAll(configs []Descriptor) []*Tool {
	tools := make([]*Tool, 0, len(configs))
	for _, cfg := range configs {
		t, err := f.build(cfg)
		if err != nil {
			f.log.WithField("tool", cfg.Name).Warnf("skipping tool config: %v", err)
			continue
		}
		tools = append(tools, t)
	}
	return tools
}

// BuildAndRegister builds every descriptor and registers the results into
// reg, creating a fresh registry when reg is nil. Registration conflicts
// follow the same partial-failure policy as malformed configs: logged and
// skipped.
func (f *Factory) BuildAndRegister(configs []Descriptor, reg *Registry) *Registry {
	if reg == nil {
		reg = NewRegistry()
	}
	for _, t := range f.BuildAll(configs) {
		if err := reg.Register(t); err != nil {
			f.log.WithField("tool", t.Name()).Warnf("skipping registration: %v", err)
		}
	}
	return reg
}

// BuildNamed builds the single descriptor with the given name.
func (f *Factory) BuildNamed(name string, configs []Descriptor) (*Tool, error) {
	for _, cfg := range configs {
		if cfg.Name == name {
			return f.build(cfg)
		}
	}
	return nil, &NotFoundError{Name: name}
}

func (f *Factory) build(cfg Descriptor) (*Tool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ops, ok := f.services[cfg.Service]
	if !ok {
		return nil, &MalformedConfigError{
			Name:   cfg.Name,
			Reason: fmt.Sprintf("unknown service role %q", cfg.Service),
		}
	}
	op, ok := ops[cfg.Operation]
	if !ok {
		return nil, &MalformedConfigError{
			Name:   cfg.Name,
			Reason: fmt.Sprintf("service %q has no operation %q", cfg.Service, cfg.Operation),
		}
	}
	return newTool(cfg, op, logrus.NewEntry(f.log)), nil
}
