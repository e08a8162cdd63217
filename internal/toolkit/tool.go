package toolkit

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Tool is a runtime-bound tool instance: one descriptor paired with one
// operation closure. Instances are created by the Factory at startup and
// immutable afterwards, so concurrent Execute calls need no locking —
// safety under concurrency is the backing service's responsibility.
type Tool struct {
	desc Descriptor
	op   Operation
	log  *logrus.Entry
}

func newTool(desc Descriptor, op Operation, log *logrus.Entry) *Tool {
	return &Tool{desc: desc, op: op, log: log}
}

// Name returns the tool's unique name.
func (t *Tool) Name() string {
	return t.desc.Name
}

// Descriptor returns the tool's declarative metadata.
func (t *Tool) Descriptor() Descriptor {
	return t.desc
}

// Schema returns the protocol-facing schema for enumeration.
func (t *Tool) Schema() Schema {
	return Schema{
		Name:        t.desc.Name,
		Description: t.desc.Description,
		InputSchema: t.desc.Schema,
	}
}

// Validate checks that every required schema field is present in args.
// Types and enum membership are not checked; the schema is advisory.
func (t *Tool) Validate(args map[string]any) error {
	for _, field := range t.desc.Schema.Required {
		if _, ok := args[field]; !ok {
			return &MissingFieldError{Tool: t.desc.Name, Field: field}
		}
	}
	return nil
}

// Execute validates args, invokes the bound operation, and renders the
// result. It never returns an error or panics: every failure path —
// missing fields, backing-service errors, panics inside the operation —
// resolves to a textual result labelled with the operation label.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			t.log.WithField("tool", t.desc.Name).Errorf("panic during execution: %v", r)
			out = t.failureText(fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := t.Validate(args); err != nil {
		return t.failureText(err)
	}

	res, err := t.op(ctx, t.callArgs(args))
	if err != nil {
		t.log.WithField("tool", t.desc.Name).Warnf("operation failed: %v", err)
		return t.failureText(err)
	}
	return renderResult(t.desc.Label, res)
}

// callArgs computes the concrete operation arguments: when an argument
// mapping is configured it selects and renames keys, otherwise arguments
// pass through unchanged.
func (t *Tool) callArgs(args map[string]any) map[string]any {
	if len(t.desc.ArgMapping) == 0 {
		return args
	}
	mapped := make(map[string]any, len(t.desc.ArgMapping))
	for param, input := range t.desc.ArgMapping {
		if v, ok := args[input]; ok {
			mapped[param] = v
		}
	}
	return mapped
}

func (t *Tool) failureText(err error) string {
	return fmt.Sprintf("Error %s: %v", t.desc.Label, err)
}
