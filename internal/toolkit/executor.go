package toolkit

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Executor dispatches (name, arguments) calls to registered tools. It is
// stateless beyond its registry reference and is a total function from
// calls to text: unknown names, malformed arguments, and backing-service
// failures all resolve to a textual result, never an error. The transport
// has no structured error channel, so this is the load-bearing contract.
type Executor struct {
	registry *Registry
	log      *logrus.Logger
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(registry *Registry, log *logrus.Logger) *Executor {
	return &Executor{registry: registry, log: log}
}

// ExecuteTool resolves the named tool and executes it with args. The
// returned text names the missing tool when lookup fails.
func (e *Executor) ExecuteTool(ctx context.Context, name string, args map[string]any) string {
	tool, err := e.registry.Lookup(name)
	if err != nil {
		e.log.WithField("tool", name).Warn("call for unknown tool")
		return fmt.Sprintf("Error: %v", err)
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	e.log.WithFields(logrus.Fields{"tool": name, "args": keys}).Info("executing tool")

	return tool.Execute(ctx, args)
}
