// Package server wires all components and creates the MCP server instance.
//
// This is the composition root: it creates the concrete repository, LLM
// client, and services, builds the tool registry from the catalog, and
// bridges protocol calls to the executor. No business logic lives here —
// only wiring.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/minhngv/memgate/internal/catalog"
	"github.com/minhngv/memgate/internal/config"
	"github.com/minhngv/memgate/internal/llm"
	"github.com/minhngv/memgate/internal/memory"
	"github.com/minhngv/memgate/internal/nlp"
	"github.com/minhngv/memgate/internal/toolkit"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with every catalog tool
// registered. This is the single place where all dependencies are resolved.
//
// The returned cleanup function closes the repository and must be called
// on shutdown (typically via defer). It is always non-nil.
func New(cfg config.Config, log *logrus.Logger) (*server.MCPServer, func(), error) {
	// --- Storage ---

	var repo memory.Repository
	if cfg.Memory.Path != "" {
		sqlRepo, err := memory.NewSQLiteRepository(cfg.Memory.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("creating repository: %w", err)
		}
		repo = sqlRepo
		log.WithField("path", cfg.Memory.Path).Info("using sqlite repository")
	} else {
		repo = memory.NewMapRepository()
		log.Info("using in-memory repository")
	}

	cleanup := func() {
		if err := repo.Close(); err != nil {
			log.Warnf("repository close: %v", err)
		}
	}

	// --- LLM client ---

	var client llm.Client
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		gcfg := llm.DefaultGeminiConfig(cfg.LLM.APIKey)
		if cfg.LLM.Model != "" {
			gcfg.Model = cfg.LLM.Model
		}
		if cfg.LLM.Temperature > 0 {
			gcfg.Temperature = cfg.LLM.Temperature
		}
		if cfg.LLM.TopP > 0 {
			gcfg.TopP = cfg.LLM.TopP
		}
		if cfg.LLM.TopK > 0 {
			gcfg.TopK = cfg.LLM.TopK
		}
		if cfg.LLM.MaxOutputTokens > 0 {
			gcfg.MaxOutputTokens = cfg.LLM.MaxOutputTokens
		}
		client = llm.NewGeminiClient(gcfg, log)
		log.WithField("model", gcfg.Model).Info("using gemini llm client")
	default:
		client = llm.NewStubClient()
		log.Info("using stub llm client")
	}

	// --- Services and tool registry ---

	memSvc := memory.NewService(repo, client, log)
	nlpSvc := nlp.NewService(client, log)

	factory := toolkit.NewFactory(map[string]toolkit.OpSet{
		catalog.RoleMemory: memSvc.Ops(),
		catalog.RoleNLP:    nlpSvc.Ops(),
	}, log)

	registry := factory.BuildAndRegister(catalog.All(), nil)
	executor := toolkit.NewExecutor(registry, log)

	log.WithField("tools", registry.Len()).Info("tool registry built")

	// --- MCP server ---

	s := server.NewMCPServer(
		cfg.ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	for _, sc := range registry.Schemas() {
		s.AddTool(mcpTool(sc), toolHandler(executor, sc.Name))
	}

	return s, cleanup, nil
}

// noop is the default cleanup when construction fails before a repository
// exists.
func noop() {}

// mcpTool converts a catalog schema into the protocol tool definition.
func mcpTool(sc toolkit.Schema) mcp.Tool {
	props := make(map[string]any, len(sc.InputSchema.Properties))
	for name, p := range sc.InputSchema.Properties {
		// Round-trip through JSON so the schema keeps exactly the fields
		// the property declares.
		data, err := json.Marshal(p)
		if err != nil {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		props[name] = m
	}

	return mcp.Tool{
		Name:        sc.Name,
		Description: sc.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   sc.InputSchema.Required,
		},
	}
}

// toolHandler bridges one protocol tool call to the executor. Executor
// output is always text, so the handler never returns an error.
func toolHandler(ex *toolkit.Executor, name string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(ex.ExecuteTool(ctx, name, req.GetArguments())), nil
	}
}

// serverInstructions tells the connected assistant how to use the memory
// tools effectively.
func serverInstructions() string {
	return `You have access to memgate, a project memory MCP server that tracks
requirements, features, bugs, code changes, tests, documents, and user
feedback, and derives impact analyses from them.

## When to store
- New requirement discussed: store_project_requirement
- Dependency between features discovered: store_feature_dependency
- Bug found or reported: store_bug_report
- Code committed or about to be committed: store_code_change
- User feedback received: store_user_feedback

## When to query
- Before changing code: get_change_impact_analysis and get_regression_risk
- Before a release: get_comprehensive_test_plan
- After changing features: get_tests_to_run and get_documents_to_update
- To recall past context: search_memory and get_related_features
- To understand a bug's blast radius: get_bug_impact_analysis

## Free-form requests
Use natural_language_handler when the user describes what they want in
plain language and you are unsure which tool applies. It suggests the
right tools for the intent.

Store early and often — the analyses are only as good as what is in
memory. Use get_memory_stats to see what has been captured so far.`
}
