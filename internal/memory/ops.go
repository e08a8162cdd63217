package memory

import (
	"context"

	"github.com/minhngv/memgate/internal/toolkit"
)

// Ops exposes the service's operations to the tool layer, keyed by the
// operation identifiers tool descriptors reference. Each binding extracts
// the typed arguments and returns the formatted text.
func (s *Service) Ops() toolkit.OpSet {
	return toolkit.OpSet{
		"store_project_requirement": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.StoreRequirement(ctx,
				strArg(args, "requirement"),
				strArg(args, "project_name"),
				strArgDefault(args, "priority", "medium"))
			return toolkit.TextResult(text), err
		},
		"store_feature_dependency": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.StoreFeatureDependency(ctx,
				strArg(args, "feature_a"),
				strArg(args, "feature_b"),
				strArg(args, "relationship_type"),
				strArgDefault(args, "risk_level", "medium"))
			return toolkit.TextResult(text), err
		},
		"store_bug_report": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.StoreBugReport(ctx,
				strArg(args, "title"),
				strArg(args, "description"),
				strArg(args, "severity"),
				strSliceArg(args, "affected_features"))
			return toolkit.TextResult(text), err
		},
		"store_code_change": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.StoreCodeChange(ctx,
				strArg(args, "title"),
				strArg(args, "change_type"),
				strSliceArg(args, "file_paths"),
				intArg(args, "lines_added", 0),
				intArg(args, "lines_removed", 0))
			return toolkit.TextResult(text), err
		},
		"store_user_feedback": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.StoreUserFeedback(ctx,
				strArg(args, "feedback_type"),
				strArg(args, "title"),
				strArg(args, "description"),
				strArgDefault(args, "priority", "medium"))
			return toolkit.TextResult(text), err
		},
		"get_tests_to_run": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.TestsToRun(ctx, strSliceArg(args, "modified_features"))
			return toolkit.TextResult(text), err
		},
		"get_related_features": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.RelatedFeatures(ctx,
				strArg(args, "feature"),
				intArg(args, "max_depth", 2))
			return toolkit.TextResult(text), err
		},
		"search_memory": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.SearchMemory(ctx,
				strArg(args, "query"),
				intArg(args, "limit", 10))
			return toolkit.TextResult(text), err
		},
		"get_bug_impact_analysis": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.BugImpact(ctx, strArg(args, "bug_id"))
			return toolkit.TextResult(text), err
		},
		"analyze_change_impact": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.AnalyzeChangeImpact(ctx,
				strSliceArg(args, "file_paths"),
				strArg(args, "change_type"))
			return toolkit.TextResult(text), err
		},
		"assess_regression_risk": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.AssessRegressionRisk(ctx,
				strSliceArg(args, "changed_features"),
				strArg(args, "change_scope"))
			return toolkit.TextResult(text), err
		},
		"get_documents_to_update": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.DocumentsNeedingUpdate(ctx,
				strSliceArg(args, "feature_changes"),
				strSliceArg(args, "code_changes"))
			return toolkit.TextResult(text), err
		},
		"get_comprehensive_test_plan": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			text, err := s.ComprehensiveTestPlan(ctx,
				strSliceArg(args, "code_changes"),
				strSliceArg(args, "feature_changes"),
				strArg(args, "risk_level"))
			return toolkit.TextResult(text), err
		},
		"get_memory_stats": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			counts, err := s.Stats(ctx)
			return toolkit.StructuredResult(counts), err
		},
	}
}

// ─── Argument extraction ─────────────────────────────────────────────────────
//
// Protocol arguments arrive as decoded JSON, so numbers are float64 and
// arrays are []any. Missing or mistyped optional arguments resolve to the
// zero value or the stated default.

func strArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func strArgDefault(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}

func strSliceArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}
