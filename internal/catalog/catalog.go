// Package catalog holds the declarative tool descriptors: one table entry
// per exposed tool, bound to a backing-service operation. Adding a tool is
// adding an entry here plus an operation in the owning service.
package catalog

import "github.com/minhngv/memgate/internal/toolkit"

// Backing-service roles descriptors bind to.
const (
	RoleMemory = "memory"
	RoleNLP    = "nlp"
)

// CoreTools returns the descriptors for the core storage and query tools.
func CoreTools() []toolkit.Descriptor {
	return []toolkit.Descriptor{
		{
			Name:        "store_project_requirement",
			Description: "Store a project requirement in the memory system with automatic analysis",
			Service:     RoleMemory,
			Operation:   "store_project_requirement",
			Label:       "storing project requirement",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"requirement": {
						Type:        "string",
						Description: "The requirement to store",
					},
					"project_name": {
						Type:        "string",
						Description: "Project name",
					},
					"priority": {
						Type:        "string",
						Enum:        []string{"low", "medium", "high", "critical"},
						Description: "Priority level",
						Default:     "medium",
					},
				},
				Required: []string{"requirement", "project_name"},
			},
		},
		{
			Name:        "store_feature_dependency",
			Description: "Store a dependency between features with impact analysis",
			Service:     RoleMemory,
			Operation:   "store_feature_dependency",
			Label:       "storing feature dependency",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"feature_a": {
						Type:        "string",
						Description: "First feature",
					},
					"feature_b": {
						Type:        "string",
						Description: "Second feature",
					},
					"relationship_type": {
						Type:        "string",
						Enum:        []string{"depends_on", "conflicts_with", "enhances", "blocks", "related_to"},
						Description: "Relationship type",
					},
					"risk_level": {
						Type:        "string",
						Enum:        []string{"low", "medium", "high"},
						Description: "Risk level",
						Default:     "medium",
					},
				},
				Required: []string{"feature_a", "feature_b", "relationship_type"},
			},
		},
		{
			Name:        "get_tests_to_run",
			Description: "List the tests to run for a set of modified features",
			Service:     RoleMemory,
			Operation:   "get_tests_to_run",
			Label:       "getting test recommendations",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"modified_features": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Modified feature names or IDs",
					},
				},
				Required: []string{"modified_features"},
			},
		},
		{
			Name:        "get_related_features",
			Description: "Find features related to the given feature",
			Service:     RoleMemory,
			Operation:   "get_related_features",
			Label:       "finding related features",
			// The public argument is feature_name; the operation takes
			// feature. The mapping keeps the wire contract stable while the
			// operation keeps its natural parameter name.
			ArgMapping: map[string]string{
				"feature":   "feature_name",
				"max_depth": "max_depth",
			},
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"feature_name": {
						Type:        "string",
						Description: "Feature to find relations for",
					},
					"max_depth": {
						Type:        "integer",
						Description: "Maximum graph traversal depth",
						Default:     2,
						Minimum:     fp(1),
						Maximum:     fp(5),
					},
				},
				Required: []string{"feature_name"},
			},
		},
		{
			Name:        "search_memory",
			Description: "Search the memory system with a text query",
			Service:     RoleMemory,
			Operation:   "search_memory",
			Label:       "searching memory",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"query": {
						Type:        "string",
						Description: "Search keywords",
					},
					"limit": {
						Type:        "integer",
						Description: "Maximum number of results",
						Default:     10,
						Minimum:     fp(1),
						Maximum:     fp(50),
					},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        "store_bug_report",
			Description: "Store a bug report with automatic categorization",
			Service:     RoleMemory,
			Operation:   "store_bug_report",
			Label:       "storing bug report",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"title":       {Type: "string", Description: "Bug title"},
					"description": {Type: "string", Description: "Detailed bug description"},
					"severity": {
						Type:        "string",
						Enum:        []string{"trivial", "minor", "major", "critical", "blocker"},
						Description: "Bug severity",
					},
					"affected_features": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Affected features",
					},
				},
				Required: []string{"title", "description", "severity"},
			},
		},
		{
			Name:        "store_code_change",
			Description: "Store a code change with impact analysis",
			Service:     RoleMemory,
			Operation:   "store_code_change",
			Label:       "storing code change",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"title": {Type: "string", Description: "Change title"},
					"change_type": {
						Type:        "string",
						Enum:        []string{"new_feature", "enhancement", "bug_fix", "refactor", "performance", "security"},
						Description: "Change type",
					},
					"file_paths": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Changed file paths",
					},
					"lines_added":   {Type: "integer", Description: "Lines added"},
					"lines_removed": {Type: "integer", Description: "Lines removed"},
				},
				Required: []string{"title", "change_type", "file_paths"},
			},
		},
		{
			Name:        "store_user_feedback",
			Description: "Store user feedback with automatic categorization",
			Service:     RoleMemory,
			Operation:   "store_user_feedback",
			Label:       "storing user feedback",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"feedback_type": {
						Type:        "string",
						Enum:        []string{"bug_report", "feature_request", "improvement", "question", "compliment"},
						Description: "Feedback type",
					},
					"title":       {Type: "string", Description: "Feedback title"},
					"description": {Type: "string", Description: "Detailed feedback"},
					"priority": {
						Type:        "string",
						Enum:        []string{"low", "medium", "high", "critical"},
						Description: "Priority level",
					},
				},
				Required: []string{"feedback_type", "title", "description"},
			},
		},
		{
			Name:        "get_bug_impact_analysis",
			Description: "Analyze the comprehensive impact of a stored bug",
			Service:     RoleMemory,
			Operation:   "get_bug_impact_analysis",
			Label:       "analyzing bug impact",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"bug_id": {Type: "string", Description: "Bug ID to analyze"},
				},
				Required: []string{"bug_id"},
			},
		},
	}
}

// AdvancedTools returns the descriptors for the comprehensive analysis tools.
func AdvancedTools() []toolkit.Descriptor {
	return []toolkit.Descriptor{
		{
			Name:        "get_change_impact_analysis",
			Description: "Analyze the impact of code changes and recommend a testing strategy",
			Service:     RoleMemory,
			Operation:   "analyze_change_impact",
			Label:       "analyzing change impact",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"file_paths": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Changed file paths",
					},
					"change_type": {
						Type:        "string",
						Enum:        []string{"new_feature", "enhancement", "bug_fix", "refactor", "performance", "security"},
						Description: "Change type",
					},
				},
				Required: []string{"file_paths"},
			},
		},
		{
			Name:        "get_regression_risk",
			Description: "Assess regression risk and recommend mitigation strategies",
			Service:     RoleMemory,
			Operation:   "assess_regression_risk",
			Label:       "assessing regression risk",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"changed_features": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Changed feature IDs",
					},
					"change_scope": {
						Type:        "string",
						Enum:        []string{"small", "medium", "large"},
						Description: "Scope of the change",
					},
				},
				Required: []string{"changed_features"},
			},
		},
		{
			Name:        "get_documents_to_update",
			Description: "List the documents needing updates for code or feature changes",
			Service:     RoleMemory,
			Operation:   "get_documents_to_update",
			Label:       "getting documents to update",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"feature_changes": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Changed features",
					},
					"code_changes": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Changed code files",
					},
				},
				Required: []string{"feature_changes", "code_changes"},
			},
		},
		{
			Name:        "get_comprehensive_test_plan",
			Description: "Build a comprehensive test plan for code and feature changes",
			Service:     RoleMemory,
			Operation:   "get_comprehensive_test_plan",
			Label:       "creating comprehensive test plan",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"code_changes": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Changed code files",
					},
					"feature_changes": {
						Type:        "array",
						Items:       &toolkit.Property{Type: "string"},
						Description: "Changed features",
					},
					"risk_level": {
						Type:        "string",
						Enum:        []string{"low", "medium", "high", "critical"},
						Description: "Risk level of the change",
					},
				},
				Required: []string{"code_changes", "feature_changes"},
			},
		},
	}
}

// SpecialTools returns the descriptors outside the memory storage flow:
// free-form chat and server statistics.
func SpecialTools() []toolkit.Descriptor {
	return []toolkit.Descriptor{
		{
			Name:        "natural_language_handler",
			Description: "Process a natural language message and suggest relevant tools",
			Service:     RoleNLP,
			Operation:   "process_natural_language",
			Label:       "processing natural language",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{
					"message": {
						Type:        "string",
						Description: "The message to process",
					},
				},
				Required: []string{"message"},
			},
		},
		{
			Name:        "get_memory_stats",
			Description: "Report entity counts for everything stored in memory",
			Service:     RoleMemory,
			Operation:   "get_memory_stats",
			Label:       "getting memory statistics",
			Schema: toolkit.InputSchema{
				Properties: map[string]toolkit.Property{},
			},
		},
	}
}

// All returns every tool descriptor in registration order.
func All() []toolkit.Descriptor {
	var out []toolkit.Descriptor
	out = append(out, CoreTools()...)
	out = append(out, AdvancedTools()...)
	out = append(out, SpecialTools()...)
	return out
}

func fp(v float64) *float64 {
	return &v
}
