// Package llm defines the language-model collaborator used to enrich
// memory operations, with a Gemini REST implementation and a deterministic
// stub. Which one runs is an explicit construction choice made from
// configuration, never a silent fallback.
package llm

import "context"

// Client is the capability surface the memory and NLP services need from
// a language model. Analysis calls degrade gracefully: implementations
// return a conservative default analysis instead of an error when the
// model is unreachable or returns malformed output. ProcessNaturalLanguage
// returns errors, since its output goes straight to the user.
type Client interface {
	AnalyzeRequirement(ctx context.Context, requirement, projectName string) (RequirementAnalysis, error)
	AnalyzeFeatureDependency(ctx context.Context, featureA, featureB, relationType string) (DependencyAnalysis, error)
	AnalyzeCodeChangeImpact(ctx context.Context, filePaths []string, changeType string) (ChangeImpactAnalysis, error)
	AnalyzeDocumentStaleness(ctx context.Context, docPath string, relatedFeatures []string) (StalenessAnalysis, error)
	ProcessNaturalLanguage(ctx context.Context, message string) (string, error)
}

// RequirementAnalysis is the model's structured read of a requirement.
type RequirementAnalysis struct {
	Category          string   `json:"category"`
	Complexity        string   `json:"complexity"`
	Dependencies      []string `json:"dependencies"`
	RiskAreas         []string `json:"risk_areas"`
	TestingTypes      []string `json:"testing_types"`
	AffectedDocs      []string `json:"affected_docs"`
	AffectedCodeFiles []string `json:"affected_code_files"`
}

// DependencyAnalysis is the model's impact read of a feature relationship.
type DependencyAnalysis struct {
	ImpactAreas          []string `json:"impact_areas"`
	RiskScore            int      `json:"risk_score"`
	MitigationStrategies []string `json:"mitigation_strategies"`
	AffectedTests        []string `json:"affected_tests"`
	DocumentationUpdates []string `json:"documentation_updates"`
}

// ChangeImpactAnalysis is the model's impact read of a code change.
type ChangeImpactAnalysis struct {
	AffectedFeatures     []string `json:"affected_features"`
	RequiredTests        []string `json:"required_tests"`
	DocumentationUpdates []string `json:"documentation_updates"`
	RiskLevel            string   `json:"risk_level"`
	BreakingChanges      bool     `json:"breaking_changes"`
	RollbackComplexity   string   `json:"rollback_complexity"`
}

// StalenessAnalysis is the model's read of a document's update needs.
type StalenessAnalysis struct {
	NeedsUpdate       bool     `json:"needs_update"`
	StalenessScore    int      `json:"staleness_score"`
	UpdatePriority    string   `json:"update_priority"`
	SuggestedSections []string `json:"suggested_sections"`
	EstimatedEffort   string   `json:"estimated_effort"`
}

// ─── Fallback analyses ───────────────────────────────────────────────────────
//
// Conservative defaults used when the model call or response parsing fails.

func fallbackRequirementAnalysis() RequirementAnalysis {
	return RequirementAnalysis{
		Category:     "functional",
		Complexity:   "medium",
		TestingTypes: []string{"unit"},
	}
}

func fallbackDependencyAnalysis() DependencyAnalysis {
	return DependencyAnalysis{
		ImpactAreas:          []string{"unknown"},
		RiskScore:            5,
		MitigationStrategies: []string{"thorough_testing"},
	}
}

func fallbackChangeImpactAnalysis() ChangeImpactAnalysis {
	return ChangeImpactAnalysis{
		RiskLevel:          "medium",
		RollbackComplexity: "medium",
	}
}

func fallbackStalenessAnalysis() StalenessAnalysis {
	return StalenessAnalysis{
		StalenessScore:  5,
		UpdatePriority:  "medium",
		EstimatedEffort: "1h",
	}
}
