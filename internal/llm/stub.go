package llm

import (
	"context"
	"fmt"
)

// StubClient is the deterministic Client used for development and tests.
// It returns the same conservative analyses the Gemini client falls back
// to, so behavior downstream is identical whether the model is absent or
// unreachable.
type StubClient struct{}

// NewStubClient creates a stub client.
func NewStubClient() *StubClient {
	return &StubClient{}
}

func (s *StubClient) AnalyzeRequirement(ctx context.Context, requirement, projectName string) (RequirementAnalysis, error) {
	return fallbackRequirementAnalysis(), nil
}

func (s *StubClient) AnalyzeFeatureDependency(ctx context.Context, featureA, featureB, relationType string) (DependencyAnalysis, error) {
	return fallbackDependencyAnalysis(), nil
}

func (s *StubClient) AnalyzeCodeChangeImpact(ctx context.Context, filePaths []string, changeType string) (ChangeImpactAnalysis, error) {
	return fallbackChangeImpactAnalysis(), nil
}

func (s *StubClient) AnalyzeDocumentStaleness(ctx context.Context, docPath string, relatedFeatures []string) (StalenessAnalysis, error) {
	return fallbackStalenessAnalysis(), nil
}

func (s *StubClient) ProcessNaturalLanguage(ctx context.Context, message string) (string, error) {
	return fmt.Sprintf("Stub response for: %s", message), nil
}
