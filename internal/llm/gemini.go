package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultEndpoint is the Gemini generateContent API base URL.
const DefaultEndpoint = "https://generativelanguage.googleapis.com"

// DefaultModel balances speed and cost for short analysis prompts.
const DefaultModel = "gemini-2.5-flash"

// GeminiConfig holds Gemini client settings.
type GeminiConfig struct {
	APIKey          string
	Model           string
	Endpoint        string // overridable for tests
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// DefaultGeminiConfig returns settings tuned for consistent, focused
// analysis output.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:          apiKey,
		Model:           DefaultModel,
		Endpoint:        DefaultEndpoint,
		Temperature:     0.1,
		TopP:            0.8,
		TopK:            40,
		MaxOutputTokens: 2048,
	}
}

// GeminiClient implements Client against the Gemini REST API.
type GeminiClient struct {
	cfg    GeminiConfig
	client *http.Client
	log    *logrus.Entry
}

// NewGeminiClient creates a Gemini client. Empty Model and Endpoint fall
// back to the defaults.
func NewGeminiClient(cfg GeminiConfig, log *logrus.Logger) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		log:    log.WithField("component", "gemini"),
	}
}

// ─── API wire types ──────────────────────────────────────────────────────────

type apiRequest struct {
	Contents         []apiContent `json:"contents"`
	GenerationConfig apiGenConfig `json:"generationConfig"`
}

type apiContent struct {
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

type apiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type apiResponse struct {
	Candidates []struct {
		Content apiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generate sends one prompt and returns the first candidate's text.
func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(apiRequest{
		Contents: []apiContent{{Parts: []apiPart{{Text: prompt}}}},
		GenerationConfig: apiGenConfig{
			Temperature:     c.cfg.Temperature,
			TopP:            c.cfg.TopP,
			TopK:            c.cfg.TopK,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: call gemini: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("llm: gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return "", fmt.Errorf("llm: gemini returned status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("llm: empty gemini response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// generateJSON runs a prompt expected to return JSON and decodes it into
// target, stripping markdown code fences first.
func (c *GeminiClient) generateJSON(ctx context.Context, prompt string, target any) error {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFences(text)), target); err != nil {
		return fmt.Errorf("llm: parse model JSON: %w", err)
	}
	return nil
}

// stripFences removes a surrounding ```json ... ``` (or plain ```) block.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ─── Client implementation ───────────────────────────────────────────────────

// AnalyzeRequirement extracts category, complexity, and risk metadata for
// a requirement. Falls back to a default analysis on any failure.
func (c *GeminiClient) AnalyzeRequirement(ctx context.Context, requirement, projectName string) (RequirementAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this project requirement and reply with JSON only.

Requirement: %s
Project: %s

JSON format:
{
  "category": "functional|non-functional|business|technical",
  "complexity": "low|medium|high",
  "dependencies": ["dep1"],
  "risk_areas": ["risk1"],
  "testing_types": ["unit", "integration", "e2e"],
  "affected_docs": ["README.md"],
  "affected_code_files": ["src/module.go"]
}`, requirement, projectName)

	var out RequirementAnalysis
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		c.log.Warnf("requirement analysis failed, using fallback: %v", err)
		return fallbackRequirementAnalysis(), nil
	}
	return out, nil
}

// AnalyzeFeatureDependency rates the impact of a feature relationship.
func (c *GeminiClient) AnalyzeFeatureDependency(ctx context.Context, featureA, featureB, relationType string) (DependencyAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the impact of this feature relationship and reply with JSON only.

Feature A: %s
Feature B: %s
Relationship: %s

JSON format:
{
  "impact_areas": ["area1"],
  "risk_score": 5,
  "mitigation_strategies": ["strategy1"],
  "affected_tests": ["test1_test.go"],
  "documentation_updates": ["doc1.md"]
}`, featureA, featureB, relationType)

	var out DependencyAnalysis
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		c.log.Warnf("dependency analysis failed, using fallback: %v", err)
		return fallbackDependencyAnalysis(), nil
	}
	return out, nil
}

// AnalyzeCodeChangeImpact rates the blast radius of a code change.
func (c *GeminiClient) AnalyzeCodeChangeImpact(ctx context.Context, filePaths []string, changeType string) (ChangeImpactAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the impact of this code change and reply with JSON only.

Changed files: %s
Change type: %s

JSON format:
{
  "affected_features": ["feature1"],
  "required_tests": ["test1_test.go"],
  "documentation_updates": ["README.md"],
  "risk_level": "low|medium|high|critical",
  "breaking_changes": false,
  "rollback_complexity": "low|medium|high"
}`, strings.Join(filePaths, ", "), changeType)

	var out ChangeImpactAnalysis
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		c.log.Warnf("code change analysis failed, using fallback: %v", err)
		return fallbackChangeImpactAnalysis(), nil
	}
	return out, nil
}

// AnalyzeDocumentStaleness rates whether a document needs updating.
func (c *GeminiClient) AnalyzeDocumentStaleness(ctx context.Context, docPath string, relatedFeatures []string) (StalenessAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze whether this document needs updating and reply with JSON only.

Document: %s
Related features: %s

JSON format:
{
  "needs_update": false,
  "staleness_score": 5,
  "update_priority": "low|medium|high",
  "suggested_sections": ["section1"],
  "estimated_effort": "30min|1h|2h|4h"
}`, docPath, strings.Join(relatedFeatures, ", "))

	var out StalenessAnalysis
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		c.log.Warnf("document staleness analysis failed, using fallback: %v", err)
		return fallbackStalenessAnalysis(), nil
	}
	return out, nil
}

// ProcessNaturalLanguage answers a free-form user message. Unlike the
// analysis calls, failures surface as errors since the text goes straight
// to the user.
func (c *GeminiClient) ProcessNaturalLanguage(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(`You assist with a project memory system that tracks requirements,
features, bugs, code changes, tests, and documentation.

User message: %s

Understand the user's intent, suggest concrete actions, and mention which
memory tools could help. Reply friendly, helpful, and actionable.`, message)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
