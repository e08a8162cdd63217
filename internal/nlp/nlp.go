// Package nlp handles free-form natural language messages: a lightweight
// keyword intent pass picks tool suggestions, and the LLM client writes the
// actual response.
package nlp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/minhngv/memgate/internal/llm"
	"github.com/minhngv/memgate/internal/toolkit"
)

// maxMessageLen bounds message size before it reaches the model.
const maxMessageLen = 5000

// Service processes natural language messages.
type Service struct {
	llm llm.Client
	log *logrus.Entry
}

// NewService creates an NLP service over the given LLM client.
func NewService(client llm.Client, log *logrus.Logger) *Service {
	return &Service{
		llm: client,
		log: log.WithField("component", "nlp"),
	}
}

// intentKeywords maps an intent to the keywords that trigger it. Order
// matters: the first matching intent wins.
var intentOrder = []string{"store_requirement", "store_bug", "get_tests", "search", "analyze", "help"}

var intentKeywords = map[string][]string{
	"store_requirement": {"requirement", "feature", "store", "add"},
	"store_bug":         {"bug", "error", "problem", "issue", "crash"},
	"get_tests":         {"test", "run", "verify", "testing"},
	"search":            {"search", "find", "lookup", "query"},
	"analyze":           {"analyze", "impact", "risk", "assess"},
	"help":              {"help", "how", "guide", "explain"},
}

var intentSuggestions = map[string]string{
	"store_requirement": `- store_project_requirement: store a new requirement
- store_feature_dependency: record a dependency between features
- store_user_feedback: store feedback from users`,

	"store_bug": `- store_bug_report: store a detailed bug report
- get_bug_impact_analysis: analyze a bug's impact
- store_code_change: record related code changes`,

	"get_tests": `- get_tests_to_run: list the tests to run
- get_comprehensive_test_plan: build a detailed test plan
- get_regression_risk: assess regression risk`,

	"search": `- search_memory: search the memory system
- get_related_features: find related features
- get_documents_to_update: find documents needing updates`,

	"analyze": `- get_change_impact_analysis: analyze change impact
- get_bug_impact_analysis: analyze bug impact
- get_regression_risk: assess regression risk`,

	"help": `- natural_language_handler: chat with the assistant
- search_memory: look up stored information
- check the other tools exposed by this server`,
}

// Process validates the message, classifies its intent, asks the model for
// a response, and appends intent-matched tool suggestions.
func (s *Service) Process(ctx context.Context, message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", fmt.Errorf("nlp: message is empty")
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "", fmt.Errorf("nlp: message exceeds %d characters", maxMessageLen)
	}

	intent := classifyIntent(trimmed)

	response, err := s.llm.ProcessNaturalLanguage(ctx, trimmed)
	if err != nil {
		return "", fmt.Errorf("nlp: process message: %w", err)
	}

	s.log.WithField("intent", intent).Info("processed natural language message")

	var b strings.Builder
	fmt.Fprintf(&b, "**Assistant Response:**\n\n%s", response)
	if suggestions, ok := intentSuggestions[intent]; ok {
		fmt.Fprintf(&b, "\n\n**Suggested tools:**\n%s", suggestions)
	}
	return b.String(), nil
}

func classifyIntent(message string) string {
	lower := strings.ToLower(message)
	for _, intent := range intentOrder {
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(lower, kw) {
				return intent
			}
		}
	}
	return "general"
}

// Ops exposes the service's operations to the tool layer.
func (s *Service) Ops() toolkit.OpSet {
	return toolkit.OpSet{
		"process_natural_language": func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			message, _ := args["message"].(string)
			text, err := s.Process(ctx, message)
			return toolkit.TextResult(text), err
		},
	}
}
