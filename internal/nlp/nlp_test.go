package nlp

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/minhngv/memgate/internal/llm"
	"github.com/minhngv/memgate/internal/toolkit"
)

func testService() *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(llm.NewStubClient(), log)
}

func TestProcess_RejectsEmptyMessage(t *testing.T) {
	svc := testService()

	for _, msg := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Process(context.Background(), msg); err == nil {
			t.Errorf("Process(%q) = nil error, want rejection", msg)
		}
	}
}

func TestProcess_RejectsOversizedMessage(t *testing.T) {
	svc := testService()

	long := strings.Repeat("a", maxMessageLen+1)
	_, err := svc.Process(context.Background(), long)
	if err == nil {
		t.Fatal("Process = nil error, want length rejection")
	}
	if !strings.Contains(err.Error(), "5000") {
		t.Errorf("error = %v, want the limit in the message", err)
	}
}

func TestProcess_LimitCountsRunesNotBytes(t *testing.T) {
	svc := testService()

	// 3000 runes but 9000 bytes; must be accepted.
	msg := strings.Repeat("ệ", 3000)
	if _, err := svc.Process(context.Background(), msg); err != nil {
		t.Errorf("Process(3000-rune message) = %v, want nil", err)
	}

	if _, err := svc.Process(context.Background(), strings.Repeat("ệ", maxMessageLen+1)); err == nil {
		t.Error("Process = nil error, want rune-count rejection")
	}
}

func TestProcess_IncludesModelResponseAndSuggestions(t *testing.T) {
	svc := testService()

	got, err := svc.Process(context.Background(), "I found a bug in the login flow")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !strings.Contains(got, "Stub response for: I found a bug in the login flow") {
		t.Errorf("output = %q, want model response", got)
	}
	if !strings.Contains(got, "store_bug_report") {
		t.Errorf("output = %q, want bug-intent suggestions", got)
	}
}

func TestProcess_GeneralIntentHasNoSuggestions(t *testing.T) {
	svc := testService()

	got, err := svc.Process(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if strings.Contains(got, "Suggested tools") {
		t.Errorf("output = %q, general intent should carry no suggestions", got)
	}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"please store this requirement", "store_requirement"},
		{"there is an error in checkout", "store_bug"},
		{"which tests should I run?", "get_tests"},
		{"find everything about payments", "search"},
		{"analyze the impact of this refactor", "analyze"},
		{"how does this work?", "help"},
		{"good morning", "general"},
	}
	for _, tt := range tests {
		if got := classifyIntent(tt.message); got != tt.want {
			t.Errorf("classifyIntent(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestOps_ProcessNaturalLanguage(t *testing.T) {
	svc := testService()
	ops := svc.Ops()

	op, ok := ops["process_natural_language"]
	if !ok {
		t.Fatal("Ops missing process_natural_language")
	}

	res, err := op(context.Background(), map[string]any{"message": "search for auth notes"})
	if err != nil {
		t.Fatalf("operation failed: %v", err)
	}
	text, ok := res.(toolkit.TextResult)
	if !ok {
		t.Fatalf("result type = %T, want TextResult", res)
	}
	if !strings.Contains(string(text), "search_memory") {
		t.Errorf("result = %q, want search-intent suggestions", text)
	}
}
