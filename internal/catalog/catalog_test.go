package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/minhngv/memgate/internal/toolkit"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubOps builds an OpSet with a no-op operation for each name.
func stubOps(names ...string) toolkit.OpSet {
	ops := make(toolkit.OpSet, len(names))
	for _, name := range names {
		ops[name] = func(ctx context.Context, args map[string]any) (toolkit.Result, error) {
			return toolkit.TextResult("ok"), nil
		}
	}
	return ops
}

func testServices() map[string]toolkit.OpSet {
	return map[string]toolkit.OpSet{
		RoleMemory: stubOps(
			"store_project_requirement",
			"store_feature_dependency",
			"get_tests_to_run",
			"get_related_features",
			"search_memory",
			"store_bug_report",
			"store_code_change",
			"store_user_feedback",
			"get_bug_impact_analysis",
			"analyze_change_impact",
			"assess_regression_risk",
			"get_documents_to_update",
			"get_comprehensive_test_plan",
			"get_memory_stats",
		),
		RoleNLP: stubOps("process_natural_language"),
	}
}

func TestAll_EveryDescriptorValid(t *testing.T) {
	for _, desc := range All() {
		if err := desc.Validate(); err != nil {
			t.Errorf("descriptor %q: %v", desc.Name, err)
		}
	}
}

func TestAll_EveryDescriptorBuilds(t *testing.T) {
	configs := All()
	factory := toolkit.NewFactory(testServices(), testLogger())

	reg := factory.BuildAndRegister(configs, nil)
	if reg.Len() != len(configs) {
		t.Errorf("registered %d tools, want %d; names = %v", reg.Len(), len(configs), reg.Names())
	}
}

func TestAll_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, desc := range All() {
		if seen[desc.Name] {
			t.Errorf("duplicate tool name %q", desc.Name)
		}
		seen[desc.Name] = true
	}
}

func TestAll_ToolCount(t *testing.T) {
	if got := len(All()); got != 15 {
		t.Errorf("All() has %d tools, want 15", got)
	}
	if got := len(CoreTools()); got != 9 {
		t.Errorf("CoreTools() has %d tools, want 9", got)
	}
	if got := len(AdvancedTools()); got != 4 {
		t.Errorf("AdvancedTools() has %d tools, want 4", got)
	}
}

func TestGetRelatedFeatures_ArgMapping(t *testing.T) {
	factory := toolkit.NewFactory(testServices(), testLogger())

	tool, err := factory.BuildNamed("get_related_features", All())
	if err != nil {
		t.Fatalf("BuildNamed failed: %v", err)
	}

	m := tool.Descriptor().ArgMapping
	if m["feature"] != "feature_name" {
		t.Errorf("ArgMapping[feature] = %q, want feature_name", m["feature"])
	}
	if m["max_depth"] != "max_depth" {
		t.Errorf("ArgMapping[max_depth] = %q, want max_depth", m["max_depth"])
	}
}

func TestCoreTools_RequiredFieldsDeclared(t *testing.T) {
	for _, desc := range All() {
		for _, req := range desc.Schema.Required {
			if _, ok := desc.Schema.Properties[req]; !ok {
				t.Errorf("tool %q: required field %q not declared", desc.Name, req)
			}
		}
	}
}
