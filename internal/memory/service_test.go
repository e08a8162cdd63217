package memory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minhngv/memgate/internal/llm"
	"github.com/minhngv/memgate/internal/toolkit"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestService creates a service over an in-memory repository and the
// stub LLM client, with deterministic IDs and time.
func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMapRepository(), llm.NewStubClient(), testLogger())

	counter := 0
	svc.newID = func(prefix string) string {
		counter++
		return fmt.Sprintf("%s_%04d", prefix, counter)
	}
	svc.now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

// ─── Storage ─────────────────────────────────────────────────────────────────

func TestStoreRequirement(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.StoreRequirement(context.Background(), "support SSO login", "webapp", "high")
	if err != nil {
		t.Fatalf("StoreRequirement failed: %v", err)
	}
	if !strings.Contains(got, "Stored requirement: req_0001") {
		t.Errorf("output = %q, want stored ID", got)
	}
	// Stub analysis defaults.
	if !strings.Contains(got, "Category: functional") || !strings.Contains(got, "Complexity: medium") {
		t.Errorf("output = %q, want stub analysis defaults", got)
	}

	req, err := getEntity[Requirement](svc.repo, KindRequirement, "req_0001")
	if err != nil {
		t.Fatalf("stored requirement not found: %v", err)
	}
	if req.Title != "support SSO login" || req.Priority != PriorityHigh {
		t.Errorf("stored requirement = %+v", req)
	}
}

func TestStoreFeatureDependency_PersistsRelationship(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.StoreFeatureDependency(context.Background(), "auth", "billing", "depends_on", "high")
	if err != nil {
		t.Fatalf("StoreFeatureDependency failed: %v", err)
	}
	if !strings.Contains(got, "auth depends_on billing") {
		t.Errorf("output = %q, want relationship summary", got)
	}
	if !strings.Contains(got, "Risk Score: 5/10") {
		t.Errorf("output = %q, want stub risk score", got)
	}

	rel, err := getEntity[Relationship](svc.repo, KindRelationship, "dep_0001")
	if err != nil {
		t.Fatalf("stored relationship not found: %v", err)
	}
	if rel.SourceID != "auth" || rel.TargetID != "billing" || rel.Type != RelDependsOn {
		t.Errorf("stored relationship = %+v", rel)
	}
}

func TestStoreBugReport_SeverityDrivesPriority(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.StoreBugReport(context.Background(), "crash on login", "nil deref", "blocker", []string{"auth"})
	if err != nil {
		t.Fatalf("StoreBugReport failed: %v", err)
	}
	if !strings.Contains(got, "Priority: high") {
		t.Errorf("output = %q, want high priority for blocker", got)
	}
	if !strings.Contains(got, "Impact Score: 8") {
		t.Errorf("output = %q, want impact score 8", got)
	}

	got, err = svc.StoreBugReport(context.Background(), "typo", "label typo", "trivial", nil)
	if err != nil {
		t.Fatalf("StoreBugReport failed: %v", err)
	}
	if !strings.Contains(got, "Priority: medium") {
		t.Errorf("output = %q, want medium priority for trivial", got)
	}
}

func TestStoreCodeChange(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.StoreCodeChange(context.Background(), "refactor auth", "refactor", []string{"a.go", "b.go"}, 120, 40)
	if err != nil {
		t.Fatalf("StoreCodeChange failed: %v", err)
	}
	if !strings.Contains(got, "Stored code change: change_0001") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "Lines: +120/-40") {
		t.Errorf("output = %q, want line summary", got)
	}

	change, err := getEntity[CodeChange](svc.repo, KindCodeChange, "change_0001")
	if err != nil {
		t.Fatalf("stored change not found: %v", err)
	}
	if change.Type != ChangeRefactor || len(change.FilePaths) != 2 {
		t.Errorf("stored change = %+v", change)
	}
}

func TestStoreUserFeedback(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.StoreUserFeedback(context.Background(), "feature_request", "dark mode", "please add dark mode", "low")
	if err != nil {
		t.Fatalf("StoreUserFeedback failed: %v", err)
	}
	if !strings.Contains(got, "Value Score: 3") {
		t.Errorf("output = %q, want feature request value score", got)
	}
}

// ─── Queries ─────────────────────────────────────────────────────────────────

func TestSearchMemory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.StoreRequirement(ctx, "support SSO login", "webapp", "high"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StoreBugReport(ctx, "SSO redirect loop", "loops forever", "major", nil); err != nil {
		t.Fatal(err)
	}

	got, err := svc.SearchMemory(ctx, "sso", 10)
	if err != nil {
		t.Fatalf("SearchMemory failed: %v", err)
	}
	if !strings.Contains(got, "(2 found)") {
		t.Errorf("output = %q, want 2 hits", got)
	}
	if !strings.Contains(got, "req_0001") || !strings.Contains(got, "bug_0002") {
		t.Errorf("output = %q, want both entity IDs", got)
	}

	got, err = svc.SearchMemory(ctx, "sso", 1)
	if err != nil {
		t.Fatalf("SearchMemory failed: %v", err)
	}
	if !strings.Contains(got, "(1 found)") {
		t.Errorf("output = %q, want limit applied", got)
	}

	got, err = svc.SearchMemory(ctx, "nonexistent", 10)
	if err != nil {
		t.Fatalf("SearchMemory failed: %v", err)
	}
	if !strings.Contains(got, "No results found") {
		t.Errorf("output = %q, want no-results message", got)
	}
}

func TestRelatedFeatures_TraversesDepth(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// auth -> billing -> invoicing, and search -> index off to the side.
	edges := [][2]string{{"auth", "billing"}, {"billing", "invoicing"}, {"search", "index"}}
	for _, e := range edges {
		if _, err := svc.StoreFeatureDependency(ctx, e[0], e[1], "depends_on", "low"); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.RelatedFeatures(ctx, "auth", 1)
	if err != nil {
		t.Fatalf("RelatedFeatures failed: %v", err)
	}
	if !strings.Contains(got, "billing") {
		t.Errorf("depth 1 output = %q, want direct neighbor", got)
	}
	if strings.Contains(got, "invoicing") {
		t.Errorf("depth 1 output = %q, should not reach two hops", got)
	}

	got, err = svc.RelatedFeatures(ctx, "auth", 2)
	if err != nil {
		t.Fatalf("RelatedFeatures failed: %v", err)
	}
	if !strings.Contains(got, "invoicing") {
		t.Errorf("depth 2 output = %q, want two-hop neighbor", got)
	}
	if strings.Contains(got, "index") {
		t.Errorf("output = %q, disconnected feature should not appear", got)
	}

	got, err = svc.RelatedFeatures(ctx, "orphan", 2)
	if err != nil {
		t.Fatalf("RelatedFeatures failed: %v", err)
	}
	if !strings.Contains(got, "No related features found") {
		t.Errorf("output = %q, want empty-result message", got)
	}
}

func TestBugImpact(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.StoreBugReport(ctx, "crash", "boom", "critical", []string{"auth", "billing"}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.BugImpact(ctx, "bug_0001")
	if err != nil {
		t.Fatalf("BugImpact failed: %v", err)
	}
	if !strings.Contains(got, "Impact Score: 12/10") {
		t.Errorf("output = %q, want impact 12", got)
	}
	if !strings.Contains(got, "Priority: HIGH") {
		t.Errorf("output = %q, want HIGH priority", got)
	}
	if !strings.Contains(got, "Estimated Fix Time: 4-8 hours") {
		t.Errorf("output = %q, want fix time estimate", got)
	}
}

func TestBugImpact_UnknownBug(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.BugImpact(context.Background(), "bug_ghost")
	if err == nil {
		t.Fatal("BugImpact = nil error, want not-found error")
	}
	if !strings.Contains(err.Error(), "bug_ghost") {
		t.Errorf("error = %v, want it to name the bug", err)
	}
}

// ─── Comprehensive analyses ──────────────────────────────────────────────────

func TestDocumentsNeedingUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc := Document{
		ID:              "doc_1",
		Title:           "Auth Guide",
		FilePath:        "docs/auth.md",
		Type:            "USER_GUIDE",
		RelatedFeatures: []string{"auth"},
		UpdateFrequency: "on_change",
		LastUpdated:     svc.now().AddDate(0, 0, -14),
	}
	if err := svc.putJSON(KindDocument, doc.ID, doc); err != nil {
		t.Fatal(err)
	}

	got, err := svc.DocumentsNeedingUpdate(ctx, []string{"auth"}, nil)
	if err != nil {
		t.Fatalf("DocumentsNeedingUpdate failed: %v", err)
	}
	if !strings.Contains(got, "Auth Guide") || !strings.Contains(got, "Priority: HIGH") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "Staleness: 2.0/10") {
		t.Errorf("output = %q, want two-week staleness on on_change doc", got)
	}
	// Effort comes from the model's staleness analysis (stub default).
	if !strings.Contains(got, "Estimated Effort: 1h") {
		t.Errorf("output = %q, want model effort estimate", got)
	}

	got, err = svc.DocumentsNeedingUpdate(ctx, []string{"billing"}, nil)
	if err != nil {
		t.Fatalf("DocumentsNeedingUpdate failed: %v", err)
	}
	if got != "No documents need updating." {
		t.Errorf("output = %q, want clean report", got)
	}
}

func TestAnalyzeChangeImpact(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	feature := Feature{ID: "f1", Name: "auth", FilePaths: []string{"src/auth.go"}}
	if err := svc.putJSON(KindFeature, feature.ID, feature); err != nil {
		t.Fatal(err)
	}
	crit := Test{ID: "t1", Name: "auth flow", Type: TestE2E}
	if err := svc.putJSON(KindTest, crit.ID, crit); err != nil {
		t.Fatal(err)
	}

	got, err := svc.AnalyzeChangeImpact(ctx, []string{"src/auth.go"}, "security")
	if err != nil {
		t.Fatalf("AnalyzeChangeImpact failed: %v", err)
	}
	if !strings.Contains(got, "[feature] auth (high impact") {
		t.Errorf("output = %q, want high-impact feature entry", got)
	}
	if !strings.Contains(got, "Recommended Tests: t1") {
		t.Errorf("output = %q, want critical test recommendation", got)
	}
}

func TestAssessRegressionRisk(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	got, err := svc.AssessRegressionRisk(ctx, []string{"auth"}, "small")
	if err != nil {
		t.Fatalf("AssessRegressionRisk failed: %v", err)
	}
	if !strings.Contains(got, "Risk Score: 3") || !strings.Contains(got, "Risk Level: LOW") {
		t.Errorf("output = %q, want low risk", got)
	}
	if !strings.Contains(got, "Standard deployment process") {
		t.Errorf("output = %q, want low-risk mitigation", got)
	}
}

func TestComprehensiveTestPlan(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cov := Coverage{ID: "cov_1", TestFile: "auth_test.go", CoveredFiles: []string{"src/auth.go"}}
	if err := svc.putJSON(KindCoverage, cov.ID, cov); err != nil {
		t.Fatal(err)
	}
	test := Test{ID: "t1", Name: "auth", Type: TestIntegration, FilePath: "auth_test.go", ExecutionTime: 2.5}
	if err := svc.putJSON(KindTest, test.ID, test); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ComprehensiveTestPlan(ctx, []string{"src/auth.go"}, nil, "high")
	if err != nil {
		t.Fatalf("ComprehensiveTestPlan failed: %v", err)
	}
	if !strings.Contains(got, "Critical Tests: 1") {
		t.Errorf("output = %q, want one critical test", got)
	}
	if !strings.Contains(got, "Estimated Time: 2.5 minutes") {
		t.Errorf("output = %q, want execution estimate", got)
	}
	if !strings.Contains(got, "Run ALL tests before deployment") {
		t.Errorf("output = %q, want high-risk mitigation", got)
	}
}

func TestTestsToRunReport(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	feature := Feature{ID: "auth", Name: "auth", FilePaths: []string{"src/auth.go"}}
	if err := svc.putJSON(KindFeature, feature.ID, feature); err != nil {
		t.Fatal(err)
	}
	cf := CodeFile{ID: "cf_1", FilePath: "src/auth.go", TestFiles: []string{"auth_test.go"}, LastModified: svc.now()}
	if err := svc.putJSON(KindCodeFile, cf.ID, cf); err != nil {
		t.Fatal(err)
	}

	got, err := svc.TestsToRun(ctx, []string{"auth"})
	if err != nil {
		t.Fatalf("TestsToRun failed: %v", err)
	}
	if !strings.Contains(got, "Recommended Tests: 1") {
		t.Errorf("output = %q, want one recommendation", got)
	}
	if !strings.Contains(got, "`auth_test.go`") {
		t.Errorf("output = %q, want test file listed", got)
	}
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.StoreRequirement(ctx, "req one", "p", "low"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StoreBugReport(ctx, "bug one", "desc", "minor", nil); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if got["total_entities"] != 2 {
		t.Errorf("total_entities = %v, want 2", got["total_entities"])
	}
	if got[KindRequirement] != 1 || got[KindBug] != 1 {
		t.Errorf("counts = %v, want one requirement and one bug", got)
	}
	if got[KindFeature] != 0 {
		t.Errorf("counts = %v, want empty kinds reported as zero", got)
	}
}

// ─── OpSet bindings ──────────────────────────────────────────────────────────

func TestOps_CoversAllOperations(t *testing.T) {
	ops := newTestService(t).Ops()

	want := []string{
		"store_project_requirement", "store_feature_dependency",
		"store_bug_report", "store_code_change", "store_user_feedback",
		"get_tests_to_run", "get_related_features", "search_memory",
		"get_bug_impact_analysis", "analyze_change_impact",
		"assess_regression_risk", "get_documents_to_update",
		"get_comprehensive_test_plan", "get_memory_stats",
	}
	if len(ops) != len(want) {
		t.Errorf("Ops has %d operations, want %d", len(ops), len(want))
	}
	for _, name := range want {
		if _, ok := ops[name]; !ok {
			t.Errorf("Ops missing %q", name)
		}
	}
}

func TestOps_StoreRequirementPassThrough(t *testing.T) {
	svc := newTestService(t)
	op := svc.Ops()["store_project_requirement"]

	res, err := op(context.Background(), map[string]any{
		"requirement":  "add caching",
		"project_name": "api",
	})
	if err != nil {
		t.Fatalf("operation failed: %v", err)
	}
	text, ok := res.(toolkit.TextResult)
	if !ok {
		t.Fatalf("result type = %T, want TextResult", res)
	}
	if !strings.Contains(string(text), "Stored requirement: req_0001") {
		t.Errorf("result = %q", text)
	}
	if !strings.Contains(string(text), "Priority: medium") {
		t.Errorf("result = %q, want defaulted priority", text)
	}
}

func TestOps_MemoryStatsRendersStructured(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.StoreRequirement(ctx, "req one", "p", "low"); err != nil {
		t.Fatal(err)
	}

	// Run the operation through a wired tool so the structured render
	// path is what the caller actually receives.
	desc := toolkit.Descriptor{
		Name:        "get_memory_stats",
		Description: "entity counts",
		Service:     "memory",
		Operation:   "get_memory_stats",
		Label:       "getting memory statistics",
		Schema:      toolkit.InputSchema{Properties: map[string]toolkit.Property{}},
	}
	factory := toolkit.NewFactory(map[string]toolkit.OpSet{"memory": svc.Ops()}, testLogger())
	reg := factory.BuildAndRegister([]toolkit.Descriptor{desc}, nil)
	ex := toolkit.NewExecutor(reg, testLogger())

	got := ex.ExecuteTool(ctx, "get_memory_stats", nil)
	if !strings.HasPrefix(got, "Getting memory statistics completed") {
		t.Errorf("output = %q, want structured render", got)
	}
	if !strings.Contains(got, "- requirement: 1") {
		t.Errorf("output = %q, want per-kind count", got)
	}
	if !strings.Contains(got, "- total_entities: 1") {
		t.Errorf("output = %q, want total", got)
	}
}

func TestOps_JSONArgumentShapes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Arrays arrive as []any and integers as float64 from JSON decoding.
	res, err := svc.Ops()["store_code_change"](ctx, map[string]any{
		"title":       "tweak",
		"change_type": "enhancement",
		"file_paths":  []any{"a.go", "b.go"},
		"lines_added": float64(30),
	})
	if err != nil {
		t.Fatalf("operation failed: %v", err)
	}
	text := string(res.(toolkit.TextResult))
	if !strings.Contains(text, "Files Changed: 2") {
		t.Errorf("result = %q, want both files counted", text)
	}
	if !strings.Contains(text, "Lines: +30/-0") {
		t.Errorf("result = %q, want float64 lines_added coerced", text)
	}
}
