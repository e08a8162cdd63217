package memory

import (
	"reflect"
	"testing"
	"time"
)

func TestTestsToRun_UnionSortedDeduped(t *testing.T) {
	now := time.Now()
	files := []CodeFile{
		{
			FilePath:     "src/auth.go",
			TestFiles:    []string{"auth_test.go", "session_test.go"},
			LastModified: now,
		},
		{
			FilePath:     "src/other.go",
			TestFiles:    []string{"other_test.go"},
			LastModified: now,
		},
	}
	coverage := []Coverage{
		{TestFile: "session_test.go", CoveredFiles: []string{"src/auth.go"}},
		{TestFile: "login_test.go", CoveredFeatures: []string{"login"}},
	}

	got := TestsToRun([]string{"src/auth.go"}, []string{"login"}, files, coverage)
	want := []string{"auth_test.go", "login_test.go", "session_test.go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TestsToRun = %v, want %v", got, want)
	}
}

func TestTestsToRun_SkipsRecentlyTestedFiles(t *testing.T) {
	now := time.Now()
	tested := now.Add(time.Hour)
	files := []CodeFile{
		{
			FilePath:     "src/stable.go",
			TestFiles:    []string{"stable_test.go"},
			LastModified: now,
			LastTested:   &tested,
		},
	}

	got := TestsToRun([]string{"src/stable.go"}, nil, files, nil)
	if len(got) != 0 {
		t.Errorf("TestsToRun = %v, want empty for recently tested file", got)
	}
}

func TestDocumentsToUpdate_MatchesOnceEach(t *testing.T) {
	docs := []Document{
		{ID: "d1", Title: "API", RelatedFeatures: []string{"auth"}, RelatedCodeFiles: []string{"src/auth.go"}},
		{ID: "d2", Title: "Guide", RelatedFeatures: []string{"billing"}},
		{ID: "d3", Title: "Readme"},
	}

	// d1 matches both a feature and a file but must appear once.
	got := DocumentsToUpdate([]string{"auth"}, []string{"src/auth.go"}, docs)
	if len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("DocumentsToUpdate = %v, want just d1", got)
	}
}

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "low"},
		{5, "low"},
		{6, "medium"},
		{10, "medium"},
		{11, "high"},
		{15, "high"},
		{16, "critical"},
	}
	for _, tt := range tests {
		if got := riskLevelFromScore(tt.score); got != tt.want {
			t.Errorf("riskLevelFromScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestChangeImpact_BreakingChangeIsHighRisk(t *testing.T) {
	change := CodeChange{
		ID:              "change_1",
		Type:            ChangeRefactor,
		FilePaths:       []string{"src/core.go"},
		LinesAdded:      50,
		BreakingChanges: true,
	}
	features := []Feature{
		{ID: "f1", Name: "core", FilePaths: []string{"src/core.go"}},
	}
	tests := []Test{
		{ID: "t1", Type: TestIntegration},
		{ID: "t2", Type: TestUnit, CoveragePercent: 10},
	}

	impact := ChangeImpact(change, features, tests, nil, nil, time.Now())

	if impact.SourceChangeID != "change_1" {
		t.Errorf("SourceChangeID = %q", impact.SourceChangeID)
	}
	if impact.RiskLevel != "medium" && impact.RiskLevel != "high" && impact.RiskLevel != "critical" {
		t.Errorf("RiskLevel = %q, want at least medium for a breaking change", impact.RiskLevel)
	}
	if len(impact.AffectedEntities) != 1 {
		t.Fatalf("AffectedEntities = %d, want 1", len(impact.AffectedEntities))
	}
	if impact.AffectedEntities[0].ImpactLevel != "high" {
		t.Errorf("feature sharing a changed file should be high impact, got %q", impact.AffectedEntities[0].ImpactLevel)
	}
	if !reflect.DeepEqual(impact.RecommendedTests, []string{"t1"}) {
		t.Errorf("RecommendedTests = %v, want only the critical test", impact.RecommendedTests)
	}
}

func TestRegressionRisk_ScopeAndEdges(t *testing.T) {
	rels := []Relationship{
		{SourceID: "auth", TargetID: "billing"},
		{SourceID: "search", TargetID: "index"},
	}

	// 2 features * 2 + large scope 5 + 1 edge touching auth = 10 -> medium.
	score, level := RegressionRisk([]string{"auth", "profile"}, "large", rels)
	if score != 10 {
		t.Errorf("score = %d, want 10", score)
	}
	if level != "medium" {
		t.Errorf("level = %q, want medium", level)
	}

	// Single feature, small scope, no edges: 2 + 1 = 3 -> low.
	score, level = RegressionRisk([]string{"profile"}, "small", nil)
	if score != 3 || level != "low" {
		t.Errorf("got (%d, %q), want (3, low)", score, level)
	}
}

func TestEstimateFixTime(t *testing.T) {
	tests := []struct {
		impact int
		want   string
	}{
		{2, "1-2 hours"},
		{4, "2-4 hours"},
		{8, "4-8 hours"},
	}
	for _, tt := range tests {
		if got := estimateFixTime(tt.impact); got != tt.want {
			t.Errorf("estimateFixTime(%d) = %q, want %q", tt.impact, got, tt.want)
		}
	}
}
