// Package memory implements the backing memory service: project-knowledge
// entities (requirements, features, bugs, changes, tests, documents, code
// files) held in a pluggable repository, with small derived scores and
// impact-analysis helpers computed on demand.
package memory

import (
	"time"
)

// ─── Enums ───────────────────────────────────────────────────────────────────

// Priority is an entity priority level.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Status is an entity lifecycle status.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusTesting    Status = "testing"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
	StatusCancelled  Status = "cancelled"
)

// Severity is a bug severity level.
type Severity string

const (
	SeverityTrivial  Severity = "trivial"
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
	SeverityBlocker  Severity = "blocker"
)

// ChangeType classifies a code change.
type ChangeType string

const (
	ChangeNewFeature  ChangeType = "new_feature"
	ChangeEnhancement ChangeType = "enhancement"
	ChangeBugFix      ChangeType = "bug_fix"
	ChangeRefactor    ChangeType = "refactor"
	ChangePerformance ChangeType = "performance"
	ChangeSecurity    ChangeType = "security"
)

// RelationType is a typed edge between two entities. Beyond the feature
// relations, doc/code/test relations support documentation and coverage
// tracking.
type RelationType string

const (
	RelDependsOn     RelationType = "depends_on"
	RelConflictsWith RelationType = "conflicts_with"
	RelEnhances      RelationType = "enhances"
	RelBlocks        RelationType = "blocks"
	RelRelatedTo     RelationType = "related_to"
	RelImplements    RelationType = "implements"
	RelTests         RelationType = "tests"
	RelFixes         RelationType = "fixes"
	RelCausedBy      RelationType = "caused_by"
	RelDocuments     RelationType = "documents"
	RelDescribedBy   RelationType = "described_by"
	RelCovers        RelationType = "covers"
	RelCoveredBy     RelationType = "covered_by"
	RelImports       RelationType = "imports"
	RelImportedBy    RelationType = "imported_by"
	RelReferences    RelationType = "references"
	RelReferencedBy  RelationType = "referenced_by"
)

// TestType classifies a test case.
type TestType string

const (
	TestUnit        TestType = "unit"
	TestIntegration TestType = "integration"
	TestE2E         TestType = "e2e"
	TestPerformance TestType = "performance"
	TestSecurity    TestType = "security"
	TestRegression  TestType = "regression"
)

// FeedbackType classifies user feedback.
type FeedbackType string

const (
	FeedbackBugReport      FeedbackType = "bug_report"
	FeedbackFeatureRequest FeedbackType = "feature_request"
	FeedbackImprovement    FeedbackType = "improvement"
	FeedbackQuestion       FeedbackType = "question"
	FeedbackCompliment     FeedbackType = "compliment"
)

// ─── Entities ────────────────────────────────────────────────────────────────

// Requirement is a stored project requirement.
type Requirement struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Priority           Priority  `json:"priority"`
	Status             Status    `json:"status"`
	ProjectName        string    `json:"project_name"`
	Category           string    `json:"category"`
	AcceptanceCriteria []string  `json:"acceptance_criteria,omitempty"`
	EstimatedEffort    string    `json:"estimated_effort,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedBy          string    `json:"created_by,omitempty"`
}

// ComplexityScore derives a complexity estimate from the criteria count
// weighted by priority.
func (r Requirement) ComplexityScore() int {
	return len(r.AcceptanceCriteria) * priorityMultiplier(r.Priority)
}

func priorityMultiplier(p Priority) int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 2
	}
}

// Feature is a tracked software feature.
type Feature struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Status               Status    `json:"status"`
	Module               string    `json:"module,omitempty"`
	FilePaths            []string  `json:"file_paths,omitempty"`
	APIEndpoints         []string  `json:"api_endpoints,omitempty"`
	DatabaseTables       []string  `json:"database_tables,omitempty"`
	ExternalDependencies []string  `json:"external_dependencies,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// ComplexityScore weights a feature's scope: database tables and
// external dependencies count more than plain files.
func (f Feature) ComplexityScore() int {
	return len(f.FilePaths) +
		2*len(f.APIEndpoints) +
		3*len(f.DatabaseTables) +
		2*len(f.ExternalDependencies)
}

// Bug is a tracked defect.
type Bug struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Severity         Severity  `json:"severity"`
	Priority         Priority  `json:"priority"`
	Status           Status    `json:"status"`
	AffectedFeatures []string  `json:"affected_features,omitempty"`
	AffectedFiles    []string  `json:"affected_files,omitempty"`
	RegressionRisk   string    `json:"regression_risk,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	ReportedBy       string    `json:"reported_by,omitempty"`
}

// ImpactScore derives impact from severity scaled by affected scope.
func (b Bug) ImpactScore() int {
	base := 2
	switch b.Severity {
	case SeverityTrivial:
		base = 1
	case SeverityMinor:
		base = 2
	case SeverityMajor:
		base = 4
	case SeverityCritical:
		base = 6
	case SeverityBlocker:
		base = 8
	}
	affected := len(b.AffectedFeatures)
	if affected < 1 {
		affected = 1
	}
	return base * affected
}

// CodeChange is a tracked code change.
type CodeChange struct {
	ID              string     `json:"id"`
	Type            ChangeType `json:"change_type"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	FilePaths       []string   `json:"file_paths,omitempty"`
	LinesAdded      int        `json:"lines_added"`
	LinesRemoved    int        `json:"lines_removed"`
	ComplexityDelta int        `json:"complexity_delta"`
	BreakingChanges bool       `json:"breaking_changes"`
	CreatedAt       time.Time  `json:"created_at"`
	Author          string     `json:"author,omitempty"`
}

// RiskScore derives change risk from size, complexity delta, and whether
// the change is breaking. Capped at 10.
func (c CodeChange) RiskScore() int {
	size := (c.LinesAdded + c.LinesRemoved) / 10
	delta := c.ComplexityDelta
	if delta < 0 {
		delta = -delta
	}
	score := size + delta
	if c.BreakingChanges {
		score += 10
	}
	if score > 10 {
		return 10
	}
	return score
}

// Test is a tracked test case.
type Test struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Type            TestType   `json:"test_type"`
	Status          Status     `json:"status"`
	FilePath        string     `json:"file_path,omitempty"`
	ExecutionTime   float64    `json:"execution_time"`
	LastResult      string     `json:"last_result,omitempty"`
	CoveragePercent float64    `json:"coverage_percentage"`
	LastRunAt       *time.Time `json:"last_run_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsCritical reports whether the test must run for risky changes:
// integration, end-to-end, and security tests always qualify, as does any
// test covering more than 80% of its target.
func (t Test) IsCritical() bool {
	switch t.Type {
	case TestIntegration, TestE2E, TestSecurity:
		return true
	}
	return t.CoveragePercent > 80
}

// TestResult is one recorded test execution.
type TestResult struct {
	ID            string    `json:"id"`
	TestID        string    `json:"test_id"`
	Result        string    `json:"result"` // passed, failed, skipped, error
	ExecutionTime float64   `json:"execution_time"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	ExecutedAt    time.Time `json:"executed_at"`
}

// IsFailure reports whether the execution failed or errored.
func (r TestResult) IsFailure() bool {
	return r.Result == "failed" || r.Result == "error"
}

// Feedback is stored user feedback.
type Feedback struct {
	ID              string       `json:"id"`
	Type            FeedbackType `json:"feedback_type"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Priority        Priority     `json:"priority"`
	Status          Status       `json:"status"`
	RelatedFeatures []string     `json:"related_features,omitempty"`
	RelatedBugs     []string     `json:"related_bugs,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	CreatedBy       string       `json:"created_by,omitempty"`
}

// ValueScore derives feedback value from its type scaled by how many
// features and bugs it touches.
func (f Feedback) ValueScore() int {
	base := 1
	switch f.Type {
	case FeedbackBugReport:
		base = 5
	case FeedbackFeatureRequest:
		base = 3
	case FeedbackImprovement:
		base = 2
	}
	impact := len(f.RelatedFeatures) + len(f.RelatedBugs)
	if impact < 1 {
		impact = 1
	}
	return base * impact
}

// Document is a tracked documentation file.
type Document struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	FilePath         string    `json:"file_path"`
	Type             string    `json:"document_type"` // README, API_DOC, USER_GUIDE, TECHNICAL_SPEC, CHANGELOG
	RelatedFeatures  []string  `json:"related_features,omitempty"`
	RelatedCodeFiles []string  `json:"related_code_files,omitempty"`
	LastUpdated      time.Time `json:"last_updated"`
	UpdateFrequency  string    `json:"update_frequency"` // on_change, weekly, monthly
	Maintainer       string    `json:"maintainer,omitempty"`
}

// NeedsUpdateForFeature reports whether a feature change makes this
// document stale.
func (d Document) NeedsUpdateForFeature(featureID string) bool {
	for _, f := range d.RelatedFeatures {
		if f == featureID {
			return true
		}
	}
	return false
}

// StalenessScore rates how overdue the document is, 0–10. Documents
// updated on change or weekly go stale after a week; monthly after thirty
// days.
func (d Document) StalenessScore(now time.Time) float64 {
	days := now.Sub(d.LastUpdated).Hours() / 24
	window := 7.0
	if d.UpdateFrequency == "monthly" {
		window = 30.0
	}
	score := days / window
	if score > 10 {
		return 10
	}
	if score < 0 {
		return 0
	}
	return score
}

// CodeFile is a tracked source file with its dependency fan-in/out and
// the tests and documents that cover it.
type CodeFile struct {
	ID             string     `json:"id"`
	FilePath       string     `json:"file_path"`
	Type           string     `json:"file_type"` // SOURCE, TEST, CONFIG, SCRIPT, SCHEMA
	Language       string     `json:"language,omitempty"`
	Dependencies   []string   `json:"dependencies,omitempty"`
	Dependents     []string   `json:"dependents,omitempty"`
	TestFiles      []string   `json:"test_files,omitempty"`
	DocFiles       []string   `json:"documentation_files,omitempty"`
	Complexity     int        `json:"complexity_score"`
	LinesOfCode    int        `json:"lines_of_code"`
	LastModified   time.Time  `json:"last_modified"`
	LastTested     *time.Time `json:"last_tested,omitempty"`
}

// ImpactScore rates how much a change to this file matters: dependents
// weigh double, plus a capped complexity factor.
func (c CodeFile) ImpactScore() int {
	factor := c.Complexity / 10
	if factor > 5 {
		factor = 5
	}
	return 2*len(c.Dependents) + factor
}

// NeedsTesting reports whether the file changed since its last test run.
func (c CodeFile) NeedsTesting() bool {
	if c.LastTested == nil {
		return true
	}
	return c.LastModified.After(*c.LastTested)
}

// Coverage maps one test file to the files and features it covers.
type Coverage struct {
	ID              string    `json:"id"`
	TestFile        string    `json:"test_file"`
	CoveredFiles    []string  `json:"covered_files,omitempty"`
	CoveredFeatures []string  `json:"covered_features,omitempty"`
	Percent         float64   `json:"coverage_percentage"`
	ExecutionTime   float64   `json:"execution_time"`
	LastRun         *time.Time `json:"last_run,omitempty"`
}

// CoversFile reports whether the test file covers path.
func (c Coverage) CoversFile(path string) bool {
	for _, f := range c.CoveredFiles {
		if f == path {
			return true
		}
	}
	return false
}

// CoversFeature reports whether the test file covers featureID.
func (c Coverage) CoversFeature(featureID string) bool {
	for _, f := range c.CoveredFeatures {
		if f == featureID {
			return true
		}
	}
	return false
}

// Relationship is a typed, directional edge between two entities.
type Relationship struct {
	ID            string       `json:"id"`
	SourceType    string       `json:"source_entity_type"`
	SourceID      string       `json:"source_entity_id"`
	TargetType    string       `json:"target_entity_type"`
	TargetID      string       `json:"target_entity_id"`
	Type          RelationType `json:"relationship_type"`
	Strength      float64      `json:"strength"`
	Confidence    float64      `json:"confidence"`
	Bidirectional bool         `json:"bidirectional"`
	RiskLevel     string       `json:"risk_level,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	CreatedBy     string       `json:"created_by,omitempty"`
}

// Weight returns the edge weight for graph traversal.
func (r Relationship) Weight() float64 {
	return r.Strength * r.Confidence
}
