package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/minhngv/memgate/internal/llm"
)

// Service is the memory backing service: it owns entity creation, storage,
// and the derived analyses, delegating semantic enrichment to the LLM
// client. All methods are safe for concurrent use as long as the
// Repository is.
type Service struct {
	repo Repository
	llm  llm.Client
	log  *logrus.Entry

	now   func() time.Time
	newID func(prefix string) string
}

// NewService creates a memory service over the given repository and LLM
// client.
func NewService(repo Repository, client llm.Client, log *logrus.Logger) *Service {
	return &Service{
		repo: repo,
		llm:  client,
		log:  log.WithField("component", "memory"),
		now:  time.Now,
		newID: func(prefix string) string {
			return fmt.Sprintf("%s_%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		},
	}
}

// ─── Storage methods ─────────────────────────────────────────────────────────

// StoreRequirement stores a project requirement, enriched with the LLM's
// category and complexity read.
func (s *Service) StoreRequirement(ctx context.Context, requirement, projectName, priority string) (string, error) {
	id := s.newID("req")

	analysis, err := s.llm.AnalyzeRequirement(ctx, requirement, projectName)
	if err != nil {
		return "", fmt.Errorf("memory: analyze requirement: %w", err)
	}

	req := Requirement{
		ID:              id,
		Title:           requirement,
		Description:     requirement,
		Priority:        Priority(priority),
		Status:          StatusOpen,
		ProjectName:     projectName,
		Category:        analysis.Category,
		EstimatedEffort: analysis.Complexity,
		CreatedAt:       s.now(),
		CreatedBy:       "user",
	}
	if err := s.putJSON(KindRequirement, id, req); err != nil {
		return "", err
	}

	s.log.WithField("id", id).Info("stored requirement")
	return fmt.Sprintf("Stored requirement: %s\n\n**Details:**\n- Priority: %s\n- Category: %s\n- Complexity: %s",
		id, priority, analysis.Category, analysis.Complexity), nil
}

// StoreFeatureDependency records a typed relationship between two features
// along with the LLM's impact read.
func (s *Service) StoreFeatureDependency(ctx context.Context, featureA, featureB, relationType, riskLevel string) (string, error) {
	analysis, err := s.llm.AnalyzeFeatureDependency(ctx, featureA, featureB, relationType)
	if err != nil {
		return "", fmt.Errorf("memory: analyze dependency: %w", err)
	}

	id := s.newID("dep")
	rel := Relationship{
		ID:         id,
		SourceType: "feature",
		SourceID:   featureA,
		TargetType: "feature",
		TargetID:   featureB,
		Type:       RelationType(relationType),
		Strength:   1.0,
		Confidence: 0.8,
		RiskLevel:  riskLevel,
		CreatedAt:  s.now(),
		CreatedBy:  "user",
	}
	if err := s.putJSON(KindRelationship, id, rel); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{"source": featureA, "target": featureB}).Info("stored dependency")
	return fmt.Sprintf("Stored dependency: %s %s %s\n\n**Impact Analysis:**\n- Risk Score: %d/10\n- Impact Areas: %s\n- Mitigation: %s",
		featureA, relationType, featureB,
		analysis.RiskScore,
		strings.Join(analysis.ImpactAreas, ", "),
		strings.Join(analysis.MitigationStrategies, ", ")), nil
}

// StoreBugReport stores a bug with automatic priority from severity.
func (s *Service) StoreBugReport(ctx context.Context, title, description, severity string, affectedFeatures []string) (string, error) {
	id := s.newID("bug")

	priority := PriorityMedium
	if severity == string(SeverityCritical) || severity == string(SeverityBlocker) {
		priority = PriorityHigh
	}

	bug := Bug{
		ID:               id,
		Title:            title,
		Description:      description,
		Severity:         Severity(severity),
		Priority:         priority,
		Status:           StatusOpen,
		AffectedFeatures: affectedFeatures,
		CreatedAt:        s.now(),
		ReportedBy:       "user",
	}
	if err := s.putJSON(KindBug, id, bug); err != nil {
		return "", err
	}

	s.log.WithField("id", id).Info("stored bug report")
	return fmt.Sprintf("Stored bug report: %s\n\n**Details:**\n- Severity: %s\n- Impact Score: %d\n- Affected Features: %d\n- Priority: %s",
		id, severity, bug.ImpactScore(), len(affectedFeatures), priority), nil
}

// StoreCodeChange stores a code change and reports its computed risk plus
// the LLM's affected-feature read.
func (s *Service) StoreCodeChange(ctx context.Context, title, changeType string, filePaths []string, linesAdded, linesRemoved int) (string, error) {
	id := s.newID("change")

	change := CodeChange{
		ID:           id,
		Type:         ChangeType(changeType),
		Title:        title,
		Description:  title,
		FilePaths:    filePaths,
		LinesAdded:   linesAdded,
		LinesRemoved: linesRemoved,
		CreatedAt:    s.now(),
		Author:       "user",
	}
	if err := s.putJSON(KindCodeChange, id, change); err != nil {
		return "", err
	}

	analysis, err := s.llm.AnalyzeCodeChangeImpact(ctx, filePaths, changeType)
	if err != nil {
		return "", fmt.Errorf("memory: analyze code change: %w", err)
	}

	s.log.WithField("id", id).Info("stored code change")
	return fmt.Sprintf("Stored code change: %s\n\n**Impact Analysis:**\n- Risk Score: %d/10\n- Files Changed: %d\n- Lines: +%d/-%d\n- Affected Features: %d",
		id, change.RiskScore(), len(filePaths), linesAdded, linesRemoved, len(analysis.AffectedFeatures)), nil
}

// StoreUserFeedback stores categorized user feedback.
func (s *Service) StoreUserFeedback(ctx context.Context, feedbackType, title, description, priority string) (string, error) {
	id := s.newID("feedback")

	fb := Feedback{
		ID:          id,
		Type:        FeedbackType(feedbackType),
		Title:       title,
		Description: description,
		Priority:    Priority(priority),
		Status:      StatusOpen,
		CreatedAt:   s.now(),
		CreatedBy:   "user",
	}
	if err := s.putJSON(KindFeedback, id, fb); err != nil {
		return "", err
	}

	s.log.WithField("id", id).Info("stored user feedback")
	return fmt.Sprintf("Stored user feedback: %s\n\n**Details:**\n- Type: %s\n- Priority: %s\n- Value Score: %d\n- Status: %s",
		id, feedbackType, priority, fb.ValueScore(), fb.Status), nil
}

// ─── Query methods ───────────────────────────────────────────────────────────

// TestsToRun recommends the tests to run for a set of modified features.
func (s *Service) TestsToRun(ctx context.Context, modifiedFeatures []string) (string, error) {
	features, err := listEntities[Feature](s.repo, KindFeature)
	if err != nil {
		return "", err
	}
	codeFiles, err := listEntities[CodeFile](s.repo, KindCodeFile)
	if err != nil {
		return "", err
	}
	coverage, err := listEntities[Coverage](s.repo, KindCoverage)
	if err != nil {
		return "", err
	}
	tests, err := listEntities[Test](s.repo, KindTest)
	if err != nil {
		return "", err
	}

	// Changed code paths come from the stored features' own file lists.
	wanted := make(map[string]struct{}, len(modifiedFeatures))
	for _, f := range modifiedFeatures {
		wanted[f] = struct{}{}
	}
	var codePaths []string
	for _, f := range features {
		if _, ok := wanted[f.ID]; !ok {
			if _, ok := wanted[f.Name]; !ok {
				continue
			}
		}
		codePaths = append(codePaths, f.FilePaths...)
	}

	testFiles := TestsToRun(codePaths, modifiedFeatures, codeFiles, coverage)

	recommended := make(map[string]struct{}, len(testFiles))
	for _, tf := range testFiles {
		recommended[tf] = struct{}{}
	}
	var totalTime float64
	for _, t := range tests {
		if _, ok := recommended[t.FilePath]; ok {
			totalTime += t.ExecutionTime
		}
	}

	var b strings.Builder
	b.WriteString("**Test Recommendations**\n\n")
	fmt.Fprintf(&b, "**Modified Features:** %s\n", strings.Join(modifiedFeatures, ", "))
	fmt.Fprintf(&b, "**Affected Code Files:** %d\n", len(codePaths))
	fmt.Fprintf(&b, "**Recommended Tests:** %d\n", len(testFiles))

	if len(testFiles) > 0 {
		b.WriteString("\n**Tests to Run:**\n")
		for i, tf := range testFiles {
			if i == 10 {
				fmt.Fprintf(&b, "... and %d more\n", len(testFiles)-10)
				break
			}
			fmt.Fprintf(&b, "%d. `%s`\n", i+1, tf)
		}
	}
	fmt.Fprintf(&b, "\n**Estimated Execution Time:** %.1f minutes", totalTime)
	return b.String(), nil
}

// RelatedFeatures walks the relationship graph out from a feature up to
// maxDepth edges and lists everything reachable.
func (s *Service) RelatedFeatures(ctx context.Context, feature string, maxDepth int) (string, error) {
	if maxDepth < 1 {
		maxDepth = 2
	}
	rels, err := listEntities[Relationship](s.repo, KindRelationship)
	if err != nil {
		return "", err
	}

	visited := map[string]struct{}{feature: {}}
	frontier := []string{feature}
	var related []string

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, node := range frontier {
			for _, rel := range rels {
				var neighbor string
				switch {
				case rel.SourceID == node:
					neighbor = rel.TargetID
				case rel.TargetID == node:
					neighbor = rel.SourceID
				default:
					continue
				}
				if _, seen := visited[neighbor]; seen {
					continue
				}
				visited[neighbor] = struct{}{}
				related = append(related, neighbor)
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Related Features for '%s'**\n\n", feature)
	if len(related) == 0 {
		b.WriteString("No related features found.")
		return b.String(), nil
	}
	for i, r := range related {
		if i == 10 {
			fmt.Fprintf(&b, "... and %d more\n", len(related)-10)
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}
	return b.String(), nil
}

// SearchMemory scans requirements, features, and bugs for a case-insensitive
// substring match in title or description.
func (s *Service) SearchMemory(ctx context.Context, query string, limit int) (string, error) {
	if limit < 1 {
		limit = 10
	}
	q := strings.ToLower(query)

	type hit struct {
		kind, id, title string
	}
	var results []hit

	reqs, err := listEntities[Requirement](s.repo, KindRequirement)
	if err != nil {
		return "", err
	}
	for _, r := range reqs {
		if strings.Contains(strings.ToLower(r.Title), q) || strings.Contains(strings.ToLower(r.Description), q) {
			results = append(results, hit{"requirement", r.ID, r.Title})
		}
	}

	features, err := listEntities[Feature](s.repo, KindFeature)
	if err != nil {
		return "", err
	}
	for _, f := range features {
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.Description), q) {
			results = append(results, hit{"feature", f.ID, f.Name})
		}
	}

	bugs, err := listEntities[Bug](s.repo, KindBug)
	if err != nil {
		return "", err
	}
	for _, bug := range bugs {
		if strings.Contains(strings.ToLower(bug.Title), q) || strings.Contains(strings.ToLower(bug.Description), q) {
			results = append(results, hit{"bug", bug.ID, bug.Title})
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Search Results for '%s' (%d found)**\n\n", query, len(results))
	if len(results) == 0 {
		b.WriteString("No results found. Try different keywords.")
		return b.String(), nil
	}
	for i, r := range results {
		fmt.Fprintf(&b, "%d. **%s** (%s)\n   ID: `%s`\n\n", i+1, r.title, r.kind, r.id)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// BugImpact analyzes the blast radius of a stored bug.
func (s *Service) BugImpact(ctx context.Context, bugID string) (string, error) {
	bug, err := getEntity[Bug](s.repo, KindBug, bugID)
	if err != nil {
		if err == ErrNotFound {
			return "", fmt.Errorf("memory: bug %s not found", bugID)
		}
		return "", err
	}

	docs, err := listEntities[Document](s.repo, KindDocument)
	if err != nil {
		return "", err
	}
	relatedDocs := DocumentsToUpdate(bug.AffectedFeatures, bug.AffectedFiles, docs)

	coverage, err := listEntities[Coverage](s.repo, KindCoverage)
	if err != nil {
		return "", err
	}
	relatedTests := make(map[string]struct{})
	for _, cov := range coverage {
		for _, p := range bug.AffectedFiles {
			if cov.CoversFile(p) {
				relatedTests[cov.TestFile] = struct{}{}
			}
		}
		for _, f := range bug.AffectedFeatures {
			if cov.CoversFeature(f) {
				relatedTests[cov.TestFile] = struct{}{}
			}
		}
	}

	impact := bug.ImpactScore()
	priority := "MEDIUM"
	if impact > 6 {
		priority = "HIGH"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Bug Impact Analysis: %s**\n\n", bugID)
	b.WriteString("**Basic Info:**\n")
	fmt.Fprintf(&b, "- Severity: %s\n", bug.Severity)
	fmt.Fprintf(&b, "- Impact Score: %d/10\n", impact)
	fmt.Fprintf(&b, "- Status: %s\n\n", bug.Status)
	b.WriteString("**Affected Scope:**\n")
	fmt.Fprintf(&b, "- Features: %d (%s)\n", len(bug.AffectedFeatures), joinHead(bug.AffectedFeatures, 3))
	fmt.Fprintf(&b, "- Files: %d (%s)\n", len(bug.AffectedFiles), joinHead(bug.AffectedFiles, 3))
	fmt.Fprintf(&b, "- Docs: %d documents need review\n", len(relatedDocs))
	fmt.Fprintf(&b, "- Tests: %d tests should be run\n\n", len(relatedTests))
	b.WriteString("**Recommendations:**\n")
	fmt.Fprintf(&b, "- Priority: %s\n", priority)
	fmt.Fprintf(&b, "- Regression Risk: %s\n", bug.RegressionRisk)
	fmt.Fprintf(&b, "- Estimated Fix Time: %s", estimateFixTime(impact))
	return b.String(), nil
}

// ─── Comprehensive analysis methods ──────────────────────────────────────────

// AnalyzeChangeImpact computes the impact of a prospective code change
// against everything in memory.
func (s *Service) AnalyzeChangeImpact(ctx context.Context, filePaths []string, changeType string) (string, error) {
	if changeType == "" {
		changeType = string(ChangeEnhancement)
	}

	features, err := listEntities[Feature](s.repo, KindFeature)
	if err != nil {
		return "", err
	}
	tests, err := listEntities[Test](s.repo, KindTest)
	if err != nil {
		return "", err
	}
	allDocs, err := listEntities[Document](s.repo, KindDocument)
	if err != nil {
		return "", err
	}
	allFiles, err := listEntities[CodeFile](s.repo, KindCodeFile)
	if err != nil {
		return "", err
	}

	changed := make(map[string]struct{}, len(filePaths))
	for _, p := range filePaths {
		changed[p] = struct{}{}
	}

	var relatedFeatures []Feature
	for _, f := range features {
		for _, p := range f.FilePaths {
			if _, ok := changed[p]; ok {
				relatedFeatures = append(relatedFeatures, f)
				break
			}
		}
	}
	var featureIDs []string
	for _, f := range relatedFeatures {
		featureIDs = append(featureIDs, f.ID)
	}
	relatedDocs := DocumentsToUpdate(featureIDs, filePaths, allDocs)

	var relatedFiles []CodeFile
	for _, cf := range allFiles {
		if _, ok := changed[cf.FilePath]; ok {
			relatedFiles = append(relatedFiles, cf)
		}
	}

	change := CodeChange{
		ID:        "pending",
		Type:      ChangeType(changeType),
		FilePaths: filePaths,
	}
	impact := ChangeImpact(change, relatedFeatures, tests, relatedDocs, relatedFiles, s.now())

	var b strings.Builder
	b.WriteString("**Change Impact Analysis**\n\n")
	fmt.Fprintf(&b, "**Changed Files:** %d\n", len(filePaths))
	fmt.Fprintf(&b, "**Change Type:** %s\n", changeType)
	fmt.Fprintf(&b, "**Risk Level:** %s\n", strings.ToUpper(impact.RiskLevel))
	fmt.Fprintf(&b, "**Estimated Effort:** %s\n\n", impact.EstimatedEffort)
	fmt.Fprintf(&b, "**Affected Entities (%d):**\n", len(impact.AffectedEntities))
	for i, e := range impact.AffectedEntities {
		if i == 10 {
			fmt.Fprintf(&b, "... and %d more\n", len(impact.AffectedEntities)-10)
			break
		}
		fmt.Fprintf(&b, "- [%s] %s (%s impact, %s)\n", e.Type, e.Name, e.ImpactLevel, e.ActionRequired)
	}
	if len(impact.RecommendedTests) > 0 {
		fmt.Fprintf(&b, "\n**Recommended Tests:** %s", strings.Join(impact.RecommendedTests, ", "))
	}
	return b.String(), nil
}

// AssessRegressionRisk scores the regression exposure of a set of changed
// features and recommends mitigation by level.
func (s *Service) AssessRegressionRisk(ctx context.Context, changedFeatures []string, changeScope string) (string, error) {
	if changeScope == "" {
		changeScope = "medium"
	}
	rels, err := listEntities[Relationship](s.repo, KindRelationship)
	if err != nil {
		return "", err
	}

	score, level := RegressionRisk(changedFeatures, changeScope, rels)

	var b strings.Builder
	b.WriteString("**Regression Risk Assessment**\n\n")
	fmt.Fprintf(&b, "**Changed Features:** %s\n", strings.Join(changedFeatures, ", "))
	fmt.Fprintf(&b, "**Change Scope:** %s\n", changeScope)
	fmt.Fprintf(&b, "**Risk Score:** %d\n", score)
	fmt.Fprintf(&b, "**Risk Level:** %s\n\n", strings.ToUpper(level))
	b.WriteString("**Mitigation:**\n")
	switch level {
	case "critical", "high":
		b.WriteString("- Run the full regression suite before deployment\n")
		b.WriteString("- Manual testing for critical paths\n")
		b.WriteString("- Staged rollout recommended")
	case "medium":
		b.WriteString("- Run critical and regression tests\n")
		b.WriteString("- Monitor key metrics post-deployment")
	default:
		b.WriteString("- Run critical tests minimum\n")
		b.WriteString("- Standard deployment process")
	}
	return b.String(), nil
}

// DocumentsNeedingUpdate lists documents affected by the given feature and
// code changes.
func (s *Service) DocumentsNeedingUpdate(ctx context.Context, featureChanges, codeChanges []string) (string, error) {
	docs, err := listEntities[Document](s.repo, KindDocument)
	if err != nil {
		return "", err
	}
	toUpdate := DocumentsToUpdate(featureChanges, codeChanges, docs)
	if len(toUpdate) == 0 {
		return "No documents need updating.", nil
	}

	now := s.now()
	var b strings.Builder
	fmt.Fprintf(&b, "**Documents to update (%d):**\n\n", len(toUpdate))
	for _, doc := range toUpdate {
		priority := "MEDIUM"
		if doc.UpdateFrequency == "on_change" {
			priority = "HIGH"
		}
		analysis, err := s.llm.AnalyzeDocumentStaleness(ctx, doc.FilePath, doc.RelatedFeatures)
		if err != nil {
			return "", fmt.Errorf("memory: analyze document %s: %w", doc.ID, err)
		}
		if analysis.UpdatePriority == "high" {
			priority = "HIGH"
		}
		fmt.Fprintf(&b, "**%s**\n", doc.Title)
		fmt.Fprintf(&b, "- File: `%s`\n", doc.FilePath)
		fmt.Fprintf(&b, "- Type: %s\n", doc.Type)
		fmt.Fprintf(&b, "- Priority: %s\n", priority)
		fmt.Fprintf(&b, "- Staleness: %.1f/10\n", doc.StalenessScore(now))
		fmt.Fprintf(&b, "- Estimated Effort: %s\n", analysis.EstimatedEffort)
		fmt.Fprintf(&b, "- Last Updated: %s\n\n", doc.LastUpdated.Format("2006-01-02"))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// ComprehensiveTestPlan builds a categorized test plan for a set of code
// and feature changes.
func (s *Service) ComprehensiveTestPlan(ctx context.Context, codeChanges, featureChanges []string, riskLevel string) (string, error) {
	if riskLevel == "" {
		riskLevel = "medium"
	}
	tests, err := listEntities[Test](s.repo, KindTest)
	if err != nil {
		return "", err
	}
	coverage, err := listEntities[Coverage](s.repo, KindCoverage)
	if err != nil {
		return "", err
	}

	// Tests touching any changed file or feature, via coverage or ownership.
	covered := make(map[string]struct{})
	for _, cov := range coverage {
		for _, p := range codeChanges {
			if cov.CoversFile(p) {
				covered[cov.TestFile] = struct{}{}
			}
		}
		for _, f := range featureChanges {
			if cov.CoversFeature(f) {
				covered[cov.TestFile] = struct{}{}
			}
		}
	}
	var related []Test
	for _, t := range tests {
		if _, ok := covered[t.FilePath]; ok {
			related = append(related, t)
		}
	}

	var critical, regression, unit int
	var totalTime float64
	for _, t := range related {
		totalTime += t.ExecutionTime
		if t.IsCritical() {
			critical++
		}
		switch t.Type {
		case TestRegression:
			regression++
		case TestUnit:
			unit++
		}
	}

	var b strings.Builder
	b.WriteString("**Comprehensive Test Plan**\n\n")
	b.WriteString("**Scope:**\n")
	fmt.Fprintf(&b, "- Code Files: %d\n", len(codeChanges))
	fmt.Fprintf(&b, "- Features: %d\n", len(featureChanges))
	fmt.Fprintf(&b, "- Risk Level: %s\n\n", strings.ToUpper(riskLevel))
	b.WriteString("**Test Categories:**\n")
	fmt.Fprintf(&b, "- Critical Tests: %d (must run)\n", critical)
	fmt.Fprintf(&b, "- Regression Tests: %d (recommended)\n", regression)
	fmt.Fprintf(&b, "- Unit Tests: %d (if time permits)\n\n", unit)
	b.WriteString("**Execution Plan:**\n")
	fmt.Fprintf(&b, "- Total Tests: %d\n", len(related))
	fmt.Fprintf(&b, "- Estimated Time: %.1f minutes\n", totalTime)
	b.WriteString("- Recommended Order: Critical, Regression, Unit\n\n")
	b.WriteString("**Risk Mitigation:**\n")
	switch riskLevel {
	case "high", "critical":
		b.WriteString("- Run ALL tests before deployment\n")
		b.WriteString("- Manual testing for critical paths\n")
		b.WriteString("- Staged rollout recommended")
	case "medium":
		b.WriteString("- Run critical and regression tests\n")
		b.WriteString("- Monitor key metrics post-deployment")
	default:
		b.WriteString("- Run critical tests minimum\n")
		b.WriteString("- Standard deployment process")
	}
	return b.String(), nil
}

// Stats reports entity counts per kind plus a total_entities sum. The
// tool layer renders the map, so this stays structured data.
func (s *Service) Stats(ctx context.Context) (map[string]any, error) {
	kinds := []string{
		KindRequirement, KindFeature, KindBug, KindCodeChange, KindTest,
		KindTestResult, KindFeedback, KindDocument, KindCodeFile,
		KindCoverage, KindRelationship,
	}
	counts := make(map[string]any, len(kinds)+1)
	total := 0
	for _, kind := range kinds {
		items, err := s.repo.List(kind)
		if err != nil {
			return nil, err
		}
		counts[kind] = len(items)
		total += len(items)
	}
	counts["total_entities"] = total
	return counts, nil
}

// ─── Repository helpers ──────────────────────────────────────────────────────

func (s *Service) putJSON(kind, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("memory: encode %s/%s: %w", kind, id, err)
	}
	return s.repo.Put(kind, id, data)
}

func getEntity[T any](repo Repository, kind, id string) (T, error) {
	var out T
	data, err := repo.Get(kind, id)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("memory: decode %s/%s: %w", kind, id, err)
	}
	return out, nil
}

func listEntities[T any](repo Repository, kind string) ([]T, error) {
	items, err := repo.List(kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, data := range items {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("memory: decode %s: %w", kind, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func joinHead(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
