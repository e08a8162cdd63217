package memory

import (
	"fmt"
	"sort"
	"time"
)

// ImpactedEntity is one entry in an impact analysis: what is affected and
// what to do about it.
type ImpactedEntity struct {
	Type           string  `json:"type"`
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ImpactLevel    string  `json:"impact_level"`
	ActionRequired string  `json:"action_required"`
	Staleness      float64 `json:"staleness_score,omitempty"`
}

// ImpactAnalysis is the computed blast radius of one code change.
type ImpactAnalysis struct {
	SourceChangeID   string           `json:"source_change_id"`
	SourceChangeType ChangeType       `json:"source_change_type"`
	AffectedEntities []ImpactedEntity `json:"affected_entities"`
	RiskLevel        string           `json:"risk_level"`
	RecommendedTests []string         `json:"recommended_tests"`
	EstimatedEffort  string           `json:"estimated_effort"`
	Confidence       float64          `json:"confidence_score"`
}

// TestsToRun computes the set of test files to run for the given changed
// code paths and features: tests owned by changed files that need testing,
// plus every coverage entry touching a changed file or feature. The result
// is deduplicated and sorted.
func TestsToRun(codeChanges, featureChanges []string, codeFiles []CodeFile, coverage []Coverage) []string {
	set := make(map[string]struct{})

	changed := make(map[string]struct{}, len(codeChanges))
	for _, p := range codeChanges {
		changed[p] = struct{}{}
	}

	for _, cf := range codeFiles {
		if _, ok := changed[cf.FilePath]; !ok || !cf.NeedsTesting() {
			continue
		}
		for _, tf := range cf.TestFiles {
			set[tf] = struct{}{}
		}
	}

	for _, cov := range coverage {
		for _, f := range featureChanges {
			if cov.CoversFeature(f) {
				set[cov.TestFile] = struct{}{}
			}
		}
		for _, p := range codeChanges {
			if cov.CoversFile(p) {
				set[cov.TestFile] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for tf := range set {
		out = append(out, tf)
	}
	sort.Strings(out)
	return out
}

// DocumentsToUpdate returns the documents related to any changed feature
// or code file, each at most once, in input order.
func DocumentsToUpdate(featureChanges, codeChanges []string, docs []Document) []Document {
	var out []Document
	for _, doc := range docs {
		if docTouchesAny(doc.RelatedFeatures, featureChanges) ||
			docTouchesAny(doc.RelatedCodeFiles, codeChanges) {
			out = append(out, doc)
		}
	}
	return out
}

func docTouchesAny(related, changed []string) bool {
	for _, r := range related {
		for _, c := range changed {
			if r == c {
				return true
			}
		}
	}
	return false
}

// ChangeImpact computes the comprehensive impact of a code change over the
// related features, tests, documents, and code files.
func ChangeImpact(change CodeChange, features []Feature, tests []Test, docs []Document, codeFiles []CodeFile, now time.Time) ImpactAnalysis {
	var affected []ImpactedEntity

	changedPaths := make(map[string]struct{}, len(change.FilePaths))
	for _, p := range change.FilePaths {
		changedPaths[p] = struct{}{}
	}

	for _, f := range features {
		level := "medium"
		for _, p := range f.FilePaths {
			if _, ok := changedPaths[p]; ok {
				level = "high"
				break
			}
		}
		affected = append(affected, ImpactedEntity{
			Type:           "feature",
			ID:             f.ID,
			Name:           f.Name,
			ImpactLevel:    level,
			ActionRequired: "update_implementation",
		})
	}

	docCount := 0
	for _, d := range docs {
		level := "medium"
		if d.UpdateFrequency == "on_change" {
			level = "high"
		}
		affected = append(affected, ImpactedEntity{
			Type:           "document",
			ID:             d.ID,
			Name:           d.Title,
			ImpactLevel:    level,
			ActionRequired: "update_documentation",
			Staleness:      d.StalenessScore(now),
		})
		docCount++
	}

	fileCount := 0
	for _, cf := range codeFiles {
		if !cf.NeedsTesting() {
			continue
		}
		level := "medium"
		if cf.ImpactScore() > 5 {
			level = "high"
		}
		affected = append(affected, ImpactedEntity{
			Type:           "code_file",
			ID:             cf.ID,
			Name:           cf.FilePath,
			ImpactLevel:    level,
			ActionRequired: "run_tests",
		})
		fileCount++
	}

	var recommended []string
	for _, t := range tests {
		if t.IsCritical() {
			recommended = append(recommended, t.ID)
		}
	}

	total := change.RiskScore() + docCount + 2*fileCount

	return ImpactAnalysis{
		SourceChangeID:   change.ID,
		SourceChangeType: change.Type,
		AffectedEntities: affected,
		RiskLevel:        riskLevelFromScore(total),
		RecommendedTests: recommended,
		EstimatedEffort:  fmt.Sprintf("%.1f hours", float64(len(affected))*1.5),
		Confidence:       0.9,
	}
}

func riskLevelFromScore(total int) string {
	switch {
	case total > 15:
		return "critical"
	case total > 10:
		return "high"
	case total > 5:
		return "medium"
	default:
		return "low"
	}
}

// RegressionRisk scores the regression exposure of a set of changed
// features: two points per changed feature, a scope weight, and one point
// per relationship edge touching a changed feature. The level uses the
// shared risk thresholds.
func RegressionRisk(changedFeatures []string, scope string, rels []Relationship) (int, string) {
	score := 2 * len(changedFeatures)

	switch scope {
	case "small":
		score++
	case "large":
		score += 5
	default:
		score += 3
	}

	changed := make(map[string]struct{}, len(changedFeatures))
	for _, f := range changedFeatures {
		changed[f] = struct{}{}
	}
	for _, rel := range rels {
		_, src := changed[rel.SourceID]
		_, dst := changed[rel.TargetID]
		if src || dst {
			score++
		}
	}

	return score, riskLevelFromScore(score)
}

// estimateFixTime maps a bug impact score to a coarse fix-time estimate.
func estimateFixTime(impact int) string {
	switch {
	case impact > 6:
		return "4-8 hours"
	case impact > 3:
		return "2-4 hours"
	default:
		return "1-2 hours"
	}
}
