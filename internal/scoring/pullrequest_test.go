package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	testCases := []struct {
		filename string
		expected string
	}{
		{filename: "main.go", expected: "Go"},
		{filename: "src/app/Component.TS", expected: "TypeScript"},
		{filename: "deploy/values.yml", expected: "YAML"},
		{filename: "Makefile", expected: "Unknown"},
		{filename: "archive.tar.gz", expected: "Unknown"},
		{filename: "dir.v2/README", expected: "Unknown"},
		{filename: "trailing.", expected: "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectLanguage(tc.filename))
		})
	}
}

func TestComplexity(t *testing.T) {
	testCases := []struct {
		name            string
		signals         PRSignals
		expectedScore   int
		expectedLevel   string
		expectedFactors []string
	}{
		{
			name:            "small change",
			signals:         PRSignals{TotalFiles: 2, TotalAdditions: 10, TotalDeletions: 5, Languages: 1, Commits: 1},
			expectedScore:   0,
			expectedLevel:   "Low",
			expectedFactors: []string{},
		},
		{
			name:            "moderate change",
			signals:         PRSignals{TotalFiles: 12, TotalAdditions: 400, TotalDeletions: 200, Languages: 2, Commits: 3},
			expectedScore:   35,
			expectedLevel:   "Medium",
			expectedFactors: []string{"Moderate file count", "Moderate number of changes"},
		},
		{
			// 30 files + 40 changes (1100 > 1000) + 15 languages + 15 large file + 10 commits
			name: "large change is clamped to 100",
			signals: PRSignals{
				TotalFiles: 25, TotalAdditions: 800, TotalDeletions: 300,
				Languages: 4, LargeFiles: 1, Commits: 12,
			},
			expectedScore: 100,
			expectedLevel: "High",
			expectedFactors: []string{
				"High file count", "Large number of changes", "Multiple languages",
				"Large file changes", "Many commits",
			},
		},
		{
			name: "same change below the large-changes threshold",
			signals: PRSignals{
				TotalFiles: 25, TotalAdditions: 600, TotalDeletions: 300,
				Languages: 4, LargeFiles: 1, Commits: 12,
			},
			expectedScore: 90,
			expectedLevel: "High",
			expectedFactors: []string{
				"High file count", "Moderate number of changes", "Multiple languages",
				"Large file changes", "Many commits",
			},
		},
		{
			name:            "exactly seventy is medium",
			signals:         PRSignals{TotalFiles: 21, TotalAdditions: 1001, Commits: 1},
			expectedScore:   70,
			expectedLevel:   "Medium",
			expectedFactors: []string{"High file count", "Large number of changes"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Complexity(tc.signals)
			assert.Equal(t, tc.expectedScore, c.Score)
			assert.Equal(t, tc.expectedLevel, c.Level)
			assert.Equal(t, tc.expectedFactors, c.Factors)
		})
	}
}

func TestAssessReviewStatus(t *testing.T) {
	testCases := []struct {
		name     string
		states   map[string]int
		total    int
		expected string
	}{
		{name: "no reviews", states: map[string]int{}, total: 0, expected: "Awaiting review"},
		{name: "only comments", states: map[string]int{ReviewCommented: 2}, total: 2, expected: "Under review"},
		{name: "approved", states: map[string]int{ReviewApproved: 1, ReviewCommented: 1}, total: 2, expected: "Ready to merge"},
		{name: "approved but changes requested", states: map[string]int{ReviewApproved: 2, ReviewChangesRequested: 1}, total: 3, expected: "Changes requested"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := AssessReviewStatus(tc.states, tc.total)
			assert.Equal(t, tc.expected, s.Status)
			assert.Equal(t, tc.states[ReviewApproved], s.ApprovedCount)
			assert.Equal(t, tc.states[ReviewChangesRequested], s.ChangesRequestedCount)
			assert.Equal(t, tc.total, s.TotalReviews)
		})
	}
}

func TestRiskFactorsAndRecommendations(t *testing.T) {
	conflicted := false
	mergeable := true

	t.Run("risky pull request", func(t *testing.T) {
		s := PRSignals{
			TotalFiles: 30, Languages: 5, LargeFiles: 2, Commits: 16,
			Description: "  \n", Mergeable: &conflicted,
			Filenames: []string{"api/handler.go", "web/index.ts"},
		}
		assert.Equal(t, []string{
			"Large PR - consider breaking into smaller PRs",
			"Multiple languages modified - ensure consistent changes",
			"Large files modified - review carefully for maintainability",
			"No PR description - add context for reviewers",
			"Many commits - consider squashing",
			"PR has merge conflicts - resolve before merging",
		}, RiskFactors(s))
		assert.Equal(t, []string{
			"Request reviews from relevant team members",
			"Add detailed PR description explaining changes",
			"Consider adding tests for new functionality",
			"Consider breaking large PR into smaller, focused PRs",
			"Consider squashing commits for cleaner history",
		}, Recommendations(s))
	})

	t.Run("tidy pull request", func(t *testing.T) {
		s := PRSignals{
			TotalFiles: 2, Languages: 1, Commits: 1, Reviews: 1,
			Description: "Fix pagination", Mergeable: &mergeable,
			Filenames: []string{"pager.go", "pager_test.go"},
		}
		assert.Empty(t, RiskFactors(s))
		assert.Empty(t, Recommendations(s))
	})

	t.Run("unknown mergeability is not a risk", func(t *testing.T) {
		s := PRSignals{TotalFiles: 1, Description: "x", Filenames: []string{"a_test.go"}}
		assert.Empty(t, RiskFactors(s))
	})
}
