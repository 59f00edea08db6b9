package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-insights/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestBranches(t *testing.T) {
	report := &domain.BranchOverviewReport{
		Owner: "o", Repo: "r", DefaultBranch: "main", TotalBranches: 2,
		Branches: []domain.BranchStatus{
			{
				Name: "main", IsDefault: true,
				Commit: domain.BranchCommit{SHA: "abc1234", Author: "alice", Message: "release",
					Date: domain.CommitDate{Raw: "2024-06-14T12:00:00Z", Formatted: "2024-06-14 12:00", DaysAgo: intPtr(1)}},
			},
			{
				Name:        "feature",
				Commit:      domain.BranchCommit{SHA: "def5678", Author: "Unknown", Message: "No message", Date: domain.CommitDate{Raw: "Unknown"}},
				PullRequest: &domain.BranchPullRequest{Number: 42, State: "closed", Merged: true},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Branches(&buf, report, false))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "o/r (default: main, 2 branches)\n"))
	assert.Contains(t, out, "main *")
	assert.Contains(t, out, "2024-06-14 12:00 (1d)")
	assert.Contains(t, out, "#42 merged")
	assert.Contains(t, out, "Unknown")
	assert.Less(t, strings.Index(out, "main *"), strings.Index(out, "feature"))
}

func TestBranches_Empty(t *testing.T) {
	report := &domain.BranchOverviewReport{Owner: "o", Repo: "r", DefaultBranch: "main", Message: "No branches found in o/r"}

	var buf bytes.Buffer
	require.NoError(t, Branches(&buf, report, false))

	assert.Equal(t, "o/r (default: main, 0 branches)\nNo branches found in o/r\n", buf.String())
}

func TestActiveBranches(t *testing.T) {
	report := &domain.ActiveBranchesReport{
		Owner: "o", Repo: "r", Days: 7, Count: 1,
		Branches: []domain.BranchStatus{{
			Name:   "hotfix",
			Commit: domain.BranchCommit{SHA: "1234567", Author: "bob", Message: "fix", Date: domain.CommitDate{Formatted: "2024-06-15 09:00", DaysAgo: intPtr(0)}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, ActiveBranches(&buf, report, false))

	out := buf.String()
	assert.Contains(t, out, "1 branches active in the last 7 days")
	assert.Contains(t, out, "hotfix")
	assert.Contains(t, out, "2024-06-15 09:00 (0d)")
}

func TestHealth(t *testing.T) {
	report := &domain.HealthReport{
		Owner: "o", Repo: "r", Score: 25, MaxScore: 73, Percentage: 34, Status: "Poor",
		Checks: domain.HealthChecks{HasReadme: true, DaysSinceUpdate: intPtr(3)},
		Issues: []string{"No license detected"},
		Recommendations: []string{
			"Add a LICENSE file so others know how they may use the code",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Health(&buf, report, false))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "o/r health: 34% Poor (25/73 points)\n"))
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "Issues:\n  - No license detected\n")
	assert.Contains(t, out, "Recommendations:\n  - Add a LICENSE file")
}
