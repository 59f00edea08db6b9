package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/metrics"
)

// mockReports is a mock implementation of the Reports interface.
type mockReports struct {
	mock.Mock
}

func (m *mockReports) UserContribution(ctx context.Context, username string, days int, includePrivate bool) domain.Result[domain.UserContributionReport] {
	return m.Called(ctx, username, days, includePrivate).Get(0).(domain.Result[domain.UserContributionReport])
}

func (m *mockReports) RepositoryContribution(ctx context.Context, owner, repo string, days int) domain.Result[domain.RepositoryContributionReport] {
	return m.Called(ctx, owner, repo, days).Get(0).(domain.Result[domain.RepositoryContributionReport])
}

func (m *mockReports) PullRequestReview(ctx context.Context, owner, repo string, number int) domain.Result[domain.PRReviewReport] {
	return m.Called(ctx, owner, repo, number).Get(0).(domain.Result[domain.PRReviewReport])
}

func (m *mockReports) BranchOverview(ctx context.Context, owner, repo string, limit int) domain.Result[domain.BranchOverviewReport] {
	return m.Called(ctx, owner, repo, limit).Get(0).(domain.Result[domain.BranchOverviewReport])
}

func (m *mockReports) ActiveBranches(ctx context.Context, owner, repo string, days int) domain.Result[domain.ActiveBranchesReport] {
	return m.Called(ctx, owner, repo, days).Get(0).(domain.Result[domain.ActiveBranchesReport])
}

func (m *mockReports) CompareBranches(ctx context.Context, owner, repo, base, head string) domain.Result[domain.BranchComparisonReport] {
	return m.Called(ctx, owner, repo, base, head).Get(0).(domain.Result[domain.BranchComparisonReport])
}

func (m *mockReports) RepositoryHealth(ctx context.Context, owner, repo string) domain.Result[domain.HealthReport] {
	return m.Called(ctx, owner, repo).Get(0).(domain.Result[domain.HealthReport])
}

func (m *mockReports) DependencyAnalysis(ctx context.Context, owner, repo string) domain.Result[domain.DependencyReport] {
	return m.Called(ctx, owner, repo).Get(0).(domain.Result[domain.DependencyReport])
}

func setupTestServer() (*mockReports, func(name string, args map[string]any) (*mcp.CallToolResult, error)) {
	reports := new(mockReports)
	s := NewMCPServer(reports, Defaults{Days: 30, BranchLimit: 10}, log.New(io.Discard, "", 0))
	call := func(name string, args map[string]any) (*mcp.CallToolResult, error) {
		tool := s.GetTool(name)
		if tool == nil {
			return nil, assert.AnError
		}
		return tool.Handler(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: name, Arguments: args},
		})
	}
	return reports, call
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	content, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}

func TestNewMCPServer_RegistersTools(t *testing.T) {
	s := NewMCPServer(new(mockReports), Defaults{Days: 30, BranchLimit: 10}, log.New(io.Discard, "", 0))
	for _, name := range []string{
		"get_user_contribution_analytics",
		"get_repository_contribution_analytics",
		"get_pr_review_summary",
		"get_branch_status_overview",
		"get_active_branches",
		"compare_branches",
		"check_repository_health",
		"analyze_repository_dependencies",
	} {
		assert.NotNil(t, s.GetTool(name), "tool %s should exist", name)
	}
}

func TestToolHandlers_InvalidArguments(t *testing.T) {
	testCases := []struct {
		name     string
		tool     string
		args     map[string]any
		expected string
	}{
		{"missing username", "get_user_contribution_analytics", map[string]any{}, `required argument "username" not found`},
		{"blank owner", "check_repository_health", map[string]any{"owner": "  ", "repo": "r"}, `argument "owner" must not be empty`},
		{"missing compare branch", "compare_branches", map[string]any{"owner": "o", "repo": "r", "base_branch": "main"}, `required argument "compare_branch" not found`},
		{"zero pr number", "get_pr_review_summary", map[string]any{"owner": "o", "repo": "r", "pr_number": 0.0}, `"pr_number" must be positive`},
		{"negative days", "get_active_branches", map[string]any{"owner": "o", "repo": "r", "days": -1.0}, `"days" must not be negative`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reports, call := setupTestServer()

			res, err := call(tc.tool, tc.args)

			require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
			assert.True(t, res.IsError)
			assert.Contains(t, text(t, res), "invalid arguments")
			assert.Contains(t, text(t, res), tc.expected)
			reports.AssertNotCalled(t, "RepositoryHealth", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestToolHandlers_InvalidArgumentsAreCountedWithoutDuration(t *testing.T) {
	const tool = "get_pr_review_summary"
	_, call := setupTestServer()
	rejected := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues(tool, "invalid_arguments"))
	series := testutil.CollectAndCount(metrics.ToolCallDuration)

	res, err := call(tool, map[string]any{"owner": "o", "repo": "r", "pr_number": -1.0})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, rejected+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues(tool, "invalid_arguments")))
	assert.Equal(t, series, testutil.CollectAndCount(metrics.ToolCallDuration))
}

func TestToolHandlers_Success(t *testing.T) {
	t.Run("user analytics uses default days", func(t *testing.T) {
		reports, call := setupTestServer()
		reports.On("UserContribution", mock.Anything, "octocat", 30, true).
			Return(domain.Succeed(&domain.UserContributionReport{Profile: domain.UserProfile{Username: "octocat"}, AnalysisPeriodDays: 30}))

		res, err := call("get_user_contribution_analytics", map[string]any{"username": "octocat", "include_private": true})

		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, text(t, res), `"username": "octocat"`)
		reports.AssertExpectations(t)
	})

	t.Run("branch overview uses default limit", func(t *testing.T) {
		reports, call := setupTestServer()
		reports.On("BranchOverview", mock.Anything, "o", "r", 10).
			Return(domain.Succeed(&domain.BranchOverviewReport{Owner: "o", Repo: "r", DefaultBranch: "main", Branches: []domain.BranchStatus{}}))

		res, err := call("get_branch_status_overview", map[string]any{"owner": "o", "repo": "r"})

		require.NoError(t, err)
		assert.Contains(t, text(t, res), `"default_branch": "main"`)
		reports.AssertExpectations(t)
	})

	t.Run("pull request number is read from a JSON number", func(t *testing.T) {
		reports, call := setupTestServer()
		reports.On("PullRequestReview", mock.Anything, "o", "r", 42).
			Return(domain.Succeed(&domain.PRReviewReport{PRInfo: domain.PRInfo{Number: 42}}))

		res, err := call("get_pr_review_summary", map[string]any{"owner": "o", "repo": "r", "pr_number": 42.0})

		require.NoError(t, err)
		assert.Contains(t, text(t, res), `"number": 42`)
		reports.AssertExpectations(t)
	})

	t.Run("compare branches passes both branches", func(t *testing.T) {
		reports, call := setupTestServer()
		reports.On("CompareBranches", mock.Anything, "o", "r", "main", "dev").
			Return(domain.Succeed(&domain.BranchComparisonReport{Status: "ahead", AheadBy: 3}))

		res, err := call("compare_branches", map[string]any{"owner": "o", "repo": "r", "base_branch": "main", "compare_branch": "dev"})

		require.NoError(t, err)
		assert.Contains(t, text(t, res), `"ahead_by": 3`)
		reports.AssertExpectations(t)
	})
}

func TestToolHandlers_Failure(t *testing.T) {
	reports, call := setupTestServer()
	reports.On("RepositoryHealth", mock.Anything, "o", "missing").
		Return(domain.Fail[domain.HealthReport](&domain.Failure{
			Kind: domain.KindUpstream, Message: "HTTP error 404", StatusCode: 404, Details: `{"message":"Not Found"}`,
		}))

	res, err := call("check_repository_health", map[string]any{"owner": "o", "repo": "missing"})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	body := text(t, res)
	assert.Contains(t, body, `"error": "HTTP error 404"`)
	assert.Contains(t, body, `"status_code": 404`)
	assert.NotContains(t, body, "max_score")
}

func TestRouter(t *testing.T) {
	s := NewMCPServer(new(mockReports), Defaults{Days: 30, BranchLimit: 10}, log.New(io.Discard, "", 0))
	ts := httptest.NewServer(Router(s))
	defer ts.Close()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":"ok"}`, string(body))
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "go_goroutines")
	})

	t.Run("mcp initialize", func(t *testing.T) {
		payload := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`
		resp, err := http.Post(ts.URL+"/mcp", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), serverName)
	})
}
