// Package server exposes the analytics reports as Model Context Protocol tools.
package server

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/naka-gawa/github-insights/internal/domain"
)

const (
	serverName    = "GitHub Insights"
	serverVersion = "1.0.0"
)

// Reports is implemented by usecase.Aggregator.
type Reports interface {
	UserContribution(ctx context.Context, username string, days int, includePrivate bool) domain.Result[domain.UserContributionReport]
	RepositoryContribution(ctx context.Context, owner, repo string, days int) domain.Result[domain.RepositoryContributionReport]
	PullRequestReview(ctx context.Context, owner, repo string, number int) domain.Result[domain.PRReviewReport]
	BranchOverview(ctx context.Context, owner, repo string, limit int) domain.Result[domain.BranchOverviewReport]
	ActiveBranches(ctx context.Context, owner, repo string, days int) domain.Result[domain.ActiveBranchesReport]
	CompareBranches(ctx context.Context, owner, repo, base, head string) domain.Result[domain.BranchComparisonReport]
	RepositoryHealth(ctx context.Context, owner, repo string) domain.Result[domain.HealthReport]
	DependencyAnalysis(ctx context.Context, owner, repo string) domain.Result[domain.DependencyReport]
}

// Defaults fill in optional tool arguments.
type Defaults struct {
	Days        int
	BranchLimit int
}

// NewMCPServer registers every tool without starting a transport.
func NewMCPServer(reports Reports, defaults Defaults, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	h := &toolHandler{reports: reports, defaults: defaults, logger: logger}

	owner := mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner (user or organization)."))
	repo := mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name."))
	days := mcp.WithNumber("days", mcp.Min(0), mcp.Description("Lookback window in days."))

	s.AddTool(mcp.NewTool("get_user_contribution_analytics",
		mcp.WithDescription("Analyze a user's repositories, recent activity, languages, collaboration and starred repositories."),
		mcp.WithString("username", mcp.Required(), mcp.Description("GitHub username.")),
		days,
		mcp.WithBoolean("include_private", mcp.Description("Include private repositories and events when the token belongs to the user.")),
	), h.handleUserContribution)

	s.AddTool(mcp.NewTool("get_repository_contribution_analytics",
		mcp.WithDescription("Analyze contributors, commits, pull requests and issues of a repository."),
		owner, repo, days,
	), h.handleRepositoryContribution)

	s.AddTool(mcp.NewTool("get_pr_review_summary",
		mcp.WithDescription("Summarize a pull request for review: file changes, commits, reviews, comments and insights."),
		owner, repo,
		mcp.WithNumber("pr_number", mcp.Required(), mcp.Min(1), mcp.Description("Pull request number.")),
	), h.handlePullRequestReview)

	s.AddTool(mcp.NewTool("get_branch_status_overview",
		mcp.WithDescription("List branches with their head commit and associated pull request."),
		owner, repo,
		mcp.WithNumber("limit", mcp.Min(1), mcp.Max(100), mcp.Description("Maximum number of branches to inspect.")),
	), h.handleBranchOverview)

	s.AddTool(mcp.NewTool("get_active_branches",
		mcp.WithDescription("List branches with a head commit inside the lookback window."),
		owner, repo, days,
	), h.handleActiveBranches)

	s.AddTool(mcp.NewTool("compare_branches",
		mcp.WithDescription("Compare two branches: ahead/behind counts and the most recent commits."),
		owner, repo,
		mcp.WithString("base_branch", mcp.Required(), mcp.Description("Base branch.")),
		mcp.WithString("compare_branch", mcp.Required(), mcp.Description("Branch compared against the base.")),
	), h.handleCompareBranches)

	s.AddTool(mcp.NewTool("check_repository_health",
		mcp.WithDescription("Score a repository against community and maintenance best practices."),
		owner, repo,
	), h.handleRepositoryHealth)

	s.AddTool(mcp.NewTool("analyze_repository_dependencies",
		mcp.WithDescription("Find and analyze the dependency manifests at the top level of a repository."),
		owner, repo,
	), h.handleDependencyAnalysis)

	return s
}

// ServeStdio serves the tools over standard input and output until the input closes.
// Protocol errors go to logger.
func ServeStdio(s *server.MCPServer, logger *log.Logger) error {
	return server.ServeStdio(s, server.WithErrorLogger(logger))
}
