package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/metrics"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	reports  Reports
	defaults Defaults
	logger   *log.Logger
}

// respond renders a report or its failure as the tool's JSON text.
// A failure is also flagged as a tool error.
func respond[T any](h *toolHandler, tool string, start time.Time, res domain.Result[T]) (*mcp.CallToolResult, error) {
	outcome := "success"
	if !res.OK() {
		outcome = string(res.Failure.Kind)
		h.logger.Printf("Server: %s failed: %v", tool, res.Failure)
	}
	metrics.ObserveToolCall(tool, outcome, time.Since(start))

	jsonData, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	result := mcp.NewToolResultText(string(jsonData))
	result.IsError = !res.OK()
	return result, nil
}

func invalid(tool string, err error) *mcp.CallToolResult {
	metrics.RejectToolCall(tool)
	return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
}

// requireStrings reads every key as a non-blank string argument.
func requireStrings(request mcp.CallToolRequest, keys ...string) ([]string, error) {
	values := make([]string, 0, len(keys))
	for _, key := range keys {
		v, err := request.RequireString(key)
		if err != nil {
			return nil, err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("argument %q must not be empty", key)
		}
		values = append(values, v)
	}
	return values, nil
}

func (h *toolHandler) days(request mcp.CallToolRequest) (int, error) {
	days := request.GetInt("days", h.defaults.Days)
	if days < 0 {
		return 0, fmt.Errorf("argument \"days\" must not be negative")
	}
	return days, nil
}

func (h *toolHandler) handleUserContribution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get_user_contribution_analytics"
	start := time.Now()
	args, err := requireStrings(request, "username")
	if err != nil {
		return invalid(tool, err), nil
	}
	days, err := h.days(request)
	if err != nil {
		return invalid(tool, err), nil
	}
	includePrivate := request.GetBool("include_private", false)
	return respond(h, tool, start, h.reports.UserContribution(ctx, args[0], days, includePrivate))
}

func (h *toolHandler) handleRepositoryContribution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get_repository_contribution_analytics"
	start := time.Now()
	args, err := requireStrings(request, "owner", "repo")
	if err != nil {
		return invalid(tool, err), nil
	}
	days, err := h.days(request)
	if err != nil {
		return invalid(tool, err), nil
	}
	return respond(h, tool, start, h.reports.RepositoryContribution(ctx, args[0], args[1], days))
}

func (h *toolHandler) handlePullRequestReview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get_pr_review_summary"
	start := time.Now()
	args, err := requireStrings(request, "owner", "repo")
	if err != nil {
		return invalid(tool, err), nil
	}
	number, err := request.RequireInt("pr_number")
	if err != nil {
		return invalid(tool, err), nil
	}
	if number <= 0 {
		return invalid(tool, fmt.Errorf("argument \"pr_number\" must be positive")), nil
	}
	return respond(h, tool, start, h.reports.PullRequestReview(ctx, args[0], args[1], number))
}

func (h *toolHandler) handleBranchOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get_branch_status_overview"
	start := time.Now()
	args, err := requireStrings(request, "owner", "repo")
	if err != nil {
		return invalid(tool, err), nil
	}
	limit := request.GetInt("limit", h.defaults.BranchLimit)
	return respond(h, tool, start, h.reports.BranchOverview(ctx, args[0], args[1], limit))
}

func (h *toolHandler) handleActiveBranches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get_active_branches"
	start := time.Now()
	args, err := requireStrings(request, "owner", "repo")
	if err != nil {
		return invalid(tool, err), nil
	}
	days, err := h.days(request)
	if err != nil {
		return invalid(tool, err), nil
	}
	return respond(h, tool, start, h.reports.ActiveBranches(ctx, args[0], args[1], days))
}

func (h *toolHandler) handleCompareBranches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "compare_branches"
	start := time.Now()
	args, err := requireStrings(request, "owner", "repo", "base_branch", "compare_branch")
	if err != nil {
		return invalid(tool, err), nil
	}
	return respond(h, tool, start, h.reports.CompareBranches(ctx, args[0], args[1], args[2], args[3]))
}

func (h *toolHandler) handleRepositoryHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "check_repository_health"
	start := time.Now()
	args, err := requireStrings(request, "owner", "repo")
	if err != nil {
		return invalid(tool, err), nil
	}
	return respond(h, tool, start, h.reports.RepositoryHealth(ctx, args[0], args[1]))
}

func (h *toolHandler) handleDependencyAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "analyze_repository_dependencies"
	start := time.Now()
	args, err := requireStrings(request, "owner", "repo")
	if err != nil {
		return invalid(tool, err), nil
	}
	return respond(h, tool, start, h.reports.DependencyAnalysis(ctx, args[0], args[1]))
}
