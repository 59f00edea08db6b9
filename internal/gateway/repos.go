package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/github-insights/internal/domain"
)

func (g *GitHubGateway) FetchRepository(ctx context.Context, owner, repo string) (*domain.Repository, error) {
	g.logger.Printf("Fetching repository %s/%s...", owner, repo)
	r, _, err := g.restClient.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository: %w", upstreamError(err))
	}
	out := toRepository(r)
	return &out, nil
}

// FetchContributors returns contributors in the order GitHub ranks them.
func (g *GitHubGateway) FetchContributors(ctx context.Context, owner, repo string) ([]domain.Contributor, error) {
	g.logger.Printf("Fetching contributors of %s/%s...", owner, repo)
	opts := &github.ListContributorsOptions{}
	contributors, err := collectPages(&opts.ListOptions, func(*github.ListOptions) ([]*github.Contributor, *github.Response, error) {
		return g.restClient.Repositories.ListContributors(ctx, owner, repo, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	out := make([]domain.Contributor, 0, len(contributors))
	for _, c := range contributors {
		out = append(out, domain.Contributor{
			Login:         c.GetLogin(),
			Contributions: c.GetContributions(),
			AvatarURL:     c.GetAvatarURL(),
		})
	}
	return out, nil
}

// FetchCommits lists commits on the default branch; a zero since lists all of them.
func (g *GitHubGateway) FetchCommits(ctx context.Context, owner, repo string, since time.Time) ([]domain.Commit, error) {
	g.logger.Printf("Fetching commits of %s/%s...", owner, repo)
	opts := &github.CommitsListOptions{Since: since}
	commits, err := collectPages(&opts.ListOptions, func(*github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
		return g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list commits: %w", err)
	}

	fullName := owner + "/" + repo
	out := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		out = append(out, toCommit(c, fullName))
	}
	return out, nil
}

func (g *GitHubGateway) FetchPullRequests(ctx context.Context, owner, repo, state string) ([]domain.PullRequest, error) {
	g.logger.Printf("Fetching %s pull requests of %s/%s...", state, owner, repo)
	opts := &github.PullRequestListOptions{State: state}
	prs, err := collectPages(&opts.ListOptions, func(*github.ListOptions) ([]*github.PullRequest, *github.Response, error) {
		return g.restClient.PullRequests.List(ctx, owner, repo, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	out := make([]domain.PullRequest, 0, len(prs))
	for _, pr := range prs {
		out = append(out, toPullRequest(pr))
	}
	return out, nil
}

// FetchIssues lists issues as the issues endpoint returns them, pull requests included.
func (g *GitHubGateway) FetchIssues(ctx context.Context, owner, repo, state string) ([]domain.Issue, error) {
	g.logger.Printf("Fetching %s issues of %s/%s...", state, owner, repo)
	opts := &github.IssueListByRepoOptions{State: state}
	issues, err := collectPages(&opts.ListOptions, func(*github.ListOptions) ([]*github.Issue, *github.Response, error) {
		return g.restClient.Issues.ListByRepo(ctx, owner, repo, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	out := make([]domain.Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, toIssue(i))
	}
	return out, nil
}

func (g *GitHubGateway) CompareBranches(ctx context.Context, owner, repo, base, head string) (*domain.Comparison, error) {
	g.logger.Printf("Comparing %s...%s in %s/%s...", base, head, owner, repo)
	cmp, _, err := g.restClient.Repositories.CompareCommits(ctx, owner, repo, base, head, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to compare branches: %w", upstreamError(err))
	}

	fullName := owner + "/" + repo
	commits := make([]domain.Commit, 0, len(cmp.Commits))
	for _, c := range cmp.Commits {
		commits = append(commits, toCommit(c, fullName))
	}
	return &domain.Comparison{
		Status:       cmp.GetStatus(),
		AheadBy:      cmp.GetAheadBy(),
		BehindBy:     cmp.GetBehindBy(),
		TotalCommits: cmp.GetTotalCommits(),
		Commits:      commits,
	}, nil
}

// FetchContents lists a directory; an empty path is the repository root.
func (g *GitHubGateway) FetchContents(ctx context.Context, owner, repo, path string) ([]domain.ContentEntry, error) {
	g.logger.Printf("Fetching contents of %s/%s/%s...", owner, repo, path)
	file, dir, _, err := g.restClient.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contents: %w", upstreamError(err))
	}
	if file != nil {
		return []domain.ContentEntry{toContentEntry(file)}, nil
	}

	out := make([]domain.ContentEntry, 0, len(dir))
	for _, c := range dir {
		out = append(out, toContentEntry(c))
	}
	return out, nil
}

// FetchFileContent returns the decoded text of a single file.
func (g *GitHubGateway) FetchFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	g.logger.Printf("Fetching file %s/%s/%s...", owner, repo, path)
	file, _, _, err := g.restClient.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch file content: %w", upstreamError(err))
	}
	if file == nil {
		return "", fmt.Errorf("failed to fetch file content: %s is a directory", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %w", err)
	}
	return content, nil
}

func (g *GitHubGateway) FetchCommunityProfile(ctx context.Context, owner, repo string) (*domain.CommunityProfile, error) {
	g.logger.Printf("Fetching community profile of %s/%s...", owner, repo)
	metrics, _, err := g.restClient.Repositories.GetCommunityHealthMetrics(ctx, owner, repo)
	if err != nil {
		err = upstreamError(err)
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) && (upstream.StatusCode == http.StatusNotFound || upstream.StatusCode == http.StatusForbidden) {
			g.logger.Printf("  community profile unavailable (HTTP %d)", upstream.StatusCode)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch community profile: %w", err)
	}
	return toCommunityProfile(metrics), nil
}
