package gateway

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/github-insights/internal/domain"
)

func (g *GitHubGateway) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*domain.PullRequest, error) {
	g.logger.Printf("Fetching pull request %s/%s#%d...", owner, repo, number)
	pr, _, err := g.restClient.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request: %w", upstreamError(err))
	}
	out := toPullRequest(pr)
	return &out, nil
}

func (g *GitHubGateway) FetchPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]domain.FileChange, error) {
	opts := &github.ListOptions{}
	files, err := collectPages(opts, func(lo *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
		return g.restClient.PullRequests.ListFiles(ctx, owner, repo, number, lo)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull request files: %w", err)
	}

	out := make([]domain.FileChange, 0, len(files))
	for _, f := range files {
		out = append(out, domain.FileChange{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Changes:   f.GetChanges(),
		})
	}
	return out, nil
}

func (g *GitHubGateway) FetchPullRequestCommits(ctx context.Context, owner, repo string, number int) ([]domain.Commit, error) {
	opts := &github.ListOptions{}
	commits, err := collectPages(opts, func(lo *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
		return g.restClient.PullRequests.ListCommits(ctx, owner, repo, number, lo)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull request commits: %w", err)
	}

	fullName := owner + "/" + repo
	out := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		out = append(out, toCommit(c, fullName))
	}
	return out, nil
}

func (g *GitHubGateway) FetchPullRequestReviews(ctx context.Context, owner, repo string, number int) ([]domain.Review, error) {
	opts := &github.ListOptions{}
	reviews, err := collectPages(opts, func(lo *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error) {
		return g.restClient.PullRequests.ListReviews(ctx, owner, repo, number, lo)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull request reviews: %w", err)
	}

	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, domain.Review{
			ID:          r.GetID(),
			State:       r.GetState(),
			Reviewer:    r.GetUser().GetLogin(),
			Body:        r.GetBody(),
			URL:         r.GetHTMLURL(),
			SubmittedAt: r.GetSubmittedAt().Time,
		})
	}
	return out, nil
}

// FetchPullRequestComments returns inline review comments followed by the general
// conversation comments of the pull request.
func (g *GitHubGateway) FetchPullRequestComments(ctx context.Context, owner, repo string, number int) ([]domain.Comment, error) {
	reviewOpts := &github.PullRequestListCommentsOptions{}
	reviewComments, err := collectPages(&reviewOpts.ListOptions, func(*github.ListOptions) ([]*github.PullRequestComment, *github.Response, error) {
		return g.restClient.PullRequests.ListComments(ctx, owner, repo, number, reviewOpts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list review comments: %w", err)
	}

	issueOpts := &github.IssueListCommentsOptions{}
	issueComments, err := collectPages(&issueOpts.ListOptions, func(*github.ListOptions) ([]*github.IssueComment, *github.Response, error) {
		return g.restClient.Issues.ListComments(ctx, owner, repo, number, issueOpts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list issue comments: %w", err)
	}

	out := make([]domain.Comment, 0, len(reviewComments)+len(issueComments))
	for _, c := range reviewComments {
		out = append(out, domain.Comment{
			ID:        c.GetID(),
			Kind:      domain.CommentKindReview,
			Author:    c.GetUser().GetLogin(),
			Body:      c.GetBody(),
			Path:      c.GetPath(),
			Line:      c.GetLine(),
			URL:       c.GetHTMLURL(),
			CreatedAt: c.GetCreatedAt().Time,
		})
	}
	for _, c := range issueComments {
		out = append(out, domain.Comment{
			ID:        c.GetID(),
			Kind:      domain.CommentKindGeneral,
			Author:    c.GetUser().GetLogin(),
			Body:      c.GetBody(),
			URL:       c.GetHTMLURL(),
			CreatedAt: c.GetCreatedAt().Time,
		})
	}
	return out, nil
}
