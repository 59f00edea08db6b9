package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/github-insights/internal/domain"
)

func (g *GitHubGateway) FetchUser(ctx context.Context, username string) (*domain.User, error) {
	g.logger.Printf("Fetching profile of %s...", username)
	u, _, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", upstreamError(err))
	}
	return toUser(u), nil
}

// FetchUserRepositories lists the repositories owned by username. With includePrivate and a
// token that belongs to username, the authenticated listing is used so private repositories
// are returned as well.
func (g *GitHubGateway) FetchUserRepositories(ctx context.Context, username string, includePrivate bool) ([]domain.Repository, error) {
	g.logger.Printf("Fetching repositories of %s...", username)

	var (
		repos []*github.Repository
		err   error
	)
	self := false
	if includePrivate {
		self, err = g.isAuthenticatedUser(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve authenticated user: %w", err)
		}
	}
	if self {
		opts := &github.RepositoryListByAuthenticatedUserOptions{Visibility: "all", Affiliation: "owner", Sort: "updated"}
		repos, err = collectPages(&opts.ListOptions, func(*github.ListOptions) ([]*github.Repository, *github.Response, error) {
			return g.restClient.Repositories.ListByAuthenticatedUser(ctx, opts)
		})
	} else {
		opts := &github.RepositoryListByUserOptions{Type: "owner", Sort: "updated"}
		repos, err = collectPages(&opts.ListOptions, func(*github.ListOptions) ([]*github.Repository, *github.Response, error) {
			return g.restClient.Repositories.ListByUser(ctx, username, opts)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, toRepository(r))
	}
	g.logger.Printf("  %d repositories found.", len(out))
	return out, nil
}

func (g *GitHubGateway) isAuthenticatedUser(ctx context.Context, username string) (bool, error) {
	me, _, err := g.restClient.Users.Get(ctx, "")
	if err != nil {
		return false, upstreamError(err)
	}
	return strings.EqualFold(me.GetLogin(), username), nil
}

func (g *GitHubGateway) FetchUserEvents(ctx context.Context, username string, includePrivate bool) ([]domain.Event, error) {
	g.logger.Printf("Fetching events of %s...", username)
	opts := &github.ListOptions{}
	events, err := collectPages(opts, func(lo *github.ListOptions) ([]*github.Event, *github.Response, error) {
		return g.restClient.Activity.ListEventsPerformedByUser(ctx, username, !includePrivate, lo)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, toEvent(e))
	}
	return out, nil
}

func (g *GitHubGateway) FetchStarred(ctx context.Context, username string) ([]domain.Repository, error) {
	g.logger.Printf("Fetching repositories starred by %s...", username)
	opts := &github.ActivityListStarredOptions{}
	starred, err := collectPages(&opts.ListOptions, func(*github.ListOptions) ([]*github.StarredRepository, *github.Response, error) {
		return g.restClient.Activity.ListStarred(ctx, username, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list starred repositories: %w", err)
	}

	out := make([]domain.Repository, 0, len(starred))
	for _, s := range starred {
		if s.Repository == nil {
			continue
		}
		out = append(out, toRepository(s.Repository))
	}
	return out, nil
}
