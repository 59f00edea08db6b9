// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-insights/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
// Every method returns typed domain records; HTTP failures are reported as
// *domain.UpstreamError wrapped with the failing operation.
type Fetcher interface {
	// Ready returns domain.ErrNotConfigured when no token is available.
	Ready() error

	FetchUser(ctx context.Context, username string) (*domain.User, error)
	FetchUserRepositories(ctx context.Context, username string, includePrivate bool) ([]domain.Repository, error)
	FetchUserEvents(ctx context.Context, username string, includePrivate bool) ([]domain.Event, error)
	FetchStarred(ctx context.Context, username string) ([]domain.Repository, error)

	FetchRepository(ctx context.Context, owner, repo string) (*domain.Repository, error)
	FetchContributors(ctx context.Context, owner, repo string) ([]domain.Contributor, error)
	FetchCommits(ctx context.Context, owner, repo string, since time.Time) ([]domain.Commit, error)
	FetchPullRequests(ctx context.Context, owner, repo, state string) ([]domain.PullRequest, error)
	FetchIssues(ctx context.Context, owner, repo, state string) ([]domain.Issue, error)

	FetchPullRequest(ctx context.Context, owner, repo string, number int) (*domain.PullRequest, error)
	FetchPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]domain.FileChange, error)
	FetchPullRequestCommits(ctx context.Context, owner, repo string, number int) ([]domain.Commit, error)
	FetchPullRequestReviews(ctx context.Context, owner, repo string, number int) ([]domain.Review, error)
	FetchPullRequestComments(ctx context.Context, owner, repo string, number int) ([]domain.Comment, error)

	FetchBranches(ctx context.Context, owner, repo string, limit int) ([]domain.Branch, error)
	CompareBranches(ctx context.Context, owner, repo, base, head string) (*domain.Comparison, error)

	FetchContents(ctx context.Context, owner, repo, path string) ([]domain.ContentEntry, error)
	FetchFileContent(ctx context.Context, owner, repo, path string) (string, error)
	// FetchCommunityProfile returns nil without error when GitHub has no profile
	// for the repository (404) or refuses to compute one (403).
	FetchCommunityProfile(ctx context.Context, owner, repo string) (*domain.CommunityProfile, error)
}

// Options configures the HTTP client used by the gateway.
type Options struct {
	Token string
	// APIURL is the REST base of a GitHub Enterprise Server (https://host/api/v3/).
	// Empty means github.com.
	APIURL string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PoolTimeout    time.Duration

	// RateLimitMaxSleep enables the secondary rate limit waiter when positive.
	RateLimitMaxSleep time.Duration

	// Instrument wraps the base transport, e.g. with request metrics.
	Instrument func(http.RoundTripper) http.RoundTripper
}

// DefaultOptions returns the recommended timeouts for the given token.
func DefaultOptions(token string) Options {
	return Options{
		Token:          token,
		ConnectTimeout: 15 * time.Second,
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   15 * time.Second,
		PoolTimeout:    10 * time.Second,
	}
}

// maxPages bounds every paginated listing.
const maxPages = 10

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	token         string
	logger        *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// A gateway without a token can be built; its fetches are refused by Ready.
func NewGitHubGateway(opts Options, logger *log.Logger) (*GitHubGateway, error) {
	var base http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   opts.WriteTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: opts.ReadTimeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   10,
	}
	if opts.Instrument != nil {
		base = opts.Instrument(base)
	}
	if opts.RateLimitMaxSleep > 0 {
		rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(base, github_ratelimit.WithSingleSleepLimit(opts.RateLimitMaxSleep, nil))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
		}
		base = rateLimitWaiter
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   base,
			Source: ts,
		},
		Timeout: opts.ConnectTimeout + opts.ReadTimeout + opts.WriteTimeout + opts.PoolTimeout,
	}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.APIURL != "" {
		var err error
		restClient, err = restClient.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise URL: %w", err)
		}
		graphqlClient = githubv4.NewEnterpriseClient(graphqlURL(opts.APIURL), httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		token:         opts.Token,
		logger:        logger,
	}, nil
}

// graphqlURL derives the GraphQL endpoint of an Enterprise Server from its REST base.
func graphqlURL(apiURL string) string {
	u := strings.TrimSuffix(apiURL, "/")
	u = strings.TrimSuffix(u, "/v3")
	return u + "/graphql"
}

func (g *GitHubGateway) Ready() error {
	if g.token == "" {
		return domain.ErrNotConfigured
	}
	return nil
}

// upstreamError converts go-github's response errors into *domain.UpstreamError,
// keeping the raw response body. Other errors are returned unchanged.
func upstreamError(err error) error {
	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		respErr  *github.ErrorResponse
		resp     *http.Response
		message  string
	)
	switch {
	case errors.As(err, &rateErr):
		resp, message = rateErr.Response, rateErr.Message
	case errors.As(err, &abuseErr):
		resp, message = abuseErr.Response, abuseErr.Message
	case errors.As(err, &respErr):
		resp, message = respErr.Response, respErr.Message
	}
	if resp == nil {
		return err
	}

	body := message
	if resp.Body != nil {
		if data, readErr := io.ReadAll(resp.Body); readErr == nil && len(data) > 0 {
			body = string(data)
		}
	}
	return &domain.UpstreamError{StatusCode: resp.StatusCode, Body: body}
}

// collectPages walks a paginated listing until the last page or maxPages.
func collectPages[T any](opts *github.ListOptions, fetch func(*github.ListOptions) ([]T, *github.Response, error)) ([]T, error) {
	if opts.PerPage == 0 {
		opts.PerPage = 100
	}
	var all []T
	for page := 0; page < maxPages; page++ {
		items, resp, err := fetch(opts)
		if err != nil {
			return nil, upstreamError(err)
		}
		all = append(all, items...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}
