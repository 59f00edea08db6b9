package gateway

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/github-insights/internal/domain"
)

// branchesQuery fetches branch heads together with their commit author metadata,
// which the REST branches listing does not include.
type branchesQuery struct {
	Repository struct {
		Refs struct {
			TotalCount int
			Nodes      []struct {
				Name   string
				Target struct {
					Commit struct {
						Oid             githubv4.GitObjectID
						MessageHeadline string
						Author          struct {
							Name string
							Date githubv4.GitTimestamp
						}
					} `graphql:"... on Commit"`
				}
			}
		} `graphql:"refs(refPrefix: \"refs/heads/\", first: $first)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// maxBranches is the page size limit of the refs connection.
const maxBranches = 100

// FetchBranches returns up to limit branches with their head commits.
// A non-positive limit fetches as many as a single page allows.
func (g *GitHubGateway) FetchBranches(ctx context.Context, owner, repo string, limit int) ([]domain.Branch, error) {
	g.logger.Printf("Fetching branches of %s/%s using GraphQL API...", owner, repo)
	first := limit
	if first <= 0 || first > maxBranches {
		first = maxBranches
	}
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
		"first": githubv4.Int(first),
	}

	var q branchesQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for branches: %w", graphqlError(err))
	}

	branches := make([]domain.Branch, 0, len(q.Repository.Refs.Nodes))
	for _, node := range q.Repository.Refs.Nodes {
		commit := node.Target.Commit
		branches = append(branches, domain.Branch{
			Name:        node.Name,
			HeadSHA:     string(commit.Oid),
			HeadAuthor:  commit.Author.Name,
			HeadMessage: commit.MessageHeadline,
			HeadDate:    commit.Author.Date.Time,
		})
	}
	g.logger.Printf("  %d of %d branches fetched.", len(branches), q.Repository.Refs.TotalCount)
	return branches, nil
}

var graphqlStatusPattern = regexp.MustCompile(`non-200 OK status code: (\d{3})[^"]*body: (".*")$`)

// graphqlError maps GraphQL transport and resolution failures onto *domain.UpstreamError.
func graphqlError(err error) error {
	msg := err.Error()
	if m := graphqlStatusPattern.FindStringSubmatch(msg); m != nil {
		code, _ := strconv.Atoi(m[1])
		body, unquoteErr := strconv.Unquote(m[2])
		if unquoteErr != nil {
			body = m[2]
		}
		return &domain.UpstreamError{StatusCode: code, Body: body}
	}
	if strings.Contains(msg, "Could not resolve to a Repository") {
		return &domain.UpstreamError{StatusCode: http.StatusNotFound, Body: msg}
	}
	return err
}
