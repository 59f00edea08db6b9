package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-insights/internal/domain"
)

// RepositoryContribution analyses who contributes to a repository and how active it is.
func (a *Aggregator) RepositoryContribution(ctx context.Context, owner, repo string, days int) domain.Result[domain.RepositoryContributionReport] {
	return run(ctx, a, "analyzing repository contributions", func(ctx context.Context) (*domain.RepositoryContributionReport, error) {
		a.logger.Printf("Usecase: Starting contribution analysis for %s/%s...", owner, repo)
		w := a.window(days)

		var (
			repository   *domain.Repository
			contributors []domain.Contributor
			commits      []domain.Commit
			prs          []domain.PullRequest
			issues       []domain.Issue
		)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			repository, err = a.fetcher.FetchRepository(egCtx, owner, repo)
			return err
		})
		eg.Go(func() error {
			var err error
			contributors, err = a.fetcher.FetchContributors(egCtx, owner, repo)
			return err
		})
		eg.Go(func() error {
			var err error
			commits, err = a.fetcher.FetchCommits(egCtx, owner, repo, w.cutoff)
			return err
		})
		eg.Go(func() error {
			var err error
			prs, err = a.fetcher.FetchPullRequests(egCtx, owner, repo, "all")
			return err
		})
		eg.Go(func() error {
			var err error
			issues, err = a.fetcher.FetchIssues(egCtx, owner, repo, "all")
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		a.logger.Println("Usecase: All data fetched successfully.")

		prItems := make([]stateful, 0, len(prs))
		for _, pr := range prs {
			prItems = append(prItems, stateful{state: pr.State, createdAt: pr.CreatedAt})
		}
		issueItems := make([]stateful, 0, len(issues))
		for _, i := range issues {
			if i.IsPullRequest {
				continue
			}
			issueItems = append(issueItems, stateful{state: i.State, createdAt: i.CreatedAt})
		}

		report := &domain.RepositoryContributionReport{
			Repository:         repoSummary(*repository),
			OpenIssues:         repository.OpenIssues,
			AnalysisPeriodDays: w.days,
			Contributors:       contributorAnalytics(contributors),
			Commits:            commitAnalytics(commits, w),
			PullRequests:       itemAnalytics(prItems, w),
			Issues:             itemAnalytics(issueItems, w),
			GeneratedAt:        formatTime(a.now()),
		}
		a.logger.Println("Usecase: Aggregation complete.")
		return report, nil
	})
}

// contributorAnalytics keeps GitHub's ranking; it is only truncated.
func contributorAnalytics(contributors []domain.Contributor) domain.ContributorAnalytics {
	out := domain.ContributorAnalytics{
		TotalContributors: len(contributors),
		TopContributors:   make([]domain.ContributorSummary, 0, min(len(contributors), 10)),
	}
	for i, c := range contributors {
		out.TotalContributions += c.Contributions
		if i < 10 {
			out.TopContributors = append(out.TopContributors, domain.ContributorSummary{
				Username:      c.Login,
				Contributions: c.Contributions,
				AvatarURL:     c.AvatarURL,
			})
		}
	}
	return out
}

func commitAnalytics(commits []domain.Commit, w window) domain.CommitAnalytics {
	authors := newCounter()
	recent := make([]domain.CommitSummary, 0, 10)
	total := 0
	for _, c := range commits {
		if !w.contains(c.Timestamp) {
			continue
		}
		total++
		authors.add(orUnknown(c.Author), 1)
		if len(recent) < 10 {
			recent = append(recent, summarizeCommit(c))
		}
	}
	return domain.CommitAnalytics{
		TotalCommits:  total,
		UniqueAuthors: authors.len(),
		CommitsPerDay: w.perDay(total),
		TopCommitters: authors.top(10),
		RecentCommits: recent,
	}
}

// stateful is the part of a pull request or issue the item statistics look at.
type stateful struct {
	state     string
	createdAt time.Time
}

func itemAnalytics(items []stateful, w window) domain.ItemAnalytics {
	byState := make(map[string]int)
	recent := 0
	for _, it := range items {
		byState[it.state]++
		if w.contains(it.createdAt) {
			recent++
		}
	}
	return domain.ItemAnalytics{
		Total:        len(items),
		RecentCount:  recent,
		ByState:      byState,
		RecentPerDay: w.perDay(recent),
	}
}
