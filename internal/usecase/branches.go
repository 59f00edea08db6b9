package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-insights/internal/domain"
)

const branchDateLayout = "2006-01-02 15:04"

// activeBranchesFetchLimit is how many branches ActiveBranches inspects.
const activeBranchesFetchLimit = 100

// BranchOverview lists branches with their head commit and the pull request opened from them.
// The default branch comes first, then the most recently committed branches.
func (a *Aggregator) BranchOverview(ctx context.Context, owner, repo string, limit int) domain.Result[domain.BranchOverviewReport] {
	return run(ctx, a, "fetching branch status", func(ctx context.Context) (*domain.BranchOverviewReport, error) {
		a.logger.Printf("Usecase: Starting branch overview for %s/%s...", owner, repo)

		var (
			branches   []domain.Branch
			repository *domain.Repository
			prs        []domain.PullRequest
		)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			branches, err = a.fetcher.FetchBranches(egCtx, owner, repo, limit)
			return err
		})
		eg.Go(func() error {
			var err error
			repository, err = a.fetcher.FetchRepository(egCtx, owner, repo)
			return err
		})
		eg.Go(func() error {
			var err error
			prs, err = a.fetcher.FetchPullRequests(egCtx, owner, repo, "all")
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		defaultBranch := repository.DefaultBranch
		if defaultBranch == "" {
			defaultBranch = "main"
		}
		report := &domain.BranchOverviewReport{
			Owner:         owner,
			Repo:          repo,
			DefaultBranch: defaultBranch,
			TotalBranches: len(branches),
			Branches:      []domain.BranchStatus{},
		}
		if len(branches) == 0 {
			report.Message = fmt.Sprintf("No branches found in %s/%s", owner, repo)
			return report, nil
		}

		// Later pull requests for the same head ref overwrite earlier ones.
		byHead := make(map[string]*domain.BranchPullRequest, len(prs))
		for _, pr := range prs {
			if pr.HeadRef == "" {
				continue
			}
			byHead[pr.HeadRef] = &domain.BranchPullRequest{
				Number: pr.Number,
				State:  pr.State,
				Merged: pr.Merged,
				Title:  pr.Title,
				URL:    pr.URL,
			}
		}

		sortBranches(branches, defaultBranch)
		now := a.now()
		for _, b := range branches {
			report.Branches = append(report.Branches, domain.BranchStatus{
				Name:        b.Name,
				IsDefault:   b.Name == defaultBranch,
				Commit:      branchCommit(b.HeadSHA, b.HeadAuthor, b.HeadMessage, b.HeadDate, now),
				PullRequest: byHead[b.Name],
			})
		}
		a.logger.Println("Usecase: Aggregation complete.")
		return report, nil
	})
}

// sortBranches puts defaultBranch first and orders the rest by head commit date,
// newest first. Branches without a date go last, keeping their relative order.
func sortBranches(branches []domain.Branch, defaultBranch string) {
	sort.SliceStable(branches, func(i, j int) bool {
		bi, bj := branches[i], branches[j]
		if (bi.Name == defaultBranch) != (bj.Name == defaultBranch) {
			return bi.Name == defaultBranch
		}
		return bi.HeadDate.After(bj.HeadDate)
	})
}

func branchCommit(sha, author, message string, date, now time.Time) domain.BranchCommit {
	if message == "" {
		message = "No message"
	}
	return domain.BranchCommit{
		SHA:     shortSHA(sha),
		Author:  orUnknown(author),
		Date:    commitDate(date, now),
		Message: firstLine(message),
	}
}

func commitDate(t, now time.Time) domain.CommitDate {
	if t.IsZero() {
		return domain.CommitDate{Raw: "Unknown"}
	}
	daysAgo := int(now.Sub(t).Hours() / 24)
	if now.Before(t) {
		daysAgo = 0
	}
	return domain.CommitDate{
		Raw:       t.UTC().Format(time.RFC3339),
		Formatted: t.UTC().Format(branchDateLayout),
		DaysAgo:   &daysAgo,
	}
}

// ActiveBranches lists branches whose head commit falls inside the window, newest first.
func (a *Aggregator) ActiveBranches(ctx context.Context, owner, repo string, days int) domain.Result[domain.ActiveBranchesReport] {
	return run(ctx, a, "fetching active branches", func(ctx context.Context) (*domain.ActiveBranchesReport, error) {
		a.logger.Printf("Usecase: Starting active branch scan for %s/%s...", owner, repo)
		w := a.window(days)

		var (
			branches   []domain.Branch
			repository *domain.Repository
		)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			branches, err = a.fetcher.FetchBranches(egCtx, owner, repo, activeBranchesFetchLimit)
			return err
		})
		eg.Go(func() error {
			var err error
			repository, err = a.fetcher.FetchRepository(egCtx, owner, repo)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		report := &domain.ActiveBranchesReport{
			Owner:    owner,
			Repo:     repo,
			Days:     w.days,
			Branches: []domain.BranchStatus{},
		}
		if len(branches) == 0 {
			report.Message = fmt.Sprintf("No branches found in %s/%s", owner, repo)
			return report, nil
		}

		active := make([]domain.Branch, 0, len(branches))
		for _, b := range branches {
			if w.contains(b.HeadDate) {
				active = append(active, b)
			}
		}
		if len(active) == 0 {
			report.Message = fmt.Sprintf("No active branches found in the last %d days for %s/%s", w.days, owner, repo)
			return report, nil
		}

		sort.SliceStable(active, func(i, j int) bool { return active[i].HeadDate.After(active[j].HeadDate) })
		now := a.now()
		for _, b := range active {
			report.Branches = append(report.Branches, domain.BranchStatus{
				Name:      b.Name,
				IsDefault: b.Name == repository.DefaultBranch,
				Commit:    branchCommit(b.HeadSHA, b.HeadAuthor, b.HeadMessage, b.HeadDate, now),
			})
		}
		report.Count = len(report.Branches)
		return report, nil
	})
}

// CompareBranches reports how far head has diverged from base.
func (a *Aggregator) CompareBranches(ctx context.Context, owner, repo, base, head string) domain.Result[domain.BranchComparisonReport] {
	return run(ctx, a, "comparing branches", func(ctx context.Context) (*domain.BranchComparisonReport, error) {
		a.logger.Printf("Usecase: Comparing %s...%s in %s/%s...", base, head, owner, repo)
		cmp, err := a.fetcher.CompareBranches(ctx, owner, repo, base, head)
		if err != nil {
			var upstream *domain.UpstreamError
			if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
				return nil, &domain.Failure{
					Kind:       domain.KindUpstream,
					Message:    "Branch comparison not found - check if branches exist",
					StatusCode: http.StatusNotFound,
				}
			}
			return nil, err
		}

		status := cmp.Status
		if status == "" {
			status = "unknown"
		}
		report := &domain.BranchComparisonReport{
			Owner:         owner,
			Repo:          repo,
			BaseBranch:    base,
			CompareBranch: head,
			Status:        status,
			AheadBy:       cmp.AheadBy,
			BehindBy:      cmp.BehindBy,
			TotalCommits:  cmp.TotalCommits,
			RecentCommits: []domain.BranchCommit{},
		}
		now := a.now()
		for i, c := range cmp.Commits {
			if i == 5 {
				break
			}
			report.RecentCommits = append(report.RecentCommits, branchCommit(c.SHA, c.Author, c.Message, c.Timestamp, now))
		}
		return report, nil
	})
}
