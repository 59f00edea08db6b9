package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/scoring"
)

// PullRequestReview summarises a pull request for a reviewer.
func (a *Aggregator) PullRequestReview(ctx context.Context, owner, repo string, number int) domain.Result[domain.PRReviewReport] {
	return run(ctx, a, "generating the PR review summary", func(ctx context.Context) (*domain.PRReviewReport, error) {
		a.logger.Printf("Usecase: Starting review summary for %s/%s#%d...", owner, repo, number)

		var (
			pr       *domain.PullRequest
			files    []domain.FileChange
			commits  []domain.Commit
			reviews  []domain.Review
			comments []domain.Comment
		)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			pr, err = a.fetcher.FetchPullRequest(egCtx, owner, repo, number)
			return err
		})
		eg.Go(func() error {
			var err error
			files, err = a.fetcher.FetchPullRequestFiles(egCtx, owner, repo, number)
			return err
		})
		eg.Go(func() error {
			var err error
			commits, err = a.fetcher.FetchPullRequestCommits(egCtx, owner, repo, number)
			return err
		})
		eg.Go(func() error {
			var err error
			reviews, err = a.fetcher.FetchPullRequestReviews(egCtx, owner, repo, number)
			return err
		})
		eg.Go(func() error {
			var err error
			comments, err = a.fetcher.FetchPullRequestComments(egCtx, owner, repo, number)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		a.logger.Println("Usecase: All data fetched successfully.")

		report := &domain.PRReviewReport{
			PRInfo:      prInfo(pr),
			FileChanges: fileChangeAnalysis(files),
			Commits:     prCommitAnalysis(commits),
			Reviews:     reviewAnalysis(reviews),
			Comments:    commentAnalysis(comments),
		}
		report.Insights = prInsights(report)
		a.logger.Println("Usecase: Aggregation complete.")
		return report, nil
	})
}

func prInfo(pr *domain.PullRequest) domain.PRInfo {
	return domain.PRInfo{
		Number:      pr.Number,
		Title:       pr.Title,
		State:       pr.State,
		Merged:      pr.Merged,
		Mergeable:   pr.Mergeable,
		Draft:       pr.Draft,
		Author:      pr.Author,
		CreatedAt:   formatTime(pr.CreatedAt),
		UpdatedAt:   formatTime(pr.UpdatedAt),
		BaseBranch:  pr.BaseRef,
		HeadBranch:  pr.HeadRef,
		URL:         pr.URL,
		Description: pr.Body,
	}
}

func fileChangeAnalysis(files []domain.FileChange) domain.FileChangeAnalysis {
	out := domain.FileChangeAnalysis{
		TotalFiles: len(files),
		FileTypes:  make(map[string]int),
		Languages:  make(map[string]int),
		LargeFiles: []domain.ChangedFile{},
		Changes:    make([]domain.ChangedFile, 0, len(files)),
	}
	for _, f := range files {
		out.TotalAdditions += f.Additions
		out.TotalDeletions += f.Deletions
		if ext, ok := scoring.Extension(f.Filename); ok {
			out.FileTypes[ext]++
		}
		lang := scoring.DetectLanguage(f.Filename)
		out.Languages[lang]++

		changed := domain.ChangedFile{
			Filename:  f.Filename,
			Status:    f.Status,
			Additions: f.Additions,
			Deletions: f.Deletions,
			Changes:   f.Changes,
			Language:  lang,
		}
		if f.Changes > scoring.LargeFileThreshold {
			out.LargeFiles = append(out.LargeFiles, changed)
		}
		out.Changes = append(out.Changes, changed)
	}
	out.NetChanges = out.TotalAdditions - out.TotalDeletions
	return out
}

func prCommitAnalysis(commits []domain.Commit) domain.PRCommitAnalysis {
	authors := newCounter()
	summaries := make([]domain.CommitSummary, 0, len(commits))
	for _, c := range commits {
		authors.add(orUnknown(c.Author), 1)
		summaries = append(summaries, summarizeCommit(c))
	}
	return domain.PRCommitAnalysis{
		TotalCommits:  len(commits),
		UniqueAuthors: authors.len(),
		Authors:       authors.snapshot(),
		Commits:       summaries,
	}
}

func reviewAnalysis(reviews []domain.Review) domain.ReviewAnalysis {
	out := domain.ReviewAnalysis{
		TotalReviews: len(reviews),
		ReviewStates: make(map[string]int),
		Reviewers:    make(map[string]int),
		Reviews:      make([]domain.ReviewSummary, 0, len(reviews)),
	}
	for _, r := range reviews {
		reviewer := orUnknown(r.Reviewer)
		out.ReviewStates[r.State]++
		out.Reviewers[reviewer]++
		out.Reviews = append(out.Reviews, domain.ReviewSummary{
			ID:          r.ID,
			State:       r.State,
			Reviewer:    reviewer,
			Body:        r.Body,
			SubmittedAt: formatTime(r.SubmittedAt),
			URL:         r.URL,
		})
	}
	return out
}

func commentAnalysis(comments []domain.Comment) domain.CommentAnalysis {
	out := domain.CommentAnalysis{
		TotalComments: len(comments),
		Commenters:    make(map[string]int),
		Comments:      make([]domain.CommentSummary, 0, len(comments)),
	}
	for _, c := range comments {
		author := orUnknown(c.Author)
		if c.Kind == domain.CommentKindReview {
			out.ReviewComments++
		} else {
			out.GeneralComments++
		}
		out.Commenters[author]++
		out.Comments = append(out.Comments, domain.CommentSummary{
			ID:        c.ID,
			Kind:      c.Kind,
			Author:    author,
			Body:      c.Body,
			Path:      c.Path,
			Line:      c.Line,
			CreatedAt: formatTime(c.CreatedAt),
			URL:       c.URL,
		})
	}
	return out
}

// prInsights derives the insights section from the other sections of the report.
func prInsights(r *domain.PRReviewReport) domain.PRInsights {
	filenames := make([]string, 0, len(r.FileChanges.Changes))
	for _, f := range r.FileChanges.Changes {
		filenames = append(filenames, f.Filename)
	}
	signals := scoring.PRSignals{
		TotalFiles:     r.FileChanges.TotalFiles,
		TotalAdditions: r.FileChanges.TotalAdditions,
		TotalDeletions: r.FileChanges.TotalDeletions,
		Languages:      len(r.FileChanges.Languages),
		LargeFiles:     len(r.FileChanges.LargeFiles),
		Commits:        r.Commits.TotalCommits,
		Reviews:        r.Reviews.TotalReviews,
		Description:    r.PRInfo.Description,
		Mergeable:      r.PRInfo.Mergeable,
		Filenames:      filenames,
	}
	return domain.PRInsights{
		Complexity:      scoring.Complexity(signals),
		ReviewStatus:    scoring.AssessReviewStatus(r.Reviews.ReviewStates, r.Reviews.TotalReviews),
		RiskFactors:     scoring.RiskFactors(signals),
		Recommendations: scoring.Recommendations(signals),
	}
}
