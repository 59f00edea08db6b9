package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-insights/internal/depfile"
	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/scoring"
)

// maxConcurrentFileFetches bounds the raw content downloads of DependencyAnalysis.
const maxConcurrentFileFetches = 4

// RepositoryHealth scores a repository against a checklist of good-practice markers.
func (a *Aggregator) RepositoryHealth(ctx context.Context, owner, repo string) domain.Result[domain.HealthReport] {
	return run(ctx, a, "checking repository health", func(ctx context.Context) (*domain.HealthReport, error) {
		a.logger.Printf("Usecase: Starting health check for %s/%s...", owner, repo)

		var (
			repository *domain.Repository
			contents   []domain.ContentEntry
			community  *domain.CommunityProfile
		)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			repository, err = a.fetcher.FetchRepository(egCtx, owner, repo)
			return err
		})
		eg.Go(func() error {
			var err error
			contents, err = a.fetcher.FetchContents(egCtx, owner, repo, "")
			return err
		})
		eg.Go(func() error {
			var err error
			community, err = a.fetcher.FetchCommunityProfile(egCtx, owner, repo)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		report := scoring.EvaluateHealth(scoring.HealthInput{
			Repository: *repository,
			Contents:   contents,
			Community:  community,
			Now:        a.now(),
		})
		report.Owner = owner
		report.Repo = repo
		a.logger.Printf("Usecase: Health score %d%% (%s).", report.Percentage, report.Status)
		return &report, nil
	})
}

// DependencyAnalysis finds the dependency manifests at the top level of a repository
// and analyses each one. A manifest that fails to parse is reported on its own entry;
// a failed download fails the whole analysis.
func (a *Aggregator) DependencyAnalysis(ctx context.Context, owner, repo string) domain.Result[domain.DependencyReport] {
	return run(ctx, a, "analyzing dependency files", func(ctx context.Context) (*domain.DependencyReport, error) {
		a.logger.Printf("Usecase: Starting dependency analysis for %s/%s...", owner, repo)

		contents, err := a.fetcher.FetchContents(ctx, owner, repo, "")
		if err != nil {
			return nil, err
		}
		manifests := make([]domain.ContentEntry, 0, len(contents))
		for _, c := range contents {
			if c.Type == "file" && depfile.IsManifest(c.Name) {
				manifests = append(manifests, c)
			}
		}

		files := make([]domain.DependencyFileReport, len(manifests))
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(maxConcurrentFileFetches)
		for i, m := range manifests {
			eg.Go(func() error {
				a.logger.Printf("Usecase: Analyzing %s...", m.Path)
				content, err := a.fetcher.FetchFileContent(egCtx, owner, repo, m.Path)
				if err != nil {
					return err
				}
				files[i] = analyzeManifest(m, content)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		a.logger.Println("Usecase: Aggregation complete.")
		return &domain.DependencyReport{
			Owner:           owner,
			Repo:            repo,
			TotalFilesFound: len(files),
			Files:           files,
		}, nil
	})
}

func analyzeManifest(entry domain.ContentEntry, content string) domain.DependencyFileReport {
	format, analysis, err := depfile.Analyze(entry.Name, content)
	out := domain.DependencyFileReport{
		FileName: entry.Name,
		Path:     entry.Path,
		Format:   string(format),
		Size:     entry.Size,
	}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Analysis = analysis
	return out
}
