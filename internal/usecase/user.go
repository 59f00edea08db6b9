package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/scoring"
)

// UserContribution analyses a user's profile, repositories, recent activity and stars.
func (a *Aggregator) UserContribution(ctx context.Context, username string, days int, includePrivate bool) domain.Result[domain.UserContributionReport] {
	return run(ctx, a, "analyzing user contributions", func(ctx context.Context) (*domain.UserContributionReport, error) {
		a.logger.Printf("Usecase: Starting contribution analysis for user %s...", username)

		var (
			user    *domain.User
			repos   []domain.Repository
			events  []domain.Event
			starred []domain.Repository
		)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			user, err = a.fetcher.FetchUser(egCtx, username)
			return err
		})
		eg.Go(func() error {
			var err error
			repos, err = a.fetcher.FetchUserRepositories(egCtx, username, includePrivate)
			return err
		})
		eg.Go(func() error {
			var err error
			events, err = a.fetcher.FetchUserEvents(egCtx, username, includePrivate)
			return err
		})
		eg.Go(func() error {
			var err error
			starred, err = a.fetcher.FetchStarred(egCtx, username)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		a.logger.Println("Usecase: All data fetched successfully.")

		w := a.window(days)
		recent := make([]domain.Event, 0, len(events))
		for _, e := range events {
			if w.contains(e.CreatedAt) {
				recent = append(recent, e)
			}
		}

		report := &domain.UserContributionReport{
			Profile:            userProfile(user),
			AnalysisPeriodDays: w.days,
			IncludePrivate:     includePrivate,
			Repositories:       repositoryAnalytics(repos),
			Activity:           activityAnalytics(recent, w, a.now()),
			Languages:          languageAnalytics(repos),
			Collaboration:      collaborationAnalytics(repos, recent),
			Starred:            starredAnalytics(starred),
			GeneratedAt:        formatTime(a.now()),
		}
		a.logger.Println("Usecase: Aggregation complete.")
		return report, nil
	})
}

func userProfile(u *domain.User) domain.UserProfile {
	return domain.UserProfile{
		Username:    u.Login,
		Name:        u.Name,
		Company:     u.Company,
		Location:    u.Location,
		Bio:         u.Bio,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
		Following:   u.Following,
		CreatedAt:   formatTime(u.CreatedAt),
		URL:         u.HTMLURL,
	}
}

func repoSummary(r domain.Repository) domain.RepoSummary {
	return domain.RepoSummary{
		Name:        r.Name,
		FullName:    r.FullName,
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.Stars,
		Forks:       r.Forks,
		Topics:      r.Topics,
		UpdatedAt:   formatTime(r.UpdatedAt),
		URL:         r.HTMLURL,
	}
}

// topRepositories ranks repos with less, keeping input order for ties.
func topRepositories(repos []domain.Repository, n int, less func(a, b domain.Repository) bool) []domain.RepoSummary {
	sorted := make([]domain.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]domain.RepoSummary, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, repoSummary(r))
	}
	return out
}

func byStars(a, b domain.Repository) bool { return a.Stars > b.Stars }

func byUpdated(a, b domain.Repository) bool { return a.UpdatedAt.After(b.UpdatedAt) }

func languageCounts(repos []domain.Repository) *counter {
	langs := newCounter()
	for _, r := range repos {
		if r.Language != "" {
			langs.add(r.Language, 1)
		}
	}
	return langs
}

func repositoryAnalytics(repos []domain.Repository) domain.RepositoryAnalytics {
	out := domain.RepositoryAnalytics{TotalRepositories: len(repos)}
	starData := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		if r.Fork {
			out.ForkedRepositories++
		} else {
			out.OwnedRepositories++
		}
		out.TotalStars += r.Stars
		out.TotalForks += r.Forks
		out.TotalWatchers += r.Watchers
		starData = append(starData, float64(r.Stars))
	}
	if mean, err := starData.Mean(); err == nil {
		out.AverageStarsPerRepo = round2(mean)
	}
	out.TopByStars = topRepositories(repos, 5, byStars)
	out.RecentlyUpdated = topRepositories(repos, 5, byUpdated)
	out.Languages = languageCounts(repos).snapshot()
	return out
}

func activityAnalytics(events []domain.Event, w window, now time.Time) domain.ActivityAnalytics {
	types := newCounter()
	repos := newCounter()
	daily := make(map[string]int)
	hourly := make(map[int]int)
	for _, e := range events {
		types.add(e.Type, 1)
		if e.Repo != "" {
			repos.add(e.Repo, 1)
		}
		t := e.CreatedAt.UTC()
		daily[t.Format(scoring.DayLayout)]++
		hourly[t.Hour()]++
	}

	current, longest := scoring.Streaks(daily, now)
	return domain.ActivityAnalytics{
		TotalEvents:            len(events),
		EventTypes:             types.snapshot(),
		DailyActivity:          daily,
		HourlyActivity:         hourly,
		MostActiveRepositories: repos.top(10),
		CurrentStreak:          current,
		LongestStreak:          longest,
		ActivityScore:          scoring.ActivityScore(len(events), types.len(), len(daily), w.days),
		AverageEventsPerDay:    w.perDay(len(events)),
	}
}

func languageAnalytics(repos []domain.Repository) domain.LanguageAnalytics {
	langs := languageCounts(repos)
	withLanguage := 0
	starsByLanguage := newCounter()
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		withLanguage++
		starsByLanguage.add(r.Language, r.Stars)
	}
	return domain.LanguageAnalytics{
		TotalLanguages:         langs.len(),
		Languages:              langs.snapshot(),
		LanguageDiversityScore: ratio(langs.len(), withLanguage),
		MostUsedLanguage:       langs.first(),
		MostPopularByStars:     starsByLanguage.first(),
	}
}

func isPullRequestEvent(eventType string) bool {
	return strings.Contains(eventType, "PullRequest")
}

func isIssueEvent(eventType string) bool {
	return eventType == "IssuesEvent" || eventType == "IssueCommentEvent"
}

func collaborationAnalytics(repos []domain.Repository, events []domain.Event) domain.CollaborationAnalytics {
	out := domain.CollaborationAnalytics{}
	owned := 0
	for _, r := range repos {
		if r.Fork {
			out.ForkedRepositories++
		} else {
			owned++
		}
	}

	touched := make(map[string]struct{})
	for _, e := range events {
		switch {
		case isPullRequestEvent(e.Type):
			out.PullRequestEvents++
		case isIssueEvent(e.Type):
			out.IssueEvents++
		}
		if e.Repo != "" {
			touched[e.Repo] = struct{}{}
		}
	}
	out.RepositoriesTouched = len(touched)
	out.CollaborationScore = scoring.CollaborationScore(out.ForkedRepositories, out.PullRequestEvents, out.IssueEvents)
	out.ContributionDiversity = ratio(out.RepositoriesTouched, owned)
	return out
}

func starredAnalytics(starred []domain.Repository) domain.StarredAnalytics {
	topics := newCounter()
	for _, r := range starred {
		for _, t := range r.Topics {
			topics.add(t, 1)
		}
	}
	return domain.StarredAnalytics{
		TotalStarred: len(starred),
		Languages:    languageCounts(starred).snapshot(),
		TopTopics:    topics.top(10),
		MostStarred:  topRepositories(starred, 5, byStars),
	}
}
