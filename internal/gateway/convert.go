package gateway

import (
	"encoding/json"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/github-insights/internal/domain"
)

func toUser(u *github.User) *domain.User {
	return &domain.User{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		Company:     u.GetCompany(),
		Location:    u.GetLocation(),
		Bio:         u.GetBio(),
		Blog:        u.GetBlog(),
		HTMLURL:     u.GetHTMLURL(),
		PublicRepos: u.GetPublicRepos(),
		PublicGists: u.GetPublicGists(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
	}
}

func toRepository(r *github.Repository) domain.Repository {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	return domain.Repository{
		Owner:         r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		DefaultBranch: r.GetDefaultBranch(),
		HTMLURL:       r.GetHTMLURL(),
		LicenseKey:    r.GetLicense().GetKey(),
		LicenseName:   r.GetLicense().GetName(),
		Fork:          r.GetFork(),
		Private:       r.GetPrivate(),
		Archived:      r.GetArchived(),
		HasIssues:     r.GetHasIssues(),
		HasWiki:       r.GetHasWiki(),
		HasProjects:   r.GetHasProjects(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Watchers:      r.GetWatchersCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		Topics:        topics,
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
		PushedAt:      r.GetPushedAt().Time,
	}
}

func toEvent(e *github.Event) domain.Event {
	event := domain.Event{
		Type:      e.GetType(),
		Repo:      e.GetRepo().GetName(),
		CreatedAt: e.GetCreatedAt().Time,
	}
	if e.RawPayload != nil {
		var payload struct {
			Action string `json:"action"`
		}
		if err := json.Unmarshal(*e.RawPayload, &payload); err == nil {
			event.Action = payload.Action
		}
	}
	return event
}

func toCommit(c *github.RepositoryCommit, repo string) domain.Commit {
	author := c.GetCommit().GetAuthor()
	name := author.GetName()
	if name == "" {
		name = c.GetAuthor().GetLogin()
	}
	return domain.Commit{
		SHA:       c.GetSHA(),
		Author:    name,
		Message:   c.GetCommit().GetMessage(),
		Repo:      repo,
		URL:       c.GetHTMLURL(),
		Timestamp: author.GetDate().Time,
	}
}

func toPullRequest(pr *github.PullRequest) domain.PullRequest {
	return domain.PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		State:     pr.GetState(),
		Author:    pr.GetUser().GetLogin(),
		BaseRef:   pr.GetBase().GetRef(),
		HeadRef:   pr.GetHead().GetRef(),
		URL:       pr.GetHTMLURL(),
		Merged:    pr.GetMerged() || pr.MergedAt != nil,
		Draft:     pr.GetDraft(),
		Mergeable: pr.Mergeable,
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
		ClosedAt:  pr.GetClosedAt().Time,
		MergedAt:  pr.GetMergedAt().Time,
	}
}

func toIssue(i *github.Issue) domain.Issue {
	labels := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		labels = append(labels, l.GetName())
	}
	r := i.GetReactions()
	return domain.Issue{
		Number:   i.GetNumber(),
		Title:    i.GetTitle(),
		Body:     i.GetBody(),
		State:    i.GetState(),
		Author:   i.GetUser().GetLogin(),
		URL:      i.GetHTMLURL(),
		Labels:   labels,
		Comments: i.GetComments(),
		Reactions: domain.Reactions{
			Total:      r.GetTotalCount(),
			ThumbsUp:   r.GetPlusOne(),
			ThumbsDown: r.GetMinusOne(),
			Laugh:      r.GetLaugh(),
			Hooray:     r.GetHooray(),
			Confused:   r.GetConfused(),
			Heart:      r.GetHeart(),
			Rocket:     r.GetRocket(),
			Eyes:       r.GetEyes(),
		},
		IsPullRequest: i.IsPullRequest(),
		CreatedAt:     i.GetCreatedAt().Time,
		UpdatedAt:     i.GetUpdatedAt().Time,
		ClosedAt:      i.GetClosedAt().Time,
	}
}

func toContentEntry(c *github.RepositoryContent) domain.ContentEntry {
	return domain.ContentEntry{
		Name:        c.GetName(),
		Path:        c.GetPath(),
		Type:        c.GetType(),
		Size:        c.GetSize(),
		SHA:         c.GetSHA(),
		DownloadURL: c.GetDownloadURL(),
	}
}

func toCommunityProfile(m *github.CommunityHealthMetrics) *domain.CommunityProfile {
	profile := &domain.CommunityProfile{HealthPercentage: m.GetHealthPercentage()}
	if files := m.GetFiles(); files != nil {
		profile.HasReadme = files.Readme != nil
		profile.HasLicense = files.License != nil
		profile.HasContributing = files.Contributing != nil
		profile.HasCodeOfConduct = files.CodeOfConduct != nil || files.CodeOfConductFile != nil
		profile.HasIssueTemplate = files.IssueTemplate != nil
		profile.HasPullRequestTemplate = files.PullRequestTemplate != nil
	}
	return profile
}
