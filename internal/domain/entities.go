// Package domain contains the core data structures and domain logic for the application.
//
// Entities are immutable snapshots decoded from one GitHub API response. A zero time.Time
// on any timestamp field means the value was missing or could not be parsed.
package domain

import "time"

// User is a GitHub account profile.
type User struct {
	Login       string
	Name        string
	Company     string
	Location    string
	Bio         string
	Blog        string
	HTMLURL     string
	PublicRepos int
	PublicGists int
	Followers   int
	Following   int
	CreatedAt   time.Time
}

// Repository is the metadata of a single repository.
type Repository struct {
	Owner         string
	Name          string
	FullName      string
	Description   string
	Language      string
	DefaultBranch string
	HTMLURL       string
	LicenseKey    string
	LicenseName   string
	Fork          bool
	Private       bool
	Archived      bool
	HasIssues     bool
	HasWiki       bool
	HasProjects   bool
	Stars         int
	Forks         int
	Watchers      int
	OpenIssues    int
	Topics        []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PushedAt      time.Time
}

// Event is one entry of a user's public (or private) activity feed.
type Event struct {
	Type      string
	Repo      string
	Action    string
	CreatedAt time.Time
}

// Commit is a commit with its author metadata.
// Message holds the full commit message; callers take the first line for display.
type Commit struct {
	SHA       string
	Author    string
	Message   string
	Repo      string
	URL       string
	Timestamp time.Time
}

// Contributor is an entry of the repository contributor ranking.
type Contributor struct {
	Login         string
	Contributions int
	AvatarURL     string
}

// PullRequest holds the fields of a pull request used by the analytics.
type PullRequest struct {
	Number    int
	Title     string
	Body      string
	State     string
	Author    string
	BaseRef   string
	HeadRef   string
	URL       string
	Merged    bool
	Draft     bool
	Mergeable *bool // nil while GitHub has not computed mergeability
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  time.Time
	MergedAt  time.Time
}

// Reactions is the reaction rollup of an issue or comment.
type Reactions struct {
	Total      int `json:"total"`
	ThumbsUp   int `json:"thumbs_up"`
	ThumbsDown int `json:"thumbs_down"`
	Laugh      int `json:"laugh"`
	Hooray     int `json:"hooray"`
	Confused   int `json:"confused"`
	Heart      int `json:"heart"`
	Rocket     int `json:"rocket"`
	Eyes       int `json:"eyes"`
}

// Issue is a repository issue. The issues endpoint also returns pull requests;
// those carry IsPullRequest.
type Issue struct {
	Number        int
	Title         string
	Body          string
	State         string
	Author        string
	URL           string
	Labels        []string
	Comments      int
	Reactions     Reactions
	IsPullRequest bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ClosedAt      time.Time
}

// FileChange is one file touched by a pull request.
type FileChange struct {
	Filename  string
	Status    string
	Additions int
	Deletions int
	Changes   int
}

// Review is a submitted pull request review.
type Review struct {
	ID          int64
	State       string
	Reviewer    string
	Body        string
	URL         string
	SubmittedAt time.Time
}

// Comment kinds.
const (
	CommentKindReview  = "review"
	CommentKindGeneral = "general"
)

// Comment is either an inline review comment or a general conversation comment.
type Comment struct {
	ID        int64
	Kind      string
	Author    string
	Body      string
	Path      string
	Line      int
	URL       string
	CreatedAt time.Time
}

// Branch is a branch together with its head commit.
type Branch struct {
	Name        string
	HeadSHA     string
	HeadAuthor  string
	HeadMessage string
	HeadDate    time.Time
}

// ContentEntry is one item of a repository directory listing.
type ContentEntry struct {
	Name        string
	Path        string
	Type        string // "file", "dir", "symlink" or "submodule"
	Size        int
	SHA         string
	DownloadURL string
}

// CommunityProfile is GitHub's community health summary for a repository.
type CommunityProfile struct {
	HealthPercentage       int
	HasReadme              bool
	HasLicense             bool
	HasContributing        bool
	HasCodeOfConduct       bool
	HasIssueTemplate       bool
	HasPullRequestTemplate bool
}

// Comparison is the result of comparing two refs.
type Comparison struct {
	Status       string
	AheadBy      int
	BehindBy     int
	TotalCommits int
	Commits      []Commit
}
