package domain

// RepoSummary is the short form of a repository used in rankings.
type RepoSummary struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Topics      []string `json:"topics,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// UserProfile is the profile section of a user report.
type UserProfile struct {
	Username    string `json:"username"`
	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Bio         string `json:"bio,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at,omitempty"`
	URL         string `json:"url,omitempty"`
}

// RepositoryAnalytics summarises the repositories a user owns or forked.
type RepositoryAnalytics struct {
	TotalRepositories   int            `json:"total_repositories"`
	OwnedRepositories   int            `json:"owned_repositories"`
	ForkedRepositories  int            `json:"forked_repositories"`
	TotalStars          int            `json:"total_stars"`
	TotalForks          int            `json:"total_forks"`
	TotalWatchers       int            `json:"total_watchers"`
	AverageStarsPerRepo float64        `json:"average_stars_per_repo"`
	TopByStars          []RepoSummary  `json:"top_repositories_by_stars"`
	RecentlyUpdated     []RepoSummary  `json:"recently_updated"`
	Languages           map[string]int `json:"languages"`
}

// NamedCount is a (name, count) pair in a ranking.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ActivityAnalytics summarises a user's events inside the lookback window.
type ActivityAnalytics struct {
	TotalEvents            int            `json:"total_events"`
	EventTypes             map[string]int `json:"event_types"`
	DailyActivity          map[string]int `json:"daily_activity"`
	HourlyActivity         map[int]int    `json:"hourly_activity"`
	MostActiveRepositories []NamedCount   `json:"most_active_repositories"`
	CurrentStreak          int            `json:"current_streak"`
	LongestStreak          int            `json:"longest_streak"`
	ActivityScore          int            `json:"activity_score"`
	AverageEventsPerDay    float64        `json:"average_events_per_day"`
}

// LanguageAnalytics summarises repository languages.
type LanguageAnalytics struct {
	TotalLanguages         int            `json:"total_languages"`
	Languages              map[string]int `json:"languages"`
	LanguageDiversityScore float64        `json:"language_diversity_score"`
	MostUsedLanguage       *string        `json:"most_used_language"`
	MostPopularByStars     *string        `json:"most_popular_language_by_stars"`
}

// CollaborationAnalytics summarises how a user works with others.
type CollaborationAnalytics struct {
	ForkedRepositories    int     `json:"forked_repositories"`
	PullRequestEvents     int     `json:"pull_request_events"`
	IssueEvents           int     `json:"issue_events"`
	RepositoriesTouched   int     `json:"repositories_contributed_to"`
	CollaborationScore    int     `json:"collaboration_score"`
	ContributionDiversity float64 `json:"contribution_diversity"`
}

// StarredAnalytics summarises the repositories a user starred.
type StarredAnalytics struct {
	TotalStarred int            `json:"total_starred"`
	Languages    map[string]int `json:"languages"`
	TopTopics    []NamedCount   `json:"top_topics"`
	MostStarred  []RepoSummary  `json:"most_starred"`
}

// UserContributionReport is the output of the user contribution aggregator.
type UserContributionReport struct {
	Profile            UserProfile            `json:"profile"`
	AnalysisPeriodDays int                    `json:"analysis_period_days"`
	IncludePrivate     bool                   `json:"include_private"`
	Repositories       RepositoryAnalytics    `json:"repositories"`
	Activity           ActivityAnalytics      `json:"activity"`
	Languages          LanguageAnalytics      `json:"languages"`
	Collaboration      CollaborationAnalytics `json:"collaboration"`
	Starred            StarredAnalytics       `json:"starred"`
	GeneratedAt        string                 `json:"generated_at"`
}

// ContributorSummary is one ranked contributor.
type ContributorSummary struct {
	Username      string `json:"username"`
	Contributions int    `json:"contributions"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}

// ContributorAnalytics is the contributors section of a repository report.
type ContributorAnalytics struct {
	TotalContributors  int                  `json:"total_contributors"`
	TotalContributions int                  `json:"total_contributions"`
	TopContributors    []ContributorSummary `json:"top_contributors"`
}

// CommitSummary is the display form of a commit.
type CommitSummary struct {
	SHA     string `json:"sha"`
	Author  string `json:"author"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
	URL     string `json:"url,omitempty"`
}

// CommitAnalytics is the commits section of a repository report.
type CommitAnalytics struct {
	TotalCommits  int             `json:"total_commits"`
	UniqueAuthors int             `json:"unique_authors"`
	CommitsPerDay float64         `json:"commits_per_day"`
	TopCommitters []NamedCount    `json:"top_committers"`
	RecentCommits []CommitSummary `json:"recent_commits"`
}

// ItemAnalytics is the shared shape of the pull request and issue sections.
type ItemAnalytics struct {
	Total        int            `json:"total"`
	RecentCount  int            `json:"recent_count"`
	ByState      map[string]int `json:"by_state"`
	RecentPerDay float64        `json:"recent_per_day"`
}

// RepositoryContributionReport is the output of the repository contribution aggregator.
type RepositoryContributionReport struct {
	Repository         RepoSummary          `json:"repository"`
	OpenIssues         int                  `json:"open_issues"`
	AnalysisPeriodDays int                  `json:"analysis_period_days"`
	Contributors       ContributorAnalytics `json:"contributors"`
	Commits            CommitAnalytics      `json:"commits"`
	PullRequests       ItemAnalytics        `json:"pull_requests"`
	Issues             ItemAnalytics        `json:"issues"`
	GeneratedAt        string               `json:"generated_at"`
}

// PRInfo is the pr_info section of a PR review summary.
type PRInfo struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	State       string `json:"state"`
	Merged      bool   `json:"merged"`
	Mergeable   *bool  `json:"mergeable"`
	Draft       bool   `json:"draft"`
	Author      string `json:"author"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	BaseBranch  string `json:"base_branch"`
	HeadBranch  string `json:"head_branch"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ChangedFile is one entry in the file_changes section.
type ChangedFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	Language  string `json:"language"`
}

// FileChangeAnalysis is the file_changes section.
type FileChangeAnalysis struct {
	TotalFiles     int            `json:"total_files"`
	TotalAdditions int            `json:"total_additions"`
	TotalDeletions int            `json:"total_deletions"`
	NetChanges     int            `json:"net_changes"`
	FileTypes      map[string]int `json:"file_types"`
	Languages      map[string]int `json:"languages"`
	LargeFiles     []ChangedFile  `json:"large_files"`
	Changes        []ChangedFile  `json:"changes"`
}

// PRCommitAnalysis is the commits section of a PR review summary.
type PRCommitAnalysis struct {
	TotalCommits  int             `json:"total_commits"`
	UniqueAuthors int             `json:"unique_authors"`
	Authors       map[string]int  `json:"authors"`
	Commits       []CommitSummary `json:"commits"`
}

// ReviewSummary is one review in the reviews section.
type ReviewSummary struct {
	ID          int64  `json:"id"`
	State       string `json:"state"`
	Reviewer    string `json:"reviewer"`
	Body        string `json:"body"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	URL         string `json:"url,omitempty"`
}

// ReviewAnalysis is the reviews section.
type ReviewAnalysis struct {
	TotalReviews int             `json:"total_reviews"`
	ReviewStates map[string]int  `json:"review_states"`
	Reviewers    map[string]int  `json:"reviewers"`
	Reviews      []ReviewSummary `json:"reviews"`
}

// CommentSummary is one comment in the comments section.
type CommentSummary struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	Path      string `json:"path,omitempty"`
	Line      int    `json:"line,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	URL       string `json:"url,omitempty"`
}

// CommentAnalysis is the comments section.
type CommentAnalysis struct {
	TotalComments   int              `json:"total_comments"`
	ReviewComments  int              `json:"review_comments"`
	GeneralComments int              `json:"general_comments"`
	Commenters      map[string]int   `json:"commenters"`
	Comments        []CommentSummary `json:"comments"`
}

// Complexity is the complexity part of PR insights.
type Complexity struct {
	Score   int      `json:"score"`
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

// ReviewStatus is the review status part of PR insights.
type ReviewStatus struct {
	Status                string `json:"status"`
	ApprovedCount         int    `json:"approved_count"`
	ChangesRequestedCount int    `json:"changes_requested_count"`
	CommentCount          int    `json:"comment_count"`
	TotalReviews          int    `json:"total_reviews"`
}

// PRInsights is derived from the other PR sections without further fetches.
type PRInsights struct {
	Complexity      Complexity   `json:"complexity_score"`
	ReviewStatus    ReviewStatus `json:"review_status"`
	RiskFactors     []string     `json:"risk_factors"`
	Recommendations []string     `json:"recommendations"`
}

// PRReviewReport is the output of the PR review summary aggregator.
type PRReviewReport struct {
	PRInfo      PRInfo             `json:"pr_info"`
	FileChanges FileChangeAnalysis `json:"file_changes"`
	Commits     PRCommitAnalysis   `json:"commits"`
	Reviews     ReviewAnalysis     `json:"reviews"`
	Comments    CommentAnalysis    `json:"comments"`
	Insights    PRInsights         `json:"insights"`
}

// CommitDate renders a timestamp in raw, formatted and elapsed form.
type CommitDate struct {
	Raw       string `json:"raw"`
	Formatted string `json:"formatted,omitempty"`
	DaysAgo   *int   `json:"days_ago,omitempty"`
}

// BranchCommit is the head commit of a branch.
type BranchCommit struct {
	SHA     string     `json:"sha"`
	Author  string     `json:"author"`
	Date    CommitDate `json:"date"`
	Message string     `json:"message"`
}

// BranchPullRequest is the pull request opened from a branch.
type BranchPullRequest struct {
	Number int    `json:"number"`
	State  string `json:"state"`
	Merged bool   `json:"merged"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// BranchStatus is one entry of a branch overview.
type BranchStatus struct {
	Name        string             `json:"name"`
	IsDefault   bool               `json:"is_default"`
	Commit      BranchCommit       `json:"commit"`
	PullRequest *BranchPullRequest `json:"pull_request"`
}

// BranchOverviewReport is the output of the branch status aggregator.
type BranchOverviewReport struct {
	Owner         string         `json:"owner"`
	Repo          string         `json:"repo"`
	DefaultBranch string         `json:"default_branch"`
	TotalBranches int            `json:"total_branches"`
	Branches      []BranchStatus `json:"branches"`
	Message       string         `json:"message,omitempty"`
}

// ActiveBranchesReport lists branches with recent head commits.
type ActiveBranchesReport struct {
	Owner    string         `json:"owner"`
	Repo     string         `json:"repo"`
	Days     int            `json:"days"`
	Count    int            `json:"count"`
	Branches []BranchStatus `json:"branches"`
	Message  string         `json:"message,omitempty"`
}

// BranchComparisonReport compares two branches.
type BranchComparisonReport struct {
	Owner         string         `json:"owner"`
	Repo          string         `json:"repo"`
	BaseBranch    string         `json:"base_branch"`
	CompareBranch string         `json:"compare_branch"`
	Status        string         `json:"status"`
	AheadBy       int            `json:"ahead_by"`
	BehindBy      int            `json:"behind_by"`
	TotalCommits  int            `json:"total_commits"`
	RecentCommits []BranchCommit `json:"recent_commits"`
}

// HealthChecks records which good-practice markers were found.
type HealthChecks struct {
	HasReadme         bool     `json:"has_readme"`
	HasLicense        bool     `json:"has_license"`
	HasSecurityPolicy bool     `json:"has_security_policy"`
	HasContributing   bool     `json:"has_contributing"`
	HasCodeOfConduct  bool     `json:"has_code_of_conduct"`
	HasCI             bool     `json:"has_ci"`
	CIFiles           []string `json:"ci_files"`
	Manifests         []string `json:"dependency_manifests"`
	DaysSinceUpdate   *int     `json:"days_since_update"`
}

// HealthReport is the output of the repository health aggregator.
type HealthReport struct {
	Owner                     string       `json:"owner"`
	Repo                      string       `json:"repo"`
	Score                     int          `json:"score"`
	MaxScore                  int          `json:"max_score"`
	Percentage                int          `json:"percentage"`
	Status                    string       `json:"status"`
	Checks                    HealthChecks `json:"checks"`
	Issues                    []string     `json:"issues"`
	Recommendations           []string     `json:"recommendations"`
	CommunityHealthPercentage *int         `json:"community_health_percentage"`
}

// DependencyFileReport is the analysis of one manifest file.
type DependencyFileReport struct {
	FileName string `json:"file_name"`
	Path     string `json:"file_path"`
	Format   string `json:"format"`
	Size     int    `json:"size"`
	Analysis any    `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DependencyReport is the output of the dependency file analysis.
type DependencyReport struct {
	Owner           string                 `json:"owner"`
	Repo            string                 `json:"repo"`
	TotalFilesFound int                    `json:"total_files_found"`
	Files           []DependencyFileReport `json:"dependency_files"`
}
