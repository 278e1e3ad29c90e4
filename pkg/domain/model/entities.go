package model

import (
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
)

// CardOrigin tells which kind of raw record a set of entities came from
type CardOrigin string

const (
	OriginEvent        CardOrigin = "event"
	OriginNotification CardOrigin = "notification"
)

// Comment normalizes issue comments, review comments, commit comments and
// pull request reviews into a single shape; the API models them as four
// distinct types that render identically.
type Comment struct {
	ID      int64        `json:"id,omitempty"`
	Body    string       `json:"body,omitempty"`
	URL     string       `json:"url,omitempty"`
	HTMLURL string       `json:"html_url,omitempty"`
	User    *github.User `json:"user,omitempty"`

	// Synthesized marks a stand-in built from the subject issue/PR body
	// rather than an actual comment. Its ID is the issue ID, never an
	// issuecomment anchor target.
	Synthesized bool `json:"synthesized,omitempty"`
}

// BestURL returns the browsable URL when known, falling back to the API URL
func (c *Comment) BestURL() string {
	if c == nil {
		return ""
	}
	if c.HTMLURL != "" {
		return c.HTMLURL
	}
	return c.URL
}

// Commit normalizes push head-commits and notification commit subjects
type Commit struct {
	SHA         string `json:"sha,omitempty"`
	Message     string `json:"message,omitempty"`
	URL         string `json:"url,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
	AuthorLogin string `json:"author_login,omitempty"`
}

// IssueOrPullRequest is the explicit union over issues and pull requests.
// Exactly one of the two source shapes produces a value; the extractor never
// merges both. Synthesized marks stand-ins built from a bare notification
// subject: their Body, State and Comments are unknown rather than empty.
type IssueOrPullRequest struct {
	IsPullRequest bool            `json:"is_pull_request"`
	Synthesized   bool            `json:"synthesized,omitempty"`
	ID            int64           `json:"id,omitempty"`
	Number        int             `json:"number,omitempty"`
	Title         string          `json:"title,omitempty"`
	Body          string          `json:"body,omitempty"`
	State         string          `json:"state,omitempty"`
	Merged        bool            `json:"merged,omitempty"`
	Draft         bool            `json:"draft,omitempty"`
	Comments      int             `json:"comments,omitempty"`
	URL           string          `json:"url,omitempty"`
	HTMLURL       string          `json:"html_url,omitempty"`
	User          *github.User    `json:"user,omitempty"`
	Labels        []*github.Label `json:"labels,omitempty"`
	CreatedAt     time.Time       `json:"created_at,omitzero"`
	UpdatedAt     time.Time       `json:"updated_at,omitzero"`
}

// IssueEntity converts an API issue into the union shape
func IssueEntity(issue *github.Issue) *IssueOrPullRequest {
	if issue == nil {
		return nil
	}
	return &IssueOrPullRequest{
		IsPullRequest: issue.PullRequestLinks != nil,
		ID:            issue.GetID(),
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		State:         issue.GetState(),
		Comments:      issue.GetComments(),
		URL:           issue.GetURL(),
		HTMLURL:       issue.GetHTMLURL(),
		User:          issue.GetUser(),
		Labels:        issue.Labels,
		CreatedAt:     issue.GetCreatedAt().Time,
		UpdatedAt:     issue.GetUpdatedAt().Time,
	}
}

// PullRequestEntity converts an API pull request into the union shape
func PullRequestEntity(pr *github.PullRequest) *IssueOrPullRequest {
	if pr == nil {
		return nil
	}
	return &IssueOrPullRequest{
		IsPullRequest: true,
		ID:            pr.GetID(),
		Number:        pr.GetNumber(),
		Title:         pr.GetTitle(),
		Body:          pr.GetBody(),
		State:         pr.GetState(),
		Merged:        pr.GetMerged() || pr.MergedAt != nil,
		Draft:         pr.GetDraft(),
		Comments:      pr.GetComments(),
		URL:           pr.GetURL(),
		HTMLURL:       pr.GetHTMLURL(),
		User:          pr.GetUser(),
		Labels:        pr.Labels,
		CreatedAt:     pr.GetCreatedAt().Time,
		UpdatedAt:     pr.GetUpdatedAt().Time,
	}
}

// ExtractedEntities is the normalized bag of sub-entities pulled out of one
// raw event or notification. All fields are derived per call; nothing here
// aliases mutable state shared between invocations.
type ExtractedEntities struct {
	Origin CardOrigin

	Actor *github.User

	// AllRepos holds every repository with a resolvable owner and name,
	// order preserving. Repos is the same list after the repoIsKnown
	// elision of the first entry and feeds the RepositoryList row.
	AllRepos []*github.Repository
	Repos    []*github.Repository

	Commits            []*Commit
	Comment            *Comment
	IssueOrPullRequest *IssueOrPullRequest
	Release            *github.RepositoryRelease
	ForkTarget         *github.Repository
	Users              []*github.User
	Pages              []*github.Page

	// BranchName is empty unless the underlying ref is a branch
	BranchName string
	// RefType is the declared ref kind of create/delete events
	// ("branch", "tag" or "repository")
	RefType   string
	Action    string
	ForcePush bool

	IsPrivate bool
	IsRead    bool
	IsSaved   bool
	IsBot     bool
	AvatarURL string
}

// Repo returns the single-repository shortcut: the one entry of AllRepos
// when exactly one resolved, nil otherwise. The repoIsKnown elision does not
// apply here.
func (e *ExtractedEntities) Repo() *github.Repository {
	if len(e.AllRepos) == 1 {
		return e.AllRepos[0]
	}
	return nil
}

// RepoFullName returns the owner/repo full name of a repository object.
// Activity API events put the full name in the name field and omit the
// rest, so both fields are consulted.
func RepoFullName(repo *github.Repository) string {
	if repo == nil {
		return ""
	}
	if full := repo.GetFullName(); full != "" {
		return full
	}
	return repo.GetName()
}

// IsBotLogin reports whether a login belongs to a GitHub App bot
func IsBotLogin(login string) bool {
	return strings.Contains(login, "[bot]")
}
