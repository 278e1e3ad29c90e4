package model

import (
	"time"

	"github.com/google/go-github/v75/github"
)

// Notification subject types as delivered by the GitHub notifications API
const (
	SubjectTypeCommit                       = "Commit"
	SubjectTypeIssue                        = "Issue"
	SubjectTypePullRequest                  = "PullRequest"
	SubjectTypeRelease                      = "Release"
	SubjectTypeRepositoryInvitation         = "RepositoryInvitation"
	SubjectTypeRepositoryVulnerabilityAlert = "RepositoryVulnerabilityAlert"
)

// Notification represents one record from the GitHub notifications API,
// optionally enriched by an upstream step that resolved the subject into a
// concrete sub-entity. Enriched fields may be absent even for their matching
// subject type; extraction synthesizes stand-ins in that case.
type Notification struct {
	ID         string                      `json:"id"`
	Unread     bool                        `json:"unread"`
	Reason     string                      `json:"reason"`
	UpdatedAt  time.Time                   `json:"updated_at"`
	LastReadAt time.Time                   `json:"last_read_at,omitzero"`
	Subject    *github.NotificationSubject `json:"subject"`
	Repository *github.Repository          `json:"repository"`

	// Saved is set by the upstream enhancement step when the user
	// bookmarked this item.
	Saved bool `json:"saved,omitempty"`

	// Denormalized sub-entities resolved by the upstream enrichment step
	Comment     *Comment                  `json:"comment,omitempty"`
	Commit      *Commit                   `json:"commit,omitempty"`
	Issue       *github.Issue             `json:"issue,omitempty"`
	PullRequest *github.PullRequest       `json:"pullRequest,omitempty"`
	Release     *github.RepositoryRelease `json:"release,omitempty"`
}

// SubjectType returns the subject type, or an empty string when the
// subject is missing entirely.
func (n *Notification) SubjectType() string {
	if n.Subject == nil {
		return ""
	}
	return n.Subject.GetType()
}

// IsPrivate reports whether the notification refers to a private repository
func (n *Notification) IsPrivate() bool {
	return n.Repository.GetPrivate()
}
