package model

import (
	"encoding/json"
	"time"

	"github.com/google/go-github/v75/github"
)

// Event type names as delivered by the GitHub activity API
const (
	EventTypeCommitComment            = "CommitCommentEvent"
	EventTypeCreate                   = "CreateEvent"
	EventTypeDelete                   = "DeleteEvent"
	EventTypeFork                     = "ForkEvent"
	EventTypeGollum                   = "GollumEvent"
	EventTypeIssueComment             = "IssueCommentEvent"
	EventTypeIssues                   = "IssuesEvent"
	EventTypeMember                   = "MemberEvent"
	EventTypePublic                   = "PublicEvent"
	EventTypePullRequest              = "PullRequestEvent"
	EventTypePullRequestReview        = "PullRequestReviewEvent"
	EventTypePullRequestReviewComment = "PullRequestReviewCommentEvent"
	EventTypePush                     = "PushEvent"
	EventTypeRelease                  = "ReleaseEvent"
	EventTypeWatch                    = "WatchEvent"
)

// Event represents one activity record from the GitHub events API.
// Repos carries the multi-repository variant produced by upstream merging
// (e.g. one user starring several repositories); plain API events only set
// Repo. The payload stays raw until extraction so that unknown or malformed
// payloads degrade instead of failing the whole record.
type Event struct {
	ID        string               `json:"id"`
	Type      string               `json:"type"`
	Actor     *github.User         `json:"actor"`
	Repo      *github.Repository   `json:"repo,omitempty"`
	Repos     []*github.Repository `json:"repos,omitempty"`
	Public    bool                 `json:"public"`
	CreatedAt time.Time            `json:"created_at"`
	Payload   json.RawMessage      `json:"payload,omitempty"`

	// Saved is set by the upstream enhancement step when the user
	// bookmarked this item.
	Saved bool `json:"saved,omitempty"`
}

// ParsePayload parses the raw payload into the typed payload struct
// matching the event type (e.g. *github.PushEvent). It returns nil
// without error when no payload is present.
func (e *Event) ParsePayload() (any, error) {
	if len(e.Payload) == 0 {
		return nil, nil
	}

	raw := json.RawMessage(e.Payload)
	ge := &github.Event{
		Type:       github.Ptr(e.Type),
		RawPayload: &raw,
	}
	return ge.ParsePayload()
}

// IsPrivate reports whether the event happened on a private repository
func (e *Event) IsPrivate() bool {
	return !e.Public
}
