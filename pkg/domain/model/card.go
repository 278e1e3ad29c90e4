package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ViewMode selects the card density requested by the renderer
type ViewMode string

const (
	ViewModeCompact  ViewMode = "compact"
	ViewModeExpanded ViewMode = "expanded"
)

// Validate returns an error for any value outside the declared enum. An
// invalid view mode is a programming contract violation by the caller, the
// only failure the composition pipeline propagates.
func (v ViewMode) Validate() error {
	switch v {
	case ViewModeCompact, ViewModeExpanded:
		return nil
	default:
		return goerr.New("invalid view mode", goerr.V("viewMode", string(v)))
	}
}

// ComposeOptions carries the per-invocation view parameters
type ComposeOptions struct {
	ViewMode    ViewMode `json:"view_mode"`
	RepoIsKnown bool     `json:"repo_is_known"`
	IsFocused   bool     `json:"is_focused"`
}

// RowKind discriminates the Row variant
type RowKind string

const (
	RowKindActorAction        RowKind = "actor_action"
	RowKindRepositoryList     RowKind = "repository_list"
	RowKindBranch             RowKind = "branch"
	RowKindRepositoryFork     RowKind = "repository_fork"
	RowKindIssueOrPullRequest RowKind = "issue_or_pull_request"
	RowKindUserList           RowKind = "user_list"
	RowKindWikiPageList       RowKind = "wiki_page_list"
	RowKindCommitList         RowKind = "commit_list"
	RowKindComment            RowKind = "comment"
	RowKindRelease            RowKind = "release"
)

// Row is one typed, renderable unit of a card body. Exactly one of the
// variant pointers is set, matching Kind. Key is stable for identical
// membership regardless of input ordering. WithTopMargin is computed by
// composition order, not by the variant itself.
type Row struct {
	Kind          RowKind `json:"kind"`
	Key           string  `json:"key"`
	WithTopMargin bool    `json:"with_top_margin"`

	ActorAction        *ActorActionRow        `json:"actor_action,omitempty"`
	RepositoryList     *RepositoryListRow     `json:"repository_list,omitempty"`
	Branch             *BranchRow             `json:"branch,omitempty"`
	RepositoryFork     *RepositoryForkRow     `json:"repository_fork,omitempty"`
	IssueOrPullRequest *IssueOrPullRequestRow `json:"issue_or_pull_request,omitempty"`
	UserList           *UserListRow           `json:"user_list,omitempty"`
	WikiPageList       *WikiPageListRow       `json:"wiki_page_list,omitempty"`
	CommitList         *CommitListRow         `json:"commit_list,omitempty"`
	Comment            *CommentRow            `json:"comment,omitempty"`
	Release            *ReleaseRow            `json:"release,omitempty"`
}

// ActorActionRow shows the acting user plus the action summary sentence
type ActorActionRow struct {
	AvatarURL      string `json:"avatar_url,omitempty"`
	Body           string `json:"body"`
	Branch         string `json:"branch,omitempty"`
	IsBot          bool   `json:"is_bot,omitempty"`
	OwnerName      string `json:"owner_name,omitempty"`
	RepositoryName string `json:"repository_name,omitempty"`
	UserLinkURL    string `json:"user_link_url,omitempty"`
	Username       string `json:"username,omitempty"`
}

// RepositoryRowItem is one rendered repository reference
type RepositoryRowItem struct {
	OwnerName      string `json:"owner_name"`
	RepositoryName string `json:"repository_name"`
	URL            string `json:"url,omitempty"`
}

// RepositoryListRow lists the repositories an event touched
type RepositoryListRow struct {
	Repos       []RepositoryRowItem `json:"repos"`
	IsPush      bool                `json:"is_push,omitempty"`
	IsForcePush bool                `json:"is_force_push,omitempty"`
}

// BranchRow shows the branch an event happened on
type BranchRow struct {
	Branch         string `json:"branch"`
	OwnerName      string `json:"owner_name,omitempty"`
	RepositoryName string `json:"repository_name,omitempty"`
	IsMainBranch   bool   `json:"is_main_branch,omitempty"`
}

// RepositoryForkRow shows the fork created by a fork event
type RepositoryForkRow struct {
	OwnerName      string `json:"owner_name"`
	RepositoryName string `json:"repository_name"`
	URL            string `json:"url,omitempty"`
}

// IssueOrPullRequestRow shows an issue or pull request with optional body
// preview. Body is empty when suppressed by the composition rules.
type IssueOrPullRequestRow struct {
	IsPullRequest   bool      `json:"is_pull_request"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	Body            string    `json:"body,omitempty"`
	CommentsCount   int       `json:"comments_count,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
	IsPrivate       bool      `json:"is_private,omitempty"`
	Number          int       `json:"number,omitempty"`
	Labels          []string  `json:"labels,omitempty"`
	OwnerName       string    `json:"owner_name,omitempty"`
	RepositoryName  string    `json:"repository_name,omitempty"`
	Title           string    `json:"title"`
	URL             string    `json:"url,omitempty"`
	UserLinkURL     string    `json:"user_link_url,omitempty"`
	Username        string    `json:"username,omitempty"`
	AddBottomAnchor bool      `json:"add_bottom_anchor,omitempty"`
}

// UserRowItem is one rendered user reference
type UserRowItem struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
	URL       string `json:"url,omitempty"`
}

// UserListRow lists users referenced by an event (e.g. added members)
type UserListRow struct {
	Users []UserRowItem `json:"users"`
}

// WikiPageRowItem is one rendered wiki page edit
type WikiPageRowItem struct {
	Title  string `json:"title"`
	SHA    string `json:"sha,omitempty"`
	URL    string `json:"url,omitempty"`
	Action string `json:"action,omitempty"`
}

// WikiPageListRow lists wiki pages touched by a gollum event
type WikiPageListRow struct {
	Pages []WikiPageRowItem `json:"pages"`
}

// CommitRowItem is one rendered commit
type CommitRowItem struct {
	SHA         string `json:"sha,omitempty"`
	Message     string `json:"message"`
	URL         string `json:"url,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
	AuthorLogin string `json:"author_login,omitempty"`
}

// CommitListRow lists pushed or referenced commits
type CommitListRow struct {
	Commits   []CommitRowItem `json:"commits"`
	IsPrivate bool            `json:"is_private,omitempty"`
}

// CommentRow shows one comment body with its author
type CommentRow struct {
	AvatarURL       string `json:"avatar_url,omitempty"`
	Body            string `json:"body"`
	URL             string `json:"url,omitempty"`
	UserLinkURL     string `json:"user_link_url,omitempty"`
	Username        string `json:"username,omitempty"`
	AddBottomAnchor bool   `json:"add_bottom_anchor,omitempty"`
}

// ReleaseRow shows a release, real or synthesized from a tag creation
type ReleaseRow struct {
	AvatarURL      string `json:"avatar_url,omitempty"`
	Body           string `json:"body,omitempty"`
	Branch         string `json:"branch,omitempty"`
	Name           string `json:"name,omitempty"`
	OwnerName      string `json:"owner_name,omitempty"`
	RepositoryName string `json:"repository_name,omitempty"`
	TagName        string `json:"tag_name,omitempty"`
	URL            string `json:"url,omitempty"`
	UserLinkURL    string `json:"user_link_url,omitempty"`
	Username       string `json:"username,omitempty"`
	IsPrivate      bool   `json:"is_private,omitempty"`
}

// CardMetadata is the card-level derived state handed to the renderer
type CardMetadata struct {
	IconName           string `json:"icon_name"`
	IconColor          string `json:"icon_color,omitempty"`
	BackgroundColorKey string `json:"background_color_key"`
	ActionSummaryText  string `json:"action_summary_text,omitempty"`
	IsSingleRow        bool   `json:"is_single_row"`

	IsRead    bool   `json:"is_read"`
	IsSaved   bool   `json:"is_saved"`
	IsPrivate bool   `json:"is_private"`
	IsBot     bool   `json:"is_bot"`
	AvatarURL string `json:"avatar_url,omitempty"`

	Username    string `json:"username,omitempty"`
	UserLinkURL string `json:"user_link_url,omitempty"`
	Reason      string `json:"reason,omitempty"`

	Date                 time.Time `json:"date,omitzero"`
	RelativeDateText     string    `json:"relative_date_text,omitempty"`
	LongRelativeDateText string    `json:"long_relative_date_text,omitempty"`
	FullDateText         string    `json:"full_date_text,omitempty"`
}

// Card is the full composition output: the ordered row list plus the
// card-level metadata. It is plain data with no references back into the
// raw payload, safe to cache or compare by value.
type Card struct {
	Rows     []Row        `json:"rows"`
	Metadata CardMetadata `json:"metadata"`
}
