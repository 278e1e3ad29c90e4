package usecase

import (
	"github.com/m-mizutani/cardstack/pkg/domain/model"
)

// Octicon names and base colors used by the icon mapping tables. Colors
// get contrast-adjusted against the resolved background before reaching
// the renderer.
const (
	colorBlue   = "#0366d6"
	colorGray   = "#586069"
	colorGreen  = "#28a745"
	colorPurple = "#6f42c1"
	colorRed    = "#cb2431"
	colorYellow = "#dbab09"
)

// IconAndColor pairs an icon identifier with its base color
type IconAndColor struct {
	Icon  string `json:"icon"`
	Color string `json:"color,omitempty"`
}

// eventIconAndColor maps an event type, refined by sub-entity state, to a
// deterministic icon and color.
func eventIconAndColor(event *model.Event, entities *model.ExtractedEntities) IconAndColor {
	switch event.Type {
	case model.EventTypeCommitComment,
		model.EventTypeIssueComment,
		model.EventTypePullRequestReviewComment:
		return IconAndColor{Icon: "comment-discussion", Color: colorBlue}

	case model.EventTypeCreate:
		return createdRefIcon(entities)

	case model.EventTypeDelete:
		return IconAndColor{Icon: "trashcan", Color: colorRed}

	case model.EventTypeFork:
		return IconAndColor{Icon: "repo-forked", Color: colorGray}

	case model.EventTypeGollum:
		return IconAndColor{Icon: "book", Color: colorGray}

	case model.EventTypeIssues:
		if entities.IssueOrPullRequest != nil {
			return issueIconAndColor(entities.IssueOrPullRequest)
		}
		return IconAndColor{Icon: "issue-opened", Color: colorGreen}

	case model.EventTypeMember:
		return IconAndColor{Icon: "person", Color: colorGray}

	case model.EventTypePublic:
		return IconAndColor{Icon: "globe", Color: colorGreen}

	case model.EventTypePullRequest:
		if entities.IssueOrPullRequest != nil {
			return pullRequestIconAndColor(entities.IssueOrPullRequest)
		}
		return IconAndColor{Icon: "git-pull-request", Color: colorGreen}

	case model.EventTypePullRequestReview:
		return IconAndColor{Icon: "eye", Color: colorBlue}

	case model.EventTypePush:
		return IconAndColor{Icon: "code", Color: colorGray}

	case model.EventTypeRelease:
		return IconAndColor{Icon: "tag", Color: colorGray}

	case model.EventTypeWatch:
		return IconAndColor{Icon: "star", Color: colorYellow}

	default:
		return IconAndColor{Icon: "mark-github", Color: colorGray}
	}
}

func createdRefIcon(entities *model.ExtractedEntities) IconAndColor {
	switch entities.RefType {
	case "branch":
		return IconAndColor{Icon: "git-branch", Color: colorGray}
	case "tag":
		return IconAndColor{Icon: "tag", Color: colorGray}
	default:
		return IconAndColor{Icon: "repo", Color: colorGray}
	}
}

// notificationIconAndColor maps a notification subject type, refined by the
// resolved issue/PR state, to its icon and color.
func notificationIconAndColor(n *model.Notification, issueOrPR *model.IssueOrPullRequest) IconAndColor {
	switch n.SubjectType() {
	case model.SubjectTypeCommit:
		return IconAndColor{Icon: "git-commit", Color: colorGray}

	case model.SubjectTypeIssue:
		if issueOrPR != nil {
			return issueIconAndColor(issueOrPR)
		}
		return IconAndColor{Icon: "issue-opened", Color: colorGray}

	case model.SubjectTypePullRequest:
		if issueOrPR != nil {
			return pullRequestIconAndColor(issueOrPR)
		}
		return IconAndColor{Icon: "git-pull-request", Color: colorGray}

	case model.SubjectTypeRelease:
		return IconAndColor{Icon: "tag", Color: colorGray}

	case model.SubjectTypeRepositoryInvitation:
		return IconAndColor{Icon: "mail", Color: colorGray}

	case model.SubjectTypeRepositoryVulnerabilityAlert:
		return IconAndColor{Icon: "alert", Color: colorYellow}

	default:
		return IconAndColor{Icon: "bell", Color: colorGray}
	}
}

// issueIconAndColor refines the issue icon by state. Synthesized stand-ins
// have an unknown state and keep the neutral color.
func issueIconAndColor(issue *model.IssueOrPullRequest) IconAndColor {
	switch issue.State {
	case "open":
		return IconAndColor{Icon: "issue-opened", Color: colorGreen}
	case "closed":
		return IconAndColor{Icon: "issue-closed", Color: colorRed}
	default:
		return IconAndColor{Icon: "issue-opened", Color: colorGray}
	}
}

// pullRequestIconAndColor refines the pull request icon by merged, draft
// and open state.
func pullRequestIconAndColor(pr *model.IssueOrPullRequest) IconAndColor {
	switch {
	case pr.Merged:
		return IconAndColor{Icon: "git-merge", Color: colorPurple}
	case pr.State == "closed":
		return IconAndColor{Icon: "git-pull-request", Color: colorRed}
	case pr.Draft:
		return IconAndColor{Icon: "git-pull-request", Color: colorGray}
	case pr.State == "open":
		return IconAndColor{Icon: "git-pull-request", Color: colorGreen}
	default:
		return IconAndColor{Icon: "git-pull-request", Color: colorGray}
	}
}
