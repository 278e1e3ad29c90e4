package usecase

import (
	"fmt"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
)

// summaryOptions controls the action sentence rendering
type summaryOptions struct {
	// includeBranch appends the branch name to push summaries; the
	// compact view requests it because it has no separate branch row.
	includeBranch bool
	repoIsKnown   bool
}

// eventText renders the human-readable action sentence for an event. It is
// a pure function of (event type, entities, options); repeated invocation
// yields the identical string.
func eventText(event *model.Event, entities *model.ExtractedEntities, opts summaryOptions) string {
	switch event.Type {
	case model.EventTypeCommitComment:
		return "commented on a commit"

	case model.EventTypeCreate:
		return refText("created", entities.RefType, opts)

	case model.EventTypeDelete:
		return refText("deleted", entities.RefType, opts)

	case model.EventTypeFork:
		if name := forkSourceName(entities); name != "" {
			return "forked " + name
		}
		return "forked a repository"

	case model.EventTypeGollum:
		return wikiPagesText(entities.Pages)

	case model.EventTypeIssueComment:
		return commentedOnText(entities.IssueOrPullRequest)

	case model.EventTypeIssues:
		switch entities.Action {
		case "opened":
			return "opened an issue"
		case "closed":
			return "closed an issue"
		case "reopened":
			return "reopened an issue"
		default:
			return "updated an issue"
		}

	case model.EventTypeMember:
		if entities.Action == "added" {
			return "added a user"
		}
		return "updated members"

	case model.EventTypePublic:
		return "made the repository public"

	case model.EventTypePullRequest:
		switch entities.Action {
		case "opened":
			return "opened a pull request"
		case "closed":
			if entities.IssueOrPullRequest != nil && entities.IssueOrPullRequest.Merged {
				return "merged a pull request"
			}
			return "closed a pull request"
		case "reopened":
			return "reopened a pull request"
		default:
			return "updated a pull request"
		}

	case model.EventTypePullRequestReview:
		return "reviewed a pull request"

	case model.EventTypePullRequestReviewComment:
		return "commented on a pull request review"

	case model.EventTypePush:
		return pushText(entities, opts)

	case model.EventTypeRelease:
		return "published a release"

	case model.EventTypeWatch:
		return starredText(entities, opts)

	default:
		return "did something"
	}
}

func refText(verb, refType string, opts summaryOptions) string {
	switch refType {
	case "branch":
		return verb + " a branch"
	case "tag":
		return verb + " a tag"
	default:
		if opts.repoIsKnown {
			return verb + " this repository"
		}
		return verb + " a repository"
	}
}

func forkSourceName(entities *model.ExtractedEntities) string {
	if repo := entities.Repo(); repo != nil {
		return model.RepoFullName(repo)
	}
	return ""
}

func wikiPagesText(pages []*github.Page) string {
	if len(pages) == 0 {
		return "updated the wiki"
	}
	if len(pages) == 1 {
		switch pages[0].GetAction() {
		case "created":
			return "created a wiki page"
		case "edited":
			return "edited a wiki page"
		default:
			return "updated a wiki page"
		}
	}
	return fmt.Sprintf("updated %d wiki pages", len(pages))
}

func commentedOnText(issueOrPR *model.IssueOrPullRequest) string {
	if issueOrPR == nil {
		return "commented on an issue"
	}

	noun := "issue"
	if issueOrPR.IsPullRequest {
		noun = "pull request"
	}
	if issueOrPR.Number > 0 {
		return fmt.Sprintf("commented on %s #%d", noun, issueOrPR.Number)
	}
	switch noun {
	case "issue":
		return "commented on an issue"
	default:
		return "commented on a pull request"
	}
}

func pushText(entities *model.ExtractedEntities, opts summaryOptions) string {
	verb := "pushed"
	if entities.ForcePush {
		verb = "force pushed"
	}

	count := len(entities.Commits)
	if count == 0 {
		count = 1
	}

	s := fmt.Sprintf("%s %d commit", verb, count)
	if count != 1 {
		s += "s"
	}
	if opts.includeBranch && entities.BranchName != "" {
		s += " to " + entities.BranchName
	}
	return s
}

func starredText(entities *model.ExtractedEntities, opts summaryOptions) string {
	if len(entities.AllRepos) > 1 {
		return fmt.Sprintf("starred %d repositories", len(entities.AllRepos))
	}
	if opts.repoIsKnown {
		return "starred this repository"
	}
	if repo := entities.Repo(); repo != nil {
		return "starred " + model.RepoFullName(repo)
	}
	return "starred a repository"
}
