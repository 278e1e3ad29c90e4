package usecase

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/cardstack/pkg/utils/ghurl"
	"github.com/m-mizutani/cardstack/pkg/utils/text"
	"github.com/m-mizutani/ctxlog"
)

// extractNotificationEntities normalizes one notification into the same
// entity bag events produce. Subjects lacking an enriched sub-object get a
// synthesized stand-in whose unknown fields stay empty; callers treat those
// as "unknown", not "empty".
func (uc *cardUseCase) extractNotificationEntities(ctx context.Context, n *model.Notification, opts model.ComposeOptions) *model.ExtractedEntities {
	entities := &model.ExtractedEntities{
		Origin: model.OriginNotification,
	}

	repoFullName := model.RepoFullName(n.Repository)
	repoOwner, repoName := ghurl.ParseOwnerAndRepo(repoFullName)

	// Notifications carry no acting user; the repository owner stands in
	// for the card header.
	entities.Actor = &github.User{
		Login:     github.Ptr(repoFullName),
		Name:      github.Ptr(repoName),
		AvatarURL: github.Ptr(ghurl.UserAvatarByUsername(repoOwner)),
		HTMLURL:   github.Ptr(ghurl.RepoURL(repoOwner, repoName)),
	}

	if repoOwner != "" && repoName != "" && !opts.RepoIsKnown {
		entities.AllRepos = []*github.Repository{n.Repository}
		entities.Repos = entities.AllRepos
	}

	subjectType := n.SubjectType()
	title := ""
	subjectURL := ""
	if n.Subject != nil {
		title = text.TrimNewLinesAndSpaces(n.Subject.GetTitle(), 0)
		subjectURL = n.Subject.GetLatestCommentURL()
		if subjectURL == "" {
			subjectURL = n.Subject.GetURL()
		}
	}

	switch subjectType {
	case model.SubjectTypeCommit:
		if n.Commit != nil {
			entities.Commits = []*model.Commit{n.Commit}
		} else if title != "" || subjectURL != "" {
			entities.Commits = []*model.Commit{{
				Message: title,
				URL:     subjectURL,
			}}
		}

	case model.SubjectTypeIssue:
		if n.Issue != nil {
			entities.IssueOrPullRequest = model.IssueEntity(n.Issue)
		} else {
			entities.IssueOrPullRequest = synthesizeSubjectStandIn(title, subjectURL, false)
		}

	case model.SubjectTypePullRequest:
		if n.PullRequest != nil {
			entities.IssueOrPullRequest = model.PullRequestEntity(n.PullRequest)
		} else {
			entities.IssueOrPullRequest = synthesizeSubjectStandIn(title, subjectURL, true)
		}

	case model.SubjectTypeRelease:
		if n.Release != nil {
			entities.Release = n.Release
		} else {
			entities.Release = &github.RepositoryRelease{
				Name: github.Ptr(title),
				URL:  github.Ptr(subjectURL),
			}
		}

	default:
		// Invitations, vulnerability alerts and unknown subjects render
		// the subject title as a comment row pointing at the best deep
		// link we can build.
		if title != "" {
			entities.Comment = &model.Comment{
				Body:    title,
				HTMLURL: fallbackSubjectURL(subjectType, repoFullName, subjectURL),
			}
		} else {
			ctxlog.From(ctx).Debug("Notification subject resolved to no entity",
				"notification_id", n.ID,
				"subject_type", subjectType,
			)
		}
	}

	if n.Comment != nil {
		entities.Comment = n.Comment
	} else if item := entities.IssueOrPullRequest; item != nil && !item.Synthesized &&
		item.State == "open" && item.Body != "" {
		// The body of an open enriched issue/PR renders as its own
		// comment row. No staleness window applies here, unlike
		// event-sourced bodies.
		entities.Comment = &model.Comment{
			ID:          item.ID,
			Synthesized: true,
			Body:        item.Body,
			HTMLURL:     item.HTMLURL,
			User:        item.User,
		}
	}

	entities.IsPrivate = n.IsPrivate()
	entities.IsRead = !n.Unread || uc.readState.IsRead(n.ID)
	entities.IsSaved = n.Saved || uc.readState.IsSaved(n.ID)
	entities.IsBot = model.IsBotLogin(entities.Actor.GetLogin())
	entities.AvatarURL, _ = resolveAvatarURL(entities)

	return entities
}

// synthesizeSubjectStandIn builds the issue/PR placeholder for a subject
// the enrichment step did not resolve. Body, state and comment count stay
// unknown.
func synthesizeSubjectStandIn(title, url string, isPullRequest bool) *model.IssueOrPullRequest {
	if title == "" && url == "" {
		return nil
	}

	standIn := &model.IssueOrPullRequest{
		IsPullRequest: isPullRequest,
		Synthesized:   true,
		Title:         title,
		URL:           url,
	}
	if number, ok := ghurl.IssueOrPullRequestNumberFromURL(url); ok {
		standIn.Number = number
	}
	return standIn
}

func fallbackSubjectURL(subjectType, repoFullName, subjectURL string) string {
	switch subjectType {
	case model.SubjectTypeRepositoryInvitation:
		if u := ghurl.RepoInvitationURL(repoFullName); u != "" {
			return u
		}
	case model.SubjectTypeRepositoryVulnerabilityAlert:
		if u := ghurl.SecurityAlertURL(repoFullName); u != "" {
			return u
		}
	}
	return ghurl.FixURL(subjectURL, ghurl.FixURLOptions{})
}
