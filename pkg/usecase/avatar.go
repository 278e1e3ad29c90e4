package usecase

import (
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
)

// Avatar resolution sources, in precedence order. GitHub reports the wrong
// avatar on the actor object for GitHub App bots; the correct one appears
// on the user records of payload sub-entities, so bots prefer those.
const (
	avatarSourceActor     = "actor"
	avatarSourceComment   = "comment"
	avatarSourceIssueOrPR = "issue_or_pull_request"
	avatarSourceRelease   = "release"
	avatarSourceUserList  = "user_list"
	avatarSourceFallback  = "fallback"
)

// resolveAvatarURL picks the avatar shown on the card header and names the
// source it came from, keeping the precedence auditable.
func resolveAvatarURL(entities *model.ExtractedEntities) (url, source string) {
	actor := entities.Actor

	if !entities.IsBot {
		return actor.GetAvatarURL(), avatarSourceActor
	}

	type candidate struct {
		source string
		user   *github.User
	}

	var candidates []candidate
	if entities.Comment != nil {
		candidates = append(candidates, candidate{avatarSourceComment, entities.Comment.User})
	}
	if entities.IssueOrPullRequest != nil {
		candidates = append(candidates, candidate{avatarSourceIssueOrPR, entities.IssueOrPullRequest.User})
	}
	if entities.Release != nil {
		candidates = append(candidates, candidate{avatarSourceRelease, entities.Release.GetAuthor()})
	}
	for _, u := range entities.Users {
		candidates = append(candidates, candidate{avatarSourceUserList, u})
	}

	// The record matching the actor's own login carries the corrected
	// avatar; any other bot-looking record is the next best source.
	for _, c := range candidates {
		if c.user.GetAvatarURL() == "" {
			continue
		}
		if c.user.GetLogin() == actor.GetLogin() {
			return c.user.GetAvatarURL(), c.source
		}
	}
	for _, c := range candidates {
		if c.user.GetAvatarURL() == "" {
			continue
		}
		if model.IsBotLogin(c.user.GetLogin()) {
			return c.user.GetAvatarURL(), c.source
		}
	}

	return actor.GetAvatarURL(), avatarSourceFallback
}
