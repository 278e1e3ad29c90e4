package usecase

import (
	"context"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/cardstack/pkg/utils/ghurl"
	"github.com/m-mizutani/ctxlog"
)

// extractEventEntities discriminates the event payload by its declared type
// and pulls out the normalized bag of sub-entities. It never fails: an
// unparsable or unexpected payload degrades to an entity bag with fewer
// members, which in turn renders as a card with fewer rows.
func (uc *cardUseCase) extractEventEntities(ctx context.Context, event *model.Event, opts model.ComposeOptions) *model.ExtractedEntities {
	entities := &model.ExtractedEntities{
		Origin: model.OriginEvent,
		Actor:  event.Actor,
	}

	payload, err := event.ParsePayload()
	if err != nil {
		ctxlog.From(ctx).Debug("Failed to parse event payload, composing without sub-entities",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err,
		)
		payload = nil
	}

	var ref, refType, masterBranch string

	switch p := payload.(type) {
	case *github.PushEvent:
		ref = p.GetRef()
		entities.ForcePush = p.GetForced()
		for _, c := range p.Commits {
			if c == nil {
				continue
			}
			entities.Commits = append(entities.Commits, commitFromHeadCommit(c))
		}

	case *github.CommitCommentEvent:
		entities.Action = p.GetAction()
		entities.Comment = commentFromRepositoryComment(p.GetComment())

	case *github.CreateEvent:
		ref = p.GetRef()
		refType = p.GetRefType()
		masterBranch = p.GetMasterBranch()

	case *github.DeleteEvent:
		ref = p.GetRef()
		refType = p.GetRefType()

	case *github.ForkEvent:
		entities.ForkTarget = p.GetForkee()

	case *github.GollumEvent:
		for _, page := range p.Pages {
			if page == nil {
				continue
			}
			entities.Pages = append(entities.Pages, page)
		}

	case *github.IssueCommentEvent:
		entities.Action = p.GetAction()
		entities.IssueOrPullRequest = model.IssueEntity(p.GetIssue())
		entities.Comment = commentFromIssueComment(p.GetComment())

	case *github.IssuesEvent:
		entities.Action = p.GetAction()
		entities.IssueOrPullRequest = model.IssueEntity(p.GetIssue())

	case *github.MemberEvent:
		entities.Action = p.GetAction()
		if member := p.GetMember(); member != nil {
			entities.Users = append(entities.Users, member)
		}

	case *github.PublicEvent:
		// no sub-entities; the summary carries the whole story

	case *github.PullRequestEvent:
		entities.Action = p.GetAction()
		entities.IssueOrPullRequest = model.PullRequestEntity(p.GetPullRequest())

	case *github.PullRequestReviewEvent:
		entities.Action = p.GetAction()
		entities.IssueOrPullRequest = model.PullRequestEntity(p.GetPullRequest())
		entities.Comment = commentFromReview(p.GetReview())

	case *github.PullRequestReviewCommentEvent:
		entities.Action = p.GetAction()
		entities.IssueOrPullRequest = model.PullRequestEntity(p.GetPullRequest())
		entities.Comment = commentFromPullRequestComment(p.GetComment())

	case *github.ReleaseEvent:
		entities.Action = p.GetAction()
		entities.Release = p.GetRelease()

	case *github.WatchEvent:
		entities.Action = p.GetAction()
	}

	entities.BranchName = branchFromRef(ref)
	entities.RefType = refType

	// A tag or repository create/delete must not display a branch row
	if event.Type == model.EventTypeCreate || event.Type == model.EventTypeDelete {
		if refType != "branch" {
			entities.BranchName = ""
		}

		// Tag creation without an explicit release becomes a synthesized
		// release so the composer treats tag pushes uniformly.
		if event.Type == model.EventTypeCreate && refType == "tag" && entities.Release == nil {
			entities.Release = synthesizeTagRelease(event, ref, masterBranch)
		}
	}

	entities.AllRepos = resolveEventRepos(event, entities.Commits)
	entities.Repos = entities.AllRepos
	if opts.RepoIsKnown && len(entities.Repos) > 0 {
		entities.Repos = entities.Repos[1:]
	}

	entities.IsPrivate = event.IsPrivate()
	entities.IsRead = uc.readState.IsRead(event.ID)
	entities.IsSaved = event.Saved || uc.readState.IsSaved(event.ID)
	entities.IsBot = model.IsBotLogin(event.Actor.GetLogin())

	avatarURL, source := resolveAvatarURL(entities)
	entities.AvatarURL = avatarURL
	if entities.IsBot && source != avatarSourceActor {
		ctxlog.From(ctx).Debug("Corrected bot avatar from payload sub-entity",
			"event_id", event.ID,
			"source", source,
		)
	}

	return entities
}

// resolveEventRepos normalizes the single/plural repository variants into
// one list of resolvable entries. When nothing resolves but commits exist,
// one repository is reconstructed from the first commit URL; some commit
// events omit the repository reference entirely.
func resolveEventRepos(event *model.Event, commits []*model.Commit) []*github.Repository {
	candidates := event.Repos
	if len(candidates) == 0 && event.Repo != nil {
		candidates = []*github.Repository{event.Repo}
	}

	var repos []*github.Repository
	for _, r := range candidates {
		if r == nil {
			continue
		}
		owner, name := ghurl.ParseOwnerAndRepo(model.RepoFullName(r))
		if owner == "" || name == "" {
			continue
		}
		repos = append(repos, r)
	}

	if len(repos) == 0 && len(commits) > 0 {
		if rebuilt := repoFromCommitURL(commits[0].URL); rebuilt != nil {
			repos = append(repos, rebuilt)
		}
	}

	return repos
}

func repoFromCommitURL(commitURL string) *github.Repository {
	fullName := ghurl.RepoFullNameFromURL(commitURL)
	owner, name := ghurl.ParseOwnerAndRepo(fullName)
	if owner == "" || name == "" {
		return nil
	}

	webURL := ghurl.RepoURL(owner, name)
	return &github.Repository{
		FullName: github.Ptr(fullName),
		Name:     github.Ptr(name),
		Owner:    &github.User{Login: github.Ptr(owner)},
		URL:      github.Ptr(webURL),
		HTMLURL:  github.Ptr(webURL),
	}
}

func synthesizeTagRelease(event *model.Event, ref, masterBranch string) *github.RepositoryRelease {
	return &github.RepositoryRelease{
		TagName:         github.Ptr(ref),
		TargetCommitish: github.Ptr(masterBranch),
		Name:            github.Ptr(""),
		Body:            github.Ptr(""),
		Draft:           github.Ptr(false),
		Prerelease:      github.Ptr(false),
		CreatedAt:       &github.Timestamp{Time: event.CreatedAt},
		PublishedAt:     &github.Timestamp{Time: event.CreatedAt},
		Author:          event.Actor,
	}
}

func branchFromRef(ref string) string {
	return strings.TrimPrefix(ref, "refs/heads/")
}

func commitFromHeadCommit(c *github.HeadCommit) *model.Commit {
	sha := c.GetSHA()
	if sha == "" {
		sha = c.GetID()
	}
	return &model.Commit{
		SHA:         sha,
		Message:     c.GetMessage(),
		URL:         c.GetURL(),
		AuthorName:  c.GetAuthor().GetName(),
		AuthorEmail: c.GetAuthor().GetEmail(),
		AuthorLogin: c.GetAuthor().GetLogin(),
	}
}

func commentFromIssueComment(c *github.IssueComment) *model.Comment {
	if c == nil {
		return nil
	}
	return &model.Comment{
		ID:      c.GetID(),
		Body:    c.GetBody(),
		URL:     c.GetURL(),
		HTMLURL: c.GetHTMLURL(),
		User:    c.GetUser(),
	}
}

func commentFromPullRequestComment(c *github.PullRequestComment) *model.Comment {
	if c == nil {
		return nil
	}
	return &model.Comment{
		ID:      c.GetID(),
		Body:    c.GetBody(),
		URL:     c.GetURL(),
		HTMLURL: c.GetHTMLURL(),
		User:    c.GetUser(),
	}
}

func commentFromRepositoryComment(c *github.RepositoryComment) *model.Comment {
	if c == nil {
		return nil
	}
	return &model.Comment{
		ID:      c.GetID(),
		Body:    c.GetBody(),
		URL:     c.GetURL(),
		HTMLURL: c.GetHTMLURL(),
		User:    c.GetUser(),
	}
}

func commentFromReview(r *github.PullRequestReview) *model.Comment {
	if r == nil || r.GetBody() == "" {
		return nil
	}
	return &model.Comment{
		ID:      r.GetID(),
		Body:    r.GetBody(),
		HTMLURL: r.GetHTMLURL(),
		User:    r.GetUser(),
	}
}
