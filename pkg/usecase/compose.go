package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/cardstack/pkg/utils/ghurl"
	"github.com/m-mizutani/cardstack/pkg/utils/text"
)

const (
	// issueBodyStaleAfter is the threshold beyond which an issue/PR body
	// is assumed superseded by later activity and suppressed. The value
	// is a long-standing heuristic with no stronger rationale; keep it
	// unless product data says otherwise.
	issueBodyStaleAfter = 24 * time.Hour

	issueBodyMaxLen   = 150
	commentBodyMaxLen = 120
)

// rowAccumulator folds (rows, marginCount) through the emission steps,
// replacing the hidden mutable counter a renderer would thread through its
// partials. The expanded view starts at one because its header occupies
// the first slot.
type rowAccumulator struct {
	rows        []model.Row
	marginCount int
}

func newRowAccumulator(viewMode model.ViewMode) *rowAccumulator {
	a := &rowAccumulator{}
	if viewMode == model.ViewModeExpanded {
		a.marginCount = 1
	}
	return a
}

func (a *rowAccumulator) push(row model.Row) {
	row.WithTopMargin = a.marginCount > 0
	a.marginCount++
	a.rows = append(a.rows, row)
}

// composeRows builds the ordered row sequence for one entity bag. The
// emission order is fixed; each step emits zero or one row. Both events
// and notifications go through this same composer.
func (uc *cardUseCase) composeRows(entities *model.ExtractedEntities, summary string, opts model.ComposeOptions) ([]model.Row, int) {
	acc := newRowAccumulator(opts.ViewMode)
	compact := opts.ViewMode == model.ViewModeCompact

	repoOwner, repoName := ownerAndName(entities.Repo())

	if compact && summary != "" {
		acc.push(model.Row{
			Kind: model.RowKindActorAction,
			Key:  "actor-action",
			ActorAction: &model.ActorActionRow{
				AvatarURL:      entities.AvatarURL,
				Body:           summary,
				Branch:         entities.BranchName,
				IsBot:          entities.IsBot,
				OwnerName:      repoOwner,
				RepositoryName: repoName,
				UserLinkURL:    entities.Actor.GetHTMLURL(),
				Username:       actorDisplayLogin(entities.Actor),
			},
		})
	}

	if len(entities.Repos) > 0 && (!compact || len(entities.Repos) > 1) {
		if row := repositoryListRow(entities); row != nil {
			acc.push(*row)
		}
	}

	if entities.BranchName != "" && !compact {
		acc.push(model.Row{
			Kind: model.RowKindBranch,
			Key:  "branch-" + entities.BranchName,
			Branch: &model.BranchRow{
				Branch:         entities.BranchName,
				OwnerName:      repoOwner,
				RepositoryName: repoName,
				IsMainBranch:   isMainBranch(entities.BranchName, entities.Repo()),
			},
		})
	}

	if forkOwner, forkName := ownerAndName(entities.ForkTarget); forkOwner != "" && forkName != "" {
		acc.push(model.Row{
			Kind: model.RowKindRepositoryFork,
			Key:  "fork-" + forkOwner + "/" + forkName,
			RepositoryFork: &model.RepositoryForkRow{
				OwnerName:      forkOwner,
				RepositoryName: forkName,
				URL:            ghurl.RepoURL(forkOwner, forkName),
			},
		})
	}

	if entities.IssueOrPullRequest != nil {
		if row := uc.issueOrPullRequestRow(entities, repoOwner, repoName); row != nil {
			acc.push(*row)
		}
	}

	if row := userListRow(entities.Users); row != nil {
		acc.push(*row)
	}

	if row := wikiPageListRow(entities.Pages); row != nil {
		acc.push(*row)
	}

	if len(entities.Commits) > 0 {
		acc.push(commitListRow(entities))
	}

	if entities.Comment != nil && entities.Comment.Body != "" {
		acc.push(commentRow(entities))
	}

	if entities.Release != nil {
		acc.push(releaseRow(entities, repoOwner, repoName))
	}

	return acc.rows, acc.marginCount
}

func repositoryListRow(entities *model.ExtractedEntities) *model.Row {
	var items []model.RepositoryRowItem
	var ids []string
	for _, repo := range entities.Repos {
		owner, name := ownerAndName(repo)
		if owner == "" || name == "" {
			continue
		}
		items = append(items, model.RepositoryRowItem{
			OwnerName:      owner,
			RepositoryName: name,
			URL:            ghurl.RepoURL(owner, name),
		})
		ids = append(ids, repoIdentifier(repo))
	}
	if len(items) == 0 {
		return nil
	}

	return &model.Row{
		Kind: model.RowKindRepositoryList,
		Key:  listKey("repo-list", ids),
		RepositoryList: &model.RepositoryListRow{
			Repos:       items,
			IsPush:      len(entities.Commits) > 0,
			IsForcePush: entities.ForcePush,
		},
	}
}

func (uc *cardUseCase) issueOrPullRequestRow(entities *model.ExtractedEntities, repoOwner, repoName string) *model.Row {
	item := entities.IssueOrPullRequest

	title := text.TrimNewLinesAndSpaces(item.Title, 0)
	if title == "" {
		return nil
	}

	number := item.Number
	if number == 0 {
		if n, ok := ghurl.IssueOrPullRequestNumberFromURL(item.URL); ok {
			number = n
		}
	}

	addBottomAnchor := entities.Comment == nil || entities.Origin == model.OriginNotification

	body := ""
	if entities.Comment == nil && issueBodyVisible(item, uc.now()) {
		body = text.TrimNewLinesAndSpaces(text.StripMarkdown(item.Body), issueBodyMaxLen)
	}

	var labels []string
	for _, label := range item.Labels {
		if name := label.GetName(); name != "" {
			labels = append(labels, name)
		}
	}

	url := item.HTMLURL
	if url == "" {
		url = item.URL
	}
	url = ghurl.FixURL(url, ghurl.FixURLOptions{
		AddBottomAnchor:          addBottomAnchor,
		IssueOrPullRequestNumber: number,
	})

	return &model.Row{
		Kind: model.RowKindIssueOrPullRequest,
		Key:  "issue-or-pr-" + issueIdentifier(item),
		IssueOrPullRequest: &model.IssueOrPullRequestRow{
			IsPullRequest:   item.IsPullRequest,
			AvatarURL:       item.User.GetAvatarURL(),
			Body:            body,
			CommentsCount:   item.Comments,
			CreatedAt:       item.CreatedAt,
			IsPrivate:       entities.IsPrivate,
			Number:          number,
			Labels:          labels,
			OwnerName:       repoOwner,
			RepositoryName:  repoName,
			Title:           title,
			URL:             url,
			UserLinkURL:     item.User.GetHTMLURL(),
			Username:        item.User.GetLogin(),
			AddBottomAnchor: addBottomAnchor,
		},
	}
}

// issueBodyVisible applies the stale-body heuristic: only open items whose
// body was not edited long after creation show it inline.
func issueBodyVisible(item *model.IssueOrPullRequest, now time.Time) bool {
	if item.State != "open" || item.Body == "" {
		return false
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		return true
	}
	return item.UpdatedAt.Sub(item.CreatedAt) < issueBodyStaleAfter
}

func userListRow(users []*github.User) *model.Row {
	var items []model.UserRowItem
	var ids []string
	for _, u := range users {
		if u.GetLogin() == "" {
			continue
		}
		items = append(items, model.UserRowItem{
			Login:     u.GetLogin(),
			AvatarURL: u.GetAvatarURL(),
			URL:       u.GetHTMLURL(),
		})
		ids = append(ids, strconv.FormatInt(u.GetID(), 10))
	}
	if len(items) == 0 {
		return nil
	}

	return &model.Row{
		Kind:     model.RowKindUserList,
		Key:      listKey("user-list", ids),
		UserList: &model.UserListRow{Users: items},
	}
}

func wikiPageListRow(pages []*github.Page) *model.Row {
	var items []model.WikiPageRowItem
	var ids []string
	for _, page := range pages {
		title := page.GetTitle()
		if title == "" {
			title = page.GetPageName()
		}
		if title == "" {
			continue
		}
		items = append(items, model.WikiPageRowItem{
			Title:  text.TrimNewLinesAndSpaces(title, 0),
			SHA:    page.GetSHA(),
			URL:    page.GetHTMLURL(),
			Action: page.GetAction(),
		})
		ids = append(ids, page.GetSHA())
	}
	if len(items) == 0 {
		return nil
	}

	return &model.Row{
		Kind:         model.RowKindWikiPageList,
		Key:          listKey("wiki-page-list", ids),
		WikiPageList: &model.WikiPageListRow{Pages: items},
	}
}

func commitListRow(entities *model.ExtractedEntities) model.Row {
	var items []model.CommitRowItem
	var ids []string
	for _, c := range entities.Commits {
		if c == nil || c.Message == "" {
			continue
		}
		items = append(items, model.CommitRowItem{
			SHA:         c.SHA,
			Message:     text.TrimNewLinesAndSpaces(c.Message, 0),
			URL:         ghurl.FixURL(c.URL, ghurl.FixURLOptions{}),
			AuthorName:  c.AuthorName,
			AuthorEmail: c.AuthorEmail,
			AuthorLogin: c.AuthorLogin,
		})
		ids = append(ids, c.SHA)
	}

	return model.Row{
		Kind: model.RowKindCommitList,
		Key:  listKey("commit-list", ids),
		CommitList: &model.CommitListRow{
			Commits:   items,
			IsPrivate: entities.IsPrivate,
		},
	}
}

func commentRow(entities *model.ExtractedEntities) model.Row {
	comment := entities.Comment
	addBottomAnchor := entities.Origin == model.OriginNotification

	return model.Row{
		Kind: model.RowKindComment,
		Key:  "comment-" + strconv.FormatInt(comment.ID, 10),
		Comment: &model.CommentRow{
			AvatarURL:       comment.User.GetAvatarURL(),
			Body:            text.TrimNewLinesAndSpaces(text.StripMarkdown(comment.Body), commentBodyMaxLen),
			URL:             ghurl.FixURL(comment.BestURL(), ghurl.FixURLOptions{CommentID: commentAnchorID(comment, addBottomAnchor)}),
			UserLinkURL:     comment.User.GetHTMLURL(),
			Username:        comment.User.GetLogin(),
			AddBottomAnchor: addBottomAnchor,
		},
	}
}

func releaseRow(entities *model.ExtractedEntities, repoOwner, repoName string) model.Row {
	release := entities.Release

	url := release.GetHTMLURL()
	if url == "" {
		url = release.GetURL()
	}

	return model.Row{
		Kind: model.RowKindRelease,
		Key:  "release-" + releaseIdentifier(release),
		Release: &model.ReleaseRow{
			AvatarURL:      release.GetAuthor().GetAvatarURL(),
			Body:           text.TrimNewLinesAndSpaces(text.StripMarkdown(release.GetBody()), commentBodyMaxLen),
			Branch:         release.GetTargetCommitish(),
			Name:           release.GetName(),
			OwnerName:      repoOwner,
			RepositoryName: repoName,
			TagName:        release.GetTagName(),
			URL:            ghurl.FixURL(url, ghurl.FixURLOptions{}),
			UserLinkURL:    release.GetAuthor().GetHTMLURL(),
			Username:       release.GetAuthor().GetLogin(),
			IsPrivate:      entities.IsPrivate,
		},
	}
}

// listKey builds a stable dedup key from the sorted member identifiers so
// identical membership yields an identical key regardless of the ordering
// guarantees of the source API.
func listKey(prefix string, ids []string) string {
	sorted := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			sorted = append(sorted, id)
		}
	}
	sort.Strings(sorted)
	return prefix + "-" + strings.Join(sorted, "-")
}

func ownerAndName(repo *github.Repository) (string, string) {
	if repo == nil {
		return "", ""
	}
	return ghurl.ParseOwnerAndRepo(model.RepoFullName(repo))
}

func repoIdentifier(repo *github.Repository) string {
	if id := repo.GetID(); id != 0 {
		return strconv.FormatInt(id, 10)
	}
	return model.RepoFullName(repo)
}

func issueIdentifier(item *model.IssueOrPullRequest) string {
	if item.ID != 0 {
		return strconv.FormatInt(item.ID, 10)
	}
	if item.Number != 0 {
		return strconv.Itoa(item.Number)
	}
	return item.URL
}

func releaseIdentifier(release *github.RepositoryRelease) string {
	if id := release.GetID(); id != 0 {
		return strconv.FormatInt(id, 10)
	}
	if tag := release.GetTagName(); tag != "" {
		return tag
	}
	return release.GetName()
}

func actorDisplayLogin(actor *github.User) string {
	login := actor.GetLogin()
	return strings.TrimSuffix(login, "[bot]")
}

func isMainBranch(branch string, repo *github.Repository) bool {
	if branch == "" {
		return false
	}
	if def := repo.GetDefaultBranch(); def != "" {
		return branch == def
	}
	return branch == "main" || branch == "master"
}

func commentAnchorID(comment *model.Comment, addBottomAnchor bool) int64 {
	if addBottomAnchor && comment.ID != 0 && !comment.Synthesized {
		return comment.ID
	}
	return 0
}
