package usecase_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/cardstack/pkg/domain/interfaces"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/cardstack/pkg/infra/theme"
	"github.com/m-mizutani/cardstack/pkg/usecase"
	"github.com/m-mizutani/gt"
)

// stubReadState is a func-field mock of the read/saved-state store
type stubReadState struct {
	readIDs  map[string]bool
	savedIDs map[string]bool
}

func (s *stubReadState) IsRead(itemID string) bool  { return s.readIDs[itemID] }
func (s *stubReadState) IsSaved(itemID string) bool { return s.savedIDs[itemID] }
func (s *stubReadState) MarkRead(itemIDs []string, read bool) {
	for _, id := range itemIDs {
		s.readIDs[id] = read
	}
}
func (s *stubReadState) SetSaved(itemIDs []string, saved bool) {
	for _, id := range itemIDs {
		s.savedIDs[id] = saved
	}
}

func newStubReadState() *stubReadState {
	return &stubReadState{
		readIDs:  map[string]bool{},
		savedIDs: map[string]bool{},
	}
}

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestUseCase(store *stubReadState) *cardUC {
	if store == nil {
		store = newStubReadState()
	}
	return &cardUC{
		uc: usecase.NewCard(store, theme.NewProvider(theme.Dark()),
			usecase.WithClock(func() time.Time { return testNow })),
	}
}

// cardUC wraps the use case with test conveniences
type cardUC struct {
	uc interfaces.CardUseCase
}

func (c *cardUC) event(t *testing.T, event *model.Event, opts model.ComposeOptions) *model.Card {
	t.Helper()
	return gt.R1(c.uc.ComposeEventCard(context.Background(), event, opts)).NoError(t)
}

func (c *cardUC) notification(t *testing.T, n *model.Notification, opts model.ComposeOptions) *model.Card {
	t.Helper()
	return gt.R1(c.uc.ComposeNotificationCard(context.Background(), n, opts)).NoError(t)
}

func newEvent(t *testing.T, eventType string, payload string) *model.Event {
	t.Helper()
	return &model.Event{
		ID:        "evt-1",
		Type:      eventType,
		Actor:     userJSON(t, `{"login":"octocat","avatar_url":"https://example.com/octocat.png","html_url":"https://github.com/octocat"}`),
		Repo:      repoJSON(t, `{"id":10,"name":"facebook/react","url":"https://api.github.com/repos/facebook/react"}`),
		Public:    true,
		CreatedAt: testNow.Add(-2 * time.Hour),
		Payload:   json.RawMessage(payload),
	}
}

func userJSON(t *testing.T, s string) *github.User {
	t.Helper()
	var u github.User
	gt.NoError(t, json.Unmarshal([]byte(s), &u))
	return &u
}

func repoJSON(t *testing.T, s string) *github.Repository {
	t.Helper()
	var r github.Repository
	gt.NoError(t, json.Unmarshal([]byte(s), &r))
	return &r
}

func findRow(card *model.Card, kind model.RowKind) *model.Row {
	for i := range card.Rows {
		if card.Rows[i].Kind == kind {
			return &card.Rows[i]
		}
	}
	return nil
}

var expanded = model.ComposeOptions{ViewMode: model.ViewModeExpanded}
var compact = model.ComposeOptions{ViewMode: model.ViewModeCompact}

func TestComposeEventCard_PushEvent(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypePush, `{
		"ref": "refs/heads/main",
		"commits": [
			{"sha": "aaa111", "message": "first", "url": "https://api.github.com/repos/facebook/react/commits/aaa111", "author": {"name": "A", "email": "a@example.com"}},
			{"sha": "bbb222", "message": "second", "url": "https://api.github.com/repos/facebook/react/commits/bbb222", "author": {"name": "B", "email": "b@example.com"}}
		]
	}`)

	card := uc.event(t, event, expanded)

	branch := findRow(card, model.RowKindBranch)
	gt.Value(t, branch).NotNil()
	gt.Value(t, branch.Branch.Branch).Equal("main")
	gt.Value(t, branch.Branch.IsMainBranch).Equal(true)

	commits := findRow(card, model.RowKindCommitList)
	gt.Value(t, commits).NotNil()
	gt.Number(t, len(commits.CommitList.Commits)).Equal(2)
	gt.Value(t, commits.CommitList.Commits[0].Message).Equal("first")

	// Commit list key is built from sorted SHAs
	gt.Value(t, commits.Key).Equal("commit-list-aaa111-bbb222")

	gt.Value(t, card.Metadata.IconName).Equal("code")
	gt.Value(t, card.Metadata.ActionSummaryText).Equal("pushed 2 commits")

	// Both relative date forms derive from the injected clock
	gt.Value(t, card.Metadata.RelativeDateText).Equal("2h")
	gt.Value(t, card.Metadata.LongRelativeDateText).Equal("2 hours ago")
}

func TestComposeEventCard_CompactPushIncludesBranchInSummary(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypePush, `{
		"ref": "refs/heads/main",
		"commits": [{"sha": "aaa", "message": "m", "url": "https://api.github.com/repos/facebook/react/commits/aaa"}]
	}`)

	card := uc.event(t, event, compact)

	gt.Value(t, card.Metadata.ActionSummaryText).Equal("pushed 1 commit to main")

	action := findRow(card, model.RowKindActorAction)
	gt.Value(t, action).NotNil()
	gt.Value(t, action.ActorAction.Body).Equal("pushed 1 commit to main")
	gt.Value(t, action.ActorAction.Username).Equal("octocat")

	// The compact view has no separate branch row
	gt.Value(t, findRow(card, model.RowKindBranch)).Nil()
}

func TestComposeEventCard_ForcePush(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypePush, `{
		"ref": "refs/heads/main",
		"forced": true,
		"commits": [{"sha": "aaa", "message": "m", "url": "https://api.github.com/repos/facebook/react/commits/aaa"}]
	}`)

	card := uc.event(t, event, compact)
	gt.Value(t, card.Metadata.ActionSummaryText).Equal("force pushed 1 commit to main")
}

func TestComposeEventCard_RepoReconstructedFromCommitURL(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypePush, `{
		"ref": "refs/heads/dev",
		"commits": [{"sha": "abc", "message": "fix", "url": "https://api.github.com/repos/owner/repo/commits/abc"}]
	}`)
	event.Repo = nil

	card := uc.event(t, event, expanded)

	repoList := findRow(card, model.RowKindRepositoryList)
	gt.Value(t, repoList).NotNil()
	gt.Number(t, len(repoList.RepositoryList.Repos)).Equal(1)
	gt.Value(t, repoList.RepositoryList.Repos[0].OwnerName).Equal("owner")
	gt.Value(t, repoList.RepositoryList.Repos[0].RepositoryName).Equal("repo")
}

func TestComposeEventCard_TagCreationSynthesizesRelease(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypeCreate, `{
		"ref": "v1.2.3",
		"ref_type": "tag",
		"master_branch": "main"
	}`)

	card := uc.event(t, event, expanded)

	release := findRow(card, model.RowKindRelease)
	gt.Value(t, release).NotNil()
	gt.Value(t, release.Release.TagName).Equal("v1.2.3")
	gt.Value(t, release.Release.Branch).Equal("main")
	gt.Value(t, release.Release.Username).Equal("octocat")

	// A tag must never produce a branch row
	gt.Value(t, findRow(card, model.RowKindBranch)).Nil()
	gt.Value(t, card.Metadata.ActionSummaryText).Equal("created a tag")
	gt.Value(t, card.Metadata.IconName).Equal("tag")
}

func TestComposeEventCard_BranchCreation(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypeCreate, `{
		"ref": "feature-x",
		"ref_type": "branch",
		"master_branch": "main"
	}`)

	card := uc.event(t, event, expanded)

	branch := findRow(card, model.RowKindBranch)
	gt.Value(t, branch).NotNil()
	gt.Value(t, branch.Branch.Branch).Equal("feature-x")
	gt.Value(t, findRow(card, model.RowKindRelease)).Nil()
	gt.Value(t, card.Metadata.ActionSummaryText).Equal("created a branch")
	gt.Value(t, card.Metadata.IconName).Equal("git-branch")
}

func TestComposeEventCard_ForkEvent(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypeFork, `{
		"forkee": {"id": 99, "full_name": "octocat/react", "name": "react", "owner": {"login": "octocat"}}
	}`)

	card := uc.event(t, event, expanded)

	fork := findRow(card, model.RowKindRepositoryFork)
	gt.Value(t, fork).NotNil()
	gt.Value(t, fork.RepositoryFork.OwnerName).Equal("octocat")
	gt.Value(t, fork.RepositoryFork.RepositoryName).Equal("react")
	gt.Value(t, card.Metadata.ActionSummaryText).Equal("forked facebook/react")
}

func TestComposeEventCard_IssueLabelsBlockSingleRow(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypeIssues, `{
		"action": "opened",
		"issue": {
			"id": 5, "number": 42, "title": "Crash on load", "state": "open",
			"url": "https://api.github.com/repos/facebook/react/issues/42",
			"user": {"login": "reporter"},
			"labels": [{"name": "bug"}]
		}
	}`)

	card := uc.event(t, event, compact)

	row := findRow(card, model.RowKindIssueOrPullRequest)
	gt.Value(t, row).NotNil()
	gt.Value(t, row.IssueOrPullRequest.Number).Equal(42)
	gt.Value(t, row.IssueOrPullRequest.Labels).Equal([]string{"bug"})

	// A labeled issue is never a single-row card, whatever the margin count
	gt.Value(t, card.Metadata.IsSingleRow).Equal(false)

	gt.Value(t, card.Metadata.ActionSummaryText).Equal("opened an issue")
	gt.Value(t, card.Metadata.IconName).Equal("issue-opened")
}

func TestComposeEventCard_StaleIssueBodySuppressed(t *testing.T) {
	uc := newTestUseCase(nil)

	fresh := newEvent(t, model.EventTypeIssues, `{
		"action": "opened",
		"issue": {
			"id": 5, "number": 1, "title": "T", "state": "open", "body": "body text",
			"url": "https://api.github.com/repos/facebook/react/issues/1",
			"created_at": "2024-06-15T00:00:00Z",
			"updated_at": "2024-06-15T01:00:00Z",
			"user": {"login": "reporter"}
		}
	}`)
	card := uc.event(t, fresh, expanded)
	gt.Value(t, findRow(card, model.RowKindIssueOrPullRequest).IssueOrPullRequest.Body).Equal("body text")

	stale := newEvent(t, model.EventTypeIssues, `{
		"action": "opened",
		"issue": {
			"id": 5, "number": 1, "title": "T", "state": "open", "body": "body text",
			"url": "https://api.github.com/repos/facebook/react/issues/1",
			"created_at": "2024-06-10T00:00:00Z",
			"updated_at": "2024-06-14T00:00:00Z",
			"user": {"login": "reporter"}
		}
	}`)
	card = uc.event(t, stale, expanded)
	gt.Value(t, findRow(card, model.RowKindIssueOrPullRequest).IssueOrPullRequest.Body).Equal("")
}

func TestComposeEventCard_MergedPullRequest(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypePullRequest, `{
		"action": "closed",
		"pull_request": {
			"id": 7, "number": 10, "title": "Add feature", "state": "closed",
			"merged": true,
			"url": "https://api.github.com/repos/facebook/react/pulls/10",
			"user": {"login": "author"}
		}
	}`)

	card := uc.event(t, event, expanded)

	gt.Value(t, card.Metadata.ActionSummaryText).Equal("merged a pull request")
	gt.Value(t, card.Metadata.IconName).Equal("git-merge")

	row := findRow(card, model.RowKindIssueOrPullRequest)
	gt.Value(t, row).NotNil()
	gt.Value(t, row.IssueOrPullRequest.IsPullRequest).Equal(true)
	gt.Value(t, row.IssueOrPullRequest.URL).Equal("https://github.com/facebook/react/pull/10#partial-timeline")
}

func TestComposeEventCard_MemberAndGollum(t *testing.T) {
	uc := newTestUseCase(nil)

	member := newEvent(t, model.EventTypeMember, `{
		"action": "added",
		"member": {"id": 3, "login": "newdev", "avatar_url": "https://example.com/n.png"}
	}`)
	card := uc.event(t, member, expanded)
	users := findRow(card, model.RowKindUserList)
	gt.Value(t, users).NotNil()
	gt.Value(t, users.UserList.Users[0].Login).Equal("newdev")
	gt.Value(t, card.Metadata.ActionSummaryText).Equal("added a user")

	gollum := newEvent(t, model.EventTypeGollum, `{
		"pages": [
			{"page_name": "Home", "title": "Home", "action": "edited", "sha": "p1", "html_url": "https://github.com/facebook/react/wiki/Home"},
			{"page_name": "Setup", "title": "Setup", "action": "created", "sha": "p2", "html_url": "https://github.com/facebook/react/wiki/Setup"}
		]
	}`)
	card = uc.event(t, gollum, expanded)
	pages := findRow(card, model.RowKindWikiPageList)
	gt.Value(t, pages).NotNil()
	gt.Number(t, len(pages.WikiPageList.Pages)).Equal(2)
	gt.Value(t, pages.Key).Equal("wiki-page-list-p1-p2")
	gt.Value(t, card.Metadata.ActionSummaryText).Equal("updated 2 wiki pages")
}

func TestComposeEventCard_UnusableListItemsDropRow(t *testing.T) {
	uc := newTestUseCase(nil)

	// A member without a login cannot render, so no user list row appears
	member := newEvent(t, model.EventTypeMember, `{
		"action": "added",
		"member": {"id": 3, "avatar_url": "https://example.com/n.png"}
	}`)
	card := uc.event(t, member, expanded)
	gt.Value(t, findRow(card, model.RowKindUserList)).Nil()

	// Wiki pages with neither title nor page name also vanish entirely
	gollum := newEvent(t, model.EventTypeGollum, `{
		"pages": [{"action": "edited", "sha": "p1"}]
	}`)
	card = uc.event(t, gollum, expanded)
	gt.Value(t, findRow(card, model.RowKindWikiPageList)).Nil()
}

func TestComposeEventCard_MultiRepoStar(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypeWatch, `{"action": "started"}`)
	event.Repo = nil
	event.Repos = []*github.Repository{
		repoJSON(t, `{"id": 1, "name": "o/r1"}`),
		repoJSON(t, `{"id": 2, "name": "o/r2"}`),
	}

	card := uc.event(t, event, compact)

	gt.Value(t, card.Metadata.ActionSummaryText).Equal("starred 2 repositories")
	gt.Value(t, card.Metadata.IconName).Equal("star")

	repoList := findRow(card, model.RowKindRepositoryList)
	gt.Value(t, repoList).NotNil()
	gt.Number(t, len(repoList.RepositoryList.Repos)).Equal(2)
	gt.Value(t, repoList.Key).Equal("repo-list-1-2")
}

func TestComposeEventCard_RepoIsKnownDropsFirstRepo(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypeWatch, `{"action": "started"}`)
	event.Repo = nil
	event.Repos = []*github.Repository{
		repoJSON(t, `{"id": 1, "name": "o/r1"}`),
		repoJSON(t, `{"id": 2, "name": "o/r2"}`),
	}

	opts := model.ComposeOptions{ViewMode: model.ViewModeExpanded, RepoIsKnown: true}
	card := uc.event(t, event, opts)

	repoList := findRow(card, model.RowKindRepositoryList)
	gt.Value(t, repoList).NotNil()
	gt.Number(t, len(repoList.RepositoryList.Repos)).Equal(1)
	gt.Value(t, repoList.RepositoryList.Repos[0].RepositoryName).Equal("r2")
}

func TestComposeEventCard_BotAvatarCorrection(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypeIssueComment, `{
		"action": "created",
		"issue": {
			"id": 5, "number": 2, "title": "T", "state": "open",
			"url": "https://api.github.com/repos/facebook/react/issues/2",
			"user": {"login": "someone"}
		},
		"comment": {
			"id": 77, "body": "ping",
			"url": "https://api.github.com/repos/facebook/react/issues/comments/77",
			"user": {"login": "helper[bot]", "avatar_url": "https://example.com/correct-bot.png"}
		}
	}`)
	event.Actor = userJSON(t, `{"login":"helper[bot]","avatar_url":"https://example.com/wrong-bot.png"}`)

	card := uc.event(t, event, expanded)

	gt.Value(t, card.Metadata.IsBot).Equal(true)
	gt.Value(t, card.Metadata.AvatarURL).Equal("https://example.com/correct-bot.png")
}

func TestComposeEventCard_MalformedPayloadDegrades(t *testing.T) {
	uc := newTestUseCase(nil)

	event := newEvent(t, model.EventTypePush, `{"ref": 12345, "commits": "oops"}`)
	card := uc.event(t, event, expanded)

	// The repository row survives; payload-derived rows are omitted
	gt.Value(t, findRow(card, model.RowKindCommitList)).Nil()
	gt.Value(t, findRow(card, model.RowKindRepositoryList)).NotNil()
}

func TestComposeEventCard_InvalidViewMode(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypePush, `{}`)

	_, err := uc.uc.ComposeEventCard(context.Background(), event, model.ComposeOptions{ViewMode: "huge"})
	gt.Error(t, err)
}

func TestComposeEventCard_Idempotent(t *testing.T) {
	uc := newTestUseCase(nil)
	payload := `{
		"ref": "refs/heads/main",
		"commits": [{"sha": "aaa", "message": "m", "url": "https://api.github.com/repos/o/r/commits/aaa"}]
	}`

	first := uc.event(t, newEvent(t, model.EventTypePush, payload), expanded)
	second := uc.event(t, newEvent(t, model.EventTypePush, payload), expanded)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("composing the same input twice diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComposeEventCard_ReadStateAndTopMargins(t *testing.T) {
	store := newStubReadState()
	store.readIDs["evt-1"] = true
	store.savedIDs["evt-1"] = true
	uc := newTestUseCase(store)

	event := newEvent(t, model.EventTypePush, `{
		"ref": "refs/heads/main",
		"commits": [{"sha": "aaa", "message": "m", "url": "https://api.github.com/repos/facebook/react/commits/aaa"}]
	}`)

	card := uc.event(t, event, expanded)

	gt.Value(t, card.Metadata.IsRead).Equal(true)
	gt.Value(t, card.Metadata.IsSaved).Equal(true)
	gt.Value(t, card.Metadata.BackgroundColorKey).Equal("read")

	// Every expanded row sits below the header, so all carry a top margin
	for _, row := range card.Rows {
		gt.Value(t, row.WithTopMargin).Equal(true)
	}
	gt.Value(t, card.Metadata.IsSingleRow).Equal(false)
}

func TestComposeEventCard_CompactSingleRow(t *testing.T) {
	uc := newTestUseCase(nil)
	event := newEvent(t, model.EventTypeWatch, `{"action": "started"}`)

	card := uc.event(t, event, compact)

	// Only the actor action row is emitted; its top margin is false
	gt.Number(t, len(card.Rows)).Equal(1)
	gt.Value(t, card.Rows[0].Kind).Equal(model.RowKindActorAction)
	gt.Value(t, card.Rows[0].WithTopMargin).Equal(false)
	gt.Value(t, card.Metadata.IsSingleRow).Equal(true)
	gt.Value(t, card.Metadata.ActionSummaryText).Equal("starred facebook/react")
}
