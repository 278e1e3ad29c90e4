package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/cardstack/pkg/domain/interfaces"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/cardstack/pkg/utils/colorutil"
	"github.com/m-mizutani/cardstack/pkg/utils/text"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// minIconContrast is the contrast ratio icon colors must reach against the
// card background before they are handed to the renderer.
const minIconContrast = 3.0

type cardUseCase struct {
	readState interfaces.ReadStateStore
	theme     interfaces.ThemeProvider
	now       func() time.Time
}

// Option is a functional option for the card use case
type Option func(*cardUseCase)

// WithClock overrides the time source; tests use it to pin the relative
// date texts and the stale-body rule.
func WithClock(now func() time.Time) Option {
	return func(uc *cardUseCase) {
		uc.now = now
	}
}

// NewCard creates the card composition use case
func NewCard(readState interfaces.ReadStateStore, themeProvider interfaces.ThemeProvider, opts ...Option) interfaces.CardUseCase {
	uc := &cardUseCase{
		readState: readState,
		theme:     themeProvider,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ComposeEventCard derives the row list and card metadata for one activity
// event. Malformed payloads compose into fewer rows; the only returned
// error is an invalid view mode, which is caller misuse.
func (uc *cardUseCase) ComposeEventCard(ctx context.Context, event *model.Event, opts model.ComposeOptions) (*model.Card, error) {
	if err := opts.ViewMode.Validate(); err != nil {
		return nil, goerr.Wrap(err, "cannot compose event card", goerr.V("event_id", event.ID))
	}

	entities := uc.extractEventEntities(ctx, event, opts)

	summary := eventText(event, entities, summaryOptions{
		includeBranch: opts.ViewMode == model.ViewModeCompact,
		repoIsKnown:   opts.RepoIsKnown,
	})

	rows, marginCount := uc.composeRows(entities, summary, opts)

	metadata := uc.buildMetadata(entities, eventIconAndColor(event, entities), summary, event.CreatedAt, marginCount)
	metadata.Username = actorDisplayLogin(event.Actor)
	metadata.UserLinkURL = event.Actor.GetHTMLURL()

	ctxlog.From(ctx).Debug("Composed event card",
		"event_id", event.ID,
		"event_type", event.Type,
		"rows", len(rows),
		"single_row", metadata.IsSingleRow,
	)

	return &model.Card{Rows: rows, Metadata: metadata}, nil
}

// ComposeNotificationCard is the notification counterpart of
// ComposeEventCard.
func (uc *cardUseCase) ComposeNotificationCard(ctx context.Context, notification *model.Notification, opts model.ComposeOptions) (*model.Card, error) {
	if err := opts.ViewMode.Validate(); err != nil {
		return nil, goerr.Wrap(err, "cannot compose notification card", goerr.V("notification_id", notification.ID))
	}

	entities := uc.extractNotificationEntities(ctx, notification, opts)

	// Notifications have no acting user, hence no action sentence
	rows, marginCount := uc.composeRows(entities, "", opts)

	metadata := uc.buildMetadata(entities, notificationIconAndColor(notification, entities.IssueOrPullRequest), "", notification.UpdatedAt, marginCount)
	metadata.Username = entities.Actor.GetName()
	metadata.UserLinkURL = entities.Actor.GetHTMLURL()
	metadata.Reason = notification.Reason

	ctxlog.From(ctx).Debug("Composed notification card",
		"notification_id", notification.ID,
		"subject_type", notification.SubjectType(),
		"rows", len(rows),
	)

	return &model.Card{Rows: rows, Metadata: metadata}, nil
}

func (uc *cardUseCase) buildMetadata(entities *model.ExtractedEntities, icon IconAndColor, summary string, date time.Time, marginCount int) model.CardMetadata {
	backgroundKey := uc.theme.BackgroundKey(entities.IsRead)
	iconColor := icon.Color
	if iconColor != "" {
		iconColor = colorutil.Readable(iconColor, uc.theme.BackgroundColor(backgroundKey), minIconContrast)
	}

	hasLabels := entities.IssueOrPullRequest != nil && len(entities.IssueOrPullRequest.Labels) > 0
	now := uc.now()

	return model.CardMetadata{
		IconName:             icon.Icon,
		IconColor:            iconColor,
		BackgroundColorKey:   backgroundKey,
		ActionSummaryText:    summary,
		IsSingleRow:          marginCount <= 1 && !hasLabels,
		IsRead:               entities.IsRead,
		IsSaved:              entities.IsSaved,
		IsPrivate:            entities.IsPrivate,
		IsBot:                entities.IsBot,
		AvatarURL:            entities.AvatarURL,
		Date:                 date,
		RelativeDateText:     text.ShortRelativeDate(date, now),
		LongRelativeDateText: text.LongRelativeDate(date, now),
		FullDateText:         text.FullDateText(date),
	}
}
