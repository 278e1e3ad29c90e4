package interfaces

import (
	"context"

	"github.com/m-mizutani/cardstack/pkg/domain/model"
)

// CardUseCase composes renderer-ready cards from raw activity records
type CardUseCase interface {
	// ComposeEventCard derives the ordered row list and card metadata for
	// one activity event. The only error it returns is a contract
	// violation in the compose options; malformed payloads degrade to
	// fewer rows.
	ComposeEventCard(ctx context.Context, event *model.Event, opts model.ComposeOptions) (*model.Card, error)

	// ComposeNotificationCard is the notification counterpart of
	// ComposeEventCard.
	ComposeNotificationCard(ctx context.Context, notification *model.Notification, opts model.ComposeOptions) (*model.Card, error)
}
