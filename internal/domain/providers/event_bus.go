package providers

import (
	"context"
	"strconv"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// reward events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.RewardEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RewardEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel constants
const (
	// EventChannelReports carries report lifecycle events (submitted,
	// claimed, verified) for every open task list
	EventChannelReports = "reports:updates"

	// EventChannelBalancePrefix is the prefix for per-user balance channels
	EventChannelBalancePrefix = "balance:"
)

// GetBalanceChannel returns the balance channel name for a user
func GetBalanceChannel(userID int64) string {
	return EventChannelBalancePrefix + strconv.FormatInt(userID, 10)
}
