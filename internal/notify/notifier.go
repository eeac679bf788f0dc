package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aromacraft/storefront-backend/pkg/logger"
)

// Channels carrying storefront notifications. Subscribers drive UI badges
// and toasts; delivery is best effort.
const (
	ChannelCartCount = "ac:cart:count"
	ChannelItemAdded = "ac:cart:item_added"
)

type publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// CartNotifier fans cart events out over Redis pub/sub. Publish failures
// are logged and swallowed; a dead subscriber must never fail a mutation.
type CartNotifier struct {
	pub  publisher
	logg *logger.Logger
}

// NewCartNotifier builds a notifier on the given publisher.
func NewCartNotifier(pub publisher, logg *logger.Logger) (*CartNotifier, error) {
	if pub == nil {
		return nil, fmt.Errorf("publisher required")
	}
	return &CartNotifier{pub: pub, logg: logg}, nil
}

type countPayload struct {
	SessionID string `json:"session_id"`
	Count     int    `json:"count"`
}

type itemAddedPayload struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}

// CartCountUpdated publishes the new item count for the session.
func (n *CartNotifier) CartCountUpdated(ctx context.Context, sessionID string, count int) {
	n.emit(ctx, ChannelCartCount, countPayload{SessionID: sessionID, Count: count})
}

// ItemAdded publishes the name of the line just added or merged.
func (n *CartNotifier) ItemAdded(ctx context.Context, sessionID, name string) {
	n.emit(ctx, ChannelItemAdded, itemAddedPayload{SessionID: sessionID, Name: name})
}

func (n *CartNotifier) emit(ctx context.Context, channel string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		n.warn(ctx, channel, err)
		return
	}
	if err := n.pub.Publish(ctx, channel, body); err != nil {
		n.warn(ctx, channel, err)
	}
}

func (n *CartNotifier) warn(ctx context.Context, channel string, err error) {
	if n.logg == nil {
		return
	}
	ctx = n.logg.WithField(ctx, "channel", channel)
	n.logg.Warn(ctx, fmt.Sprintf("cart notification dropped: %v", err))
}
