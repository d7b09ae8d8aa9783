package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hweijian/ghostgame-go/internal/broadcast"
	"github.com/hweijian/ghostgame-go/internal/model"
)

// Broadcaster delivers room trees to SSE subscribers through the hub for
// each room channel
type Broadcaster struct {
	hubs   *HubManager
	logger *slog.Logger
}

var _ broadcast.Broadcast = (*Broadcaster)(nil)

// NewBroadcaster creates a Broadcaster on top of a HubManager
func NewBroadcaster(hubs *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "broadcaster")),
	}
}

// Publish replaces the room's tree for every subscriber
func (b *Broadcaster) Publish(_ context.Context, channel model.RoomID, tree *model.RoomTree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("marshaling room tree: %w", err)
	}

	hub := b.hubs.GetHub(channel)
	if hub == nil {
		// nobody is listening yet; the next subscriber fetches current
		// state over the REST API before attaching
		b.logger.Debug("publish with no subscribers",
			slog.String("room_id", string(channel)))
		return nil
	}

	hub.BroadcastEvent("update", string(data))
	return nil
}

// Retract removes the sub-tree at path, or the whole channel when path is
// empty
func (b *Broadcaster) Retract(_ context.Context, channel model.RoomID, path ...string) error {
	if len(path) == 0 {
		if hub := b.hubs.GetHub(channel); hub != nil {
			hub.BroadcastEvent("retract", `{"path":[]}`)
		}
		b.hubs.RemoveHub(channel)
		return nil
	}

	hub := b.hubs.GetHub(channel)
	if hub == nil {
		return nil
	}

	data, err := json.Marshal(map[string][]string{"path": path})
	if err != nil {
		return fmt.Errorf("marshaling retract path: %w", err)
	}
	hub.BroadcastEvent("retract", string(data))
	return nil
}
