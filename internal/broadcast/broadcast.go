package broadcast

import (
	"context"

	"github.com/hweijian/ghostgame-go/internal/model"
)

// Broadcast is the realtime fan-out collaborator. Each room has one channel,
// identified by its room id; Publish replaces the channel's document and
// Retract deletes a sub-path of it (the whole document when path is empty).
//
// Delivery is fire-and-forget: callers treat failures as log-and-continue,
// since clients can always resynchronize by re-reading room state.
type Broadcast interface {
	Publish(ctx context.Context, channel model.RoomID, tree *model.RoomTree) error
	Retract(ctx context.Context, channel model.RoomID, path ...string) error
}
