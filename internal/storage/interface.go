package storage

import (
	"context"

	"github.com/hweijian/ghostgame-go/internal/model"
)

// Storage defines the interface for data persistence. Writes are
// last-write-wins per entity; per-room serialization of read-modify-write
// cycles is the coordinator's responsibility.
type Storage interface {
	// Room operations. CreateRoom is conditional and fails with
	// model.ErrRoomExists when the id is already taken; SaveRoom overwrites.
	CreateRoom(ctx context.Context, room *model.Room) error
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error
	RoomExists(ctx context.Context, id model.RoomID) (bool, error)

	// Player operations; records are keyed by (room, username)
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, roomID model.RoomID, username model.Username) (*model.Player, error)
	GetPlayersForRoom(ctx context.Context, roomID model.RoomID) ([]*model.Player, error)
	DeletePlayer(ctx context.Context, roomID model.RoomID, username model.Username) error
	DeletePlayersForRoom(ctx context.Context, roomID model.RoomID) error
}
