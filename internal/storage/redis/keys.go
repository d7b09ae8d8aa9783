package redis

import (
	"fmt"

	"github.com/hweijian/ghostgame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "ghostgame"

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// playerKey returns the Redis key for a Player record
func playerKey(roomID model.RoomID, username model.Username) string {
	return fmt.Sprintf("%s:player:%s:%s", keyPrefix, roomID, username)
}

// playersForRoomIndexKey returns the Redis key for the SET of player keys in a room
func playersForRoomIndexKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:idx:players_for_room:%s", keyPrefix, roomID)
}
