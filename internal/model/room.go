package model

import "time"

// RoomID is the externally supplied identifier for a game room
type RoomID string

const (
	// MaxPlayers caps room membership
	MaxPlayers = 10
	// MinPlayersToStart is the smallest player count the role catalog supports
	MinPlayersToStart = 6
)

// Room is the game room aggregate: who is in it, who owns it, and whether
// the round has started. Members are usernames in join order.
type Room struct {
	ID RoomID

	// Owner is the first player to join. The owner leaving tears the whole
	// room down, started or not.
	Owner Username

	Members []Username

	// Started transitions false to true exactly once. A started room accepts
	// no new members; leaves during play are treated as away, not removed.
	Started bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether username has joined this room
func (r *Room) HasMember(username Username) bool {
	for _, m := range r.Members {
		if m == username {
			return true
		}
	}
	return false
}

// IsOwner reports whether username created this room
func (r *Room) IsOwner(username Username) bool {
	return r.Owner == username
}

// PlayerCount returns the current membership size
func (r *Room) PlayerCount() int {
	return len(r.Members)
}

// IsFull reports whether the room accepts no further joins: either the
// round has started or membership is at the cap.
func (r *Room) IsFull() bool {
	return r.Started || len(r.Members) == MaxPlayers
}

// RemoveMember drops username from the member list. No-op if absent.
func (r *Room) RemoveMember(username Username) {
	for i, m := range r.Members {
		if m == username {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return
		}
	}
}
