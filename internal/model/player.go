package model

import "time"

// Username identifies a player. Usernames are opaque, already-validated
// strings; identity/authentication is the caller's problem.
type Username string

// Requested turn-order positions are declared by each player at join time
// and only matter for whoever ends up as the ghost.
const (
	MinRequestedPosition     = 1
	MaxRequestedPosition     = 9
	DefaultRequestedPosition = 9
)

// Player is one player's record inside a single room. Records are keyed by
// (RoomID, Username): the same username may exist in different rooms, and a
// record never outlives the room it joined.
type Player struct {
	RoomID   RoomID
	Username Username

	// PreferenceMajor and PreferenceMinor are the player's chosen category
	// labels, surfaced as the round theme if this player is picked.
	PreferenceMajor string
	PreferenceMinor string

	// Role is empty until assignment runs at game start.
	Role Role

	// RequestedPosition is the 0-based turn-order slot the player wants if
	// they are dealt the ghost. Range [1,9], default 9; values past the end
	// of the sequence clamp to last.
	RequestedPosition int

	JoinedAt time.Time
}
