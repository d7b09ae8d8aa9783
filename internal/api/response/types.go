package response

import (
	"time"

	"github.com/hweijian/ghostgame-go/internal/model"
	"github.com/hweijian/ghostgame-go/internal/services/roles"
)

// Player represents a room member in API responses
type Player struct {
	Username          string    `json:"username"`
	PreferenceMajor   string    `json:"preference_major"`
	PreferenceMinor   string    `json:"preference_minor"`
	RequestedPosition int       `json:"requested_position"`
	Role              string    `json:"role,omitempty"`
	JoinedAt          time.Time `json:"joined_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Username:          string(p.Username),
		PreferenceMajor:   p.PreferenceMajor,
		PreferenceMinor:   p.PreferenceMinor,
		RequestedPosition: p.RequestedPosition,
		Role:              string(p.Role),
		JoinedAt:          p.JoinedAt,
	}
}

// Room represents a room in API responses
type Room struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Members   []string  `json:"members"`
	Started   bool      `json:"started"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomFromModel converts a model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	members := make([]string, len(r.Members))
	for i, m := range r.Members {
		members[i] = string(m)
	}
	return Room{
		ID:        string(r.ID),
		Owner:     string(r.Owner),
		Members:   members,
		Started:   r.Started,
		CreatedAt: r.CreatedAt,
	}
}

// JoinResponse is returned after joining a room
type JoinResponse struct {
	Created bool `json:"created"`
	Room    Room `json:"room"`
}

// StartResponse is returned after a start request
type StartResponse struct {
	Started   bool              `json:"started"`
	Roles     map[string]string `json:"roles,omitempty"`
	TurnOrder []string          `json:"turn_order,omitempty"`
	Seq       string            `json:"seq,omitempty"`
}

// StartResponseFromAssignment converts an engine assignment
func StartResponseFromAssignment(started bool, a *roles.Assignment) StartResponse {
	resp := StartResponse{Started: started}
	if a == nil {
		return resp
	}
	resp.Roles = make(map[string]string, len(a.Roles))
	for username, role := range a.Roles {
		resp.Roles[string(username)] = string(role)
	}
	resp.TurnOrder = make([]string, len(a.TurnOrder))
	for i, u := range a.TurnOrder {
		resp.TurnOrder[i] = string(u)
	}
	resp.Seq = a.Seq
	return resp
}

// NewRoomResponse is returned when suggesting a fresh room code
type NewRoomResponse struct {
	RoomID string `json:"room_id"`
}
