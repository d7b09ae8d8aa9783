package request

// JoinRoomRequest is the request body for joining (or creating) a room
type JoinRoomRequest struct {
	Username          string `json:"username"`
	PreferenceMajor   string `json:"preference_major"`
	PreferenceMinor   string `json:"preference_minor"`
	RequestedPosition int    `json:"requested_position,omitempty"`
}

// LeaveRoomRequest is the request body for leaving a room
type LeaveRoomRequest struct {
	Username string `json:"username"`
}
