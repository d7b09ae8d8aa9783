package model

// Words carries the published round data: the theme categories and the
// rendered turn-order text.
type Words struct {
	Major string `json:"major"`
	Minor string `json:"minor"`
	Seq   string `json:"seq"`
}

// RoomTree is the document published on a room's broadcast channel. Lobby
// maps each member to their assigned role, or "" before assignment.
type RoomTree struct {
	Words Words               `json:"words"`
	Lobby map[Username]string `json:"lobby"`
}

// LobbyTree builds the pre-start tree for a room: every member present with
// an empty role.
func LobbyTree(room *Room) *RoomTree {
	lobby := make(map[Username]string, len(room.Members))
	for _, m := range room.Members {
		lobby[m] = ""
	}
	return &RoomTree{Lobby: lobby}
}
