package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomMembership(t *testing.T) {
	room := &Room{
		ID:      "GAME1",
		Owner:   "alice",
		Members: []Username{"alice", "bob", "carol"},
	}

	assert.True(t, room.HasMember("bob"))
	assert.False(t, room.HasMember("dave"))
	assert.True(t, room.IsOwner("alice"))
	assert.False(t, room.IsOwner("bob"))
	assert.Equal(t, 3, room.PlayerCount())

	room.RemoveMember("bob")
	assert.Equal(t, []Username{"alice", "carol"}, room.Members)

	// removing an absent member is a no-op
	room.RemoveMember("bob")
	assert.Equal(t, []Username{"alice", "carol"}, room.Members)
}

func TestRoomIsFull(t *testing.T) {
	room := &Room{ID: "GAME1"}
	for i := 0; i < MaxPlayers; i++ {
		assert.False(t, room.IsFull(), "room with %d members is not full", i)
		room.Members = append(room.Members, Username(rune('a'+i)))
	}
	assert.True(t, room.IsFull())

	// a started room is full regardless of headcount
	started := &Room{ID: "GAME2", Members: []Username{"alice"}, Started: true}
	assert.True(t, started.IsFull())
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("wizard").Valid())
}

func TestLobbyTree(t *testing.T) {
	room := &Room{
		ID:      "GAME1",
		Members: []Username{"alice", "bob"},
	}

	tree := LobbyTree(room)
	assert.Equal(t, Words{}, tree.Words)
	assert.Equal(t, map[Username]string{"alice": "", "bob": ""}, tree.Lobby)
}
