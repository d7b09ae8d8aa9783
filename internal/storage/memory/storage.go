package memory

import (
	"context"
	"sync"

	"github.com/hweijian/ghostgame-go/internal/model"
	"github.com/hweijian/ghostgame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Records
// are copied on the way in and out so callers never share mutable state
// with the store.
type Storage struct {
	mu sync.RWMutex

	rooms   map[model.RoomID]*model.Room
	players map[playerKey]*model.Player
}

type playerKey struct {
	roomID   model.RoomID
	username model.Username
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:   make(map[model.RoomID]*model.Room),
		players: make(map[playerKey]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func copyRoom(room *model.Room) *model.Room {
	cp := *room
	cp.Members = append([]model.Username(nil), room.Members...)
	return &cp
}

func copyPlayer(player *model.Player) *model.Player {
	cp := *player
	return &cp
}

// Room operations

func (s *Storage) CreateRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return model.ErrRoomExists
	}
	s.rooms[room.ID] = copyRoom(room)
	return nil
}

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = copyRoom(room)
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return copyRoom(room), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[playerKey{roomID: player.RoomID, username: player.Username}] = copyPlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, roomID model.RoomID, username model.Username) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[playerKey{roomID: roomID, username: username}]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(player), nil
}

func (s *Storage) GetPlayersForRoom(ctx context.Context, roomID model.RoomID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.Player
	for key, player := range s.players {
		if key.roomID == roomID {
			players = append(players, copyPlayer(player))
		}
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, roomID model.RoomID, username model.Username) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, playerKey{roomID: roomID, username: username})
	return nil
}

func (s *Storage) DeletePlayersForRoom(ctx context.Context, roomID model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.players {
		if key.roomID == roomID {
			delete(s.players, key)
		}
	}
	return nil
}
