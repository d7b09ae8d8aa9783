package room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hweijian/ghostgame-go/internal/broadcast"
	"github.com/hweijian/ghostgame-go/internal/dependencies/clock"
	"github.com/hweijian/ghostgame-go/internal/dependencies/random"
	"github.com/hweijian/ghostgame-go/internal/model"
	"github.com/hweijian/ghostgame-go/internal/services/roles"
	"github.com/hweijian/ghostgame-go/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 4
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// JoinRequest carries a joining player's identity and preferences
type JoinRequest struct {
	Username        model.Username
	PreferenceMajor string
	PreferenceMinor string

	// RequestedPosition defaults to model.DefaultRequestedPosition when zero
	RequestedPosition int
}

// JoinResult reports whether the join created the room
type JoinResult struct {
	Created bool
	Room    *model.Room
}

// StartResult reports the outcome of a start attempt. Started is false for
// the soft no-op taken when too few players are present.
type StartResult struct {
	Started    bool
	Assignment *roles.Assignment
}

// Coordinator orchestrates the room lifecycle: joins, leaves, teardown and
// round start. All mutations of one room are serialized behind a per-room
// lock; storage writes are authoritative and broadcast publishes are
// best-effort on top of them.
type Coordinator struct {
	storage   storage.Storage
	broadcast broadcast.Broadcast
	engine    *roles.Engine
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	locks     *keyedLocks
}

// NewCoordinator creates a new room Coordinator
func NewCoordinator(
	storage storage.Storage,
	broadcast broadcast.Broadcast,
	engine *roles.Engine,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		storage:   storage,
		broadcast: broadcast,
		engine:    engine,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "room")),
		locks:     newKeyedLocks(),
	}
}

// NewRoomCode generates a room id not currently in use. Room ids may also
// be chosen by clients; this is a convenience for ones that don't care.
func (c *Coordinator) NewRoomCode(ctx context.Context) (model.RoomID, error) {
	for {
		id := model.RoomID(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
}

// GetRoom retrieves a room by id
func (c *Coordinator) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, id)
}

// GetRoomPlayers retrieves the player records of a room's members, in join order
func (c *Coordinator) GetRoomPlayers(ctx context.Context, id model.RoomID) ([]*model.Player, error) {
	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.playersInOrder(ctx, room)
}

// Join adds a player to a room, creating the room if it does not exist yet.
// The first joiner becomes the owner. Re-joining with the same username is
// an idempotent success; a full or started room rejects with ErrRoomFull.
func (c *Coordinator) Join(ctx context.Context, id model.RoomID, req JoinRequest) (*JoinResult, error) {
	if req.PreferenceMajor == "" || req.PreferenceMinor == "" {
		return nil, model.ErrMissingPreferences
	}
	if req.RequestedPosition == 0 {
		req.RequestedPosition = model.DefaultRequestedPosition
	}
	if req.RequestedPosition < model.MinRequestedPosition || req.RequestedPosition > model.MaxRequestedPosition {
		return nil, model.ErrInvalidPosition
	}

	unlock := c.locks.acquire(id)
	defer unlock()

	now := c.clock.Now()

	room, err := c.storage.GetRoom(ctx, id)
	if errors.Is(err, model.ErrRoomNotFound) {
		return c.createRoom(ctx, id, req, now)
	}
	if err != nil {
		return nil, err
	}

	if room.HasMember(req.Username) {
		// already in: report success without touching anything
		return &JoinResult{Created: false, Room: room}, nil
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	if err := c.storage.SavePlayer(ctx, newPlayer(id, req, now)); err != nil {
		return nil, err
	}

	room.Members = append(room.Members, req.Username)
	room.UpdatedAt = now
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		// no member entry points at the record, so drop it
		_ = c.storage.DeletePlayer(ctx, id, req.Username)
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("room_id", string(id)),
		slog.String("username", string(req.Username)),
		slog.Int("player_count", room.PlayerCount()),
	)

	c.publishLobby(ctx, room)
	return &JoinResult{Created: false, Room: room}, nil
}

// createRoom handles the first join to an unknown room id. Caller holds the
// room lock.
func (c *Coordinator) createRoom(ctx context.Context, id model.RoomID, req JoinRequest, now time.Time) (*JoinResult, error) {
	room := &model.Room{
		ID:        id,
		Owner:     req.Username,
		Members:   []model.Username{req.Username},
		Started:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	if err := c.storage.SavePlayer(ctx, newPlayer(id, req, now)); err != nil {
		// a room whose owner has no player record is unusable
		_ = c.storage.DeleteRoom(ctx, id)
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_id", string(id)),
		slog.String("owner", string(req.Username)),
	)

	c.publishLobby(ctx, room)
	return &JoinResult{Created: true, Room: room}, nil
}

// Leave removes a player from a room. The owner leaving destroys the room
// and every player record in it. A non-owner leaving a started room is a
// no-op: the player is merely away and may rejoin the running game.
func (c *Coordinator) Leave(ctx context.Context, id model.RoomID, username model.Username) error {
	unlock := c.locks.acquire(id)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	if room.IsOwner(username) {
		return c.destroyRoom(ctx, room)
	}

	if room.Started {
		// away, not gone
		return nil
	}
	if !room.HasMember(username) {
		return nil
	}

	if err := c.storage.DeletePlayer(ctx, id, username); err != nil {
		return err
	}

	room.RemoveMember(username)
	room.UpdatedAt = c.clock.Now()

	// unreachable while the owner stays a member, but an empty unstarted
	// room is unclaimed and must not linger
	if room.PlayerCount() == 0 {
		return c.destroyRoom(ctx, room)
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.logger.Info("player left",
		slog.String("room_id", string(id)),
		slog.String("username", string(username)),
	)

	if err := c.broadcast.Retract(ctx, id, "lobby", string(username)); err != nil {
		c.logger.Warn("broadcast retract failed",
			slog.String("room_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// destroyRoom cascades deletion: player records, the room, then the whole
// broadcast tree. Caller holds the room lock.
func (c *Coordinator) destroyRoom(ctx context.Context, room *model.Room) error {
	if err := c.storage.DeletePlayersForRoom(ctx, room.ID); err != nil {
		return err
	}
	if err := c.storage.DeleteRoom(ctx, room.ID); err != nil {
		return err
	}

	c.logger.Info("room destroyed",
		slog.String("room_id", string(room.ID)),
		slog.Int("player_count", room.PlayerCount()),
	)

	if err := c.broadcast.Retract(ctx, room.ID); err != nil {
		c.logger.Warn("broadcast retract failed",
			slog.String("room_id", string(room.ID)),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Start begins the round: deals roles, persists them, and publishes the
// full round state. Fewer than six members is a soft no-op so the caller's
// UI can simply ignore it; restarting a started room fails with
// ErrAlreadyStarted.
func (c *Coordinator) Start(ctx context.Context, id model.RoomID) (*StartResult, error) {
	unlock := c.locks.acquire(id)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if room.Started {
		return nil, model.ErrAlreadyStarted
	}
	if room.PlayerCount() < model.MinPlayersToStart {
		c.logger.Info("not enough players to start",
			slog.String("room_id", string(id)),
			slog.Int("player_count", room.PlayerCount()),
		)
		return &StartResult{Started: false}, nil
	}

	players, err := c.playersInOrder(ctx, room)
	if err != nil {
		return nil, err
	}

	// deal before any write so a failed assignment mutates nothing
	assignment, err := c.engine.Assign(players)
	if err != nil {
		return nil, err
	}

	room.Started = true
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	for _, p := range players {
		p.Role = assignment.Roles[p.Username]
		if err := c.storage.SavePlayer(ctx, p); err != nil {
			return nil, err
		}
	}

	c.logger.Info("game started",
		slog.String("room_id", string(id)),
		slog.Int("player_count", room.PlayerCount()),
		slog.String("ghost", string(assignment.Ghost)),
	)

	c.publishRound(ctx, room, assignment)
	return &StartResult{Started: true, Assignment: assignment}, nil
}

// playersInOrder fetches the room's player records in one read and orders
// them by the member list, so callers see a stable join-order view.
func (c *Coordinator) playersInOrder(ctx context.Context, room *model.Room) ([]*model.Player, error) {
	records, err := c.storage.GetPlayersForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	byName := make(map[model.Username]*model.Player, len(records))
	for _, p := range records {
		byName[p.Username] = p
	}

	players := make([]*model.Player, 0, room.PlayerCount())
	for _, username := range room.Members {
		p, ok := byName[username]
		if !ok {
			return nil, model.ErrPlayerNotFound
		}
		players = append(players, p)
	}
	return players, nil
}

// publishLobby pushes the pre-start membership tree. Publish failures are
// logged only: storage already holds the truth and clients can re-read it.
func (c *Coordinator) publishLobby(ctx context.Context, room *model.Room) {
	if err := c.broadcast.Publish(ctx, room.ID, model.LobbyTree(room)); err != nil {
		c.logger.Warn("broadcast publish failed",
			slog.String("room_id", string(room.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// publishRound pushes the full round tree: theme words, turn sequence, and
// every member's assigned role.
func (c *Coordinator) publishRound(ctx context.Context, room *model.Room, assignment *roles.Assignment) {
	lobby := make(map[model.Username]string, room.PlayerCount())
	for username, role := range assignment.Roles {
		lobby[username] = string(role)
	}

	tree := &model.RoomTree{
		Words: model.Words{
			Major: assignment.ThemeMajor,
			Minor: assignment.ThemeMinor,
			Seq:   assignment.Seq,
		},
		Lobby: lobby,
	}

	if err := c.broadcast.Publish(ctx, room.ID, tree); err != nil {
		c.logger.Warn("broadcast publish failed",
			slog.String("room_id", string(room.ID)),
			slog.String("error", err.Error()),
		)
	}
}

func newPlayer(id model.RoomID, req JoinRequest, now time.Time) *model.Player {
	return &model.Player{
		RoomID:            id,
		Username:          req.Username,
		PreferenceMajor:   req.PreferenceMajor,
		PreferenceMinor:   req.PreferenceMinor,
		RequestedPosition: req.RequestedPosition,
		JoinedAt:          now,
	}
}
