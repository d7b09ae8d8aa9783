package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hweijian/ghostgame-go/internal/api/request"
	"github.com/hweijian/ghostgame-go/internal/api/response"
	"github.com/hweijian/ghostgame-go/internal/model"
	"github.com/hweijian/ghostgame-go/internal/services/room"
)

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	coordinator *room.Coordinator
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(coordinator *room.Coordinator) *RoomHandler {
	return &RoomHandler{coordinator: coordinator}
}

// Suggest handles POST /api/v1/rooms
// Returns a fresh room code; the room itself is created on first join.
func (h *RoomHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	roomID, err := h.coordinator.NewRoomCode(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.NewRoomResponse{RoomID: string(roomID)})
}

// Get handles GET /api/v1/rooms/{room_id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	rm, err := h.coordinator.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(rm))
}

// GetPlayers handles GET /api/v1/rooms/{room_id}/players
func (h *RoomHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	players, err := h.coordinator.GetRoomPlayers(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Player, len(players))
	for i, p := range players {
		out[i] = response.PlayerFromModel(p)
	}
	response.JSON(w, http.StatusOK, out)
}

// Join handles POST /api/v1/rooms/{room_id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	result, err := h.coordinator.Join(r.Context(), roomID, room.JoinRequest{
		Username:          model.Username(req.Username),
		PreferenceMajor:   req.PreferenceMajor,
		PreferenceMinor:   req.PreferenceMinor,
		RequestedPosition: req.RequestedPosition,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.JoinResponse{
		Created: result.Created,
		Room:    response.RoomFromModel(result.Room),
	})
}

// Leave handles POST /api/v1/rooms/{room_id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.LeaveRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	if err := h.coordinator.Leave(r.Context(), roomID, model.Username(req.Username)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Start handles POST /api/v1/rooms/{room_id}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	result, err := h.coordinator.Start(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StartResponseFromAssignment(result.Started, result.Assignment))
}
