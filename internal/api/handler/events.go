package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hweijian/ghostgame-go/internal/model"
	"github.com/hweijian/ghostgame-go/internal/services/room"
	"github.com/hweijian/ghostgame-go/internal/web/sse"
)

// EventsHandler streams room state changes over SSE
type EventsHandler struct {
	coordinator *room.Coordinator
	hubManager  *sse.HubManager
	logger      *slog.Logger
}

// NewEventsHandler creates an events handler
func NewEventsHandler(coordinator *room.Coordinator, hubManager *sse.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		coordinator: coordinator,
		hubManager:  hubManager,
		logger:      logger.With(slog.String("component", "events")),
	}
}

// Stream handles GET /api/v1/rooms/{room_id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])
	username := model.Username(r.URL.Query().Get("username"))

	rm, err := h.coordinator.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	players, err := h.coordinator.GetRoomPlayers(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(roomID)
	client := sse.NewClient(username)

	// seed the new connection with the current lobby state; subsequent
	// changes arrive as hub broadcasts
	tree := model.LobbyTree(rm)
	for _, p := range players {
		tree.Lobby[p.Username] = string(p.Role)
	}
	if snapshot, err := json.Marshal(tree); err == nil {
		client.Enqueue("update", string(snapshot))
	}

	client.ServeSSE(w, r, hub, h.logger)
}
