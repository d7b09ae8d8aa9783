package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hweijian/ghostgame-go/internal/api/handler"
	"github.com/hweijian/ghostgame-go/internal/api/middleware"
	"github.com/hweijian/ghostgame-go/internal/services/room"
	"github.com/hweijian/ghostgame-go/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Coordinator *room.Coordinator
	HubManager  *sse.HubManager
	PublicURL   string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.Coordinator)
	qrHandler := handler.NewQRHandler(cfg.Coordinator, cfg.PublicURL)
	eventsHandler := handler.NewEventsHandler(cfg.Coordinator, cfg.HubManager, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/rooms", roomHandler.Suggest).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/players", roomHandler.GetPlayers).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/start", roomHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/qr", qrHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
