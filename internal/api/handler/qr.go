package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/hweijian/ghostgame-go/internal/model"
	"github.com/hweijian/ghostgame-go/internal/services/room"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// QRHandler renders QR codes that link players straight into a room
type QRHandler struct {
	coordinator *room.Coordinator
	publicURL   string
}

// NewQRHandler creates a QR handler.
// publicURL is the externally reachable base URL encoded in the QR image.
func NewQRHandler(coordinator *room.Coordinator, publicURL string) *QRHandler {
	return &QRHandler{coordinator: coordinator, publicURL: publicURL}
}

// Get handles GET /api/v1/rooms/{room_id}/qr
func (h *QRHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	if _, err := h.coordinator.GetRoom(r.Context(), roomID); err != nil {
		WriteError(w, err)
		return
	}

	size := defaultQRSize
	if s := r.URL.Query().Get("size"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 64 || parsed > maxQRSize {
			WriteError(w, NewInvalidRequestError("size must be between 64 and 1024"))
			return
		}
		size = parsed
	}

	joinURL := fmt.Sprintf("%s/rooms/%s", h.publicURL, roomID)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, size)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=300")
	_, _ = w.Write(png)
}
