package sse

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hweijian/ghostgame-go/internal/model"
)

const (
	// clientBufferSize is the per-client send queue; slow consumers past
	// this point get messages dropped rather than stalling the hub
	clientBufferSize = 64

	keepaliveInterval = 30 * time.Second
)

// Client is one SSE connection to a room channel
type Client struct {
	id          string
	username    model.Username
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a client for a named viewer of a room channel
func NewClient(username model.Username) *Client {
	return &Client{
		id:          uuid.NewString(),
		username:    username,
		send:        make(chan []byte, clientBufferSize),
		connectedAt: time.Now(),
	}
}

// Enqueue queues an event for this client only, ahead of hub traffic.
// Used to seed a fresh connection with the current room state.
func (c *Client) Enqueue(eventName, data string) {
	select {
	case c.send <- formatSSEMessage(eventName, data):
	default:
	}
}

// ServeSSE streams hub messages to the HTTP response until the request
// context is cancelled or the hub closes the client
func (c *Client) ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, logger *slog.Logger) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	hub.Register(c)
	defer hub.Unregister(c)

	fmt.Fprintf(w, "event: connected\ndata: {\"client_id\":%q}\n\n", c.id)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			if _, err := w.Write(message); err != nil {
				logger.Debug("sse write failed",
					slog.String("client_id", c.id),
					slog.String("error", err.Error()))
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
