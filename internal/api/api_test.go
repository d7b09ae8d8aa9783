package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hweijian/ghostgame-go/internal/api"
	"github.com/hweijian/ghostgame-go/internal/api/response"
	"github.com/hweijian/ghostgame-go/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Coordinator: app.Coordinator,
		HubManager:  app.HubManager,
		PublicURL:   "http://example.test",
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) join(t *testing.T, roomID, username string) response.JoinResponse {
	t.Helper()

	body := map[string]any{
		"username":         username,
		"preference_major": "animals",
		"preference_minor": "cats",
	}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", body)
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, rr.Code, rr.Body.String())

	var resp response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestSuggestRoomCode(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/rooms", nil)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.NewRoomResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.RoomID, 4)
}

func TestJoinCreatesRoom(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.join(t, "GAME1", "alice")
	assert.True(t, resp.Created)
	assert.Equal(t, "alice", resp.Room.Owner)
	assert.Equal(t, []string{"alice"}, resp.Room.Members)

	// second joiner lands in the existing room
	resp = ts.join(t, "GAME1", "bob")
	assert.False(t, resp.Created)
	assert.Equal(t, []string{"alice", "bob"}, resp.Room.Members)
}

func TestJoinValidation(t *testing.T) {
	ts := newTestServer(t)

	// no username
	rr := ts.request(http.MethodPost, "/api/v1/rooms/GAME1/join", map[string]any{
		"preference_major": "animals",
		"preference_minor": "cats",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// missing preferences
	rr = ts.request(http.MethodPost, "/api/v1/rooms/GAME1/join", map[string]any{
		"username": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "MISSING_PREFERENCES")

	// out-of-range position
	rr = ts.request(http.MethodPost, "/api/v1/rooms/GAME1/join", map[string]any{
		"username":           "alice",
		"preference_major":   "animals",
		"preference_minor":   "cats",
		"requested_position": 10,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_POSITION")
}

func TestGetRoom(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/GAME1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_NOT_FOUND")

	ts.join(t, "GAME1", "alice")

	rr = ts.request(http.MethodGet, "/api/v1/rooms/GAME1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	assert.Equal(t, "GAME1", room.ID)
	assert.False(t, room.Started)
}

func TestGetPlayers(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "GAME1", "alice")
	ts.join(t, "GAME1", "bob")

	rr := ts.request(http.MethodGet, "/api/v1/rooms/GAME1/players", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var players []response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 2)
	assert.Equal(t, "alice", players[0].Username)
	assert.Equal(t, "bob", players[1].Username)
	assert.Empty(t, players[0].Role)
}

func TestLeave(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "GAME1", "alice")
	ts.join(t, "GAME1", "bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/GAME1/leave", map[string]any{
		"username": "bob",
	})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/GAME1", nil)
	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	assert.Equal(t, []string{"alice"}, room.Members)

	// owner leaving tears the room down
	rr = ts.request(http.MethodPost, "/api/v1/rooms/GAME1/leave", map[string]any{
		"username": "alice",
	})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/GAME1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStartFlow(t *testing.T) {
	ts := newTestServer(t)

	usernames := []string{"alice", "bob", "carol", "dave", "erin", "frank"}
	for _, u := range usernames[:5] {
		ts.join(t, "GAME1", u)
	}

	// below the minimum the start is accepted but does nothing
	rr := ts.request(http.MethodPost, "/api/v1/rooms/GAME1/start", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var started response.StartResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &started))
	assert.False(t, started.Started)

	ts.join(t, "GAME1", usernames[5])

	rr = ts.request(http.MethodPost, "/api/v1/rooms/GAME1/start", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &started))
	assert.True(t, started.Started)
	assert.Len(t, started.Roles, 6)
	assert.Len(t, started.TurnOrder, 6)
	assert.NotEmpty(t, started.Seq)

	// restarting is a conflict
	rr = ts.request(http.MethodPost, "/api/v1/rooms/GAME1/start", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_STARTED")

	// a started room admits no new players
	rr = ts.request(http.MethodPost, "/api/v1/rooms/GAME1/join", map[string]any{
		"username":         "latecomer",
		"preference_major": "animals",
		"preference_minor": "cats",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_FULL")

	// dealt roles show up in the player listing
	rr = ts.request(http.MethodGet, "/api/v1/rooms/GAME1/players", nil)
	var players []response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	for _, p := range players {
		assert.NotEmpty(t, p.Role, "player %s has no role after start", p.Username)
	}
}

func TestRoomFull(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 10; i++ {
		ts.join(t, "GAME1", fmt.Sprintf("player%02d", i))
	}

	rr := ts.request(http.MethodPost, "/api/v1/rooms/GAME1/join", map[string]any{
		"username":         "latecomer",
		"preference_major": "animals",
		"preference_minor": "cats",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_FULL")
}

func TestQRCode(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/GAME1/qr", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	ts.join(t, "GAME1", "alice")

	rr = ts.request(http.MethodGet, "/api/v1/rooms/GAME1/qr", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))

	rr = ts.request(http.MethodGet, "/api/v1/rooms/GAME1/qr?size=9999", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
