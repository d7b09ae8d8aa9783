package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hweijian/ghostgame-go/internal/api"
	"github.com/hweijian/ghostgame-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(projectRoot, "bin", "ghostctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ghostctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(username string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)
	if username != "" {
		fullArgs = append([]string{"--username", username}, fullArgs...)
	}

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Coordinator: app.Coordinator,
		HubManager:  app.HubManager,
		PublicURL:   "http://" + addr,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("server never became ready")
}

func TestCLIRoomLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	srv := startTestServer(t)
	defer srv.shutdown()
	cli := newCLIRunner(t, srv.addr)

	// health check
	out, err := cli.run("", "health")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ok")

	// suggest a room code
	out, err = cli.run("", "room", "new")
	require.NoError(t, err, out)
	var suggestion struct {
		RoomID string `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &suggestion))
	require.Len(t, suggestion.RoomID, 4)
	roomID := suggestion.RoomID

	// first join creates the room
	out, err = cli.run("alice", "room", "join", roomID, "--major", "animals", "--minor", "cats")
	require.NoError(t, err, out)
	var joined struct {
		Created bool `json:"created"`
		Room    struct {
			Owner   string   `json:"owner"`
			Members []string `json:"members"`
		} `json:"room"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &joined))
	assert.True(t, joined.Created)
	assert.Equal(t, "alice", joined.Room.Owner)

	// five more players make the room dealable
	for i := 0; i < 5; i++ {
		username := fmt.Sprintf("player%02d", i)
		out, err = cli.run(username, "room", "join", roomID, "--major", "animals", "--minor", "cats")
		require.NoError(t, err, out)
	}

	out, err = cli.run("", "room", "players", roomID)
	require.NoError(t, err, out)
	var players []struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &players))
	assert.Len(t, players, 6)

	// start deals roles to everyone
	out, err = cli.run("", "room", "start", roomID)
	require.NoError(t, err, out)
	var started struct {
		Started   bool              `json:"started"`
		Roles     map[string]string `json:"roles"`
		TurnOrder []string          `json:"turn_order"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &started))
	assert.True(t, started.Started)
	assert.Len(t, started.Roles, 6)
	assert.Len(t, started.TurnOrder, 6)

	// joining a started room fails
	out, err = cli.run("latecomer", "room", "join", roomID, "--major", "a", "--minor", "b")
	require.Error(t, err)
	assert.Contains(t, out, "ROOM_FULL")

	// owner leave tears the room down
	out, err = cli.run("alice", "room", "leave", roomID)
	require.NoError(t, err, out)

	out, err = cli.run("", "room", "get", roomID)
	require.Error(t, err)
	assert.Contains(t, out, "ROOM_NOT_FOUND")
}

func TestCLIQRDownload(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	srv := startTestServer(t)
	defer srv.shutdown()
	cli := newCLIRunner(t, srv.addr)

	out, err := cli.run("alice", "room", "join", "QRME", "--major", "animals", "--minor", "cats")
	require.NoError(t, err, out)

	pngPath := filepath.Join(t.TempDir(), "join.png")
	out, err = cli.run("", "room", "qr", "QRME", "--out", pngPath)
	require.NoError(t, err, out)

	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[1:4]) == "PNG")
}
