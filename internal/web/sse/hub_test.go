package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hweijian/ghostgame-go/internal/testutil"
)

func receiveMessage(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for hub message")
		return ""
	}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d clients (have %d)", want, hub.ClientCount())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFormatSSEMessage(t *testing.T) {
	assert.Equal(t,
		"event: update\ndata: {\"a\":1}\n\n",
		string(formatSSEMessage("update", `{"a":1}`)))

	// multi-line data gets one data: prefix per line
	assert.Equal(t,
		"event: update\ndata: line1\ndata: line2\n\n",
		string(formatSSEMessage("update", "line1\nline2")))
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	c1 := NewClient("alice")
	c2 := NewClient("bob")
	hub.Register(c1)
	hub.Register(c2)
	waitForClients(t, hub, 2)

	hub.BroadcastEvent("update", `{"x":1}`)

	want := "event: update\ndata: {\"x\":1}\n\n"
	assert.Equal(t, want, receiveMessage(t, c1))
	assert.Equal(t, want, receiveMessage(t, c2))
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient("alice")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	// the hub closes the client's channel on unregister
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	go hub.Run()

	client := NewClient("alice")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Close()
	waitForClients(t, hub, 0)
}

func TestClientEnqueue(t *testing.T) {
	client := NewClient("alice")
	client.Enqueue("update", `{"seed":true}`)

	require.Equal(t,
		"event: update\ndata: {\"seed\":true}\n\n",
		receiveMessage(t, client))
}

func TestHubManager(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())

	assert.Nil(t, m.GetHub("GAME1"))

	hub := m.GetOrCreateHub("GAME1")
	require.NotNil(t, hub)
	assert.Same(t, hub, m.GetOrCreateHub("GAME1"))
	assert.Same(t, hub, m.GetHub("GAME1"))

	other := m.GetOrCreateHub("GAME2")
	assert.NotSame(t, hub, other)

	m.RemoveHub("GAME1")
	assert.Nil(t, m.GetHub("GAME1"))
	m.RemoveHub("GAME2")
}
