package brackets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesRoomOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run(ctx)

	editionID := uuid.New()
	watcher := &Client{Hub: hub, Send: make(chan []byte, 4), Room: RoomForEdition(editionID)}
	other := &Client{Hub: hub, Send: make(chan []byte, 4), Room: RoomForEdition(uuid.New())}
	hub.Register <- watcher
	hub.Register <- other

	require.Eventually(t, func() bool { return hub.RoomSize(watcher.Room) == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(editionID, EventWinnerRegistered, map[string]string{"phase": "final"})

	select {
	case raw := <-watcher.Send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventWinnerRegistered, msg.Type)
		assert.Equal(t, watcher.Room, msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("watcher did not receive the event")
	}

	assert.Len(t, other.Send, 0)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run(ctx)

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: "edition_test"}
	hub.Register <- client
	hub.Unregister <- client

	require.Eventually(t, func() bool { return hub.RoomSize("edition_test") == 0 }, time.Second, 10*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)
}
