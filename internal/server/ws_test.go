package server

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Antoniohaas1337/IndexTracker/internal/progress"
)

func TestProgressWebSocketStreamsEvents(t *testing.T) {
	srv, ts := newTestServer(newFakeRepo(), &fakeValuator{})
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/progress"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	// Wait for the subscription to register before publishing.
	deadline := time.Now().Add(time.Second)
	for srv.hub.SubscriberCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(time.Millisecond)
	}

	indexID := uuid.New()
	srv.hub.Publish(progress.Event{
		IndexID: indexID, Operation: "spot", Completed: 2, Total: 5,
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event progress.Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}

	if event.IndexID != indexID || event.Completed != 2 || event.Total != 5 {
		t.Errorf("event = %+v", event)
	}
}
