package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Registration happens in the upgrade handler, before the handshake
	// response reaches the dialer, so the client is subscribed by now.
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	hub.Broadcast(Event{
		Type:      EventStarted,
		SessionID: "s1",
		ArtistID:  "a1",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if ev.Type != EventStarted || ev.SessionID != "s1" || ev.ArtistID != "a1" {
		t.Fatalf("event = %+v", ev)
	}
	if ev.Timestamp == 0 {
		t.Fatal("broadcast must stamp the event")
	}
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()
	a := dialHub(t, hub)
	b := dialHub(t, hub)

	hub.Broadcast(Event{Type: EventEnded, SessionID: "s2"})

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if ev.SessionID != "s2" {
			t.Fatalf("event = %+v", ev)
		}
	}
}
