package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Mayank-jangid007/CouseHub/pkg/realtime"
)

func TestFirehoseWebSocket(t *testing.T) {
	srv, _ := testServer(t)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/firehose/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing firehose: %v", err)
	}
	defer func() { _ = conn.Close() }()

	// Wait for the listener to register before broadcasting.
	deadline := time.Now().Add(time.Second)
	for srv.deps.Hub.Size() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("listener never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	srv.deps.Hub.Broadcast(realtime.ActivityEvent{
		Kind:        realtime.EventSearch,
		Query:       "golang",
		ResultCount: 3,
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev realtime.ActivityEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("reading event: %v", err)
	}
	if ev.Kind != realtime.EventSearch || ev.Query != "golang" || ev.ResultCount != 3 {
		t.Errorf("event = %+v", ev)
	}
}

func TestFirehoseUnregistersOnClose(t *testing.T) {
	srv, _ := testServer(t)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/firehose/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing firehose: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for srv.deps.Hub.Size() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("listener never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	_ = conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for srv.deps.Hub.Size() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("listener not unregistered after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
