package host_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"shocklink/internal/host"
)

func dialBridge(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestBridgeDeliversDeathEvents(t *testing.T) {
	bridge := host.NewBridge(zerolog.Nop())
	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dialBridge(t, srv)
	if err := conn.WriteJSON(host.Event{Event: "death"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	select {
	case <-bridge.Deaths():
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for death event")
	}
}

func TestBridgeIgnoresUnknownEvents(t *testing.T) {
	bridge := host.NewBridge(zerolog.Nop())
	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dialBridge(t, srv)
	if err := conn.WriteJSON(host.Event{Event: "respawn"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if err := conn.WriteJSON(host.Event{Event: "death"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	select {
	case <-bridge.Deaths():
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for death event")
	}

	select {
	case <-bridge.Deaths():
		t.Fatalf("unknown event produced a death trigger")
	default:
	}
}

func TestBridgePopupReachesConnectedMod(t *testing.T) {
	bridge := host.NewBridge(zerolog.Nop())
	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dialBridge(t, srv)

	// The server registers the connection just after the handshake, so an
	// early popup may be dropped. Keep sending until one gets through.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			bridge.Popup("Message", "Shocking...")
			select {
			case <-stop:
				return
			case <-time.After(50 * time.Millisecond):
			}
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var cmd host.Command
	if err := conn.ReadJSON(&cmd); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if cmd.Command != "popup" {
		t.Fatalf("command = %q, want popup", cmd.Command)
	}
	if cmd.Title != "Message" || cmd.Text != "Shocking..." {
		t.Fatalf("popup payload = (%q, %q), want (Message, Shocking...)", cmd.Title, cmd.Text)
	}
}

func TestBridgeCommandsWithoutModDoNotBlock(t *testing.T) {
	bridge := host.NewBridge(zerolog.Nop())

	done := make(chan struct{})
	go func() {
		bridge.Popup("Message", "Shocking...")
		bridge.Pause()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("bridge commands blocked with no mod connected")
	}
}
