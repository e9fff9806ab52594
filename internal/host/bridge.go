package host

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeTimeout = 5 * time.Second

// Bridge is the WebSocket endpoint the game mod connects to. Death events
// flow in as {"event":"death"} frames; popup and pause commands flow out.
// With no mod connected, commands degrade to log lines so the pipeline never
// blocks on presentation.
type Bridge struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader
	deaths   chan struct{}

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewBridge(log zerolog.Logger) *Bridge {
	return &Bridge{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		deaths: make(chan struct{}, 8),
	}
}

// Deaths delivers one element per death event received from the mod.
func (b *Bridge) Deaths() <-chan struct{} { return b.deaths }

// ServeHTTP upgrades the connection and owns its read loop until the mod
// disconnects. Only one mod connection is active at a time; a newer
// connection replaces the previous one.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Error().Err(err).Msg("bridge upgrade failed")
		return
	}

	b.mu.Lock()
	if b.conn != nil {
		_ = b.conn.Close()
	}
	b.conn = conn
	b.mu.Unlock()
	b.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("game mod connected")

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			b.detach(conn, err)
			return
		}
		switch ev.Event {
		case eventDeath:
			select {
			case b.deaths <- struct{}{}:
			default:
				b.log.Warn().Msg("death event dropped, trigger queue full")
			}
		default:
			b.log.Debug().Str("event", ev.Event).Msg("ignoring unknown bridge event")
		}
	}
}

func (b *Bridge) detach(conn *websocket.Conn, err error) {
	b.mu.Lock()
	if b.conn == conn {
		b.conn = nil
	}
	b.mu.Unlock()
	_ = conn.Close()

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		b.log.Info().Msg("game mod disconnected")
		return
	}
	b.log.Warn().Err(err).Msg("game mod connection lost")
}

func (b *Bridge) send(cmd Command) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		b.log.Info().
			Str("command", cmd.Command).
			Str("text", cmd.Text).
			Msg("no game mod connected")
		return
	}

	_ = b.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := b.conn.WriteJSON(cmd); err != nil {
		b.log.Error().Err(err).Str("command", cmd.Command).Msg("bridge write failed")
	}
}

// Popup implements Presenter by pushing a popup command to the mod.
func (b *Bridge) Popup(title, text string) {
	b.send(Command{Command: commandPopup, Title: title, Text: text})
}

// Pause implements Pauser by pushing a pause command to the mod. The game
// resumes on its own when the user dismisses the popup.
func (b *Bridge) Pause() {
	b.send(Command{Command: commandPause})
}
