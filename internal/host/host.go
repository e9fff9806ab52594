// Package host models the game-engine capabilities the trigger pipeline
// consumes: death-event delivery, popup display, and pause control. The
// concrete implementation is a localhost WebSocket bridge the game mod
// connects to.
package host

// Presenter renders user-facing popups in the game.
type Presenter interface {
	Popup(title, text string)
}

// Pauser suspends the game and its running timed actions.
type Pauser interface {
	Pause()
}

// Event is a message received from the connected game mod.
type Event struct {
	Event string `json:"event"`
}

// Command is a message pushed to the connected game mod.
type Command struct {
	Command string `json:"command"`
	Title   string `json:"title,omitempty"`
	Text    string `json:"text,omitempty"`
}

const (
	eventDeath   = "death"
	commandPopup = "popup"
	commandPause = "pause"
)
