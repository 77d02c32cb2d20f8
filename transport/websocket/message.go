package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	actionConnect      = "connect"
	actionCellClick    = "cell:click"
	actionHistoryClick = "history:click"
	actionHistorySort  = "history:sort"
	actionGameState    = "game:state"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - body of inbound clicks. Pointers tell a missing field from zero.
type Payload struct {
	Cell *int `json:"cell,omitempty"`
	Step *int `json:"step,omitempty"`
}

type ResponsePayload struct {
	Session string          `json:"session,omitempty"`
	View    *tictactoe.View `json:"view,omitempty"`
	Error   string          `json:"error,omitempty"`
}
