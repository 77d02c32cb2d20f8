package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

var ErrInvalidSession = errors.New("invalid session")

// Session is the game behind one open page together with how its history
// list is presented.
type Session struct {
	ID         string          `json:"id"`
	Game       *tictactoe.Game `json:"game"`
	Descending bool            `json:"descending,omitempty"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Game: tictactoe.NewGame(),
	}
}

func (that *Session) View() tictactoe.View {
	return tictactoe.NewView(that.Game, that.Descending)
}

// ToggleOrder - flips the history list between ascending and descending.
func (that *Session) ToggleOrder() {
	that.Descending = !that.Descending
}

func (that *Session) Validate() error {
	if that.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidSession)
	}

	if that.Game == nil {
		return fmt.Errorf("%w: session %s has no game", ErrInvalidSession, that.ID)
	}

	if err := that.Game.Validate(); err != nil {
		return fmt.Errorf("session %s: %w", that.ID, err)
	}

	return nil
}
