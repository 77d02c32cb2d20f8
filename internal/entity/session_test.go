package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

func TestNewSession(t *testing.T) {
	// When: a session is created
	session := NewSession("123")

	// Then: it holds a fresh game in ascending order
	expected := &Session{
		ID:   "123",
		Game: tictactoe.NewGame(),
	}

	require.Equal(t, expected, session)
	require.NoError(t, session.Validate())
}

func TestSession_ToggleOrder(t *testing.T) {
	// Given: a session with two moves
	session := NewSession("123")
	require.True(t, session.Game.ApplyMove(0))
	require.True(t, session.Game.ApplyMove(1))

	// When: the order is toggled
	session.ToggleOrder()

	// Then: the view lists the latest step first
	view := session.View()
	assert.True(t, view.Descending)
	assert.Equal(t, 2, view.Moves[0].Step)

	// When: the order is toggled again
	session.ToggleOrder()

	// Then: the view is back to ascending
	assert.Equal(t, 0, session.View().Moves[0].Step)
}

func TestSession_Validate(t *testing.T) {
	t.Run("Missing id", func(t *testing.T) {
		session := &Session{Game: tictactoe.NewGame()}
		assert.ErrorIs(t, session.Validate(), ErrInvalidSession)
	})

	t.Run("Missing game", func(t *testing.T) {
		session := &Session{ID: "123"}
		assert.ErrorIs(t, session.Validate(), ErrInvalidSession)
	})

	t.Run("Broken game", func(t *testing.T) {
		session := &Session{ID: "123", Game: &tictactoe.Game{}}
		assert.ErrorIs(t, session.Validate(), tictactoe.ErrInvalidGameState)
	})
}

func TestSession_JSON(t *testing.T) {
	// Given: a session in the middle of a game, viewed one step back
	session := NewSession("abc")
	require.True(t, session.Game.ApplyMove(4))
	require.True(t, session.Game.ApplyMove(0))
	require.True(t, session.Game.JumpTo(1))

	// When: it goes through JSON as it does in storage
	data, err := json.Marshal(session)
	require.NoError(t, err)

	var restored Session
	require.NoError(t, json.Unmarshal(data, &restored))

	// Then: history, step and next player survive
	require.NoError(t, restored.Validate())
	assert.Equal(t, session, &restored)
	assert.Equal(t, tictactoe.PlayerO, restored.Game.NextPlayer)
}
