package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		// Given: a stored session
		sessionRepo := NewMemorySessionRepository(testTTL)
		session := newPlayedSession(t, "123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: the caller keeps mutating its own session
		require.True(t, session.Game.ApplyMove(8))

		// Then: the stored session is unaffected
		retrieved, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, 3, retrieved.Game.Steps())
		assert.Equal(t, 1, retrieved.Game.CurrentStep)
	})

	t.Run("Not found", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(testTTL)

		_, err := sessionRepo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = sessionRepo.DeleteByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Given: a stored session
		sessionRepo := NewMemorySessionRepository(testTTL)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("123")))

		// When: the session is deleted
		require.NoError(t, sessionRepo.DeleteByID(ctx, "123"))

		// Then: it can no longer be read
		_, err := sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Expires after TTL", func(t *testing.T) {
		// Given: a repository with a controllable clock
		sessionRepo := NewMemorySessionRepository(testTTL)
		memRepo, ok := sessionRepo.(*memorySession)
		require.True(t, ok)

		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		memRepo.now = func() time.Time { return now }

		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("123")))

		// When: the TTL passes
		now = now.Add(testTTL)

		// Then: the session is gone
		_, err := sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Reads and touches keep the session alive", func(t *testing.T) {
		// Given: a repository with a controllable clock
		sessionRepo := NewMemorySessionRepository(testTTL)
		memRepo, ok := sessionRepo.(*memorySession)
		require.True(t, ok)

		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		memRepo.now = func() time.Time { return now }

		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("123")))

		// When: the session is read and touched before each TTL runs out
		now = now.Add(testTTL - time.Second)
		_, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		now = now.Add(testTTL - time.Second)
		require.NoError(t, sessionRepo.Touch(ctx, "123"))

		now = now.Add(testTTL - time.Second)

		// Then: it is still there, well past the first TTL
		_, err = sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: it is left alone for a full TTL
		now = now.Add(testTTL)

		// Then: it expires
		require.ErrorIs(t, sessionRepo.Touch(ctx, "123"), apperror.ErrSessionNotFound)
	})

	t.Run("Zero TTL never expires", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(0)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("123")))

		_, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
	})
}
