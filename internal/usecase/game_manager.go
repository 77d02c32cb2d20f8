package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Touch(ctx context.Context, id string) error
	DeleteByID(ctx context.Context, id string) error
}

type gameMetrics interface {
	MoveApplied(accepted bool)
	Jumped(accepted bool)
	GameFinished(game *tictactoe.Game)
	SessionStarted()
	SessionEnded()
}

// Observer is called with the fresh view after every state change of a session.
type Observer func(sessionID string, view tictactoe.View)

// GameManager - routes page events into the session's game and tells
// observers when something has to be redrawn. Clicks that the game ignores
// are not errors and do not notify anyone.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	metrics     gameMetrics

	observersMutex sync.RWMutex
	observers      []Observer
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, metrics gameMetrics) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		metrics:     metrics,
	}
}

// Subscribe - registers an observer for state changes of every session.
func (that *GameManager) Subscribe(observer Observer) {
	that.observersMutex.Lock()
	defer that.observersMutex.Unlock()

	that.observers = append(that.observers, observer)
}

func (that *GameManager) StartSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(uuid.NewString())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.metrics.SessionStarted()
	that.logger.Info("session started", "sessionID", session.ID)

	return session, nil
}

func (that *GameManager) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// ResumeSession - returns the page's session, or a new one if it has expired meanwhile.
func (that *GameManager) ResumeSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err == nil {
		return session, nil
	}

	if !errors.Is(err, apperror.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	that.metrics.SessionEnded()
	that.logger.Warn("session expired while its page was open", "sessionID", sessionID)

	return that.StartSession(ctx)
}

// KeepAlive - the page is still open, its session must not expire.
func (that *GameManager) KeepAlive(ctx context.Context, sessionID string) error {
	if err := that.sessionRepo.Touch(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to keep session alive: %w", err)
	}

	return nil
}

func (that *GameManager) ApplyMove(ctx context.Context, sessionID string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "ApplyMove", "sessionID", sessionID, "cell", cell)

	session, err := that.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	accepted := session.Game.ApplyMove(cell)
	that.metrics.MoveApplied(accepted)

	if !accepted {
		log.Debug("move ignored", "step", session.Game.CurrentStep, "status", session.Game.Status())
		return session, nil
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	if session.Game.IsFinished() {
		that.metrics.GameFinished(session.Game)
		log.Info("game finished", "status", session.Game.Status(), "winner", session.Game.Winner())
	}

	that.notify(session)

	return session, nil
}

func (that *GameManager) JumpTo(ctx context.Context, sessionID string, step int) (*entity.Session, error) {
	log := that.logger.With("method", "JumpTo", "sessionID", sessionID, "step", step)

	session, err := that.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	accepted := session.Game.JumpTo(step)
	that.metrics.Jumped(accepted)

	if !accepted {
		log.Debug("jump ignored", "steps", session.Game.Steps())
		return session, nil
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.notify(session)

	return session, nil
}

// ToggleOrder - flips the order of the history list.
func (that *GameManager) ToggleOrder(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.ToggleOrder()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.notify(session)

	return session, nil
}

// EndSession - drops the session when its page goes away.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	err := that.sessionRepo.DeleteByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		// already expired; it still counted as active
		that.metrics.SessionEnded()
		that.logger.Info("session ended after expiry", "sessionID", sessionID)

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.metrics.SessionEnded()
	that.logger.Info("session ended", "sessionID", sessionID)

	return nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (that *GameManager) notify(session *entity.Session) {
	that.observersMutex.RLock()
	observers := append([]Observer(nil), that.observers...)
	that.observersMutex.RUnlock()

	if len(observers) == 0 {
		return
	}

	view := session.View()
	for _, observer := range observers {
		observer(session.ID, view)
	}
}
