package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

var (
	errCellRequired = fmt.Errorf("%w: cell is required", apperror.ErrInvalidPayload)
	errStepRequired = fmt.Errorf("%w: step is required", apperror.ErrInvalidPayload)
	errGameExpired  = errors.New("game expired, a new one was started")
)

// handleConnect - opens the page's game, or returns it again on a repeated connect.
func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	var (
		session *entity.Session
		err     error
	)

	if sessionID := conn.session(); sessionID != "" {
		session, err = that.gameUseCase.ResumeSession(ctx, sessionID)
	} else {
		session, err = that.gameUseCase.StartSession(ctx)
	}

	if err != nil {
		log.Error("failed to open session", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to start a new game")
	}

	that.register(session.ID, conn)

	view := session.View()
	if err = conn.send(msg.Action, ResponsePayload{Session: session.ID, View: &view}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected page", "sessionID", session.ID)

	return nil
}

func (that *Server) handleCellClick(ctx context.Context, conn *connection, msg *Message) error {
	sessionID, payload, err := that.parseRequest(conn, msg)
	if err != nil {
		return err
	}

	if payload.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, errCellRequired.Error())
	}

	// a redraw is pushed by pushState only if the move was accepted
	if _, err = that.gameUseCase.ApplyMove(ctx, sessionID, *payload.Cell); err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return that.restartSession(ctx, conn, msg.Action)
		}

		that.logger.Error("failed to apply move", "sessionID", sessionID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to apply move")
	}

	return nil
}

func (that *Server) handleHistoryClick(ctx context.Context, conn *connection, msg *Message) error {
	sessionID, payload, err := that.parseRequest(conn, msg)
	if err != nil {
		return err
	}

	if payload.Step == nil {
		return that.sendErrorResponse(conn, msg.Action, errStepRequired.Error())
	}

	if _, err = that.gameUseCase.JumpTo(ctx, sessionID, *payload.Step); err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return that.restartSession(ctx, conn, msg.Action)
		}

		that.logger.Error("failed to jump", "sessionID", sessionID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to jump to step")
	}

	return nil
}

func (that *Server) handleHistorySort(ctx context.Context, conn *connection, msg *Message) error {
	sessionID := conn.session()
	if sessionID == "" {
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrSessionNotStarted.Error())
	}

	if _, err := that.gameUseCase.ToggleOrder(ctx, sessionID); err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return that.restartSession(ctx, conn, msg.Action)
		}

		that.logger.Error("failed to toggle order", "sessionID", sessionID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to sort history")
	}

	return nil
}

// restartSession - the page outlived its game; it gets a new one instead of dead clicks.
func (that *Server) restartSession(ctx context.Context, conn *connection, action string) error {
	session, err := that.gameUseCase.ResumeSession(ctx, conn.session())
	if err != nil {
		that.logger.Error("failed to restart session", "sessionID", conn.session(), "error", err)
		return that.sendErrorResponse(conn, action, "failed to start a new game")
	}

	that.register(session.ID, conn)

	view := session.View()
	if err = conn.send(action, ResponsePayload{Session: session.ID, View: &view, Error: errGameExpired.Error()}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

var errRequestRejected = errors.New("request rejected")

// parseRequest - checks that the page is connected and decodes its payload.
// Rejections are reported to the page; the returned error only stops the handler.
func (that *Server) parseRequest(conn *connection, msg *Message) (string, *Payload, error) {
	sessionID := conn.session()
	if sessionID == "" {
		if err := that.sendErrorResponse(conn, msg.Action, apperror.ErrSessionNotStarted.Error()); err != nil {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %w", errRequestRejected, apperror.ErrSessionNotStarted)
	}

	var payload Payload
	if len(msg.Payload) == 0 || json.Unmarshal(msg.Payload, &payload) != nil {
		if err := that.sendErrorResponse(conn, msg.Action, apperror.ErrInvalidPayload.Error()); err != nil {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %w", errRequestRejected, apperror.ErrInvalidPayload)
	}

	return sessionID, &payload, nil
}
