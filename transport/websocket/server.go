package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = 50 * time.Second
	maxMessageSize  = 4096
	endSessionWait  = 5 * time.Second
	keepAliveWait   = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

type gameUseCase interface {
	StartSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	ResumeSession(ctx context.Context, sessionID string) (*entity.Session, error)
	KeepAlive(ctx context.Context, sessionID string) error
	ApplyMove(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	JumpTo(ctx context.Context, sessionID string, step int) (*entity.Session, error)
	ToggleOrder(ctx context.Context, sessionID string) (*entity.Session, error)
	EndSession(ctx context.Context, sessionID string) error
	Subscribe(observer usecase.Observer)
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

// Server - the page side of the game: clicks come in, views go out.
type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[string]*connection
}

func New(logger *slog.Logger, gameUseCase gameUseCase, allowedOrigins []string) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers:    make(map[string]handlerFunc),
		connections: make(map[string]*connection),
	}

	if len(allowedOrigins) > 0 {
		server.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		}
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionCellClick] = server.handleCellClick
	server.handlers[actionHistoryClick] = server.handleHistoryClick
	server.handlers[actionHistorySort] = server.handleHistorySort

	gameUseCase.Subscribe(server.pushState)

	return server
}

// Handler - routes of the WebSocket server; ctx bounds every request it serves.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	wsConn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(wsConn, func(conn *connection) {
		that.keepSession(ctx, conn)
	})
	defer conn.close()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	stopPing := conn.keepAlive(pingPeriod)
	defer stopPing()

	that.handleMessages(ctx, conn)
	that.handleDisconnect(ctx, conn)
}

// handleMessages - processes messages from the client until the connection breaks.
func (that *Server) handleMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleMessages")

	for {
		data, err := conn.read()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = that.sendErrorResponse(conn, "", apperror.ErrInvalidPayload.Error()); err != nil {
				log.Error("failed to send error response", "error", err)
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(conn, message.Action, apperror.ErrUnknownAction.Error()); err != nil {
				log.Error("failed to send error response", "error", err)
			}
			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// keepSession - refreshes the session TTL while the page keeps answering pings.
func (that *Server) keepSession(ctx context.Context, conn *connection) {
	sessionID := conn.session()
	if sessionID == "" {
		return
	}

	keepCtx, cancel := context.WithTimeout(ctx, keepAliveWait)
	defer cancel()

	if err := that.gameUseCase.KeepAlive(keepCtx, sessionID); err != nil {
		that.logger.Warn("failed to keep session alive", "sessionID", sessionID, "error", err)
	}
}

// handleDisconnect - the page is gone, so is its game.
func (that *Server) handleDisconnect(ctx context.Context, conn *connection) {
	sessionID := conn.session()
	if sessionID == "" {
		return
	}

	that.connectionsMutex.Lock()
	if that.connections[sessionID] == conn {
		delete(that.connections, sessionID)
	}
	that.connectionsMutex.Unlock()

	endCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), endSessionWait)
	defer cancel()

	if err := that.gameUseCase.EndSession(endCtx, sessionID); err != nil {
		that.logger.Error("failed to end session", "sessionID", sessionID, "error", err)
		return
	}

	that.logger.Info("player disconnected", "sessionID", sessionID)
}

// pushState - observer of the game manager; redraws the page that owns the session.
func (that *Server) pushState(sessionID string, view tictactoe.View) {
	that.connectionsMutex.RLock()
	conn, ok := that.connections[sessionID]
	that.connectionsMutex.RUnlock()

	if !ok {
		that.logger.Warn("connection not found for session", "sessionID", sessionID)
		return
	}

	if err := conn.send(actionGameState, ResponsePayload{Session: sessionID, View: &view}); err != nil {
		that.logger.Error("failed to send game state", "sessionID", sessionID, "error", err)
	}
}

func (that *Server) register(sessionID string, conn *connection) {
	previous := conn.session()
	conn.setSession(sessionID)

	that.connectionsMutex.Lock()
	if previous != "" && previous != sessionID && that.connections[previous] == conn {
		delete(that.connections, previous)
	}
	that.connections[sessionID] = conn
	that.connectionsMutex.Unlock()
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMsg string) error {
	if err := conn.send(action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
