package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// connection wraps one page. Reads happen on the serving goroutine only;
// writes may also come from observers, so they are serialized.
type connection struct {
	conn *websocket.Conn

	writeMutex sync.Mutex
	sessionID  string
}

// newConnection - onPong runs on the reading goroutine each time the page answers a ping.
func newConnection(conn *websocket.Conn, onPong func(*connection)) *connection {
	that := &connection{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		if onPong != nil {
			onPong(that)
		}

		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	return that
}

func (that *connection) session() string {
	return that.sessionID
}

func (that *connection) setSession(sessionID string) {
	that.sessionID = sessionID
}

// read - returns gorilla's error unwrapped so close codes can be inspected.
func (that *connection) read() ([]byte, error) {
	_, data, err := that.conn.ReadMessage()
	return data, err //nolint: wrapcheck // caller inspects *websocket.CloseError
}

func (that *connection) send(action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// keepAlive - pings the page until the returned func is called.
func (that *connection) keepAlive(period time.Duration) func() {
	done := make(chan struct{})
	ticker := time.NewTicker(period)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

func (that *connection) close() {
	_ = that.conn.Close()
}
