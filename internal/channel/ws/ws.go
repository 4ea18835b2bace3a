// Package ws implements the WebSocket gateway channel the interview client
// connects to, using the gorilla/websocket library.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rnlabs/finbot/internal/config"
	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/logging"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 90 * time.Second
	pingInterval = 30 * time.Second
)

// inboundFrame is one message posted by the client.
type inboundFrame struct {
	Type           string          `json:"type"` // "message" | "join"
	ConversationID string          `json:"conversationId"`
	From           string          `json:"from,omitempty"`
	Text           string          `json:"text,omitempty"`
	Value          json.RawMessage `json:"value,omitempty"`
}

// outboundFrame is one reply pushed to the client.
type outboundFrame struct {
	Type           string       `json:"type"` // always "reply"
	ConversationID string       `json:"conversationId"`
	Reply          domain.Reply `json:"reply"`
}

// Channel implements domain.Channel over a WebSocket endpoint. Each client
// connection gets its own read loop; turns from one connection are handled
// synchronously in that loop, so a conversation served by a single
// connection sees its turns strictly in order.
type Channel struct {
	cfg      config.GatewayConfig
	log      *logging.Logger
	upgrader websocket.Upgrader
	server   *http.Server

	mu      sync.RWMutex
	handler func(turn domain.InboundTurn)
	conns   map[string]*conn // conversation ID -> owning connection
	running bool
	lastErr string
}

// conn is one client connection.
type conn struct {
	ws *websocket.Conn
	// writeMu serializes writes; gorilla allows one concurrent writer only.
	writeMu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(v)
}

// New creates the WebSocket channel from gateway configuration.
func New(cfg config.GatewayConfig, log *logging.Logger) *Channel {
	return &Channel{
		cfg: cfg,
		log: log.Sub("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The interview client is a trusted page served elsewhere.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[string]*conn),
	}
}

func (c *Channel) ID() string { return "websocket" }

func (c *Channel) OnTurn(handler func(turn domain.InboundTurn)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Status returns the current runtime status.
func (c *Channel) Status() domain.ChannelStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.ChannelStatus{
		ChannelID: "websocket",
		Connected: len(c.conns) > 0,
		Running:   c.running,
		LastError: c.lastErr,
	}
}

// Start listens on the configured address and serves the gateway endpoint
// until the context is cancelled or the listener fails.
func (c *Channel) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/turns", c.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := net.JoinHostPort(c.cfg.Bind, fmt.Sprintf("%d", c.cfg.Port))
	c.server = &http.Server{
		Addr:    addr,
		Handler: mux,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	c.mu.Lock()
	c.running = true
	c.lastErr = ""
	c.mu.Unlock()

	c.log.Info().Str("addr", addr).Msg("gateway listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		c.mu.Lock()
		c.running = false
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.lastErr = err.Error()
		}
		c.mu.Unlock()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("gateway listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.server.Shutdown(shutdownCtx)
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return ctx.Err()
	}
}

// Stop shuts the gateway down gracefully.
func (c *Channel) Stop(ctx context.Context) error {
	c.mu.Lock()
	server := c.server
	c.running = false
	c.mu.Unlock()

	if server == nil {
		return nil
	}
	c.log.Info().Msg("shutting down gateway")
	return server.Shutdown(ctx)
}

// Send pushes a reply out on the connection that owns the conversation.
func (c *Channel) Send(_ context.Context, reply domain.OutboundReply) error {
	c.mu.RLock()
	cn, ok := c.conns[reply.ConversationID]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no connection for conversation %s", reply.ConversationID)
	}

	return cn.writeJSON(outboundFrame{
		Type:           "reply",
		ConversationID: reply.ConversationID,
		Reply:          reply.Reply,
	})
}

// serveWS upgrades one client connection and runs its read loop.
func (c *Channel) serveWS(w http.ResponseWriter, r *http.Request) {
	if !c.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	cn := &conn{ws: ws}
	c.log.Info().Str("remote", ws.RemoteAddr().String()).Msg("client connected")

	ws.SetReadDeadline(time.Now().Add(pongTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	done := make(chan struct{})
	go c.pingLoop(cn, done)

	defer func() {
		close(done)
		c.dropConn(cn)
		ws.Close()
		c.log.Info().Str("remote", ws.RemoteAddr().String()).Msg("client disconnected")
	}()

	for {
		var frame inboundFrame
		if err := ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn().Err(err).Msg("read failed")
			}
			return
		}
		c.dispatch(cn, frame)
	}
}

// dispatch claims the conversation for this connection and hands the turn to
// the registered handler. Handling is synchronous so a conversation's turns
// are processed in arrival order. A conversation belongs to the connection
// that first speaks for it; frames for it arriving on another live
// connection are dropped, otherwise two sockets could race the same
// session. Ownership is released when the connection closes.
func (c *Channel) dispatch(cn *conn, frame inboundFrame) {
	if frame.ConversationID == "" {
		c.log.Warn().Msg("dropping frame without conversation id")
		return
	}

	c.mu.Lock()
	if owner, ok := c.conns[frame.ConversationID]; ok && owner != cn {
		c.mu.Unlock()
		c.log.Warn().
			Str("conversation", frame.ConversationID).
			Msg("conversation owned by another connection, dropping frame")
		return
	}
	c.conns[frame.ConversationID] = cn
	handler := c.handler
	c.mu.Unlock()

	if handler == nil {
		c.log.Warn().Msg("no turn handler registered, dropping frame")
		return
	}

	turnType := domain.TurnMessage
	if frame.Type == "join" {
		turnType = domain.TurnJoin
	}

	handler(domain.InboundTurn{
		ID:             uuid.NewString(),
		ChannelID:      c.ID(),
		ConversationID: frame.ConversationID,
		From:           frame.From,
		Type:           turnType,
		Text:           frame.Text,
		Value:          frame.Value,
		Timestamp:      time.Now().UTC(),
	})
}

// authorized checks the bearer token when gateway auth is configured.
func (c *Channel) authorized(r *http.Request) bool {
	token := c.cfg.Auth.Token
	if token == "" {
		return true
	}
	if r.Header.Get("Authorization") == "Bearer "+token {
		return true
	}
	// Browser WebSocket clients cannot set headers; accept a query param.
	return r.URL.Query().Get("token") == token
}

func (c *Channel) pingLoop(cn *conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			cn.writeMu.Lock()
			cn.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := cn.ws.WriteMessage(websocket.PingMessage, nil)
			cn.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// dropConn removes every conversation mapping owned by cn.
func (c *Channel) dropConn(cn *conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, owner := range c.conns {
		if owner == cn {
			delete(c.conns, id)
		}
	}
}
