package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/script"
)

// WebSocketServer streams request results to subscribed clients.
type WebSocketServer struct {
	addr     string
	logger   *logging.Logger
	upgrader websocket.Upgrader

	// Client management
	mu      sync.RWMutex
	clients map[*WebSocketClient]bool

	updates chan script.Output

	// Server control
	ctx    context.Context
	cancel context.CancelFunc
}

// WebSocketClient represents a connected WebSocket client.
type WebSocketClient struct {
	conn            *websocket.Conn
	send            chan []byte
	server          *WebSocketServer
	subscribedAll  bool
	subscribedSyms map[string]bool
	mu             sync.RWMutex
}

// WebSocketMessage represents a client message.
type WebSocketMessage struct {
	Type    string   `json:"type"`    // "subscribe", "unsubscribe", "ping"
	Symbols []string `json:"symbols"` // List of symbols to subscribe to
}

// ResultMessage is sent to clients.
type ResultMessage struct {
	Type      string         `json:"type"`      // "result"
	Timestamp string         `json:"timestamp"` // ISO 8601 timestamp
	Responses []ResponseView `json:"responses"` // Responses matching the subscription
}

// NewWebSocketServer creates a new WebSocket server.
func NewWebSocketServer(addr string, logger *logging.Logger) *WebSocketServer {
	ctx, cancel := context.WithCancel(context.Background())

	return &WebSocketServer{
		addr:   addr,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				// Allow all origins (configure CORS as needed)
				return true
			},
		},
		clients: make(map[*WebSocketClient]bool),
		updates: make(chan script.Output, 100),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts the WebSocket server.
func (s *WebSocketServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	server := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start broadcast goroutine
	go s.broadcastUpdates()

	s.logger.Info("Starting WebSocket server", "addr", s.addr)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("WebSocket server error", "error", err)
		}
	}()

	select {
	case <-s.ctx.Done():
	case <-ctx.Done():
		s.cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// Stop stops the WebSocket server.
func (s *WebSocketServer) Stop() {
	s.cancel()
}

// SendUpdate queues a request result for broadcast.
func (s *WebSocketServer) SendUpdate(out script.Output) {
	select {
	case s.updates <- out:
	case <-time.After(100 * time.Millisecond):
		s.logger.Warn("Update channel full, dropping result")
	}
}

// ClientCount returns the number of connected clients.
func (s *WebSocketServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// handleWebSocket handles new WebSocket connections.
func (s *WebSocketServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := &WebSocketClient{
		conn:           conn,
		send:           make(chan []byte, 256),
		server:         s,
		subscribedAll:  true, // Subscribe to all by default
		subscribedSyms: make(map[string]bool),
	}

	s.registerClient(client)

	// Start client goroutines
	go client.writePump()
	go client.readPump()

	s.logger.Info("New WebSocket client connected", "remote", conn.RemoteAddr())
}

// registerClient adds a client to the server.
func (s *WebSocketServer) registerClient(client *WebSocketClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client] = true
}

// unregisterClient removes a client from the server.
func (s *WebSocketServer) unregisterClient(client *WebSocketClient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.send)
	}
}

// broadcastUpdates broadcasts results to all clients.
func (s *WebSocketServer) broadcastUpdates() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case out := <-s.updates:
			s.broadcast(out)
		}
	}
}

// broadcast sends each client the responses it subscribed to.
func (s *WebSocketServer) broadcast(out script.Output) {
	if len(out.Responses) == 0 {
		return
	}

	views := newResponseViews(out)
	timestamp := time.Now().Format(time.RFC3339)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for client := range s.clients {
		selected := client.filter(views)
		if len(selected) == 0 {
			continue
		}

		data, err := json.Marshal(ResultMessage{
			Type:      "result",
			Timestamp: timestamp,
			Responses: selected,
		})
		if err != nil {
			s.logger.Error("Failed to marshal result", "error", err)
			return
		}

		select {
		case client.send <- data:
		default:
			s.logger.Warn("Client send buffer full, skipping update")
		}
	}
}

// writePump sends messages to the WebSocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Channel closed
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.server.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads messages from the WebSocket connection.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.server.unregisterClient(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// handleMessage processes client messages.
func (c *WebSocketClient) handleMessage(data []byte) {
	var msg WebSocketMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.server.logger.Warn("Invalid client message", "error", err)
		return
	}

	switch msg.Type {
	case "subscribe":
		c.subscribe(msg.Symbols)
	case "unsubscribe":
		c.unsubscribe(msg.Symbols)
	case "ping":
		c.sendPong()
	default:
		c.server.logger.Warn("Unknown message type", "type", msg.Type)
	}
}

// subscribe subscribes to specific symbols.
func (c *WebSocketClient) subscribe(symbols []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(symbols) == 0 || (len(symbols) == 1 && symbols[0] == "*") {
		c.subscribedAll = true
		c.subscribedSyms = make(map[string]bool)
	} else {
		c.subscribedAll = false
		for _, symbol := range symbols {
			c.subscribedSyms[symbol] = true
		}
	}

	c.server.logger.Debug("Client subscribed", "symbols", symbols)
}

// unsubscribe unsubscribes from specific symbols.
func (c *WebSocketClient) unsubscribe(symbols []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(symbols) == 0 || (len(symbols) == 1 && symbols[0] == "*") {
		c.subscribedAll = false
		c.subscribedSyms = make(map[string]bool)
	} else {
		for _, symbol := range symbols {
			delete(c.subscribedSyms, symbol)
		}
	}

	c.server.logger.Debug("Client unsubscribed", "symbols", symbols)
}

// filter returns the responses whose symbol the client subscribed to.
func (c *WebSocketClient) filter(views []ResponseView) []ResponseView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.subscribedAll {
		return views
	}

	selected := make([]ResponseView, 0, len(views))
	for _, v := range views {
		if c.subscribedSyms[v.Symbol] {
			selected = append(selected, v)
		}
	}
	return selected
}

// sendPong sends a pong response.
func (c *WebSocketClient) sendPong() {
	pong := map[string]string{"type": "pong"}
	data, _ := json.Marshal(pong)
	select {
	case c.send <- data:
	default:
	}
}
