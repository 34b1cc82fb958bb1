package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueueSize  = 64
)

// Connectioner is the write side of a live viewer connection.
type Connectioner interface {
	SendMessage(message []byte) error
	Close() error
}

// Huber is the process-wide fan-out hub. It is created once at startup,
// injected where needed and closed at shutdown. Channel membership is safe
// to mutate concurrently with broadcasts.
type Huber interface {
	http.Handler
	JoinChannel(channel string, conn *Connection)
	LeaveChannel(channel string, conn *Connection)
	ConnectionsInChannel(channel string) []*Connection
	ConnectionsAll() []*Connection
	BroadcastToChannel(channel string, message []byte)
	Close() error
}

type HubOptions struct {
	Logger       *logrus.Logger
	CheckOrigin  func(r *http.Request) bool
	OnConnect    func(r *http.Request, hub *Hub, conn *Connection) error
	OnDisconnect func(conn *Connection)
}

type Hub struct {
	logger       *logrus.Logger
	upgrader     websocket.Upgrader
	onConnect    func(r *http.Request, hub *Hub, conn *Connection) error
	onDisconnect func(conn *Connection)

	mu          sync.RWMutex
	connections map[*Connection]struct{}
	channels    map[string]map[*Connection]struct{}
	closed      bool
}

func NewHub(opts *HubOptions) *Hub {
	if opts == nil {
		opts = &HubOptions{}
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Hub{
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		onConnect:    opts.OnConnect,
		onDisconnect: opts.OnDisconnect,
		connections:  make(map[*Connection]struct{}),
		channels:     make(map[string]map[*Connection]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.WithError(err).Error("ws: failed to upgrade connection")
		}
		return
	}

	conn := newConnection(h, wsConn)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = wsConn.Close()
		return
	}
	h.connections[conn] = struct{}{}
	h.mu.Unlock()

	if h.onConnect != nil {
		if err := h.onConnect(r, h, conn); err != nil {
			if h.logger != nil {
				h.logger.WithError(err).Error("ws: connect callback failed")
			}
			h.remove(conn)
			_ = conn.Close()
			return
		}
	}

	go conn.writePump()
	go conn.readPump()
}

func (h *Hub) JoinChannel(channel string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[conn]; !ok {
		return
	}
	members, ok := h.channels[channel]
	if !ok {
		members = make(map[*Connection]struct{})
		h.channels[channel] = members
	}
	members[conn] = struct{}{}
}

// LeaveChannel is idempotent; leaving a channel the connection never joined
// is a no-op.
func (h *Hub) LeaveChannel(channel string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(h.channels, channel)
	}
}

func (h *Hub) ConnectionsInChannel(channel string) []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	members := h.channels[channel]
	out := make([]*Connection, 0, len(members))
	for conn := range members {
		out = append(out, conn)
	}
	return out
}

func (h *Hub) ConnectionsAll() []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Connection, 0, len(h.connections))
	for conn := range h.connections {
		out = append(out, conn)
	}
	return out
}

// BroadcastToChannel delivers message to every current member of channel.
// Delivery is fire-and-forget: send failures are logged and the connection
// is dropped, never retried.
func (h *Hub) BroadcastToChannel(channel string, message []byte) {
	for _, conn := range h.ConnectionsInChannel(channel) {
		if err := conn.SendMessage(message); err != nil {
			if h.logger != nil {
				h.logger.WithError(err).Warn("ws: dropping unresponsive connection")
			}
			h.remove(conn)
			_ = conn.Close()
		}
	}
}

func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	conns := make([]*Connection, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.connections = make(map[*Connection]struct{})
	h.channels = make(map[string]map[*Connection]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
	return nil
}

func (h *Hub) remove(conn *Connection) {
	h.mu.Lock()
	if _, ok := h.connections[conn]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.connections, conn)
	for channel, members := range h.channels {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.channels, channel)
		}
	}
	h.mu.Unlock()

	if h.onDisconnect != nil {
		h.onDisconnect(conn)
	}
}

type Connection struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	closedCh  chan struct{}
}

func newConnection(hub *Hub, wsConn *websocket.Conn) *Connection {
	return &Connection{
		hub:      hub,
		conn:     wsConn,
		send:     make(chan []byte, sendQueueSize),
		closedCh: make(chan struct{}),
	}
}

// SendMessage queues message for delivery. A full queue counts as a failed
// send; slow consumers miss events rather than applying backpressure.
func (c *Connection) SendMessage(message []byte) error {
	select {
	case <-c.closedCh:
		return websocket.ErrCloseSent
	default:
	}
	select {
	case c.send <- message:
		return nil
	default:
		return websocket.ErrCloseSent
	}
}

// Close is idempotent.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closedCh)
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()
	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closedCh:
			return
		}
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// Inbound frames are not part of the protocol; the read loop exists
		// to process control frames and detect disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
