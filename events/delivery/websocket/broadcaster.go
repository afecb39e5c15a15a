package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	deliveryhttp "github.com/temposwap/swapd/delivery/http"
	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/log"
)

const (
	sinkName = "websocket"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// clients only ever send control frames
	maxMessageSize = 512

	defaultBufferSize = 64
)

// Broadcaster is an event sink streaming events to websocket clients.
// A client subscribed to an account only receives that account's events
// and the ones not tied to any account.
type Broadcaster struct {
	upgrader   websocket.Upgrader
	bufferSize int

	clients map[*client]struct{}
	mu      sync.Mutex

	logger log.Logger
}

type client struct {
	conn    *websocket.Conn
	account string
	send    chan domain.Event
}

var _ domain.EventSink = &Broadcaster{}

// NewBroadcaster creates a broadcaster buffering up to bufferSize events per client.
// allowedOrigin is matched against the Origin header, "*" allows any.
func NewBroadcaster(bufferSize int, allowedOrigin string, logger log.Logger) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	return &Broadcaster{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
			},
		},
		bufferSize: bufferSize,
		clients:    make(map[*client]struct{}),
		logger:     logger,
	}
}

// Publish implements domain.EventPublisher.
// Events are dropped for clients whose buffer is full.
func (b *Broadcaster) Publish(ctx context.Context, event domain.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for c := range b.clients {
		if c.account != "" && event.Account != "" && c.account != event.Account {
			continue
		}

		select {
		case c.send <- event:
		default:
			b.logger.Warn("dropping event for slow websocket client", zap.String("account", c.account), zap.String("type", string(event.Type)))
		}
	}

	return nil
}

// Name implements domain.EventSink.
func (b *Broadcaster) Name() string {
	return sinkName
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.clients)
}

// Close disconnects all clients.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for c := range b.clients {
		c.conn.Close()
	}
}

// @Summary Event stream
// @Description upgrades to a websocket streaming state change events as JSON.
// @Description With account set, only that account's events are streamed.
// @ID events-ws
// @Param  account  query  string  false  "Hex account address"
// @Router /events/ws [get]
func (b *Broadcaster) ServeWS(c echo.Context) error {
	var account string
	if accountParam := c.QueryParam("account"); accountParam != "" {
		var err error
		account, err = domain.NormalizeAccount(accountParam)
		if err != nil {
			return deliveryhttp.RespondError(c, err)
		}
	}

	conn, err := b.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already replied
		b.logger.Debug("websocket upgrade failed", zap.Error(err))
		return nil
	}

	cl := &client{
		conn:    conn,
		account: account,
		send:    make(chan domain.Event, b.bufferSize),
	}
	b.register(cl)

	go b.writePump(cl)
	b.readPump(cl)

	return nil
}

// NewEventsHandler will initialize the events/ resources endpoint
func NewEventsHandler(e *echo.Echo, broadcaster *Broadcaster) {
	e.GET("/events/ws", broadcaster.ServeWS)
}

func (b *Broadcaster) register(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clients[c] = struct{}{}
}

func (b *Broadcaster) unregister(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
}

// readPump blocks until the client goes away.
func (b *Broadcaster) readPump(c *client) {
	defer func() {
		b.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.Debug("websocket client closed unexpectedly", zap.String("account", c.account), zap.Error(err))
			}
			return
		}
	}
}

func (b *Broadcaster) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
