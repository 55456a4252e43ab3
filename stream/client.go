package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"hyperliquid-go-sdk/hlerr"
)

type wireFrame struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// Client is a streaming WebSocket client with automatic reconnect,
// heartbeat, subscription restoration, and an optional burst buffer
// feeding a subscription router. A Client owns exactly one connection
// at a time; Subscribe/Unsubscribe/Shutdown are safe to call from any
// goroutine.
type Client struct {
	cfg    Config
	logger *log.Logger

	state            int32 // ConnState, atomic
	reconnectAttempt int32
	shuttingDown     int32 // set before c.shutdown is closed, checked by connectOnce/reconnectMonitor

	connMu sync.Mutex
	conn   *websocket.Conn

	subMu sync.RWMutex
	subs  map[string]Subscription

	Router *Router
	Buffer *Buffer // nil when cfg.BufferCapacity == 0

	events   chan Event
	shutdown chan struct{}

	shutdownOnce sync.Once
}

// NewClient builds a Client. Call Connect to dial; the client is inert
// until then.
func NewClient(cfg Config) *Client {
	c := &Client{
		cfg:      cfg,
		logger:   log.New(),
		subs:     make(map[string]Subscription),
		Router:   NewRouter(),
		events:   make(chan Event, 256),
		shutdown: make(chan struct{}),
	}
	if cfg.BufferCapacity > 0 {
		c.Buffer = NewBuffer(cfg.BufferCapacity)
	}
	runtime.SetFinalizer(c, func(c *Client) {
		if c.State() == Connected {
			c.logger.Warn("stream client garbage collected without Shutdown while connected")
		}
	})
	return c
}

// SetLogger overrides the client's event logger.
func (c *Client) SetLogger(l *log.Logger) { c.logger = l }

// Events returns the client's event stream.
func (c *Client) Events() <-chan Event { return c.events }

// State returns the current connection state.
func (c *Client) State() ConnState { return ConnState(atomic.LoadInt32(&c.state)) }

func (c *Client) setState(s ConnState) { atomic.StoreInt32(&c.state, int32(s)) }

func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("event stream full, dropping event")
	}
}

// Connect dials the WebSocket endpoint, and on success starts the
// heartbeat task, message task, and (if enabled) the reconnect monitor.
// It makes a single dial attempt, bounded by ctx and ConnectTimeout, and
// returns that attempt's error without retrying; the reconnect monitor is
// started only after the initial connection succeeds.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.connectOnce(ctx); err != nil {
		return err
	}
	if c.cfg.AutoReconnect {
		go c.reconnectMonitor()
	}
	return nil
}

// connectOnce performs a single dial-and-resume cycle: it does not
// start the reconnect monitor, since that loop already owns exactly
// one goroutine for the client's lifetime and re-dials through this
// method on every attempt.
func (c *Client) connectOnce(ctx context.Context) error {
	c.setState(Connecting)
	conn, err := c.dial(ctx)
	if err != nil {
		c.setState(Disconnected)
		return err
	}

	c.connMu.Lock()
	if atomic.LoadInt32(&c.shuttingDown) == 1 {
		c.connMu.Unlock()
		_ = conn.Close()
		c.setState(Disconnected)
		return hlerr.New(hlerr.WebSocket, "client shutting down")
	}
	c.conn = conn
	c.connMu.Unlock()

	c.setState(Connected)
	atomic.StoreInt32(&c.reconnectAttempt, 0)
	c.emit(Event{Kind: EventConnected})

	c.restore()

	go c.heartbeatTask()
	go c.messageTask()
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.cfg.URL, nil)
	if err != nil {
		return nil, hlerr.Wrap(hlerr.WebSocket, "dial "+c.cfg.URL, err)
	}
	return conn, nil
}

// restore re-sends a subscribe frame for every key in the registry,
// continuing past individual send failures.
func (c *Client) restore() {
	c.subMu.RLock()
	subs := make([]Subscription, 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.subMu.RUnlock()

	for _, s := range subs {
		if err := c.sendSubscribeFrame(s); err != nil {
			c.logger.WithFields(log.Fields{"key": s.Key(), "error": err}).Warn("failed to restore subscription")
		}
	}
}

func (c *Client) sendSubscribeFrame(s Subscription) error {
	return c.writeJSON(map[string]interface{}{"method": "subscribe", "subscription": s.ToWire()})
}

func (c *Client) sendUnsubscribeFrame(s Subscription) error {
	return c.writeJSON(map[string]interface{}{"method": "unsubscribe", "subscription": s.ToWire()})
}

func (c *Client) writeJSON(payload interface{}) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return hlerr.New(hlerr.WebSocket, "not connected")
	}
	if err := c.conn.WriteJSON(payload); err != nil {
		return hlerr.Wrap(hlerr.WebSocket, "write frame", err)
	}
	return nil
}

// Subscribe records sub in the registry and, if currently connected,
// sends the subscribe frame immediately. If not connected, the
// subscription is still recorded and will be sent on the next
// successful connect.
func (c *Client) Subscribe(sub Subscription) error {
	c.subMu.Lock()
	c.subs[sub.Key()] = sub
	c.subMu.Unlock()

	if c.State() != Connected {
		return hlerr.New(hlerr.WebSocket, "not connected: subscription recorded for next connect")
	}
	return c.sendSubscribeFrame(sub)
}

// Unsubscribe removes sub from the registry and, if connected, sends
// the unsubscribe frame.
func (c *Client) Unsubscribe(sub Subscription) error {
	c.subMu.Lock()
	delete(c.subs, sub.Key())
	c.subMu.Unlock()

	if c.State() != Connected {
		return hlerr.New(hlerr.WebSocket, "not connected")
	}
	return c.sendUnsubscribeFrame(sub)
}

func (c *Client) heartbeatTask() {
	ticker := time.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.connMu.Lock()
			conn := c.conn
			var err error
			if conn != nil {
				err = conn.WriteMessage(websocket.PingMessage, nil)
			}
			c.connMu.Unlock()
			if err != nil {
				c.logger.WithField("error", err).Warn("failed to send heartbeat ping")
				return
			}
			c.emit(Event{Kind: EventHeartbeat})
		case <-c.shutdown:
			return
		}
	}
}

func (c *Client) messageTask() {
	defer func() {
		c.setState(Disconnected)
		c.emit(Event{Kind: EventDisconnected})
	}()

	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	if conn == nil {
		return
	}

	frames := make(chan wireFrame)
	readErrs := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErrs <- err
				return
			}
			var frame wireFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				c.logger.WithField("error", err).Warn("failed to parse frame")
				continue
			}
			frames <- frame
		}
	}()

	for {
		select {
		case frame := <-frames:
			msg := Message{Channel: frame.Channel, Data: frame.Data}
			key := frameKey(frame.Channel, frame.Data)
			if c.Buffer != nil {
				c.Buffer.Insert(msg)
			} else {
				c.Router.Route(key, msg)
			}
			c.emit(Event{Kind: EventData, Data: msg})
		case err := <-readErrs:
			c.logger.WithField("error", err).Info("websocket read loop ended")
			c.emit(Event{Kind: EventError, Err: hlerr.Wrap(hlerr.WebSocket, "read loop ended", err)})
			return
		case <-c.shutdown:
			return
		}
	}
}

func (c *Client) reconnectMonitor() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if c.State() == Connected {
				continue
			}
			attempt := int(atomic.LoadInt32(&c.reconnectAttempt))
			if attempt >= c.cfg.MaxReconnectAttempts {
				c.emit(Event{Kind: EventError, Err: hlerr.New(hlerr.WebSocket, "max reconnection attempts reached")})
				return
			}
			atomic.AddInt32(&c.reconnectAttempt, 1)
			c.emit(Event{Kind: EventReconnecting, Attempt: attempt + 1})

			delay := reconnectDelay(c.cfg, attempt)
			select {
			case <-time.After(delay):
			case <-c.shutdown:
				return
			}

			select {
			case <-c.shutdown:
				return
			default:
			}

			if err := c.connectOnce(context.Background()); err != nil {
				c.logger.WithField("error", err).Warn("reconnect attempt failed")
			}
		case <-c.shutdown:
			return
		}
	}
}

// IsConnected reports whether the client currently holds an open
// connection.
func (c *Client) IsConnected() bool { return c.State() == Connected }

// Shutdown best-effort unsubscribes every active subscription, signals
// all tasks to exit, and marks the client disconnected. Idempotent.
func (c *Client) Shutdown() {
	c.shutdownOnce.Do(func() {
		atomic.StoreInt32(&c.shuttingDown, 1)

		c.subMu.RLock()
		subs := make([]Subscription, 0, len(c.subs))
		for _, s := range c.subs {
			subs = append(subs, s)
		}
		c.subMu.RUnlock()

		if c.State() == Connected {
			for _, s := range subs {
				if err := c.sendUnsubscribeFrame(s); err != nil {
					c.logger.WithField("key", s.Key()).Warn("failed to unsubscribe during shutdown")
				}
			}
		}

		close(c.shutdown)
		c.connMu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.connMu.Unlock()

		c.setState(Disconnected)
		runtime.SetFinalizer(c, nil)
	})
}

// frameKey derives the routing key from a server frame the same way
// Subscription.Key does, by probing the channel name and whatever
// identity fields the payload carries.
func frameKey(channel string, data json.RawMessage) string {
	switch channel {
	case SubAllMids:
		return SubAllMids
	case SubL2Book, SubTrades, SubBbo, SubActiveAssetCtx:
		var probe struct {
			Coin string `json:"coin"`
		}
		_ = json.Unmarshal(data, &probe)
		return fmt.Sprintf("%s:%s", channel, probe.Coin)
	case SubCandle:
		var probe struct {
			Coin     string `json:"coin"`
			Interval string `json:"interval"`
		}
		_ = json.Unmarshal(data, &probe)
		return fmt.Sprintf("%s:%s:%s", channel, probe.Coin, probe.Interval)
	case SubActiveAssetData:
		var probe struct {
			User string `json:"user"`
			Coin string `json:"coin"`
		}
		_ = json.Unmarshal(data, &probe)
		return fmt.Sprintf("%s:%s:%s", channel, probe.User, probe.Coin)
	case SubUserEvents, SubUserFills, SubOrderUpdates, SubUserFundings,
		SubUserNonFundingLedgerUpdates, SubWebData2:
		var probe struct {
			User string `json:"user"`
		}
		_ = json.Unmarshal(data, &probe)
		return fmt.Sprintf("%s:%s", channel, probe.User)
	default:
		return channel
	}
}
