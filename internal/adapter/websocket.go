// Package adapter holds the venue-facing plumbing around the core engines:
// the reconnecting WebSocket client both market-data feeds ride on, the
// snapshot Broadcaster, the circuit breaker gating trade submission on feed
// health, the market-pair registry, and the operator dashboard writers.
package adapter

import (
	"context"
	"math"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// CircuitState reflects the health of a venue WebSocket connection. The
// circuit breaker reads it to decide whether orders for that venue may be
// submitted at all.
type CircuitState int32

const (
	CircuitClosed CircuitState = iota // healthy
	CircuitOpen                       // unhealthy, trading disabled
)

// WSConfig holds tunable parameters for a WSClient.
type WSConfig struct {
	URL string

	// Buffer sizes for the underlying TCP connection.
	ReadBufferSize  int
	WriteBufferSize int

	// HeartbeatTimeout is the maximum duration of silence before the client
	// considers the connection dead and triggers a reconnect.
	HeartbeatTimeout time.Duration

	// Backoff parameters for reconnection.
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	BackoffFactor  float64

	// Headers sent during the WebSocket handshake; carries the RSA-PSS
	// auth headers for Kalshi's feed.
	Headers http.Header
}

// DefaultWSConfig returns defaults tuned for low-latency market data.
func DefaultWSConfig(url string) WSConfig {
	return WSConfig{
		URL:              url,
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
		HeartbeatTimeout: 500 * time.Millisecond,
		BackoffInitial:   50 * time.Millisecond,
		BackoffMax:       5 * time.Second,
		BackoffFactor:    2.0,
	}
}

// WSClient is a resilient WebSocket connection manager: it reconnects with
// exponential backoff, treats read silence as a dead connection, and fans
// inbound frames out to subscribers. Feed reconnects retry indefinitely —
// only an authentication rejection (reported by the venue adapter parsing
// the frames, not here) takes a feed down for good.
type WSClient struct {
	cfg    WSConfig
	logger *zap.Logger

	// circuit exposes connection health to the circuit breaker.
	circuit atomic.Int32

	mu   sync.RWMutex
	conn *websocket.Conn

	// subscribers receive copies of every inbound frame.
	subMu sync.RWMutex
	subs  []chan []byte

	// outbox for sending messages through the connection.
	outbox chan []byte

	cancel context.CancelFunc
	done   chan struct{}

	// onReconnect runs after each successful reconnection; the venue feed
	// adapters hook it to re-send their subscriptions.
	onReconnect func()
}

// NewWSClient creates a WebSocket client. Call Connect to start. The
// circuit starts open: an unconnected venue must read as unhealthy.
func NewWSClient(cfg WSConfig, logger *zap.Logger) *WSClient {
	ws := &WSClient{
		cfg:    cfg,
		logger: logger,
		outbox: make(chan []byte, 256),
		done:   make(chan struct{}),
	}
	ws.circuit.Store(int32(CircuitOpen))
	return ws
}

// OnReconnect registers a hook invoked after every successful reconnect,
// before any new frames are read. Must be set before Connect.
func (ws *WSClient) OnReconnect(fn func()) {
	ws.onReconnect = fn
}

// Circuit returns the current connection health.
func (ws *WSClient) Circuit() CircuitState {
	return CircuitState(ws.circuit.Load())
}

// Subscribe returns a channel that receives copies of every inbound frame.
// The caller must drain the channel to avoid losing frames.
func (ws *WSClient) Subscribe() <-chan []byte {
	ch := make(chan []byte, 512)
	ws.subMu.Lock()
	ws.subs = append(ws.subs, ch)
	ws.subMu.Unlock()
	return ch
}

// Send enqueues a message for delivery over the connection.
func (ws *WSClient) Send(data []byte) {
	select {
	case ws.outbox <- data:
	default:
		if ws.logger != nil {
			ws.logger.Warn("ws: outbox full, dropping message", zap.Int("bytes", len(data)))
		}
	}
}

// Connect dials the endpoint once and, on success, starts the read/write
// loops. A failed initial dial is returned as an error without retrying;
// reconnection with backoff applies only after the first connection is up.
func (ws *WSClient) Connect(ctx context.Context) error {
	ctx, ws.cancel = context.WithCancel(ctx)

	if err := ws.dial(ctx); err != nil {
		return err
	}
	ws.circuit.Store(int32(CircuitClosed))

	go ws.readLoop(ctx)
	go ws.writeLoop(ctx)

	return nil
}

// Close shuts down the client, closing the underlying connection and all
// subscriber channels.
func (ws *WSClient) Close() {
	if ws.cancel != nil {
		ws.cancel()
	}
	ws.mu.Lock()
	if ws.conn != nil {
		ws.conn.Close()
	}
	ws.mu.Unlock()

	ws.subMu.RLock()
	for _, ch := range ws.subs {
		close(ch)
	}
	ws.subMu.RUnlock()

	close(ws.done)
}

// Done returns a channel closed once the client has fully shut down.
func (ws *WSClient) Done() <-chan struct{} {
	return ws.done
}

// dial establishes the connection with TCP_NODELAY enabled.
func (ws *WSClient) dial(ctx context.Context) error {
	dialer := websocket.Dialer{
		ReadBufferSize:  ws.cfg.ReadBufferSize,
		WriteBufferSize: ws.cfg.WriteBufferSize,
		NetDialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			d := net.Dialer{}
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if tc, ok := conn.(*net.TCPConn); ok {
				tc.SetNoDelay(true)
			}
			return conn, nil
		},
	}

	conn, _, err := dialer.DialContext(ctx, ws.cfg.URL, ws.cfg.Headers)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	ws.conn = conn
	ws.mu.Unlock()
	return nil
}

// reconnect loops with exponential backoff until a connection is
// re-established or the context is cancelled.
func (ws *WSClient) reconnect(ctx context.Context) bool {
	ws.circuit.Store(int32(CircuitOpen))

	delay := ws.cfg.BackoffInitial
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}

		if err := ws.dial(ctx); err != nil {
			if ws.logger != nil {
				ws.logger.Warn("ws: reconnect failed", zap.Error(err), zap.Duration("retry_in", delay))
			}
			delay = time.Duration(math.Min(
				float64(delay)*ws.cfg.BackoffFactor,
				float64(ws.cfg.BackoffMax),
			))
			continue
		}

		ws.circuit.Store(int32(CircuitClosed))
		if ws.onReconnect != nil {
			ws.onReconnect()
		}
		return true
	}
}

// readLoop reads frames and fans them out. It doubles as the heartbeat
// monitor: read silence past HeartbeatTimeout forces a reconnect.
func (ws *WSClient) readLoop(ctx context.Context) {
	for {
		ws.mu.RLock()
		c := ws.conn
		ws.mu.RUnlock()

		c.SetReadDeadline(time.Now().Add(ws.cfg.HeartbeatTimeout))
		_, msg, err := c.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if ws.logger != nil {
				ws.logger.Warn("ws: read error, reconnecting", zap.Error(err))
			}
			c.Close()
			if !ws.reconnect(ctx) {
				return
			}
			continue
		}

		ws.fanOut(msg)
	}
}

// writeLoop drains the outbox onto the connection.
func (ws *WSClient) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-ws.outbox:
			ws.mu.RLock()
			c := ws.conn
			ws.mu.RUnlock()
			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				if ws.logger != nil {
					ws.logger.Warn("ws: write error", zap.Error(err))
				}
			}
		}
	}
}

// fanOut delivers msg to every subscriber without blocking.
func (ws *WSClient) fanOut(msg []byte) {
	ws.subMu.RLock()
	defer ws.subMu.RUnlock()

	for _, ch := range ws.subs {
		select {
		case ch <- msg:
		default:
			// Slow consumer, drop to avoid head-of-line blocking.
		}
	}
}
