package ferroserver

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zuhaib786/FerroDB/internal/protocol/resp"
	"github.com/zuhaib786/FerroDB/internal/pubsub"
	"github.com/zuhaib786/FerroDB/internal/storage"
	"github.com/zuhaib786/FerroDB/internal/telemetry/metric"
)

// Config holds the RESP server's network configuration.
type Config struct {
	// Address is the TCP address to listen on, e.g. "127.0.0.1:6379".
	Address string
	// ReadTimeout bounds how long a connection may take to send one
	// command (slowloris protection).
	ReadTimeout time.Duration
	// WriteTimeout bounds how long a reply may take to flush.
	WriteTimeout time.Duration
	// IdleTimeout bounds how long a connection may sit with no command in
	// flight before it is closed.
	IdleTimeout time.Duration
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Address:      "127.0.0.1:6379",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
	}
}

// Server accepts RESP connections and dispatches their commands against a
// storage engine and pub/sub hub.
type Server struct {
	cfg     Config
	handler *Dispatcher
	logger  *slog.Logger

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a RESP server bound to engine and hub.
func New(cfg Config, engine *storage.Engine, hub *pubsub.Hub, logger *slog.Logger) *Server {
	if cfg.Address == "" {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}
	return &Server{
		cfg:     cfg,
		handler: NewDispatcher(engine, hub, logger, writeTimeout),
		logger:  logger,
	}
}

// WithMetrics attaches a metrics registry the server's dispatcher reports
// per-command counters, error counts, and latency histograms to.
func (s *Server) WithMetrics(reg *metric.Registry) *Server {
	s.handler.WithMetrics(reg)
	return s
}

// Start listens and serves until ctx is cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)
	s.logger.Info("resp server listening", "address", s.cfg.Address)

	go func() {
		<-ctx.Done()
		s.running.Store(false)
		_ = ln.Close()
	}()

	return s.acceptLoop(ctx, ln)
}

// Shutdown stops accepting connections and waits for in-flight ones to
// finish, up to ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(newConn(c))
		}()
	}
}

// Conn is a single client connection's framing and pub/sub state.
type Conn struct {
	netConn net.Conn
	br      *bufio.Reader
	bw      *bufio.Writer
	writeMu sync.Mutex

	subs *pubsub.Subscriptions

	closed atomic.Bool
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		netConn: c,
		br:      bufio.NewReader(c),
		bw:      bufio.NewWriter(c),
	}
}

// Close closes the underlying network connection exactly once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// RemoteAddr returns the connection's remote address.
func (c *Conn) RemoteAddr() net.Addr { return c.netConn.RemoteAddr() }

// writeReply serializes reply against concurrent pub/sub message pushes —
// a subscribed connection's forwarder goroutines and its command loop both
// write to the same bufio.Writer.
func (c *Conn) writeReply(r resp.Reply, writeTimeout time.Duration) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := r.Encode(c.bw); err != nil {
		return err
	}
	return c.bw.Flush()
}

// forwardMessages pushes published messages to the connection as RESP
// 3-tuples (`["message", channel, payload]`) until sub's queue is closed by
// Unsubscribe.
func (c *Conn) forwardMessages(sub *pubsub.Subscriber, writeTimeout time.Duration) {
	for msg := range sub.Messages() {
		reply := resp.Array([]resp.Reply{
			resp.BulkString("message"),
			resp.BulkString(msg.Channel),
			resp.BulkString(msg.Payload),
		})
		if err := c.writeReply(reply, writeTimeout); err != nil {
			return
		}
	}
}

// subscribedMode reports whether the connection is currently joined to at
// least one pub/sub channel, which restricts the accepted command set.
func (c *Conn) subscribedMode() bool {
	return c.subs != nil && c.subs.Active()
}

func (s *Server) serveConn(c *Conn) {
	if metrics := s.handler.metrics; metrics != nil {
		metrics.ConnectedClients.Inc()
		defer metrics.ConnectedClients.Dec()
	}

	defer c.Close()
	defer func() {
		if c.subs != nil {
			removed := c.subs.RemoveAll()
			if metrics := s.handler.metrics; metrics != nil && len(removed) > 0 {
				metrics.SubscriptionsActive.Sub(float64(len(removed)))
			}
		}
	}()

	readTimeout, writeTimeout, idleTimeout := s.cfg.ReadTimeout, s.cfg.WriteTimeout, s.cfg.IdleTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}
	if idleTimeout == 0 {
		idleTimeout = 5 * time.Minute
	}

	for {
		if err := c.netConn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
			return
		}
		if _, err := c.br.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				s.logger.Debug("connection idle timeout", "remote", c.RemoteAddr())
				return
			}
			return
		}

		if err := c.netConn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}

		args, err := resp.ReadCommand(c.br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return
			}
			if errors.Is(err, resp.ErrLimitExceeded) {
				_ = c.writeReply(resp.Error("ERR", "protocol limit exceeded"), writeTimeout)
				return
			}
			_ = c.writeReply(resp.Error("ERR", "Protocol error: "+err.Error()), writeTimeout)
			return
		}

		if len(args) == 0 {
			continue
		}

		replies, quit := s.handler.Dispatch(c, args)
		for _, reply := range replies {
			if err := c.writeReply(reply, writeTimeout); err != nil {
				return
			}
		}
		if quit {
			return
		}
	}
}
