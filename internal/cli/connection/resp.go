// Package connection provides connection management for the FerroDB CLI.
package connection

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"github.com/zuhaib786/FerroDB/internal/protocol/resp"
)

// RESPClient speaks the RESP wire protocol to a FerroDB server over TCP.
type RESPClient struct {
	addr    string
	timeout time.Duration

	conn net.Conn
	br   *bufio.Reader
	bw   *bufio.Writer
}

// NewRESPClient creates a client for the given "host:port" address. It does
// not dial until the first Do call.
func NewRESPClient(addr string) *RESPClient {
	return &RESPClient{addr: addr, timeout: 10 * time.Second}
}

// Connect dials the server, failing fast if it is unreachable.
func (c *RESPClient) Connect() error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.addr, err)
	}
	c.conn = conn
	c.br = bufio.NewReader(conn)
	c.bw = bufio.NewWriter(conn)
	return nil
}

// Close closes the underlying connection.
func (c *RESPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Do sends one command and returns the server's reply. args[0] is the
// command name.
func (c *RESPClient) Do(args ...string) (resp.Reply, error) {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return resp.Reply{}, err
		}
	}

	raw := make([][]byte, len(args))
	for i, a := range args {
		raw[i] = []byte(a)
	}

	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	if err := resp.EncodeCommand(c.bw, raw); err != nil {
		return resp.Reply{}, err
	}
	if err := c.bw.Flush(); err != nil {
		return resp.Reply{}, err
	}

	return resp.ReadReply(c.br)
}

// ReadReply reads one more reply from an already-open connection, without
// sending a command first. Used after SUBSCRIBE to read pushed messages.
func (c *RESPClient) ReadReply() (resp.Reply, error) {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return resp.Reply{}, err
		}
	}
	_ = c.conn.SetDeadline(time.Time{})
	return resp.ReadReply(c.br)
}
