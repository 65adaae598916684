package ferroserver

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/zuhaib786/FerroDB/internal/pubsub"
	"github.com/zuhaib786/FerroDB/internal/storage"
)

func startTestServer(t *testing.T) net.Addr {
	t.Helper()
	cfg := storage.DefaultConfig(t.TempDir())
	cfg.SnapshotInterval = time.Hour
	engine, err := storage.New(cfg)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	t.Cleanup(func() { engine.Close() })

	srv := New(Config{Address: "127.0.0.1:0", ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second, IdleTimeout: 5 * time.Second}, engine, pubsub.NewHub(), nil)

	ln, err := net.Listen("tcp", srv.cfg.Address)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv.ln = ln
	srv.running.Store(true)

	go srv.acceptLoop(context.Background(), ln)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})

	return ln.Addr()
}

func TestServerPingPong(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("*1\r\n$4\r\nPING\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bufio.NewReader(conn)
	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if line != "+PONG\r\n" {
		t.Fatalf("reply = %q, want +PONG\\r\\n", line)
	}
}

func TestServerSetGetPipeline(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	req := "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n*2\r\n$3\r\nGET\r\n$1\r\nk\r\n"
	if _, err := conn.Write([]byte(req)); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bufio.NewReader(conn)
	line, _ := r.ReadString('\n')
	if line != "+OK\r\n" {
		t.Fatalf("SET reply = %q, want +OK\\r\\n", line)
	}

	line, _ = r.ReadString('\n')
	if line != "$1\r\n" {
		t.Fatalf("GET length line = %q, want $1\\r\\n", line)
	}
	line, _ = r.ReadString('\n')
	if line != "v\r\n" {
		t.Fatalf("GET value line = %q, want v\\r\\n", line)
	}
}

func TestServerQuitClosesConnection(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("*1\r\n$4\r\nQUIT\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bufio.NewReader(conn)
	line, err := r.ReadString('\n')
	if err != nil || line != "+OK\r\n" {
		t.Fatalf("QUIT reply = %q, err %v", line, err)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 1)
	if _, err := conn.Read(buf); err == nil {
		t.Fatal("expected connection to be closed after QUIT")
	}
}
