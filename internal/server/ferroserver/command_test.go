package ferroserver

import (
	"testing"
	"time"

	"github.com/zuhaib786/FerroDB/internal/protocol/resp"
	"github.com/zuhaib786/FerroDB/internal/pubsub"
	"github.com/zuhaib786/FerroDB/internal/storage"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	cfg := storage.DefaultConfig(t.TempDir())
	cfg.SnapshotInterval = time.Hour
	engine, err := storage.New(cfg)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return NewDispatcher(engine, pubsub.NewHub(), nil, time.Second)
}

func cmd(parts ...string) [][]byte {
	args := make([][]byte, len(parts))
	for i, p := range parts {
		args[i] = []byte(p)
	}
	return args
}

func dispatchOne(t *testing.T, d *Dispatcher, c *Conn, parts ...string) resp.Reply {
	t.Helper()
	replies, _ := d.Dispatch(c, cmd(parts...))
	if len(replies) != 1 {
		t.Fatalf("Dispatch(%v) returned %d replies, want 1", parts, len(replies))
	}
	return replies[0]
}

func TestSetGetRoundTrip(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}

	if r := dispatchOne(t, d, c, "SET", "foo", "bar"); r.Kind != resp.KindSimpleString || r.Str != "OK" {
		t.Fatalf("SET reply = %+v, want OK", r)
	}
	r := dispatchOne(t, d, c, "GET", "foo")
	if string(r.Bulk) != "bar" {
		t.Fatalf("GET reply = %+v, want bar", r)
	}
}

func TestGetMissingKeyIsNullBulk(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	r := dispatchOne(t, d, c, "GET", "missing")
	if r.Kind != resp.KindNullBulk {
		t.Fatalf("GET missing = %+v, want null bulk", r)
	}
}

func TestWrongTypeErrorsWithoutMutating(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	dispatchOne(t, d, c, "SET", "s", "x")

	r := dispatchOne(t, d, c, "LPUSH", "s", "v")
	if r.Kind != resp.KindError || r.ErrPfx != "WRONGTYPE" {
		t.Fatalf("LPUSH on string = %+v, want WRONGTYPE error", r)
	}

	r = dispatchOne(t, d, c, "GET", "s")
	if string(r.Bulk) != "x" {
		t.Fatalf("value mutated after failed WRONGTYPE op: %+v", r)
	}
}

func TestArityErrors(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	r := dispatchOne(t, d, c, "SET", "onlykey")
	if r.Kind != resp.KindError || r.ErrPfx != "ERR" {
		t.Fatalf("SET with 1 arg = %+v, want arity ERR", r)
	}
}

func TestUnknownCommand(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	r := dispatchOne(t, d, c, "FROBNICATE", "x")
	if r.Kind != resp.KindError || r.ErrPfx != "ERR" {
		t.Fatalf("unknown command = %+v, want ERR", r)
	}
}

func TestListPushPopOrder(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	dispatchOne(t, d, c, "RPUSH", "l", "a", "b", "c")

	r := dispatchOne(t, d, c, "LRANGE", "l", "0", "-1")
	if r.Kind != resp.KindArray || len(r.Array) != 3 {
		t.Fatalf("LRANGE = %+v, want 3 elements", r)
	}
	if string(r.Array[0].Bulk) != "a" || string(r.Array[2].Bulk) != "c" {
		t.Fatalf("LRANGE order wrong: %+v", r)
	}

	r = dispatchOne(t, d, c, "LPOP", "l")
	if string(r.Bulk) != "a" {
		t.Fatalf("LPOP = %+v, want a", r)
	}
}

func TestListPopRejectsNegativeCount(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	dispatchOne(t, d, c, "RPUSH", "l", "a", "b", "c")

	r := dispatchOne(t, d, c, "LPOP", "l", "-1")
	if r.Kind != resp.KindError {
		t.Fatalf("LPOP l -1 = %+v, want an error reply", r)
	}

	r = dispatchOne(t, d, c, "RPOP", "l", "-1")
	if r.Kind != resp.KindError {
		t.Fatalf("RPOP l -1 = %+v, want an error reply", r)
	}

	// The list must be untouched by the rejected calls.
	r = dispatchOne(t, d, c, "LRANGE", "l", "0", "-1")
	if len(r.Array) != 3 {
		t.Fatalf("LRANGE after rejected pops = %+v, want 3 elements still", r)
	}
}

func TestSetOperations(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	dispatchOne(t, d, c, "SADD", "s1", "a", "b", "c")
	dispatchOne(t, d, c, "SADD", "s2", "b", "c", "d")

	r := dispatchOne(t, d, c, "SINTER", "s1", "s2")
	if len(r.Array) != 2 {
		t.Fatalf("SINTER = %+v, want 2 members", r)
	}
}

func TestZAddZRangeWithScores(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	dispatchOne(t, d, c, "ZADD", "z", "1", "a", "2", "b")

	r := dispatchOne(t, d, c, "ZRANGE", "z", "0", "-1", "WITHSCORES")
	if len(r.Array) != 4 {
		t.Fatalf("ZRANGE WITHSCORES = %+v, want 4 elements", r)
	}
	if string(r.Array[0].Bulk) != "a" || string(r.Array[1].Bulk) != "1" {
		t.Fatalf("ZRANGE WITHSCORES order/format wrong: %+v", r)
	}
}

func TestZAddRejectsNaN(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	r := dispatchOne(t, d, c, "ZADD", "z", "NaN", "a")
	if r.Kind != resp.KindError {
		t.Fatalf("ZADD NaN = %+v, want error", r)
	}
}

func TestTTLSemantics(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}

	r := dispatchOne(t, d, c, "TTL", "missing")
	if r.Int != -2 {
		t.Fatalf("TTL missing = %d, want -2", r.Int)
	}

	dispatchOne(t, d, c, "SET", "k", "v")
	r = dispatchOne(t, d, c, "TTL", "k")
	if r.Int != -1 {
		t.Fatalf("TTL no-expire = %d, want -1", r.Int)
	}

	dispatchOne(t, d, c, "EXPIRE", "k", "100")
	r = dispatchOne(t, d, c, "TTL", "k")
	if r.Int <= 0 || r.Int > 100 {
		t.Fatalf("TTL after EXPIRE = %d, want 1..100", r.Int)
	}
}

func TestSubscribeEntersSubscribedModeAndGatesCommands(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}

	replies, quit := d.Dispatch(c, cmd("SUBSCRIBE", "news", "sports"))
	if quit {
		t.Fatal("SUBSCRIBE should not quit the connection")
	}
	if len(replies) != 2 {
		t.Fatalf("SUBSCRIBE to 2 channels returned %d replies, want 2", len(replies))
	}
	if string(replies[0].Array[0].Bulk) != "subscribe" || replies[0].Array[2].Int != 1 {
		t.Fatalf("first subscribe reply = %+v", replies[0])
	}
	if replies[1].Array[2].Int != 2 {
		t.Fatalf("second subscribe reply count = %+v, want 2", replies[1])
	}

	if !c.subscribedMode() {
		t.Fatal("connection should be in subscribed mode")
	}

	r := dispatchOne(t, d, c, "GET", "k")
	if r.Kind != resp.KindError {
		t.Fatalf("GET while subscribed = %+v, want rejection error", r)
	}

	r = dispatchOne(t, d, c, "PING")
	if r.Kind != resp.KindSimpleString {
		t.Fatalf("PING while subscribed = %+v, want allowed", r)
	}
}

func TestUnsubscribeAllWhenNoArgs(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	d.Dispatch(c, cmd("SUBSCRIBE", "a", "b"))

	replies, _ := d.Dispatch(c, cmd("UNSUBSCRIBE"))
	if len(replies) != 2 {
		t.Fatalf("UNSUBSCRIBE with no args returned %d replies, want 2", len(replies))
	}
	if c.subscribedMode() {
		t.Fatal("connection should have left subscribed mode")
	}
}

func TestPublishCountsSubscribers(t *testing.T) {
	d := newTestDispatcher(t)
	hub := d.hub
	sub := hub.Subscribe("chan")
	defer sub.Unsubscribe()

	c := &Conn{}
	r := dispatchOne(t, d, c, "PUBLISH", "chan", "hello")
	if r.Int != 1 {
		t.Fatalf("PUBLISH = %d, want 1", r.Int)
	}

	select {
	case msg := <-sub.Messages():
		if msg.Payload != "hello" {
			t.Fatalf("payload = %q, want hello", msg.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestQuitClosesConnection(t *testing.T) {
	d := newTestDispatcher(t)
	c := &Conn{}
	_, quit := d.Dispatch(c, cmd("QUIT"))
	if !quit {
		t.Fatal("QUIT should signal connection close")
	}
}
