package ferroserver

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/zuhaib786/FerroDB/internal/core/domain"
	"github.com/zuhaib786/FerroDB/internal/protocol/resp"
	"github.com/zuhaib786/FerroDB/internal/pubsub"
	"github.com/zuhaib786/FerroDB/internal/storage"
	"github.com/zuhaib786/FerroDB/internal/storage/keyspace"
	"github.com/zuhaib786/FerroDB/internal/telemetry/metric"
)

// Dispatcher parses command names, validates arity, and executes commands
// against a storage engine and pub/sub hub, composing the
// (reply, log?, publish?) side-effect tuple a RESP command handler owes the
// caller.
type Dispatcher struct {
	engine       *storage.Engine
	hub          *pubsub.Hub
	logger       *slog.Logger
	writeTimeout time.Duration
	metrics      *metric.Registry
}

// NewDispatcher builds a Dispatcher bound to engine and hub.
func NewDispatcher(engine *storage.Engine, hub *pubsub.Hub, logger *slog.Logger, writeTimeout time.Duration) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{engine: engine, hub: hub, logger: logger, writeTimeout: writeTimeout}
}

// WithMetrics attaches a metrics registry the dispatcher reports per-command
// counters and latencies to. Optional — a Dispatcher with no registry simply
// skips recording.
func (d *Dispatcher) WithMetrics(reg *metric.Registry) *Dispatcher {
	d.metrics = reg
	return d
}

// subscribedModeAllowed is the fixed command set a connection may use once
// it has joined at least one pub/sub channel.
var subscribedModeAllowed = map[string]bool{
	"SUBSCRIBE":   true,
	"UNSUBSCRIBE": true,
	"PING":        true,
	"QUIT":        true,
}

// Dispatch executes one parsed command against c's connection state,
// returning the replies to send (more than one only for SUBSCRIBE and
// UNSUBSCRIBE, which emit one reply per channel) and whether the connection
// should close after they're sent.
func (d *Dispatcher) Dispatch(c *Conn, args [][]byte) (replies []resp.Reply, quit bool) {
	name := strings.ToUpper(string(args[0]))

	if d.metrics != nil {
		start := time.Now()
		defer func() {
			d.metrics.CommandsTotal.WithLabelValues(name).Inc()
			d.metrics.CommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			for _, r := range replies {
				if r.Kind == resp.KindError {
					d.metrics.CommandErrorsTotal.WithLabelValues(name, r.ErrPfx).Inc()
				}
			}
		}()
	}

	argv := args[1:]

	if c.subscribedMode() && !subscribedModeAllowed[name] {
		return one(resp.Error("ERR", "only (P)SUBSCRIBE / (P)UNSUBSCRIBE / PING / QUIT allowed in this context")), false
	}

	switch name {
	case "PING":
		return d.cmdPing(argv), false
	case "QUIT":
		return one(resp.OK), true

	case "GET":
		return one(d.cmdGet(argv)), false
	case "SET":
		return one(d.cmdSet(args, argv)), false
	case "MGET":
		return one(d.cmdMGet(argv)), false
	case "MSET":
		return one(d.cmdMSet(args, argv)), false

	case "DEL":
		return one(d.cmdDel(args, argv)), false
	case "EXISTS":
		return one(d.cmdExists(argv)), false
	case "EXPIRE":
		return one(d.cmdExpire(args, argv)), false
	case "EXPIREAT":
		return one(d.cmdExpireAt(args, argv)), false
	case "PERSIST":
		return one(d.cmdPersist(args, argv)), false
	case "TTL":
		return one(d.cmdTTL(argv)), false

	case "LPUSH":
		return one(d.cmdPush(args, argv, true)), false
	case "RPUSH":
		return one(d.cmdPush(args, argv, false)), false
	case "LPOP":
		return one(d.cmdPop(args, argv, true)), false
	case "RPOP":
		return one(d.cmdPop(args, argv, false)), false
	case "LRANGE":
		return one(d.cmdLRange(argv)), false
	case "LLEN":
		return one(d.cmdLLen(argv)), false

	case "SADD":
		return one(d.cmdSAdd(args, argv)), false
	case "SREM":
		return one(d.cmdSRem(args, argv)), false
	case "SMEMBERS":
		return one(d.cmdSMembers(argv)), false
	case "SCARD":
		return one(d.cmdSCard(argv)), false
	case "SISMEMBER":
		return one(d.cmdSIsMember(argv)), false
	case "SINTER":
		return one(d.cmdSetOp(argv, d.engine.Keyspace().SInter)), false
	case "SUNION":
		return one(d.cmdSetOp(argv, d.engine.Keyspace().SUnion)), false
	case "SDIFF":
		return one(d.cmdSetOp(argv, d.engine.Keyspace().SDiff)), false

	case "ZADD":
		return one(d.cmdZAdd(args, argv)), false
	case "ZREM":
		return one(d.cmdZRem(args, argv)), false
	case "ZSCORE":
		return one(d.cmdZScore(argv)), false
	case "ZRANGE":
		return one(d.cmdZRange(argv)), false
	case "ZRANK":
		return one(d.cmdZRank(argv)), false
	case "ZCARD":
		return one(d.cmdZCard(argv)), false

	case "SUBSCRIBE":
		return d.cmdSubscribe(c, argv), false
	case "UNSUBSCRIBE":
		return d.cmdUnsubscribe(c, argv), false
	case "PUBLISH":
		return one(d.cmdPublish(argv)), false

	case "DBSIZE":
		return one(resp.Integer(int64(d.engine.Keyspace().DBSize()))), false
	case "FLUSHALL":
		d.engine.Keyspace().FlushAll()
		return one(resp.OK), false
	case "SAVE":
		return one(d.cmdSave()), false
	case "BGSAVE":
		d.engine.BGSave()
		return one(resp.SimpleString("Background saving started")), false
	case "BGREWRITEAOF":
		return one(d.cmdBGRewriteAOF()), false

	default:
		return one(resp.Error("ERR", "unknown command '"+string(args[0])+"'")), false
	}
}

func one(r resp.Reply) []resp.Reply { return []resp.Reply{r} }

// errorReply maps an engine error onto its RESP wire form. DomainError
// codes map to stable prefixes; anything else becomes a generic ERR.
func errorReply(err error) resp.Reply {
	var de *domain.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case domain.ErrWrongType.Code:
			return resp.Error("WRONGTYPE", "Operation against a key holding the wrong kind of value")
		case domain.ErrWrongArity.Code:
			return resp.Error("ERR", "wrong number of arguments")
		case domain.ErrNotAnInt.Code:
			return resp.Error("ERR", "value is not an integer or out of range")
		case domain.ErrNotAFloat.Code:
			return resp.Error("ERR", "value is not a valid float")
		case domain.ErrSyntax.Code:
			return resp.Error("ERR", "syntax error")
		default:
			return resp.Error("ERR", de.Message)
		}
	}
	return resp.Error("ERR", err.Error())
}

func arityError() resp.Reply {
	return resp.Error("ERR", "wrong number of arguments")
}

// logMutation appends a successfully applied write command to the AOF,
// logging (never failing the client-visible reply) on persistence error.
func (d *Dispatcher) logMutation(args [][]byte) {
	if err := d.engine.AppendCommand(args); err != nil {
		d.logger.Error("aof append failed", "command", string(args[0]), "error", err)
	}
}

// --- admin / connection ---

func (d *Dispatcher) cmdPing(argv [][]byte) []resp.Reply {
	if len(argv) == 0 {
		return one(resp.SimpleString("PONG"))
	}
	if len(argv) == 1 {
		return one(resp.BulkString(string(argv[0])))
	}
	return one(arityError())
}

func (d *Dispatcher) cmdSave() resp.Reply {
	if _, err := d.engine.Save(context.Background()); err != nil {
		return resp.Error("ERR", "background save error")
	}
	return resp.OK
}

func (d *Dispatcher) cmdBGRewriteAOF() resp.Reply {
	if err := d.engine.RewriteAOF(context.Background()); err != nil {
		return resp.Error("ERR", err.Error())
	}
	return resp.SimpleString("Background append only file rewriting started")
}

// --- strings ---

func (d *Dispatcher) cmdGet(argv [][]byte) resp.Reply {
	if len(argv) != 1 {
		return arityError()
	}
	v, ok, err := d.engine.Keyspace().Get(string(argv[0]))
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NullBulk
	}
	return resp.BulkString(v)
}

func (d *Dispatcher) cmdSet(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) < 2 {
		return arityError()
	}
	key, value := string(argv[0]), string(argv[1])
	opts := keyspace.SetOpts{}
	rest := argv[2:]
	for i := 0; i < len(rest); i++ {
		switch strings.ToUpper(string(rest[i])) {
		case "EX":
			if i+1 >= len(rest) {
				return resp.Error("ERR", "syntax error")
			}
			secs, err := strconv.ParseInt(string(rest[i+1]), 10, 64)
			if err != nil {
				return resp.Error("ERR", "value is not an integer or out of range")
			}
			opts.HasTTL = true
			opts.TTL = time.Duration(secs) * time.Second
			i++
		case "PX":
			if i+1 >= len(rest) {
				return resp.Error("ERR", "syntax error")
			}
			ms, err := strconv.ParseInt(string(rest[i+1]), 10, 64)
			if err != nil {
				return resp.Error("ERR", "value is not an integer or out of range")
			}
			opts.HasTTL = true
			opts.TTL = time.Duration(ms) * time.Millisecond
			i++
		default:
			return resp.Error("ERR", "syntax error")
		}
	}
	d.engine.Keyspace().Set(key, value, opts)
	d.logMutation(args)
	return resp.OK
}

func (d *Dispatcher) cmdMGet(argv [][]byte) resp.Reply {
	if len(argv) == 0 {
		return arityError()
	}
	keys := make([]string, len(argv))
	for i, a := range argv {
		keys[i] = string(a)
	}
	values, found := d.engine.Keyspace().MGet(keys)
	elems := make([]resp.Reply, len(values))
	for i := range values {
		if found[i] {
			elems[i] = resp.BulkString(values[i])
		} else {
			elems[i] = resp.NullBulk
		}
	}
	return resp.Array(elems)
}

func (d *Dispatcher) cmdMSet(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) == 0 || len(argv)%2 != 0 {
		return arityError()
	}
	pairs := make(map[string]string, len(argv)/2)
	for i := 0; i < len(argv); i += 2 {
		pairs[string(argv[i])] = string(argv[i+1])
	}
	d.engine.Keyspace().MSet(pairs)
	d.logMutation(args)
	return resp.OK
}

// --- generic / expiration ---

func (d *Dispatcher) cmdDel(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) == 0 {
		return arityError()
	}
	keys := make([]string, len(argv))
	for i, a := range argv {
		keys[i] = string(a)
	}
	n := d.engine.Keyspace().Del(keys...)
	if n > 0 {
		d.logMutation(args)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) cmdExists(argv [][]byte) resp.Reply {
	if len(argv) == 0 {
		return arityError()
	}
	keys := make([]string, len(argv))
	for i, a := range argv {
		keys[i] = string(a)
	}
	return resp.Integer(int64(d.engine.Keyspace().Exists(keys...)))
}

func (d *Dispatcher) cmdExpire(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) != 2 {
		return arityError()
	}
	secs, err := strconv.ParseInt(string(argv[1]), 10, 64)
	if err != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	ok := d.engine.Keyspace().Expire(string(argv[0]), time.Duration(secs)*time.Second)
	if ok {
		d.logMutation(toExpireAt(string(argv[0]), time.Duration(secs)*time.Second))
	}
	return resp.Integer(boolToInt(ok))
}

func (d *Dispatcher) cmdExpireAt(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) != 2 {
		return arityError()
	}
	at, err := strconv.ParseInt(string(argv[1]), 10, 64)
	if err != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	ok := d.engine.Keyspace().ExpireAt(string(argv[0]), at*1000)
	if ok {
		d.logMutation(args)
	}
	return resp.Integer(boolToInt(ok))
}

// toExpireAt rewrites a relative EXPIRE into the absolute EXPIREAT form the
// AOF always stores, so replay is never affected by wall-clock drift
// between logging and recovery.
func toExpireAt(key string, ttl time.Duration) [][]byte {
	at := time.Now().Add(ttl).Unix()
	return [][]byte{[]byte("EXPIREAT"), []byte(key), []byte(strconv.FormatInt(at, 10))}
}

func (d *Dispatcher) cmdPersist(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) != 1 {
		return arityError()
	}
	ok := d.engine.Keyspace().Persist(string(argv[0]))
	if ok {
		d.logMutation(args)
	}
	return resp.Integer(boolToInt(ok))
}

func (d *Dispatcher) cmdTTL(argv [][]byte) resp.Reply {
	if len(argv) != 1 {
		return arityError()
	}
	ttl := d.engine.Keyspace().TTL(string(argv[0]))
	if ttl < 0 {
		return resp.Integer(int64(ttl / time.Second))
	}
	secs := ttl / time.Second
	if ttl%time.Second != 0 {
		secs++
	}
	return resp.Integer(int64(secs))
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// --- lists ---

func (d *Dispatcher) cmdPush(args [][]byte, argv [][]byte, left bool) resp.Reply {
	if len(argv) < 2 {
		return arityError()
	}
	key := string(argv[0])
	values := make([]string, len(argv)-1)
	for i, a := range argv[1:] {
		values[i] = string(a)
	}
	var n int
	var err error
	if left {
		n, err = d.engine.Keyspace().LPush(key, values...)
	} else {
		n, err = d.engine.Keyspace().RPush(key, values...)
	}
	if err != nil {
		return errorReply(err)
	}
	d.logMutation(args)
	return resp.Integer(int64(n))
}

func (d *Dispatcher) cmdPop(args [][]byte, argv [][]byte, left bool) resp.Reply {
	if len(argv) < 1 || len(argv) > 2 {
		return arityError()
	}
	key := string(argv[0])
	count := 1
	multi := false
	if len(argv) == 2 {
		n, err := strconv.Atoi(string(argv[1]))
		if err != nil {
			return resp.Error("ERR", "value is not an integer or out of range")
		}
		if n < 0 {
			return resp.Error("ERR", "value is out of range, must be positive")
		}
		count = n
		multi = true
	}
	var values []string
	var ok bool
	var err error
	if left {
		values, ok, err = d.engine.Keyspace().LPop(key, count)
	} else {
		values, ok, err = d.engine.Keyspace().RPop(key, count)
	}
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		if multi {
			return resp.NullArray
		}
		return resp.NullBulk
	}
	d.logMutation(args)
	if multi {
		return resp.BulkStringArray(values)
	}
	return resp.BulkString(values[0])
}

func (d *Dispatcher) cmdLRange(argv [][]byte) resp.Reply {
	if len(argv) != 3 {
		return arityError()
	}
	start, err1 := strconv.Atoi(string(argv[1]))
	stop, err2 := strconv.Atoi(string(argv[2]))
	if err1 != nil || err2 != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	values, err := d.engine.Keyspace().LRange(string(argv[0]), start, stop)
	if err != nil {
		return errorReply(err)
	}
	return resp.BulkStringArray(values)
}

func (d *Dispatcher) cmdLLen(argv [][]byte) resp.Reply {
	if len(argv) != 1 {
		return arityError()
	}
	n, err := d.engine.Keyspace().LLen(string(argv[0]))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

// --- sets ---

func (d *Dispatcher) cmdSAdd(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) < 2 {
		return arityError()
	}
	members := make([]string, len(argv)-1)
	for i, a := range argv[1:] {
		members[i] = string(a)
	}
	n, err := d.engine.Keyspace().SAdd(string(argv[0]), members...)
	if err != nil {
		return errorReply(err)
	}
	if n > 0 {
		d.logMutation(args)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) cmdSRem(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) < 2 {
		return arityError()
	}
	members := make([]string, len(argv)-1)
	for i, a := range argv[1:] {
		members[i] = string(a)
	}
	n, err := d.engine.Keyspace().SRem(string(argv[0]), members...)
	if err != nil {
		return errorReply(err)
	}
	if n > 0 {
		d.logMutation(args)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) cmdSMembers(argv [][]byte) resp.Reply {
	if len(argv) != 1 {
		return arityError()
	}
	members, err := d.engine.Keyspace().SMembers(string(argv[0]))
	if err != nil {
		return errorReply(err)
	}
	return resp.BulkStringArray(members)
}

func (d *Dispatcher) cmdSCard(argv [][]byte) resp.Reply {
	if len(argv) != 1 {
		return arityError()
	}
	n, err := d.engine.Keyspace().SCard(string(argv[0]))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) cmdSIsMember(argv [][]byte) resp.Reply {
	if len(argv) != 2 {
		return arityError()
	}
	ok, err := d.engine.Keyspace().SIsMember(string(argv[0]), string(argv[1]))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(boolToInt(ok))
}

func (d *Dispatcher) cmdSetOp(argv [][]byte, op func(keys ...string) ([]string, error)) resp.Reply {
	if len(argv) == 0 {
		return arityError()
	}
	keys := make([]string, len(argv))
	for i, a := range argv {
		keys[i] = string(a)
	}
	members, err := op(keys...)
	if err != nil {
		return errorReply(err)
	}
	return resp.BulkStringArray(members)
}

// --- sorted sets ---

func (d *Dispatcher) cmdZAdd(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) < 3 || (len(argv)-1)%2 != 0 {
		return arityError()
	}
	key := string(argv[0])
	scores := make(map[string]float64, (len(argv)-1)/2)
	for i := 1; i < len(argv); i += 2 {
		score, err := strconv.ParseFloat(string(argv[i]), 64)
		if err != nil || score != score { // NaN check: score != score is true only for NaN
			return resp.Error("ERR", "value is not a valid float")
		}
		scores[string(argv[i+1])] = score
	}
	n, err := d.engine.Keyspace().ZAdd(key, scores)
	if err != nil {
		return errorReply(err)
	}
	d.logMutation(args)
	return resp.Integer(int64(n))
}

func (d *Dispatcher) cmdZRem(args [][]byte, argv [][]byte) resp.Reply {
	if len(argv) < 2 {
		return arityError()
	}
	members := make([]string, len(argv)-1)
	for i, a := range argv[1:] {
		members[i] = string(a)
	}
	n, err := d.engine.Keyspace().ZRem(string(argv[0]), members...)
	if err != nil {
		return errorReply(err)
	}
	if n > 0 {
		d.logMutation(args)
	}
	return resp.Integer(int64(n))
}

func (d *Dispatcher) cmdZScore(argv [][]byte) resp.Reply {
	if len(argv) != 2 {
		return arityError()
	}
	score, ok, err := d.engine.Keyspace().ZScore(string(argv[0]), string(argv[1]))
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NullBulk
	}
	return resp.BulkString(formatScore(score))
}

func (d *Dispatcher) cmdZRange(argv [][]byte) resp.Reply {
	if len(argv) < 3 {
		return arityError()
	}
	withScores := false
	if len(argv) == 4 {
		if strings.ToUpper(string(argv[3])) != "WITHSCORES" {
			return resp.Error("ERR", "syntax error")
		}
		withScores = true
	} else if len(argv) != 3 {
		return arityError()
	}
	start, err1 := strconv.Atoi(string(argv[1]))
	stop, err2 := strconv.Atoi(string(argv[2]))
	if err1 != nil || err2 != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	members, err := d.engine.Keyspace().ZRange(string(argv[0]), start, stop)
	if err != nil {
		return errorReply(err)
	}
	if !withScores {
		out := make([]string, len(members))
		for i, m := range members {
			out[i] = m.Member
		}
		return resp.BulkStringArray(out)
	}
	elems := make([]resp.Reply, 0, len(members)*2)
	for _, m := range members {
		elems = append(elems, resp.BulkString(m.Member), resp.BulkString(formatScore(m.Score)))
	}
	return resp.Array(elems)
}

func (d *Dispatcher) cmdZRank(argv [][]byte) resp.Reply {
	if len(argv) != 2 {
		return arityError()
	}
	rank, ok, err := d.engine.Keyspace().ZRank(string(argv[0]), string(argv[1]))
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NullBulk
	}
	return resp.Integer(int64(rank))
}

func (d *Dispatcher) cmdZCard(argv [][]byte) resp.Reply {
	if len(argv) != 1 {
		return arityError()
	}
	n, err := d.engine.Keyspace().ZCard(string(argv[0]))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

// formatScore renders a sorted-set score as the shortest decimal string
// that round-trips back to the same float64.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

// --- pub/sub ---

func (d *Dispatcher) cmdSubscribe(c *Conn, argv [][]byte) []resp.Reply {
	if len(argv) == 0 {
		return one(arityError())
	}
	if c.subs == nil {
		c.subs = pubsub.NewSubscriptions(d.hub)
	}
	replies := make([]resp.Reply, 0, len(argv))
	for _, a := range argv {
		channel := string(a)
		alreadyJoined := false
		for _, joined := range c.subs.Channels() {
			if joined == channel {
				alreadyJoined = true
				break
			}
		}
		sub, count := c.subs.Add(channel)
		if !alreadyJoined {
			go c.forwardMessages(sub, d.writeTimeout)
			if d.metrics != nil {
				d.metrics.SubscriptionsActive.Inc()
			}
		}
		replies = append(replies, resp.Array([]resp.Reply{
			resp.BulkString("subscribe"),
			resp.BulkString(channel),
			resp.Integer(int64(count)),
		}))
	}
	return replies
}

func (d *Dispatcher) cmdUnsubscribe(c *Conn, argv [][]byte) []resp.Reply {
	if c.subs == nil {
		c.subs = pubsub.NewSubscriptions(d.hub)
	}
	channels := make([]string, len(argv))
	for i, a := range argv {
		channels[i] = string(a)
	}
	if len(channels) == 0 {
		channels = c.subs.Channels()
	}
	if len(channels) == 0 {
		return one(resp.Array([]resp.Reply{
			resp.BulkString("unsubscribe"),
			resp.NullBulk,
			resp.Integer(0),
		}))
	}
	replies := make([]resp.Reply, 0, len(channels))
	for _, channel := range channels {
		wasJoined := false
		for _, joined := range c.subs.Channels() {
			if joined == channel {
				wasJoined = true
				break
			}
		}
		remaining := c.subs.Remove(channel)
		if wasJoined && d.metrics != nil {
			d.metrics.SubscriptionsActive.Dec()
		}
		replies = append(replies, resp.Array([]resp.Reply{
			resp.BulkString("unsubscribe"),
			resp.BulkString(channel),
			resp.Integer(int64(remaining)),
		}))
	}
	return replies
}

func (d *Dispatcher) cmdPublish(argv [][]byte) resp.Reply {
	if len(argv) != 2 {
		return arityError()
	}
	n := d.hub.Publish(string(argv[0]), string(argv[1]))
	return resp.Integer(int64(n))
}
