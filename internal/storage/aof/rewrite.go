package aof

import (
	"bufio"
	"os"

	"github.com/zuhaib786/FerroDB/internal/protocol/resp"
	"github.com/zuhaib786/FerroDB/internal/storage/keyspace"
)

// BuildRewriteCommands turns a keyspace snapshot into the minimal sequence
// of commands that reconstructs it: one SET per string, one RPUSH per
// non-empty list, one SADD per non-empty set, one ZADD per non-empty
// sorted set, and a trailing EXPIREAT for any key with a TTL.
//
// EXPIREAT (absolute) is used rather than EXPIRE (relative) so that a
// rewritten AOF replayed minutes or hours later still expires the key at
// the same wall-clock instant it would have originally — see
// SPEC_FULL.md §3 for why this corrects the original implementation's
// relative-EXPIRE approach.
func BuildRewriteCommands(dumps []keyspace.KeyDump) [][][]byte {
	var cmds [][][]byte
	for _, d := range dumps {
		switch d.Kind {
		case keyspace.KindString:
			cmds = append(cmds, cmd("SET", d.Key, d.Str))
		case keyspace.KindList:
			if len(d.List) == 0 {
				continue
			}
			c := cmd("RPUSH", d.Key)
			for _, v := range d.List {
				c = append(c, []byte(v))
			}
			cmds = append(cmds, c)
		case keyspace.KindSet:
			if len(d.Set) == 0 {
				continue
			}
			c := cmd("SADD", d.Key)
			for _, m := range d.Set {
				c = append(c, []byte(m))
			}
			cmds = append(cmds, c)
		case keyspace.KindSortedSet:
			if len(d.ZSet) == 0 {
				continue
			}
			c := cmd("ZADD", d.Key)
			for _, m := range d.ZSet {
				c = append(c, []byte(formatFloat(m.Score)), []byte(m.Member))
			}
			cmds = append(cmds, c)
		default:
			continue
		}
		if d.ExpiresAt != 0 {
			cmds = append(cmds, cmd("EXPIREAT", d.Key, formatInt(d.ExpiresAt)))
		}
	}
	return cmds
}

func cmd(parts ...string) [][]byte {
	out := make([][]byte, len(parts))
	for i, p := range parts {
		out[i] = []byte(p)
	}
	return out
}

// Rewrite replaces the AOF on disk with a minimal reconstructive form
// built from commands (see BuildRewriteCommands), atomically: it writes to
// a temp file, fsyncs, renames over the live path, then reopens the live
// handle. Mutations attempted concurrently with Rewrite block on w.mu and
// are appended to the new file once Rewrite releases it — they are never
// lost and never land in the old file.
func (w *Writer) Rewrite(commands [][][]byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tmpPath := w.path + ".rewrite.tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(tmp)
	for _, c := range commands {
		if err := resp.EncodeCommand(bw, c); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Flush whatever was buffered for the old file before swapping, so
	// nothing written just before the rewrite began is lost.
	if err := w.flushLocked(); err != nil {
		return err
	}
	if err := w.file.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, w.path); err != nil {
		return err
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	w.file = f
	w.buf = bufio.NewWriter(f)
	w.pendingSinceFlush = false
	return nil
}
