// Package keyspace implements FerroDB's in-memory key space: the four
// value types (string, list, set, sorted set), TTL tracking, and the
// single coarse lock multi-key operations need to appear atomic under.
//
// The lock is intentionally NOT sharded (unlike the teacher's pkg/cmap):
// MGET, MSET, SINTER, SUNION and SDIFF all read or write several keys in
// one call, and the only way to make that look atomic to a concurrent
// writer is to hold one lock for the call's whole duration.
package keyspace

import (
	"sync"
	"time"
)

// Keyspace holds every key FerroDB knows about, guarded by one RWMutex.
type Keyspace struct {
	mu   sync.RWMutex
	data map[string]*entry

	// dirty counts mutations since the last snapshot, used by the engine
	// to decide whether a --save rule's change threshold has been met.
	dirty int64
}

// New creates an empty keyspace.
func New() *Keyspace {
	return &Keyspace{data: make(map[string]*entry)}
}

// nowMillis is overridable in tests that need deterministic expirations.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// lookupLocked returns the entry for key if present and not expired. It
// must be called with mu held (read or write). It does NOT delete expired
// entries — deletion needs the write lock, so read-only callers just treat
// an expired entry as absent and leave it for a write path, DBSize,
// Snapshot or the active sweep to remove.
func (ks *Keyspace) lookupLocked(key string) (*entry, bool) {
	e, ok := ks.data[key]
	if !ok {
		return nil, false
	}
	if e.expiresAt != 0 && e.expiresAt <= nowMillis() {
		return nil, false
	}
	return e, true
}

// expireIfNeededLocked deletes key if it has passively expired. Caller
// must hold the write lock. Returns true if the key existed (expired or
// not) prior to the call.
func (ks *Keyspace) expireIfNeededLocked(key string) (existed bool) {
	e, ok := ks.data[key]
	if !ok {
		return false
	}
	if e.expiresAt != 0 && e.expiresAt <= nowMillis() {
		delete(ks.data, key)
		return false
	}
	return true
}

// Exists reports whether each key is present (and not expired). Runs under
// a single read lock so the result set is a consistent snapshot.
func (ks *Keyspace) Exists(keys ...string) int {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	n := 0
	for _, k := range keys {
		if _, ok := ks.lookupLocked(k); ok {
			n++
		}
	}
	return n
}

// Del removes keys, returning the count actually removed.
func (ks *Keyspace) Del(keys ...string) int {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	n := 0
	for _, k := range keys {
		if ks.expireIfNeededLocked(k) {
			delete(ks.data, k)
			n++
		}
	}
	ks.dirty += int64(n)
	return n
}

// Expire sets key's TTL to d from now. Returns false if key does not exist.
func (ks *Keyspace) Expire(key string, d time.Duration) bool {
	return ks.ExpireAt(key, nowMillis()+d.Milliseconds())
}

// ExpireAt sets key's absolute expiration to atMillis (unix ms). Returns
// false if key does not exist. atMillis in the past deletes the key
// immediately, matching real Redis's EXPIREAT semantics.
func (ks *Keyspace) ExpireAt(key string, atMillis int64) bool {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if !ks.expireIfNeededLocked(key) {
		return false
	}
	if atMillis <= nowMillis() {
		delete(ks.data, key)
		ks.dirty++
		return true
	}
	ks.data[key].expiresAt = atMillis
	ks.dirty++
	return true
}

// Persist removes key's TTL. Returns true if a TTL was actually cleared.
func (ks *Keyspace) Persist(key string) bool {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	e, ok := ks.data[key]
	if !ok || (e.expiresAt != 0 && e.expiresAt <= nowMillis()) {
		return false
	}
	if e.expiresAt == 0 {
		return false
	}
	e.expiresAt = 0
	ks.dirty++
	return true
}

// TTL returns the remaining time-to-live for key. -2 means the key does
// not exist (or has expired); -1 means the key exists with no TTL.
func (ks *Keyspace) TTL(key string) time.Duration {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return -2 * time.Second
	}
	if e.expiresAt == 0 {
		return -1 * time.Second
	}
	remaining := e.expiresAt - nowMillis()
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// DBSize returns the number of live (non-expired) keys.
//
// This performs a full passive-expiry scan under the write lock, which is
// acceptable because DBSIZE is an O(n) command to begin with.
func (ks *Keyspace) DBSize() int {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	now := nowMillis()
	n := 0
	for k, e := range ks.data {
		if e.expiresAt != 0 && e.expiresAt <= now {
			delete(ks.data, k)
			continue
		}
		n++
	}
	return n
}

// FlushAll removes every key. Supplemental admin op (not in the original
// command set) useful for tests and the CLI's `flushall`.
func (ks *Keyspace) FlushAll() {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.data = make(map[string]*entry)
	ks.dirty++
}

// TakeDirty returns the mutation count since the last call and resets it.
// The engine's auto-save loop uses this to evaluate --save rules.
func (ks *Keyspace) TakeDirty() int64 {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	d := ks.dirty
	ks.dirty = 0
	return d
}

// DirtyCount returns the mutation count since the last TakeDirty call,
// without resetting it. The engine's auto-save loop uses this to check a
// --save rule's change threshold before deciding to save (and thereby
// reset the counter) on a given tick.
func (ks *Keyspace) DirtyCount() int64 {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return ks.dirty
}

// KeyKind returns the Kind stored at key, or 0 and false if absent/expired.
func (ks *Keyspace) KeyKind(key string) (Kind, bool) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return 0, false
	}
	return e.kind, true
}
