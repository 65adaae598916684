package keyspace

import "time"

// SetOpts controls optional SET behavior (EX/PX expiration).
type SetOpts struct {
	TTL    time.Duration // zero means no expiration
	HasTTL bool
}

// Set stores value as a string at key, replacing whatever was there
// (including clearing any prior TTL unless opts requests otherwise).
func (ks *Keyspace) Set(key, value string, opts SetOpts) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	var expiresAt int64
	if opts.HasTTL {
		expiresAt = nowMillis() + opts.TTL.Milliseconds()
	}
	ks.data[key] = &entry{kind: KindString, str: value, expiresAt: expiresAt}
	ks.dirty++
}

// Get returns the string at key. ok is false if the key is absent/expired;
// err is non-nil (WRONGTYPE) if the key holds a different type.
func (ks *Keyspace) Get(key string) (value string, ok bool, err error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, found := ks.lookupLocked(key)
	if !found {
		return "", false, nil
	}
	if e.kind != KindString {
		return "", false, wrongType(key, e.kind)
	}
	return e.str, true, nil
}

// MSet sets multiple string keys atomically (one lock acquisition), with
// no TTL (matching real Redis's MSET, which always clears any prior TTL).
func (ks *Keyspace) MSet(pairs map[string]string) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	for k, v := range pairs {
		ks.data[k] = &entry{kind: KindString, str: v}
	}
	ks.dirty += int64(len(pairs))
}

// MGet reads multiple keys atomically. A missing key or one holding a
// non-string value yields ok=false at that index rather than failing the
// whole call — this matches real Redis's MGET, which never errors.
func (ks *Keyspace) MGet(keys []string) (values []string, found []bool) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	values = make([]string, len(keys))
	found = make([]bool, len(keys))
	for i, k := range keys {
		e, ok := ks.lookupLocked(k)
		if !ok || e.kind != KindString {
			continue
		}
		values[i] = e.str
		found[i] = true
	}
	return values, found
}
