package keyspace

// LPush prepends values (in argument order, so the last argument ends up
// at the head) and returns the list's new length.
func (ks *Keyspace) LPush(key string, values ...string) (int, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	e, err := ks.listEntryLocked(key, true)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		e.list = append([]string{v}, e.list...)
	}
	ks.dirty++
	return len(e.list), nil
}

// RPush appends values and returns the list's new length.
func (ks *Keyspace) RPush(key string, values ...string) (int, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	e, err := ks.listEntryLocked(key, true)
	if err != nil {
		return 0, err
	}
	e.list = append(e.list, values...)
	ks.dirty++
	return len(e.list), nil
}

// listEntryLocked returns key's list entry, creating an empty one if
// createIfMissing is set. Caller must hold the write lock.
func (ks *Keyspace) listEntryLocked(key string, createIfMissing bool) (*entry, error) {
	if !ks.expireIfNeededLocked(key) {
		if !createIfMissing {
			return nil, nil
		}
		e := &entry{kind: KindList}
		ks.data[key] = e
		return e, nil
	}
	e := ks.data[key]
	if e.kind != KindList {
		return nil, wrongType(key, e.kind)
	}
	return e, nil
}

// LPop removes and returns up to count elements from the head. ok is false
// if the key does not exist.
func (ks *Keyspace) LPop(key string, count int) (values []string, ok bool, err error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	e, exists := ks.lookupForMutateLocked(key, KindList)
	if err = e.err; err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	n := count
	if n > len(e.entry.list) {
		n = len(e.entry.list)
	}
	values = e.entry.list[:n]
	e.entry.list = e.entry.list[n:]
	ks.deleteIfEmptyListLocked(key, e.entry)
	ks.dirty++
	return values, true, nil
}

// RPop removes and returns up to count elements from the tail, in
// tail-to-head order (matching real Redis's RPOP with a count).
func (ks *Keyspace) RPop(key string, count int) (values []string, ok bool, err error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	e, exists := ks.lookupForMutateLocked(key, KindList)
	if err = e.err; err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	n := count
	if n > len(e.entry.list) {
		n = len(e.entry.list)
	}
	tail := e.entry.list[len(e.entry.list)-n:]
	values = make([]string, n)
	for i := range tail {
		values[i] = tail[n-1-i]
	}
	e.entry.list = e.entry.list[:len(e.entry.list)-n]
	ks.deleteIfEmptyListLocked(key, e.entry)
	ks.dirty++
	return values, true, nil
}

// LRange returns elements in [start, stop] (inclusive, zero-based), with
// negative indices counting from the tail exactly as Redis defines them.
func (ks *Keyspace) LRange(key string, start, stop int) ([]string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindList {
		return nil, wrongType(key, e.kind)
	}
	lo, hi := clampRange(start, stop, len(e.list))
	if lo > hi {
		return []string{}, nil
	}
	out := make([]string, hi-lo+1)
	copy(out, e.list[lo:hi+1])
	return out, nil
}

// LLen returns the length of the list at key, or 0 if it does not exist.
func (ks *Keyspace) LLen(key string) (int, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return 0, nil
	}
	if e.kind != KindList {
		return 0, wrongType(key, e.kind)
	}
	return len(e.list), nil
}

// clampRange converts Redis-style possibly-negative [start, stop] bounds
// into an inclusive [lo, hi] index range into a sequence of length n,
// following the original implementation's clamping formula exactly:
// negative indices count from the end, and an empty result is signaled by
// lo > hi.
func clampRange(start, stop, n int) (lo, hi int) {
	if start < 0 {
		start = max(n+start, 0)
	} else if start > n {
		start = n
	}
	if stop < 0 {
		stop = n + stop
		if stop < -1 {
			stop = -1
		}
	} else if stop > n-1 {
		stop = n - 1
	}
	if start > stop || start >= n {
		return 0, -1
	}
	return start, stop
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// lookupForMutateLocked resolves an existing entry of the expected kind for
// a mutating op, distinguishing "doesn't exist" from "wrong type" from
// "exists and usable" in one shot. Caller must hold the write lock.
type mutateLookup struct {
	entry *entry
	err   error
}

func (ks *Keyspace) lookupForMutateLocked(key string, want Kind) (mutateLookup, bool) {
	if !ks.expireIfNeededLocked(key) {
		return mutateLookup{}, false
	}
	e := ks.data[key]
	if e.kind != want {
		return mutateLookup{err: wrongType(key, e.kind)}, true
	}
	return mutateLookup{entry: e}, true
}

func (ks *Keyspace) deleteIfEmptyListLocked(key string, e *entry) {
	if len(e.list) == 0 {
		delete(ks.data, key)
	}
}
