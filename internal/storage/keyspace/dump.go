package keyspace

// KeyDump is a point-in-time view of one key, used by the snapshot writer
// and BGREWRITEAOF to serialize the keyspace without holding the lock for
// the whole write.
type KeyDump struct {
	Key       string
	Kind      Kind
	ExpiresAt int64 // unix ms, 0 = none
	Str       string
	List      []string
	Set       []string
	ZSet      []ZRankMember // ascending score order
}

// Snapshot returns a consistent point-in-time copy of every live key. It
// holds the write lock only long enough to perform passive expiry and copy
// references — the actual serialization happens outside the lock.
func (ks *Keyspace) Snapshot() []KeyDump {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	now := nowMillis()
	out := make([]KeyDump, 0, len(ks.data))
	for k, e := range ks.data {
		if e.expiresAt != 0 && e.expiresAt <= now {
			delete(ks.data, k)
			continue
		}
		d := KeyDump{Key: k, Kind: e.kind, ExpiresAt: e.expiresAt}
		switch e.kind {
		case KindString:
			d.Str = e.str
		case KindList:
			d.List = append([]string(nil), e.list...)
		case KindSet:
			d.Set = sortedKeys(e.set)
		case KindSortedSet:
			for _, m := range e.zset.ordered {
				d.ZSet = append(d.ZSet, ZRankMember{Member: m.member, Score: m.score})
			}
		}
		out = append(out, d)
	}
	return out
}

// LoadKey installs a key from a snapshot or AOF replay, overwriting
// whatever is already there. absExpiresAt of 0 means no TTL; a value in
// the past is dropped immediately (recovery treats expirations as
// absolute, per spec.md §4.C/§4.D).
func (ks *Keyspace) LoadKey(d KeyDump) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if d.ExpiresAt != 0 && d.ExpiresAt <= nowMillis() {
		delete(ks.data, d.Key)
		return
	}

	e := &entry{kind: d.Kind, expiresAt: d.ExpiresAt}
	switch d.Kind {
	case KindString:
		e.str = d.Str
	case KindList:
		e.list = append([]string(nil), d.List...)
	case KindSet:
		e.set = make(map[string]struct{}, len(d.Set))
		for _, m := range d.Set {
			e.set[m] = struct{}{}
		}
	case KindSortedSet:
		z := newZSet()
		for _, m := range d.ZSet {
			z.upsert(m.Member, m.Score)
		}
		e.zset = z
	}
	ks.data[d.Key] = e
}
