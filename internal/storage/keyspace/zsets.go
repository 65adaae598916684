package keyspace

import "sort"

// ZAdd adds or updates members with the given scores, creating the sorted
// set if necessary. Returns the number of members that were newly added
// (per spec.md — updating an existing member's score does not count).
func (ks *Keyspace) ZAdd(key string, scores map[string]float64) (int, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	var ent *entry
	if ks.expireIfNeededLocked(key) {
		ent = ks.data[key]
		if ent.kind != KindSortedSet {
			return 0, wrongType(key, ent.kind)
		}
	} else {
		ent = &entry{kind: KindSortedSet, zset: newZSet()}
		ks.data[key] = ent
	}

	added := 0
	for member, score := range scores {
		if _, exists := ent.zset.scores[member]; !exists {
			added++
		}
		ent.zset.upsert(member, score)
	}
	ks.dirty++
	return added, nil
}

// upsert sets member's score, keeping the ordered index consistent with
// the score map (the dual-index bijection invariant from spec.md §3/§8).
func (z *zset) upsert(member string, score float64) {
	if oldScore, exists := z.scores[member]; exists {
		z.removeFromOrdered(zmember{member: member, score: oldScore})
	}
	z.scores[member] = score
	z.insertOrdered(zmember{member: member, score: score})
}

func (z *zset) insertOrdered(m zmember) {
	i := sort.Search(len(z.ordered), func(i int) bool {
		return !zmemberLess(z.ordered[i], m)
	})
	z.ordered = append(z.ordered, zmember{})
	copy(z.ordered[i+1:], z.ordered[i:])
	z.ordered[i] = m
}

func (z *zset) removeFromOrdered(m zmember) {
	for i, e := range z.ordered {
		if e.member == m.member && e.score == m.score {
			z.ordered = append(z.ordered[:i], z.ordered[i+1:]...)
			return
		}
	}
}

// ZRem removes members, deleting the key if the set becomes empty. Returns
// the number of members actually removed.
func (ks *Keyspace) ZRem(key string, members ...string) (int, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if !ks.expireIfNeededLocked(key) {
		return 0, nil
	}
	ent := ks.data[key]
	if ent.kind != KindSortedSet {
		return 0, wrongType(key, ent.kind)
	}
	removed := 0
	for _, m := range members {
		if score, ok := ent.zset.scores[m]; ok {
			ent.zset.removeFromOrdered(zmember{member: m, score: score})
			delete(ent.zset.scores, m)
			removed++
		}
	}
	if len(ent.zset.scores) == 0 {
		delete(ks.data, key)
	}
	ks.dirty++
	return removed, nil
}

// ZScore returns member's score in the sorted set at key.
func (ks *Keyspace) ZScore(key, member string) (score float64, ok bool, err error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, found := ks.lookupLocked(key)
	if !found {
		return 0, false, nil
	}
	if e.kind != KindSortedSet {
		return 0, false, wrongType(key, e.kind)
	}
	s, ok := e.zset.scores[member]
	return s, ok, nil
}

// ZCard returns the number of members in the sorted set at key.
func (ks *Keyspace) ZCard(key string) (int, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return 0, nil
	}
	if e.kind != KindSortedSet {
		return 0, wrongType(key, e.kind)
	}
	return len(e.zset.scores), nil
}

// ZRankMember is one (member, score) pair returned by ZRange.
type ZRankMember struct {
	Member string
	Score  float64
}

// ZRange returns members in rank range [start, stop] (inclusive,
// zero-based, ascending score order), with the same negative-index
// clamping rules as LRange.
func (ks *Keyspace) ZRange(key string, start, stop int) ([]ZRankMember, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindSortedSet {
		return nil, wrongType(key, e.kind)
	}
	lo, hi := clampRange(start, stop, len(e.zset.ordered))
	if lo > hi {
		return []ZRankMember{}, nil
	}
	out := make([]ZRankMember, 0, hi-lo+1)
	for _, m := range e.zset.ordered[lo : hi+1] {
		out = append(out, ZRankMember{Member: m.member, Score: m.score})
	}
	return out, nil
}

// ZRank returns member's zero-based rank in ascending score order (with
// (score, member-bytes) tie-breaking), or ok=false if absent.
func (ks *Keyspace) ZRank(key, member string) (rank int, ok bool, err error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, found := ks.lookupLocked(key)
	if !found {
		return 0, false, nil
	}
	if e.kind != KindSortedSet {
		return 0, false, wrongType(key, e.kind)
	}
	score, exists := e.zset.scores[member]
	if !exists {
		return 0, false, nil
	}
	target := zmember{member: member, score: score}
	for i, m := range e.zset.ordered {
		if m.member == target.member && m.score == target.score {
			return i, true, nil
		}
	}
	return 0, false, nil
}
