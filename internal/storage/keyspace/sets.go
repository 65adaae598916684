package keyspace

import "sort"

// SAdd adds members to the set at key, creating it if necessary. Returns
// the number of members that were newly added (not already present).
func (ks *Keyspace) SAdd(key string, members ...string) (int, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	var ent *entry
	if ks.expireIfNeededLocked(key) {
		ent = ks.data[key]
		if ent.kind != KindSet {
			return 0, wrongType(key, ent.kind)
		}
	} else {
		ent = &entry{kind: KindSet, set: make(map[string]struct{})}
		ks.data[key] = ent
	}

	added := 0
	for _, m := range members {
		if _, present := ent.set[m]; !present {
			ent.set[m] = struct{}{}
			added++
		}
	}
	ks.dirty++
	return added, nil
}

// SRem removes members from the set at key, deleting the key if it becomes
// empty. Returns the number of members actually removed.
func (ks *Keyspace) SRem(key string, members ...string) (int, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if !ks.expireIfNeededLocked(key) {
		return 0, nil
	}
	ent := ks.data[key]
	if ent.kind != KindSet {
		return 0, wrongType(key, ent.kind)
	}
	removed := 0
	for _, m := range members {
		if _, present := ent.set[m]; present {
			delete(ent.set, m)
			removed++
		}
	}
	if len(ent.set) == 0 {
		delete(ks.data, key)
	}
	ks.dirty++
	return removed, nil
}

// SMembers returns all members of the set at key in no particular order
// (callers that need determinism, e.g. tests, should sort the result).
func (ks *Keyspace) SMembers(key string) ([]string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindSet {
		return nil, wrongType(key, e.kind)
	}
	out := make([]string, 0, len(e.set))
	for m := range e.set {
		out = append(out, m)
	}
	return out, nil
}

// SCard returns the number of members in the set at key.
func (ks *Keyspace) SCard(key string) (int, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return 0, nil
	}
	if e.kind != KindSet {
		return 0, wrongType(key, e.kind)
	}
	return len(e.set), nil
}

// SIsMember reports whether member is in the set at key.
func (ks *Keyspace) SIsMember(key, member string) (bool, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	e, ok := ks.lookupLocked(key)
	if !ok {
		return false, nil
	}
	if e.kind != KindSet {
		return false, wrongType(key, e.kind)
	}
	_, present := e.set[member]
	return present, nil
}

// setOrEmptyLocked returns the member set for key under the read lock already
// held by the caller. A missing key contributes an empty set, matching
// real Redis's SINTER/SUNION/SDIFF treatment of absent keys.
func (ks *Keyspace) setOrEmptyLocked(key string) (map[string]struct{}, error) {
	e, ok := ks.lookupLocked(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindSet {
		return nil, wrongType(key, e.kind)
	}
	return e.set, nil
}

// SInter returns the intersection of the sets at keys. The first key is
// the base set being progressively filtered, matching the original
// implementation's approach; an absent key (contributing an empty set)
// makes the whole intersection empty.
func (ks *Keyspace) SInter(keys ...string) ([]string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	if len(keys) == 0 {
		return []string{}, nil
	}
	base, err := ks.setOrEmptyLocked(keys[0])
	if err != nil {
		return nil, err
	}
	result := make(map[string]struct{}, len(base))
	for m := range base {
		result[m] = struct{}{}
	}
	for _, k := range keys[1:] {
		s, err := ks.setOrEmptyLocked(k)
		if err != nil {
			return nil, err
		}
		for m := range result {
			if _, ok := s[m]; !ok {
				delete(result, m)
			}
		}
	}
	return sortedKeys(result), nil
}

// SUnion returns the union of the sets at keys.
func (ks *Keyspace) SUnion(keys ...string) ([]string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	result := make(map[string]struct{})
	for _, k := range keys {
		s, err := ks.setOrEmptyLocked(k)
		if err != nil {
			return nil, err
		}
		for m := range s {
			result[m] = struct{}{}
		}
	}
	return sortedKeys(result), nil
}

// SDiff returns the members of the set at keys[0] that are not present in
// any of the other sets.
func (ks *Keyspace) SDiff(keys ...string) ([]string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	if len(keys) == 0 {
		return []string{}, nil
	}
	base, err := ks.setOrEmptyLocked(keys[0])
	if err != nil {
		return nil, err
	}
	result := make(map[string]struct{}, len(base))
	for m := range base {
		result[m] = struct{}{}
	}
	for _, k := range keys[1:] {
		s, err := ks.setOrEmptyLocked(k)
		if err != nil {
			return nil, err
		}
		for m := range s {
			delete(result, m)
		}
	}
	return sortedKeys(result), nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
