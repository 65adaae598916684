package keyspace

// Kind identifies the shape of value stored under a key.
type Kind byte

const (
	KindString Kind = iota + 1
	KindList
	KindSet
	KindSortedSet
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindSortedSet:
		return "zset"
	default:
		return "unknown"
	}
}

// zmember is one member of a sorted set's score-ordered index.
type zmember struct {
	member string
	score  float64
}

// zset is a sorted set's dual index: a member->score map for O(1) lookups
// and a score-ordered slice for range queries. The two must always agree —
// see bijection invariant in SPEC_FULL.md §3/§8.
type zset struct {
	scores  map[string]float64
	ordered []zmember
}

func newZSet() *zset {
	return &zset{scores: make(map[string]float64)}
}

// zmemberLess orders members by (score, member-bytes) — the tie-break spec.md
// mandates so ZRANGE output is deterministic for equal scores.
func zmemberLess(a, b zmember) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.member < b.member
}

// entry is one keyspace slot: a typed value plus its absolute expiration.
type entry struct {
	kind       Kind
	str        string
	list       []string
	set        map[string]struct{}
	zset       *zset
	expiresAt  int64 // unix milliseconds; 0 means no TTL
}
