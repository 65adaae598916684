package keyspace

import "github.com/zuhaib786/FerroDB/internal/core/domain"

// wrongType builds a WRONGTYPE error naming the key's actual kind, used by
// every typed accessor below to satisfy spec.md's WRONGTYPE-purity
// invariant: the error carries enough detail for logging but the caller
// must not have mutated anything before returning it.
func wrongType(key string, got Kind) error {
	return domain.ErrWrongType.WithDetails("key " + key + " holds a " + got.String())
}
