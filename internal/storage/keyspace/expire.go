package keyspace

import (
	"context"
	"math/rand"
	"time"
)

// Active expiration parameters, per spec.md §4.B: sweep a small sample of
// keys with a TTL on a fixed interval, and keep sweeping immediately
// (instead of waiting for the next tick) when more than a quarter of the
// sample was expired, since that's a sign there's a backlog to clear.
const (
	defaultSweepInterval = 100 * time.Millisecond
	sweepSampleSize      = 20
	sweepRepeatThreshold = 0.25
)

// RunActiveExpiration runs the periodic sampling sweep until ctx is
// canceled. It is meant to be started as a single background goroutine by
// the owning engine.
func (ks *Keyspace) RunActiveExpiration(ctx context.Context) {
	ticker := time.NewTicker(defaultSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for ks.sweepOnce() {
				select {
				case <-ctx.Done():
					return
				default:
				}
			}
		}
	}
}

// sweepOnce samples up to sweepSampleSize keys that carry a TTL, deletes
// any that have expired, and reports whether more than a quarter of the
// sample expired (a signal to keep sweeping without waiting for the next
// tick).
func (ks *Keyspace) sweepOnce() bool {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	now := nowMillis()
	candidates := make([]string, 0, sweepSampleSize)
	for k, e := range ks.data {
		if e.expiresAt == 0 {
			continue
		}
		candidates = append(candidates, k)
		if len(candidates) >= sweepSampleSize*4 {
			// Bound the scan on a keyspace with many volatile keys; we
			// still sample randomly from what we gathered below.
			break
		}
	}
	if len(candidates) == 0 {
		return false
	}

	rand.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	if len(candidates) > sweepSampleSize {
		candidates = candidates[:sweepSampleSize]
	}

	expired := 0
	for _, k := range candidates {
		e := ks.data[k]
		if e != nil && e.expiresAt != 0 && e.expiresAt <= now {
			delete(ks.data, k)
			expired++
		}
	}
	if expired > 0 {
		ks.dirty += int64(expired)
	}
	return float64(expired)/float64(len(candidates)) > sweepRepeatThreshold
}
