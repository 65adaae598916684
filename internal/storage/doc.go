// Package storage provides FerroDB's storage engine.
//
// The engine combines an in-memory keyspace, an append-only file for
// durability, and periodic binary snapshots for fast recovery.
//
// Architecture:
//
//   - Keyspace: primary storage, a single coarse-locked map of typed values
//   - AOF: append-only log of mutating commands, replayed on startup
//   - Snapshot: periodic point-in-time dumps that bound AOF replay time
//
// On startup the latest snapshot is loaded first, then the AOF is replayed
// on top of it — the AOF is authoritative where the two disagree, since it
// always extends past the snapshot's cutoff.
package storage
