// Package snapshot implements FerroDB's point-in-time binary snapshot
// format (the "dump.ferr" file):
//
//	["FERRO01"]
//	[key-count:u32]
//	repeated key-count times:
//	  [type-tag:u8][key-len:u32][key][expires-at-ms:u64][payload]
//	[crc64:u64 of every byte before this field]
//	["END"]
//
// Grounded on the teacher's internal/storage/snapshot package for the
// temp-file-then-atomic-rename Create/Load shape and retention/pruning
// policy, but the on-disk payload format is FerroDB's own exact binary
// layout rather than the teacher's JSON-plus-SHA256-trailer framing.
package snapshot
