package snapshot

import (
	"encoding/binary"
	"fmt"
	"hash/crc64"
	"io"
	"math"

	"github.com/zuhaib786/FerroDB/internal/storage/keyspace"
)

const (
	magicHeader = "FERRO01"
	magicFooter = "END"
)

var crcTable = crc64.MakeTable(crc64.ISO)

const (
	tagString    byte = 1
	tagList      byte = 2
	tagSet       byte = 3
	tagSortedSet byte = 4
)

func kindToTag(k keyspace.Kind) (byte, error) {
	switch k {
	case keyspace.KindString:
		return tagString, nil
	case keyspace.KindList:
		return tagList, nil
	case keyspace.KindSet:
		return tagSet, nil
	case keyspace.KindSortedSet:
		return tagSortedSet, nil
	default:
		return 0, fmt.Errorf("snapshot: unknown value kind %v", k)
	}
}

func tagToKind(tag byte) (keyspace.Kind, error) {
	switch tag {
	case tagString:
		return keyspace.KindString, nil
	case tagList:
		return keyspace.KindList, nil
	case tagSet:
		return keyspace.KindSet, nil
	case tagSortedSet:
		return keyspace.KindSortedSet, nil
	default:
		return 0, fmt.Errorf("snapshot: unknown type tag %d", tag)
	}
}

// crcWriter wraps a writer, feeding everything written through it into a
// running CRC-64 (ISO) so the trailer can be computed in one pass without
// buffering the whole payload in memory.
type crcWriter struct {
	w   io.Writer
	crc uint64
}

func (c *crcWriter) Write(p []byte) (int, error) {
	c.crc = crc64.Update(c.crc, crcTable, p)
	return c.w.Write(p)
}

func writeU32(w io.Writer, n uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	_, err := w.Write(b[:])
	return err
}

func writeU64(w io.Writer, n uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	_, err := w.Write(b[:])
	return err
}

func writeBytes(w io.Writer, b []byte) error {
	if err := writeU32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func writeFloat64(w io.Writer, f float64) error {
	return writeU64(w, math.Float64bits(f))
}

// encodeKey writes one KeyDump in the per-key record format:
// [tag:u8][key-len:u32][key][expires-at-ms:u64][payload].
func encodeKey(w io.Writer, d keyspace.KeyDump) error {
	tag, err := kindToTag(d.Kind)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte{tag}); err != nil {
		return err
	}
	if err := writeBytes(w, []byte(d.Key)); err != nil {
		return err
	}
	if err := writeU64(w, uint64(d.ExpiresAt)); err != nil {
		return err
	}

	switch d.Kind {
	case keyspace.KindString:
		return writeBytes(w, []byte(d.Str))
	case keyspace.KindList:
		if err := writeU32(w, uint32(len(d.List))); err != nil {
			return err
		}
		for _, item := range d.List {
			if err := writeBytes(w, []byte(item)); err != nil {
				return err
			}
		}
		return nil
	case keyspace.KindSet:
		if err := writeU32(w, uint32(len(d.Set))); err != nil {
			return err
		}
		for _, m := range d.Set {
			if err := writeBytes(w, []byte(m)); err != nil {
				return err
			}
		}
		return nil
	case keyspace.KindSortedSet:
		if err := writeU32(w, uint32(len(d.ZSet))); err != nil {
			return err
		}
		for _, m := range d.ZSet {
			if err := writeBytes(w, []byte(m.Member)); err != nil {
				return err
			}
			if err := writeFloat64(w, m.Score); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("snapshot: unknown kind %v", d.Kind)
	}
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readU64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func readBytes(r io.Reader) ([]byte, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readFloat64(r io.Reader) (float64, error) {
	bits, err := readU64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func decodeKey(r io.Reader) (keyspace.KeyDump, error) {
	var tagBuf [1]byte
	if _, err := io.ReadFull(r, tagBuf[:]); err != nil {
		return keyspace.KeyDump{}, err
	}
	kind, err := tagToKind(tagBuf[0])
	if err != nil {
		return keyspace.KeyDump{}, err
	}

	keyBytes, err := readBytes(r)
	if err != nil {
		return keyspace.KeyDump{}, err
	}
	expiresAt, err := readU64(r)
	if err != nil {
		return keyspace.KeyDump{}, err
	}

	d := keyspace.KeyDump{Key: string(keyBytes), Kind: kind, ExpiresAt: int64(expiresAt)}

	switch kind {
	case keyspace.KindString:
		v, err := readBytes(r)
		if err != nil {
			return keyspace.KeyDump{}, err
		}
		d.Str = string(v)
	case keyspace.KindList:
		n, err := readU32(r)
		if err != nil {
			return keyspace.KeyDump{}, err
		}
		d.List = make([]string, n)
		for i := range d.List {
			v, err := readBytes(r)
			if err != nil {
				return keyspace.KeyDump{}, err
			}
			d.List[i] = string(v)
		}
	case keyspace.KindSet:
		n, err := readU32(r)
		if err != nil {
			return keyspace.KeyDump{}, err
		}
		d.Set = make([]string, n)
		for i := range d.Set {
			v, err := readBytes(r)
			if err != nil {
				return keyspace.KeyDump{}, err
			}
			d.Set[i] = string(v)
		}
	case keyspace.KindSortedSet:
		n, err := readU32(r)
		if err != nil {
			return keyspace.KeyDump{}, err
		}
		d.ZSet = make([]keyspace.ZRankMember, n)
		for i := range d.ZSet {
			v, err := readBytes(r)
			if err != nil {
				return keyspace.KeyDump{}, err
			}
			score, err := readFloat64(r)
			if err != nil {
				return keyspace.KeyDump{}, err
			}
			d.ZSet[i] = keyspace.ZRankMember{Member: string(v), Score: score}
		}
	}
	return d, nil
}
