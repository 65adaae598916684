package snapshot

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"hash/crc64"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/zuhaib786/FerroDB/internal/storage/keyspace"
	"github.com/zuhaib786/FerroDB/pkg/crypto/adaptive"
)

const (
	filePrefix    = "snapshot-"
	fileExtension = ".ferr"

	DefaultRetentionCount = 5
	DefaultRetentionDays  = 7
)

var (
	ErrInvalidMagic     = errors.New("snapshot: invalid magic bytes")
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")
	ErrNoSnapshots      = errors.New("snapshot: no snapshots available")
)

// Config configures the snapshot manager.
type Config struct {
	Dir string

	RetentionCount int
	RetentionDays  int

	// Cipher, if set, wraps the encoded key records in an authenticated
	// envelope before the crc64 trailer is computed. Optional — a nil
	// Cipher produces a plaintext snapshot.
	Cipher adaptive.Cipher
}

func DefaultConfig(dir string) Config {
	return Config{
		Dir:            dir,
		RetentionCount: DefaultRetentionCount,
		RetentionDays:  DefaultRetentionDays,
	}
}

type Manager struct {
	cfg Config
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("snapshot: dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return nil, fmt.Errorf("snapshot: create dir: %w", err)
	}
	if cfg.RetentionCount == 0 {
		cfg.RetentionCount = DefaultRetentionCount
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = DefaultRetentionDays
	}
	return &Manager{cfg: cfg}, nil
}

// Info contains metadata about a snapshot.
type Info struct {
	ID        string
	KeyCount  int64
	CreatedAt int64
	Size      int64
	Path      string
}

// Create writes dumps to a new snapshot file using a temp-file-then-rename
// sequence so a crash mid-write never leaves a corrupt file at the final
// path.
func (m *Manager) Create(dumps []keyspace.KeyDump) (*Info, error) {
	now := time.Now()
	id := m.generateID(now)

	tempPath := filepath.Join(m.cfg.Dir, id+".tmp")
	file, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot: create temp file: %w", err)
	}
	defer os.Remove(tempPath)

	if err := m.encode(file, dumps); err != nil {
		file.Close()
		return nil, err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return nil, fmt.Errorf("snapshot: sync: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("snapshot: close: %w", err)
	}

	stat, err := os.Stat(tempPath)
	if err != nil {
		return nil, err
	}

	finalPath := filepath.Join(m.cfg.Dir, id+fileExtension)
	if err := os.Rename(tempPath, finalPath); err != nil {
		return nil, fmt.Errorf("snapshot: rename: %w", err)
	}

	return &Info{
		ID:        id,
		KeyCount:  int64(len(dumps)),
		CreatedAt: now.UnixMilli(),
		Size:      stat.Size(),
		Path:      finalPath,
	}, nil
}

// encode writes the full FERRO01 body: magic, key-count, per-key records,
// crc64 trailer, END magic. The key payload (everything between the
// key-count and the trailer) is optionally encrypted as a single envelope.
func (m *Manager) encode(w io.Writer, dumps []keyspace.KeyDump) error {
	cw := &crcWriter{w: w}

	if _, err := cw.Write([]byte(magicHeader)); err != nil {
		return err
	}
	if err := writeU32(cw, uint32(len(dumps))); err != nil {
		return err
	}

	if m.cfg.Cipher == nil {
		for _, d := range dumps {
			if err := encodeKey(cw, d); err != nil {
				return fmt.Errorf("snapshot: encode key %q: %w", d.Key, err)
			}
		}
	} else {
		var body bytes.Buffer
		for _, d := range dumps {
			if err := encodeKey(&body, d); err != nil {
				return fmt.Errorf("snapshot: encode key %q: %w", d.Key, err)
			}
		}
		sealed, err := m.cfg.Cipher.Encrypt(body.Bytes(), []byte(magicHeader))
		if err != nil {
			return fmt.Errorf("snapshot: encrypt: %w", err)
		}
		if err := writeBytes(cw, sealed); err != nil {
			return err
		}
	}

	if _, err := w.Write(uint64Bytes(cw.crc)); err != nil {
		return fmt.Errorf("snapshot: write checksum: %w", err)
	}
	if _, err := w.Write([]byte(magicFooter)); err != nil {
		return fmt.Errorf("snapshot: write footer: %w", err)
	}
	return nil
}

func uint64Bytes(n uint64) []byte {
	var buf bytes.Buffer
	_ = writeU64(&buf, n)
	return buf.Bytes()
}

// Load loads key dumps from the most recent valid snapshot, falling back to
// older snapshots if the newest is corrupt.
func (m *Manager) Load() ([]keyspace.KeyDump, *Info, error) {
	infos, err := m.List()
	if err != nil {
		return nil, nil, err
	}
	if len(infos) == 0 {
		return nil, nil, ErrNoSnapshots
	}

	for i := len(infos) - 1; i >= 0; i-- {
		dumps, info, err := m.loadFile(infos[i].Path)
		if err == nil {
			return dumps, info, nil
		}
		if errors.Is(err, ErrChecksumMismatch) || errors.Is(err, ErrInvalidMagic) {
			continue
		}
		return nil, nil, err
	}
	return nil, nil, ErrNoSnapshots
}

func (m *Manager) loadFile(path string) ([]keyspace.KeyDump, *Info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) < len(magicHeader)+4+8+len(magicFooter) {
		return nil, nil, ErrInvalidMagic
	}

	footer := raw[len(raw)-len(magicFooter):]
	if string(footer) != magicFooter {
		return nil, nil, ErrInvalidMagic
	}
	trailerStart := len(raw) - len(magicFooter) - 8
	body := raw[:trailerStart]
	wantCRC := crc64.Checksum(body, crcTable)

	br := bufio.NewReader(bytes.NewReader(body))

	magic := make([]byte, len(magicHeader))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, nil, err
	}
	if string(magic) != magicHeader {
		return nil, nil, ErrInvalidMagic
	}

	gotCRC, err := readU64(bytes.NewReader(raw[trailerStart : trailerStart+8]))
	if err != nil {
		return nil, nil, err
	}
	if gotCRC != wantCRC {
		return nil, nil, ErrChecksumMismatch
	}

	keyCount, err := readU32(br)
	if err != nil {
		return nil, nil, err
	}

	var recordsReader io.Reader = br
	if m.cfg.Cipher != nil {
		sealed, err := readBytes(br)
		if err != nil {
			return nil, nil, err
		}
		plain, err := m.cfg.Cipher.Decrypt(sealed, []byte(magicHeader))
		if err != nil {
			return nil, nil, fmt.Errorf("snapshot: decrypt: %w", err)
		}
		recordsReader = bytes.NewReader(plain)
	}

	dumps := make([]keyspace.KeyDump, 0, keyCount)
	for i := uint32(0); i < keyCount; i++ {
		d, err := decodeKey(recordsReader)
		if err != nil {
			return nil, nil, fmt.Errorf("snapshot: decode key %d: %w", i, err)
		}
		dumps = append(dumps, d)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	info := &Info{
		ID:        strings.TrimSuffix(filepath.Base(path), fileExtension),
		KeyCount:  int64(keyCount),
		CreatedAt: stat.ModTime().UnixMilli(),
		Size:      stat.Size(),
		Path:      path,
	}
	return dumps, info, nil
}

// List lists snapshot files in ascending (oldest-first) order by filename,
// which sorts chronologically because generateID timestamps lexically.
func (m *Manager) List() ([]*Info, error) {
	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileExtension) {
			paths = append(paths, filepath.Join(m.cfg.Dir, name))
		}
	}
	sort.Strings(paths)

	infos := make([]*Info, 0, len(paths))
	for _, p := range paths {
		stat, err := os.Stat(p)
		if err != nil {
			continue
		}
		infos = append(infos, &Info{
			ID:   strings.TrimSuffix(filepath.Base(p), fileExtension),
			Path: p,
			Size: stat.Size(),
		})
	}
	return infos, nil
}

// Prune applies the retention policy, keeping the newest RetentionCount
// snapshots plus anything newer than RetentionDays, and always keeping at
// least the single newest snapshot.
func (m *Manager) Prune() error {
	infos, err := m.List()
	if err != nil {
		return err
	}
	if len(infos) <= 1 {
		return nil
	}

	keep := make(map[string]struct{}, len(infos))

	if m.cfg.RetentionCount > 0 {
		start := len(infos) - m.cfg.RetentionCount
		if start < 0 {
			start = 0
		}
		for _, info := range infos[start:] {
			keep[info.Path] = struct{}{}
		}
	}

	if m.cfg.RetentionDays > 0 {
		cutoff := time.Now().Add(-time.Duration(m.cfg.RetentionDays) * 24 * time.Hour)
		for _, info := range infos {
			st, err := os.Stat(info.Path)
			if err != nil {
				continue
			}
			if st.ModTime().After(cutoff) {
				keep[info.Path] = struct{}{}
			}
		}
	}

	keep[infos[len(infos)-1].Path] = struct{}{}

	for _, info := range infos {
		if _, ok := keep[info.Path]; ok {
			continue
		}
		_ = os.Remove(info.Path)
	}
	return nil
}

func (m *Manager) generateID(t time.Time) string {
	ts := t.Format("20060102150405")
	seq := 1

	entries, _ := os.ReadDir(m.cfg.Dir)
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, filePrefix+ts+"-") || !strings.HasSuffix(name, fileExtension) {
			continue
		}
		seq++
	}

	return fmt.Sprintf("%s%s-%04d", filePrefix, ts, seq)
}
