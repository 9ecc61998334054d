// Package export keeps exported schedule results on disk, one directory per
// export with a meta.json describing it.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

const metaFile = "meta.json"

var ErrNotFound = errors.New("export not found")

type Store struct {
	dir     string
	maxSize int64         // max total size in bytes, 0 for unlimited
	ttl     time.Duration // entry TTL, 0 to keep forever
	logger  *slog.Logger
	now     func() time.Time
}

// Meta describes one export.
type Meta struct {
	ID          string    `json:"id"`
	Algorithm   string    `json:"algorithm"`
	Scheduler   string    `json:"scheduler"`
	Makespan    int       `json:"makespan"`
	NumJobs     int       `json:"num_jobs"`
	NumMachines int       `json:"num_machines"`
	Theme       string    `json:"theme,omitempty"`
	ReceivedAt  time.Time `json:"received_at"`
	StoredAt    time.Time `json:"stored_at"`
	Files       []string  `json:"files"`
}

// Entry is an export on disk with computed fields.
type Entry struct {
	Meta
	Size int64
	Path string
}

// File returns the path of a named file inside the entry.
func (e Entry) File(name string) string {
	return filepath.Join(e.Path, name)
}

func NewStore(dir string, maxSizeMB int, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		dir:     dir,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) entryDir(id string) string {
	return filepath.Join(s.dir, id)
}

// Save creates a new export holding one file produced by write. A failed
// write leaves nothing behind.
func (s *Store) Save(meta Meta, name string, write func(io.Writer) error) (Entry, error) {
	meta.ID = uuid.NewString()
	meta.StoredAt = s.now()
	meta.Files = nil

	dir := s.entryDir(meta.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Entry{}, fmt.Errorf("create export entry: %w", err)
	}
	if err := writeFile(filepath.Join(dir, name), write); err != nil {
		os.RemoveAll(dir)
		return Entry{}, err
	}
	meta.Files = append(meta.Files, name)
	if err := s.writeMeta(meta); err != nil {
		os.RemoveAll(dir)
		return Entry{}, err
	}
	s.logger.Info("export saved", "id", meta.ID, "file", name)
	return Entry{Meta: meta, Size: dirSize(dir), Path: dir}, nil
}

// Attach adds another file to an existing export.
func (s *Store) Attach(id, name string, write func(io.Writer) error) (string, error) {
	meta, err := s.ReadMeta(id)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.entryDir(id), name)
	if err := writeFile(path, write); err != nil {
		return "", err
	}
	meta.Files = append(meta.Files, name)
	if err := s.writeMeta(*meta); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) writeMeta(meta Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.entryDir(meta.ID), metaFile), data, 0o644)
}

// ReadMeta reads meta.json from an export.
func (s *Store) ReadMeta(id string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(s.entryDir(id), metaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode meta for %s: %w", id, err)
	}
	return &meta, nil
}

// List returns all exports, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var result []Entry
	for _, e := range dirents {
		if !e.IsDir() {
			continue
		}
		if _, err := uuid.Parse(e.Name()); err != nil {
			continue
		}
		meta, err := s.ReadMeta(e.Name())
		if err != nil {
			s.logger.Debug("skip export entry", "dir", e.Name(), "error", err)
			continue
		}
		path := s.entryDir(e.Name())
		result = append(result, Entry{Meta: *meta, Size: dirSize(path), Path: path})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StoredAt.After(result[j].StoredAt)
	})
	return result, nil
}

// Read returns the contents of a named file in an export.
func (s *Store) Read(id, name string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	data, err := os.ReadFile(filepath.Join(s.entryDir(id), filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, id, name)
	}
	return data, err
}

// Delete removes a single export.
func (s *Store) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	dir := s.entryDir(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return os.RemoveAll(dir)
}

// TotalSize returns the size of all exports in bytes.
func (s *Store) TotalSize() (int64, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total, nil
}

// Evict removes expired exports, then the oldest ones until the store fits
// its size cap. Whole exports are removed, never single files.
func (s *Store) Evict() (int, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	now := s.now()
	var totalSize int64
	remaining := entries[:0]
	for _, e := range entries {
		if s.ttl > 0 && now.Sub(e.StoredAt) > s.ttl {
			if err := os.RemoveAll(e.Path); err != nil {
				return removed, err
			}
			removed++
			continue
		}
		totalSize += e.Size
		remaining = append(remaining, e)
	}

	if s.maxSize > 0 && totalSize > s.maxSize {
		// remaining is newest first; drop from the tail.
		for i := len(remaining) - 1; i >= 0 && totalSize > s.maxSize; i-- {
			if err := os.RemoveAll(remaining[i].Path); err != nil {
				return removed, err
			}
			totalSize -= remaining[i].Size
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("exports evicted", "count", removed)
	}
	return removed, nil
}

func dirSize(path string) int64 {
	var size int64
	filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}
