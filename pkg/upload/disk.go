package upload

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DiskStore stores uploads on the local filesystem, one data file and
// one JSON metadata sidecar per temp ID.
type DiskStore struct {
	dir     string
	maxSize int64
	expiry  time.Duration

	mu    sync.Mutex
	files map[string]*diskMeta
}

type diskMeta struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDiskStore creates a DiskStore rooted at dir, creating it if
// needed. maxSize caps individual files in bytes; 0 means no limit.
func NewDiskStore(dir string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &DiskStore{
		dir:     dir,
		maxSize: maxSize,
		expiry:  time.Hour,
		files:   make(map[string]*diskMeta),
	}, nil
}

// WithExpiry sets how long an unclaimed file stays claimable. Claiming
// a file older than the expiry returns ErrExpired; 0 disables the
// check.
func (s *DiskStore) WithExpiry(d time.Duration) *DiskStore {
	s.expiry = d
	return s
}

// Save stores the uploaded file and returns its temp ID.
func (s *DiskStore) Save(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.maxSize > 0 && size > s.maxSize {
		return "", ErrTooLarge
	}

	tempID := uuid.NewString()
	path := filepath.Join(s.dir, tempID)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// The +1 lets us tell "exactly at the limit" from "over it".
	reader := r
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1)
	}

	written, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(path)
		return "", ErrTooLarge
	}

	meta := &diskMeta{
		Filename:    filename,
		ContentType: contentType,
		Size:        written,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.files[tempID] = meta
	s.mu.Unlock()

	// Sidecar metadata survives process restarts.
	if err := s.writeMeta(tempID, meta); err != nil {
		return "", err
	}

	return tempID, nil
}

// Claim retrieves and consumes a temp file. The returned File's Reader
// deletes the temp file when closed.
func (s *DiskStore) Claim(ctx context.Context, tempID string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	meta, ok := s.files[tempID]
	if ok {
		delete(s.files, tempID)
	}
	s.mu.Unlock()

	if !ok {
		var err error
		meta, err = s.readMeta(tempID)
		if err != nil {
			return nil, ErrNotFound
		}
	}

	path := filepath.Join(s.dir, tempID)

	if s.expiry > 0 && time.Since(meta.CreatedAt) > s.expiry {
		os.Remove(path)
		os.Remove(s.metaPath(tempID))
		return nil, ErrExpired
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &File{
		ID:          tempID,
		Filename:    meta.Filename,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		Path:        path,
		Reader:      &deleteOnCloseReader{File: f, path: path, metaPath: s.metaPath(tempID)},
	}, nil
}

// Cleanup removes temp files older than maxAge, including orphans left
// on disk by a previous process.
func (s *DiskStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	for tempID, meta := range s.files {
		if meta.CreatedAt.Before(cutoff) {
			delete(s.files, tempID)
			os.Remove(filepath.Join(s.dir, tempID))
			os.Remove(s.metaPath(tempID))
		}
	}
	s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}

	return nil
}

func (s *DiskStore) metaPath(tempID string) string {
	return filepath.Join(s.dir, tempID+".meta")
}

func (s *DiskStore) writeMeta(tempID string, meta *diskMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(s.metaPath(tempID), data, 0o644)
}

func (s *DiskStore) readMeta(tempID string) (*diskMeta, error) {
	data, err := os.ReadFile(s.metaPath(tempID))
	if err != nil {
		return nil, err
	}
	var meta diskMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// deleteOnCloseReader removes the temp file and its sidecar once the
// claimed contents have been read.
type deleteOnCloseReader struct {
	*os.File
	path     string
	metaPath string
}

func (r *deleteOnCloseReader) Close() error {
	err := r.File.Close()
	os.Remove(r.path)
	os.Remove(r.metaPath)
	return err
}
