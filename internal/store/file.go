package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore persists each collection as a single JSON snapshot at
// <dir>/<collection>/index.json. Every mutation re-reads the latest
// snapshot, applies the change and replaces the whole file; a
// per-collection lock is held across that read-merge-write cycle so
// concurrent writers within the process cannot lose updates. The file
// is replaced atomically (write to a temp file, then rename), so a
// failed write leaves the previous snapshot authoritative.
type FileStore struct {
	dir    string
	logger *zap.Logger
	cols   map[string]*fileCollection
}

// NewFileStore opens (or creates) the data directory and an empty
// snapshot for every collection that does not have one yet.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{
		dir:    dir,
		logger: logger,
		cols:   make(map[string]*fileCollection, len(Names)),
	}

	for _, name := range Names {
		colDir := filepath.Join(dir, name)
		if err := os.MkdirAll(colDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create collection dir %s: %w", name, err)
		}

		col := &fileCollection{
			name:   name,
			path:   filepath.Join(colDir, "index.json"),
			logger: logger,
		}
		if _, err := os.Stat(col.path); os.IsNotExist(err) {
			if err := col.save(nil); err != nil {
				return nil, err
			}
			logger.Info("Created empty collection snapshot", zap.String("collection", name))
		}
		s.cols[name] = col
	}

	logger.Info("File store ready", zap.String("dir", dir))
	return s, nil
}

func (s *FileStore) Collection(name string) (Collection, error) {
	col, ok := s.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return col, nil
}

func (s *FileStore) Close() error {
	return nil
}

type fileCollection struct {
	name   string
	path   string
	mu     sync.RWMutex
	logger *zap.Logger
}

func (c *fileCollection) Name() string {
	return c.name
}

func (c *fileCollection) load() ([]Record, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", c.name, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", c.name, err)
	}
	return records, nil
}

func (c *fileCollection) save(records []Record) error {
	if records == nil {
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", c.name, err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", c.name, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", c.name, err)
	}
	return nil
}

func (c *fileCollection) GetAll(ctx context.Context) ([]Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load()
}

func (c *fileCollection) GetByID(ctx context.Context, id string) (Record, error) {
	records, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (c *fileCollection) GetBy(ctx context.Context, field, value string) ([]Record, error) {
	records, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]Record, 0)
	for _, rec := range records {
		if rec.Matches(field, value) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (c *fileCollection) Add(ctx context.Context, rec Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return nil, err
	}

	stored := rec.Clone()
	if stored.ID() == "" {
		stored["id"] = uuid.New().String()
	}
	stored["seq"] = nextSeq(records)

	records = append(records, stored)
	if err := c.save(records); err != nil {
		return nil, err
	}
	return stored, nil
}

func (c *fileCollection) Update(ctx context.Context, id string, patch Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		if rec.ID() != id {
			continue
		}

		merged := rec.Clone()
		for k, v := range patch {
			if k == "id" || k == "seq" {
				continue
			}
			merged[k] = v
		}

		records[i] = merged
		if err := c.save(records); err != nil {
			return nil, err
		}
		return merged, nil
	}

	return nil, ErrRecordNotFound
}

func (c *fileCollection) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}

	filtered := records[:0]
	for _, rec := range records {
		if rec.ID() != id {
			filtered = append(filtered, rec)
		}
	}
	return c.save(filtered)
}

func (c *fileCollection) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(nil)
}

// nextSeq assigns the ordering key. Seq is derived from the persisted
// snapshot under the write lock, so it is monotone across restarts and
// collision-free within a collection.
func nextSeq(records []Record) int64 {
	var max int64
	for _, rec := range records {
		if s := rec.Seq(); s > max {
			max = s
		}
	}
	return max + 1
}
