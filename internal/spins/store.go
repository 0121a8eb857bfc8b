package spins

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/zootechx/spinwheel-backend/internal/models"
)

// Store persists spin records as one ordered JSON array in a single file.
// The file is rewritten wholesale on every save; there are no partial
// updates. Throughput is promotional-kiosk low, so whole-file
// read-modify-write is acceptable here.
type Store struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex // guards file I/O; readers and the writer must not interleave
}

// NewStore creates a flat-file store at path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// LoadAll returns every persisted record in storage order. A missing,
// unreadable, or corrupt file is treated as empty and reinitialized to an
// empty collection; LoadAll never fails the caller.
func (s *Store) LoadAll() []models.SpinRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// SaveAll overwrites the file with the full collection.
func (s *Store) SaveAll(records []models.SpinRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(records)
}

// FindByEmail returns the first record matching email exactly
// (case-sensitive). Email is expected unique; taking the first match
// tolerates out-of-band duplicates.
func (s *Store) FindByEmail(email string) (*models.SpinRecord, bool) {
	for _, rec := range s.LoadAll() {
		if rec.Email == email {
			r := rec
			return &r, true
		}
	}
	return nil, false
}

// NextID returns max(ids)+1, or 1 for an empty collection. IDs are assigned
// once at creation and never reused, even if earlier records are removed
// out-of-band.
func NextID(records []models.SpinRecord) int {
	max := 0
	for _, rec := range records {
		if rec.ID > max {
			max = rec.ID
		}
	}
	return max + 1
}

func (s *Store) loadLocked() []models.SpinRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("spin store unreadable, reinitializing", zap.String("path", s.path), zap.Error(err))
		}
		_ = s.saveLocked(nil)
		return nil
	}

	var records []models.SpinRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("spin store corrupt, reinitializing", zap.String("path", s.path), zap.Error(err))
		_ = s.saveLocked(nil)
		return nil
	}
	return records
}

func (s *Store) saveLocked(records []models.SpinRecord) error {
	if records == nil {
		records = []models.SpinRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode spin records: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write spin store: %w", err)
	}
	return nil
}
