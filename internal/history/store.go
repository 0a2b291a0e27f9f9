package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ppiankov/truthlens/internal/model"
)

// Store persists analysis records to a JSON file, newest first.
// Records live until an explicit Clear. The serialized list has no
// schema version; loading tolerates entries written by an older shape
// by defaulting missing fields.
type Store struct {
	mu      sync.Mutex
	path    string
	max     int
	records []model.AnalysisRecord
}

// NewStore opens (or creates) the history file at path. max bounds the
// number of retained records; zero or negative means unbounded.
func NewStore(path string, max int) (*Store, error) {
	s := &Store{path: path, max: max}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Add creates a record for the given input/result pair, persists it and
// returns it.
func (s *Store) Add(input string, result model.AnalysisResult) (model.AnalysisRecord, error) {
	now := time.Now().UTC()
	record := model.AnalysisRecord{
		ID:        recordID(input, now),
		Input:     input,
		Result:    result,
		CreatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]model.AnalysisRecord{record}, s.records...)
	if s.max > 0 && len(s.records) > s.max {
		s.records = s.records[:s.max]
	}

	if err := s.save(); err != nil {
		return model.AnalysisRecord{}, err
	}
	return record, nil
}

// List returns a copy of all records, newest first.
func (s *Store) List() []model.AnalysisRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.AnalysisRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Clear removes every record and persists the empty list.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return s.save()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read history: %w", err)
	}

	var records []model.AnalysisRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// A corrupt or incompatible file starts the history fresh
		// rather than blocking startup.
		return nil
	}

	for i := range records {
		sanitize(&records[i])
	}
	s.records = records
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

// sanitize fills fields that an older serialized shape may lack, so
// callers never observe nulls.
func sanitize(record *model.AnalysisRecord) {
	result := &record.Result
	if result.Label == "" {
		result.Label = model.LabelBiased
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	if result.RedFlags == nil {
		result.RedFlags = []string{}
	}
	if result.CredibilityIndicators == nil {
		result.CredibilityIndicators = []string{}
	}
	if record.ID == "" {
		record.ID = recordID(record.Input, record.CreatedAt)
	}
}

// recordID derives an opaque id from the input and creation time.
func recordID(input string, t time.Time) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", input, t.UnixNano())))
	return hex.EncodeToString(hash[:8])
}
