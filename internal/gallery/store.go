package gallery

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ImageRecord is the in-memory metadata entry for a saved image. It is
// created when save-image is called, before the download is attempted,
// so a record may exist without a file on disk. Records are never
// deleted; the file and the record can drift apart independently.
type ImageRecord struct {
	// ID is a generated identifier, unique for the process lifetime.
	ID string `json:"id"`

	// Prompt is the text the image was generated from.
	Prompt string `json:"prompt"`

	// SourceURL is the remote URL the image was downloaded from.
	SourceURL string `json:"url"`

	// CreatedAt is the record creation time.
	CreatedAt time.Time `json:"created_at"`

	// CustomDirectory, when non-empty, overrides the default save
	// directory. Always absolute.
	CustomDirectory string `json:"custom_directory,omitempty"`

	// CustomFilename, when non-empty, is the filename stem; ".png" is
	// appended on disk.
	CustomFilename string `json:"custom_filename,omitempty"`

	// AverageColor is the "#rrggbb" average color of the saved file.
	// Empty when the download never succeeded.
	AverageColor string `json:"average_color,omitempty"`
}

// Filename returns the on-disk filename for the record.
func (r *ImageRecord) Filename() string {
	if r.CustomFilename != "" {
		return r.CustomFilename + ".png"
	}
	return r.ID + ".png"
}

// Store is the process-wide table of ImageRecords. It is safe for
// concurrent use; the transport may dispatch handlers concurrently.
// Records handed out by Add, Get, and List are snapshot copies that
// never alias the table's own entries, so callers can read them without
// holding any lock.
//
// Records are kept in insertion order so listings are stable.
type Store struct {
	mu         sync.RWMutex
	defaultDir string
	records    map[string]*ImageRecord
	order      []string
}

// NewStore creates an empty Store whose default directory is dir.
// The directory is resolved to an absolute path so file:// references
// stay valid regardless of the working directory.
func NewStore(dir string) *Store {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Store{
		defaultDir: dir,
		records:    make(map[string]*ImageRecord),
	}
}

// DefaultDir returns the store's default save directory.
func (s *Store) DefaultDir() string {
	return s.defaultDir
}

// Add creates a record with a fresh unique id and registers it. The
// returned record is the caller's own copy.
// customDir must be empty or an absolute path that already exists.
func (s *Store) Add(prompt, sourceURL, customDir, customFilename string) *ImageRecord {
	rec := ImageRecord{
		ID:              uuid.NewString(),
		Prompt:          prompt,
		SourceURL:       sourceURL,
		CreatedAt:       time.Now(),
		CustomDirectory: customDir,
		CustomFilename:  customFilename,
	}

	stored := rec
	s.mu.Lock()
	s.records[stored.ID] = &stored
	s.order = append(s.order, stored.ID)
	s.mu.Unlock()

	return &rec
}

// Get looks up a record by id and returns a snapshot of it.
func (s *Store) Get(id string) (*ImageRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}

// List returns snapshots of all records in insertion order.
func (s *Store) List() []*ImageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ImageRecord, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.records[id]
		out = append(out, &cp)
	}
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Path computes the expected on-disk location for a record from its
// directory and filename fields. The file may or may not exist.
func (s *Store) Path(rec *ImageRecord) string {
	dir := s.defaultDir
	if rec.CustomDirectory != "" {
		dir = rec.CustomDirectory
	}
	return filepath.Join(dir, rec.Filename())
}

// SetAverageColor records the average color for an already-saved image.
func (s *Store) SetAverageColor(id, hex string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[id]; ok {
		rec.AverageColor = hex
	}
}
