// Package batch persists fetched API payloads so analysis can rerun offline.
// One batch is one JSON file per payload kind under the base directory; a
// fresh fetch overwrites in place and --reset clears the directory.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/data/fetch"
)

const (
	bundlesFile = "case_bundles.json"
	casesFile   = "civil_cases.json"
)

// Store reads and writes batch payload files.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

// NewStore ensures the batch directory exists and returns a store over it.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create batch directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// SaveBundles writes the fetched case bundles for this batch.
func (s *Store) SaveBundles(bundles []fetch.CaseBundle) error {
	return s.write(bundlesFile, bundles)
}

// LoadBundles reads the case bundles of the stored batch.
func (s *Store) LoadBundles() ([]fetch.CaseBundle, error) {
	var bundles []fetch.CaseBundle
	if err := s.read(bundlesFile, &bundles); err != nil {
		return nil, err
	}
	return bundles, nil
}

// SaveCases writes the civil-case listing that drove this batch.
func (s *Store) SaveCases(cases []model.CaseMeta) error {
	return s.write(casesFile, cases)
}

// LoadCases reads the stored civil-case listing.
func (s *Store) LoadCases() ([]model.CaseMeta, error) {
	var cases []model.CaseMeta
	if err := s.read(casesFile, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// RawBundles returns the stored bundle payload without decoding it, for the
// schema check that gates a run.
func (s *Store) RawBundles() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.baseDir, bundlesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", bundlesFile, err)
	}
	return data, nil
}

// HasBundles reports whether a stored batch exists.
func (s *Store) HasBundles() bool {
	_, err := os.Stat(filepath.Join(s.baseDir, bundlesFile))
	return err == nil
}

// Clear removes all stored payload files. Unknown files in the directory are
// left alone.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{bundlesFile, casesFile} {
		if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clear batch file %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) write(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(s.baseDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) read(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
