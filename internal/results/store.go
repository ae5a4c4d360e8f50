package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"backlog-mcp/internal/simulation"
)

// Store persists simulation results as JSON files under a results
// directory, one file per run.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the result to a new run file and returns its path. The write
// goes through a temp file and rename so a crash never leaves a truncated
// result behind.
func (s *Store) Save(runID string, result *simulation.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	path := filepath.Join(s.dir, runID+".json")
	tmpPath := path + ".tmp"

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp result file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename result file: %w", err)
	}

	log.Info().Str("run", runID).Str("path", path).Int("days", len(result.Snapshots)).Msg("Simulation result saved")
	return path, nil
}

// Load reads a previously saved run back from disk.
func (s *Store) Load(runID string) (*simulation.Result, error) {
	path := filepath.Join(s.dir, runID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result %s: %w", runID, err)
	}
	var result simulation.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result %s: %w", runID, err)
	}
	return &result, nil
}

// List returns the stored run IDs, newest first by run ID (IDs embed a
// timestamp, so lexical order is chronological).
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// NewRunID generates a sortable run identifier from the given clock and
// seed.
func NewRunID(now time.Time, seed int64) string {
	return fmt.Sprintf("run-%s-%d", now.UTC().Format("20060102-150405"), seed)
}
