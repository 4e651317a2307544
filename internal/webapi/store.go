package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/consilium-ai/consilium/internal/models"
)

// ErrRunNotFound is returned when a run ID does not match any stored run.
var ErrRunNotFound = errors.New("run not found")

// StoredRun pairs a run record with its synthesized recommendation; this is
// the on-disk JSON document.
type StoredRun struct {
	Run            *models.OrchestrationRun `json:"run"`
	Recommendation *models.Recommendation   `json:"recommendation"`
}

// RunStore provides access to analysis run history.
type RunStore interface {
	// SaveRun persists one completed run.
	SaveRun(sr *StoredRun) error
	// ListRuns returns all runs, sorted by the given field and order.
	ListRuns(sortField, order string) ([]RunSummary, error)
	// GetRun returns a single run with full pillar details.
	GetRun(id string) (*RunDetail, error)
	// Summary returns aggregate metrics across all runs.
	Summary() (*SummaryResponse, error)
}

// FileStore keeps runs in memory and, when a directory is configured,
// mirrors each run to <run_id>.json for persistence across restarts.
type FileStore struct {
	dir string

	mu     sync.RWMutex
	runs   map[string]*StoredRun
	loaded bool
}

// NewFileStore creates a FileStore over dir. An empty dir keeps runs in
// memory only.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:  dir,
		runs: make(map[string]*StoredRun),
	}
}

// load reads all run JSON files from the configured directory.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.runs = make(map[string]*StoredRun)

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.dir, e.Name()))
		if err != nil {
			continue
		}
		var sr StoredRun
		if err := json.Unmarshal(data, &sr); err != nil || sr.Run == nil {
			// Unreadable files are skipped, not fatal.
			continue
		}
		if sr.Run.RunID == "" {
			sr.Run.RunID = strings.TrimSuffix(e.Name(), ".json")
		}
		fs.runs[sr.Run.RunID] = &sr
	}

	fs.loaded = true
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh reload of all run files from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

// SaveRun persists one completed run, in memory and (when configured) on
// disk.
func (fs *FileStore) SaveRun(sr *StoredRun) error {
	if sr == nil || sr.Run == nil || sr.Run.RunID == "" {
		return errors.New("stored run needs a run id")
	}
	if err := fs.ensureLoaded(); err != nil {
		return err
	}

	if fs.dir != "" {
		if err := os.MkdirAll(fs.dir, 0o755); err != nil {
			return fmt.Errorf("creating runs dir: %w", err)
		}
		data, err := json.MarshalIndent(sr, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(fs.dir, sr.Run.RunID+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing run file: %w", err)
		}
	}

	fs.mu.Lock()
	fs.runs[sr.Run.RunID] = sr
	fs.mu.Unlock()
	return nil
}

func storedToSummary(sr *StoredRun) RunSummary {
	s := RunSummary{
		ID:        sr.Run.RunID,
		Status:    sr.Run.Status,
		Succeeded: sr.Run.Succeeded,
		Total:     sr.Run.Total,
		Duration:  sr.Run.FinishedAt.Sub(sr.Run.StartedAt).Seconds(),
		Timestamp: sr.Run.StartedAt,
	}
	if sr.Recommendation != nil {
		s.Category = sr.Recommendation.Category
		s.OverallScore = sr.Recommendation.OverallScore
		s.Confidence = sr.Recommendation.Confidence
	}
	return s
}

// ListRuns returns all runs sorted by the given field and order.
func (fs *FileStore) ListRuns(sortField, order string) ([]RunSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	runs := make([]RunSummary, 0, len(fs.runs))
	for _, sr := range fs.runs {
		runs = append(runs, storedToSummary(sr))
	}

	sortRuns(runs, sortField, order)
	return runs, nil
}

// GetRun returns a single run with full pillar details.
func (fs *FileStore) GetRun(id string) (*RunDetail, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	sr, ok := fs.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return &RunDetail{
		RunSummary:     storedToSummary(sr),
		Run:            sr.Run,
		Recommendation: sr.Recommendation,
	}, nil
}

// Summary returns aggregate metrics across all runs.
func (fs *FileStore) Summary() (*SummaryResponse, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	resp := &SummaryResponse{Categories: map[string]int{}}
	if len(fs.runs) == 0 {
		return resp, nil
	}

	totalScore := 0.0
	totalConfidence := 0.0
	for _, sr := range fs.runs {
		resp.TotalRuns++
		if sr.Recommendation == nil {
			continue
		}
		totalScore += sr.Recommendation.OverallScore
		totalConfidence += sr.Recommendation.Confidence
		resp.Categories[string(sr.Recommendation.Category)]++
		if sr.Recommendation.Degraded() {
			resp.DegradedRuns++
		}
	}
	resp.AvgScore = totalScore / float64(resp.TotalRuns)
	resp.AvgConfidence = totalConfidence / float64(resp.TotalRuns)
	return resp, nil
}

func sortRuns(runs []RunSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "score":
			return runs[i].OverallScore < runs[j].OverallScore
		case "confidence":
			return runs[i].Confidence < runs[j].Confidence
		case "duration":
			return runs[i].Duration < runs[j].Duration
		default: // "timestamp" or empty
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
	}

	if order == "asc" {
		sort.Slice(runs, less)
	} else {
		sort.Slice(runs, func(i, j int) bool { return less(j, i) })
	}
}

// Ensure FileStore satisfies RunStore.
var _ RunStore = (*FileStore)(nil)
