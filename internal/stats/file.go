package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"
)

const statsFilePerm = 0o644

// FileStore persists usage counters in a JSON file. Safe for concurrent use
// within one process; the file is rewritten atomically on every record.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed recorder at path. The file is created on
// first record; a missing file reads as zero usage.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Record implements Recorder.
func (f *FileStore) Record(_ context.Context, elapsed time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	usage, err := f.load()
	if err != nil {
		return err
	}
	usage.TotalAnalysisCount++
	usage.CPUTimeSeconds += elapsed.Seconds()
	usage.LastUpdated = time.Now().UTC()
	return f.store(usage)
}

// Snapshot implements Recorder.
func (f *FileStore) Snapshot(_ context.Context) (Usage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileStore) load() (Usage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Usage{}, nil
	}
	if err != nil {
		return Usage{}, fmt.Errorf("read stats file %s: %w", f.path, err)
	}
	var usage Usage
	if err := json.Unmarshal(data, &usage); err != nil {
		// A corrupt file restarts the counters rather than blocking analyses.
		return Usage{}, nil
	}
	return usage, nil
}

func (f *FileStore) store(usage Usage) error {
	data, err := json.MarshalIndent(usage, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, statsFilePerm); err != nil {
		return fmt.Errorf("write stats file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace stats file %s: %w", f.path, err)
	}
	return nil
}
