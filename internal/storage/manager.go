package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// DirName is the per-project storage directory
const DirName = ".readmegen"

var (
	// ErrRunNotFound is returned when no run matches an ID
	ErrRunNotFound = errors.New("run not found")

	// ErrAmbiguousID is returned when an ID prefix matches several runs
	ErrAmbiguousID = errors.New("ambiguous run id")
)

// Manager handles all persistence operations for the .readmegen directory
type Manager struct {
	fs      afero.Fs
	rootDir string
	now     func() time.Time

	mu    sync.RWMutex
	index *RunIndex
}

// NewManager creates a storage manager rooted at projectRoot/.readmegen on fs
func NewManager(fs afero.Fs, projectRoot string) (*Manager, error) {
	m := &Manager{
		fs:      fs,
		rootDir: filepath.Join(projectRoot, DirName),
		now:     time.Now,
	}

	if err := m.fs.MkdirAll(m.runsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", m.runsDir(), err)
	}
	if err := m.loadIndex(); err != nil {
		return nil, err
	}
	return m, nil
}

// GetRootDir returns the .readmegen directory path
func (m *Manager) GetRootDir() string {
	return m.rootDir
}

func (m *Manager) runsDir() string {
	return filepath.Join(m.rootDir, "runs")
}

func (m *Manager) runPath(id string) string {
	return filepath.Join(m.runsDir(), id+".json")
}

func (m *Manager) indexPath() string {
	return filepath.Join(m.runsDir(), "index.json")
}

func (m *Manager) loadIndex() error {
	m.index = &RunIndex{}
	data, err := afero.ReadFile(m.fs, m.indexPath())
	if err != nil {
		return nil // no runs yet
	}
	if err := json.Unmarshal(data, m.index); err != nil {
		return fmt.Errorf("failed to parse run index: %w", err)
	}
	return nil
}

// Save persists run, assigning an ID and creation time when missing.
// Saving an existing ID replaces it.
func (m *Manager) Save(run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = m.now()
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	if err := afero.WriteFile(m.fs, m.runPath(run.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write run %s: %w", run.ID, err)
	}

	meta := run.metadata()
	replaced := false
	for i := range m.index.Runs {
		if m.index.Runs[i].ID == run.ID {
			m.index.Runs[i] = meta
			replaced = true
			break
		}
	}
	if !replaced {
		m.index.Runs = append(m.index.Runs, meta)
	}
	return m.saveIndex()
}

// Get loads a run by ID or by a unique ID prefix
func (m *Manager) Get(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	full, err := m.resolve(id)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(m.fs, m.runPath(full))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", full, ErrRunNotFound)
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run %s: %w", full, err)
	}
	return &run, nil
}

// List returns metadata for all runs, newest first
func (m *Manager) List() []RunMetadata {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]RunMetadata, len(m.index.Runs))
	for i, r := range m.index.Runs {
		result[len(result)-1-i] = r
	}
	return result
}

// Repositories returns the distinct repositories of all runs, newest first
func (m *Manager) Repositories() []string {
	seen := map[string]bool{}
	var repos []string
	for _, r := range m.List() {
		if !seen[r.Repository] {
			seen[r.Repository] = true
			repos = append(repos, r.Repository)
		}
	}
	return repos
}

func (m *Manager) resolve(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrRunNotFound
	}
	var match string
	for _, r := range m.index.Runs {
		if r.ID == id {
			return id, nil
		}
		if strings.HasPrefix(r.ID, id) {
			if match != "" {
				return "", fmt.Errorf("%s: %w", id, ErrAmbiguousID)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	return match, nil
}

func (m *Manager) saveIndex() error {
	data, err := json.MarshalIndent(m.index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run index: %w", err)
	}
	return afero.WriteFile(m.fs, m.indexPath(), data, 0o644)
}
