package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

// ErrNoSnapshot is returned when no snapshot exists for the requested depth.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshot is the on-disk form of a master table.
type Snapshot struct {
	UpdatedAt string      `json:"updated_at"`
	Table     *draw.Table `json:"table"`
}

// Storage keeps one JSON snapshot per fetch depth plus a copy of the most
// recent save.
type Storage struct {
	dataDir string
	now     func() time.Time
}

// New opens dataDir, creating it if needed. A leading "~/" is resolved
// against the user's home directory.
func New(dataDir string) (*Storage, error) {
	dir, err := expandHome(dataDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory %s: %w", dir, err)
	}
	return &Storage{dataDir: dir, now: time.Now}, nil
}

func expandHome(dir string) (string, error) {
	rest, ok := strings.CutPrefix(dir, "~/")
	if !ok {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, rest), nil
}

// Dir returns the snapshot directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// snapshotPath returns the file for a fetch depth; days <= 0 selects the
// most recent save.
func (s *Storage) snapshotPath(days int) string {
	if days <= 0 {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%d.json", days))
}

// Load reads the snapshot for a fetch depth. Returns ErrNoSnapshot when the
// file does not exist.
func (s *Storage) Load(days int) (*Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(days))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w for %d days", ErrNoSnapshot, days)
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snapshot.Table == nil {
		snapshot.Table = &draw.Table{Days: days}
	}
	if snapshot.Table.Rows == nil {
		snapshot.Table.Rows = []draw.Row{}
	}

	return &snapshot, nil
}

// LoadTable reads the stored table for a fetch depth.
func (s *Storage) LoadTable(days int) (*draw.Table, error) {
	snapshot, err := s.Load(days)
	if err != nil {
		return nil, err
	}
	return snapshot.Table, nil
}

// SaveTable writes the table under its fetch depth and as the latest snapshot.
// Empty tables are not saved so that a failed fetch never replaces good data.
func (s *Storage) SaveTable(table *draw.Table) error {
	if table.Empty() {
		return nil
	}

	snapshot := Snapshot{
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
		Table:     table,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	for _, path := range []string{s.snapshotPath(table.Days), s.snapshotPath(0)} {
		if err := writeFile(path, data); err != nil {
			return err
		}
	}

	return nil
}

// writeFile replaces path through a temp file in the same directory so a
// reader never sees a partial snapshot.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
