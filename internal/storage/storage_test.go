package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

func sampleTable(days int) *draw.Table {
	return &draw.Table{
		Days:      days,
		FetchedAt: time.Date(2024, 10, 17, 12, 0, 0, 0, time.UTC),
		Rows: []draw.Row{
			{Date: "17/10/2024", Digits: []string{"1", "2", "3"}, Sweepstake: "1234", Special: "12345", First: "67890"},
			{Date: "16/10/2024", Digits: []string{"4", "5", "6"}},
		},
	}
}

func TestSaveAndLoadTable(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	store.now = func() time.Time { return time.Date(2024, 10, 17, 13, 0, 0, 0, time.UTC) }

	if err := store.SaveTable(sampleTable(60)); err != nil {
		t.Fatalf("SaveTable() error = %v", err)
	}

	tests := []struct {
		name string
		days int
	}{
		{"by depth", 60},
		{"latest", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := store.Load(tt.days)
			if err != nil {
				t.Fatalf("Load(%d) error = %v", tt.days, err)
			}
			if snapshot.UpdatedAt != "2024-10-17T13:00:00Z" {
				t.Errorf("UpdatedAt = %q", snapshot.UpdatedAt)
			}

			table := snapshot.Table
			if table.Len() != 2 || table.Days != 60 {
				t.Fatalf("table = %d rows / %d days", table.Len(), table.Days)
			}
			if table.Rows[0].Special != "12345" || table.Rows[0].DigitsJoined() != "123" {
				t.Errorf("row 0 = %+v", table.Rows[0])
			}
			if table.Rows[1].HasPrizes() {
				t.Errorf("row 1 should have no prizes: %+v", table.Rows[1])
			}
			if !table.FetchedAt.Equal(sampleTable(60).FetchedAt) {
				t.Errorf("FetchedAt = %s", table.FetchedAt)
			}
		})
	}
}

func TestLoadTable_Missing(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = store.LoadTable(90)
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("LoadTable() error = %v, want ErrNoSnapshot", err)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "snapshot_30.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err = store.Load(30)
	if err == nil || errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Load() error = %v, want parse error", err)
	}
}

func TestSaveTable_SkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := store.SaveTable(sampleTable(60)); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveTable(&draw.Table{Days: 60}); err != nil {
		t.Fatalf("SaveTable(empty) error = %v", err)
	}

	table, err := store.LoadTable(60)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("empty save replaced stored table: %d rows", table.Len())
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if info, err := os.Stat(store.Dir()); err != nil || !info.IsDir() {
		t.Errorf("snapshot directory not created: %v", err)
	}
}
