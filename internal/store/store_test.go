package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/md3387/NonIdealReactor/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Mechanism = "mech.yaml"
	cfg.Composition = "CH4:1, O2:2, N2:7.52"
	cfg.Fuel = "CH4"
	cfg.Filebase = "run1"
	return cfg
}

func TestRecordAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.Record(ctx, testConfig(), 2000, "run1_cantera.csv")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected a generated run id")
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Fuel != "CH4" || got.Steps != 2000 || got.Output != "run1_cantera.csv" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("timestamp mismatch: %v vs %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestGetUnknown(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "no-such-run")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Record(ctx, testConfig(), 10, "a_cantera.csv")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Record(ctx, testConfig(), 20, "b_cantera.csv")
	if err != nil {
		t.Fatal(err)
	}

	runs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Error("runs must list newest first")
	}
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
