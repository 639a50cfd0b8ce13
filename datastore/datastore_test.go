package datastore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

type snapshot struct {
	Levels map[string]int `json:"levels"`
}

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "bot_data.json")
	e, err := New(Config{FilePath: path, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e, path
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	e, path := newTestEngine(t)

	in := snapshot{Levels: map[string]int{"g1": 5}}
	if err := e.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("durable file missing: %v", err)
	}

	var out snapshot
	if err := e.Load(&out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Levels["g1"] != 5 {
		t.Fatalf("expected g1=5, got %d", out.Levels["g1"])
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	e, _ := newTestEngine(t)

	out := snapshot{Levels: map[string]int{}}
	if err := e.Load(&out); err != nil {
		t.Fatalf("load on missing file: %v", err)
	}
	if len(out.Levels) != 0 {
		t.Fatalf("expected untouched snapshot, got %v", out.Levels)
	}
}

func TestLoadCorruptFileReturnsErrCorrupt(t *testing.T) {
	e, path := newTestEngine(t)

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	var out snapshot
	err := e.Load(&out)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

// A crash between temp-write and rename must leave the previous durable copy
// intact and parseable.
func TestCrashBeforeRenameLeavesDurableCopyIntact(t *testing.T) {
	e, path := newTestEngine(t)

	if err := e.Save(snapshot{Levels: map[string]int{"g1": 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Simulate the crash: a temp file with newer, half-written content that
	// was never renamed into place.
	if err := os.WriteFile(path+".tmp", []byte(`{"levels":{"g1":`), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read durable file: %v", err)
	}
	var out snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("durable file not parseable: %v", err)
	}
	if out.Levels["g1"] != 1 {
		t.Fatalf("expected previous snapshot, got %v", out.Levels)
	}
}

func TestSaveSkipsUnchangedContent(t *testing.T) {
	e, path := newTestEngine(t)

	in := snapshot{Levels: map[string]int{"g1": 2}}
	if err := e.Save(in); err != nil {
		t.Fatalf("first save: %v", err)
	}
	first, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	// Remove the file behind the engine's back; an identical save must be a
	// checksum no-op and must not recreate it.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := e.Save(in); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected save to be skipped, file recreated (first mtime %v)", first.ModTime())
	}
}

func TestBackupRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_data.json")
	e, err := New(Config{FilePath: path, BackupCount: 2, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := e.Save(snapshot{Levels: map[string]int{"g1": i}}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	matches, err := filepath.Glob(path + ".backup.*")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) > 2 {
		t.Fatalf("expected at most 2 backups, got %d", len(matches))
	}
}
