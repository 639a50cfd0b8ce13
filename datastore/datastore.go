// Package datastore persists a JSON-serializable snapshot to a single file.
// Writes go to a temporary file first and are renamed into place, so a crash
// mid-write never corrupts the previous durable copy. Savers are serialized
// by a mutex; a save that finds identical content is skipped via checksum.
package datastore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrCorrupt is returned by Load when the backing file exists but cannot be
// parsed. Callers are expected to continue with an empty snapshot.
var ErrCorrupt = errors.New("datastore: corrupt data file")

// Config holds configuration options for the Engine.
type Config struct {
	FilePath    string
	BackupCount int // rotating .backup files to keep (0 = none)
	Logger      zerolog.Logger
}

// Engine owns the durable file. It holds no data itself; the record store
// hands it a snapshot on every save.
type Engine struct {
	file         string
	backupCount  int
	log          zerolog.Logger
	mu           sync.Mutex // serializes savers
	lastChecksum string
}

// New creates an Engine for the given file path, creating parent directories
// as needed.
func New(cfg Config) (*Engine, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("datastore: file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("datastore: create directory: %w", err)
	}
	return &Engine{
		file:        cfg.FilePath,
		backupCount: cfg.BackupCount,
		log:         cfg.Logger,
	}, nil
}

// Load reads the durable file into v. A missing file is not an error: v is
// left untouched and the first Save creates the file. A present but
// unparseable file returns an error wrapping ErrCorrupt so the caller can
// log it and fall back to defaults instead of crashing startup.
func (e *Engine) Load(v any) error {
	data, err := os.ReadFile(e.file)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Info().Str("file", e.file).Msg("no data file yet, starting empty")
			return nil
		}
		return fmt.Errorf("datastore: read file: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	e.lastChecksum = checksum(data)
	e.log.Info().Str("file", e.file).Int("bytes", len(data)).Msg("loaded data file")
	return nil
}

// Save marshals v and atomically replaces the durable file with it.
// Concurrent savers block until the lock is free; they do not fail.
func (e *Engine) Save(v any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("datastore: marshal snapshot: %w", err)
	}

	sum := checksum(data)
	if sum == e.lastChecksum {
		return nil
	}

	if e.backupCount > 0 {
		if err := e.createBackup(); err != nil {
			e.log.Warn().Err(err).Msg("failed to create backup")
		}
	}

	if err := e.writeFileAtomic(data); err != nil {
		return err
	}

	if err := e.verifyFile(data); err != nil {
		return fmt.Errorf("datastore: verification failed: %w", err)
	}

	e.lastChecksum = sum
	return nil
}

// writeFileAtomic writes data to a temp file next to the target, fsyncs it,
// and renames it over the durable file.
func (e *Engine) writeFileAtomic(data []byte) error {
	tmp := e.file + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("datastore: write temp file: %w", err)
	}

	f, err := os.OpenFile(tmp, os.O_RDWR, 0644)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("datastore: open temp file for sync: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("datastore: sync temp file: %w", err)
	}
	f.Close()

	if err := os.Rename(tmp, e.file); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("datastore: rename temp file: %w", err)
	}
	return nil
}

// verifyFile re-reads the durable file and compares checksums.
func (e *Engine) verifyFile(expected []byte) error {
	actual, err := os.ReadFile(e.file)
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	if checksum(actual) != checksum(expected) {
		return fmt.Errorf("checksum mismatch after write")
	}
	return nil
}

// createBackup copies the current durable file to a timestamped sibling and
// prunes the oldest backups beyond the configured count.
func (e *Engine) createBackup() error {
	if _, err := os.Stat(e.file); os.IsNotExist(err) {
		return nil
	}

	stamp := time.Now().Format("20060102_150405")
	backup := fmt.Sprintf("%s.backup.%s", e.file, stamp)

	src, err := os.Open(e.file)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(backup)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	e.cleanupOldBackups()
	return nil
}

func (e *Engine) cleanupOldBackups() {
	matches, err := filepath.Glob(e.file + ".backup.*")
	if err != nil || len(matches) <= e.backupCount {
		return
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}
	var files []fileInfo
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil {
			files = append(files, fileInfo{m, info.ModTime()})
		}
	}

	// Oldest first.
	for i := 0; i < len(files)-1; i++ {
		for j := i + 1; j < len(files); j++ {
			if files[i].modTime.After(files[j].modTime) {
				files[i], files[j] = files[j], files[i]
			}
		}
	}

	for i := 0; i < len(files)-e.backupCount; i++ {
		os.Remove(files[i].path)
	}
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
