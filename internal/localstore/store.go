// Package localstore persists JSON-serialized slots in a device-local
// directory, one file per named slot. It is the single-device cache
// backend: reads degrade to the caller's default and writes may be
// silently lost, so it must never be treated as durable.
package localstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Anasnah/Adkari-fin4/internal/metrics"
)

// Store is a typed key/value wrapper over a data directory.
type Store struct {
	dir string
	log zerolog.Logger
}

// Open prepares a store rooted at dir. It never fails: if the directory
// cannot be created, every read degrades to defaults and every write is
// dropped, which is the documented fail-soft behavior.
func Open(dir string, log zerolog.Logger) *Store {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("local data dir unavailable, persistence degraded")
	}
	return &Store{dir: dir, log: log}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Remove deletes a slot. A missing slot is not an error.
func (s *Store) Remove(key string) {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn().Err(err).Str("slot", key).Msg("local slot remove failed")
	}
}

// Get reads the slot named key, returning def when the slot is missing,
// unreadable, or corrupted. Failures never propagate.
func Get[T any](s *Store, key string, def T) T {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			metrics.LocalDegradedReads.Inc()
			s.log.Warn().Err(err).Str("slot", key).Msg("local read failed, using default")
		}
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.LocalDegradedReads.Inc()
		s.log.Warn().Err(err).Str("slot", key).Msg("local slot corrupted, using default")
		return def
	}
	return v
}

// Set serializes v into the slot named key. On failure the write is logged
// and dropped; local persistence is best-effort.
func Set[T any](s *Store, key string, v T) {
	raw, err := json.Marshal(v)
	if err == nil {
		err = os.WriteFile(s.path(key), raw, 0o600)
	}
	if err != nil {
		metrics.LocalFailedWrites.Inc()
		s.log.Error().Err(err).Str("slot", key).Msg("local write failed, data dropped")
	}
}
