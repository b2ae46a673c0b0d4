// Package memory holds the in-process ConfigStore used when no config file is available.
package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/registro-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// Path is reported by the memory store in place of a file path.
const Path = ":memory:"

// ConfigStore keeps settings for the lifetime of the process only.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreWith(nil)
}

// NewConfigStoreWith creates a store seeded with a copy of values,
// keyed the same way as the file store ("api.base_url").
func NewConfigStoreWith(values map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any, len(values))}
	maps.Copy(s.values, values)
	return s
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns "" for missing or non-string values.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt truncates float values.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	return number[int](val)
}

func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	return number[float64](val)
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Load is a no-op; there is nothing to re-read.
func (s *ConfigStore) Load() error {
	return nil
}

func (s *ConfigStore) Path() string {
	return Path
}

// number converts the numeric kinds a TOML decoder or caller may store.
func number[T int | float64](val any) T {
	switch v := val.(type) {
	case int:
		return T(v)
	case int64:
		return T(v)
	case float64:
		return T(v)
	default:
		return 0
	}
}
