// Package setting holds typed access to key/value configuration that admins
// can change at runtime.
package setting

import (
	"strconv"
	"strings"
	"sync/atomic"
)

type Source interface {
	Lookup(key string) (string, bool)
}

type Store interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
}

// Map is a fixed set of values.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Map) GetString(key string) string { return getString(m, key) }
func (m Map) GetInt(key string) int       { return getInt(m, key) }
func (m Map) GetBool(key string) bool     { return getBool(m, key) }

func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Layered resolves a key against each source in turn; the first source that
// holds it wins.
type Layered []Source

func (l Layered) Lookup(key string) (string, bool) {
	for _, src := range l {
		if v, ok := src.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

func (l Layered) GetString(key string) string { return getString(l, key) }
func (l Layered) GetInt(key string) int       { return getInt(l, key) }
func (l Layered) GetBool(key string) bool     { return getBool(l, key) }

// Snapshot is a Map that can be swapped atomically while readers use it.
type Snapshot struct {
	cur atomic.Pointer[Map]
}

func NewSnapshot(m Map) *Snapshot {
	s := &Snapshot{}
	s.Replace(m)
	return s
}

func (s *Snapshot) Replace(m Map) {
	if m == nil {
		m = Map{}
	}
	s.cur.Store(&m)
}

func (s *Snapshot) Current() Map { return *s.cur.Load() }

func (s *Snapshot) Lookup(key string) (string, bool) { return s.Current().Lookup(key) }

func getString(src Source, key string) string {
	v, _ := src.Lookup(key)
	return v
}

// getInt returns 0 for missing or malformed values.
func getInt(src Source, key string) int {
	v, ok := src.Lookup(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func getBool(src Source, key string) bool {
	v, _ := src.Lookup(key)
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "y":
		return true
	}
	return false
}
