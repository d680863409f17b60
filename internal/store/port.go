// Package store persists user profiles and their work logs. Durable
// state lives behind a small key/value Port so the profile store can be
// tested against an in-memory fake and shipped against SQLite.
package store

import "sort"

// Port is the persistence boundary: string keys to string values.
// Values are JSON blobs except for opaque entries like avatars.
type Port interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// Keys returns all keys with the given prefix, sorted.
	Keys(prefix string) ([]string, error)
}

// Memory is a map-backed Port for tests.
type Memory struct {
	data map[string]string
}

func NewMemoryPort() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys(prefix string) ([]string, error) {
	var keys []string
	for k := range m.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
