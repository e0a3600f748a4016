// Package kv defines the storage adapter contract shared by the category
// registry and the item store, plus its concrete backends. Constructing the
// engine with an explicit adapter keeps storage state out of package globals
// and lets tests run against memory.
package kv

// KV is a minimal durable key-value store. Get reports presence explicitly
// so callers can tell an absent key from an empty record.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Mem is an in-memory KV for tests and ephemeral sessions.
type Mem struct {
	m map[string][]byte
}

func NewMem() *Mem {
	return &Mem{m: make(map[string][]byte)}
}

func (s *Mem) Get(key string) ([]byte, bool, error) {
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *Mem) Set(key string, value []byte) error {
	out := make([]byte, len(value))
	copy(out, value)
	s.m[key] = out
	return nil
}

func (s *Mem) Remove(key string) error {
	delete(s.m, key)
	return nil
}
