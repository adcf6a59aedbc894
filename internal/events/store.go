package events

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Store holds date-keyed annotation records.
//
// Reads are lock-free: every render works on one immutable snapshot of the
// map. Writers copy the current snapshot, apply their change and publish the
// new map atomically, serialised by mu.
type Store struct {
	mu      sync.Mutex
	records atomic.Pointer[map[string]Record]
}

var shared = NewStore()

// Shared returns the process-wide store used by single-shot CLI runs.
// Long-lived callers should own their store instead.
func Shared() *Store {
	return shared
}

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{}
	s.publish(map[string]Record{})
	return s
}

// NewStoreFrom returns a store seeded with a copy of records. Keys are not
// validated; use Replace for untrusted input.
func NewStoreFrom(records map[string]Record) *Store {
	s := &Store{}
	s.publish(cloneRecords(records))
	return s
}

// snapshot returns the published map. A zero Store reads as empty.
func (s *Store) snapshot() map[string]Record {
	p := s.records.Load()
	if p == nil {
		return map[string]Record{}
	}
	return *p
}

func (s *Store) publish(m map[string]Record) {
	s.records.Store(&m)
}

// Lookup returns a copy of the record stored under key.
func (s *Store) Lookup(key string) (Record, bool) {
	rec, ok := s.snapshot()[key]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// Has reports whether key holds a record.
func (s *Store) Has(key string) bool {
	_, ok := s.snapshot()[key]
	return ok
}

// Render returns the annotation of key as displayed in targetYear.
func (s *Store) Render(key string, targetYear int) (Annotation, bool) {
	rec, ok := s.snapshot()[key]
	if !ok {
		return Annotation{}, false
	}
	return Annotation{Category: rec.Category, Lines: rewriteLines(rec, targetYear)}, true
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.snapshot())
}

// Keys returns the stored keys in calendar order.
func (s *Store) Keys() []string {
	return slices.Sorted(maps.Keys(s.snapshot()))
}

// Snapshot returns a deep copy of the current records.
func (s *Store) Snapshot() map[string]Record {
	return cloneRecords(s.snapshot())
}

// Put stores rec under key, replacing any previous record.
func (s *Store) Put(key string, rec Record) error {
	if err := Validate(key, rec); err != nil {
		return err
	}
	s.mutate(func(m map[string]Record) { m[key] = rec.clone() })
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Store) Delete(key string) {
	s.mutate(func(m map[string]Record) { delete(m, key) })
}

// Clear removes every record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(map[string]Record{})
}

// Replace validates records and swaps them in as the whole content of the
// store. On error the store is untouched.
func (s *Store) Replace(records map[string]Record) error {
	for key, rec := range records {
		if err := Validate(key, rec); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(cloneRecords(records))
	return nil
}

func (s *Store) mutate(fn func(map[string]Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := maps.Clone(s.snapshot())
	fn(next)
	s.publish(next)
}

func cloneRecords(records map[string]Record) map[string]Record {
	out := make(map[string]Record, len(records))
	for key, rec := range records {
		out[key] = rec.clone()
	}
	return out
}
