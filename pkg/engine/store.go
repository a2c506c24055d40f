package engine

import (
	"hash/fnv"
	"sort"
	"sync"

	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

// Store holds the single current validation result. There is no
// history: Replace swaps the result wholesale, Clear drops it. It also
// tracks the last seen selection so callers can ask whether the
// selection changed since the previous scan.
type Store struct {
	mu       sync.Mutex
	current  *issue.Result
	lastHash uint64
	hasHash  bool
}

// NewStore creates an empty store.
func NewStore() *Store { return &Store{} }

// Current returns the stored result, or an empty result when nothing
// has been stored. Never nil.
func (s *Store) Current() *issue.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return issue.NewResult(nil, nil)
	}
	return s.current
}

// Replace stores r as the current result, discarding the previous one.
func (s *Store) Replace(r *issue.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r
}

// Clear drops the current result and forgets the last selection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.hasHash = false
	s.lastHash = 0
}

// ShouldRevalidate reports whether the mesh selection differs from the
// one seen on the previous call, and records the new selection. The
// answer is advisory; callers decide whether to act on it.
func (s *Store) ShouldRevalidate(objects []*scene.Object) bool {
	h := SelectionHash(objects)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasHash && s.lastHash == h {
		return false
	}
	s.lastHash = h
	s.hasHash = true
	return true
}

// SelectionHash hashes the set of mesh-object names. Order does not
// matter; the names are sorted before hashing.
func SelectionHash(objects []*scene.Object) uint64 {
	var names []string
	for _, obj := range objects {
		if obj.IsMesh() {
			names = append(names, obj.Name)
		}
	}
	sort.Strings(names)

	h := fnv.New64a()
	for _, n := range names {
		h.Write([]byte(n))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
