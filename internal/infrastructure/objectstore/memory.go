package objectstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type pendingChange struct {
	path      string
	present   bool
	remaining int
}

// MemoryStore keeps objects in process memory. Get/Put/Delete are strongly
// consistent; List can be made to lag behind writes by ListLag calls to
// reproduce the eventual consistency of remote stores.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	listed  map[string]struct{}
	pending []pendingChange
	listLag int
}

// NewMemoryStore creates an empty store. With listLag > 0 a mutation only
// becomes visible to List after listLag further List calls.
func NewMemoryStore(listLag int) *MemoryStore {
	if listLag < 0 {
		listLag = 0
	}
	return &MemoryStore{
		objects: make(map[string][]byte),
		listed:  make(map[string]struct{}),
		listLag: listLag,
	}
}

func (s *MemoryStore) Put(_ context.Context, path string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = buf
	s.recordLocked(path, true)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, path string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (s *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.listed))
	for path := range s.listed {
		if strings.HasPrefix(path, prefix) {
			out = append(out, path)
		}
	}
	sort.Strings(out)

	s.advanceLocked()
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return false, nil
	}
	delete(s.objects, path)
	s.recordLocked(path, false)
	return true, nil
}

// Len returns the number of stored objects regardless of list visibility.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *MemoryStore) recordLocked(path string, present bool) {
	if s.listLag == 0 {
		s.applyLocked(path, present)
		return
	}
	s.pending = append(s.pending, pendingChange{path: path, present: present, remaining: s.listLag})
}

func (s *MemoryStore) advanceLocked() {
	kept := s.pending[:0]
	for _, c := range s.pending {
		c.remaining--
		if c.remaining <= 0 {
			s.applyLocked(c.path, c.present)
			continue
		}
		kept = append(kept, c)
	}
	s.pending = kept
}

func (s *MemoryStore) applyLocked(path string, present bool) {
	if present {
		s.listed[path] = struct{}{}
	} else {
		delete(s.listed, path)
	}
}
