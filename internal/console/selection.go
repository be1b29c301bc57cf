package console

import (
	"sort"
	"sync"
)

// Selection tracks which order ids are currently checked. It tracks ids, not
// rows, so it survives sort and filter changes; it only ever holds ids that
// existed in the rendered collection when they were toggled in.
type Selection struct {
	mu  sync.RWMutex
	ids map[int]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: map[int]struct{}{}}
}

// Toggle flips membership of one id. Toggling the same id twice is a no-op on
// the final set.
func (s *Selection) Toggle(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll replaces the selection with exactly the given visible ids. A
// select-all captures the currently filtered view, never the full collection.
func (s *Selection) SelectAll(visibleIDs []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = make(map[int]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = map[int]struct{}{}
}

// Evict removes ids that left the live collection so the selection never
// dangles after a delete.
func (s *Selection) Evict(ids ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Retain drops every selected id not present in the given live set.
func (s *Selection) Retain(liveIDs []int) {
	live := make(map[int]struct{}, len(liveIDs))
	for _, id := range liveIDs {
		live[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.ids {
		if _, ok := live[id]; !ok {
			delete(s.ids, id)
		}
	}
}

func (s *Selection) Has(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
