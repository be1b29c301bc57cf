// Package console holds the order list state controller: the reconciliation
// loop that keeps local order state consistent with the polled backend, the
// selection/undo/trash lifecycle, the debounced processing indicator and the
// export builder.
package console

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"go-order-console/internal/event"
	"go-order-console/internal/model"
)

// OrderReader is the slice of the backend client the store needs.
type OrderReader interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
}

// OrderStore maintains the operator's current view of the live order
// collection. A refresh replaces the collection wholesale; a failed refresh
// leaves the previous collection intact and is logged, never surfaced.
type OrderStore struct {
	reader OrderReader
	bus    event.Bus

	mu      sync.RWMutex
	orders  []model.Order
	issued  uint64 // sequence of the most recently issued refresh
	applied uint64 // sequence of the most recently applied result
}

func NewOrderStore(reader OrderReader, bus event.Bus) *OrderStore {
	return &OrderStore{reader: reader, bus: bus}
}

// Refresh reads the full live collection and replaces the local one. A
// completion carrying a sequence older than one already applied is discarded
// so an in-flight straggler cannot overwrite newer data with stale data.
func (s *OrderStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	orders, err := s.reader.ListOrders(ctx)
	if err != nil {
		slog.Warn("order refresh failed", "error", err)
		return err
	}

	s.mu.Lock()
	if seq < s.applied {
		s.mu.Unlock()
		slog.Debug("discarding stale refresh result", "seq", seq, "applied", s.applied)
		return nil
	}
	s.applied = seq
	s.orders = orders
	s.mu.Unlock()

	event.Emit(s.bus, event.TypeOrdersRefreshed, map[string]int{"count": len(orders)})
	return nil
}

// Orders returns a copy of the current live collection.
func (s *OrderStore) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// IDs returns the ids of the current live collection.
func (s *OrderStore) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.orders))
	for _, o := range s.orders {
		ids = append(ids, o.ID)
	}
	return ids
}

// Contains reports whether an id is present in the live collection.
func (s *OrderStore) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Stats computes the KPI snapshot from the reconciled collection, with
// "today" evaluated against the given reference time.
func (s *OrderStore) Stats(now time.Time) model.OrderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.OrderStats{TotalOrders: len(s.orders)}

	confidenceSum := 0
	scored := 0
	for _, o := range s.orders {
		if o.PriorityLevel == model.PriorityUrgent {
			stats.UrgentOrders++
		}
		if created, ok := o.CreatedDate(); ok {
			y1, m1, d1 := created.Date()
			y2, m2, d2 := now.Date()
			if y1 == y2 && m1 == m2 && d1 == d2 {
				stats.OrdersToday++
			}
		}
		confidenceSum += o.ConfidenceScore
		scored++
	}

	if scored > 0 {
		stats.AvgConfidence = math.Round(float64(confidenceSum)/float64(scored)*10) / 10
	}

	return stats
}
