// Package memstore is the process-lifetime order repository. Orders
// live in a map guarded by an RWMutex; a separate slice preserves
// insertion order for listings.
package memstore

import (
	"context"
	"sync"
	"time"

	"tron-market/internal/tronmarket/data"
)

type MemStore struct {
	mux    sync.RWMutex
	orders map[string]*data.Order
	ids    []string
}

func New() *MemStore {
	return &MemStore{
		orders: make(map[string]*data.Order),
	}
}

func (s *MemStore) InsertOrder(_ context.Context, order *data.Order) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.orders[order.ID]; ok {
		return data.ErrUniqueConstraintViolation
	}
	stored := *order
	s.orders[order.ID] = &stored
	s.ids = append(s.ids, order.ID)
	return nil
}

func (s *MemStore) GetOrder(_ context.Context, id string) (data.Order, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return data.Order{}, data.ErrOrderNotFound
	}
	return *order, nil
}

func (s *MemStore) GetOrders(_ context.Context, allowedStatuses ...data.Status) ([]data.Order, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	result := make([]data.Order, 0, len(s.ids))
	for _, id := range s.ids {
		order := s.orders[id]
		if len(allowedStatuses) > 0 && !statusAllowed(order.Status, allowedStatuses) {
			continue
		}
		result = append(result, *order)
	}
	return result, nil
}

// CompleteOrder is the single legal status transition. It fails unless
// the order is still PENDING, so the terminal state is set at most once.
func (s *MemStore) CompleteOrder(
	_ context.Context,
	id string,
	destinationAddress string,
	transferReceipt string,
	completedAt time.Time,
) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return data.ErrOrderNotFound
	}
	if order.Status != data.PendingStatus {
		return data.ErrOrderNotPending
	}
	order.Status = data.CompletedStatus
	order.DestinationAddress = destinationAddress
	order.TransferReceipt = transferReceipt
	order.CompletedAt = completedAt
	return nil
}

func statusAllowed(status data.Status, allowed []data.Status) bool {
	for _, s := range allowed {
		if status == s {
			return true
		}
	}
	return false
}
