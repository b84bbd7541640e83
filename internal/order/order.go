// Package order implements pending/paid/cancelled purchase orders indexed
// by user and payment id, grounded on
// original_source/src/canisters/registrar/src/name_order_store.rs and
// spec.md §4.4.3.
package order

import (
	"sync"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/icnaming/icnaming/internal/quota"
)

// Status is the order lifecycle state.
type Status int

const (
	StatusNew Status = iota
	StatusDone
	StatusWaitingToRefund
	StatusCanceled
)

// Payment is the embedded payment leg of an order.
type Payment struct {
	PaymentID uint64
	Memo      uint64
	AccountID [32]byte
	AmountE8s int64
}

// Order is the canonical shape of spec.md §3.
type Order struct {
	ID         uint64
	User       principal.Principal
	Name       string
	Years      uint32
	QuotaClass quota.Class
	Status     Status
	Payment    Payment
	CreatedAt  int64
	PaidAt     int64
	CanceledAt int64
}

// Store holds orders indexed by user and by payment id, always mutated
// together via the helper methods below (spec.md §5: "two indices ...
// updated together; a helper enforces both inserts/removes in one call").
type Store struct {
	mu        sync.Mutex
	byUser    map[principal.Principal]*Order
	byPayment map[uint64]principal.Principal
	nextID    uint64
}

func NewStore() *Store {
	return &Store{
		byUser:    make(map[principal.Principal]*Order),
		byPayment: make(map[uint64]principal.Principal),
	}
}

// HasPendingOrder reports whether user already has an order with status in
// {New, WaitingToRefund}.
func (s *Store) HasPendingOrder(user principal.Principal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byUser[user]
	if !ok {
		return false
	}
	return o.Status == StatusNew || o.Status == StatusWaitingToRefund
}

// Add inserts a new order for user, failing PendingOrder if one already
// exists in {New, WaitingToRefund}.
func (s *Store) Add(user principal.Principal, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byUser[user]; ok && (existing.Status == StatusNew || existing.Status == StatusWaitingToRefund) {
		return icnerrors.PendingOrder()
	}
	s.nextID++
	o.ID = s.nextID
	o.User = user
	s.byUser[user] = &o
	s.byPayment[o.Payment.PaymentID] = user
	return nil
}

// Get returns the order for user.
func (s *Store) Get(user principal.Principal) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byUser[user]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// GetByPaymentID returns the order with the given payment id.
func (s *Store) GetByPaymentID(paymentID uint64) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byPayment[paymentID]
	if !ok {
		return Order{}, false
	}
	o, ok := s.byUser[user]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// Remove deletes the order for user from both indices.
func (s *Store) Remove(user principal.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byUser[user]
	if !ok {
		return
	}
	delete(s.byPayment, o.Payment.PaymentID)
	delete(s.byUser, user)
}

// SetStatus mutates the status of user's order in place.
func (s *Store) SetStatus(user principal.Principal, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byUser[user]
	if !ok {
		return icnerrors.OrderNotFound()
	}
	o.Status = status
	return nil
}

// MarkPaid transitions user's order to Done and records paidAt.
func (s *Store) MarkPaid(user principal.Principal, paidAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byUser[user]
	if !ok {
		return icnerrors.OrderNotFound()
	}
	o.Status = StatusDone
	o.PaidAt = paidAt
	return nil
}

// NeedVerifyPaymentIDs returns the payment ids of every order still in New,
// the set the heartbeat reconciles against the ledger each tick.
func (s *Store) NeedVerifyPaymentIDs() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint64
	for _, o := range s.byUser {
		if o.Status == StatusNew {
			ids = append(ids, o.Payment.PaymentID)
		}
	}
	return ids
}
