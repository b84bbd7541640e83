// Package paymentoracle defines the narrow collaborator interface the
// registrar calls against the external ledger, plus an in-memory reference
// fake for tests.
package paymentoracle

import (
	"sync"

	"github.com/google/uuid"
)

// PaymentStatus is the oracle's state machine over a single payment:
// New -> NeedMore -> Paid -> (Refunding -> gone).
type PaymentStatus int

const (
	StatusNew PaymentStatus = iota
	StatusNeedMore
	StatusPaid
	StatusRefunding
	StatusNotFound
)

// RefundStatus is the outcome of a refund_payment call.
type RefundStatus int

const (
	RefundRefunded RefundStatus = iota
	RefundRefunding
	RefundFailed
	RefundNotFound
)

// VerifyResult is the result of verify_payment.
type VerifyResult struct {
	Status   PaymentStatus
	Received int64
	Amount   int64
	PaidAt   int64
}

// RefundResult is the result of refund_payment.
type RefundResult struct {
	Status RefundStatus
	Amount int64
}

// TipOfLedger is the monotonically increasing version cursor.
type TipOfLedger struct {
	PaymentsVersion uint64
}

// Client is the narrow interface the registrar consumes. Implementations
// call out to the real icnaming_ledger collaborator; Fake below is an
// in-memory reference double for tests.
type Client interface {
	AddPayment(amountE8s int64, remark string) (paymentID uint64, memo uint64, accountID [32]byte, err error)
	VerifyPayment(paymentID uint64) (VerifyResult, error)
	RefundPayment(paymentID uint64) (RefundResult, error)
	GetTipOfLedger() (TipOfLedger, error)
}

type payment struct {
	amount   int64
	received int64
	status   PaymentStatus
	paidAt   int64
}

// Fake is a deterministic in-memory Client for tests: a map of payments
// keyed by payment id plus a tip version bumped on every credit. It keeps
// no record of individual transactions.
type Fake struct {
	mu         sync.Mutex
	nextID     uint64
	payments   map[uint64]*payment
	tipVersion uint64
}

func NewFake() *Fake {
	return &Fake{payments: make(map[uint64]*payment)}
}

func (f *Fake) AddPayment(amountE8s int64, remark string) (uint64, uint64, [32]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.payments[id] = &payment{amount: amountE8s, status: StatusNew}

	var accountID [32]byte
	token := uuid.New()
	copy(accountID[:16], token[:])

	memo := id
	return id, memo, accountID, nil
}

func (f *Fake) VerifyPayment(paymentID uint64) (VerifyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[paymentID]
	if !ok {
		return VerifyResult{Status: StatusNotFound}, nil
	}
	if p.status == StatusPaid {
		return VerifyResult{Status: StatusPaid, PaidAt: p.paidAt}, nil
	}
	if p.received < p.amount {
		return VerifyResult{Status: StatusNeedMore, Received: p.received, Amount: p.amount}, nil
	}
	return VerifyResult{Status: StatusPaid, PaidAt: p.paidAt}, nil
}

func (f *Fake) RefundPayment(paymentID uint64) (RefundResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[paymentID]
	if !ok {
		return RefundResult{Status: RefundNotFound}, nil
	}
	amount := p.received
	delete(f.payments, paymentID)
	return RefundResult{Status: RefundRefunded, Amount: amount}, nil
}

func (f *Fake) GetTipOfLedger() (TipOfLedger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return TipOfLedger{PaymentsVersion: f.tipVersion}, nil
}

// CreditPayment simulates a client-side token transfer arriving at the
// ledger, the way a real user's wallet would push funds to the payment
// account. Test-only helper.
func (f *Fake) CreditPayment(paymentID uint64, amount int64, nowNanos int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[paymentID]
	if !ok {
		return
	}
	p.received += amount
	if p.received >= p.amount && p.status != StatusPaid {
		p.status = StatusPaid
		p.paidAt = nowNanos
	}
	f.tipVersion++
}
