// Package registrar implements the orchestrator that ties together Name
// parsing, the Quota ledger, the Registry, the Resolver, the Name locker,
// the Order store, the Registration store, and the Payment/Price oracles.
package registrar

import (
	"strconv"
	"sync"
	"time"

	"github.com/icnaming/icnaming/internal/gateway"
	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/locker"
	iname "github.com/icnaming/icnaming/internal/name"
	"github.com/icnaming/icnaming/internal/order"
	"github.com/icnaming/icnaming/internal/paging"
	"github.com/icnaming/icnaming/internal/paymentoracle"
	"github.com/icnaming/icnaming/internal/priceoracle"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/icnaming/icnaming/internal/quota"
	"github.com/icnaming/icnaming/internal/registration"
	"github.com/icnaming/icnaming/internal/registry"
	"github.com/icnaming/icnaming/internal/resolver"
)

// MinYears and MaxYears bound registration/renewal durations: years in
// [MinYears, MaxYears).
const (
	MinYears = 1
	MaxYears = 10
)

// OrderAvailabilityGrace is the window after which an order with a payment
// still not found is harvested to WaitingToRefund.
var OrderAvailabilityGrace = 2 * time.Hour

// RefundLockTimeout is the 60s bound on a single refund-retry lock.
const RefundLockTimeout = 60 * time.Second

type approval struct {
	to principal.Principal
	at int64
}

// Registrar orchestrates every cross-store registration flow.
type Registrar struct {
	Self     principal.Principal
	TopLabel string

	Registry     *registry.Store
	Resolver     *resolver.Store
	Registration *registration.Store
	Quota        *quota.Ledger
	Locker       *locker.Locker
	Orders       *order.Store
	Payment      paymentoracle.Client
	Price        *priceoracle.Oracle
	Gateway      *gateway.Store

	mu         sync.Mutex
	approvals  map[string]approval
	refundLock *locker.RefundLockTable

	// lastSyncedVersion is the payment oracle's tip-of-ledger cursor this
	// registrar has already reconciled, persisted across heartbeats.
	lastSyncedVersion uint64
	syncedOnce        bool
}

// New wires a Registrar from its component collaborators. self is the
// registrar's own principal (used as Registry's delegated writer).
func New(self principal.Principal, topLabel string, reg *registry.Store, res *resolver.Store, regn *registration.Store, q *quota.Ledger, lk *locker.Locker, ords *order.Store, pay paymentoracle.Client, price *priceoracle.Oracle, gw *gateway.Store) *Registrar {
	return &Registrar{
		Self:         self,
		TopLabel:     topLabel,
		Registry:     reg,
		Resolver:     res,
		Registration: regn,
		Quota:        q,
		Locker:       lk,
		Orders:       ords,
		Payment:      pay,
		Price:        price,
		Gateway:      gw,
		approvals:    make(map[string]approval),
		refundLock:   locker.NewRefundLockTable(RefundLockTimeout),
	}
}

func nowNanos() int64 { return time.Now().UnixNano() }

// Available reports whether name can be registered: valid first-level,
// not reserved, and no live registration.
func (r *Registrar) Available(rawName string, now int64) (iname.FirstLevelName, error) {
	fln, err := iname.ValidateFirstLevel(rawName, r.TopLabel)
	if err != nil {
		return iname.FirstLevelName{}, err
	}
	if iname.IsReserved(fln.FirstLabel) {
		return iname.FirstLevelName{}, icnerrors.NameUnavailable("reserved")
	}
	if !r.Registration.IsAvailable(fln.Full, now) {
		return iname.FirstLevelName{}, icnerrors.NameUnavailable("already registered")
	}
	return fln, nil
}

func validateYears(years uint32) error {
	if years < MinYears || years >= MaxYears {
		return icnerrors.YearsRangeError(MinYears, MaxYears)
	}
	return nil
}

func validateQuotaClassMatch(class quota.Class, fln iname.FirstLevelName) error {
	if !class.Matches(fln.QuotaClassLength()) {
		return icnerrors.InvalidQuotaOrderDetails()
	}
	return nil
}

// PriceFor returns the token amount for (class, years) via the price oracle.
func (r *Registrar) PriceFor(class quota.Class, years uint32) (int64, error) {
	return r.Price.Price(class, years)
}

// Register is the direct, quota-backed registration path.
func (r *Registrar) Register(rawName string, owner, quotaOwner principal.Principal, years uint32, class quota.Class) error {
	if owner.IsAnonymous() || quotaOwner.IsAnonymous() {
		return icnerrors.InvalidOwner()
	}
	fln, err := iname.ValidateFirstLevel(rawName, r.TopLabel)
	if err != nil {
		return err
	}
	if err := validateQuotaClassMatch(class, fln); err != nil {
		return err
	}
	if err := validateYears(years); err != nil {
		return err
	}
	if r.Quota.Get(quotaOwner, class) < 1 {
		return icnerrors.InsufficientQuota()
	}
	now := nowNanos()
	if _, err := r.Available(rawName, now); err != nil {
		return err
	}

	// Decrement the quota first to serialize against concurrent callers
	// across the suspending Registry call.
	if err := r.Quota.Sub(quotaOwner, class, 1); err != nil {
		return err
	}

	_, err = r.Registry.SetSubdomainOwner(fln.FirstLabel, r.TopLabel, r.Self, owner, registry.DefaultTTL, r.Self)
	if err != nil {
		r.Quota.Add(quotaOwner, class, 1)
		return icnerrors.Remote(mustErr(err))
	}

	r.Registration.Insert(owner, fln.Full, years, now)
	return nil
}

func mustErr(err error) *icnerrors.Error {
	if e, ok := icnerrors.As(err); ok {
		return e
	}
	return icnerrors.Unknown()
}

// SubmitOrder begins the paid-registration state machine.
func (r *Registrar) SubmitOrder(user principal.Principal, rawName string, years uint32, class quota.Class) (order.Order, error) {
	now := nowNanos()
	if r.Orders.HasPendingOrder(user) {
		return order.Order{}, icnerrors.PendingOrder()
	}
	fln, err := r.Available(rawName, now)
	if err != nil {
		return order.Order{}, err
	}
	if err := validateQuotaClassMatch(class, fln); err != nil {
		return order.Order{}, err
	}
	if err := validateYears(years); err != nil {
		return order.Order{}, err
	}

	if !r.Locker.TryLock(fln.Full) {
		return order.Order{}, icnerrors.Conflict()
	}
	defer r.Locker.Unlock(fln.Full)

	amount, err := r.PriceFor(class, years)
	if err != nil {
		return order.Order{}, icnerrors.Remote(mustErr(err))
	}
	paymentID, memo, accountID, err := r.Payment.AddPayment(amount, "register "+fln.Full)
	if err != nil {
		return order.Order{}, icnerrors.Remote(mustErr(err))
	}

	o := order.Order{
		Name:       fln.Full,
		Years:      years,
		QuotaClass: class,
		Status:     order.StatusNew,
		Payment: order.Payment{
			PaymentID: paymentID,
			Memo:      memo,
			AccountID: accountID,
			AmountE8s: amount,
		},
		CreatedAt: now,
	}
	if err := r.Orders.Add(user, o); err != nil {
		return order.Order{}, err
	}
	result, _ := r.Orders.Get(user)
	return result, nil
}

// Heartbeat reconciles pending orders against the payment oracle's tip of
// ledger.
func (r *Registrar) Heartbeat() error {
	tip, err := r.Payment.GetTipOfLedger()
	if err != nil {
		return nil // heartbeat never surfaces errors; caller should log and retry.
	}
	if !r.syncedOnce {
		// On first run we don't care about historical payments; mark
		// synced to the current tip and let subsequent heartbeats
		// continue from there.
		r.lastSyncedVersion = tip.PaymentsVersion
		r.syncedOnce = true
		return nil
	}
	if r.lastSyncedVersion >= tip.PaymentsVersion {
		return nil
	}

	now := nowNanos()
	for _, paymentID := range r.Orders.NeedVerifyPaymentIDs() {
		o, ok := r.Orders.GetByPaymentID(paymentID)
		if !ok {
			continue
		}
		result, err := r.Payment.VerifyPayment(paymentID)
		if err != nil {
			continue
		}
		switch result.Status {
		case paymentoracle.StatusPaid:
			r.applyPaidOrder(o.User, now)
		case paymentoracle.StatusNotFound:
			if now-o.CreatedAt > int64(OrderAvailabilityGrace) {
				r.Orders.SetStatus(o.User, order.StatusWaitingToRefund)
			}
		case paymentoracle.StatusNeedMore:
			// leave in New
		}
	}
	r.lastSyncedVersion = tip.PaymentsVersion
	return nil
}

// applyPaidOrder re-validates availability under the name lock and either
// completes the registration or moves the order to WaitingToRefund.
func (r *Registrar) applyPaidOrder(user principal.Principal, now int64) {
	o, ok := r.Orders.Get(user)
	if !ok || o.Status != order.StatusNew {
		return
	}

	if !r.Locker.TryLock(o.Name) {
		return // retry next heartbeat
	}
	defer r.Locker.Unlock(o.Name)

	if !r.Registration.IsAvailable(o.Name, now) {
		r.Orders.SetStatus(user, order.StatusWaitingToRefund)
		return
	}

	fln, err := iname.ValidateFirstLevel(o.Name, r.TopLabel)
	if err != nil {
		r.Orders.SetStatus(user, order.StatusWaitingToRefund)
		return
	}
	if _, err := r.Registry.SetSubdomainOwner(fln.FirstLabel, r.TopLabel, r.Self, user, registry.DefaultTTL, r.Self); err != nil {
		r.Orders.SetStatus(user, order.StatusWaitingToRefund)
		return
	}

	r.Registration.Insert(user, o.Name, o.Years, now)
	r.Orders.MarkPaid(user, now)
}

// CancelOrder permits cancellation only while status == New and no ledger
// credit has been observed.
func (r *Registrar) CancelOrder(user principal.Principal, now int64) error {
	o, ok := r.Orders.Get(user)
	if !ok {
		return icnerrors.OrderNotFound()
	}
	if o.Status != order.StatusNew {
		return icnerrors.Conflict()
	}
	result, err := r.Payment.VerifyPayment(o.Payment.PaymentID)
	if err != nil {
		return icnerrors.Remote(mustErr(err))
	}
	if result.Received != 0 {
		return icnerrors.Conflict()
	}
	r.Orders.Remove(user)
	return nil
}

// RefundOrder drives the refund leg for an order in WaitingToRefund. A
// per-payment lock (spec.md §9's explicit lock table, not the name locker)
// serializes overlapping RefundOrder calls for the same payment. Refunds
// happen only through this call: Heartbeat does not start or retry them.
func (r *Registrar) RefundOrder(user principal.Principal) error {
	o, ok := r.Orders.Get(user)
	if !ok {
		return icnerrors.OrderNotFound()
	}
	if o.Status != order.StatusWaitingToRefund {
		return icnerrors.Conflict()
	}

	lockKey := strconv.FormatUint(o.Payment.PaymentID, 10)
	lockID, acquired := r.refundLock.TryAcquire(lockKey, time.Now())
	if !acquired {
		return icnerrors.Conflict()
	}
	defer r.refundLock.Release(lockKey, lockID)

	result, err := r.Payment.RefundPayment(o.Payment.PaymentID)
	if err != nil {
		return icnerrors.Remote(mustErr(err))
	}
	switch result.Status {
	case paymentoracle.RefundRefunded:
		r.Orders.Remove(user)
		return nil
	case paymentoracle.RefundRefunding:
		return nil // oracle is async; the order stays in WaitingToRefund for a later RefundOrder call
	default:
		return icnerrors.RefundFailed()
	}
}

// Transfer moves ownership of name from caller to newOwner.
func (r *Registrar) Transfer(rawName string, caller, newOwner principal.Principal) error {
	name := string(iname.Normalize(rawName))
	if !r.Locker.TryLock(name) {
		return icnerrors.Conflict()
	}
	defer r.Locker.Unlock(name)

	if err := r.Registry.Transfer(name, caller, newOwner, newOwner); err != nil {
		return err
	}
	if err := r.Registration.SetOwner(name, newOwner); err != nil {
		return err
	}
	r.Resolver.RemovePrimaryName(caller)
	return nil
}

// Approve records name -> (to, at); to == anonymous clears the approval.
func (r *Registrar) Approve(caller principal.Principal, name string, to principal.Principal) error {
	owner, err := r.Registry.GetOwner(name)
	if err != nil {
		return err
	}
	if owner != caller {
		return icnerrors.PermissionDenied()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if to.IsAnonymous() {
		delete(r.approvals, name)
		return nil
	}
	r.approvals[name] = approval{to: to, at: nowNanos()}
	return nil
}

// TransferFrom consumes the approval for name and performs the transfer on
// the owner's behalf.
func (r *Registrar) TransferFrom(caller principal.Principal, name string) error {
	r.mu.Lock()
	a, ok := r.approvals[name]
	if !ok || a.to != caller {
		r.mu.Unlock()
		return icnerrors.PermissionDenied()
	}
	delete(r.approvals, name)
	r.mu.Unlock()

	owner, err := r.Registry.GetOwner(name)
	if err != nil {
		return err
	}
	return r.Transfer(name, owner, caller)
}

// ReclaimName force re-pushes the current owner to the Registry, resetting
// the resolver to default. Recovery path if the Registry lost the entry.
func (r *Registrar) ReclaimName(name string, caller principal.Principal) error {
	reg, ok := r.Registration.Get(name)
	if !ok {
		return icnerrors.RegistrationNotFound()
	}
	if reg.Owner != caller {
		return icnerrors.PermissionDenied()
	}
	r.Registry.ReclaimName(name, caller, caller)
	return nil
}

// RenewName adds years*YearMillis to a registration's expiry.
func (r *Registrar) RenewName(name string, years uint32, approveAmount int64, class quota.Class) error {
	if err := validateYears(years); err != nil {
		return err
	}
	price, err := r.PriceFor(class, 1)
	if err != nil {
		return icnerrors.Remote(mustErr(err))
	}
	required := price * int64(years)
	if approveAmount < required {
		return icnerrors.InvalidQuotaOrderDetails()
	}
	_, err = r.Registration.Renew(name, years)
	return err
}

// AddQuota and SubQuota are admin-only ledger adjustments.
func (r *Registrar) AddQuota(owner principal.Principal, class quota.Class, diff uint32) {
	r.Quota.Add(owner, class, diff)
}

func (r *Registrar) SubQuota(owner principal.Principal, class quota.Class, diff uint32) error {
	return r.Quota.Sub(owner, class, diff)
}

// TransferQuota atomically moves diff units of class from one principal to
// another.
func (r *Registrar) TransferQuota(from, to principal.Principal, class quota.Class, diff uint32) error {
	return r.Quota.Transfer(from, to, class, diff)
}

// BatchTransferQuota applies every leg atomically, all-or-nothing.
func (r *Registrar) BatchTransferQuota(legs []quota.Leg) error {
	return r.Quota.BatchTransfer(legs)
}

// ImportQuota applies a Gateway-verified import batch to the quota ledger.
func (r *Registrar) ImportQuota(items []gateway.ImportItem) {
	for _, item := range items {
		r.Quota.Add(item.Owner, item.Class, item.Diff)
	}
}

// RegisterFromGateway is the off-chain assignment path: register a name on
// behalf of owner with no payment and no quota consumption, used by
// Gateway.AssignName.
func (r *Registrar) RegisterFromGateway(rawName string, owner principal.Principal, years uint32) error {
	fln, err := iname.ValidateFirstLevel(rawName, r.TopLabel)
	if err != nil {
		return err
	}
	now := nowNanos()
	if _, err := r.Available(rawName, now); err != nil {
		return err
	}
	if _, err := r.Registry.SetSubdomainOwner(fln.FirstLabel, r.TopLabel, r.Self, owner, registry.DefaultTTL, r.Self); err != nil {
		return icnerrors.Remote(mustErr(err))
	}
	r.Registration.Insert(owner, fln.Full, years, now)
	return nil
}

// GetControlledNames returns owner's paged list of controlled names.
func (r *Registrar) GetControlledNames(owner principal.Principal, offset, limit int) ([]string, error) {
	page, err := paging.Validate(offset, limit)
	if err != nil {
		return nil, err
	}
	return r.Registry.GetControlledNames(owner, page.Offset, page.Limit), nil
}
