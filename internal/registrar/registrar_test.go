package registrar

import (
	"testing"

	"github.com/icnaming/icnaming/internal/gateway"
	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/locker"
	"github.com/icnaming/icnaming/internal/order"
	"github.com/icnaming/icnaming/internal/paymentoracle"
	"github.com/icnaming/icnaming/internal/priceoracle"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/icnaming/icnaming/internal/quota"
	"github.com/icnaming/icnaming/internal/registration"
	"github.com/icnaming/icnaming/internal/registry"
	"github.com/icnaming/icnaming/internal/resolver"
	"github.com/stretchr/testify/require"
)

type fakeRate struct{}

func (fakeRate) GetXDRPermyriadPerICP() (int64, error) { return 10_000, nil }

func newTestRegistrar(t *testing.T) (*Registrar, *paymentoracle.Fake) {
	t.Helper()
	res := resolver.NewStore(0)
	reg := registry.NewStore(res)
	require.NoError(t, reg.SetTopName("icp", "registrar"))

	regn := registration.NewStore()
	q := quota.NewLedger()
	lk := locker.New()
	ords := order.NewStore()
	pay := paymentoracle.NewFake()
	price := priceoracle.New(fakeRate{}, priceoracle.XDRTable{"len_gte_4": 2_000_0000})
	gw := gateway.NewStore(nil)

	r := New("registrar", "icp", reg, res, regn, q, lk, ords, pay, price, gw)
	require.NoError(t, r.Heartbeat()) // complete the initial tip sync
	return r, pay
}

func TestQuotaRegisterHappyPath(t *testing.T) {
	r, _ := newTestRegistrar(t)
	u1 := principal.Principal("u1")
	class := quota.Class{Kind: quota.LenGte, N: 4}
	r.AddQuota(u1, class, 1)

	err := r.Register("nice.icp", u1, u1, 5, class)
	require.NoError(t, err)

	owner, err := r.Registry.GetOwner("nice.icp")
	require.NoError(t, err)
	require.Equal(t, u1, owner)
	require.EqualValues(t, 0, r.Quota.Get(u1, class))
}

func TestRegisterInsufficientQuota(t *testing.T) {
	r, _ := newTestRegistrar(t)
	u1 := principal.Principal("u1")
	class := quota.Class{Kind: quota.LenGte, N: 4}

	err := r.Register("nice.icp", u1, u1, 5, class)
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeInsufficientQuota, e.Code)
}

func TestPaidOrderHappyPath(t *testing.T) {
	r, pay := newTestRegistrar(t)
	u1 := principal.Principal("u1")
	class := quota.Class{Kind: quota.LenGte, N: 5}

	o, err := r.SubmitOrder(u1, "hello.icp", 1, class)
	require.NoError(t, err)
	require.Equal(t, order.StatusNew, o.Status)

	pay.CreditPayment(o.Payment.PaymentID, o.Payment.AmountE8s, 123)

	require.NoError(t, r.Heartbeat())

	final, ok := r.Orders.Get(u1)
	require.True(t, ok)
	require.Equal(t, order.StatusDone, final.Status)

	owner, err := r.Registry.GetOwner("hello.icp")
	require.NoError(t, err)
	require.Equal(t, u1, owner)
}

func TestRaceDuringPaidOrderRefunds(t *testing.T) {
	r, pay := newTestRegistrar(t)
	u1 := principal.Principal("u1")
	u2 := principal.Principal("u2")
	class := quota.Class{Kind: quota.LenGte, N: 4}

	o, err := r.SubmitOrder(u1, "same.icp", 1, class)
	require.NoError(t, err)

	r.AddQuota(u2, class, 1)
	require.NoError(t, r.Register("same.icp", u2, u2, 1, class))

	pay.CreditPayment(o.Payment.PaymentID, o.Payment.AmountE8s, 1)
	require.NoError(t, r.Heartbeat())

	final, ok := r.Orders.Get(u1)
	require.True(t, ok)
	require.Equal(t, order.StatusWaitingToRefund, final.Status)

	require.NoError(t, r.RefundOrder(u1))
	_, ok = r.Orders.Get(u1)
	require.False(t, ok)
}

func TestTransferClearsPrimaryName(t *testing.T) {
	r, _ := newTestRegistrar(t)
	u1 := principal.Principal("u1")
	u2 := principal.Principal("u2")
	class := quota.Class{Kind: quota.LenGte, N: 4}
	r.AddQuota(u1, class, 1)
	require.NoError(t, r.Register("nice.icp", u1, u1, 1, class))

	require.NoError(t, r.Resolver.SetPrimaryName(u1, u1, "nice.icp", false))

	require.NoError(t, r.Transfer("nice.icp", u1, u2))

	owner, err := r.Registry.GetOwner("nice.icp")
	require.NoError(t, err)
	require.Equal(t, u2, owner)

	_, ok := r.Resolver.ReverseResolvePrincipal(u1)
	require.False(t, ok)
}
