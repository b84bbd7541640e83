package paymentoracle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFakeAddAndVerifyPayment(t *testing.T) {
	f := NewFake()
	id, memo, _, err := f.AddPayment(1000, "order 1")
	require.NoError(t, err)
	require.EqualValues(t, id, memo)

	res, err := f.VerifyPayment(id)
	require.NoError(t, err)
	require.Equal(t, StatusNeedMore, res.Status)

	f.CreditPayment(id, 1000, 42)
	res, err = f.VerifyPayment(id)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, res.Status)
	require.EqualValues(t, 42, res.PaidAt)
}

func TestFakeRefund(t *testing.T) {
	f := NewFake()
	id, _, _, err := f.AddPayment(500, "r")
	require.NoError(t, err)
	f.CreditPayment(id, 200, 1)

	res, err := f.RefundPayment(id)
	require.NoError(t, err)
	require.Equal(t, RefundRefunded, res.Status)
	require.EqualValues(t, 200, res.Amount)

	_, err = f.VerifyPayment(id)
	require.NoError(t, err)
}

func TestTipVersionMonotonic(t *testing.T) {
	f := NewFake()
	id, _, _, _ := f.AddPayment(100, "x")
	tip1, _ := f.GetTipOfLedger()
	f.CreditPayment(id, 100, 1)
	tip2, _ := f.GetTipOfLedger()
	require.Greater(t, tip2.PaymentsVersion, tip1.PaymentsVersion)
}
