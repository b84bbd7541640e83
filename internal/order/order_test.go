package order

import (
	"testing"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsPendingOrder(t *testing.T) {
	s := NewStore()
	user := principal.Principal("u1")
	require.NoError(t, s.Add(user, Order{Name: "nice.icp", Payment: Payment{PaymentID: 1}}))

	err := s.Add(user, Order{Name: "other.icp", Payment: Payment{PaymentID: 2}})
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodePendingOrder, e.Code)
}

func TestGetByPaymentID(t *testing.T) {
	s := NewStore()
	user := principal.Principal("u1")
	require.NoError(t, s.Add(user, Order{Name: "nice.icp", Payment: Payment{PaymentID: 42}}))

	o, ok := s.GetByPaymentID(42)
	require.True(t, ok)
	require.Equal(t, "nice.icp", o.Name)
}

func TestRemoveClearsBothIndices(t *testing.T) {
	s := NewStore()
	user := principal.Principal("u1")
	require.NoError(t, s.Add(user, Order{Name: "nice.icp", Payment: Payment{PaymentID: 7}}))
	s.Remove(user)

	_, ok := s.Get(user)
	require.False(t, ok)
	_, ok = s.GetByPaymentID(7)
	require.False(t, ok)
}

func TestAddAfterCanceledSucceeds(t *testing.T) {
	s := NewStore()
	user := principal.Principal("u1")
	require.NoError(t, s.Add(user, Order{Name: "nice.icp", Payment: Payment{PaymentID: 1}}))
	require.NoError(t, s.SetStatus(user, StatusCanceled))
	require.NoError(t, s.Add(user, Order{Name: "nice.icp", Payment: Payment{PaymentID: 2}}))
}
