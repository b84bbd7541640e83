package registration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertAndAvailability(t *testing.T) {
	s := NewStore()
	now := int64(1_000_000_000)
	r := s.Insert("owner1", "nice.icp", 5, now)
	require.Equal(t, now+5*YearMillis*1_000_000, r.ExpiresAt)
	require.False(t, s.IsAvailable("nice.icp", now))
	require.True(t, s.IsAvailable("nice.icp", r.ExpiresAt+1))
}

func TestRenewIncreasesExpiry(t *testing.T) {
	s := NewStore()
	now := int64(1_000_000_000)
	r := s.Insert("owner1", "nice.icp", 1, now)
	renewed, err := s.Renew("nice.icp", 2)
	require.NoError(t, err)
	require.Greater(t, renewed.ExpiresAt, r.ExpiresAt)
}

func TestSetOwnerMissingFails(t *testing.T) {
	s := NewStore()
	err := s.SetOwner("missing.icp", "owner2")
	require.Error(t, err)
}
