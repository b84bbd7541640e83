package locker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefundLockTableSerializesConcurrentAttempts(t *testing.T) {
	table := NewRefundLockTable(60 * time.Second)
	now := time.Now()

	id, ok := table.TryAcquire("payment-1", now)
	require.True(t, ok)

	_, ok = table.TryAcquire("payment-1", now.Add(time.Second))
	require.False(t, ok)

	table.Release("payment-1", id)

	_, ok = table.TryAcquire("payment-1", now.Add(2*time.Second))
	require.True(t, ok)
}

func TestRefundLockTableExpiresAfterTimeout(t *testing.T) {
	table := NewRefundLockTable(60 * time.Second)
	now := time.Now()

	_, ok := table.TryAcquire("payment-1", now)
	require.True(t, ok)

	_, ok = table.TryAcquire("payment-1", now.Add(61*time.Second))
	require.True(t, ok)
}

func TestRefundLockTableReleaseIgnoresStaleID(t *testing.T) {
	table := NewRefundLockTable(60 * time.Second)
	now := time.Now()

	firstID, ok := table.TryAcquire("payment-1", now)
	require.True(t, ok)

	table.Release("payment-1", firstID+"-stale")

	_, ok = table.TryAcquire("payment-1", now.Add(time.Second))
	require.False(t, ok, "release with a stale id must not drop the current holder's lock")
}
