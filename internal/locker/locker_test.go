package locker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryLockConflict(t *testing.T) {
	l := New()
	require.True(t, l.TryLock("nice.icp"))
	require.False(t, l.TryLock("nice.icp"))
	l.Unlock("nice.icp")
	require.True(t, l.TryLock("nice.icp"))
}

func TestUnlockUnheldIsNoop(t *testing.T) {
	l := New()
	l.Unlock("nobody.icp")
	require.False(t, l.IsLocked("nobody.icp"))
}
