package icnerrors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodesAreStable(t *testing.T) {
	require.EqualValues(t, 1, CodeUnknown)
	require.EqualValues(t, 20, CodeUnauthorized)
}

func TestRemoteWrapsCode(t *testing.T) {
	inner := NameUnavailable("reserved")
	wrapped := Remote(inner)
	require.Equal(t, CodeRemoteError, wrapped.Code)
	require.Same(t, inner, wrapped.Remote)
	require.Contains(t, wrapped.Error(), "reserved")
}

func TestIsAndAs(t *testing.T) {
	err := error(PermissionDenied())
	require.True(t, Is(err, CodePermissionDenied))
	e, ok := As(err)
	require.True(t, ok)
	require.Equal(t, CodePermissionDenied, e.Code)
}
