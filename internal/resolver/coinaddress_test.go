package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateBTCAddress(t *testing.T) {
	// A well-known valid mainnet bitcoin address (genesis block donation
	// address), version byte 0.
	require.True(t, validateBTCAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"))
	require.False(t, validateBTCAddress("not-an-address"))
	require.False(t, validateBTCAddress(""))
}

func TestValidateLTCAddress(t *testing.T) {
	require.False(t, validateLTCAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"))
}
