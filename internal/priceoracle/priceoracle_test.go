package priceoracle

import (
	"testing"

	"github.com/icnaming/icnaming/internal/quota"
	"github.com/stretchr/testify/require"
)

type fakeRate struct{ rate int64 }

func (f *fakeRate) GetXDRPermyriadPerICP() (int64, error) { return f.rate, nil }

func TestPriceUsesTableAndRate(t *testing.T) {
	rate := &fakeRate{rate: 1_0000} // 1 XDR per ICP
	table := XDRTable{"len_gte_4": 2_000_0000}
	o := New(rate, table)

	price, err := o.Price(quota.Class{Kind: quota.LenGte, N: 4}, 1)
	require.NoError(t, err)
	require.Greater(t, price, int64(0))
}

func TestPriceCachesRate(t *testing.T) {
	rate := &fakeRate{rate: 1_0000}
	table := XDRTable{"len_gte_4": 2_000_0000}
	o := New(rate, table)

	_, err := o.Price(quota.Class{Kind: quota.LenGte, N: 4}, 1)
	require.NoError(t, err)

	rate.rate = 2_0000
	p2, err := o.Price(quota.Class{Kind: quota.LenGte, N: 4}, 1)
	require.NoError(t, err)

	o.InvalidateRate()
	p3, err := o.Price(quota.Class{Kind: quota.LenGte, N: 4}, 1)
	require.NoError(t, err)
	require.NotEqual(t, p2, p3)
}
