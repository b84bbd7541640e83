// Package priceoracle converts a quota class + years into a token amount
// via an external ICP<->XDR rate, grounded on spec.md §4.4.1. The last
// fetched rate is cached with github.com/hashicorp/golang-lru/v2 and
// concurrent refreshes are collapsed with golang.org/x/sync/singleflight,
// the same pattern internal/locker uses for try_lock.
package priceoracle

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/icnaming/icnaming/internal/quota"
)

// RateClient fetches the current ICP<->XDR rate, measured in 10^4
// XDR-per-ICP, from an external collaborator (the cycles-minting canister
// in the original system).
type RateClient interface {
	GetXDRPermyriadPerICP() (int64, error)
}

// XDRTable is the per-length XDR schedule, keyed the same way config's
// pricing.xdr_table is: "len_eq_N" or "len_gte_N", expressed as XDR * 10^4
// per year.
type XDRTable map[string]int64

func classKey(c quota.Class) string {
	if c.Kind == quota.LenEq {
		return "len_eq_" + strconv.Itoa(int(c.N))
	}
	return "len_gte_" + strconv.Itoa(int(c.N))
}

// Oracle converts (quota class, years) into an ICP e8s amount.
type Oracle struct {
	rate  RateClient
	table XDRTable
	cache *lru.Cache[string, int64]
	sf    singleflight.Group
}

// New returns an Oracle using rate as its external rate collaborator and
// table as the per-length XDR schedule.
func New(rate RateClient, table XDRTable) *Oracle {
	c, _ := lru.New[string, int64](1)
	return &Oracle{rate: rate, table: table, cache: c}
}

const rateCacheKey = "rate"

func (o *Oracle) currentRate() (int64, error) {
	if v, ok := o.cache.Get(rateCacheKey); ok {
		return v, nil
	}
	v, err, _ := o.sf.Do(rateCacheKey, func() (any, error) {
		rate, err := o.rate.GetXDRPermyriadPerICP()
		if err != nil {
			return int64(0), err
		}
		o.cache.Add(rateCacheKey, rate)
		return rate, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// InvalidateRate forces the next Price call to re-fetch the rate.
func (o *Oracle) InvalidateRate() {
	o.cache.Remove(rateCacheKey)
}

// Price returns the ICP e8s amount for registering a name of this quota
// class for the given number of years.
func (o *Oracle) Price(class quota.Class, years uint32) (int64, error) {
	xdrPerYear, ok := o.table[classKey(class)]
	if !ok {
		xdrPerYear = o.table["len_gte_7"]
	}
	rate, err := o.currentRate()
	if err != nil {
		return 0, err
	}
	if rate == 0 {
		return 0, nil
	}
	// xdrPerYear is XDR*10^4; rate is XDR*10^4 per ICP. ICP e8s = years *
	// xdrPerYear * 1e8 / rate.
	return int64(years) * xdrPerYear * 100_000_000 / rate, nil
}
