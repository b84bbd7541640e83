package quota

import (
	"testing"

	"github.com/icnaming/icnaming/internal/principal"
	"github.com/stretchr/testify/require"
)

func TestAddSubPrunesZero(t *testing.T) {
	l := NewLedger()
	p := principal.Principal("user1")
	class := Class{Kind: LenGte, N: 4}

	l.Add(p, class, 2)
	require.EqualValues(t, 2, l.Get(p, class))

	require.NoError(t, l.Sub(p, class, 2))
	require.EqualValues(t, 0, l.Get(p, class))
	require.Empty(t, l.entries)
}

func TestSubInsufficientQuota(t *testing.T) {
	l := NewLedger()
	p := principal.Principal("user1")
	class := Class{Kind: LenEq, N: 5}

	err := l.Sub(p, class, 1)
	require.Error(t, err)
}

func TestTransferAtomic(t *testing.T) {
	l := NewLedger()
	a := principal.Principal("a")
	b := principal.Principal("b")
	class := Class{Kind: LenGte, N: 4}

	l.Add(a, class, 3)
	require.NoError(t, l.Transfer(a, b, class, 2))
	require.EqualValues(t, 1, l.Get(a, class))
	require.EqualValues(t, 2, l.Get(b, class))
}

func TestBatchTransferRollsBackOnFailure(t *testing.T) {
	l := NewLedger()
	a := principal.Principal("a")
	b := principal.Principal("b")
	c := principal.Principal("c")
	class := Class{Kind: LenGte, N: 4}

	l.Add(a, class, 5)

	err := l.BatchTransfer([]Leg{
		{From: a, To: b, Class: class, Diff: 2},
		{From: c, To: b, Class: class, Diff: 1}, // c has nothing, should fail
	})
	require.Error(t, err)
	require.EqualValues(t, 5, l.Get(a, class))
	require.EqualValues(t, 0, l.Get(b, class))
}

func TestClassMatches(t *testing.T) {
	require.True(t, Class{Kind: LenEq, N: 4}.Matches(4))
	require.False(t, Class{Kind: LenEq, N: 4}.Matches(5))
	require.True(t, Class{Kind: LenGte, N: 4}.Matches(7))
	require.False(t, Class{Kind: LenGte, N: 4}.Matches(3))
}
