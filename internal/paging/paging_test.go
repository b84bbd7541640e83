package paging

import (
	"testing"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsBoundaryValues(t *testing.T) {
	p, err := Validate(MinOffset, MinLimit)
	require.NoError(t, err)
	require.Equal(t, Page{Offset: MinOffset, Limit: MinLimit}, p)

	p, err = Validate(MaxOffset, MaxLimit)
	require.NoError(t, err)
	require.Equal(t, Page{Offset: MaxOffset, Limit: MaxLimit}, p)
}

func TestValidateRejectsOffsetOutOfRange(t *testing.T) {
	_, err := Validate(MaxOffset+1, MinLimit)
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeValueShouldBeInRangeError, e.Code)

	_, err = Validate(-1, MinLimit)
	require.Error(t, err)
}

func TestValidateRejectsLimitOutOfRange(t *testing.T) {
	_, err := Validate(MinOffset, 0)
	require.Error(t, err)

	_, err = Validate(MinOffset, MaxLimit+1)
	require.Error(t, err)
}
