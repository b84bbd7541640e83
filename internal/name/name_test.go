package name

import (
	"testing"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTrimsAndLowercases(t *testing.T) {
	require.Equal(t, Normalized("nice.icp"), Normalize("  Nice.ICP  "))
}

func TestParseSplitsLabels(t *testing.T) {
	r, err := Parse("nice.icp")
	require.NoError(t, err)
	require.Equal(t, []string{"nice", "icp"}, r.Labels)

	top, ok := r.TopLevel()
	require.True(t, ok)
	require.Equal(t, "icp", top)

	first, ok := r.CurrentLevel()
	require.True(t, ok)
	require.Equal(t, "nice", first)
}

func TestParseRejectsEmptyLabel(t *testing.T) {
	_, err := Parse("nice..icp")
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeInvalidName, e.Code)
}

func TestParseRejectsInvalidChars(t *testing.T) {
	_, err := Parse("ni ce.icp")
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeInvalidName, e.Code)
}

func TestValidateFirstLevelHappyPath(t *testing.T) {
	fln, err := ValidateFirstLevel("Nice.ICP", "icp")
	require.NoError(t, err)
	require.Equal(t, "nice.icp", fln.Full)
	require.Equal(t, "nice", fln.FirstLabel)
	require.Equal(t, "icp", fln.TopLabel)
}

func TestValidateFirstLevelRejectsWrongLevelCount(t *testing.T) {
	_, err := ValidateFirstLevel("sub.nice.icp", "icp")
	require.Error(t, err)
}

func TestValidateFirstLevelRejectsWrongTopLabel(t *testing.T) {
	_, err := ValidateFirstLevel("nice.eth", "icp")
	require.Error(t, err)
}

func TestQuotaClassLengthCapsAtSeven(t *testing.T) {
	fln := FirstLevelName{FirstLabel: "averylongname"}
	require.Equal(t, 7, fln.QuotaClassLength())

	short := FirstLevelName{FirstLabel: "abc"}
	require.Equal(t, 3, short.QuotaClassLength())
}
