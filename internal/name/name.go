// Package name implements the normalization, parsing, and first-level
// validation rules for dotted names, grounded on
// original_source/src/canisters/common/src/naming.rs.
package name

import (
	"strings"

	"github.com/icnaming/icnaming/internal/icnerrors"
)

// MinFirstLabelLen and MaxFirstLabelLen bound the leading label of a
// first-level name.
const (
	MinFirstLabelLen = 1
	MaxFirstLabelLen = 63
)

// Normalized is a name that has been trimmed and ASCII-lowercased.
type Normalized string

// Normalize trims and ASCII-lowercases s, mirroring normalize_name.
func Normalize(s string) Normalized {
	return Normalized(strings.ToLower(strings.TrimSpace(s)))
}

// ParseResult is the ordered label sequence of a parsed name.
type ParseResult struct {
	Labels []string
}

// LevelCount returns the number of labels.
func (r ParseResult) LevelCount() int { return len(r.Labels) }

// TopLevel returns the trailing (top-level) label, if any.
func (r ParseResult) TopLevel() (string, bool) {
	if len(r.Labels) == 0 {
		return "", false
	}
	return r.Labels[len(r.Labels)-1], true
}

// CurrentLevel returns the leading label, if any.
func (r ParseResult) CurrentLevel() (string, bool) {
	if len(r.Labels) == 0 {
		return "", false
	}
	return r.Labels[0], true
}

func isLabelChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-'
}

// Parse splits a normalized name on '.' and validates every label is
// non-empty and drawn from [a-z0-9-].
func Parse(s string) (ParseResult, error) {
	normalized := string(Normalize(s))
	labels := strings.Split(normalized, ".")
	for _, label := range labels {
		if len(label) == 0 {
			return ParseResult{}, icnerrors.InvalidName("empty label")
		}
		for i := 0; i < len(label); i++ {
			if !isLabelChar(label[i]) {
				return ParseResult{}, icnerrors.InvalidName("name must be alphanumeric or -")
			}
		}
	}
	return ParseResult{Labels: labels}, nil
}

// FirstLevelName is a two-label name whose trailing label equals the
// configured top label.
type FirstLevelName struct {
	// Full is the normalized dotted string, e.g. "nice.icp".
	Full string
	// FirstLabel is the leading label, e.g. "nice".
	FirstLabel string
	TopLabel   string
}

// QuotaClassLength returns min(len(FirstLabel), 7), the quota-class length
// bucket a first-level name belongs to.
func (n FirstLevelName) QuotaClassLength() int {
	if l := len(n.FirstLabel); l < 7 {
		return l
	}
	return 7
}

// ValidateFirstLevel parses s and additionally requires exactly two labels
// with the trailing label equal to topLabel and first-label length within
// [MinFirstLabelLen, MaxFirstLabelLen].
func ValidateFirstLevel(s string, topLabel string) (FirstLevelName, error) {
	parsed, err := Parse(s)
	if err != nil {
		return FirstLevelName{}, err
	}
	if parsed.LevelCount() != 2 {
		return FirstLevelName{}, icnerrors.InvalidName("first-level name must have exactly two labels")
	}
	top, _ := parsed.TopLevel()
	if top != topLabel {
		return FirstLevelName{}, icnerrors.InvalidName("top label must be " + topLabel)
	}
	first, _ := parsed.CurrentLevel()
	if len(first) < MinFirstLabelLen || len(first) > MaxFirstLabelLen {
		return FirstLevelName{}, icnerrors.InvalidName("first label length out of range")
	}
	return FirstLevelName{
		Full:       string(Normalize(s)),
		FirstLabel: first,
		TopLabel:   top,
	}, nil
}
