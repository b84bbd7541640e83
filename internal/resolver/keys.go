package resolver

import (
	"regexp"
	"strings"

	"github.com/icnaming/icnaming/internal/icnerrors"
)

// Well-known keys, from original_source/src/canisters/common/src/constants.rs
// ALL_RESOLVER_KEYS.
const (
	KeyTokenETH                   = "token.eth"
	KeyTokenBTC                   = "token.btc"
	KeyTokenICP                   = "token.icp"
	KeyTokenLTC                   = "token.ltc"
	KeyCanisterICP                = "canister.icp"
	KeyPrincipalICP               = "principal.icp"
	KeyAccountIDICP               = "account_id.icp"
	KeyEmail                      = "email"
	KeyURL                        = "url"
	KeyAvatar                     = "avatar"
	KeyDescription                = "description"
	KeyNotice                     = "notice"
	KeyKeywords                   = "keywords"
	KeyTwitter                    = "com.twitter"
	KeyGithub                     = "com.github"
	KeyReverseResolutionPrincipal = "settings.reverse_resolution.principal"
)

var ethRe = regexp.MustCompile(`^0x[0-9a-f]{40}$`)
var hexAccountIDRe = regexp.MustCompile(`^[0-9a-f]{64}$`)
var principalRe = regexp.MustCompile(`^[a-z0-9-]{5,63}$`)

// normalizeAndValidate applies the per-key normalization and format check of
// spec.md §4.3's key validation table, returning the value to actually
// store. KeyReverseResolutionPrincipal is routed by the caller and never
// reaches this function for kv storage.
func normalizeAndValidate(key, value string) (string, error) {
	switch key {
	case KeyTokenETH:
		v := strings.ToLower(value)
		if !ethRe.MatchString(v) {
			return "", icnerrors.InvalidResolverValueFormat(value, "0x-prefixed 40 hex chars")
		}
		return v, nil
	case KeyTokenBTC:
		if !validateBTCAddress(value) {
			return "", icnerrors.InvalidResolverValueFormat(value, "base58Check bitcoin address")
		}
		return value, nil
	case KeyTokenLTC:
		if !validateLTCAddress(value) {
			return "", icnerrors.InvalidResolverValueFormat(value, "base58Check litecoin address")
		}
		return value, nil
	case KeyTokenICP:
		if !principalRe.MatchString(value) && !hexAccountIDRe.MatchString(value) {
			return "", icnerrors.InvalidResolverValueFormat(value, "principal text or 64-hex account id")
		}
		return value, nil
	case KeyPrincipalICP:
		if !principalRe.MatchString(value) {
			return "", icnerrors.InvalidResolverValueFormat(value, "principal text")
		}
		return value, nil
	case KeyAccountIDICP:
		if !hexAccountIDRe.MatchString(value) {
			return "", icnerrors.InvalidResolverValueFormat(value, "64-hex account id")
		}
		return value, nil
	default:
		// Other well-known keys (and any opaque key) are length-bounded
		// strings validated by the caller's general kv length caps.
		return value, nil
	}
}
