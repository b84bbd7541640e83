package resolver

import (
	"crypto/sha256"
	"math/big"
)

// coinaddress validates base58Check addresses (Bitcoin/Litecoin), ported
// from original_source/src/canisters/resolver/src/coinaddress.rs. There is
// no pack library offering a generic base58Check decode with arbitrary
// version bytes, so this stays on math/big + crypto/sha256 (both stdlib).

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var base58Index = func() map[byte]int64 {
	m := make(map[byte]int64, len(base58Alphabet))
	for i := 0; i < len(base58Alphabet); i++ {
		m[base58Alphabet[i]] = int64(i)
	}
	return m
}()

func decodeBase58(s string) (*big.Int, bool) {
	result := new(big.Int)
	base := big.NewInt(58)
	if len(s) == 0 {
		return nil, false
	}
	for i := 0; i < len(s); i++ {
		digit, ok := base58Index[s[i]]
		if !ok {
			return nil, false
		}
		result.Mul(result, base)
		result.Add(result, big.NewInt(digit))
	}
	return result, true
}

func padTo(b []byte, length int) []byte {
	if len(b) >= length {
		return b
	}
	out := make([]byte, length)
	copy(out[length-len(b):], b)
	return out
}

func doubleSHA256(b []byte) []byte {
	h1 := sha256.Sum256(b)
	h2 := sha256.Sum256(h1[:])
	return h2[:]
}

// validateBase58Hash returns the version byte of addr if its base58Check
// checksum is valid.
func validateBase58Hash(addr string) (byte, bool) {
	if len(addr) == 0 {
		return 0, false
	}
	decoded, ok := decodeBase58(addr)
	if !ok {
		return 0, false
	}
	padded := padTo(decoded.Bytes(), 25)
	if len(padded) != 25 {
		return 0, false
	}
	payload := padded[:len(padded)-4]
	checksum := padded[len(padded)-4:]
	computed := doubleSHA256(payload)[:4]
	for i := range checksum {
		if checksum[i] != computed[i] {
			return 0, false
		}
	}
	return padded[0], true
}

var btcVersions = map[byte]struct{}{0: {}, 5: {}, 111: {}}
var ltcVersions = map[byte]struct{}{48: {}, 111: {}}

// validateBTCAddress reports whether addr is a checksum-valid Bitcoin
// address of version 0, 5, or 111.
func validateBTCAddress(addr string) bool {
	v, ok := validateBase58Hash(addr)
	if !ok {
		return false
	}
	_, known := btcVersions[v]
	return known
}

// validateLTCAddress reports whether addr is a checksum-valid Litecoin
// address of version 48 or 111.
func validateLTCAddress(addr string) bool {
	v, ok := validateBase58Hash(addr)
	if !ok {
		return false
	}
	_, known := ltcVersions[v]
	return known
}
