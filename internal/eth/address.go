package eth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrInvalidAddress is returned for strings that are not 0x-prefixed
// 20-byte hex addresses or that fail their EIP-55 checksum.
var ErrInvalidAddress = errors.New("invalid wallet address")

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// IsHexAddress reports whether s looks like an Ethereum address
// (0x prefix followed by 40 hex digits). It does not verify the checksum.
func IsHexAddress(s string) bool {
	return len(s) == 42 && strings.HasPrefix(s, "0x") && isHex(s[2:])
}

// Checksum returns the EIP-55 mixed-case form of addr. A hex digit is
// uppercased when the corresponding nibble of the Keccak-256 hash of the
// lowercase address body is >= 8.
func Checksum(addr string) (string, error) {
	if !IsHexAddress(addr) {
		return "", ErrInvalidAddress
	}
	body := strings.ToLower(addr[2:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(body))
	hash := h.Sum(nil)

	out := make([]byte, 42)
	copy(out, "0x")
	for i := 0; i < 40; i++ {
		c := body[i]
		if c >= 'a' && c <= 'f' {
			nibble := hash[i/2] >> 4
			if i%2 == 1 {
				nibble = hash[i/2] & 0x0f
			}
			if nibble >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[2+i] = c
	}
	return string(out), nil
}

// Normalize validates addr and returns its canonical EIP-55 form, which the
// rest of the service uses as the identity and cache key for a wallet.
// Mixed-case input must carry a correct checksum; all-lower or all-upper
// input is accepted and checksummed.
func Normalize(addr string) (string, error) {
	checked, err := Checksum(addr)
	if err != nil {
		return "", err
	}
	body := addr[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) && addr != checked {
		return "", ErrInvalidAddress
	}
	return checked, nil
}
