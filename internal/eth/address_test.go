package eth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Reference vectors from the EIP-55 specification.
var checksummed = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestChecksum_ReferenceVectors(t *testing.T) {
	for _, want := range checksummed {
		got, err := Checksum(strings.ToLower(want))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestNormalize_AcceptsLowerUpperAndCorrectMixedCase(t *testing.T) {
	want := checksummed[0]

	got, err := Normalize(strings.ToLower(want))
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = Normalize("0x" + strings.ToUpper(want[2:]))
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = Normalize(want)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestNormalize_RejectsBadChecksumAndMalformedInput(t *testing.T) {
	// Flip the case of one letter to break the checksum.
	bad := strings.Replace(checksummed[0], "Aeb", "aeb", 1)
	_, err := Normalize(bad)
	require.ErrorIs(t, err, ErrInvalidAddress)

	for _, s := range []string{
		"",
		"0x123",
		"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		"0xZZaeb6053f3e94c9b9a09f33669435e7ef1beaed",
	} {
		_, err := Normalize(s)
		require.ErrorIs(t, err, ErrInvalidAddress, "input %q", s)
	}
}
