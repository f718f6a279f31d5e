package chain_test

import (
	"math/big"
	"testing"

	"github.com/rowlokie/Civic-Guard/chain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUnits(t *testing.T) {
	wei, ok := new(big.Int).SetString("1500000000000000000", 10)
	require.True(t, ok)

	assert.Equal(t, "1.5", chain.FormatUnits(wei, 18))
	assert.Equal(t, "0", chain.FormatUnits(big.NewInt(0), 18))
	assert.Equal(t, "0.000000000000000001", chain.FormatUnits(big.NewInt(1), 18))
	assert.Equal(t, "10", chain.FormatUnits(big.NewInt(10), 0))
	assert.Equal(t, "0", chain.FormatUnits(nil, 18))
}

func TestParseUnits(t *testing.T) {
	units, err := chain.ParseUnits("1.5", 18)
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", units.String())

	units, err = chain.ParseUnits("10", 0)
	require.NoError(t, err)
	assert.Equal(t, "10", units.String())
}

func TestParseUnits_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		amount string
	}{
		{"empty", ""},
		{"negative", "-1"},
		{"zero", "0"},
		{"not a number", "ten"},
		{"too many decimals", "1.123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chain.ParseUnits(tc.amount, 2)
			assert.ErrorIs(t, err, chain.ErrInvalidAmount)
		})
	}
}

// TestUnitsRoundTrip verifies parse and format are inverses for exact values.
func TestUnitsRoundTrip(t *testing.T) {
	units, err := chain.ParseUnits("123.45", 18)
	require.NoError(t, err)
	assert.Equal(t, "123.45", chain.FormatUnits(units, 18))
}
