package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatUnits renders a raw on-chain integer as a decimal string, dividing
// by 10^decimals. Trailing zeros in the fraction are dropped.
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}

	s := raw.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}

	intPart := s[:len(s)-d]
	frac := strings.TrimRight(s[len(s)-d:], "0")

	out := intPart
	if frac != "" {
		out += "." + frac
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

// ParseUnits converts a decimal string in whole-token units to the raw
// integer representation expected by the contract. Fractions longer than
// the token's decimals are rejected rather than silently truncated.
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}

	neg := strings.HasPrefix(amount, "-")
	if neg {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	parts := strings.SplitN(amount, ".", 2)
	intPart := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	if intPart == "" && frac == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("%w: fraction exceeds %d decimals", ErrInvalidAmount, decimals)
	}

	digits := intPart + frac + strings.Repeat("0", int(decimals)-len(frac))

	units, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if units.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return units, nil
}
