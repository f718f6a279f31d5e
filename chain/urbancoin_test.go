package chain_test

import (
	"context"
	"testing"

	"github.com/rowlokie/Civic-Guard/chain"

	"github.com/stretchr/testify/assert"
)

// TestGetBalance_InvalidAddress verifies the fast-fail path: a syntactically
// invalid address is rejected before any RPC traffic, so a client with no
// live connection must still return ErrInvalidAddress.
func TestGetBalance_InvalidAddress(t *testing.T) {
	uc := new(chain.UrbanCoin)

	cases := []string{
		"",
		"not-an-address",
		"0x123",
		"0xZZZZd35Cc6634C0532925a3b844Bc454e4438f44e",
	}

	for _, addr := range cases {
		_, err := uc.GetBalance(context.Background(), addr)
		assert.ErrorIs(t, err, chain.ErrInvalidAddress, "address %q", addr)
	}
}

// TestRewardCoins_Validation verifies address and amount checks run before
// any transaction is attempted.
func TestRewardCoins_Validation(t *testing.T) {
	uc := new(chain.UrbanCoin)

	_, err := uc.RewardCoins(context.Background(), "garbage", 10)
	assert.ErrorIs(t, err, chain.ErrInvalidAddress)

	valid := "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
	_, err = uc.RewardCoins(context.Background(), valid, 0)
	assert.ErrorIs(t, err, chain.ErrInvalidAmount)

	_, err = uc.RewardCoins(context.Background(), valid, -5)
	assert.ErrorIs(t, err, chain.ErrInvalidAmount)
}

// TestTransfer_Validation covers the transfer variants' input checks.
func TestTransfer_Validation(t *testing.T) {
	uc := new(chain.UrbanCoin)
	valid := "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

	_, err := uc.TransferCoins(context.Background(), "nope", "1")
	assert.ErrorIs(t, err, chain.ErrInvalidAddress)

	_, err = uc.TransferCoins(context.Background(), valid, "-1")
	assert.ErrorIs(t, err, chain.ErrInvalidAmount)

	_, err = uc.TransferFromUser(context.Background(), valid, "nope", "1")
	assert.ErrorIs(t, err, chain.ErrInvalidAddress)
}
