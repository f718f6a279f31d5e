package controllers

import (
	"context"
	"errors"
	"testing"

	authUtils "github.com/rowlokie/Civic-Guard/utils"

	"github.com/stretchr/testify/assert"
)

// fakeLedger satisfies chain.Ledger without any network.
type fakeLedger struct {
	txHash string
	err    error
	calls  int
}

func (f *fakeLedger) GetBalance(ctx context.Context, address string) (string, error) {
	return "0", f.err
}

func (f *fakeLedger) RewardCoins(ctx context.Context, toAddress string, amount int64) (string, error) {
	f.calls++
	return f.txHash, f.err
}

func (f *fakeLedger) TransferCoins(ctx context.Context, toAddress string, amount string) (string, error) {
	return f.txHash, f.err
}

func (f *fakeLedger) TransferFromUser(ctx context.Context, fromAddress, toAddress string, amount string) (string, error) {
	return f.txHash, f.err
}

// TestGrantOnChainReward_Success verifies the tx hash is propagated.
func TestGrantOnChainReward_Success(t *testing.T) {
	fake := &fakeLedger{txHash: "0xdeadbeef"}
	SetLedger(fake)
	t.Cleanup(func() { SetLedger(nil) })

	txHash := grantOnChainReward(context.Background(), "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", 10)

	assert.Equal(t, "0xdeadbeef", txHash)
	assert.Equal(t, 1, fake.calls)
}

// TestGrantOnChainReward_Failure verifies a chain failure is swallowed: the
// caller gets an empty hash and the report flow is never failed by it.
func TestGrantOnChainReward_Failure(t *testing.T) {
	fake := &fakeLedger{err: errors.New("rpc down")}
	SetLedger(fake)
	t.Cleanup(func() { SetLedger(nil) })

	txHash := grantOnChainReward(context.Background(), "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", 10)

	assert.Empty(t, txHash)
}

// TestGrantOnChainReward_NoLedger verifies the disabled-chain path.
func TestGrantOnChainReward_NoLedger(t *testing.T) {
	SetLedger(nil)

	txHash := grantOnChainReward(context.Background(), "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", 10)

	assert.Empty(t, txHash)
}

// TestParseLocationField_JSON verifies a JSON-encoded location is taken
// as-is, with address and city backfilled.
func TestParseLocationField_JSON(t *testing.T) {
	loc := parseLocationField(`{"address":"12 Hill Rd, Bandra","street":"Hill Rd","city":"Mumbai"}`)

	assert.Equal(t, "Hill Rd", loc.Street)
	assert.Equal(t, "Mumbai", loc.City)
	assert.Equal(t, "12 Hill Rd, Bandra", loc.Address)
}

// TestParseLocationField_JSONMissingCity verifies the city fallback applies
// to client-supplied objects too.
func TestParseLocationField_JSONMissingCity(t *testing.T) {
	loc := parseLocationField(`{"address":"12 Hill Rd","street":"Hill Rd"}`)

	assert.Equal(t, authUtils.DefaultCity, loc.City)
}

// TestParseLocationField_FreeText verifies free text goes through the
// heuristic parser.
func TestParseLocationField_FreeText(t *testing.T) {
	loc := parseLocationField("Elm St, Downtown, Clock Tower, West Suburb, Metropolis")

	assert.Equal(t, "Elm St", loc.Street)
	assert.Equal(t, "Metropolis", loc.City)
}
