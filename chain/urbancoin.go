package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/sirupsen/logrus"
)

// UrbanCoinABI covers the contract surface the backend touches: the ERC-20
// read/transfer functions plus the owner-only reward function.
const UrbanCoinABI = `[{"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"reward","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"address","name":"recipient","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"address","name":"sender","type":"address"},{"internalType":"address","name":"recipient","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transferFrom","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}]`

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidAmount  = errors.New("invalid amount")
)

const (
	callTimeout = 15 * time.Second
	mineTimeout = 2 * time.Minute
)

// Ledger is the token-contract surface consumed by the controllers. It is
// an interface so handlers can be exercised against a fake in tests.
type Ledger interface {
	GetBalance(ctx context.Context, address string) (string, error)
	RewardCoins(ctx context.Context, toAddress string, amount int64) (string, error)
	TransferCoins(ctx context.Context, toAddress string, amount string) (string, error)
	TransferFromUser(ctx context.Context, fromAddress, toAddress string, amount string) (string, error)
}

// UrbanCoin talks to the deployed token contract over JSON-RPC. Reads go
// straight to the node; writes are signed with the admin key that deployed
// the contract and block until the transaction is mined.
type UrbanCoin struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	auth     *bind.TransactOpts
	decimals uint8

	// serializes transactions so concurrent requests don't race on the
	// admin account nonce
	mu sync.Mutex
}

// NewUrbanCoin dials the RPC endpoint, binds the contract and prepares the
// admin signer. Called once at process start; the resulting client is
// passed by reference to the controllers.
func NewUrbanCoin(rpcURL, contractAddress, privateKeyHex string) (*UrbanCoin, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}

	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("%w: contract address %q", ErrInvalidAddress, contractAddress)
	}

	parsedABI, err := abi.JSON(strings.NewReader(UrbanCoinABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse UrbanCoin ABI: %w", err)
	}

	contract := bind.NewBoundContract(common.HexToAddress(contractAddress), parsedABI, client, client, client)

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin private key: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}

	uc := &UrbanCoin{client: client, contract: contract, auth: auth}

	var out []interface{}
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "decimals"); err != nil {
		return nil, fmt.Errorf("failed to fetch token decimals: %w", err)
	}
	uc.decimals = out[0].(uint8)

	return uc, nil
}

// Decimals returns the token's decimal count fetched at construction.
func (u *UrbanCoin) Decimals() uint8 {
	return u.decimals
}

// GetBalance returns the on-chain balance of address as a decimal string.
// A syntactically invalid address fails fast without any network call.
func (u *UrbanCoin) GetBalance(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var out []interface{}
	err := u.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", common.HexToAddress(address))
	if err != nil {
		return "", fmt.Errorf("balanceOf call failed: %w", err)
	}

	raw := out[0].(*big.Int)
	return FormatUnits(raw, u.decimals), nil
}

// RewardCoins mints/sends a reward from the admin wallet and returns the
// transaction hash once the transaction has been mined. This blocks for at
// least one block time; treat it as slow, fallible external I/O.
func (u *UrbanCoin) RewardCoins(ctx context.Context, toAddress string, amount int64) (string, error) {
	if !common.IsHexAddress(toAddress) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, toAddress)
	}
	if amount <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	return u.transact(ctx, "reward", common.HexToAddress(toAddress), big.NewInt(amount))
}

// TransferCoins moves tokens from the admin wallet to toAddress. Amount is
// a decimal string in whole-token units and is scaled by the token's
// decimals before submission.
func (u *UrbanCoin) TransferCoins(ctx context.Context, toAddress string, amount string) (string, error) {
	if !common.IsHexAddress(toAddress) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, toAddress)
	}
	units, err := ParseUnits(amount, u.decimals)
	if err != nil {
		return "", err
	}

	return u.transact(ctx, "transfer", common.HexToAddress(toAddress), units)
}

// TransferFromUser moves tokens between two user wallets using an
// allowance previously granted to the admin wallet.
func (u *UrbanCoin) TransferFromUser(ctx context.Context, fromAddress, toAddress string, amount string) (string, error) {
	if !common.IsHexAddress(fromAddress) || !common.IsHexAddress(toAddress) {
		return "", ErrInvalidAddress
	}
	units, err := ParseUnits(amount, u.decimals)
	if err != nil {
		return "", err
	}

	return u.transact(ctx, "transferFrom", common.HexToAddress(fromAddress), common.HexToAddress(toAddress), units)
}

func (u *UrbanCoin) transact(ctx context.Context, method string, params ...interface{}) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, mineTimeout)
	defer cancel()

	opts := &bind.TransactOpts{
		From:    u.auth.From,
		Signer:  u.auth.Signer,
		Context: ctx,
	}

	tx, err := u.contract.Transact(opts, method, params...)
	if err != nil {
		log.WithError(err).WithField("method", method).Error("transaction submission failed")
		return "", fmt.Errorf("%s transaction failed: %w", method, err)
	}

	log.WithFields(log.Fields{"method": method, "tx": tx.Hash().Hex()}).Info("transaction submitted")

	if _, err := bind.WaitMined(ctx, u.client, tx); err != nil {
		log.WithError(err).WithField("tx", tx.Hash().Hex()).Error("transaction not mined")
		return "", fmt.Errorf("waiting for %s transaction: %w", method, err)
	}

	return tx.Hash().Hex(), nil
}
