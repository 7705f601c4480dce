// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package evm implements chain.Client for EVM networks: contracts are
// deployed from compiled artifacts and transactions are signed locally with
// the configured accounts.
package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/luxfi/deployer/pkg/chain"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/key"
	ethereum "github.com/luxfi/geth"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/ethclient"
	luxlog "github.com/luxfi/log"
	"go.uber.org/zap"
)

// Backend is the node API the client needs. *ethclient.Client implements it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
}

// Config configures a Client.
type Config struct {
	RPC string
	// ChainID is verified against the node when set.
	ChainID        *big.Int
	Accounts       []*key.Account
	Artifacts      string
	ReceiptTimeout time.Duration
	// GasLimit overrides gas estimation when non zero.
	GasLimit uint64
	Log      luxlog.Logger
}

// Client deploys and calls contracts on one EVM network.
type Client struct {
	backend        Backend
	chainID        *big.Int
	artifacts      *ArtifactStore
	signers        map[common.Address]*ecdsa.PrivateKey
	receiptTimeout time.Duration
	gasLimit       uint64
	log            luxlog.Logger
	close          func()
}

var (
	_ chain.Client        = (*Client)(nil)
	_ chain.ReceiptLookup = (*Client)(nil)
)

// Dial connects to cfg.RPC and checks the node serves the expected chain.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()
	rpc, err := ethclient.DialContext(dialCtx, cfg.RPC)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.RPC, err)
	}
	c, err := NewClient(ctx, rpc, cfg)
	if err != nil {
		rpc.Close()
		return nil, err
	}
	c.close = rpc.Close
	return c, nil
}

// NewClient builds a client over an existing backend.
func NewClient(ctx context.Context, backend Backend, cfg Config) (*Client, error) {
	reqCtx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()
	chainID, err := backend.ChainID(reqCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if cfg.ChainID != nil && cfg.ChainID.Sign() != 0 && cfg.ChainID.Cmp(chainID) != 0 {
		return nil, fmt.Errorf("node at %s serves chain %s, expected %s", cfg.RPC, chainID, cfg.ChainID)
	}

	log := cfg.Log
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	timeout := cfg.ReceiptTimeout
	if timeout <= 0 {
		timeout = constants.DefaultReceiptTimeout
	}
	signers := make(map[common.Address]*ecdsa.PrivateKey, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		signers[a.Address] = a.PrivateKey
	}
	return &Client{
		backend:        backend,
		chainID:        chainID,
		artifacts:      NewArtifactStore(cfg.Artifacts),
		signers:        signers,
		receiptTimeout: timeout,
		gasLimit:       cfg.GasLimit,
		log:            log,
		close:          func() {},
	}, nil
}

// ChainID returns the chain id reported by the node.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Artifacts returns the store contracts are loaded from.
func (c *Client) Artifacts() *ArtifactStore {
	return c.artifacts
}

func (c *Client) Close() {
	c.close()
}

// Balance returns the native balance of address at the latest block.
func (c *Client) Balance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%q is not a hex address", address)
	}
	reqCtx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()
	return c.backend.BalanceAt(reqCtx, common.HexToAddress(address), nil)
}

// Deploy sends the creation transaction of req.Contract and waits for it to
// be mined.
func (c *Client) Deploy(ctx context.Context, req chain.DeployRequest) (chain.DeployResult, error) {
	op := "deploy " + req.Contract
	art, err := c.artifacts.Load(req.Contract)
	if err != nil {
		return chain.DeployResult{}, rejected(op, err)
	}
	args, err := CoerceArgs(art.ABI.Constructor.Inputs, req.Args)
	if err != nil {
		return chain.DeployResult{}, rejected(op, fmt.Errorf("constructor: %w", err))
	}
	opts, err := c.transactor(ctx, req.From, req.Value)
	if err != nil {
		return chain.DeployResult{}, rejected(op, err)
	}

	address, tx, _, err := bind.DeployContract(opts, art.ABI, art.Bytecode, c.backend, args...)
	if err != nil {
		return chain.DeployResult{}, transactionError(op, tx, err)
	}
	c.log.Debug("deployment submitted",
		zap.String("contract", req.Contract),
		zap.String("tx", tx.Hash().Hex()),
		zap.String("address", address.Hex()),
	)
	if req.Submitted != nil {
		req.Submitted(tx.Hash().Hex())
	}

	receipt, err := c.wait(ctx, op, tx)
	if err != nil {
		return chain.DeployResult{}, err
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}
	return chain.DeployResult{Address: address.Hex(), TxID: tx.Hash().Hex()}, nil
}

// Call invokes req.Method. View and pure methods are evaluated with
// eth_call and return their outputs; anything else is sent as a transaction
// and waited for.
func (c *Client) Call(ctx context.Context, req chain.CallRequest) (chain.CallResult, error) {
	op := fmt.Sprintf("call %s.%s", req.Contract, req.Method)
	art, err := c.artifacts.Load(req.Contract)
	if err != nil {
		return chain.CallResult{}, rejected(op, err)
	}
	method, ok := art.ABI.Methods[req.Method]
	if !ok {
		return chain.CallResult{}, rejected(op, fmt.Errorf("method %q not found in %s abi", req.Method, art.Name))
	}
	if !common.IsHexAddress(req.Address) {
		return chain.CallResult{}, rejected(op, fmt.Errorf("%q is not a hex address", req.Address))
	}
	args, err := CoerceArgs(method.Inputs, req.Args)
	if err != nil {
		return chain.CallResult{}, rejected(op, err)
	}
	bound := bind.NewBoundContract(common.HexToAddress(req.Address), art.ABI, c.backend, c.backend, c.backend)

	if method.IsConstant() && req.Value == nil {
		var out []interface{}
		callOpts := &bind.CallOpts{Context: ctx, From: common.HexToAddress(req.From)}
		if err := bound.Call(callOpts, &out, req.Method, args...); err != nil {
			return chain.CallResult{}, transactionError(op, nil, err)
		}
		return chain.CallResult{Outputs: formatOutputs(out)}, nil
	}

	opts, err := c.transactor(ctx, req.From, req.Value)
	if err != nil {
		return chain.CallResult{}, rejected(op, err)
	}
	tx, err := bound.Transact(opts, req.Method, args...)
	if err != nil {
		return chain.CallResult{}, transactionError(op, tx, err)
	}
	c.log.Debug("transaction submitted", zap.String("op", op), zap.String("tx", tx.Hash().Hex()))
	if req.Submitted != nil {
		req.Submitted(tx.Hash().Hex())
	}
	if _, err := c.wait(ctx, op, tx); err != nil {
		return chain.CallResult{}, err
	}
	return chain.CallResult{TxID: tx.Hash().Hex()}, nil
}

// LookupDeployment reports the contract created by txID, if it was mined.
func (c *Client) LookupDeployment(ctx context.Context, txID string) (string, bool, error) {
	receipt, err := c.lookupReceipt(ctx, txID)
	if err != nil || receipt == nil {
		return "", false, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful || receipt.ContractAddress == (common.Address{}) {
		return "", false, nil
	}
	return receipt.ContractAddress.Hex(), true, nil
}

// LookupCall reports whether the call sent in txID was mined successfully.
func (c *Client) LookupCall(ctx context.Context, txID string) (bool, error) {
	receipt, err := c.lookupReceipt(ctx, txID)
	if err != nil || receipt == nil {
		return false, err
	}
	return receipt.Status == types.ReceiptStatusSuccessful, nil
}

// lookupReceipt returns the receipt of txID, or nil when the network no
// longer knows the transaction.
func (c *Client) lookupReceipt(ctx context.Context, txID string) (*types.Receipt, error) {
	reqCtx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	hash := common.HexToHash(txID)
	receipt, err := c.backend.TransactionReceipt(reqCtx, hash)
	if errors.Is(err, ethereum.NotFound) {
		_, pending, err := c.backend.TransactionByHash(reqCtx, hash)
		switch {
		case errors.Is(err, ethereum.NotFound):
			return nil, nil
		case err != nil:
			return nil, transactionError("lookup "+txID, nil, err)
		case pending:
			return nil, fmt.Errorf("transaction %s is still pending, retry once it is mined", txID)
		}
		return nil, nil
	}
	if err != nil {
		return nil, transactionError("lookup "+txID, nil, err)
	}
	return receipt, nil
}

func (c *Client) transactor(ctx context.Context, from string, value *big.Int) (*bind.TransactOpts, error) {
	if !common.IsHexAddress(from) {
		return nil, fmt.Errorf("invalid sender %q", from)
	}
	pk, ok := c.signers[common.HexToAddress(from)]
	if !ok {
		return nil, fmt.Errorf("no signing key for %s", from)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(pk, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.GasLimit = c.gasLimit
	if value != nil {
		opts.Value = new(big.Int).Set(value)
	}
	return opts, nil
}

// wait blocks until tx is mined or the receipt timeout elapses.
func (c *Client) wait(ctx context.Context, op string, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.receiptTimeout)
	defer cancel()

	txID := tx.Hash().Hex()
	receipt, err := bind.WaitMined(waitCtx, c.backend, tx)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, &chain.ChainError{Op: op, Kind: chain.KindCanceled, TxID: txID, Err: ctx.Err()}
		case errors.Is(waitCtx.Err(), context.DeadlineExceeded):
			return nil, &chain.ChainError{
				Op:   op,
				Kind: chain.KindTimeout,
				TxID: txID,
				Err:  &chain.TimeoutError{TxID: txID, Timeout: c.receiptTimeout},
			}
		}
		return nil, transactionError(op, tx, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &chain.ChainError{
			Op:   op,
			Kind: chain.KindReverted,
			TxID: txID,
			Err:  fmt.Errorf("transaction reverted in block %s, gas used %d", receipt.BlockNumber, receipt.GasUsed),
		}
	}
	c.log.Debug("transaction mined",
		zap.String("op", op),
		zap.String("tx", txID),
		zap.Uint64("gas-used", receipt.GasUsed),
	)
	return receipt, nil
}
