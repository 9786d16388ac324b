package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/lidofinance/ensreg/client/types"
)

var ErrNetworkMismatch = errors.New("network mismatch")

// Backend is the part of ethclient.Client the adapter uses.
type Backend interface {
	ethereum.TransactionReader
	ethereum.ContractCaller
	ethereum.GasEstimator

	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByHash(ctx context.Context, hash common.Hash) (*gethtypes.Header, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*gethtypes.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	Close()
}

// Client serves the chain reads of the registration flows from one RPC
// endpoint. It implements the Provider, NonceProvider and TransactionLookup
// interfaces.
type Client struct {
	backend Backend
	network types.Network
}

// Dial connects to rpcURL and detects the network from the chain id unless
// network is set.
func Dial(ctx context.Context, rpcURL string, network types.Network) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}
	c, err := NewClient(ctx, eth, network)
	if err != nil {
		eth.Close()
		return nil, err
	}
	return c, nil
}

func NewClient(ctx context.Context, backend Backend, network types.Network) (*Client, error) {
	if network == "" {
		chainID, err := backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain id: %w", err)
		}
		network = types.NetworkFromChainID(chainID)
	}
	return &Client{
		backend: backend,
		network: network,
	}, nil
}

func (c *Client) Network() types.Network {
	return c.network
}

// Backend exposes the raw backend for the contract calls of the pricing and
// resolver services.
func (c *Client) Backend() Backend {
	return c.backend
}

func (c *Client) Close() {
	c.backend.Close()
}

// GetTransaction returns a transaction without a block hash while it is
// pending. A transaction the node does not know yet is reported as pending,
// a freshly broadcast commit may take a moment to propagate.
func (c *Client) GetTransaction(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	_, isPending, err := c.backend.TransactionByHash(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return &types.Transaction{Hash: hash}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", hash.Hex(), err)
	}
	if isPending {
		return &types.Transaction{Hash: hash}, nil
	}

	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return &types.Transaction{Hash: hash}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt %s: %w", hash.Hex(), err)
	}

	blockHash := receipt.BlockHash
	return &types.Transaction{
		Hash:        hash,
		BlockHash:   &blockHash,
		BlockNumber: receipt.BlockNumber,
	}, nil
}

func (c *Client) GetBlockByHash(ctx context.Context, hash common.Hash) (*types.Block, error) {
	header, err := c.backend.HeaderByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get block %s: %w", hash.Hex(), err)
	}
	return toBlock(header), nil
}

func (c *Client) GetLatestBlock(ctx context.Context) (*types.Block, error) {
	header, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block: %w", err)
	}
	return toBlock(header), nil
}

// Next returns the pending nonce of address.
func (c *Client) Next(ctx context.Context, address common.Address, network types.Network) (uint64, error) {
	if network != c.network {
		return 0, fmt.Errorf("%w: connected to %s, asked for %s", ErrNetworkMismatch, c.network, network)
	}
	nonce, err := c.backend.PendingNonceAt(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("failed to get nonce of %s: %w", address.Hex(), err)
	}
	return nonce, nil
}

// PendingTransaction returns nil once the transaction left the mempool.
func (c *Client) PendingTransaction(ctx context.Context, hash common.Hash) (*gethtypes.Transaction, error) {
	tx, isPending, err := c.backend.TransactionByHash(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", hash.Hex(), err)
	}
	if !isPending {
		return nil, nil
	}
	return tx, nil
}

// SuggestFees returns the current tip and fee cap suggestion.
func (c *Client) SuggestFees(ctx context.Context) (tip, feeCap *big.Int, err error) {
	tip, err = c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to suggest gas tip cap: %w", err)
	}
	header, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get latest block: %w", err)
	}
	feeCap = new(big.Int).Set(tip)
	if header.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(header.BaseFee, big.NewInt(2)))
	}
	return tip, feeCap, nil
}

func toBlock(header *gethtypes.Header) *types.Block {
	return &types.Block{
		Hash:      header.Hash(),
		Number:    header.Number.Uint64(),
		Timestamp: time.Unix(int64(header.Time), 0).UTC(),
	}
}
