package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/lidofinance/ensreg/client/types"
	"github.com/lidofinance/ensreg/mocks/serviceMocks"
)

var txHash = common.HexToHash("0xabc")

func TestNewClient_DetectsNetwork(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	backend := serviceMocks.NewMockBackend(ctrl)
	backend.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(5), nil)

	c, err := NewClient(ctx, backend, "")
	req.NoError(err)
	req.Equal(types.NetworkGoerli, c.Network())

	// a configured network wins over detection
	c, err = NewClient(ctx, backend, types.NetworkMainnet)
	req.NoError(err)
	req.Equal(types.NetworkMainnet, c.Network())

	backend.EXPECT().ChainID(gomock.Any()).Return(nil, errors.New("connection refused"))
	_, err = NewClient(ctx, backend, "")
	req.Error(err)
}

func TestClient_GetTransaction(t *testing.T) {
	var (
		req       = require.New(t)
		ctrl      = gomock.NewController(t)
		ctx       = context.Background()
		blockHash = common.HexToHash("0xb10c")
	)
	defer ctrl.Finish()

	backend := serviceMocks.NewMockBackend(ctrl)
	c, err := NewClient(ctx, backend, types.NetworkMainnet)
	req.NoError(err)

	gomock.InOrder(
		backend.EXPECT().TransactionByHash(gomock.Any(), txHash).Return(nil, false, ethereum.NotFound),
		backend.EXPECT().TransactionByHash(gomock.Any(), txHash).Return(&gethtypes.Transaction{}, true, nil),
		backend.EXPECT().TransactionByHash(gomock.Any(), txHash).Return(&gethtypes.Transaction{}, false, nil),
	)
	backend.EXPECT().TransactionReceipt(gomock.Any(), txHash).
		Return(&gethtypes.Receipt{BlockHash: blockHash, BlockNumber: big.NewInt(42)}, nil)

	// unknown to the node yet
	tx, err := c.GetTransaction(ctx, txHash)
	req.NoError(err)
	req.False(tx.IsMined())

	tx, err = c.GetTransaction(ctx, txHash)
	req.NoError(err)
	req.False(tx.IsMined())

	tx, err = c.GetTransaction(ctx, txHash)
	req.NoError(err)
	req.True(tx.IsMined())
	req.Equal(blockHash, *tx.BlockHash)
	req.Equal(int64(42), tx.BlockNumber.Int64())
}

func TestClient_GetTransactionError(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	backend := serviceMocks.NewMockBackend(ctrl)
	c, err := NewClient(ctx, backend, types.NetworkMainnet)
	req.NoError(err)

	backend.EXPECT().TransactionByHash(gomock.Any(), txHash).Return(nil, false, errors.New("rate limited"))
	_, err = c.GetTransaction(ctx, txHash)
	req.Error(err)
}

func TestClient_Blocks(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	backend := serviceMocks.NewMockBackend(ctrl)
	c, err := NewClient(ctx, backend, types.NetworkMainnet)
	req.NoError(err)

	header := &gethtypes.Header{Number: big.NewInt(100), Time: 1700000000}
	backend.EXPECT().HeaderByHash(gomock.Any(), header.Hash()).Return(header, nil)
	backend.EXPECT().HeaderByNumber(gomock.Any(), nil).Return(header, nil)

	block, err := c.GetBlockByHash(ctx, header.Hash())
	req.NoError(err)
	req.Equal(header.Hash(), block.Hash)
	req.Equal(uint64(100), block.Number)
	req.True(time.Unix(1700000000, 0).Equal(block.Timestamp))

	latest, err := c.GetLatestBlock(ctx)
	req.NoError(err)
	req.Equal(block, latest)
}

func TestClient_Next(t *testing.T) {
	var (
		req     = require.New(t)
		ctrl    = gomock.NewController(t)
		ctx     = context.Background()
		address = common.HexToAddress("0xa11ce")
	)
	defer ctrl.Finish()

	backend := serviceMocks.NewMockBackend(ctrl)
	c, err := NewClient(ctx, backend, types.NetworkMainnet)
	req.NoError(err)

	backend.EXPECT().PendingNonceAt(gomock.Any(), address).Return(uint64(12), nil)
	nonce, err := c.Next(ctx, address, types.NetworkMainnet)
	req.NoError(err)
	req.Equal(uint64(12), nonce)

	_, err = c.Next(ctx, address, types.NetworkGoerli)
	req.ErrorIs(err, ErrNetworkMismatch)
}

func TestClient_PendingTransaction(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	backend := serviceMocks.NewMockBackend(ctrl)
	c, err := NewClient(ctx, backend, types.NetworkMainnet)
	req.NoError(err)

	pending := gethtypes.NewTx(&gethtypes.DynamicFeeTx{Nonce: 3})
	gomock.InOrder(
		backend.EXPECT().TransactionByHash(gomock.Any(), txHash).Return(pending, true, nil),
		backend.EXPECT().TransactionByHash(gomock.Any(), txHash).Return(pending, false, nil),
		backend.EXPECT().TransactionByHash(gomock.Any(), txHash).Return(nil, false, ethereum.NotFound),
	)

	tx, err := c.PendingTransaction(ctx, txHash)
	req.NoError(err)
	req.Same(pending, tx)

	tx, err = c.PendingTransaction(ctx, txHash)
	req.NoError(err)
	req.Nil(tx)

	tx, err = c.PendingTransaction(ctx, txHash)
	req.NoError(err)
	req.Nil(tx)
}

func TestClient_SuggestFees(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	backend := serviceMocks.NewMockBackend(ctrl)
	c, err := NewClient(ctx, backend, types.NetworkMainnet)
	req.NoError(err)

	backend.EXPECT().SuggestGasTipCap(gomock.Any()).Return(big.NewInt(2), nil)
	backend.EXPECT().HeaderByNumber(gomock.Any(), nil).
		Return(&gethtypes.Header{Number: big.NewInt(1), BaseFee: big.NewInt(10)}, nil)

	tip, feeCap, err := c.SuggestFees(ctx)
	req.NoError(err)
	req.Equal(int64(2), tip.Int64())
	req.Equal(int64(22), feeCap.Int64())
}
