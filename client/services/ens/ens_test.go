package ens

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/lidofinance/ensreg/client/types"
)

func TestNameHash(t *testing.T) {
	req := require.New(t)

	req.Equal(common.Hash{}, NameHash(""))
	req.Equal(
		common.HexToHash("0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"),
		NameHash("eth"),
	)
	req.Equal(
		common.HexToHash("0xee6c4522aab0003e8d14cd40a6af439055fd2577951148c14b6cea9a53475835"),
		NameHash("vitalik.eth"),
	)
	req.Equal(NameHash("vitalik.eth"), NameHash("Vitalik.ETH"))
}

func TestLabelHash(t *testing.T) {
	require.Equal(t,
		common.HexToHash("0x4f5b812789fc606be1b3b16908db13fc7a9adf7ca72641f84d75b47069d3d7f0"),
		LabelHash("eth"),
	)
}

func TestCommitment(t *testing.T) {
	req := require.New(t)

	owner := common.HexToAddress("0x01")
	resolver := common.HexToAddress("0x02")
	secret := common.HexToHash("0x03")

	short := Commitment("alice", owner, secret, common.Address{}, common.Address{})
	withConfig := Commitment("alice", owner, secret, resolver, owner)
	req.NotEqual(short, withConfig)

	// a fresh secret gives a fresh commitment
	req.NotEqual(withConfig, Commitment("alice", owner, common.HexToHash("0x04"), resolver, owner))
	req.Equal(withConfig, Commitment("alice", owner, secret, resolver, owner))
}

func TestContracts_CallMsg(t *testing.T) {
	var (
		req       = require.New(t)
		contracts = MainnetContracts()
		from      = common.HexToAddress("0xaa")
		salt      = common.HexToHash("0x05")
	)

	params := &types.ActionParameters{
		Name:         "alice.eth",
		Duration:     31536000,
		OwnerAddress: from,
		RentPrice:    big.NewInt(1000),
		Salt:         &salt,
		Records:      types.Records{"url": "https://alice.example", "avatar": "ipfs://cid"},
	}

	msg, err := contracts.CallMsg(types.ActionCommit, from, params)
	req.NoError(err)
	req.Equal(contracts.Controller, *msg.To)
	req.Equal(ControllerABI.Methods["commit"].ID, msg.Data[:4])

	msg, err = contracts.CallMsg(types.ActionRegister, from, params)
	req.NoError(err)
	req.Equal(params.RentPrice, msg.Value)
	req.Equal(ControllerABI.Methods["registerWithConfig"].ID, msg.Data[:4])

	msg, err = contracts.CallMsg(types.ActionSetRecords, from, params)
	req.NoError(err)
	req.Equal(contracts.PublicResolver, *msg.To)
	req.Equal(ResolverABI.Methods["multicall"].ID, msg.Data[:4])

	_, err = contracts.CallMsg(types.ActionTransfer, from, params)
	req.Error(err)

	_, err = contracts.CallMsg(types.ActionSpeedUpCommit, from, params)
	req.ErrorIs(err, ErrUnsupportedAction)
}

type stubCaller struct {
	msg ethereum.CallMsg
	out []byte
}

func (c *stubCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	c.msg = msg
	return c.out, nil
}

func TestRegistryResolverLookup(t *testing.T) {
	req := require.New(t)

	resolver := common.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41")
	out, err := RegistryABI.Methods["resolver"].Outputs.Pack(resolver)
	req.NoError(err)

	caller := &stubCaller{out: out}
	registry := MainnetContracts().Registry

	got, err := NewRegistryResolverLookup(caller, registry).Resolver(context.Background(), "alice.eth")
	req.NoError(err)
	req.Equal(resolver, got)
	req.Equal(registry, *caller.msg.To)

	expected, err := RegistryABI.Pack("resolver", NameHash("alice.eth"))
	req.NoError(err)
	req.Equal(expected, caller.msg.Data)
}
