package ens

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/lidofinance/ensreg/client/config"
	"github.com/lidofinance/ensreg/client/types"
)

var ErrUnsupportedAction = errors.New("action has no calldata")

// Contracts are the ENS deployments the client talks to.
type Contracts struct {
	Registry         common.Address
	BaseRegistrar    common.Address
	Controller       common.Address
	ReverseRegistrar common.Address
	PublicResolver   common.Address
}

func MainnetContracts() Contracts {
	return Contracts{
		Registry:         common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
		BaseRegistrar:    common.HexToAddress("0x57f1887a8BF19b14fC0dF6Fd9B2acc9Af147eA85"),
		Controller:       common.HexToAddress("0x283Af0B28c62C092C9727F1Ee09c02CA627EB7F5"),
		ReverseRegistrar: common.HexToAddress("0x084b1c3C81545d370f3634392De611CaaBFf8148"),
		PublicResolver:   common.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41"),
	}
}

// ContractsFromConfig overrides the mainnet deployments with the configured
// addresses.
func ContractsFromConfig(cfg *config.ChainConfig) Contracts {
	contracts := MainnetContracts()
	if cfg == nil {
		return contracts
	}
	override := func(dst *common.Address, hex string) {
		if common.IsHexAddress(hex) {
			*dst = common.HexToAddress(hex)
		}
	}
	override(&contracts.Registry, cfg.RegistryAddress)
	override(&contracts.BaseRegistrar, cfg.BaseRegistrarAddress)
	override(&contracts.Controller, cfg.ControllerAddress)
	override(&contracts.ReverseRegistrar, cfg.ReverseRegistrarAddress)
	override(&contracts.PublicResolver, cfg.PublicResolverAddress)
	return contracts
}

// CallMsg builds the main transaction of an action, the one its gas limit is
// estimated for.
func (c Contracts) CallMsg(action types.ActionType, from common.Address, params *types.ActionParameters) (ethereum.CallMsg, error) {
	msg := ethereum.CallMsg{From: from}
	label := labelOf(params.Name)

	var (
		data []byte
		err  error
	)
	switch action {
	case types.ActionCommit:
		if params.Salt == nil {
			return msg, fmt.Errorf("missing salt for %s", params.Name)
		}
		commitment := Commitment(label, params.OwnerAddress, *params.Salt, c.PublicResolver, params.OwnerAddress)
		msg.To = &c.Controller
		data, err = ControllerABI.Pack("commit", commitment)
	case types.ActionRegister:
		if params.Salt == nil {
			return msg, fmt.Errorf("missing salt for %s", params.Name)
		}
		msg.To = &c.Controller
		msg.Value = params.RentPrice
		data, err = ControllerABI.Pack("registerWithConfig",
			label, params.OwnerAddress, big.NewInt(params.Duration), *params.Salt, c.PublicResolver, params.OwnerAddress)
	case types.ActionRenew:
		msg.To = &c.Controller
		msg.Value = params.RentPrice
		data, err = ControllerABI.Pack("renew", label, big.NewInt(params.Duration))
	case types.ActionSetName:
		msg.To = &c.ReverseRegistrar
		data, err = ReverseRegistrarABI.Pack("setName", params.Name)
	case types.ActionSetRecords:
		resolver := c.PublicResolver
		if params.ResolverAddress != nil && *params.ResolverAddress != (common.Address{}) {
			resolver = *params.ResolverAddress
		}
		msg.To = &resolver
		data, err = SetRecordsCalldata(params.Name, params.Records)
	case types.ActionTransfer:
		if params.ToAddress == nil {
			return msg, fmt.Errorf("missing recipient for %s", params.Name)
		}
		msg.To = &c.BaseRegistrar
		tokenID := LabelHash(label).Big()
		data, err = BaseRegistrarABI.Pack("safeTransferFrom", from, *params.ToAddress, tokenID)
	default:
		return msg, fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}
	if err != nil {
		return msg, fmt.Errorf("failed to pack %s: %w", action, err)
	}
	msg.Data = data
	return msg, nil
}

// SetRecordsCalldata packs one setText per record into a resolver multicall.
// Keys are sorted so the calldata is deterministic.
func SetRecordsCalldata(name string, records types.Records) ([]byte, error) {
	node := NameHash(name)
	calls := make([][]byte, 0, len(records))
	for _, key := range sortedKeys(records) {
		call, err := ResolverABI.Pack("setText", node, key, records[key])
		if err != nil {
			return nil, fmt.Errorf("failed to pack setText %s: %w", key, err)
		}
		calls = append(calls, call)
	}
	return ResolverABI.Pack("multicall", calls)
}
