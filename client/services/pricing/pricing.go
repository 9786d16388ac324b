package pricing

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"

	"github.com/lidofinance/ensreg/client/services/ens"
	"github.com/lidofinance/ensreg/client/types"
)

const (
	DefaultRentPriceTTL = time.Minute

	// estimates are padded by gasPaddingPercent percent
	gasPaddingPercent = 10
)

type Backend interface {
	ethereum.ContractCaller
	ethereum.GasEstimator
}

// Service reads rent prices from the registrar controller and estimates the
// gas limit of the action transactions.
type Service struct {
	backend   Backend
	contracts ens.Contracts
	prices    *cache.Cache
}

func NewService(backend Backend, contracts ens.Contracts, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultRentPriceTTL
	}
	return &Service{
		backend:   backend,
		contracts: contracts,
		prices:    cache.New(ttl, 2*ttl),
	}
}

// RentPrice returns the price of renting label for duration seconds, in wei.
func (s *Service) RentPrice(ctx context.Context, label string, duration int64) (*big.Int, error) {
	key := fmt.Sprintf("%s:%d", label, duration)
	if cached, ok := s.prices.Get(key); ok {
		return new(big.Int).Set(cached.(*big.Int)), nil
	}

	data, err := ens.ControllerABI.Pack("rentPrice", label, big.NewInt(duration))
	if err != nil {
		return nil, fmt.Errorf("failed to pack rentPrice: %w", err)
	}
	out, err := s.backend.CallContract(ctx, ethereum.CallMsg{To: &s.contracts.Controller, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call rentPrice: %w", err)
	}
	values, err := ens.ControllerABI.Unpack("rentPrice", out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack rentPrice: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected rentPrice output: %v", values)
	}
	price, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected rentPrice type %T", values[0])
	}

	s.prices.SetDefault(key, price)
	return new(big.Int).Set(price), nil
}

func (s *Service) EstimateGasLimit(
	ctx context.Context,
	action types.ActionType,
	from common.Address,
	params *types.ActionParameters,
) (uint64, error) {
	msg, err := s.contracts.CallMsg(action, from, params)
	if err != nil {
		return 0, err
	}
	gas, err := s.backend.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate %s: %w", action, err)
	}
	return gas + gas*gasPaddingPercent/100, nil
}
