package ens

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/lidofinance/ensreg/client/types"
)

// RegistryResolverLookup reads the resolver of a name from the ENS registry.
type RegistryResolverLookup struct {
	caller   ethereum.ContractCaller
	registry common.Address
}

func NewRegistryResolverLookup(caller ethereum.ContractCaller, registry common.Address) *RegistryResolverLookup {
	return &RegistryResolverLookup{
		caller:   caller,
		registry: registry,
	}
}

func (l *RegistryResolverLookup) Resolver(ctx context.Context, name string) (common.Address, error) {
	data, err := RegistryABI.Pack("resolver", NameHash(name))
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to pack resolver call: %w", err)
	}

	out, err := l.caller.CallContract(ctx, ethereum.CallMsg{To: &l.registry, Data: data}, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to call registry: %w", err)
	}

	values, err := RegistryABI.Unpack("resolver", out)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to unpack resolver: %w", err)
	}
	if len(values) != 1 {
		return common.Address{}, fmt.Errorf("unexpected resolver output: %v", values)
	}
	resolver, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected resolver type %T", values[0])
	}
	return resolver, nil
}

func labelOf(name string) string {
	return strings.TrimSuffix(strings.ToLower(name), types.ENSDomain)
}

func sortedKeys(records types.Records) []string {
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
