package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const controllerABI = `[
	{"type":"function","name":"rentPrice","stateMutability":"view",
	 "inputs":[{"name":"name","type":"string"},{"name":"duration","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"commit","stateMutability":"nonpayable",
	 "inputs":[{"name":"commitment","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"registerWithConfig","stateMutability":"payable",
	 "inputs":[{"name":"name","type":"string"},{"name":"owner","type":"address"},
	           {"name":"duration","type":"uint256"},{"name":"secret","type":"bytes32"},
	           {"name":"resolver","type":"address"},{"name":"addr","type":"address"}],"outputs":[]},
	{"type":"function","name":"renew","stateMutability":"payable",
	 "inputs":[{"name":"name","type":"string"},{"name":"duration","type":"uint256"}],"outputs":[]}
]`

const registryABI = `[
	{"type":"function","name":"resolver","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"setOwner","stateMutability":"nonpayable",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"owner","type":"address"}],"outputs":[]}
]`

const resolverABI = `[
	{"type":"function","name":"setText","stateMutability":"nonpayable",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"key","type":"string"},{"name":"value","type":"string"}],"outputs":[]},
	{"type":"function","name":"setAddr","stateMutability":"nonpayable",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"a","type":"address"}],"outputs":[]},
	{"type":"function","name":"multicall","stateMutability":"nonpayable",
	 "inputs":[{"name":"data","type":"bytes[]"}],"outputs":[{"name":"results","type":"bytes[]"}]}
]`

const reverseRegistrarABI = `[
	{"type":"function","name":"setName","stateMutability":"nonpayable",
	 "inputs":[{"name":"name","type":"string"}],"outputs":[{"name":"","type":"bytes32"}]}
]`

const baseRegistrarABI = `[
	{"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable",
	 "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"reclaim","stateMutability":"nonpayable",
	 "inputs":[{"name":"id","type":"uint256"},{"name":"owner","type":"address"}],"outputs":[]}
]`

var (
	ControllerABI       = mustParseABI(controllerABI)
	RegistryABI         = mustParseABI(registryABI)
	ResolverABI         = mustParseABI(resolverABI)
	ReverseRegistrarABI = mustParseABI(reverseRegistrarABI)
	BaseRegistrarABI    = mustParseABI(baseRegistrarABI)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return parsed
}
