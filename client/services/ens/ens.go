package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

func keccak256(data ...[]byte) common.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out common.Hash
	h.Sum(out[:0])
	return out
}

// LabelHash is keccak256 of a single label.
func LabelHash(label string) common.Hash {
	return keccak256([]byte(label))
}

// NameHash implements the recursive ENS name hash, the empty name hashes to
// the zero node.
func NameHash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(strings.ToLower(name), ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := LabelHash(labels[i])
		node = keccak256(node[:], label[:])
	}
	return node
}

// Commitment is the blinded commit of the registrar controller. Without a
// resolver and an address record the short form is used.
func Commitment(label string, owner common.Address, secret common.Hash, resolver, addr common.Address) common.Hash {
	labelHash := LabelHash(label)
	if resolver == (common.Address{}) && addr == (common.Address{}) {
		return keccak256(labelHash[:], owner[:], secret[:])
	}
	return keccak256(labelHash[:], owner[:], resolver[:], addr[:], secret[:])
}
