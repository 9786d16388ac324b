package types

import (
	"fmt"
	"math/big"
)

// Mode is the kind of flow a registration record was started for.
type Mode string

const (
	ModeCreate   Mode = "create"
	ModeEdit     Mode = "edit"
	ModeRenew    Mode = "renew"
	ModeSetName  Mode = "set_name"
	ModeTransfer Mode = "transfer"
)

func (m Mode) String() string {
	return string(m)
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeCreate, ModeEdit, ModeRenew, ModeSetName, ModeTransfer:
		return true
	}
	return false
}

// Step is the protocol phase a registration record is in. It is always
// re-derived from the record and the elapsed state, never stored.
type Step string

const (
	StepCommit                 Step = "COMMIT"
	StepWaitCommitConfirmation Step = "WAIT_COMMIT_CONFIRMATION"
	StepWaitProtocolInterval   Step = "WAIT_PROTOCOL_INTERVAL"
	StepRegister               Step = "REGISTER"
	StepEdit                   Step = "EDIT"
	StepRenew                  Step = "RENEW"
	StepSetName                Step = "SET_NAME"
	StepTransfer               Step = "TRANSFER"
)

func (s Step) String() string {
	return string(s)
}

// IsWaiting reports whether the step belongs to the commit timing gate.
func (s Step) IsWaiting() bool {
	return s == StepWaitCommitConfirmation || s == StepWaitProtocolInterval
}

// ActionType names the request handed to the transaction pipeline.
type ActionType string

const (
	ActionCommit        ActionType = "commitENS"
	ActionRegister      ActionType = "registerENS"
	ActionSetRecords    ActionType = "setRecordsENS"
	ActionRenew         ActionType = "renewENS"
	ActionSetName       ActionType = "setNameENS"
	ActionTransfer      ActionType = "transferENS"
	ActionSpeedUpCommit ActionType = "speedUpCommitENS"
)

func (a ActionType) String() string {
	return string(a)
}

// Role decides whether a flow drives the watchers or only reads the record.
type Role uint8

const (
	RoleObserver Role = iota
	RoleActive
)

func (r Role) String() string {
	switch r {
	case RoleObserver:
		return "observer"
	case RoleActive:
		return "active"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

type Network string

const (
	NetworkMainnet   Network = "mainnet"
	NetworkGoerli    Network = "goerli"
	NetworkSepolia   Network = "sepolia"
	NetworkHolesky   Network = "holesky"
	NetworkLocalhost Network = "localhost"
)

var networksByChainID = map[int64]Network{
	1:        NetworkMainnet,
	5:        NetworkGoerli,
	17000:    NetworkHolesky,
	11155111: NetworkSepolia,
	1337:     NetworkLocalhost,
	31337:    NetworkLocalhost,
}

// NetworkFromChainID maps a chain id onto a known network. Unknown chains are
// treated as mainnet so that no timing shortcut is taken by accident.
func NetworkFromChainID(chainID *big.Int) Network {
	if chainID == nil || !chainID.IsInt64() {
		return NetworkMainnet
	}
	if n, ok := networksByChainID[chainID.Int64()]; ok {
		return n
	}
	return NetworkMainnet
}

// IsTestnet reports whether the commit interval is irrelevant on the network.
func (n Network) IsTestnet() bool {
	switch n {
	case NetworkGoerli, NetworkSepolia, NetworkHolesky, NetworkLocalhost:
		return true
	}
	return false
}

func (n Network) String() string {
	return string(n)
}
