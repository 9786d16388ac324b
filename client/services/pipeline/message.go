package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lidofinance/ensreg/client/types"
)

type MessageKind string

const (
	KindAction  MessageKind = "action"
	KindSpeedUp MessageKind = "speed_up"
	KindResult  MessageKind = "result"
)

type ResultStatus string

const (
	StatusSubmitted ResultStatus = "submitted"
	StatusConfirmed ResultStatus = "confirmed"
	StatusFailed    ResultStatus = "failed"
)

var ErrBadSignature = errors.New("bad message signature")

// Message is the envelope exchanged with the signer over the transport.
// Requests are signed by the wallet they are submitted for.
type Message struct {
	ID        string         `json:"id"`
	Kind      MessageKind    `json:"kind"`
	Data      []byte         `json:"data"`
	Signature []byte         `json:"signature,omitempty"`
	Signer    common.Address `json:"signer"`
	Offset    uint64         `json:"offset"`
}

type ActionRequest struct {
	Action  types.ActionType        `json:"action"`
	Network types.Network           `json:"network"`
	Params  *types.ActionParameters `json:"params"`
}

// SpeedUpRequest resubmits a pending transaction with the same nonce and
// higher fees.
type SpeedUpRequest struct {
	Hash      common.Hash     `json:"hash"`
	Nonce     uint64          `json:"nonce"`
	To        *common.Address `json:"to,omitempty"`
	Data      []byte          `json:"data"`
	Value     *big.Int        `json:"value"`
	Gas       uint64          `json:"gas"`
	GasPrice  *big.Int        `json:"gas_price,omitempty"`
	GasTipCap *big.Int        `json:"gas_tip_cap,omitempty"`
	GasFeeCap *big.Int        `json:"gas_fee_cap,omitempty"`
}

type Result struct {
	RequestID string       `json:"request_id"`
	Status    ResultStatus `json:"status"`
	Hash      common.Hash  `json:"hash"`
	Nonce     uint64       `json:"nonce"`
	Error     string       `json:"error,omitempty"`
}

func newSignedMessage(id string, kind MessageKind, wallet *types.Wallet, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal %s request: %w", kind, err)
	}
	sig, err := wallet.Sign(data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        id,
		Kind:      kind,
		Data:      data,
		Signature: sig,
		Signer:    wallet.Address,
	}, nil
}

// VerifyMessage checks that the message was signed by its signer.
func VerifyMessage(msg Message) error {
	pub, err := crypto.SigToPub(crypto.Keccak256(msg.Data), msg.Signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	if signer := crypto.PubkeyToAddress(*pub); signer != msg.Signer {
		return fmt.Errorf("%w: signed by %s, claims %s", ErrBadSignature, signer.Hex(), msg.Signer.Hex())
	}
	return nil
}
