// Package encoder maps named ledger operations and their typed
// parameters to protocol-ready instructions. Every byte placement here
// is a compatibility contract: account ordering, signer/writable flags,
// and payload layout are fixed per operation kind.
package encoder

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/instruction-gateway/pkg/solana"
	"github.com/code-payments/instruction-gateway/pkg/solana/system"
	"github.com/code-payments/instruction-gateway/pkg/solana/token"
)

var (
	ErrInvalidAddress = errors.New("address must be exactly 32 bytes")
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrSameAddress    = errors.New("source and destination are the same account")
)

// Kind identifies one encodable operation.
type Kind uint8

const (
	KindInitializeMint Kind = iota
	KindMintTo
	KindTransferToken
	KindTransferNative
)

// programKeys maps each operation kind to the program that executes it.
// Built once at startup and never mutated.
var programKeys = map[Kind]ed25519.PublicKey{
	KindInitializeMint: token.ProgramKey,
	KindMintTo:         token.ProgramKey,
	KindTransferToken:  token.ProgramKey,
	KindTransferNative: system.ProgramKey[:],
}

// Operation is one tagged variant per operation kind, each carrying
// only the fields its encoding needs.
type Operation interface {
	Kind() Kind

	validate() error
	compile(program ed25519.PublicKey) solana.Instruction
}

// Encode validates op's preconditions and produces its instruction. No
// partial instruction is ever produced: a precondition failure returns
// before any byte is placed.
func Encode(op Operation) (solana.Instruction, error) {
	if err := op.validate(); err != nil {
		return solana.Instruction{}, err
	}

	return op.compile(programKeys[op.Kind()]), nil
}

// InitializeMint creates a new token mint with the given decimal
// precision.
type InitializeMint struct {
	Mint      ed25519.PublicKey
	Authority ed25519.PublicKey
	Decimals  uint8
}

func (InitializeMint) Kind() Kind { return KindInitializeMint }

func (op InitializeMint) validate() error {
	return validateAddresses(op.Mint, op.Authority)
}

func (op InitializeMint) compile(program ed25519.PublicKey) solana.Instruction {
	// Account references:
	//   0. `[writable]` The mint to initialize.
	//   1. `[signer]` The mint authority.
	return solana.NewInstruction(
		program,
		[]byte{byte(token.CommandInitializeMint), op.Decimals},
		solana.NewAccountMeta(op.Mint, false),
		solana.NewReadonlyAccountMeta(op.Authority, true),
	)
}

// MintTo mints new tokens to a destination account.
type MintTo struct {
	Mint        ed25519.PublicKey
	Destination ed25519.PublicKey
	Authority   ed25519.PublicKey
	Amount      uint64
}

func (MintTo) Kind() Kind { return KindMintTo }

func (op MintTo) validate() error {
	if err := validateAddresses(op.Mint, op.Destination, op.Authority); err != nil {
		return err
	}
	return validateAmount(op.Amount)
}

func (op MintTo) compile(program ed25519.PublicKey) solana.Instruction {
	// Account references:
	//   0. `[writable]` The mint.
	//   1. `[writable]` The destination account.
	//   2. `[signer]` The mint authority.
	data := make([]byte, 1+8)
	data[0] = byte(token.CommandMintTo)
	binary.LittleEndian.PutUint64(data[1:], op.Amount)

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(op.Mint, false),
		solana.NewAccountMeta(op.Destination, false),
		solana.NewReadonlyAccountMeta(op.Authority, true),
	)
}

// TransferToken moves tokens of a given mint between owners.
type TransferToken struct {
	Owner       ed25519.PublicKey
	Destination ed25519.PublicKey
	Mint        ed25519.PublicKey
	Amount      uint64
}

func (TransferToken) Kind() Kind { return KindTransferToken }

func (op TransferToken) validate() error {
	if err := validateAddresses(op.Owner, op.Destination, op.Mint); err != nil {
		return err
	}
	return validateAmount(op.Amount)
}

func (op TransferToken) compile(program ed25519.PublicKey) solana.Instruction {
	// Account references:
	//   0. `[signer]` The owner of the source account.
	//   1. `[writable]` The destination account.
	//   2. `[]` The token mint.
	data := make([]byte, 1+8)
	data[0] = byte(token.CommandTransfer)
	binary.LittleEndian.PutUint64(data[1:], op.Amount)

	return solana.NewInstruction(
		program,
		data,
		solana.NewReadonlyAccountMeta(op.Owner, true),
		solana.NewAccountMeta(op.Destination, false),
		solana.NewReadonlyAccountMeta(op.Mint, false),
	)
}

// TransferNative moves lamports between system accounts.
type TransferNative struct {
	From     ed25519.PublicKey
	To       ed25519.PublicKey
	Lamports uint64
}

func (TransferNative) Kind() Kind { return KindTransferNative }

func (op TransferNative) validate() error {
	if err := validateAddresses(op.From, op.To); err != nil {
		return err
	}
	if err := validateAmount(op.Lamports); err != nil {
		return err
	}
	// Byte equality, not string equality: distinct text encodings of
	// the same 32 bytes must still collide.
	if bytes.Equal(op.From, op.To) {
		return ErrSameAddress
	}
	return nil
}

func (op TransferNative) compile(program ed25519.PublicKey) solana.Instruction {
	// Account references:
	//   0. `[writable, signer]` The funding account.
	//   1. `[writable]` The recipient account.
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, system.CommandTransfer)
	binary.LittleEndian.PutUint64(data[4:], op.Lamports)

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(op.From, true),
		solana.NewAccountMeta(op.To, false),
	)
}

func validateAddresses(accounts ...ed25519.PublicKey) error {
	for _, account := range accounts {
		if len(account) != ed25519.PublicKeySize {
			return ErrInvalidAddress
		}
	}
	return nil
}

func validateAmount(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	return nil
}
