package server

import (
	"encoding/base64"

	"github.com/code-payments/instruction-gateway/pkg/keys"
	"github.com/code-payments/instruction-gateway/pkg/solana"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type createTokenRequest struct {
	MintAuthority string `json:"mintAuthority"`
	Mint          string `json:"mint"`
	Decimals      uint8  `json:"decimals"`
}

type mintTokenRequest struct {
	Mint        string `json:"mint"`
	Destination string `json:"destination"`
	Authority   string `json:"authority"`
	Amount      uint64 `json:"amount"`
}

type sendTokenRequest struct {
	Destination string `json:"destination"`
	Mint        string `json:"mint"`
	Owner       string `json:"owner"`
	Amount      uint64 `json:"amount"`
}

type sendSolRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Lamports uint64 `json:"lamports"`
}

type signMessageRequest struct {
	Message string `json:"message"`
	Secret  string `json:"secret"`
}

type verifyMessageRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Pubkey    string `json:"pubkey"`
}

type associatedAccountRequest struct {
	Owner string `json:"owner"`
	Mint  string `json:"mint"`
}

type messageData struct {
	Message string `json:"message"`
}

type keypairData struct {
	Pubkey string `json:"pubkey"`
	Secret string `json:"secret"`
}

type accountMeta struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

type signerAccountMeta struct {
	Pubkey   string `json:"pubkey"`
	IsSigner bool   `json:"is_signer"`
}

type instructionData struct {
	ProgramID       string        `json:"program_id"`
	Accounts        []accountMeta `json:"accounts"`
	InstructionData string        `json:"instruction_data"`
}

// tokenTransferData mirrors instructionData, but the writable flag is
// not part of the account serialization for this instruction kind.
type tokenTransferData struct {
	ProgramID       string              `json:"program_id"`
	Accounts        []signerAccountMeta `json:"accounts"`
	InstructionData string              `json:"instruction_data"`
}

type signatureData struct {
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
	Message   string `json:"message"`
}

type verificationData struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Pubkey  string `json:"pubkey"`
}

type associatedAccountData struct {
	Address string `json:"address"`
}

func newInstructionData(instruction solana.Instruction) instructionData {
	accounts := make([]accountMeta, len(instruction.Accounts))
	for i, account := range instruction.Accounts {
		accounts[i] = accountMeta{
			Pubkey:     keys.EncodeAddress(account.PublicKey),
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		}
	}

	return instructionData{
		ProgramID:       keys.EncodeAddress(instruction.Program),
		Accounts:        accounts,
		InstructionData: base64.StdEncoding.EncodeToString(instruction.Data),
	}
}

func newTokenTransferData(instruction solana.Instruction) tokenTransferData {
	accounts := make([]signerAccountMeta, len(instruction.Accounts))
	for i, account := range instruction.Accounts {
		accounts[i] = signerAccountMeta{
			Pubkey:   keys.EncodeAddress(account.PublicKey),
			IsSigner: account.IsSigner,
		}
	}

	return tokenTransferData{
		ProgramID:       keys.EncodeAddress(instruction.Program),
		Accounts:        accounts,
		InstructionData: base64.StdEncoding.EncodeToString(instruction.Data),
	}
}
