package encoder

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/instruction-gateway/pkg/solana/system"
	"github.com/code-payments/instruction-gateway/pkg/solana/token"
)

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)
	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		keys[i] = pub
	}
	return keys
}

func TestInitializeMint(t *testing.T) {
	keys := generateKeys(t, 2)

	instruction, err := Encode(InitializeMint{
		Mint:      keys[0],
		Authority: keys[1],
		Decimals:  9,
	})
	require.NoError(t, err)

	assert.Equal(t, token.ProgramKey, instruction.Program)
	assert.Equal(t, []byte{0x00, 0x09}, instruction.Data)

	require.Len(t, instruction.Accounts, 2)
	assert.Equal(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.Equal(t, keys[1], instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsSigner)
	assert.False(t, instruction.Accounts[1].IsWritable)
}

func TestMintTo(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction, err := Encode(MintTo{
		Mint:        keys[0],
		Destination: keys[1],
		Authority:   keys[2],
		Amount:      1_000_000,
	})
	require.NoError(t, err)

	expected := make([]byte, 9)
	expected[0] = 0x07
	binary.LittleEndian.PutUint64(expected[1:], 1_000_000)

	assert.Equal(t, token.ProgramKey, instruction.Program)
	assert.Equal(t, expected, instruction.Data)

	require.Len(t, instruction.Accounts, 3)
	signers := []bool{false, false, true}
	writables := []bool{true, true, false}
	for i := range instruction.Accounts {
		assert.Equal(t, keys[i], instruction.Accounts[i].PublicKey)
		assert.Equal(t, signers[i], instruction.Accounts[i].IsSigner)
		assert.Equal(t, writables[i], instruction.Accounts[i].IsWritable)
	}
}

func TestMintTo_ZeroAmount(t *testing.T) {
	keys := generateKeys(t, 3)

	_, err := Encode(MintTo{
		Mint:        keys[0],
		Destination: keys[1],
		Authority:   keys[2],
	})
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestTransferToken(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction, err := Encode(TransferToken{
		Owner:       keys[0],
		Destination: keys[1],
		Mint:        keys[2],
		Amount:      42,
	})
	require.NoError(t, err)

	expected := make([]byte, 9)
	expected[0] = 0x03
	binary.LittleEndian.PutUint64(expected[1:], 42)

	assert.Equal(t, token.ProgramKey, instruction.Program)
	assert.Equal(t, expected, instruction.Data)

	require.Len(t, instruction.Accounts, 3)
	assert.Equal(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.Equal(t, keys[1], instruction.Accounts[1].PublicKey)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.Equal(t, keys[2], instruction.Accounts[2].PublicKey)
	assert.False(t, instruction.Accounts[2].IsSigner)
}

func TestTransferToken_ZeroAmount(t *testing.T) {
	keys := generateKeys(t, 3)

	_, err := Encode(TransferToken{
		Owner:       keys[0],
		Destination: keys[1],
		Mint:        keys[2],
	})
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestTransferNative(t *testing.T) {
	keys := generateKeys(t, 2)

	instruction, err := Encode(TransferNative{
		From:     keys[0],
		To:       keys[1],
		Lamports: 5000,
	})
	require.NoError(t, err)

	expected := make([]byte, 12)
	expected[0] = 0x02
	binary.LittleEndian.PutUint64(expected[4:], 5000)

	assert.EqualValues(t, system.ProgramKey[:], instruction.Program)
	assert.Equal(t, expected, instruction.Data)

	require.Len(t, instruction.Accounts, 2)
	assert.Equal(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.Equal(t, keys[1], instruction.Accounts[1].PublicKey)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)
}

func TestTransferNative_SameAddress(t *testing.T) {
	keys := generateKeys(t, 1)

	// distinct slices holding the same 32 bytes must still collide
	duplicate := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(duplicate, keys[0])

	_, err := Encode(TransferNative{
		From:     keys[0],
		To:       duplicate,
		Lamports: 5000,
	})
	assert.Equal(t, ErrSameAddress, err)
}

func TestTransferNative_ZeroLamports(t *testing.T) {
	keys := generateKeys(t, 2)

	_, err := Encode(TransferNative{
		From: keys[0],
		To:   keys[1],
	})
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestEncode_InvalidAddress(t *testing.T) {
	keys := generateKeys(t, 3)
	truncated := keys[0][:31]

	cases := []Operation{
		InitializeMint{Mint: truncated, Authority: keys[1], Decimals: 6},
		MintTo{Mint: keys[0], Destination: truncated, Authority: keys[2], Amount: 1},
		TransferToken{Owner: keys[0], Destination: keys[1], Mint: truncated, Amount: 1},
		TransferNative{From: truncated, To: keys[1], Lamports: 1},
		TransferNative{From: keys[0], To: nil, Lamports: 1},
	}

	for _, op := range cases {
		_, err := Encode(op)
		assert.Equal(t, ErrInvalidAddress, err)
	}
}

func TestProgramTable(t *testing.T) {
	assert.Equal(t, token.ProgramKey, programKeys[KindInitializeMint])
	assert.Equal(t, token.ProgramKey, programKeys[KindMintTo])
	assert.Equal(t, token.ProgramKey, programKeys[KindTransferToken])
	assert.EqualValues(t, system.ProgramKey[:], programKeys[KindTransferNative])
}
