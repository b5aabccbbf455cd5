package keys

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrInvalidEncoding = errors.New("secret must decode to exactly 64 bytes")
	ErrInvalidKey      = errors.New("public key does not match secret seed")
	ErrSigningFailure  = errors.New("key material cannot produce a signature")
)

// Keypair holds the canonical 64 bytes of ed25519 key material: the
// 32-byte secret seed followed by the 32-byte public key. This matches
// the layout of crypto/ed25519's PrivateKey, so the raw private key is
// the wire representation.
type Keypair struct {
	privateKey ed25519.PrivateKey
}

// NewKeypair generates a fresh keypair from the system's secure random
// source.
func NewKeypair() (Keypair, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, errors.Wrap(err, "error generating keypair")
	}

	return Keypair{privateKey: privateKey}, nil
}

// FromSecret reconstructs a keypair from its base58 secret encoding.
//
// The decoded bytes must be exactly 64 bytes, and the trailing 32 bytes
// must be the public key derived from the leading seed.
func FromSecret(secret string) (Keypair, error) {
	raw, err := base58.Decode(secret)
	if err != nil {
		return Keypair{}, ErrInvalidEncoding
	}
	if len(raw) != ed25519.PrivateKeySize {
		return Keypair{}, ErrInvalidEncoding
	}

	privateKey := ed25519.PrivateKey(raw)
	derived := ed25519.NewKeyFromSeed(privateKey.Seed())
	if !bytes.Equal(derived[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return Keypair{}, ErrInvalidKey
	}

	return Keypair{privateKey: privateKey}, nil
}

func (k Keypair) Public() ed25519.PublicKey {
	return ed25519.PublicKey(k.privateKey[ed25519.SeedSize:])
}

// Secret returns the base58 encoding of the full 64-byte key material,
// seed first.
func (k Keypair) Secret() string {
	return base58.Encode(k.privateKey)
}

// Address returns the base58 encoding of the public key.
func (k Keypair) Address() string {
	return EncodeAddress(k.Public())
}

// Sign produces an ed25519 signature over the raw message bytes. No
// hashing or domain prefix is applied.
func (k Keypair) Sign(message []byte) ([]byte, error) {
	if len(k.privateKey) != ed25519.PrivateKeySize {
		return nil, ErrSigningFailure
	}

	return ed25519.Sign(k.privateKey, message), nil
}

// Verify reports whether signature is a valid ed25519 signature of
// message under pub. It is a pure predicate: structurally broken inputs
// report false rather than erroring, since encodings are validated by
// the codecs before reaching this point.
func Verify(pub ed25519.PublicKey, message, signature []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(pub, message, signature)
}
