package keys

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var ErrInvalidAddress = errors.New("address must decode to exactly 32 bytes")

// EncodeAddress returns the base58 encoding of a 32-byte public key.
func EncodeAddress(pub ed25519.PublicKey) string {
	return base58.Encode(pub)
}

// DecodeAddress decodes a base58 address, rejecting anything that does
// not decode to exactly 32 bytes.
func DecodeAddress(value string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(value)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, ErrInvalidAddress
	}

	return ed25519.PublicKey(raw), nil
}
