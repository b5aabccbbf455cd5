package keys

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/pkg/errors"
)

var ErrInvalidSignature = errors.New("signature must decode to exactly 64 bytes")

// EncodeSignature returns the standard base64 encoding of a 64-byte
// ed25519 signature.
func EncodeSignature(signature []byte) string {
	return base64.StdEncoding.EncodeToString(signature)
}

// DecodeSignature decodes a base64 signature, rejecting anything that
// does not decode to exactly 64 bytes.
func DecodeSignature(value string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if len(raw) != ed25519.SignatureSize {
		return nil, ErrInvalidSignature
	}

	return raw, nil
}
