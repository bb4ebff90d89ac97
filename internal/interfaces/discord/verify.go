package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
)

var ErrInvalidPublicKey = errors.New("invalid interaction public key")

// ParsePublicKey decodes the hex-encoded ed25519 application public key
// issued by the platform.
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	return ed25519.PublicKey(key), nil
}
