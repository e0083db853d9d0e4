// Package tronaddr implements TRON base58check addresses and the
// secp256k1 signature format the TRON network expects.
package tronaddr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/sha3"
)

const (
	// Prefix is the version byte of mainnet TRON addresses ("T...").
	Prefix = 0x41

	payloadLen       = 20
	privateKeyLen    = 32
	compactSigOffset = 27
)

var ErrInvalidAddress = errors.New("invalid TRON address")

// FromPublicKey derives the base58check address of a public key:
// Keccak256 over the uncompressed point without the 0x04 tag,
// last 20 bytes, 0x41 version prefix.
func FromPublicKey(pub *btcec.PublicKey) string {
	raw := pub.SerializeUncompressed()
	h := sha3.NewLegacyKeccak256()
	h.Write(raw[1:])
	digest := h.Sum(nil)
	return base58.CheckEncode(digest[len(digest)-payloadLen:], Prefix)
}

func FromPrivateKey(priv *btcec.PrivateKey) string {
	return FromPublicKey(priv.PubKey())
}

func ParsePrivateKey(hexKey string) (*btcec.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("private key is not valid hex: %w", err)
	}
	if len(raw) != privateKeyLen {
		return nil, fmt.Errorf("private key must be %v bytes, got %v", privateKeyLen, len(raw))
	}
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), raw)
	return priv, nil
}

func GenerateKey() (*btcec.PrivateKey, error) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return priv, nil
}

func Validate(address string) bool {
	payload, version, err := base58.CheckDecode(address)
	return err == nil && version == Prefix && len(payload) == payloadLen
}

// Decode returns the 20-byte EVM-style body of an address,
// without the version prefix.
func Decode(address string) ([]byte, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil || version != Prefix || len(payload) != payloadLen {
		return nil, ErrInvalidAddress
	}
	return payload, nil
}

// Sign produces the 65-byte r || s || v signature TRON expects over a
// transaction id hash. The recovery id is carried in the last byte.
func Sign(priv *btcec.PrivateKey, hash []byte) ([]byte, error) {
	sig, err := btcec.SignCompact(btcec.S256(), priv, hash, false)
	if err != nil {
		return nil, fmt.Errorf("failed to sign hash: %w", err)
	}
	// btcec puts the recovery id first
	out := make([]byte, len(sig))
	copy(out, sig[1:])
	out[len(out)-1] = sig[0] - compactSigOffset
	return out, nil
}
