// Package identity supplies the signing identity used to bind the registry
// handle. Providers expose the latest value and notify subscribers when it
// changes; a nil *Identity means no identity is available.
package identity

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Source names where a key was loaded from.
type Source string

const (
	SourceHex      Source = "hex"
	SourceKeystore Source = "keystore"
	SourceMnemonic Source = "mnemonic"
	SourceStatic   Source = "static"
)

// Identity is an opaque signing credential plus its derived account address.
type Identity struct {
	Address common.Address
	Key     *ecdsa.PrivateKey
	Source  Source
}

// FromKey derives the account address for key.
func FromKey(key *ecdsa.PrivateKey, src Source) *Identity {
	return &Identity{Address: crypto.PubkeyToAddress(key.PublicKey), Key: key, Source: src}
}

// Same reports whether a and b denote the same account (both nil counts).
func Same(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Address == b.Address
}

// Provider exposes the current identity and change notifications.
// Subscribers only ever see the latest value; intermediate values may be skipped.
type Provider interface {
	Current() *Identity
	Subscribe() (<-chan *Identity, func())
}
