package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

var (
	ErrEmptyKey         = errors.New("empty key material")
	ErrInvalidMnemonic  = errors.New("invalid mnemonic")
	ErrPassphraseNeeded = errors.New("keystore passphrase is required")
)

// Passphrases unlock encrypted key material.
type Passphrases struct {
	Keystore string
	Mnemonic string
}

// Parse decodes key material. Supported encodings:
//   - go-ethereum keystore JSON (starts with '{')
//   - BIP39 mnemonic (several space separated words)
//   - hex private key, with or without 0x prefix
func Parse(material string, pw Passphrases) (*Identity, error) {
	material = strings.TrimSpace(material)
	switch {
	case material == "":
		return nil, ErrEmptyKey
	case strings.HasPrefix(material, "{"):
		return parseKeystore(material, pw.Keystore)
	case len(strings.Fields(material)) > 1:
		return FromMnemonic(material, pw.Mnemonic)
	default:
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimPrefix(material, "0x"), "0X"))
		if err != nil {
			return nil, fmt.Errorf("hex key: %w", err)
		}
		return FromKey(key, SourceHex), nil
	}
}

func parseKeystore(blob, passphrase string) (*Identity, error) {
	if passphrase == "" {
		return nil, ErrPassphraseNeeded
	}
	k, err := keystore.DecryptKey([]byte(blob), passphrase)
	if err != nil {
		return nil, fmt.Errorf("keystore: %w", err)
	}
	return FromKey(k.PrivateKey, SourceKeystore), nil
}

// FromMnemonic derives the account at MnemonicPath (m/44'/60'/0'/0/0) from
// the BIP39 seed, so a wallet mnemonic resolves to the wallet's first account.
func FromMnemonic(mnemonic, passphrase string) (*Identity, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	key, err := deriveKey(seed, MnemonicPath)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return FromKey(key, SourceMnemonic), nil
}

// NewMnemonic generates a fresh 24-word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}
