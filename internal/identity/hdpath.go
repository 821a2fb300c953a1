package identity

import (
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

// MnemonicPath is the account a mnemonic key file resolves to: the first
// Ethereum account of BIP44, as used by common wallets.
var MnemonicPath = accounts.DefaultBaseDerivationPath

const hardenedOffset = 0x80000000

var errInvalidChild = errors.New("derived key is out of range")

// deriveKey walks path from the BIP32 master key of seed.
func deriveKey(seed []byte, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	sum := hmacSHA512([]byte("Bitcoin seed"), seed)
	key, chain := sum[:32], sum[32:]
	n := crypto.S256().Params().N
	for _, index := range path {
		var data []byte
		if index >= hardenedOffset {
			data = append([]byte{0}, key...)
		} else {
			priv, err := crypto.ToECDSA(key)
			if err != nil {
				return nil, fmt.Errorf("derive %s: %w", path, err)
			}
			data = crypto.CompressPubkey(&priv.PublicKey)
		}
		data = binary.BigEndian.AppendUint32(data, index)
		sum = hmacSHA512(chain, data)
		il := new(big.Int).SetBytes(sum[:32])
		if il.Cmp(n) >= 0 {
			return nil, fmt.Errorf("derive %s: %w", path, errInvalidChild)
		}
		child := il.Add(il, new(big.Int).SetBytes(key))
		child.Mod(child, n)
		if child.Sign() == 0 {
			return nil, fmt.Errorf("derive %s: %w", path, errInvalidChild)
		}
		key, chain = child.FillBytes(make([]byte, 32)), sum[32:]
	}
	return crypto.ToECDSA(key)
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
