package ledger

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/token-dashboard-go/pkg/shared"
)

// ParseKeyType maps user input to a KeyType. Empty input selects ED25519.
func ParseKeyType(raw string) (KeyType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "ed25519":
		return KeyTypeED25519, nil
	case "ecdsa", "secp256k1", "ecdsa_secp256k1":
		return KeyTypeECDSA, nil
	default:
		return "", invalidInput("key type", "oneof", "unsupported key type %q", raw)
	}
}

// GeneratePrivateKey creates a new random key of the requested type.
func GeneratePrivateKey(keyType KeyType) (hedera.PrivateKey, error) {
	switch keyType {
	case "", KeyTypeED25519:
		privateKey, err := hedera.PrivateKeyGenerateEd25519()
		if err != nil {
			return hedera.PrivateKey{}, fmt.Errorf("failed to generate ED25519 key: %w", err)
		}
		return privateKey, nil
	case KeyTypeECDSA:
		privateKey, err := hedera.PrivateKeyGenerateEcdsa()
		if err != nil {
			return hedera.PrivateKey{}, fmt.Errorf("failed to generate ECDSA key: %w", err)
		}
		return privateKey, nil
	default:
		return hedera.PrivateKey{}, invalidInput("key type", "oneof", "unsupported key type %q", keyType)
	}
}

// VerifyKeyPair re-derives the public key from the raw private key material
// and checks that it matches the public key reported by the SDK.
func VerifyKeyPair(rawPrivateKey string) error {
	privateKey, err := shared.ParsePrivateKey(rawPrivateKey)
	if err != nil {
		return err
	}
	return verifyKeyPair(privateKey)
}

func verifyKeyPair(privateKey hedera.PrivateKey) error {
	expected := privateKey.PublicKey().BytesRaw()

	var derived []byte
	switch keyTypeOf(privateKey) {
	case KeyTypeED25519:
		seed := privateKey.BytesRaw()
		if len(seed) != ed25519.SeedSize {
			return fmt.Errorf("unexpected ED25519 seed length %d", len(seed))
		}
		derived = ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	case KeyTypeECDSA:
		_, publicKey := btcec.PrivKeyFromBytes(privateKey.BytesRaw())
		derived = publicKey.SerializeCompressed()
	default:
		return fmt.Errorf("unsupported public key length %d", len(expected))
	}

	if !bytes.Equal(derived, expected) {
		return fmt.Errorf("private key does not derive its public key")
	}
	return nil
}

const (
	ed25519PublicKeySize       = 32
	compressedSecp256k1KeySize = 33
)

// keyTypeOf tells the schemes apart by the raw public key: 32 bytes for
// ED25519, 33 for a compressed secp256k1 point. Anything else is "".
func keyTypeOf(privateKey hedera.PrivateKey) KeyType {
	switch len(privateKey.PublicKey().BytesRaw()) {
	case ed25519PublicKeySize:
		return KeyTypeED25519
	case compressedSecp256k1KeySize:
		return KeyTypeECDSA
	default:
		return ""
	}
}
