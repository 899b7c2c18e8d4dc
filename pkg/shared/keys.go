package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// ParsePrivateKey parses a DER or raw hex private key, trying ED25519 first,
// then ECDSA secp256k1, then the SDK's generic parser.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}

// ParsePublicKey accepts either a public key or a private key and returns the
// public key. Token key fields are commonly filled in with either form.
func ParsePublicKey(raw string) (hedera.PublicKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PublicKey{}, fmt.Errorf("key cannot be empty")
	}

	publicKey, publicErr := hedera.PublicKeyFromString(candidate)
	if publicErr == nil {
		return publicKey, nil
	}

	privateKey, privateErr := ParsePrivateKey(candidate)
	if privateErr == nil {
		return privateKey.PublicKey(), nil
	}

	return hedera.PublicKey{}, fmt.Errorf(
		"failed to parse key as public key (%v) or private key (%v)",
		publicErr,
		privateErr,
	)
}

// ParseAccountID parses a dotted shard.realm.num account identifier.
func ParseAccountID(raw string) (hedera.AccountID, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.AccountID{}, fmt.Errorf("account ID cannot be empty")
	}
	accountID, err := hedera.AccountIDFromString(candidate)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("invalid account ID %q: %w", candidate, err)
	}
	return accountID, nil
}

// ParseTokenID parses a dotted shard.realm.num token identifier.
func ParseTokenID(raw string) (hedera.TokenID, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.TokenID{}, fmt.Errorf("token ID cannot be empty")
	}
	tokenID, err := hedera.TokenIDFromString(candidate)
	if err != nil {
		return hedera.TokenID{}, fmt.Errorf("invalid token ID %q: %w", candidate, err)
	}
	return tokenID, nil
}
