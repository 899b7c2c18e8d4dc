package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyType(t *testing.T) {
	cases := map[string]KeyType{
		"":          KeyTypeED25519,
		"ED25519":   KeyTypeED25519,
		" ecdsa ":   KeyTypeECDSA,
		"secp256k1": KeyTypeECDSA,
	}
	for input, expected := range cases {
		keyType, err := ParseKeyType(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, keyType, input)
	}

	_, err := ParseKeyType("rsa")
	assert.True(t, IsValidationError(err))
}

func TestGeneratePrivateKey(t *testing.T) {
	edKey, err := GeneratePrivateKey(KeyTypeED25519)
	require.NoError(t, err)
	assert.Len(t, edKey.PublicKey().BytesRaw(), 32)
	assert.Equal(t, KeyTypeED25519, keyTypeOf(edKey))

	defaultKey, err := GeneratePrivateKey("")
	require.NoError(t, err)
	assert.Equal(t, KeyTypeED25519, keyTypeOf(defaultKey))

	ecKey, err := GeneratePrivateKey(KeyTypeECDSA)
	require.NoError(t, err)
	assert.Len(t, ecKey.PublicKey().BytesRaw(), 33)
	assert.Equal(t, KeyTypeECDSA, keyTypeOf(ecKey))

	_, err = GeneratePrivateKey(KeyType("rsa"))
	assert.Error(t, err)
}

func TestGeneratedKeysAreDistinct(t *testing.T) {
	first, err := GeneratePrivateKey(KeyTypeED25519)
	require.NoError(t, err)
	second, err := GeneratePrivateKey(KeyTypeED25519)
	require.NoError(t, err)
	assert.NotEqual(t, first.String(), second.String())
}

func TestVerifyKeyPair(t *testing.T) {
	for _, keyType := range []KeyType{KeyTypeED25519, KeyTypeECDSA} {
		privateKey, err := GeneratePrivateKey(keyType)
		require.NoError(t, err)
		assert.NoError(t, VerifyKeyPair(privateKey.String()), keyType)
	}

	assert.Error(t, VerifyKeyPair("not-a-key"))
}
