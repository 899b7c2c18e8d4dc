package main

import (
	"context"
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashgraph-online/token-dashboard-go/pkg/credstore"
	"github.com/hashgraph-online/token-dashboard-go/pkg/ledger"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestOperatorSetAndClearPersist(t *testing.T) {
	path := t.TempDir()
	key, err := hedera.PrivateKeyGenerateEd25519()
	require.NoError(t, err)

	require.NoError(t, execute(t,
		"operator", "set", "--store", "badger", "--store-path", path,
		"--id", "0.0.1234", "--key", key.String(),
	))

	store, err := credstore.OpenBadgerStore(credstore.BadgerConfig{Path: path})
	require.NoError(t, err)
	credentials, err := credstore.Load(context.Background(), store)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.Equal(t, "0.0.1234", credentials.OperatorID)
	assert.Equal(t, key.String(), credentials.OperatorKey)

	require.NoError(t, execute(t, "operator", "clear", "--store", "badger", "--store-path", path))

	store, err = credstore.OpenBadgerStore(credstore.BadgerConfig{Path: path})
	require.NoError(t, err)
	defer store.Close()
	credentials, err = credstore.Load(context.Background(), store)
	require.NoError(t, err)
	assert.False(t, credentials.HasOperator())
}

func TestOperatorSetRejectsBadKey(t *testing.T) {
	err := execute(t, "operator", "set", "--store", "memory", "--id", "0.0.1234", "--key", "not-a-key")
	assert.Error(t, err)
}

func TestBalanceRequiresAccount(t *testing.T) {
	err := execute(t, "balance", "--store", "memory")
	require.Error(t, err)
	assert.True(t, ledger.IsValidationError(err))
}

func TestRejectsUnknownStoreAndNetwork(t *testing.T) {
	err := execute(t, "balance", "--store", "etcd", "--account-id", "0.0.5")
	assert.ErrorContains(t, err, "unsupported credential store")

	err = execute(t, "balance", "--store", "memory", "--network", "devnet", "--account-id", "0.0.5", "--token-id", "0.0.6")
	assert.ErrorContains(t, err, "unsupported network")
}

func TestTransferRequiresAccount(t *testing.T) {
	err := execute(t, "transfer", "hbar", "--store", "memory", "--to", "0.0.9", "--amount", "1")
	assert.ErrorContains(t, err, "no account credentials")
}

func TestBadLogLevel(t *testing.T) {
	err := execute(t, "balance", "--log-level", "loud")
	assert.ErrorContains(t, err, "could not parse log level")
}
