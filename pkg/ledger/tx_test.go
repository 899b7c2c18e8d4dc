package ledger

import (
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPublicKey(t *testing.T) hedera.PublicKey {
	t.Helper()
	privateKey, err := hedera.PrivateKeyGenerateEd25519()
	require.NoError(t, err)
	return privateKey.PublicKey()
}

func TestBuildAccountCreateTx(t *testing.T) {
	publicKey := testPublicKey(t)
	nodes := []hedera.AccountID{{Account: 3}, {Account: 4}}

	transaction, err := BuildAccountCreateTx(AccountCreateTxParams{
		PublicKey:                     publicKey,
		InitialBalance:                hedera.HbarFromTinybar(1_000),
		MaxAutomaticTokenAssociations: 10,
		AccountMemo:                   "dashboard",
		NodeAccountIDs:                nodes,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1_000), transaction.GetInitialBalance().AsTinybar())
	assert.Equal(t, int32(10), transaction.GetMaxAutomaticTokenAssociations())
	assert.Equal(t, "dashboard", transaction.GetAccountMemo())
	assert.Len(t, transaction.GetNodeAccountIDs(), 2)
}

func TestBuildAccountCreateTxDefaults(t *testing.T) {
	transaction, err := BuildAccountCreateTx(AccountCreateTxParams{PublicKey: testPublicKey(t)})
	require.NoError(t, err)

	assert.Equal(t, int64(0), transaction.GetInitialBalance().AsTinybar())
	assert.Equal(t, int32(0), transaction.GetMaxAutomaticTokenAssociations())
	assert.Empty(t, transaction.GetAccountMemo())
}

func TestBuildAccountCreateTxRejectsBadInput(t *testing.T) {
	_, err := BuildAccountCreateTx(AccountCreateTxParams{})
	assert.Error(t, err)

	_, err = BuildAccountCreateTx(AccountCreateTxParams{
		PublicKey:      testPublicKey(t),
		InitialBalance: hedera.HbarFromTinybar(-1),
	})
	assert.Error(t, err)
}

func TestBuildTokenCreateTxDefaultsToTreasuryKeys(t *testing.T) {
	treasuryKey := testPublicKey(t)
	treasury := hedera.AccountID{Account: 1001}

	transaction, err := BuildTokenCreateTx(TokenCreateTxParams{
		Name:              "Dashboard Token",
		Symbol:            "DASH",
		TreasuryAccountID: treasury,
		TreasuryKey:       treasuryKey,
		InitialSupply:     1_000_000,
		Decimals:          2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dashboard Token", transaction.GetTokenName())
	assert.Equal(t, "DASH", transaction.GetTokenSymbol())
	assert.Equal(t, uint64(1_000_000), transaction.GetInitialSupply())
	assert.Equal(t, uint(2), transaction.GetDecimals())
	assert.Equal(t, treasury.String(), transaction.GetTreasuryAccountID().String())
	require.NotNil(t, transaction.GetAdminKey())
	assert.Equal(t, treasuryKey.String(), transaction.GetAdminKey().String())
	require.NotNil(t, transaction.GetSupplyKey())
	assert.Equal(t, treasuryKey.String(), transaction.GetSupplyKey().String())
	assert.Nil(t, transaction.GetFreezeKey())
	assert.Nil(t, transaction.GetWipeKey())
}

func TestBuildTokenCreateTxExplicitKeys(t *testing.T) {
	treasuryKey := testPublicKey(t)
	adminKey := testPublicKey(t)
	freezeKey := testPublicKey(t)
	wipeKey := testPublicKey(t)
	supplyKey := testPublicKey(t)

	transaction, err := BuildTokenCreateTx(TokenCreateTxParams{
		Name:              "Keys",
		Symbol:            "KEYS",
		TreasuryAccountID: hedera.AccountID{Account: 1001},
		TreasuryKey:       treasuryKey,
		InitialSupply:     10,
		AdminKey:          &adminKey,
		FreezeKey:         &freezeKey,
		WipeKey:           &wipeKey,
		SupplyKey:         &supplyKey,
		SupplyKeyPolicy:   SupplyKeyPolicyExplicit,
	})
	require.NoError(t, err)

	assert.Equal(t, adminKey.String(), transaction.GetAdminKey().String())
	assert.Equal(t, freezeKey.String(), transaction.GetFreezeKey().String())
	assert.Equal(t, wipeKey.String(), transaction.GetWipeKey().String())
	assert.Equal(t, supplyKey.String(), transaction.GetSupplyKey().String())
}

func TestBuildTokenCreateTxZeroSupplyHasNoSupplyKey(t *testing.T) {
	transaction, err := BuildTokenCreateTx(TokenCreateTxParams{
		Name:              "Empty",
		Symbol:            "NIL",
		TreasuryAccountID: hedera.AccountID{Account: 1001},
		TreasuryKey:       testPublicKey(t),
		SupplyKeyPolicy:   SupplyKeyPolicyExplicit,
	})
	require.NoError(t, err)
	assert.Nil(t, transaction.GetSupplyKey())
}

func TestBuildTokenCreateTxExplicitPolicyRequiresSupplyKey(t *testing.T) {
	_, err := BuildTokenCreateTx(TokenCreateTxParams{
		Name:              "Strict",
		Symbol:            "STR",
		TreasuryAccountID: hedera.AccountID{Account: 1001},
		TreasuryKey:       testPublicKey(t),
		InitialSupply:     5,
		SupplyKeyPolicy:   SupplyKeyPolicyExplicit,
	})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "supply key", validationErr.Field)
}

func TestBuildTokenCreateTxRejectsMissingFields(t *testing.T) {
	treasuryKey := testPublicKey(t)

	_, err := BuildTokenCreateTx(TokenCreateTxParams{Symbol: "X", TreasuryKey: treasuryKey})
	assert.True(t, IsValidationError(err))

	_, err = BuildTokenCreateTx(TokenCreateTxParams{Name: "X", TreasuryKey: treasuryKey})
	assert.True(t, IsValidationError(err))

	_, err = BuildTokenCreateTx(TokenCreateTxParams{Name: "X", Symbol: "X"})
	assert.Error(t, err)

	_, err = BuildTokenCreateTx(TokenCreateTxParams{
		Name:            "X",
		Symbol:          "X",
		TreasuryKey:     treasuryKey,
		InitialSupply:   1,
		SupplyKeyPolicy: SupplyKeyPolicy("bogus"),
	})
	assert.Error(t, err)
}

func TestBuildTokenAssociateTx(t *testing.T) {
	account := hedera.AccountID{Account: 2002}
	token := hedera.TokenID{Token: 3003}

	transaction := BuildTokenAssociateTx(account, token)
	require.NotNil(t, transaction.GetAccountID())
	assert.Equal(t, account.String(), transaction.GetAccountID().String())
	require.Len(t, transaction.GetTokenIDs(), 1)
	assert.Equal(t, token.String(), transaction.GetTokenIDs()[0].String())
}

func TestBuildHbarTransferTxIsZeroSum(t *testing.T) {
	sender := hedera.AccountID{Account: 1001}
	recipient := hedera.AccountID{Account: 1002}
	amount := hedera.HbarFromTinybar(150_000_000)

	transaction, err := BuildHbarTransferTx(sender, recipient, amount)
	require.NoError(t, err)

	transfers := transaction.GetHbarTransfers()
	require.Len(t, transfers, 2)
	assert.Equal(t, int64(-150_000_000), transfers[sender].AsTinybar())
	assert.Equal(t, int64(150_000_000), transfers[recipient].AsTinybar())

	var sum int64
	for _, value := range transfers {
		sum += value.AsTinybar()
	}
	assert.Zero(t, sum)
}

func TestBuildHbarTransferTxRejectsNonPositive(t *testing.T) {
	sender := hedera.AccountID{Account: 1001}
	recipient := hedera.AccountID{Account: 1002}

	_, err := BuildHbarTransferTx(sender, recipient, hedera.HbarFromTinybar(0))
	assert.True(t, IsValidationError(err))

	_, err = BuildHbarTransferTx(sender, recipient, hedera.HbarFromTinybar(-5))
	assert.True(t, IsValidationError(err))
}

func TestBuildTokenTransferTxIsZeroSum(t *testing.T) {
	token := hedera.TokenID{Token: 3003}
	sender := hedera.AccountID{Account: 1001}
	recipient := hedera.AccountID{Account: 1002}

	transaction, err := BuildTokenTransferTx(token, sender, recipient, 250)
	require.NoError(t, err)

	legs := transaction.GetTokenTransfers()[token]
	require.Len(t, legs, 2)

	amounts := map[string]int64{}
	var sum int64
	for _, leg := range legs {
		amounts[leg.AccountID.String()] = leg.Amount
		sum += leg.Amount
	}
	assert.Equal(t, int64(-250), amounts[sender.String()])
	assert.Equal(t, int64(250), amounts[recipient.String()])
	assert.Zero(t, sum)
}

func TestBuildTokenTransferTxRejectsNonPositive(t *testing.T) {
	token := hedera.TokenID{Token: 3003}
	sender := hedera.AccountID{Account: 1001}
	recipient := hedera.AccountID{Account: 1002}

	_, err := BuildTokenTransferTx(token, sender, recipient, 0)
	assert.True(t, IsValidationError(err))

	_, err = BuildTokenTransferTx(token, sender, recipient, -1)
	assert.True(t, IsValidationError(err))
}
