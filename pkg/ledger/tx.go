package ledger

import (
	"fmt"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

type AccountCreateTxParams struct {
	PublicKey                     hedera.PublicKey
	InitialBalance                hedera.Hbar
	MaxAutomaticTokenAssociations int32
	AccountMemo                   string
	NodeAccountIDs                []hedera.AccountID
}

func BuildAccountCreateTx(params AccountCreateTxParams) (*hedera.AccountCreateTransaction, error) {
	if params.PublicKey.String() == "" {
		return nil, fmt.Errorf("public key is required")
	}
	if params.InitialBalance.AsTinybar() < 0 {
		return nil, fmt.Errorf("initial balance must not be negative")
	}

	transaction := hedera.NewAccountCreateTransaction().
		SetKey(params.PublicKey).
		SetInitialBalance(params.InitialBalance).
		SetMaxAutomaticTokenAssociations(params.MaxAutomaticTokenAssociations)
	if params.AccountMemo != "" {
		transaction.SetAccountMemo(params.AccountMemo)
	}
	if len(params.NodeAccountIDs) > 0 {
		transaction.SetNodeAccountIDs(params.NodeAccountIDs)
	}
	return transaction, nil
}

type TokenCreateTxParams struct {
	Name              string
	Symbol            string
	TreasuryAccountID hedera.AccountID
	TreasuryKey       hedera.PublicKey
	InitialSupply     uint64
	Decimals          uint
	AdminKey          *hedera.PublicKey
	FreezeKey         *hedera.PublicKey
	WipeKey           *hedera.PublicKey
	SupplyKey         *hedera.PublicKey
	SupplyKeyPolicy   SupplyKeyPolicy
}

// BuildTokenCreateTx builds a fungible token creation. The admin key falls
// back to the treasury key; the supply key follows SupplyKeyPolicy.
func BuildTokenCreateTx(params TokenCreateTxParams) (*hedera.TokenCreateTransaction, error) {
	if params.Name == "" {
		return nil, invalidInput("token name", "present", "token name is required")
	}
	if params.Symbol == "" {
		return nil, invalidInput("token symbol", "present", "token symbol is required")
	}
	if params.TreasuryKey.String() == "" {
		return nil, fmt.Errorf("treasury key is required")
	}

	supplyKey, err := resolveSupplyKey(params.SupplyKeyPolicy, params.SupplyKey, params.TreasuryKey, params.InitialSupply)
	if err != nil {
		return nil, err
	}

	adminKey := params.TreasuryKey
	if params.AdminKey != nil {
		adminKey = *params.AdminKey
	}

	transaction := hedera.NewTokenCreateTransaction().
		SetTokenName(params.Name).
		SetTokenSymbol(params.Symbol).
		SetTreasuryAccountID(params.TreasuryAccountID).
		SetInitialSupply(params.InitialSupply).
		SetDecimals(params.Decimals).
		SetAdminKey(adminKey)
	if params.FreezeKey != nil {
		transaction.SetFreezeKey(*params.FreezeKey)
	}
	if params.WipeKey != nil {
		transaction.SetWipeKey(*params.WipeKey)
	}
	if supplyKey != nil {
		transaction.SetSupplyKey(*supplyKey)
	}
	return transaction, nil
}

func resolveSupplyKey(
	policy SupplyKeyPolicy,
	explicit *hedera.PublicKey,
	treasury hedera.PublicKey,
	initialSupply uint64,
) (*hedera.PublicKey, error) {
	if explicit != nil {
		return explicit, nil
	}
	if initialSupply == 0 {
		return nil, nil
	}
	switch policy {
	case SupplyKeyPolicyExplicit:
		return nil, invalidInput(
			"supply key",
			"required_with_supply",
			"supply key is required when initial supply is greater than zero",
		)
	case "", SupplyKeyPolicyTreasury:
		return &treasury, nil
	default:
		return nil, fmt.Errorf("unsupported supply key policy %q", policy)
	}
}

func BuildTokenAssociateTx(accountID hedera.AccountID, tokenID hedera.TokenID) *hedera.TokenAssociateTransaction {
	return hedera.NewTokenAssociateTransaction().
		SetAccountID(accountID).
		SetTokenIDs(tokenID)
}

func BuildHbarTransferTx(
	senderAccountID hedera.AccountID,
	recipientAccountID hedera.AccountID,
	amount hedera.Hbar,
) (*hedera.TransferTransaction, error) {
	if amount.AsTinybar() <= 0 {
		return nil, invalidInput("amount", "gt", "amount must be greater than 0")
	}
	return hedera.NewTransferTransaction().
		AddHbarTransfer(senderAccountID, amount.Negated()).
		AddHbarTransfer(recipientAccountID, amount), nil
}

func BuildTokenTransferTx(
	tokenID hedera.TokenID,
	senderAccountID hedera.AccountID,
	recipientAccountID hedera.AccountID,
	amount int64,
) (*hedera.TransferTransaction, error) {
	if amount <= 0 {
		return nil, invalidInput("amount", "gt", "amount must be greater than 0")
	}
	return hedera.NewTransferTransaction().
		AddTokenTransfer(tokenID, senderAccountID, -amount).
		AddTokenTransfer(tokenID, recipientAccountID, amount), nil
}
