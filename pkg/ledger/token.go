package ledger

import (
	"context"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/token-dashboard-go/pkg/shared"
)

// CreateToken creates a fungible token whose treasury is the signing account.
func (c *Client) CreateToken(ctx context.Context, options CreateTokenOptions) (CreateTokenResult, error) {
	if err := validateOptions(options); err != nil {
		return CreateTokenResult{}, err
	}

	adminKey, err := optionalPublicKey("admin key", options.AdminKey)
	if err != nil {
		return CreateTokenResult{}, err
	}
	freezeKey, err := optionalPublicKey("freeze key", options.FreezeKey)
	if err != nil {
		return CreateTokenResult{}, err
	}
	wipeKey, err := optionalPublicKey("wipe key", options.WipeKey)
	if err != nil {
		return CreateTokenResult{}, err
	}
	supplyKey, err := optionalPublicKey("supply key", options.SupplyKey)
	if err != nil {
		return CreateTokenResult{}, err
	}

	session, err := c.openSession(options.TreasuryAccountID, options.TreasuryPrivateKey, "treasury")
	if err != nil {
		return CreateTokenResult{}, err
	}
	defer session.close()

	transaction, err := BuildTokenCreateTx(TokenCreateTxParams{
		Name:              options.Name,
		Symbol:            options.Symbol,
		TreasuryAccountID: session.accountID,
		TreasuryKey:       session.privateKey.PublicKey(),
		InitialSupply:     options.InitialSupply,
		Decimals:          options.Decimals,
		AdminKey:          adminKey,
		FreezeKey:         freezeKey,
		WipeKey:           wipeKey,
		SupplyKey:         supplyKey,
		SupplyKeyPolicy:   c.supplyKeyPolicy,
	})
	if err != nil {
		return CreateTokenResult{}, err
	}

	receipt, transactionID, err := session.submit(ctx, "token create", transaction)
	if err != nil {
		return CreateTokenResult{}, err
	}
	if receipt.TokenID == nil {
		return CreateTokenResult{}, fmt.Errorf("token create receipt did not include a token ID")
	}

	tokenID := receipt.TokenID.String()
	c.log.Info().
		Str("token_id", tokenID).
		Str("treasury_id", session.accountID.String()).
		Str("symbol", options.Symbol).
		Uint64("initial_supply", options.InitialSupply).
		Str("transaction_id", transactionID).
		Msg("token created")

	return CreateTokenResult{
		TokenID:           tokenID,
		Name:              options.Name,
		Symbol:            options.Symbol,
		InitialSupply:     options.InitialSupply,
		Decimals:          options.Decimals,
		TreasuryAccountID: session.accountID.String(),
		TransactionID:     transactionID,
		Receipt:           receipt,
	}, nil
}

// AssociateToken lets an account hold a token. It must be signed by the
// account's own key. Re-associating surfaces the ledger's rejection as is.
func (c *Client) AssociateToken(ctx context.Context, options AssociateTokenOptions) (AssociateTokenResult, error) {
	if err := validateOptions(options); err != nil {
		return AssociateTokenResult{}, err
	}

	tokenID, err := parseTokenID("token ID", options.TokenID)
	if err != nil {
		return AssociateTokenResult{}, err
	}

	session, err := c.openSession(options.AccountID, options.PrivateKey, "account")
	if err != nil {
		return AssociateTokenResult{}, err
	}
	defer session.close()

	receipt, transactionID, err := session.submit(ctx, "token associate", BuildTokenAssociateTx(session.accountID, tokenID))
	if err != nil {
		return AssociateTokenResult{}, err
	}

	c.log.Info().
		Str("account_id", session.accountID.String()).
		Str("token_id", tokenID.String()).
		Str("transaction_id", transactionID).
		Msg("token associated")

	return AssociateTokenResult{
		TransactionID: transactionID,
		Receipt:       receipt,
	}, nil
}

func optionalPublicKey(field string, raw string) (*hedera.PublicKey, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	publicKey, err := shared.ParsePublicKey(raw)
	if err != nil {
		return nil, invalidInput(field, "key", "invalid %s: %v", field, err)
	}
	return &publicKey, nil
}
