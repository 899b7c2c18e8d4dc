package ledger

import (
	"context"
	"fmt"
	"math"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// CreateAccount generates a fresh keypair and creates an account for it,
// paid for and signed by the operator. The private key is returned once and
// never stored.
func (c *Client) CreateAccount(ctx context.Context, options CreateAccountOptions) (CreateAccountResult, error) {
	if err := validateOptions(options); err != nil {
		return CreateAccountResult{}, err
	}

	keyType := options.KeyType
	if keyType == "" {
		keyType = c.keyType
	}

	session, err := c.openSession(options.OperatorAccountID, options.OperatorPrivateKey, "operator")
	if err != nil {
		return CreateAccountResult{}, err
	}
	defer session.close()

	privateKey, err := GeneratePrivateKey(keyType)
	if err != nil {
		return CreateAccountResult{}, err
	}
	publicKey := privateKey.PublicKey()

	transaction, err := BuildAccountCreateTx(AccountCreateTxParams{
		PublicKey:                     publicKey,
		InitialBalance:                hedera.HbarFromTinybar(options.InitialBalanceTinybars),
		MaxAutomaticTokenAssociations: options.MaxAutomaticTokenAssociations,
		AccountMemo:                   options.AccountMemo,
		NodeAccountIDs:                c.discoverNodes(ctx, session),
	})
	if err != nil {
		return CreateAccountResult{}, err
	}

	receipt, transactionID, err := session.submit(ctx, "account create", transaction)
	if err != nil {
		return CreateAccountResult{}, err
	}
	if receipt.AccountID == nil {
		return CreateAccountResult{}, fmt.Errorf("account create receipt did not include an account ID")
	}

	accountID := receipt.AccountID.String()
	c.log.Info().
		Str("account_id", accountID).
		Str("operator_id", session.accountID.String()).
		Str("key_type", string(keyType)).
		Int64("initial_balance_tinybars", options.InitialBalanceTinybars).
		Str("transaction_id", transactionID).
		Msg("account created")

	return CreateAccountResult{
		AccountID:     accountID,
		PrivateKey:    privateKey.String(),
		PublicKey:     publicKey.String(),
		KeyType:       keyTypeOf(privateKey),
		TransactionID: transactionID,
		Receipt:       receipt,
	}, nil
}

// discoverNodes narrows submission to nodes the mirror node lists. Failures
// are logged and leave node selection to the SDK.
func (c *Client) discoverNodes(ctx context.Context, session *session) []hedera.AccountID {
	if !c.nodeDiscovery {
		return nil
	}
	nodeAccountIDs, err := discoverNodeAccountIDs(ctx, c.nodes, session.client.GetNetwork())
	if err != nil {
		c.log.Debug().Err(err).Msg("node discovery skipped")
		return nil
	}
	return nodeAccountIDs
}

// CheckOperatorFunds reports the operator's HBAR balance. When an initial
// balance is requested the operator must also hold that amount plus
// OperatorFeeBuffer, otherwise an *InsufficientFundsError is returned along
// with the funds that were read.
func (c *Client) CheckOperatorFunds(
	ctx context.Context,
	operatorAccountID string,
	initialBalanceTinybars int64,
) (OperatorFunds, error) {
	if strings.TrimSpace(operatorAccountID) == "" {
		return OperatorFunds{}, invalidInput("operator account ID", "present", "operator account ID is required")
	}
	if initialBalanceTinybars < 0 {
		return OperatorFunds{}, invalidInput("initial balance", "gte", "initial balance must be at least 0")
	}
	if initialBalanceTinybars > math.MaxInt64-OperatorFeeBuffer {
		return OperatorFunds{}, invalidInput(
			"initial balance",
			"lte",
			"initial balance must be at most %d tinybars",
			int64(math.MaxInt64-OperatorFeeBuffer),
		)
	}

	balances, err := c.GetBalances(ctx, BalanceQuery{AccountID: operatorAccountID})
	if err != nil {
		return OperatorFunds{}, err
	}

	funds := OperatorFunds{
		AccountID: balances.AccountID,
		Balance:   hedera.HbarFromTinybar(balances.Tinybars),
		Required:  hedera.HbarFromTinybar(0),
	}
	if initialBalanceTinybars == 0 {
		return funds, nil
	}

	funds.Required = hedera.HbarFromTinybar(initialBalanceTinybars + OperatorFeeBuffer)
	if balances.Tinybars < funds.Required.AsTinybar() {
		return funds, &InsufficientFundsError{
			AccountID: funds.AccountID,
			Balance:   funds.Balance,
			Required:  funds.Required,
		}
	}
	return funds, nil
}
