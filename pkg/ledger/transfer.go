package ledger

import (
	"context"
	"strconv"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// TransferHbar moves HBAR from the sender to the recipient in one zero-sum
// transfer signed by the sender.
func (c *Client) TransferHbar(ctx context.Context, options HbarTransferOptions) (TransferResult, error) {
	if err := validateOptions(options); err != nil {
		return TransferResult{}, err
	}

	amount, err := hedera.HbarFromString(strings.TrimSpace(options.Amount))
	if err != nil {
		return TransferResult{}, invalidInput("amount", "hbar", "invalid HBAR amount %q: %v", options.Amount, err)
	}
	recipientAccountID, err := parseAccountID("recipient account ID", options.RecipientAccountID)
	if err != nil {
		return TransferResult{}, err
	}

	session, err := c.openSession(options.SenderAccountID, options.SenderPrivateKey, "sender")
	if err != nil {
		return TransferResult{}, err
	}
	defer session.close()

	transaction, err := BuildHbarTransferTx(session.accountID, recipientAccountID, amount)
	if err != nil {
		return TransferResult{}, err
	}

	receipt, transactionID, err := session.submit(ctx, "hbar transfer", transaction)
	if err != nil {
		return TransferResult{}, err
	}

	c.log.Info().
		Str("sender_id", session.accountID.String()).
		Str("recipient_id", recipientAccountID.String()).
		Int64("tinybars", amount.AsTinybar()).
		Str("transaction_id", transactionID).
		Msg("hbar transferred")

	return TransferResult{
		TransactionID: transactionID,
		Amount:        amount.String(),
		Receipt:       receipt,
	}, nil
}

// TransferToken moves a fungible token amount, in base units, from the sender
// to the recipient. A recipient that has not associated the token yields a
// *TokenNotAssociatedError.
func (c *Client) TransferToken(ctx context.Context, options TokenTransferOptions) (TransferResult, error) {
	if err := validateOptions(options); err != nil {
		return TransferResult{}, err
	}

	tokenID, err := parseTokenID("token ID", options.TokenID)
	if err != nil {
		return TransferResult{}, err
	}
	recipientAccountID, err := parseAccountID("recipient account ID", options.RecipientAccountID)
	if err != nil {
		return TransferResult{}, err
	}

	session, err := c.openSession(options.SenderAccountID, options.SenderPrivateKey, "sender")
	if err != nil {
		return TransferResult{}, err
	}
	defer session.close()

	transaction, err := BuildTokenTransferTx(tokenID, session.accountID, recipientAccountID, options.Amount)
	if err != nil {
		return TransferResult{}, err
	}

	receipt, transactionID, err := session.submit(ctx, "token transfer", transaction)
	if err != nil {
		return TransferResult{}, classifyTokenTransferError(err, recipientAccountID, tokenID)
	}

	amount := strconv.FormatInt(options.Amount, 10)
	c.log.Info().
		Str("sender_id", session.accountID.String()).
		Str("recipient_id", recipientAccountID.String()).
		Str("token_id", tokenID.String()).
		Str("amount", amount).
		Str("transaction_id", transactionID).
		Msg("token transferred")

	return TransferResult{
		TransactionID: transactionID,
		Amount:        amount,
		Receipt:       receipt,
	}, nil
}

// classifyTokenTransferError turns a TOKEN_NOT_ASSOCIATED_TO_ACCOUNT rejection
// into a *TokenNotAssociatedError naming the recipient. Other errors pass
// through unchanged.
func classifyTokenTransferError(err error, recipientAccountID hedera.AccountID, tokenID hedera.TokenID) error {
	if err == nil || !IsTokenNotAssociated(err) {
		return err
	}
	return &TokenNotAssociatedError{
		RecipientAccountID: recipientAccountID.String(),
		TokenID:            tokenID.String(),
		Cause:              err,
	}
}
