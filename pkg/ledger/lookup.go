package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashgraph-online/token-dashboard-go/pkg/mirror"
)

// AccountInfo reads account metadata from the mirror node. The mirror node
// trails consensus by a few seconds, so a freshly created account may 404.
func (c *Client) AccountInfo(ctx context.Context, accountID string) (AccountSummary, error) {
	if strings.TrimSpace(accountID) == "" {
		return AccountSummary{}, invalidInput("account ID", "present", "account ID is required")
	}

	info, err := c.mirrorClient.GetAccount(ctx, accountID)
	if err != nil {
		return AccountSummary{}, fmt.Errorf("failed to look up account %s: %w", strings.TrimSpace(accountID), err)
	}

	return AccountSummary{
		AccountID:                     info.Account,
		Memo:                          info.Memo,
		KeyType:                       info.KeyType(),
		MaxAutomaticTokenAssociations: info.MaxAutomaticTokenAssociations,
		Deleted:                       info.Deleted,
	}, nil
}

// TransactionStatus reads the recorded outcome of a submitted transaction.
// Found is false while the mirror node has not ingested it yet.
func (c *Client) TransactionStatus(ctx context.Context, transactionID string) (TransactionStatus, error) {
	if strings.TrimSpace(transactionID) == "" {
		return TransactionStatus{}, invalidInput("transaction ID", "present", "transaction ID is required")
	}

	transaction, err := c.mirrorClient.GetTransaction(ctx, transactionID)
	if err != nil {
		return TransactionStatus{}, fmt.Errorf("failed to look up transaction: %w", err)
	}

	status := TransactionStatus{TransactionID: mirror.FormatTransactionID(transactionID)}
	if transaction == nil {
		return status, nil
	}
	status.Found = true
	status.Name = transaction.Name
	status.Result = transaction.Result
	status.ConsensusTimestamp = transaction.ConsensusTimestamp
	status.ChargedFee = transaction.ChargedTxFee
	return status, nil
}
