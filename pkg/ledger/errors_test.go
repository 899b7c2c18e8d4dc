package ledger

import (
	"errors"
	"fmt"
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerStatusFromPrecheck(t *testing.T) {
	err := fmt.Errorf("failed to execute: %w", hedera.ErrHederaPreCheckStatus{
		Status: hedera.StatusTokenNotAssociatedToAccount,
	})

	status, ok := LedgerStatus(err)
	require.True(t, ok)
	assert.Equal(t, hedera.StatusTokenNotAssociatedToAccount, status)
	assert.True(t, IsTokenNotAssociated(err))
	assert.False(t, IsInsufficientPayerBalance(err))
}

func TestLedgerStatusFromReceiptPointer(t *testing.T) {
	err := fmt.Errorf("token transfer transaction failed: %w", &hedera.ErrHederaReceiptStatus{
		Status: hedera.StatusInsufficientPayerBalance,
	})

	status, ok := LedgerStatus(err)
	require.True(t, ok)
	assert.Equal(t, hedera.StatusInsufficientPayerBalance, status)
	assert.True(t, IsInsufficientPayerBalance(err))
	assert.False(t, IsTokenNotAssociated(err))
}

func TestLedgerStatusWithoutStatus(t *testing.T) {
	_, ok := LedgerStatus(nil)
	assert.False(t, ok)

	_, ok = LedgerStatus(errors.New("connection refused"))
	assert.False(t, ok)

	// Matching on message text is not classification.
	assert.False(t, IsTokenNotAssociated(errors.New("TOKEN_NOT_ASSOCIATED_TO_ACCOUNT")))
}

func TestTokenNotAssociatedError(t *testing.T) {
	cause := hedera.ErrHederaReceiptStatus{Status: hedera.StatusTokenNotAssociatedToAccount}
	err := error(&TokenNotAssociatedError{
		RecipientAccountID: "0.0.1002",
		TokenID:            "0.0.3003",
		Cause:              cause,
	})

	assert.ErrorIs(t, err, ErrTokenNotAssociated)
	assert.Contains(t, err.Error(), "0.0.1002")
	assert.Contains(t, err.Error(), "0.0.3003")
	assert.Contains(t, err.Error(), "associate")

	var receiptErr hedera.ErrHederaReceiptStatus
	require.ErrorAs(t, err, &receiptErr)
	assert.Equal(t, hedera.StatusTokenNotAssociatedToAccount, receiptErr.Status)

	wrapped := fmt.Errorf("dashboard: %w", err)
	var classified *TokenNotAssociatedError
	require.ErrorAs(t, wrapped, &classified)
	assert.Equal(t, "0.0.1002", classified.RecipientAccountID)
	assert.True(t, IsTokenNotAssociated(wrapped))
}

func TestInsufficientFundsError(t *testing.T) {
	err := &InsufficientFundsError{
		AccountID: "0.0.2",
		Balance:   hedera.HbarFromTinybar(10),
		Required:  hedera.HbarFromTinybar(OperatorFeeBuffer + 10),
	}
	assert.Contains(t, err.Error(), "0.0.2")
	assert.Contains(t, err.Error(), "insufficient operator balance")
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "amount must be greater than 0", invalidInput("amount", "gt", "amount must be greater than 0").Error())
	assert.Equal(t, "amount is invalid", (&ValidationError{Field: "amount"}).Error())
	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestClassifyTokenTransferError(t *testing.T) {
	recipient := hedera.AccountID{Account: 9}
	tokenID := hedera.TokenID{Token: 7000}

	cases := map[string]error{
		"precheck": fmt.Errorf("failed to execute token transfer transaction: %w", hedera.ErrHederaPreCheckStatus{
			Status: hedera.StatusTokenNotAssociatedToAccount,
		}),
		"receipt": fmt.Errorf("token transfer transaction failed: %w", hedera.ErrHederaReceiptStatus{
			Status: hedera.StatusTokenNotAssociatedToAccount,
		}),
	}
	for name, cause := range cases {
		err := classifyTokenTransferError(cause, recipient, tokenID)

		var notAssociated *TokenNotAssociatedError
		require.True(t, errors.As(err, &notAssociated), name)
		assert.Equal(t, "0.0.9", notAssociated.RecipientAccountID, name)
		assert.Equal(t, "0.0.7000", notAssociated.TokenID, name)
		assert.ErrorIs(t, err, ErrTokenNotAssociated, name)
		assert.Same(t, cause, errors.Unwrap(err), name)
	}

	other := fmt.Errorf("token transfer transaction failed: %w", hedera.ErrHederaReceiptStatus{
		Status: hedera.StatusInsufficientTokenBalance,
	})
	assert.Same(t, other, classifyTokenTransferError(other, recipient, tokenID))
	assert.NoError(t, classifyTokenTransferError(nil, recipient, tokenID))
}
