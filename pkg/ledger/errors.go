package ledger

import (
	"errors"
	"fmt"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// ErrTokenNotAssociated matches any TokenNotAssociatedError via errors.Is.
var ErrTokenNotAssociated = errors.New("token not associated to account")

// ValidationError reports local input that was rejected before anything was
// sent to the ledger.
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s is invalid", e.Field)
}

// TokenNotAssociatedError is returned by TransferToken when the recipient has
// not associated the token.
type TokenNotAssociatedError struct {
	RecipientAccountID string
	TokenID            string
	Cause              error
}

func (e *TokenNotAssociatedError) Error() string {
	return fmt.Sprintf(
		"recipient account %s has not associated token %s; the recipient must associate the token before receiving it",
		e.RecipientAccountID,
		e.TokenID,
	)
}

func (e *TokenNotAssociatedError) Unwrap() error {
	return e.Cause
}

func (e *TokenNotAssociatedError) Is(target error) bool {
	return target == ErrTokenNotAssociated
}

// InsufficientFundsError is returned by CheckOperatorFunds when the operator
// cannot cover the initial balance plus the fee buffer.
type InsufficientFundsError struct {
	AccountID string
	Balance   hedera.Hbar
	Required  hedera.Hbar
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient operator balance: account %s has %s, needs at least %s",
		e.AccountID,
		e.Balance.String(),
		e.Required.String(),
	)
}

// LedgerStatus extracts the status code of a precheck or receipt rejection
// anywhere in the error chain.
func LedgerStatus(err error) (hedera.Status, bool) {
	if err == nil {
		return hedera.StatusSuccess, false
	}

	var precheck hedera.ErrHederaPreCheckStatus
	if errors.As(err, &precheck) {
		return precheck.Status, true
	}
	var precheckPtr *hedera.ErrHederaPreCheckStatus
	if errors.As(err, &precheckPtr) && precheckPtr != nil {
		return precheckPtr.Status, true
	}

	var receipt hedera.ErrHederaReceiptStatus
	if errors.As(err, &receipt) {
		return receipt.Status, true
	}
	var receiptPtr *hedera.ErrHederaReceiptStatus
	if errors.As(err, &receiptPtr) && receiptPtr != nil {
		return receiptPtr.Status, true
	}

	return hedera.StatusSuccess, false
}

// IsTokenNotAssociated reports whether err carries a
// TOKEN_NOT_ASSOCIATED_TO_ACCOUNT status or is already classified.
func IsTokenNotAssociated(err error) bool {
	if errors.Is(err, ErrTokenNotAssociated) {
		return true
	}
	status, ok := LedgerStatus(err)
	return ok && status == hedera.StatusTokenNotAssociatedToAccount
}

// IsInsufficientPayerBalance reports whether the payer could not cover the
// transaction fee.
func IsInsufficientPayerBalance(err error) bool {
	status, ok := LedgerStatus(err)
	return ok && status == hedera.StatusInsufficientPayerBalance
}

// IsValidationError reports whether err was raised by local input checks.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
