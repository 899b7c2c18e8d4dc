package dashboard

import "fmt"

const (
	msgEnterAccountForBalances = "Please enter Account ID to fetch balances"
	msgBalancesUpdated         = "Balances updated successfully"
	msgEnterOperator           = "Please enter operator Account ID and Private Key"
	msgEnterAccount            = "Please enter Account ID and Private Key"
	msgTokenNameSymbolRequired = "Token Name and Symbol are required"
	msgFillAssociation         = "Please fill in Recipient Account ID, Private Key, and Token ID"
	msgFillAllFields           = "Please fill in all fields"
	msgOperatorSaved           = "Operator credentials saved"
	msgOperatorCleared         = "Operator credentials cleared"
	msgAccountSaved            = "Account credentials saved"
	msgTokenSaved              = "Token ID saved"
)

func msgBalancesFailed(err error) string {
	return fmt.Sprintf("Error fetching balances: %s", err)
}

func msgAccountCreated(accountID string) string {
	return fmt.Sprintf("Account created! Account ID: %s", accountID)
}

func msgAccountCreateFailed(err error) string {
	return fmt.Sprintf("Failed to create account: %s", err)
}

func msgAutoCreateFailed(err error) string {
	return fmt.Sprintf("Auto-create failed: %s", err)
}

func msgTokenCreated(tokenID string) string {
	return fmt.Sprintf("Token created! Token ID: %s", tokenID)
}

func msgTokenCreateFailed(err error) string {
	return fmt.Sprintf("Failed to create token: %s", err)
}

func msgAssociated(accountID string, tokenID string, transactionID string) string {
	return fmt.Sprintf("Account %s associated with token %s! Tx: %s", accountID, tokenID, transactionID)
}

func msgAssociationFailed(err error) string {
	return fmt.Sprintf("Association failed: %s", err)
}

func msgHbarSent(amount string, transactionID string) string {
	return fmt.Sprintf("Sent %s HBAR! Tx: %s", amount, transactionID)
}

func msgHbarFailed(err error) string {
	return fmt.Sprintf("HBAR transfer failed: %s", err)
}

func msgTokensSent(amount string, transactionID string) string {
	return fmt.Sprintf("Sent %s tokens! Tx: %s", amount, transactionID)
}

func msgTokenTransferFailed(err error) string {
	return fmt.Sprintf("Token transfer failed: %s", err)
}

func msgRecipientNotAssociated(recipientAccountID string) string {
	return fmt.Sprintf(
		"Send failed: The recipient account (%s) is not associated with this token. "+
			"The recipient must associate their account with the token before receiving tokens. "+
			"If you're the recipient, associate your account with the token first.",
		recipientAccountID,
	)
}

func msgStoreFailed(err error) string {
	return fmt.Sprintf("Could not save credentials: %s", err)
}
