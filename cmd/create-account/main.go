// Command create-account creates a funded testnet account from the operator
// credentials in the environment (OPERATOR_ID, OPERATOR_KEY and optionally
// INITIAL_BALANCE in tinybars).
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pterm/pterm"

	"github.com/hashgraph-online/token-dashboard-go/pkg/ledger"
	"github.com/hashgraph-online/token-dashboard-go/pkg/shared"
)

func main() {
	os.Exit(run())
}

func run() int {
	config, err := shared.LoadScriptConfig()
	if err != nil {
		pterm.Error.Println(err.Error())
		pterm.Info.Println("Set OPERATOR_ID and OPERATOR_KEY in your environment or .env file, for example:")
		pterm.Println("  OPERATOR_ID=0.0.1234")
		pterm.Println("  OPERATOR_KEY=302e020100300506032b657004220420...")
		pterm.Println("  INITIAL_BALANCE=100000000   # optional, in tinybars")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := ledger.NewClient(ledger.ClientConfig{Network: config.Operator.Network})
	if err != nil {
		pterm.Error.Printfln("Could not set up the %s client: %v", config.Operator.Network, err)
		return 1
	}

	pterm.DefaultSection.Println("Operator")
	pterm.Info.Printfln("Network: %s", client.Network())
	pterm.Info.Printfln("Operator account: %s", config.Operator.AccountID)

	funds, err := client.CheckOperatorFunds(ctx, config.Operator.AccountID, config.InitialBalanceTinybars)
	var insufficient *ledger.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		pterm.Info.Printfln("Operator balance: %s", funds.Balance)
		pterm.Error.Println("Insufficient operator balance")
		pterm.Printfln("  Required: %s (initial balance plus %s fee buffer)",
			insufficient.Required, hedera.HbarFromTinybar(ledger.OperatorFeeBuffer))
		pterm.Printfln("  Available: %s", insufficient.Balance)
		pterm.Info.Println("Fund the operator account from the testnet faucet or lower INITIAL_BALANCE.")
		return 1
	case err != nil:
		pterm.Error.Printfln("Could not read operator balance: %v", err)
		return 1
	}
	pterm.Info.Printfln("Operator balance: %s", funds.Balance)

	spinner, _ := pterm.DefaultSpinner.Start("Creating account...")
	account, err := client.CreateAccount(ctx, ledger.CreateAccountOptions{
		OperatorAccountID:      config.Operator.AccountID,
		OperatorPrivateKey:     config.Operator.PrivateKey,
		InitialBalanceTinybars: config.InitialBalanceTinybars,
	})
	if err != nil {
		if spinner != nil {
			spinner.Fail("Account creation failed")
		}
		pterm.Error.Println(err.Error())
		if ledger.IsInsufficientPayerBalance(err) {
			pterm.Warning.Println("The operator cannot pay for this transaction. " +
				"Its balance must cover the initial balance and the transaction fee.")
		}
		return 1
	}
	if spinner != nil {
		spinner.Success("Account created")
	}

	pterm.DefaultSection.Println("New account")
	rows := pterm.TableData{
		{"Account ID", account.AccountID},
		{"Private key", account.PrivateKey},
		{"Public key", account.PublicKey},
		{"Transaction", account.TransactionID},
	}
	if config.InitialBalanceTinybars > 0 {
		rows = append(rows, []string{"Initial balance", hedera.HbarFromTinybar(config.InitialBalanceTinybars).String()})
	}
	if err := pterm.DefaultTable.WithHasHeader(false).WithData(rows).Render(); err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}
	pterm.Warning.Println("Store the private key now. It is not shown again.")
	return 0
}
