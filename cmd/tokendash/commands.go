package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/token-dashboard-go/pkg/credstore"
	"github.com/hashgraph-online/token-dashboard-go/pkg/ledger"
)

func newBalanceCommand(a *app) *cobra.Command {
	var accountID, tokenID string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show HBAR and token balances of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if accountID == "" || tokenID == "" {
				credentials, err := a.credentials(ctx)
				if err != nil {
					return err
				}
				if accountID == "" {
					accountID = credentials.AccountID
				}
				if tokenID == "" {
					tokenID = credentials.TokenID
				}
			}

			client, err := a.ledgerClient()
			if err != nil {
				return err
			}
			balances, err := client.GetBalances(ctx, ledger.BalanceQuery{AccountID: accountID, TokenID: tokenID})
			if err != nil {
				return err
			}
			return printRows("Balances",
				row{"Account", balances.AccountID},
				row{"HBAR", balances.Hbar},
				row{"Token", balances.TokenID},
				row{"Token balance", balances.TokenBalance},
			)
		},
	}
	cmd.Flags().StringVar(&accountID, "account-id", "", "account to query (defaults to the stored account)")
	cmd.Flags().StringVar(&tokenID, "token-id", "", "token to query (defaults to the stored token)")
	return cmd
}

func newAccountCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create and inspect accounts",
	}
	cmd.AddCommand(newAccountCreateCommand(a), newAccountInfoCommand(a))
	return cmd
}

func newAccountCreateCommand(a *app) *cobra.Command {
	var (
		operatorID, operatorKey string
		initialBalance          int64
		maxAssociations         int32
		memo                    string
		save                    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account paid for by the operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			operatorID, operatorKey, err := a.operator(ctx, operatorID, operatorKey)
			if err != nil {
				return err
			}
			client, err := a.ledgerClient()
			if err != nil {
				return err
			}

			if initialBalance > 0 {
				if _, err := client.CheckOperatorFunds(ctx, operatorID, initialBalance); err != nil {
					return err
				}
			}

			account, err := client.CreateAccount(ctx, ledger.CreateAccountOptions{
				OperatorAccountID:             operatorID,
				OperatorPrivateKey:            operatorKey,
				InitialBalanceTinybars:        initialBalance,
				MaxAutomaticTokenAssociations: maxAssociations,
				AccountMemo:                   memo,
			})
			if err != nil {
				return err
			}
			if err := ledger.VerifyKeyPair(account.PrivateKey); err != nil {
				return fmt.Errorf("created account %s but its key failed verification: %w", account.AccountID, err)
			}

			if save {
				store, err := a.credentialStore(ctx)
				if err != nil {
					return err
				}
				if err := credstore.SaveAccount(ctx, store, account.AccountID, account.PrivateKey); err != nil {
					return err
				}
			}

			if err := printRows("Account created",
				row{"Account ID", account.AccountID},
				row{"Private key", account.PrivateKey},
				row{"Public key", account.PublicKey},
				row{"Key type", string(account.KeyType)},
				row{"Transaction", account.TransactionID},
			); err != nil {
				return err
			}
			if !save {
				pterm.Warning.Println("Store the private key now. Pass --save to keep it in the credential store.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&operatorID, "operator-id", "", "paying operator account")
	cmd.Flags().StringVar(&operatorKey, "operator-key", "", "paying operator private key")
	cmd.Flags().Int64Var(&initialBalance, "initial-balance", 0, "initial balance in tinybars")
	cmd.Flags().Int32Var(&maxAssociations, "max-token-associations", 0, "automatic token association slots (-1 for unlimited)")
	cmd.Flags().StringVar(&memo, "memo", "", "account memo")
	cmd.Flags().BoolVar(&save, "save", false, "store the new account as the active account")
	return cmd
}

func newAccountInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <account-id>",
		Short: "Show an account as seen by the mirror node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.ledgerClient()
			if err != nil {
				return err
			}
			summary, err := client.AccountInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRows("Account",
				row{"Account ID", summary.AccountID},
				row{"Memo", summary.Memo},
				row{"Key type", summary.KeyType},
				row{"Auto associations", strconv.FormatInt(int64(summary.MaxAutomaticTokenAssociations), 10)},
				row{"Deleted", strconv.FormatBool(summary.Deleted)},
			)
		},
	}
}

func newTokenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Create tokens and manage associations",
	}
	cmd.AddCommand(newTokenCreateCommand(a), newTokenAssociateCommand(a))
	return cmd
}

func newTokenCreateCommand(a *app) *cobra.Command {
	var (
		accountID, privateKey string
		options               ledger.CreateTokenOptions
		save                  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a fungible token with the account as treasury",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			treasuryID, treasuryKey, err := a.account(ctx, accountID, privateKey)
			if err != nil {
				return err
			}
			client, err := a.ledgerClient()
			if err != nil {
				return err
			}

			options.TreasuryAccountID = treasuryID
			options.TreasuryPrivateKey = treasuryKey
			token, err := client.CreateToken(ctx, options)
			if err != nil {
				return err
			}

			if save {
				store, err := a.credentialStore(ctx)
				if err != nil {
					return err
				}
				if err := credstore.SaveToken(ctx, store, token.TokenID); err != nil {
					return err
				}
			}

			return printRows("Token created",
				row{"Token ID", token.TokenID},
				row{"Name", token.Name},
				row{"Symbol", token.Symbol},
				row{"Initial supply", strconv.FormatUint(token.InitialSupply, 10)},
				row{"Decimals", strconv.FormatUint(uint64(token.Decimals), 10)},
				row{"Treasury", token.TreasuryAccountID},
				row{"Transaction", token.TransactionID},
			)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&accountID, "account-id", "", "treasury account (defaults to the stored account)")
	flags.StringVar(&privateKey, "private-key", "", "treasury private key")
	flags.StringVar(&options.Name, "name", "", "token name")
	flags.StringVar(&options.Symbol, "symbol", "", "token symbol")
	flags.Uint64Var(&options.InitialSupply, "supply", 0, "initial supply in base units")
	flags.UintVar(&options.Decimals, "decimals", 0, "decimal places")
	flags.StringVar(&options.AdminKey, "admin-key", "", "admin public key (defaults to the treasury key)")
	flags.StringVar(&options.SupplyKey, "supply-key", "", "supply public key")
	flags.StringVar(&options.FreezeKey, "freeze-key", "", "freeze public key")
	flags.StringVar(&options.WipeKey, "wipe-key", "", "wipe public key")
	flags.BoolVar(&save, "save", true, "store the new token as the active token")
	return cmd
}

func newTokenAssociateCommand(a *app) *cobra.Command {
	var accountID, privateKey, tokenID string

	cmd := &cobra.Command{
		Use:   "associate",
		Short: "Associate an account with a token, signed by that account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			accountID, privateKey, err := a.account(ctx, accountID, privateKey)
			if err != nil {
				return err
			}
			if tokenID == "" {
				credentials, err := a.credentials(ctx)
				if err != nil {
					return err
				}
				tokenID = credentials.TokenID
			}
			client, err := a.ledgerClient()
			if err != nil {
				return err
			}

			association, err := client.AssociateToken(ctx, ledger.AssociateTokenOptions{
				AccountID:  accountID,
				PrivateKey: privateKey,
				TokenID:    tokenID,
			})
			if err != nil {
				return err
			}
			return printRows("Token associated",
				row{"Account", accountID},
				row{"Token", tokenID},
				row{"Transaction", association.TransactionID},
			)
		},
	}
	cmd.Flags().StringVar(&accountID, "account-id", "", "account to associate (defaults to the stored account)")
	cmd.Flags().StringVar(&privateKey, "private-key", "", "private key of that account")
	cmd.Flags().StringVar(&tokenID, "token-id", "", "token to associate (defaults to the stored token)")
	return cmd
}

func newTransferCommand(a *app) *cobra.Command {
	var accountID, privateKey string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send HBAR or tokens from the active account",
	}
	cmd.PersistentFlags().StringVar(&accountID, "account-id", "", "sender account (defaults to the stored account)")
	cmd.PersistentFlags().StringVar(&privateKey, "private-key", "", "sender private key")

	var hbarTo, hbarAmount string
	hbar := &cobra.Command{
		Use:   "hbar",
		Short: "Send HBAR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			senderID, senderKey, err := a.account(ctx, accountID, privateKey)
			if err != nil {
				return err
			}
			client, err := a.ledgerClient()
			if err != nil {
				return err
			}
			transfer, err := client.TransferHbar(ctx, ledger.HbarTransferOptions{
				SenderAccountID:    senderID,
				SenderPrivateKey:   senderKey,
				RecipientAccountID: hbarTo,
				Amount:             hbarAmount,
			})
			if err != nil {
				return err
			}
			return printRows("HBAR sent",
				row{"From", senderID},
				row{"To", hbarTo},
				row{"Amount", transfer.Amount},
				row{"Transaction", transfer.TransactionID},
			)
		},
	}
	hbar.Flags().StringVar(&hbarTo, "to", "", "recipient account")
	hbar.Flags().StringVar(&hbarAmount, "amount", "", "amount in HBAR, e.g. 1.5")

	var tokenTo, tokenID string
	var tokenAmount int64
	token := &cobra.Command{
		Use:   "token",
		Short: "Send tokens in base units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			senderID, senderKey, err := a.account(ctx, accountID, privateKey)
			if err != nil {
				return err
			}
			if tokenID == "" {
				credentials, err := a.credentials(ctx)
				if err != nil {
					return err
				}
				tokenID = credentials.TokenID
			}
			client, err := a.ledgerClient()
			if err != nil {
				return err
			}
			transfer, err := client.TransferToken(ctx, ledger.TokenTransferOptions{
				SenderAccountID:    senderID,
				SenderPrivateKey:   senderKey,
				RecipientAccountID: tokenTo,
				TokenID:            tokenID,
				Amount:             tokenAmount,
			})
			if ledger.IsTokenNotAssociated(err) {
				pterm.Warning.Printfln("Run `tokendash token associate --account-id %s` with the recipient's key first.", tokenTo)
			}
			if err != nil {
				return err
			}
			return printRows("Tokens sent",
				row{"From", senderID},
				row{"To", tokenTo},
				row{"Token", tokenID},
				row{"Amount", transfer.Amount},
				row{"Transaction", transfer.TransactionID},
			)
		},
	}
	token.Flags().StringVar(&tokenTo, "to", "", "recipient account")
	token.Flags().StringVar(&tokenID, "token-id", "", "token to send (defaults to the stored token)")
	token.Flags().Int64Var(&tokenAmount, "amount", 0, "amount in the token's base units")

	cmd.AddCommand(hbar, token)
	return cmd
}

func newOperatorCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Manage the stored operator credentials",
	}

	var operatorID, operatorKey string
	set := &cobra.Command{
		Use:   "set",
		Short: "Store operator credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := ledger.VerifyKeyPair(operatorKey); err != nil {
				return err
			}
			store, err := a.credentialStore(ctx)
			if err != nil {
				return err
			}
			if err := credstore.SaveOperator(ctx, store, operatorID, operatorKey); err != nil {
				return err
			}
			pterm.Success.Printfln("Operator %s saved", operatorID)
			return nil
		},
	}
	set.Flags().StringVar(&operatorID, "id", "", "operator account ID")
	set.Flags().StringVar(&operatorKey, "key", "", "operator private key")
	_ = set.MarkFlagRequired("id")
	_ = set.MarkFlagRequired("key")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored operator credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.credentialStore(ctx)
			if err != nil {
				return err
			}
			if err := credstore.ClearOperator(ctx, store); err != nil {
				return err
			}
			pterm.Success.Println("Operator credentials cleared")
			return nil
		},
	}

	cmd.AddCommand(set, clearCmd)
	return cmd
}

func newTxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Inspect transactions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status <transaction-id>",
		Short: "Show a transaction's consensus result from the mirror node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.ledgerClient()
			if err != nil {
				return err
			}
			status, err := client.TransactionStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !status.Found {
				pterm.Warning.Printfln("Transaction %s not found on the mirror node yet", args[0])
				return nil
			}
			return printRows("Transaction",
				row{"ID", status.TransactionID},
				row{"Type", status.Name},
				row{"Result", status.Result},
				row{"Consensus", status.ConsensusTimestamp},
				row{"Fee (tinybar)", strconv.FormatInt(status.ChargedFee, 10)},
			)
		},
	})
	return cmd
}
