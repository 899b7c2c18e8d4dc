package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/token-dashboard-go/pkg/shared"
)

// GetBalances reads the HBAR balance of an account and, when a token ID is
// given, its balance of that token. Balance queries need no signer.
func (c *Client) GetBalances(ctx context.Context, query BalanceQuery) (Balances, error) {
	if err := validateOptions(query); err != nil {
		return Balances{}, err
	}

	accountID, err := parseAccountID("account ID", query.AccountID)
	if err != nil {
		return Balances{}, err
	}

	session, err := c.openQuerySession()
	if err != nil {
		return Balances{}, err
	}
	defer session.close()

	if err := ctx.Err(); err != nil {
		return Balances{}, err
	}

	balance, err := hedera.NewAccountBalanceQuery().
		SetAccountID(accountID).
		Execute(session.client)
	if err != nil {
		return Balances{}, fmt.Errorf("failed to query account balance: %w", err)
	}

	result := Balances{
		AccountID:    accountID.String(),
		Hbar:         balance.Hbars.String(),
		Tinybars:     balance.Hbars.AsTinybar(),
		TokenID:      strings.TrimSpace(query.TokenID),
		TokenBalance: tokenBalanceOf(balance.Token, query.TokenID),
	}

	c.log.Debug().
		Str("account_id", result.AccountID).
		Str("hbar", result.Hbar).
		Str("token_id", result.TokenID).
		Str("token_balance", result.TokenBalance).
		Msg("balances fetched")

	return result, nil
}

// tokenBalanceOf looks up a token in the balance map. Empty or unparsable
// token IDs and tokens the account does not hold all read as "0".
func tokenBalanceOf(tokens map[hedera.TokenID]uint64, rawTokenID string) string {
	tokenID, err := shared.ParseTokenID(rawTokenID)
	if err != nil {
		return "0"
	}
	for heldID, amount := range tokens {
		if heldID.String() == tokenID.String() {
			return strconv.FormatUint(amount, 10)
		}
	}
	return "0"
}
