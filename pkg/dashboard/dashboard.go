package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hashgraph-online/token-dashboard-go/pkg/credstore"
	"github.com/hashgraph-online/token-dashboard-go/pkg/ledger"
)

// Ledger is the set of ledger operations the dashboard drives.
// *ledger.Client implements it.
type Ledger interface {
	GetBalances(ctx context.Context, query ledger.BalanceQuery) (ledger.Balances, error)
	CreateAccount(ctx context.Context, options ledger.CreateAccountOptions) (ledger.CreateAccountResult, error)
	CreateToken(ctx context.Context, options ledger.CreateTokenOptions) (ledger.CreateTokenResult, error)
	AssociateToken(ctx context.Context, options ledger.AssociateTokenOptions) (ledger.AssociateTokenResult, error)
	TransferHbar(ctx context.Context, options ledger.HbarTransferOptions) (ledger.TransferResult, error)
	TransferToken(ctx context.Context, options ledger.TokenTransferOptions) (ledger.TransferResult, error)
}

var _ Ledger = (*ledger.Client)(nil)

type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid"
	OutcomeFailed  Outcome = "failed"
)

// ActionResult is the rendered outcome of one user action. Failures are
// carried as status text, never as errors.
type ActionResult struct {
	OK      bool    `json:"ok"`
	Outcome Outcome `json:"outcome"`
	Status  string  `json:"status"`
}

func succeeded(status string) ActionResult {
	return ActionResult{OK: true, Outcome: OutcomeOK, Status: status}
}

func rejected(status string) ActionResult {
	return ActionResult{Outcome: OutcomeInvalid, Status: status}
}

func failed(status string) ActionResult {
	return ActionResult{Outcome: OutcomeFailed, Status: status}
}

// ledgerFailure renders a ledger error. Input rejected locally before
// anything reached the network is invalid, everything else failed.
func ledgerFailure(err error, status string) ActionResult {
	if ledger.IsValidationError(err) {
		return rejected(status)
	}
	return failed(status)
}

type State struct {
	AccountID      string `json:"accountId"`
	HasPrivateKey  bool   `json:"hasPrivateKey"`
	TokenID        string `json:"tokenId"`
	OperatorID     string `json:"operatorId"`
	HasOperatorKey bool   `json:"hasOperatorKey"`
	HbarBalance    string `json:"hbarBalance"`
	TokenBalance   string `json:"tokenBalance"`
	Status         string `json:"status"`
	// CanAutoCreate is true when an account can be created from the stored
	// operator because no account is configured.
	CanAutoCreate bool `json:"canAutoCreate"`
}

type AccountCreated struct {
	AccountID  string `json:"accountId"`
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

type TokenRequest struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	InitialSupply uint64 `json:"initialSupply"`
	Decimals      uint   `json:"decimals"`
}

type AssociationRequest struct {
	AccountID  string `json:"accountId"`
	PrivateKey string `json:"privateKey"`
	// TokenID defaults to the dashboard's current token when empty.
	TokenID string `json:"tokenId"`
}

type HbarTransferRequest struct {
	RecipientAccountID string `json:"recipientAccountId"`
	Amount             string `json:"amount"`
}

type TokenTransferRequest struct {
	RecipientAccountID string `json:"recipientAccountId"`
	Amount             int64  `json:"amount"`
}

type Config struct {
	Ledger  Ledger
	Store   credstore.Store
	Logger  *zerolog.Logger
	Metrics *Metrics
}

// Dashboard is the presentation controller. User actions run one at a time;
// state reads never wait on a running action.
type Dashboard struct {
	ledger  Ledger
	store   credstore.Store
	log     zerolog.Logger
	metrics *Metrics

	actionMu sync.Mutex

	stateMu      sync.RWMutex
	credentials  credstore.Credentials
	hbarBalance  string
	tokenBalance string
	status       string
}

func New(config Config) (*Dashboard, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if config.Store == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	return &Dashboard{
		ledger:       config.Ledger,
		store:        config.Store,
		log:          log.With().Str("component", "dashboard").Logger(),
		metrics:      config.Metrics,
		hbarBalance:  "0",
		tokenBalance: "0",
	}, nil
}

// Start loads the stored credentials. With no account configured and an
// operator available it creates one; with an account it fetches balances.
func (d *Dashboard) Start(ctx context.Context) (ActionResult, error) {
	credentials, err := credstore.Load(ctx, d.store)
	if err != nil {
		return ActionResult{}, fmt.Errorf("failed to load credentials: %w", err)
	}

	d.stateMu.Lock()
	d.credentials = credentials
	d.stateMu.Unlock()

	if credentials.AccountID == "" && credentials.PrivateKey == "" && credentials.HasOperator() {
		return d.run(ctx, "auto_create_account", func(ctx context.Context) ActionResult {
			result, _ := d.createAccount(ctx, true)
			return d.refreshAfter(ctx, result)
		}), nil
	}
	if credentials.AccountID != "" {
		return d.RefreshBalances(ctx), nil
	}
	return succeeded(""), nil
}

func (d *Dashboard) State() State {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()

	return State{
		AccountID:      d.credentials.AccountID,
		HasPrivateKey:  d.credentials.PrivateKey != "",
		TokenID:        d.credentials.TokenID,
		OperatorID:     d.credentials.OperatorID,
		HasOperatorKey: d.credentials.OperatorKey != "",
		HbarBalance:    d.hbarBalance,
		TokenBalance:   d.tokenBalance,
		Status:         d.status,
		CanAutoCreate: d.credentials.AccountID == "" &&
			d.credentials.PrivateKey == "" &&
			d.credentials.HasOperator(),
	}
}

func (d *Dashboard) snapshot() credstore.Credentials {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.credentials
}

func (d *Dashboard) update(fn func(*Dashboard)) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	fn(d)
}

// run executes one serialized action and records its status and metrics.
func (d *Dashboard) run(ctx context.Context, action string, fn func(context.Context) ActionResult) ActionResult {
	d.actionMu.Lock()
	defer d.actionMu.Unlock()

	started := time.Now()
	result := fn(ctx)
	d.metrics.observeAction(action, result.Outcome, time.Since(started))

	d.update(func(d *Dashboard) { d.status = result.Status })

	event := d.log.Info()
	if !result.OK {
		event = d.log.Warn()
	}
	event.Str("action", action).Str("outcome", string(result.Outcome)).Str("status", result.Status).Msg("action finished")
	return result
}

func (d *Dashboard) SetOperator(ctx context.Context, operatorID string, operatorKey string) ActionResult {
	return d.run(ctx, "set_operator", func(ctx context.Context) ActionResult {
		operatorID = strings.TrimSpace(operatorID)
		operatorKey = strings.TrimSpace(operatorKey)
		d.update(func(d *Dashboard) {
			d.credentials.OperatorID = operatorID
			d.credentials.OperatorKey = operatorKey
		})
		if err := credstore.SaveOperator(ctx, d.store, operatorID, operatorKey); err != nil {
			return failed(msgStoreFailed(err))
		}
		return succeeded(msgOperatorSaved)
	})
}

func (d *Dashboard) ClearOperator(ctx context.Context) ActionResult {
	return d.run(ctx, "clear_operator", func(ctx context.Context) ActionResult {
		d.update(func(d *Dashboard) {
			d.credentials.OperatorID = ""
			d.credentials.OperatorKey = ""
		})
		if err := credstore.ClearOperator(ctx, d.store); err != nil {
			return failed(msgStoreFailed(err))
		}
		return succeeded(msgOperatorCleared)
	})
}

// SetAccount replaces the active account. Empty values clear the field for
// this session but leave the stored value in place.
func (d *Dashboard) SetAccount(ctx context.Context, accountID string, privateKey string) ActionResult {
	return d.run(ctx, "set_account", func(ctx context.Context) ActionResult {
		accountID = strings.TrimSpace(accountID)
		privateKey = strings.TrimSpace(privateKey)
		d.update(func(d *Dashboard) {
			d.credentials.AccountID = accountID
			d.credentials.PrivateKey = privateKey
		})
		if err := credstore.SaveAccount(ctx, d.store, accountID, privateKey); err != nil {
			return failed(msgStoreFailed(err))
		}
		if accountID == "" {
			return succeeded(msgAccountSaved)
		}
		return d.refreshBalances(ctx)
	})
}

func (d *Dashboard) SetToken(ctx context.Context, tokenID string) ActionResult {
	return d.run(ctx, "set_token", func(ctx context.Context) ActionResult {
		tokenID = strings.TrimSpace(tokenID)
		d.update(func(d *Dashboard) { d.credentials.TokenID = tokenID })
		if err := credstore.SaveToken(ctx, d.store, tokenID); err != nil {
			return failed(msgStoreFailed(err))
		}
		if d.snapshot().AccountID == "" {
			return succeeded(msgTokenSaved)
		}
		return d.refreshBalances(ctx)
	})
}

func (d *Dashboard) RefreshBalances(ctx context.Context) ActionResult {
	return d.run(ctx, "refresh_balances", d.refreshBalances)
}

func (d *Dashboard) refreshBalances(ctx context.Context) ActionResult {
	credentials := d.snapshot()
	if credentials.AccountID == "" {
		return rejected(msgEnterAccountForBalances)
	}

	balances, err := d.ledger.GetBalances(ctx, ledger.BalanceQuery{
		AccountID: credentials.AccountID,
		TokenID:   credentials.TokenID,
	})
	if err != nil {
		d.update(func(d *Dashboard) {
			d.hbarBalance = "0"
			d.tokenBalance = "0"
		})
		return ledgerFailure(err, msgBalancesFailed(err))
	}

	d.update(func(d *Dashboard) {
		d.hbarBalance = balances.Hbar
		d.tokenBalance = balances.TokenBalance
	})
	return succeeded(msgBalancesUpdated)
}

// refreshAfter updates balances once a state-changing action has succeeded.
// The action's own status is kept; refresh failures are only logged.
func (d *Dashboard) refreshAfter(ctx context.Context, result ActionResult) ActionResult {
	if !result.OK || d.snapshot().AccountID == "" {
		return result
	}
	if refreshed := d.refreshBalances(ctx); !refreshed.OK {
		d.log.Warn().Str("status", refreshed.Status).Msg("balance refresh failed")
	}
	return result
}

// CreateAccount creates an account paid for by the stored operator and makes
// it the active account. The returned private key is also persisted.
func (d *Dashboard) CreateAccount(ctx context.Context) (ActionResult, *AccountCreated) {
	var created *AccountCreated
	result := d.run(ctx, "create_account", func(ctx context.Context) ActionResult {
		var result ActionResult
		result, created = d.createAccount(ctx, false)
		return d.refreshAfter(ctx, result)
	})
	return result, created
}

func (d *Dashboard) createAccount(ctx context.Context, auto bool) (ActionResult, *AccountCreated) {
	credentials := d.snapshot()
	if !credentials.HasOperator() {
		return rejected(msgEnterOperator), nil
	}

	account, err := d.ledger.CreateAccount(ctx, ledger.CreateAccountOptions{
		OperatorAccountID:  credentials.OperatorID,
		OperatorPrivateKey: credentials.OperatorKey,
	})
	if err != nil {
		if auto {
			return ledgerFailure(err, msgAutoCreateFailed(err)), nil
		}
		return ledgerFailure(err, msgAccountCreateFailed(err)), nil
	}

	d.update(func(d *Dashboard) {
		d.credentials.AccountID = account.AccountID
		d.credentials.PrivateKey = account.PrivateKey
	})
	created := &AccountCreated{
		AccountID:  account.AccountID,
		PrivateKey: account.PrivateKey,
		PublicKey:  account.PublicKey,
	}
	if err := credstore.SaveAccount(ctx, d.store, account.AccountID, account.PrivateKey); err != nil {
		return failed(msgStoreFailed(err)), created
	}
	return succeeded(msgAccountCreated(account.AccountID)), created
}

// CreateToken creates a token with the active account as treasury and makes
// it the active token.
func (d *Dashboard) CreateToken(ctx context.Context, request TokenRequest) ActionResult {
	return d.run(ctx, "create_token", func(ctx context.Context) ActionResult {
		credentials := d.snapshot()
		if !credentials.HasAccount() {
			return rejected(msgEnterAccount)
		}
		if strings.TrimSpace(request.Name) == "" || strings.TrimSpace(request.Symbol) == "" {
			return rejected(msgTokenNameSymbolRequired)
		}

		token, err := d.ledger.CreateToken(ctx, ledger.CreateTokenOptions{
			TreasuryAccountID:  credentials.AccountID,
			TreasuryPrivateKey: credentials.PrivateKey,
			Name:               request.Name,
			Symbol:             request.Symbol,
			InitialSupply:      request.InitialSupply,
			Decimals:           request.Decimals,
		})
		if err != nil {
			return ledgerFailure(err, msgTokenCreateFailed(err))
		}

		d.update(func(d *Dashboard) { d.credentials.TokenID = token.TokenID })
		if err := credstore.SaveToken(ctx, d.store, token.TokenID); err != nil {
			return failed(msgStoreFailed(err))
		}
		return d.refreshAfter(ctx, succeeded(msgTokenCreated(token.TokenID)))
	})
}

// Associate associates an account, signed by that account's own key, with a
// token.
func (d *Dashboard) Associate(ctx context.Context, request AssociationRequest) ActionResult {
	return d.run(ctx, "associate_token", func(ctx context.Context) ActionResult {
		tokenID := strings.TrimSpace(request.TokenID)
		if tokenID == "" {
			tokenID = d.snapshot().TokenID
		}
		accountID := strings.TrimSpace(request.AccountID)
		if accountID == "" || strings.TrimSpace(request.PrivateKey) == "" || tokenID == "" {
			return rejected(msgFillAssociation)
		}

		association, err := d.ledger.AssociateToken(ctx, ledger.AssociateTokenOptions{
			AccountID:  accountID,
			PrivateKey: request.PrivateKey,
			TokenID:    tokenID,
		})
		if err != nil {
			return ledgerFailure(err, msgAssociationFailed(err))
		}
		return d.refreshAfter(ctx, succeeded(msgAssociated(accountID, tokenID, association.TransactionID)))
	})
}

func (d *Dashboard) SendHbar(ctx context.Context, request HbarTransferRequest) ActionResult {
	return d.run(ctx, "transfer_hbar", func(ctx context.Context) ActionResult {
		credentials := d.snapshot()
		recipient := strings.TrimSpace(request.RecipientAccountID)
		amount := strings.TrimSpace(request.Amount)
		if !credentials.HasAccount() || recipient == "" || amount == "" {
			return rejected(msgFillAllFields)
		}

		transfer, err := d.ledger.TransferHbar(ctx, ledger.HbarTransferOptions{
			SenderAccountID:    credentials.AccountID,
			SenderPrivateKey:   credentials.PrivateKey,
			RecipientAccountID: recipient,
			Amount:             amount,
		})
		if err != nil {
			return ledgerFailure(err, msgHbarFailed(err))
		}
		return d.refreshAfter(ctx, succeeded(msgHbarSent(amount, transfer.TransactionID)))
	})
}

// SendToken transfers the active token. Amount is in the token's base units.
func (d *Dashboard) SendToken(ctx context.Context, request TokenTransferRequest) ActionResult {
	return d.run(ctx, "transfer_token", func(ctx context.Context) ActionResult {
		credentials := d.snapshot()
		recipient := strings.TrimSpace(request.RecipientAccountID)
		if !credentials.HasAccount() || credentials.TokenID == "" || recipient == "" || request.Amount == 0 {
			return rejected(msgFillAllFields)
		}

		transfer, err := d.ledger.TransferToken(ctx, ledger.TokenTransferOptions{
			SenderAccountID:    credentials.AccountID,
			SenderPrivateKey:   credentials.PrivateKey,
			RecipientAccountID: recipient,
			TokenID:            credentials.TokenID,
			Amount:             request.Amount,
		})
		if errors.Is(err, ledger.ErrTokenNotAssociated) {
			return failed(msgRecipientNotAssociated(recipient))
		}
		if err != nil {
			return ledgerFailure(err, msgTokenTransferFailed(err))
		}
		return d.refreshAfter(ctx, succeeded(msgTokensSent(strconv.FormatInt(request.Amount, 10), transfer.TransactionID)))
	})
}
