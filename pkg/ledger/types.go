package ledger

import (
	"github.com/rs/zerolog"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// KeyType selects the signature scheme of generated account keys.
type KeyType string

const (
	KeyTypeED25519 KeyType = "ed25519"
	KeyTypeECDSA   KeyType = "ecdsa"
)

// SupplyKeyPolicy decides what happens when a token is created with a
// nonzero initial supply and no explicit supply key.
type SupplyKeyPolicy string

const (
	// SupplyKeyPolicyTreasury grants supply authority to the treasury key.
	SupplyKeyPolicyTreasury SupplyKeyPolicy = "treasury"
	// SupplyKeyPolicyExplicit rejects the request until a supply key is given.
	SupplyKeyPolicyExplicit SupplyKeyPolicy = "explicit"
)

// OperatorFeeBuffer is the tinybar margin on top of an initial balance that an
// operator must hold before creating a funded account.
const OperatorFeeBuffer int64 = 50_000_000

// ClientFactory builds an unauthenticated hedera client for a network. Each
// operation gets its own client so signing identities never leak across calls.
type ClientFactory func(network string) (*hedera.Client, error)

type ClientConfig struct {
	Network              string
	MirrorBaseURL        string
	MirrorAPIKey         string
	Logger               *zerolog.Logger
	ClientFactory        ClientFactory
	DisableNodeDiscovery bool
	SupplyKeyPolicy      SupplyKeyPolicy
	KeyType              KeyType
}

type BalanceQuery struct {
	AccountID string `label:"account ID" validate:"present"`
	TokenID   string
}

type Balances struct {
	AccountID    string `json:"accountId"`
	Hbar         string `json:"hbarBalance"`
	Tinybars     int64  `json:"tinybars"`
	TokenID      string `json:"tokenId,omitempty"`
	TokenBalance string `json:"tokenBalance"`
}

type CreateAccountOptions struct {
	OperatorAccountID             string  `label:"operator account ID" validate:"present"`
	OperatorPrivateKey            string  `label:"operator private key" validate:"present"`
	InitialBalanceTinybars        int64   `label:"initial balance" validate:"gte=0"`
	MaxAutomaticTokenAssociations int32   `label:"max automatic token associations" validate:"gte=-1"`
	AccountMemo                   string  `label:"account memo" validate:"max=100"`
	KeyType                       KeyType `label:"key type" validate:"omitempty,oneof=ed25519 ecdsa"`
}

type CreateAccountResult struct {
	AccountID     string
	PrivateKey    string
	PublicKey     string
	KeyType       KeyType
	TransactionID string
	Receipt       hedera.TransactionReceipt
}

type CreateTokenOptions struct {
	TreasuryAccountID  string `label:"treasury account ID" validate:"present"`
	TreasuryPrivateKey string `label:"treasury private key" validate:"present"`
	Name               string `label:"token name" validate:"present,max=100"`
	Symbol             string `label:"token symbol" validate:"present,max=100"`
	InitialSupply      uint64
	Decimals           uint `label:"decimals" validate:"lte=18"`
	AdminKey           string
	FreezeKey          string
	WipeKey            string
	SupplyKey          string
}

// CreateTokenResult echoes the request parameters next to the assigned token
// ID. None of the echoed fields are read back from the ledger.
type CreateTokenResult struct {
	TokenID           string
	Name              string
	Symbol            string
	InitialSupply     uint64
	Decimals          uint
	TreasuryAccountID string
	TransactionID     string
	Receipt           hedera.TransactionReceipt
}

type AssociateTokenOptions struct {
	AccountID  string `label:"account ID" validate:"present"`
	PrivateKey string `label:"private key" validate:"present"`
	TokenID    string `label:"token ID" validate:"present"`
}

type AssociateTokenResult struct {
	TransactionID string
	Receipt       hedera.TransactionReceipt
}

type HbarTransferOptions struct {
	SenderAccountID    string `label:"sender account ID" validate:"present"`
	SenderPrivateKey   string `label:"sender private key" validate:"present"`
	RecipientAccountID string `label:"recipient account ID" validate:"present"`
	// Amount is a decimal HBAR amount such as "1.5", or any unit string the
	// SDK accepts ("150 tℏ").
	Amount string `label:"amount" validate:"present"`
}

type TokenTransferOptions struct {
	SenderAccountID    string `label:"sender account ID" validate:"present"`
	SenderPrivateKey   string `label:"sender private key" validate:"present"`
	RecipientAccountID string `label:"recipient account ID" validate:"present"`
	TokenID            string `label:"token ID" validate:"present"`
	// Amount is in the token's smallest unit. It is not scaled by decimals.
	Amount int64 `label:"amount" validate:"gt=0"`
}

type TransferResult struct {
	TransactionID string
	Amount        string
	Receipt       hedera.TransactionReceipt
}

type OperatorFunds struct {
	AccountID string
	Balance   hedera.Hbar
	Required  hedera.Hbar
}

type AccountSummary struct {
	AccountID                     string
	Memo                          string
	KeyType                       string
	MaxAutomaticTokenAssociations int32
	Deleted                       bool
}

type TransactionStatus struct {
	TransactionID      string
	Name               string
	Result             string
	ConsensusTimestamp string
	ChargedFee         int64
	Found              bool
}
