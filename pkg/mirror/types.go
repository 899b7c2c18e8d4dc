package mirror

import "fmt"

type AccountInfo struct {
	Account                       string         `json:"account"`
	Key                           map[string]any `json:"key"`
	Memo                          string         `json:"memo"`
	Deleted                       bool           `json:"deleted"`
	MaxAutomaticTokenAssociations int32          `json:"max_automatic_token_associations"`
	CreatedTimestamp              string         `json:"created_timestamp"`
	Balance                       AccountBalance `json:"balance"`
}

type AccountBalance struct {
	Balance   int64          `json:"balance"`
	Timestamp string         `json:"timestamp"`
	Tokens    []TokenBalance `json:"tokens"`
}

type TokenBalance struct {
	TokenID string `json:"token_id"`
	Balance int64  `json:"balance"`
}

// KeyType returns the mirror node's key type label, e.g. ED25519 or
// ECDSA_SECP256K1.
func (a AccountInfo) KeyType() string {
	typeValue, _ := a.Key["_type"].(string)
	return typeValue
}

type NetworkNode struct {
	NodeID        int64  `json:"node_id"`
	NodeAccountID string `json:"node_account_id"`
	Description   string `json:"description"`
	Memo          string `json:"memo"`
}

type networkNodesResponse struct {
	Nodes []NetworkNode `json:"nodes"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

type Transaction struct {
	ChargedTxFee       int64           `json:"charged_tx_fee"`
	ConsensusTimestamp string          `json:"consensus_timestamp"`
	EntityID           *string         `json:"entity_id"`
	MaxFee             string          `json:"max_fee"`
	MemoBase64         string          `json:"memo_base64"`
	Name               string          `json:"name"`
	Node               string          `json:"node"`
	Result             string          `json:"result"`
	TransactionID      string          `json:"transaction_id"`
	Transfers          []Transfer      `json:"transfers"`
	TokenTransfers     []TokenTransfer `json:"token_transfers"`
}

type Transfer struct {
	Account    string `json:"account"`
	Amount     int64  `json:"amount"`
	IsApproval bool   `json:"is_approval"`
}

type TokenTransfer struct {
	TokenID    string `json:"token_id"`
	Account    string `json:"account"`
	Amount     int64  `json:"amount"`
	IsApproval bool   `json:"is_approval"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Links        struct {
		Next string `json:"next"`
	} `json:"links"`
}

// StatusError is returned when the mirror node answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mirror node request failed with status %d: %s", e.StatusCode, e.Body)
}
