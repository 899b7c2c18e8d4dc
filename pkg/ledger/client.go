package ledger

import (
	"context"
	"fmt"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/rs/zerolog"

	"github.com/hashgraph-online/token-dashboard-go/pkg/mirror"
	"github.com/hashgraph-online/token-dashboard-go/pkg/shared"
)

// Client runs ledger operations against one network. It holds no signing
// identity; every call opens its own session for the account it signs as.
type Client struct {
	network         string
	mirrorClient    *mirror.Client
	nodes           nodeLister
	newHederaClient ClientFactory
	log             zerolog.Logger
	supplyKeyPolicy SupplyKeyPolicy
	keyType         KeyType
	nodeDiscovery   bool
}

func NewClient(config ClientConfig) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	mirrorClient, err := mirror.NewClient(mirror.Config{
		Network: network,
		BaseURL: config.MirrorBaseURL,
		APIKey:  config.MirrorAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror client: %w", err)
	}

	policy := config.SupplyKeyPolicy
	switch policy {
	case "":
		policy = SupplyKeyPolicyTreasury
	case SupplyKeyPolicyTreasury, SupplyKeyPolicyExplicit:
	default:
		return nil, fmt.Errorf("unsupported supply key policy %q", config.SupplyKeyPolicy)
	}

	keyType := config.KeyType
	if keyType == "" {
		keyType = KeyTypeED25519
	}
	if _, err := ParseKeyType(string(keyType)); err != nil {
		return nil, err
	}

	factory := config.ClientFactory
	if factory == nil {
		factory = shared.NewHederaClient
	}

	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	return &Client{
		network:         network,
		mirrorClient:    mirrorClient,
		nodes:           mirrorClient,
		newHederaClient: factory,
		log:             log.With().Str("component", "ledger").Str("network", network).Logger(),
		supplyKeyPolicy: policy,
		keyType:         keyType,
		nodeDiscovery:   !config.DisableNodeDiscovery,
	}, nil
}

func (c *Client) Network() string {
	return c.network
}

func (c *Client) MirrorClient() *mirror.Client {
	return c.mirrorClient
}

func (c *Client) SupplyKeyPolicy() SupplyKeyPolicy {
	return c.supplyKeyPolicy
}

// session is one hedera client bound to at most one signing identity for the
// duration of a single operation.
type session struct {
	client     *hedera.Client
	accountID  hedera.AccountID
	privateKey hedera.PrivateKey
	signer     bool
}

func (c *Client) openQuerySession() (*session, error) {
	hederaClient, err := c.newHederaClient(c.network)
	if err != nil {
		return nil, fmt.Errorf("failed to create hedera client: %w", err)
	}
	return &session{client: hederaClient}, nil
}

func (c *Client) openSession(rawAccountID string, rawPrivateKey string, role string) (*session, error) {
	accountID, err := parseAccountID(role+" account ID", rawAccountID)
	if err != nil {
		return nil, err
	}
	privateKey, err := shared.ParsePrivateKey(rawPrivateKey)
	if err != nil {
		return nil, invalidInput(role+" private key", "private_key", "invalid %s private key: %v", role, err)
	}

	hederaClient, err := c.newHederaClient(c.network)
	if err != nil {
		return nil, fmt.Errorf("failed to create hedera client: %w", err)
	}
	hederaClient.SetOperator(accountID, privateKey)

	return &session{
		client:     hederaClient,
		accountID:  accountID,
		privateKey: privateKey,
		signer:     true,
	}, nil
}

func (s *session) close() {
	if s == nil || s.client == nil {
		return
	}
	_ = s.client.Close()
}

// submit executes a built transaction, waits for its receipt and converts a
// non-success receipt into hedera.ErrHederaReceiptStatus.
func (s *session) submit(ctx context.Context, label string, transaction any) (hedera.TransactionReceipt, string, error) {
	if err := ctx.Err(); err != nil {
		return hedera.TransactionReceipt{}, "", err
	}

	response, err := hedera.TransactionExecute(transaction, s.client)
	if err != nil {
		return hedera.TransactionReceipt{}, "", fmt.Errorf("failed to execute %s transaction: %w", label, err)
	}
	transactionID := response.TransactionID.String()

	receipt, err := response.GetReceipt(s.client)
	if err != nil {
		return receipt, transactionID, fmt.Errorf("failed to get %s receipt: %w", label, err)
	}
	if receipt.Status != hedera.StatusSuccess {
		return receipt, transactionID, fmt.Errorf(
			"%s transaction failed: %w",
			label,
			hedera.ErrHederaReceiptStatus{
				TxID:    response.TransactionID,
				Status:  receipt.Status,
				Receipt: receipt,
			},
		)
	}

	return receipt, transactionID, nil
}
