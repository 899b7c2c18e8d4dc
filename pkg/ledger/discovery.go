package ledger

import (
	"context"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/token-dashboard-go/pkg/mirror"
)

type nodeLister interface {
	GetNetworkNodes(ctx context.Context) ([]mirror.NetworkNode, error)
}

// discoverNodeAccountIDs returns the mirror-listed consensus nodes that the
// hedera client can also reach, in mirror order.
func discoverNodeAccountIDs(
	ctx context.Context,
	lister nodeLister,
	network map[string]hedera.AccountID,
) ([]hedera.AccountID, error) {
	if lister == nil {
		return nil, fmt.Errorf("node discovery is not configured")
	}

	nodes, err := lister.GetNetworkNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list network nodes: %w", err)
	}

	known := make(map[string]struct{}, len(network))
	for _, accountID := range network {
		known[accountID.String()] = struct{}{}
	}

	seen := make(map[string]struct{}, len(nodes))
	accountIDs := make([]hedera.AccountID, 0, len(nodes))
	for _, node := range nodes {
		raw := strings.TrimSpace(node.NodeAccountID)
		if raw == "" {
			continue
		}
		accountID, err := hedera.AccountIDFromString(raw)
		if err != nil {
			continue
		}
		key := accountID.String()
		if _, ok := known[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		accountIDs = append(accountIDs, accountID)
	}

	if len(accountIDs) == 0 {
		return nil, fmt.Errorf("none of the %d mirror-listed nodes are known to the client", len(nodes))
	}
	return accountIDs, nil
}
