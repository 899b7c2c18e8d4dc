package ledger

import (
	"context"
	"errors"
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashgraph-online/token-dashboard-go/pkg/mirror"
)

type fakeNodeLister struct {
	nodes []mirror.NetworkNode
	err   error
}

func (f fakeNodeLister) GetNetworkNodes(context.Context) ([]mirror.NetworkNode, error) {
	return f.nodes, f.err
}

func TestDiscoverNodeAccountIDsIntersectsKnownNetwork(t *testing.T) {
	lister := fakeNodeLister{nodes: []mirror.NetworkNode{
		{NodeAccountID: "0.0.3"},
		{NodeAccountID: "0.0.99"},
		{NodeAccountID: "garbage"},
		{NodeAccountID: ""},
		{NodeAccountID: "0.0.4"},
		{NodeAccountID: "0.0.3"},
	}}
	network := map[string]hedera.AccountID{
		"node-a:50211": {Account: 3},
		"node-b:50211": {Account: 4},
		"node-c:50211": {Account: 5},
	}

	accountIDs, err := discoverNodeAccountIDs(context.Background(), lister, network)
	require.NoError(t, err)
	require.Len(t, accountIDs, 2)
	assert.Equal(t, "0.0.3", accountIDs[0].String())
	assert.Equal(t, "0.0.4", accountIDs[1].String())
}

func TestDiscoverNodeAccountIDsFailures(t *testing.T) {
	network := map[string]hedera.AccountID{"node-a:50211": {Account: 3}}

	_, err := discoverNodeAccountIDs(context.Background(), nil, network)
	assert.Error(t, err)

	_, err = discoverNodeAccountIDs(context.Background(), fakeNodeLister{err: errors.New("mirror down")}, network)
	assert.ErrorContains(t, err, "mirror down")

	_, err = discoverNodeAccountIDs(context.Background(), fakeNodeLister{nodes: []mirror.NetworkNode{{NodeAccountID: "0.0.77"}}}, network)
	assert.Error(t, err)
}

func TestClientDiscoverNodesSwallowsErrors(t *testing.T) {
	client := newTestClient(t, ClientConfig{})
	client.nodes = fakeNodeLister{err: errors.New("mirror down")}

	session, err := client.openQuerySession()
	require.NoError(t, err)
	defer session.close()

	assert.Nil(t, client.discoverNodes(context.Background(), session))

	client.nodeDiscovery = false
	client.nodes = fakeNodeLister{nodes: []mirror.NetworkNode{{NodeAccountID: "0.0.3"}}}
	assert.Nil(t, client.discoverNodes(context.Background(), session))
}
