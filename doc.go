// Token Dashboard for Go manages a Hedera account, creates fungible tokens,
// associates accounts with them and moves HBAR and tokens between accounts.
//
// # Packages
//
//   - pkg/ledger: the ledger client. Balance queries, account and token
//     creation, token association and transfers, each in its own session.
//   - pkg/credstore: persisted account, token and operator credentials
//     (memory, badger or redis).
//   - pkg/dashboard: the presentation controller and its JSON HTTP API.
//   - pkg/mirror: a small mirror node REST client.
//   - pkg/shared: network selection, key parsing, env loading and logging.
//
// # Commands
//
//   - cmd/tokendash: serves the dashboard API and exposes every operation as
//     a subcommand.
//   - cmd/create-account: creates a funded testnet account from OPERATOR_ID,
//     OPERATOR_KEY and INITIAL_BALANCE.
//
// # Installation
//
//	go install github.com/hashgraph-online/token-dashboard-go/cmd/tokendash@latest
package tokendashboard
