// Package shared provides the plumbing used by every other package of the
// token dashboard: network normalisation, Hedera client construction, operator
// credentials from environment variables or .env files, key and identifier
// parsing, and the zerolog process logger.
//
// # Environment Variables
//
// Operator credentials resolve from HEDERA_ACCOUNT_ID / HEDERA_PRIVATE_KEY and
// their aliases (OPERATOR_ID, OPERATOR_KEY, ...). TESTNET_ and MAINNET_
// prefixed variants override the generic ones for their network. The
// create-account script additionally reads INITIAL_BALANCE in tinybars.
package shared
