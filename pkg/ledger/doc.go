// Package ledger performs the token dashboard's ledger operations: balance
// queries, account creation, fungible token creation, token association and
// HBAR or token transfers.
//
// A Client carries only network configuration. Each operation opens a
// short-lived hedera client bound to the single account that pays for and
// signs it, so operations on one Client may run concurrently.
package ledger
