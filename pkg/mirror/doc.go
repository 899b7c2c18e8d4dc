// Package mirror is a small REST client for the Hedera mirror node. The
// dashboard uses it for consensus node discovery, account metadata and
// transaction status lookups; balances and submissions go through the
// consensus network directly.
package mirror
