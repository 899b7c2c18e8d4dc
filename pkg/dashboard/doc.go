// Package dashboard is the presentation layer of the token dashboard. It
// keeps the active account, token and operator credentials, runs one user
// action at a time against the ledger, renders every outcome as a status
// message and serves the whole thing as a JSON API.
package dashboard
