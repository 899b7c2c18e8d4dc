// Package credstore persists the dashboard's credential strings under fixed
// keys in a pluggable key-value store. Values are stored in plain text and
// never expire.
package credstore
