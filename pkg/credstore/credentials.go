package credstore

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

// Credentials is the persisted dashboard record. Every field is free text and
// may be empty.
type Credentials struct {
	AccountID   string
	PrivateKey  string
	TokenID     string
	OperatorID  string
	OperatorKey string
}

func (c Credentials) HasAccount() bool {
	return c.AccountID != "" && c.PrivateKey != ""
}

func (c Credentials) HasOperator() bool {
	return c.OperatorID != "" && c.OperatorKey != ""
}

// Load reads all five keys. Missing keys load as empty strings.
func Load(ctx context.Context, store Store) (Credentials, error) {
	var credentials Credentials
	var result *multierror.Error

	fields := []struct {
		key    string
		target *string
	}{
		{KeyAccountID, &credentials.AccountID},
		{KeyPrivateKey, &credentials.PrivateKey},
		{KeyTokenID, &credentials.TokenID},
		{KeyOperatorID, &credentials.OperatorID},
		{KeyOperatorKey, &credentials.OperatorKey},
	}
	for _, field := range fields {
		value, _, err := store.Get(ctx, field.key)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		*field.target = value
	}

	return credentials, result.ErrorOrNil()
}

func SaveOperator(ctx context.Context, store Store, operatorID string, operatorKey string) error {
	return setNonEmpty(ctx, store, map[string]string{
		KeyOperatorID:  operatorID,
		KeyOperatorKey: operatorKey,
	})
}

func SaveAccount(ctx context.Context, store Store, accountID string, privateKey string) error {
	return setNonEmpty(ctx, store, map[string]string{
		KeyAccountID:  accountID,
		KeyPrivateKey: privateKey,
	})
}

func SaveToken(ctx context.Context, store Store, tokenID string) error {
	return setNonEmpty(ctx, store, map[string]string{KeyTokenID: tokenID})
}

// ClearOperator removes both operator keys, attempting each even if the
// other fails.
func ClearOperator(ctx context.Context, store Store) error {
	var result *multierror.Error
	for _, key := range []string{KeyOperatorID, KeyOperatorKey} {
		if err := store.Remove(ctx, key); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func setNonEmpty(ctx context.Context, store Store, values map[string]string) error {
	var result *multierror.Error
	for key, value := range values {
		if value == "" {
			continue
		}
		if err := store.Set(ctx, key, value); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
