package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/hashicorp/go-multierror"

	"github.com/hashgraph-online/token-dashboard-go/pkg/shared"
)

var optionsValidator = newOptionsValidator()

func newOptionsValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their human label so messages can be shown as-is.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})

	// present is "required" for text fields, treating whitespace as empty.
	_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

func validateOptions(options any) error {
	err := optionsValidator.Struct(options)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("could not validate options: %w", err)
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	if len(fieldErrors) == 1 {
		return newFieldValidationError(fieldErrors[0])
	}

	merr := &multierror.Error{ErrorFormat: joinValidationErrors}
	for _, fieldError := range fieldErrors {
		merr = multierror.Append(merr, newFieldValidationError(fieldError))
	}
	return merr.ErrorOrNil()
}

func newFieldValidationError(fieldError validator.FieldError) *ValidationError {
	return &ValidationError{
		Field:   fieldError.Field(),
		Tag:     fieldError.Tag(),
		Message: describeFieldError(fieldError),
	}
}

func describeFieldError(fieldError validator.FieldError) string {
	field := fieldError.Field()
	switch fieldError.Tag() {
	case "present", "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldError.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fieldError.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldError.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fieldError.Tag())
	}
}

func joinValidationErrors(errs []error) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func parseAccountID(field string, raw string) (hedera.AccountID, error) {
	accountID, err := shared.ParseAccountID(raw)
	if err != nil {
		return hedera.AccountID{}, invalidInput(field, "account_id", "%s: %v", field, err)
	}
	return accountID, nil
}

func parseTokenID(field string, raw string) (hedera.TokenID, error) {
	tokenID, err := shared.ParseTokenID(raw)
	if err != nil {
		return hedera.TokenID{}, invalidInput(field, "token_id", "%s: %v", field, err)
	}
	return tokenID, nil
}

func invalidInput(field string, tag string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Tag:     tag,
		Message: fmt.Sprintf(format, args...),
	}
}
