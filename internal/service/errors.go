package service

import (
	"errors"
	"fmt"

	"go-stockledger/pkg/validator"
)

// Sentinel errors. Handlers translate these to HTTP statuses with
// errors.Is; anything unrecognized is reported as an internal error
// without leaking the cause.
var (
	// InvalidArgument
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidRole            = errors.New("invalid role")

	// NotFound
	ErrProductNotFound  = errors.New("product not found")
	ErrSupplierNotFound = errors.New("supplier not found")

	// Conflict
	ErrDuplicateSKU      = errors.New("SKU already exists")
	ErrDuplicateSupplier = errors.New("supplier name already in use")
	ErrEmailTaken        = errors.New("email already used")

	// Unauthorized
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// validationFailed wraps the first validation failure so handlers can map
// it to a 400 while keeping a useful message.
func validationFailed(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on rule '%s'", ErrInvalidArgument, first.FailedField, first.Tag)
}
