package repository

import (
	"errors"

	"github.com/deppfellow/contacts-service/internal/errs"
)

// Error codes follow the <DOMAIN>_<ACTION> shape so clients can switch on them.
var (
	codeContactNotFound  = "CONTACT_NOT_FOUND"
	codeContactExists    = "CONTACT_ALREADY_EXISTS"
	codeContactInvalidID = "CONTACT_INVALID_ID"
)

// HandleError converts repository errors into application HTTP errors.
//
// Errors it does not recognise come back as a generic 500 so store
// internals never leak to clients.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, ErrContactNotFound):
		return errs.NewNotFoundError("Contact not found", false, &codeContactNotFound)

	case errors.Is(err, ErrContactExists):
		return errs.NewConflictError("A contact with this identifier already exists", false, &codeContactExists)

	case errors.Is(err, ErrInvalidContactID):
		return errs.NewBadRequestError("Invalid contact identifier", false, &codeContactInvalidID, []errs.FieldError{
			{Field: "contactId", Message: "must be at least 0"},
		})
	}

	return errs.NewInternalServerError()
}
