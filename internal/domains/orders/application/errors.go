package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrForbidden signals the requester does not own the order. The message
	// is deliberately generic so mismatched lookups cannot probe existence.
	ErrForbidden = errors.New("not authorized for this order")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCustomerName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrNegativeAmount) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
