package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/storefront-api/internal/domains/promos/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid promo input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCode) ||
		errors.Is(err, domain.ErrInvalidType) ||
		errors.Is(err, domain.ErrInvalidValue) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
