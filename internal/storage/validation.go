package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rkotecha/fireplan/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidAsset = errors.New("invalid asset")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateAsset checks the invariants an asset must satisfy before it is
// persisted.
func validateAsset(a *model.Asset) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAsset)
	}
	if a.CurrentValue < 0 {
		return fmt.Errorf("%w: value cannot be negative", ErrInvalidAsset)
	}
	return nil
}

// validateReviewAssets validates a slice of review assets.
func validateReviewAssets(assets []model.ReviewAsset) error {
	if len(assets) == 0 {
		return fmt.Errorf("%w: assets", ErrEmptySlice)
	}
	for i := range assets {
		if err := validateAsset(&assets[i].Asset); err != nil {
			return fmt.Errorf("asset at index %d: %w", i, err)
		}
	}
	return nil
}
