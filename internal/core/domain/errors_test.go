package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorsAreDistinct(t *testing.T) {
	errs := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrConfiguration,
		ErrNoSession,
		ErrNoCredential,
		ErrTokenRefreshFailed,
		ErrConsentPending,
	}

	for i, a := range errs {
		for j, b := range errs {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}

func TestDomainErrorsWrap(t *testing.T) {
	err := fmt.Errorf("loading OAuth client: %w", ErrConfiguration)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
