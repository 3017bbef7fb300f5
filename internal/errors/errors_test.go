package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "deal"}
		assert.Equal(t, "deal not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "deal"}
		err2 := &NotFoundError{Entity: "deal"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "deal"}
		err2 := &NotFoundError{Entity: "company"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("failed to update deal: %w", ErrDealNotFound)
		assert.True(t, errors.Is(wrapped, ErrDealNotFound))
		assert.False(t, errors.Is(wrapped, ErrTaskNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrContactNotFound))
		assert.False(t, IsNotFound(ErrUserExists))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "user", Context: "with this email"}
		assert.Equal(t, "user already exists with this email", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "invitation"}
		assert.Equal(t, "invitation already exists", err.Error())
	})

	t.Run("errors.Is comparison", func(t *testing.T) {
		assert.True(t, errors.Is(NewAlreadyExistsError("user", ""), ErrUserExists))
		assert.False(t, errors.Is(ErrInvitationExists, ErrUserExists))
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrInvitationExists))
		assert.False(t, IsAlreadyExists(ErrDealNotFound))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "email", Message: "invalid format"}
		assert.Equal(t, "validation error: email - invalid format", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid format"}
		assert.Equal(t, "validation error: invalid format", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		assert.True(t, IsValidation(NewValidationError("email", "invalid")))
		assert.True(t, IsValidation(ErrInvalidStage))
		assert.False(t, IsValidation(ErrDealNotFound))
	})

	t.Run("ValidationField", func(t *testing.T) {
		assert.Equal(t, "stage", ValidationField(fmt.Errorf("wrap: %w", ErrInvalidStage)))
		assert.Equal(t, "", ValidationField(ErrDealNotFound))
	})
}

func TestAuthErrors(t *testing.T) {
	t.Run("ErrUnauthorized is an authentication error", func(t *testing.T) {
		assert.True(t, IsAuthentication(ErrUnauthorized))
		assert.Equal(t, "unauthorized", ErrUnauthorized.Error())
	})

	t.Run("Sentinels are distinct", func(t *testing.T) {
		assert.False(t, errors.Is(ErrUnauthorized, ErrInvalidCredentials))
	})

	t.Run("Authorization and configuration helpers", func(t *testing.T) {
		assert.True(t, IsAuthorization(NewAuthorizationError("forbidden")))
		assert.False(t, IsAuthorization(ErrUnauthorized))
		assert.True(t, IsConfiguration(ErrJWTSecretMissing))
		assert.True(t, IsAuthentication(NewAuthenticationError("token expired")))
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", fmt.Errorf("get deal: %w", ErrDealNotFound), http.StatusNotFound},
		{"validation", ErrInvalidStage, http.StatusBadRequest},
		{"already exists", ErrInvitationExists, http.StatusConflict},
		{"authentication", ErrInvalidCredentials, http.StatusUnauthorized},
		{"authorization", NewAuthorizationError("forbidden"), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
