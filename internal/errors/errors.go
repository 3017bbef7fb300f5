package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this email"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrCompanyNotFound      = &NotFoundError{Entity: "company"}
	ErrContactNotFound      = &NotFoundError{Entity: "contact"}
	ErrDealNotFound         = &NotFoundError{Entity: "deal"}
	ErrTaskNotFound         = &NotFoundError{Entity: "task"}
	ErrInvitationNotFound   = &NotFoundError{Entity: "invitation"}
)

// Already Exists Errors
var (
	ErrUserExists       = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrInvitationExists = &AlreadyExistsError{Entity: "invitation", Context: "for this email"}
)

// Business Logic Errors
var (
	ErrInvalidStage       = &ValidationError{Field: "stage", Message: "must be one of the pipeline stages"}
	ErrAmountOutOfRange   = &ValidationError{Field: "amount", Message: "must be below 100,000,000 in magnitude"}
	ErrInvalidTaskStatus  = &ValidationError{Field: "status", Message: "must be Pending or Completed"}
	ErrInvitationExpired  = &ValidationError{Field: "token", Message: "invitation has expired"}
	ErrUnsupportedImport  = &ValidationError{Field: "file", Message: "unsupported import format, use .csv or .xlsx"}
	ErrImportHeaderNeeded = &ValidationError{Field: "file", Message: "header row with name and stage columns is required"}
)

// Authentication Errors
var (
	// ErrUnauthorized is returned by the tenant guard when a request carries no usable organization binding.
	ErrUnauthorized           = &AuthenticationError{Message: "unauthorized"}
	ErrInvalidCredentials     = &AuthenticationError{Message: "invalid credentials"}
	ErrCurrentPasswordNeeded  = &ValidationError{Field: "current_password", Message: "current password is required to set a new password"}
	ErrCurrentPasswordInvalid = &AuthenticationError{Message: "current password is incorrect"}
)

// Configuration Errors
var (
	ErrJWTSecretMissing = &ConfigurationError{Message: "JWT_SECRET must be set in production"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// ValidationField returns the offending field of a ValidationError, if any
func ValidationField(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Field
	}
	return ""
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
