package errors

import (
	"fmt"

	apperrors "github.com/kawsar-hussain/server-A11/pkg/errors"
)

// Error types of the donation domain
const (
	ErrTypeInvalidIdentifier  = "INVALID_IDENTIFIER"
	ErrTypeInvalidInput       = "INVALID_INPUT"
	ErrTypeInvalidAmount      = "INVALID_AMOUNT"
	ErrTypeNotFound           = "NOT_FOUND"
	ErrTypeSessionNotFound    = "SESSION_NOT_FOUND"
	ErrTypeDuplicateKey       = "DUPLICATE_KEY"
	ErrTypeGatewayTimeout     = "GATEWAY_TIMEOUT"
	ErrTypeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ErrTypeStoreUnavailable   = "STORE_UNAVAILABLE"
)

var typeCodes = map[string]string{
	ErrTypeInvalidIdentifier:  apperrors.ErrInvalidArgument,
	ErrTypeInvalidInput:       apperrors.ErrInvalidArgument,
	ErrTypeInvalidAmount:      apperrors.ErrInvalidArgument,
	ErrTypeNotFound:           apperrors.ErrNotFound,
	ErrTypeSessionNotFound:    apperrors.ErrNotFound,
	ErrTypeDuplicateKey:       apperrors.ErrConflict,
	ErrTypeGatewayTimeout:     apperrors.ErrTimeout,
	ErrTypeGatewayUnavailable: apperrors.ErrUnavailable,
	ErrTypeStoreUnavailable:   apperrors.ErrUnavailable,
}

// DomainError is a typed failure of a donation or payment operation.
// Two DomainErrors match under errors.Is when their types are equal.
type DomainError struct {
	Type    string
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Type == e.Type
}

// Code maps the domain type onto the shared error codes in pkg/errors.
func (e *DomainError) Code() string {
	if code, ok := typeCodes[e.Type]; ok {
		return code
	}
	return apperrors.ErrInternal
}

// PublicMessage is the client-facing message; the cause is left out.
func (e *DomainError) PublicMessage() string {
	return e.Message
}

// ErrorType exposes the fine-grained type next to the shared code.
func (e *DomainError) ErrorType() string {
	return e.Type
}

var _ apperrors.PublicError = (*DomainError)(nil)

// Sentinels for errors.Is checks.
var (
	ErrInvalidIdentifier  = &DomainError{Type: ErrTypeInvalidIdentifier, Message: "invalid identifier"}
	ErrInvalidInput       = &DomainError{Type: ErrTypeInvalidInput, Message: "invalid input"}
	ErrInvalidAmount      = &DomainError{Type: ErrTypeInvalidAmount, Message: "invalid donation amount"}
	ErrNotFound           = &DomainError{Type: ErrTypeNotFound, Message: "record not found"}
	ErrSessionNotFound    = &DomainError{Type: ErrTypeSessionNotFound, Message: "checkout session not found"}
	ErrDuplicateKey       = &DomainError{Type: ErrTypeDuplicateKey, Message: "duplicate key"}
	ErrGatewayTimeout     = &DomainError{Type: ErrTypeGatewayTimeout, Message: "checkout gateway timed out"}
	ErrGatewayUnavailable = &DomainError{Type: ErrTypeGatewayUnavailable, Message: "checkout gateway unavailable"}
	ErrStoreUnavailable   = &DomainError{Type: ErrTypeStoreUnavailable, Message: "document store unavailable"}
)

func newError(errType, message string, cause error) *DomainError {
	return &DomainError{Type: errType, Message: message, Cause: cause}
}

// NewInvalidIdentifierError creates an error for an id that cannot be parsed
func NewInvalidIdentifierError(id string, cause error) *DomainError {
	return newError(ErrTypeInvalidIdentifier, fmt.Sprintf("malformed identifier %q", id), cause)
}

// NewInvalidInputError creates an error for a rejected request field
func NewInvalidInputError(message string) *DomainError {
	return newError(ErrTypeInvalidInput, message, nil)
}

// NewInvalidAmountError creates an error for a non-positive or non-numeric amount
func NewInvalidAmountError(message string, cause error) *DomainError {
	return newError(ErrTypeInvalidAmount, message, cause)
}

// NewNotFoundError creates an error for a missing record of the given kind
func NewNotFoundError(kind, id string) *DomainError {
	return newError(ErrTypeNotFound, fmt.Sprintf("%s %s not found", kind, id), nil)
}

func NewSessionNotFoundError(sessionID string, cause error) *DomainError {
	return newError(ErrTypeSessionNotFound, fmt.Sprintf("checkout session %s not found", sessionID), cause)
}

func NewDuplicateKeyError(message string, cause error) *DomainError {
	return newError(ErrTypeDuplicateKey, message, cause)
}

func NewGatewayTimeoutError(cause error) *DomainError {
	return newError(ErrTypeGatewayTimeout, "checkout gateway timed out", cause)
}

func NewGatewayUnavailableError(cause error) *DomainError {
	return newError(ErrTypeGatewayUnavailable, "checkout gateway unavailable", cause)
}

func NewStoreUnavailableError(cause error) *DomainError {
	return newError(ErrTypeStoreUnavailable, "document store unavailable", cause)
}
