package dto

import (
	"errors"
	"net/http"

	"github.com/petroerp/backend/internal/domain/sequence"
	"github.com/petroerp/backend/internal/domain/shared"
)

// Error code constants
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"

	// ErrCodeNumberingUnavailable maps sequence.ErrStoreUnreachable: the
	// operation was aborted because no reference number could be committed.
	ErrCodeNumberingUnavailable = "ERR_NUMBERING_UNAVAILABLE"
)

// GetHTTPStatus maps an error code to an HTTP status code
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyExists, ErrCodeConflict, ErrCodeConcurrencyConflict:
		return http.StatusConflict
	case ErrCodeInvalidState, ErrCodeBusinessRule, ErrCodeInsufficientStock:
		return http.StatusUnprocessableEntity
	case ErrCodeNumberingUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MapError translates a service-layer error into an error code and message
// suitable for the API response.
func MapError(err error) (code, message string) {
	if errors.Is(err, sequence.ErrStoreUnreachable) {
		return ErrCodeNumberingUnavailable, "Reference numbering store is unreachable; the operation was not performed"
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr {
		case shared.ErrNotFound:
			return ErrCodeNotFound, domainErr.Message
		case shared.ErrUnauthorized:
			return ErrCodeUnauthorized, domainErr.Message
		case shared.ErrConcurrencyConflict:
			return ErrCodeConcurrencyConflict, domainErr.Message
		case shared.ErrInvalidState:
			return ErrCodeInvalidState, domainErr.Message
		case shared.ErrInsufficientStock:
			return ErrCodeInsufficientStock, domainErr.Message
		}
		switch domainErr.Code {
		case "ALREADY_EXISTS":
			return ErrCodeAlreadyExists, domainErr.Message
		case "NOT_FOUND":
			return ErrCodeNotFound, domainErr.Message
		case "INVALID_CREDENTIALS", "INVALID_TOKEN":
			return ErrCodeUnauthorized, domainErr.Message
		case "ACCOUNT_DISABLED":
			return ErrCodeForbidden, domainErr.Message
		case "INVALID_STATE", "BUYER_NOT_ACTIVE", "SUPPLIER_NOT_ACTIVE":
			return ErrCodeInvalidState, domainErr.Message
		default:
			return ErrCodeBusinessRule, domainErr.Message
		}
	}

	return ErrCodeInternal, "An internal error occurred"
}
