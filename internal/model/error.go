package model

import "errors"

// ErrorKind classifies a domain error so callers can map it to transport
// concerns (HTTP status) without inspecting message text.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindUnavailable
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeMissingTranslation = "MISSING_TRANSLATION"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeDuplicateSlug      = "DUPLICATE_SLUG"
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a kind for structural classification, a stable code,
// and a human-readable message surfaced to API clients.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrCategoryNotFound   = NewDomainError(KindNotFound, ErrCodeCategoryNotFound, "Category not found")
	ErrUserNotFound       = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User not found")
	ErrDuplicateSlug      = NewDomainError(KindConflict, ErrCodeDuplicateSlug, "Slug is already in use")
	ErrDuplicateEmail     = NewDomainError(KindConflict, ErrCodeDuplicateEmail, "Email is already registered")
	ErrInvalidCredentials = NewDomainError(KindUnauthorized, ErrCodeInvalidCredentials, "Invalid email or password")
	ErrInvalidToken       = NewDomainError(KindUnauthorized, ErrCodeInvalidToken, "Invalid refresh token")
	ErrDatabaseDown       = NewDomainError(KindUnavailable, ErrCodeDatabaseError, "Database unavailable")
)

// KindOf extracts the kind from an error chain, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
