package domain

// ErrorKind classifies an Error for transport mapping. The set is closed;
// handlers never invent new kinds.
type ErrorKind int

const (
	KindUnauthorized ErrorKind = iota
	KindInvalidToken
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
	KindInvalidTransition
	KindRateLimited
	KindUnavailable
	KindInternal
)

// Error is the structured error value propagated through every service.
// Code is the wire-level error code, Details carries optional field-level
// context for validation failures.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string]string
}

func (e *Error) Error() string { return e.Message }

// Is matches by code so sentinel errors survive WithMessage/WithDetails copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of the error carrying a more specific message.
func (e *Error) WithMessage(msg string) *Error {
	clone := *e
	clone.Message = msg
	return &clone
}

// WithDetails returns a copy of the error carrying field-level details.
func (e *Error) WithDetails(details map[string]string) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// Validation builds a VALIDATION_ERROR carrying per-field messages.
func Validation(msg string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: msg, Details: details}
}

var (
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: "authorization required"}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken, Code: "INVALID_TOKEN", Message: "invalid token"}
	ErrForbidden          = &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "insufficient permissions"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}

	ErrUserNotFound         = &Error{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "user not found"}
	ErrUserExists           = &Error{Kind: KindConflict, Code: "USER_EXISTS", Message: "a user with this email already exists"}
	ErrEmailExists          = &Error{Kind: KindConflict, Code: "EMAIL_EXISTS", Message: "email is already in use by another user"}
	ErrInvalidRole          = &Error{Kind: KindValidation, Code: "INVALID_ROLE", Message: "registration allows roles: user, engineer"}
	ErrSelfDeleteNotAllowed = &Error{Kind: KindValidation, Code: "SELF_DELETE_NOT_ALLOWED", Message: "cannot delete own account"}

	ErrOrderNotFound           = &Error{Kind: KindNotFound, Code: "ORDER_NOT_FOUND", Message: "order not found"}
	ErrInvalidTotal            = &Error{Kind: KindValidation, Code: "INVALID_TOTAL", Message: "total amount does not match the sum of items"}
	ErrInvalidStatusTransition = &Error{Kind: KindInvalidTransition, Code: "INVALID_STATUS_TRANSITION", Message: "status transition not permitted"}
	ErrCannotDeleteOrder       = &Error{Kind: KindInvalidTransition, Code: "CANNOT_DELETE_ORDER", Message: "order cannot be deleted in its current status"}

	ErrRateLimited = &Error{Kind: KindRateLimited, Code: "RATE_LIMITED", Message: "too many requests"}
	ErrUnavailable = &Error{Kind: KindUnavailable, Code: "SERVICE_UNAVAILABLE", Message: "upstream service unavailable"}
	ErrInternal    = &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "internal server error"}
)
