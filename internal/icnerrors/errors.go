// Package icnerrors is the stable error taxonomy every component reports
// through: a small numeric Code plus a human message, the way the original
// canisters' ICNSError enum carries a discriminant and a message.
package icnerrors

import "fmt"

// Code is a stable, client-visible numeric error discriminant.
type Code uint32

const (
	CodeUnknown Code = iota + 1
	CodeRemoteError
	CodeInvalidCanisterName
	CodeInvalidOwner
	CodeOwnerOnly
	CodeInvalidName
	CodeNameUnavailable
	CodePermissionDenied
	CodeRegistrationHasBeenTaken
	CodeRegistrationNotFound
	CodeTopNameAlreadyExists
	CodeRegistryNotFoundError
	CodeResolverNotFoundError
	CodeOperatorShouldNotBeTheSameToOwner
	CodeYearsRangeError
	CodeInvalidResolverKey
	CodeValueMaxLengthError
	CodeValueShouldBeInRangeError
	CodeTooManyFavorites
	CodeUnauthorized
	// Codes 21+ extend the original twenty with the remaining §7 taxonomy.
	CodeOperatorCountExceeded
	CodeInvalidResolverValueFormat
	CodeKeyMaxLengthError
	CodeTooManyResolverKeys
	CodePendingOrder
	CodeOrderNotFound
	CodeInvalidQuotaOrderDetails
	CodeRefundFailed
	CodeInsufficientQuota
	CodeConflict
	CodeSystemMaintaining
	CodeCanisterCallError
	CodeInvalidRequest
	CodeAlreadyAssigned
	CodeAlreadyExists
)

// Error is the concrete error type returned by every component operation.
type Error struct {
	Code    Code
	Message string
	// Remote holds the wrapped collaborator error when Code == CodeRemoteError.
	Remote *Error
}

func (e *Error) Error() string {
	if e.Remote != nil {
		return fmt.Sprintf("error from remote: %s", e.Remote.Error())
	}
	return e.Message
}

func new(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Unknown() *Error { return new(CodeUnknown, "there is a unknown error raised") }

// Remote wraps a collaborator's error, mirroring ICNSError::RemoteError.
func Remote(remote *Error) *Error {
	return &Error{Code: CodeRemoteError, Message: fmt.Sprintf("error from remote: %s", remote.Error()), Remote: remote}
}

func InvalidCanisterName() *Error {
	return new(CodeInvalidCanisterName, "the canister name is not allowed")
}

func InvalidOwner() *Error { return new(CodeInvalidOwner, "owner is invalid") }

func OwnerOnly() *Error {
	return new(CodeOwnerOnly, "caller not changed since you are not the owner")
}

func InvalidName(reason string) *Error {
	return new(CodeInvalidName, "name is invalid, reason: %s", reason)
}

func NameUnavailable(reason string) *Error {
	return new(CodeNameUnavailable, "name is unavailable, reason: %s", reason)
}

func PermissionDenied() *Error { return new(CodePermissionDenied, "permission denied") }

func RegistrationHasBeenTaken() *Error {
	return new(CodeRegistrationHasBeenTaken, "registration has been taken")
}

func RegistrationNotFound() *Error {
	return new(CodeRegistrationNotFound, "registration is not found")
}

func TopNameAlreadyExists() *Error {
	return new(CodeTopNameAlreadyExists, "top level name had been set")
}

func RegistryNotFoundError(name string) *Error {
	return new(CodeRegistryNotFoundError, "registry for %q is not found", name)
}

func ResolverNotFoundError(name string) *Error {
	return new(CodeResolverNotFoundError, "resolver for %q is not found", name)
}

func OperatorShouldNotBeTheSameToOwner() *Error {
	return new(CodeOperatorShouldNotBeTheSameToOwner, "operator should not be the same as the owner")
}

func YearsRangeError(min, max uint32) *Error {
	return new(CodeYearsRangeError, "year must be in range [%d,%d)", min, max)
}

func InvalidResolverKey(key string) *Error {
	return new(CodeInvalidResolverKey, "invalid resolver key: %q", key)
}

func ValueMaxLengthError(max int) *Error {
	return new(CodeValueMaxLengthError, "length of value must be less than %d", max)
}

func ValueShouldBeInRangeError(field string, min, max int) *Error {
	return new(CodeValueShouldBeInRangeError, "length of %q must be in range [%d, %d]", field, min, max)
}

func TooManyFavorites(max int) *Error {
	return new(CodeTooManyFavorites, "you have reached the maximum number of favorites: %d", max)
}

func Unauthorized() *Error { return new(CodeUnauthorized, "unauthorized, please login first") }

func OperatorCountExceeded(max int) *Error {
	return new(CodeOperatorCountExceeded, "operator count exceeded maximum of %d", max)
}

func InvalidResolverValueFormat(value, format string) *Error {
	return new(CodeInvalidResolverValueFormat, "value %q does not match format %q", value, format)
}

func KeyMaxLengthError(max int) *Error {
	return new(CodeKeyMaxLengthError, "length of key must be less than %d", max)
}

func TooManyResolverKeys(max int) *Error {
	return new(CodeTooManyResolverKeys, "too many resolver keys, max %d", max)
}

func PendingOrder() *Error {
	return new(CodePendingOrder, "a pending order already exists for this user")
}

func OrderNotFound() *Error { return new(CodeOrderNotFound, "order is not found") }

func InvalidQuotaOrderDetails() *Error {
	return new(CodeInvalidQuotaOrderDetails, "quota class does not match the requested name")
}

func RefundFailed() *Error { return new(CodeRefundFailed, "refund attempt failed, will retry") }

func InsufficientQuota() *Error { return new(CodeInsufficientQuota, "insufficient quota") }

func Conflict() *Error { return new(CodeConflict, "conflict, try again") }

func SystemMaintaining() *Error {
	return new(CodeSystemMaintaining, "system is under maintenance")
}

func CanisterCallError(rejectionCode int32, message string) *Error {
	return new(CodeCanisterCallError, "canister call error (code %d): %s", rejectionCode, message)
}

func InvalidRequest(reason string) *Error {
	return new(CodeInvalidRequest, "invalid request: %s", reason)
}

func AlreadyAssigned() *Error {
	return new(CodeAlreadyAssigned, "name has already been assigned")
}

func AlreadyExists() *Error {
	return new(CodeAlreadyExists, "already exists")
}

// As returns err as an *Error, reporting whether err is one.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

// Is reports whether err is an *Error carrying code.
func Is(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
