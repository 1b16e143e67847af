package cerrors

import (
	"errors"

	"github.com/palantir/stacktrace"
)

type userFriendly interface {
	UserFriendly() bool
	ErrorType() ErrorType
}

// IsUserFriendly returns true if err is marked as safe to present to failstep
func IsUserFriendly(err error) bool {
	var ufe userFriendly
	return errors.As(err, &ufe) && ufe.UserFriendly()
}

// GetErrorType returns the type of error if the error is user-friendly
func GetErrorType(err error) ErrorType {
	var ufe userFriendly
	if errors.As(err, &ufe) {
		return ufe.ErrorType()
	}
	return ErrorTypeNonUserFriendly
}

// GetRootCauseAndErrorCode unwraps the stacktrace and returns the root cause along with its type
// the full message is returned when the root cause is not user-friendly
func GetRootCauseAndErrorCode(err error, phase string) (string, ErrorType) {
	rootCause := stacktrace.RootCause(err)
	errorType := GetErrorType(rootCause)
	if !IsUserFriendly(rootCause) {
		return err.Error(), errorType
	}
	if phase != "" {
		if e, ok := rootCause.(Error); ok && e.Phase == "" {
			e.Phase = phase
			return e.Error(), errorType
		}
	}
	return rootCause.Error(), errorType
}
