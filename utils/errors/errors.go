package errors

import "github.com/xam1dullo/identity-api/constant"

type CustomError struct {
	errType constant.ErrorType
	details []string
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

// Details returns per-field messages, set for validation errors only.
func (c CustomError) Details() []string {
	return c.details
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetValidationError builds a validation error carrying every
// collected field violation.
func SetValidationError(details []string) CustomError {
	return CustomError{
		errType: constant.ErrValidation,
		details: details,
	}
}
