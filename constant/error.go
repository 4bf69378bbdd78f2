package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrValidation
	ErrEmailExists
	ErrInvalidPassword
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:         "success",
	ErrInternal:        "error internal",
	ErrNotFound:        "user not found",
	ErrInvalidRequest:  "invalid request",
	ErrValidation:      "validation failed",
	ErrEmailExists:     "email already exists",
	ErrInvalidPassword: "password invalid",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:         http.StatusOK,
	ErrInternal:        http.StatusInternalServerError,
	ErrNotFound:        http.StatusNotFound,
	ErrInvalidRequest:  http.StatusBadRequest,
	ErrValidation:      http.StatusBadRequest,
	ErrEmailExists:     http.StatusBadRequest,
	ErrInvalidPassword: http.StatusUnauthorized,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:         "0000",
	ErrInternal:        "0001",
	ErrNotFound:        "0002",
	ErrInvalidRequest:  "0003",
	ErrValidation:      "0004",
	ErrEmailExists:     "0005",
	ErrInvalidPassword: "0006",
}
