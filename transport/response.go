package transport

import (
	"encoding/json"
	"net/http"

	"github.com/xam1dullo/identity-api/constant"
	"github.com/xam1dullo/identity-api/utils/errors"
)

type SuccessResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeSuccess(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(SuccessResponse{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: message,
		Data:    data,
	})
}

// writeError maps a CustomError to its status/code/message; anything
// else is surfaced as a generic internal error with no detail.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	customErr, ok := err.(errors.CustomError)
	if !ok {
		customErr = errors.SetCustomError(constant.ErrInternal)
	}

	w.WriteHeader(customErr.ErrorHTTPCode())
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Code:    customErr.ErrorCode(),
		Message: customErr.Error(),
		Errors:  customErr.Details(),
	})
}
