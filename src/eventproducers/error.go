package eventproducers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

const (
	ParserErrorType     = "parser"
	ValidationErrorType = "validation"
	InternalErrorType   = "internal"
)

type ErrorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *ErrorResponse {
	return &ErrorResponse{
		Type: errType,
		Msg:  message,
	}
}

// SetResponse writes nothing when obj cannot be encoded, leaving the caller free to
// answer with an error instead.
func SetResponse[T any](obj *T, w http.ResponseWriter) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(obj); err != nil {
		return fmt.Errorf("SetResponse: encode: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("SetResponse: write: %w", err)
	}

	return nil
}

// ServeErrorStatus maps an error raised while serving a valid request to the error
// type and status code of its response. Inputs the model cannot price are the
// caller's fault.
func ServeErrorStatus(err error) (string, int) {
	if errors.Is(err, pricing.NonFiniteResultErr) {
		return ValidationErrorType, 400
	}

	return InternalErrorType, 500
}

func SetErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}
