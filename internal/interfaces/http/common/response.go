package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sand-hq/campaign-api/internal/fault"
)

// SuccessEnvelope wraps every successful response.
type SuccessEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorEnvelope wraps every failed response. Error is the fault kind name.
type ErrorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Success    bool   `json:"success"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Warn("JSON エンコードに失敗", zap.Error(err))
	}
}

// WriteSuccess writes data inside the success envelope.
func WriteSuccess(logger *zap.Logger, w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(logger, w, status, SuccessEnvelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteError writes the error envelope.
func WriteError(logger *zap.Logger, w http.ResponseWriter, status int, kind, message string) {
	WriteJSON(logger, w, status, ErrorEnvelope{
		StatusCode: status,
		Message:    message,
		Error:      kind,
		Success:    false,
	})
}

// WriteFault maps err to 400/404/500. Internal errors are logged and their
// details replaced by fallback.
func WriteFault(logger *zap.Logger, w http.ResponseWriter, err error, fallback string) {
	kind := fault.KindOf(err)
	status := StatusForKind(kind)
	if kind == fault.KindInternal && logger != nil {
		logger.Error(fallback, zap.Error(err))
	}
	WriteError(logger, w, status, kind.String(), fault.MessageOf(err, fallback))
}

// StatusForKind returns the HTTP status used for kind.
func StatusForKind(kind fault.Kind) int {
	switch kind {
	case fault.KindValidation:
		return http.StatusBadRequest
	case fault.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes a size-limited JSON body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, MaxJSONRequestBody))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fault.Validation("request body is required")
		}
		return fault.Validationf("invalid request body: %s", strings.TrimPrefix(err.Error(), "json: "))
	}
	return nil
}
