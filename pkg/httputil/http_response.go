package httputil

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Code:    statusCode,
		Message: message,
	}

	if details != nil {
		resp.Details = details.Error()
	}

	sonic.ConfigFastest.NewEncoder(w).Encode(resp)
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		sonic.ConfigDefault.NewEncoder(w).Encode(body)
	}
}

// WriteNoContent answers 204 without a body
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

var ErrInvalidBody = errors.New("invalid request body")

// DecodeJSON reads at most limit bytes of r's body into dst
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, limit int64) error {
	defer r.Body.Close()
	body := http.MaxBytesReader(w, r.Body, limit)
	err := sonic.ConfigDefault.NewDecoder(body).Decode(dst)
	if err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}
