package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/logging"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error          string `json:"error"`
	Message        string `json:"message"`
	Category       string `json:"category,omitempty"`
	ReloadRequired bool   `json:"reload_required,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidInput:
		return http.StatusBadRequest
	case errs.KindInvalidTransition, errs.KindConflict, errs.KindPartialOrdering:
		return http.StatusConflict
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	case errs.KindPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		err = errs.InvalidInput("%s", describeValidation(verrs))
	}

	kind := errs.KindOf(err)
	status := statusFor(kind)
	body := errorBody{
		Error:          kind.String(),
		Message:        err.Error(),
		Category:       string(kind.Category()),
		ReloadRequired: kind == errs.KindPartialOrdering,
		RequestID:      logging.RequestIDFromContext(r.Context()),
	}

	logger := logging.FromContext(r.Context(), "api")
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("kind", kind.String()).Msg("request failed")
		if kind == errs.KindUnknown {
			body.Message = "internal error"
		}
	} else {
		logger.Debug().Err(err).Str("kind", kind.String()).Msg("request rejected")
	}

	writeJSON(w, status, body)
}

func describeValidation(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fe.Field()+": "+fe.Tag()+"="+fe.Param())
		} else {
			parts = append(parts, fe.Field()+": "+fe.Tag())
		}
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
