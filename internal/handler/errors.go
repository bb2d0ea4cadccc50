package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/httputil"
)

// statusForKind maps an error kind to its HTTP status
func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindDuplicateName, domain.KindCycle:
		return http.StatusConflict
	case domain.KindProtected:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// handleError converts domain errors to RFC 7807 responses carrying a "kind"
// field. Storage and unclassified failures are logged with the request id and
// their details hidden.
func handleError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)
	extras := map[string]any{"kind": kind.String()}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) && conflictErr.ResourceID != 0 {
		extras["existing_id"] = conflictErr.ResourceID
	}

	detail := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("request_id", httputil.GetRequestID(r)).
			Str("kind", kind.String()).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		detail = "internal server error"
	}

	httputil.RespondErrorWithExtras(w, status, detail, extras)
}

// badRequest answers 400 with the validation kind
func badRequest(w http.ResponseWriter, detail string) {
	httputil.RespondErrorWithExtras(w, http.StatusBadRequest, detail,
		map[string]any{"kind": domain.KindValidation.String()})
}
