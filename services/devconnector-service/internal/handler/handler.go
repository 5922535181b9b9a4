package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/devconnector-api/shared/middleware"
	"github.com/vasapolrittideah/devconnector-api/shared/response"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

const maxBodyBytes = 1 << 20

// RequestValidator validates decoded request payloads.
type RequestValidator interface {
	Struct(s any) error
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes the
// error response itself and reports false when the handler must stop.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v RequestValidator, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("invalid request body")
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := v.Struct(dst); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ValidationErrors(w, verrs)
			return false
		}

		hlog.FromRequest(r).Error().Err(err).Msg("failed to validate request")
		response.InternalError(w)
		return false
	}

	return true
}

// requireUserID returns the id set by the auth middleware. It writes a 401 when absent.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, middleware.UnauthorizedMessage)
		return "", false
	}

	return userID, true
}

func internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	hlog.FromRequest(r).Error().Err(err).Msg(msg)
	response.InternalError(w)
}
