package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/devconnector-api/shared/metrics"
	"github.com/vasapolrittideah/devconnector-api/shared/response"
)

// LegacyTokenHeader is accepted when no Authorization header is present.
const LegacyTokenHeader = "x-auth-token"

// UnauthorizedMessage is the only message returned for rejected tokens.
const UnauthorizedMessage = "Token is not valid"

type contextKey struct{}

var userIDKey = contextKey{}

var (
	errMissingToken    = errors.New("missing bearer token")
	errMalformedHeader = errors.New("invalid authorization header format")
	errUserNotFound    = errors.New("token user no longer exists")
)

// TokenValidator resolves a bearer token to a user id.
type TokenValidator interface {
	ValidateUserToken(token string) (string, error)
}

// UserChecker confirms that the user a token refers to still exists.
type UserChecker interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

// NewAuthMiddleware rejects requests without a valid bearer token and stores
// the resolved user id in the request context.
func NewAuthMiddleware(
	validator TokenValidator,
	users UserChecker,
	recorder metrics.AuthRecorder,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := hlog.FromRequest(r)

			token, err := extractToken(r)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected request without usable token")
				recorder.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeRejected)
				response.Error(w, http.StatusUnauthorized, UnauthorizedMessage)
				return
			}

			userID, err := validator.ValidateUserToken(token)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected invalid token")
				recorder.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeRejected)
				response.Error(w, http.StatusUnauthorized, UnauthorizedMessage)
				return
			}

			exists, err := users.UserExists(r.Context(), userID)
			if err != nil {
				logger.Error().Err(err).Str("user_id", userID).Msg("failed to look up token user")
				recorder.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeError)
				response.InternalError(w)
				return
			}
			if !exists {
				logger.Debug().Err(errUserNotFound).Str("user_id", userID).Msg("rejected token")
				recorder.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeRejected)
				response.Error(w, http.StatusUnauthorized, UnauthorizedMessage)
				return
			}

			recorder.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeSuccess)
			logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("user_id", userID)
			})

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if legacy := strings.TrimSpace(r.Header.Get(LegacyTokenHeader)); legacy != "" {
			return legacy, nil
		}
		return "", errMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", errMalformedHeader
	}

	return strings.TrimSpace(parts[1]), nil
}

// UserIDFromContext returns the user id stored by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// ContextWithUserID stores userID in ctx.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
