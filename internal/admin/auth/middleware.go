package auth

import (
	"context"
	"net/http"

	apperrors "hotelinfinity/pkg/errors"
	httputil "hotelinfinity/pkg/http"
	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type claimsKey struct{}

// SessionVerifier reports whether the token's session is still the live
// one.
type SessionVerifier interface {
	VerifySession(claims *Claims) error
}

func RequireAdmin(tokens *TokenManager, verifier SessionVerifier, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, err := tokens.Parse(httputil.BearerToken(r))
			if err == nil {
				err = verifier.VerifySession(claims)
			}
			if err != nil {
				log.Warn("Admin request rejected",
					"request_id", middleware.GetRequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Authentication required")); writeErr != nil {
					log.Error("failed to write error response", "handler", "RequireAdmin", "operation", "WriteError", "error", writeErr)
				}
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}
