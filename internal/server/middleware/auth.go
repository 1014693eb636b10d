// Package middleware provides HTTP middlewares for authentication and
// request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/dreamnotes/internal/common"
	"github.com/dmitrijs2005/dreamnotes/internal/server/auth"
	"github.com/dmitrijs2005/dreamnotes/internal/server/models"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserGetter is the slice of the user service the resolver needs.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// BearerAuth enforces bearer-token authentication. It extracts the token
// from the Authorization header, verifies signature and expiry, and then
// looks the subject up in the credential store, so tokens minted for since
// deleted accounts stop working immediately. Every failure mode produces
// the same 401 response; callers cannot distinguish a bad token from a
// missing user. On success the resolved user id is stored in the request
// context.
func BearerAuth(jwtSecret []byte, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthHeaderName)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				http.Error(w, "could not validate credentials", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(header, common.BearerPrefix)

			userID, err := auth.GetUserIDFromToken(tokenString, jwtSecret)
			if err != nil {
				http.Error(w, "could not validate credentials", http.StatusUnauthorized)
				return
			}

			// live lookup: a valid signature is not enough
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, "could not validate credentials", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the resolved user id from the request context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying the given user id. Intended for
// handler tests that bypass the middleware.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
