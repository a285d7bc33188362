package middleware

import (
	"context"
	"errors"
	"net/http"

	"socialfeed/app/logging"
	"socialfeed/app/services"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticator resolves an Authorization header to an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (services.Identity, error)
}

// Auth guards routes with bearer tokens.
type Auth struct {
	guard Authenticator
	log   logging.Logger
}

func NewAuth(guard Authenticator) *Auth {
	return &Auth{guard: guard, log: logging.GetLogger("middleware.auth")}
}

// RequireAuth rejects requests without a valid token and stores the
// caller's identity in the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.guard.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			a.log.WarnContext(r.Context(), "authentication failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			writeError(w, services.StatusCode(err), authMessage(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// authMessage hides token parser details from the client.
func authMessage(err error) string {
	if errors.Is(err, services.ErrNoCredential) {
		return services.ErrNoCredential.Error()
	}
	return services.ErrInvalidCredential.Error()
}

// WithIdentity returns a context carrying identity.
func WithIdentity(ctx context.Context, identity services.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity stored by RequireAuth.
func IdentityFromContext(ctx context.Context) (services.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(services.Identity)
	return identity, ok && identity.UserID != ""
}
