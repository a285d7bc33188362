package services

import (
	"context"
	"strings"
)

// Identity is the authenticated caller, passed by value to the lifecycle
// managers.
type Identity struct {
	UserID string
}

// TokenValidator resolves a bearer token to a user id.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// IdentityGuard turns an Authorization header into an Identity.
type IdentityGuard struct {
	tokens TokenValidator
}

func NewIdentityGuard(tokens TokenValidator) *IdentityGuard {
	return &IdentityGuard{tokens: tokens}
}

// Authenticate accepts "Bearer <token>" or a raw token.
func (g *IdentityGuard) Authenticate(ctx context.Context, header string) (Identity, error) {
	token := strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(token, " "); ok && strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(rest)
	} else if strings.EqualFold(token, "Bearer") {
		token = ""
	}
	if token == "" {
		return Identity{}, ErrNoCredential
	}

	userID, err := g.tokens.ValidateToken(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID}, nil
}
