package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"miniblog/internal/core"
)

// Authenticator turns an Authorization header into verified, non-revoked claims
// of a user that still exists.
type Authenticator struct {
	Tokens    *Tokens
	Blacklist core.TokenBlacklist
	Users     core.UserRepository
}

func (a *Authenticator) Authenticate(ctx context.Context, header string) (*Claims, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", core.ErrUnauthenticated)
	}

	claims, err := a.Tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := a.Blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been revoked", core.ErrUnauthenticated)
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	if _, err := a.Users.Get(ctx, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", core.ErrUnauthenticated)
		}
		return nil, err
	}

	return claims, nil
}

// Revoke blacklists the token for the rest of its lifetime.
func (a *Authenticator) Revoke(ctx context.Context, claims *Claims) error {
	return a.Blacklist.Add(ctx, claims.ID, claims.Remaining())
}
