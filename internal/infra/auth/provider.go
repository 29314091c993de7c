package auth

import (
	"fmt"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the explicit capability every command receives. How the token
// was verified is the gateway's concern; the core only cares who is acting.
type Identity struct {
	CreatorID uuid.UUID
	Role      consts.Role
}

func (i *Identity) IsAdmin() bool {
	return i.Role == consts.RoleAdmin
}

// RequireAdmin guards admin-only operations.
func (i *Identity) RequireAdmin() error {
	if !i.IsAdmin() {
		return errs.PermissionsError{Err: fmt.Errorf("action requires admin role")}
	}
	return nil
}

type IdentityProvider struct {
}

// GetIdentity extracts the acting identity from a bearer token. The token was
// already verified at the edge; claims are read unverified here.
func (p IdentityProvider) GetIdentity(tokenString string) (*Identity, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("identity can't be retrieved, %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims shape")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("missing sub claim")
	}
	creatorID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("sub claim is not a valid id, %v", err)
	}

	role := consts.RoleCreator
	if r, ok := claims["role"].(string); ok && consts.Role(r) == consts.RoleAdmin {
		role = consts.RoleAdmin
	}

	return &Identity{
		CreatorID: creatorID,
		Role:      role,
	}, nil
}
