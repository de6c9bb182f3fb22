package auth

import (
	"errors"

	// echo-jwt verifies tokens with jwt/v5, so the context value must be
	// read back with the same type.
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bazaar/internal/model"
)

// Principal identifies the authenticated caller of a request. It is
// extracted once from the verified JWT and passed explicitly to services.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  model.Role
}

// ErrNoPrincipal is returned when a request carries no verified token.
var ErrNoPrincipal = errors.New("no authenticated principal")

// CurrentPrincipal reads the principal from the JWT the middleware verified.
func CurrentPrincipal(c echo.Context) (Principal, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}

	rawID, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Principal{}, ErrNoPrincipal
	}

	email, _ := claims["email"].(string)
	rawRole, _ := claims["role"].(string)
	role := model.Role(rawRole)
	if !role.Valid() {
		return Principal{}, ErrNoPrincipal
	}

	return Principal{ID: id, Email: email, Role: role}, nil
}
