package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"bazaar/internal/model"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "test@example.com", "buyer")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "buyer", claims.Role)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateAccessToken(uuid.New(), "test@example.com", "buyer")
	assert.NoError(t, err)

	other := NewJWTService("other-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(uuid.New(), "test@example.com", "seller")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestCurrentPrincipal(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	signed, err := svc.GenerateAccessToken(userID, "shop@example.com", "seller")
	assert.NoError(t, err)

	// parse the way echo-jwt does, into jwt/v5 MapClaims
	parsed, err := jwtv5.Parse(signed, func(token *jwtv5.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", parsed)

	principal, err := CurrentPrincipal(c)
	assert.NoError(t, err)
	assert.Equal(t, userID, principal.ID)
	assert.Equal(t, "shop@example.com", principal.Email)
	assert.Equal(t, model.RoleSeller, principal.Role)
}

func TestCurrentPrincipal_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_, err := CurrentPrincipal(c)
	assert.Equal(t, ErrNoPrincipal, err)
}
