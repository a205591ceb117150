package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/redland/registro/core"
	"github.com/redland/registro/core/calendar"
)

const (
	tokenContextKey = "userToken"
	tokenAudience   = "Registro"
)

// TokenTTL is how long a generated token stays valid.
var TokenTTL = 12 * time.Hour

// Claims represents the authorization claims transmitted via a JWT.
// Tokens are issued by the session service; the API only verifies them.
type Claims struct {
	jwt.StandardClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// NewClaims returns the claims of usr, issued by issuer.
func NewClaims(usr calendar.Identity, issuer string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   usr.ID,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(TokenTTL).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:  usr.Name,
		Email: usr.Email,
		Role:  usr.Role,
	}
}

// Identity is the acting user carried by c.
func (c Claims) Identity() calendar.Identity {
	return calendar.Identity{ID: c.Subject, Name: c.Name, Email: c.Email, Role: c.Role}
}

type jwtAuth struct {
	config middleware.JWTConfig
}

func newJWTAuth(conf *core.Config) *jwtAuth {
	return &jwtAuth{config: middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}}
}

func (a *jwtAuth) middleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(a.config)
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	return newJWTAuth(conf).sign(claims)
}

func (a *jwtAuth) sign(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.config.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.config.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (a *jwtAuth) contextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(a.config.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// contextUser is the identity of the authenticated caller.
func (a *jwtAuth) contextUser(ctx echo.Context) (calendar.Identity, error) {
	claims, err := a.contextClaims(ctx)
	if err != nil {
		return calendar.Identity{}, errors.Wrap(err, "getting context claims")
	}
	if claims.Audience != tokenAudience {
		return calendar.Identity{}, errHttpForbidden
	}
	return claims.Identity(), nil
}
