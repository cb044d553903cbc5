package echoapi

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/person"
)

// adminSubject is the JWT subject of the password-authenticated admin session.
const adminSubject = "admin"

// appJWTConfig is the default JWT auth middleware config.
var appJWTConfig = middleware.JWTConfig{
	SigningKey:    []byte(core.Conf.SecretKey),
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "personToken",
	Claims:        new(Claims),
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	IsAdmin bool `json:"is_admin,omitempty"`
}

func GetPersonClaims(personID string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   personID,
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
	}
}

func GetAdminClaims() *Claims {
	claims := GetPersonClaims(adminSubject)
	claims.IsAdmin = true
	return claims
}

// authenticate verifies a person's PIN. Every failure mode collapses into the
// same response; callers learn nothing about which part was wrong.
func authenticate(ctx context.Context, personID, pin string, svc *person.Service) (*Claims, error) {
	if err := svc.Verify(ctx, personID, pin); err != nil {
		return nil, errAuthenticationFailed
	}
	return GetPersonClaims(personID), nil
}

// authenticateAdmin checks the shared admin password. An empty configured
// password disables admin login entirely.
func authenticateAdmin(password string) (*Claims, error) {
	configured := core.Conf.AdminPassword
	if configured == "" {
		return nil, errAuthenticationFailed
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(configured)) != 1 {
		return nil, errAuthenticationFailed
	}
	return GetAdminClaims(), nil
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
