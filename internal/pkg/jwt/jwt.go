package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Identity is the caller identity carried by a verified access token. Token
// issuance belongs to the external auth service; this engine only verifies
// and reads claims.
type Identity struct {
	UserID     string
	EmployeeID string
	IsAdmin    bool
}

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	IdentityFromContext(ctx context.Context) (Identity, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// IdentityFromContext extracts the verified identity claims placed in the
// request context by the jwtauth verifier middleware.
func (j *JWTService) IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, err
	}

	var id Identity
	if v, ok := claims["user_id"].(string); ok {
		id.UserID = v
	}
	if v, ok := claims["employee_id"].(string); ok {
		id.EmployeeID = v
	}
	if v, ok := claims["is_admin"].(bool); ok {
		id.IsAdmin = v
	}
	return id, nil
}
