// Package jwt verifies access tokens issued by the identity provider. Tokens
// are signed with HS256 using the shared secret; this service never issues
// them.
package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrInvalidToken          = errors.New("invalid or missing access token")
	ErrManagerAccessRequired = errors.New("manager access required")
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleOwner    Role = "owner"
)

// Claims are the access token fields the service relies on.
type Claims struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

func (c Claims) IsManager() bool {
	return c.Role == RoleManager || c.Role == RoleOwner
}

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
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

// ClaimsFromContext reads the verified token placed in ctx by jwtauth.Verifier.
// Only access tokens carrying a company and an employee are accepted.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Claims{}, ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return Claims{}, ErrInvalidToken
	}

	c := Claims{}
	c.UserID, _ = claims["user_id"].(string)
	c.EmployeeID, _ = claims["employee_id"].(string)
	c.CompanyID, _ = claims["company_id"].(string)
	role, _ := claims["role"].(string)
	c.Role = Role(role)

	if c.CompanyID == "" || c.EmployeeID == "" {
		return Claims{}, ErrInvalidToken
	}
	return c, nil
}
