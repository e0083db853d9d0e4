package service

import (
	"crypto/subtle"
	"fmt"
)

var (
	RoleClaimName = "role"
	AdminRole     = "admin"
)

type AdminAuth struct {
	secret       string
	tokenFactory TokenFactory
}

func NewAdminAuth(secret string, tokenFactory TokenFactory) *AdminAuth {
	return &AdminAuth{
		secret:       secret,
		tokenFactory: tokenFactory,
	}
}

func (a *AdminAuth) Login(secret string) (string, error) {
	if !a.VerifySecret(secret) {
		return "", ErrUnauthorized
	}
	token, err := a.tokenFactory.Generate(map[string]string{
		RoleClaimName: AdminRole,
	})
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// VerifySecret backs both the login endpoint and the legacy ?pass=
// query parameter.
func (a *AdminAuth) VerifySecret(secret string) bool {
	if a.secret == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.secret), []byte(secret)) == 1
}
