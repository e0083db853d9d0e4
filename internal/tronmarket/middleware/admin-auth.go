package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"

	"tron-market/internal/tronmarket/service"
	"tron-market/pkg/logging"
)

const passQueryParam = "pass"

type SecretVerifier interface {
	VerifySecret(secret string) bool
}

// AdminAuth guards the admin endpoints. It accepts either a Bearer
// token issued by the admin login endpoint or the legacy ?pass= query
// secret the original frontend sends.
type AdminAuth struct {
	verifier  SecretVerifier
	tokenAuth *jwtauth.JWTAuth
	logger    *logging.ZapLogger
}

func NewAdminAuth(verifier SecretVerifier, tokenAuth *jwtauth.JWTAuth, logger *logging.ZapLogger) *AdminAuth {
	return &AdminAuth{
		verifier:  verifier,
		tokenAuth: tokenAuth,
		logger:    logger,
	}
}

func (aa *AdminAuth) CreateHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pass := r.URL.Query().Get(passQueryParam); pass != "" {
			if aa.verifier.VerifySecret(pass) {
				next.ServeHTTP(w, r)
				return
			}
			aa.logger.DebugCtx(r.Context(), "admin secret mismatch")
			w.WriteHeader(http.StatusForbidden)
			return
		}

		token, err := jwtauth.VerifyRequest(aa.tokenAuth, r, jwtauth.TokenFromHeader)
		if err != nil {
			aa.logger.DebugCtx(r.Context(), "admin token rejected", zap.Error(err))
			w.WriteHeader(http.StatusForbidden)
			return
		}
		role, _ := token.Get(service.RoleClaimName)
		if role != service.AdminRole {
			aa.logger.DebugCtx(r.Context(), "admin token without admin role")
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
