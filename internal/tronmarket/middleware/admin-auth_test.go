package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"tron-market/internal/tronmarket/middleware"
	"tron-market/internal/tronmarket/service"
	"tron-market/pkg/jwtfactory"
	"tron-market/pkg/logging"
)

const adminSecret = "super-secret"

func newGuardedHandler(t *testing.T, tokenAuth *jwtauth.JWTAuth) http.Handler {
	t.Helper()
	logger, err := logging.NewZapLogger(zapcore.ErrorLevel)
	require.NoError(t, err)

	auth := service.NewAdminAuth(adminSecret, jwtfactory.New(tokenAuth, time.Hour))
	guard := middleware.NewAdminAuth(auth, tokenAuth, logger)
	return guard.CreateHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAdminAuthPassQueryParameter(t *testing.T) {
	tokenAuth := jwtauth.New("HS256", []byte("signing-key"), nil)
	handler := newGuardedHandler(t, tokenAuth)

	tests := []struct {
		name               string
		target             string
		expectedStatusCode int
	}{
		{
			name:               "correct secret",
			target:             "/api/admin/orders?pass=" + adminSecret,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "wrong secret",
			target:             "/api/admin/orders?pass=guess",
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "no credentials at all",
			target:             "/api/admin/orders",
			expectedStatusCode: http.StatusForbidden,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, test.target, nil))
			assert.Equal(t, test.expectedStatusCode, recorder.Code)
		})
	}
}

func TestAdminAuthBearerToken(t *testing.T) {
	tokenAuth := jwtauth.New("HS256", []byte("signing-key"), nil)
	handler := newGuardedHandler(t, tokenAuth)
	factory := jwtfactory.New(tokenAuth, time.Hour)

	adminToken, err := factory.Generate(map[string]string{service.RoleClaimName: service.AdminRole})
	require.NoError(t, err)

	roleLessToken, err := factory.Generate(nil)
	require.NoError(t, err)

	expiredFactory := jwtfactory.New(tokenAuth, -time.Hour)
	expiredToken, err := expiredFactory.Generate(map[string]string{service.RoleClaimName: service.AdminRole})
	require.NoError(t, err)

	foreignAuth := jwtauth.New("HS256", []byte("other-key"), nil)
	foreignToken, err := jwtfactory.New(foreignAuth, time.Hour).
		Generate(map[string]string{service.RoleClaimName: service.AdminRole})
	require.NoError(t, err)

	tests := []struct {
		name               string
		token              string
		expectedStatusCode int
	}{
		{
			name:               "admin token",
			token:              adminToken,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "token without admin role",
			token:              roleLessToken,
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "expired token",
			token:              expiredToken,
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "token signed with another key",
			token:              foreignToken,
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "garbage token",
			token:              "not-a-token",
			expectedStatusCode: http.StatusForbidden,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			request.Header.Set("Authorization", "Bearer "+test.token)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, test.expectedStatusCode, recorder.Code)
		})
	}
}

func TestAdminAuthLoginIssuesUsableToken(t *testing.T) {
	tokenAuth := jwtauth.New("HS256", []byte("signing-key"), nil)
	handler := newGuardedHandler(t, tokenAuth)
	auth := service.NewAdminAuth(adminSecret, jwtfactory.New(tokenAuth, time.Hour))

	_, err := auth.Login("guess")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	token, err := auth.Login(adminSecret)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
