package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/http/auth"
)

const secret = "test-secret"

func token(t *testing.T, method jwt.SigningMethod, key any, role string, exp time.Time) string {
	t.Helper()

	tok := jwt.NewWithClaims(method, &auth.Claims{
		ID:   1,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	s, err := tok.SignedString(key)
	require.NoError(t, err)

	return s
}

func TestRequireRole(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
	}{
		{
			name:       "Disabled",
			secret:     "",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "Admin",
			secret:     secret,
			header:     "Bearer " + token(t, jwt.SigningMethodHS256, []byte(secret), "admin", future),
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "Manager",
			secret:     secret,
			header:     "Bearer " + token(t, jwt.SigningMethodHS256, []byte(secret), "manager", future),
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "WrongRole",
			secret:     secret,
			header:     "Bearer " + token(t, jwt.SigningMethodHS256, []byte(secret), "staff", future),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Missing",
			secret:     secret,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongKey",
			secret:     secret,
			header:     "Bearer " + token(t, jwt.SigningMethodHS256, []byte("other"), "admin", future),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Expired",
			secret:     secret,
			header:     "Bearer " + token(t, jwt.SigningMethodHS256, []byte(secret), "admin", time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "OtherAlgorithm",
			secret:     secret,
			header:     "Bearer " + token(t, jwt.SigningMethodHS512, []byte(secret), "admin", future),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NotBearer",
			secret:     secret,
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := auth.RequireRole(tt.secret, "admin", "manager")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodPut, "/settings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
