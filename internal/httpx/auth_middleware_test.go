package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookcatalog/internal/platform/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	var seenUser string
	protected := AuthMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserIDFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	validToken, _, err := crypto.GenerateToken(secret, "42", "reader@example.com", time.Hour)
	require.NoError(t, err)
	otherToken, _, err := crypto.GenerateToken("other-secret", "42", "reader@example.com", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + otherToken, http.StatusUnauthorized},
		{"valid", "Bearer " + validToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser = ""
			r := httptest.NewRequest(http.MethodPost, "/books", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "42", seenUser)
			} else {
				assert.Empty(t, seenUser)
			}
		})
	}
}
