package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatly/internal/shared/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: time.Hour,
		},
	}
}

func authRequest(t *testing.T, cfg *config.Config, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin", RequireAdmin(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAdminAcceptsIssuedToken(t *testing.T) {
	cfg := testConfig()

	token, expiresAt, err := GenerateToken(cfg, "admin@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	recorder := authRequest(t, cfg, "Bearer "+token)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRequireAdminRejectsMissingHeader(t *testing.T) {
	recorder := authRequest(t, testConfig(), "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAdminRejectsMalformedHeader(t *testing.T) {
	recorder := authRequest(t, testConfig(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAdminRejectsForeignSecret(t *testing.T) {
	other := testConfig()
	other.JWT.Secret = "different-secret"

	token, _, err := GenerateToken(other, "admin@example.com")
	require.NoError(t, err)

	recorder := authRequest(t, testConfig(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
