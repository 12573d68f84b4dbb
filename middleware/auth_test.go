package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func principalEcho() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   c.GetString(CtxUserID),
			"username": c.GetString(CtxUsername),
		})
	}
}

func doRequest(handler gin.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/protected", handler, principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, err := NewToken(testSecret, time.Hour, "507f1f77bcf86cd799439011", "alice")
	require.NoError(t, err)

	w := doRequest(RequireAuth(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.Contains(t, w.Body.String(), "507f1f77bcf86cd799439011")
}

func TestRequireAuth_Rejections(t *testing.T) {
	expired, err := NewToken(testSecret, -time.Minute, "u1", "bob")
	require.NoError(t, err)

	wrongKey, err := NewToken("some-other-secret", time.Hour, "u1", "bob")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc123"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong signing key", header: "Bearer " + wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(RequireAuth(testSecret), tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	w := doRequest(OptionalAuth(testSecret), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth_InvalidTokenDegradesToAnonymous(t *testing.T) {
	w := doRequest(OptionalAuth(testSecret), "Bearer definitely-not-valid")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":""`)
}

func TestOptionalAuth_ValidTokenSetsPrincipal(t *testing.T) {
	token, err := NewToken(testSecret, time.Hour, "u42", "carol")
	require.NoError(t, err)

	w := doRequest(OptionalAuth(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "carol")
}
