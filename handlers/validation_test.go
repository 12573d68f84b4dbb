package handlers

// Validation-path tests: these requests are rejected before any store
// round-trip, so a zero-value Handler is enough.

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path, reqPath, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, reqPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignup_RejectsBadInput(t *testing.T) {
	h := &Handler{}

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: `{}`},
		{name: "missing username", body: `{"email":"a@b.com","password":"secret1"}`},
		{name: "missing email", body: `{"username":"alice","password":"secret1"}`},
		{name: "malformed email", body: `{"username":"alice","email":"nope","password":"secret1"}`},
		{name: "short password", body: `{"username":"alice","email":"a@b.com","password":"12345"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Signup, "/auth/signup", "/auth/signup", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin_RejectsBadInput(t *testing.T) {
	h := &Handler{}

	w := postJSON(t, h.Login, "/auth/login", "/auth/login", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePost_RejectsMissingFields(t *testing.T) {
	h := &Handler{}

	tests := []struct {
		name string
		body string
	}{
		{name: "missing title", body: `{"content":"hello"}`},
		{name: "missing content", body: `{"title":"hello"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.CreatePost, "/posts", "/posts", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreatePost_RejectsAnonymous(t *testing.T) {
	h := &Handler{}

	// Valid body but no principal on the context
	w := postJSON(t, h.CreatePost, "/posts", "/posts", `{"title":"t","content":"c"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddComment_RejectsMalformedPostID(t *testing.T) {
	h := &Handler{}

	w := postJSON(t, h.AddComment, "/posts/:id/comments", "/posts/not-an-object-id/comments", `{"text":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddComment_RejectsMissingText(t *testing.T) {
	h := &Handler{}

	w := postJSON(t, h.AddComment, "/posts/:id/comments", "/posts/507f1f77bcf86cd799439011/comments", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
