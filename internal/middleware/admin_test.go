package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newGateRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AdminAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"granted": true})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthValidToken(t *testing.T) {
	r := newGateRouter("s3cret")
	w := doRequest(r, "Bearer s3cret")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminAuthRejections(t *testing.T) {
	r := newGateRouter("s3cret")
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong token", "Bearer nope"},
		{"wrong scheme", "Basic s3cret"},
		{"no scheme", "s3cret"},
		{"trailing garbage", "Bearer s3cret extra"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, tc.header)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), "Unauthorized") {
				t.Errorf("expected error body, got %s", w.Body.String())
			}
		})
	}
}

func TestAdminAuthUnconfiguredSecret(t *testing.T) {
	r := newGateRouter("")
	// Even a well-formed request must fail when no secret is configured.
	w := doRequest(r, "Bearer anything")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Admin token not configured") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}
