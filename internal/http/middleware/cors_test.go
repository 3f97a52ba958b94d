package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"default dev origin", nil, "http://localhost:5173", "http://localhost:5173"},
		{"configured origin", []string{"https://news.example.com"}, "https://news.example.com", "https://news.example.com"},
		{"trailing slash trimmed", []string{" https://news.example.com/ "}, "https://news.example.com", "https://news.example.com"},
		{"unlisted origin", []string{"https://news.example.com"}, "https://evil.example.com", ""},
		{"wildcard", []string{"*"}, "https://anyone.example.com", "*"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.Use(CORS(tc.origins))
			r.OPTIONS("/api/auth/login", func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tc.want {
				t.Fatalf("allow-origin: got=%q want=%q", got, tc.want)
			}
		})
	}
}
