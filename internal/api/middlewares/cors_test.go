package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	mw "github.com/5w1tchy/wordlist-api/internal/api/middlewares"
)

func TestCORS(t *testing.T) {
	h := mw.CORS([]string{"http://localhost:5173"}, zap.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/v1/candidates/export", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition"))

	req = httptest.NewRequest(http.MethodPost, "/v1/candidates", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/candidates", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHPP(t *testing.T) {
	var got string
	h := mw.HPP(mw.DefaultHPPOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/runs?page=2&page=9&debug=1&size=10", nil))
	assert.Equal(t, "page=2&size=10", got)
}
