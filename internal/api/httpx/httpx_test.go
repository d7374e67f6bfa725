package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/wordlist-api/internal/api/httpx"
)

type body struct {
	Name string `json:"name"`
}

func post(payload, ct string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	if ct != "" {
		r.Header.Set("Content-Type", ct)
	}
	return r
}

func TestDecodeJSON(t *testing.T) {
	var b body
	require.NoError(t, httpx.DecodeJSON(post(`{"name":"rex"}`, "application/json"), &b))
	assert.Equal(t, "rex", b.Name)

	var empty body
	require.NoError(t, httpx.DecodeJSON(post("", ""), &empty))
	assert.Empty(t, empty.Name)

	assert.ErrorIs(t, httpx.DecodeJSON(post(`{}`, "text/plain"), &b), httpx.ErrNotJSON)
	assert.Error(t, httpx.DecodeJSON(post(`{"nope":1}`, "application/json"), &b))
	assert.Error(t, httpx.DecodeJSON(post(`{"name":"a"}{"name":"b"}`, "application/json"), &b))
}

func TestOK(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.OK(rr, map[string]int{"n": 1})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"success","data":{"n":1}}`, rr.Body.String())
}
