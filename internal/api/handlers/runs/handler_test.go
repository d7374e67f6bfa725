package runs_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/api/handlers/runs"
	storeruns "github.com/5w1tchy/wordlist-api/internal/store/runs"
)

type fakeLister struct {
	got   storeruns.Filter
	items []storeruns.Run
	err   error
}

func (f *fakeLister) List(_ context.Context, flt storeruns.Filter) ([]storeruns.Run, int, error) {
	f.got = flt
	return f.items, len(f.items), f.err
}

func get(h *runs.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestList(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sto := &fakeLister{items: []storeruns.Run{{ID: "r1", CandidateCount: 42, CreatedAt: at}}}
	h := runs.NewHandler(sto, zap.NewNop())

	rr := get(h, "/v1/runs?page=2&size=10&operator_id=6f1c2a3e-8d4b-4b7a-9e55-0c1f2d3e4a5b&since=2024-05-01")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, sto.got.Page)
	assert.Equal(t, 10, sto.got.Size)
	assert.Equal(t, "6f1c2a3e-8d4b-4b7a-9e55-0c1f2d3e4a5b", sto.got.OperatorID)
	require.NotNil(t, sto.got.Since)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *sto.got.Since)
	assert.Contains(t, rr.Body.String(), `"candidate_count":42`)
}

func TestList_Defaults(t *testing.T) {
	sto := &fakeLister{}
	rr := get(runs.NewHandler(sto, zap.NewNop()), "/v1/runs?size=5000")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, sto.got.Page)
	assert.Equal(t, 25, sto.got.Size)
	assert.Nil(t, sto.got.Since)
}

func TestList_BadQuery(t *testing.T) {
	rr := get(runs.NewHandler(&fakeLister{}, zap.NewNop()), "/v1/runs?operator_id=nope&since=yesterday")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "operator_id")
	assert.Contains(t, rr.Body.String(), "since")
}

func TestList_StoreError(t *testing.T) {
	rr := get(runs.NewHandler(&fakeLister{err: errors.New("db down")}, zap.NewNop()), "/v1/runs")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
