// Package runs exposes the generation audit trail to admins.
package runs

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/api/apperr"
	"github.com/5w1tchy/wordlist-api/internal/api/httpx"
	"github.com/5w1tchy/wordlist-api/internal/api/middlewares"
	storeruns "github.com/5w1tchy/wordlist-api/internal/store/runs"
	"github.com/5w1tchy/wordlist-api/internal/validate"
)

const (
	defaultPageSize = 25
	maxPageSize     = 200
)

type Lister interface {
	List(ctx context.Context, f storeruns.Filter) ([]storeruns.Run, int, error)
}

type Handler struct {
	Sto Lister
	Log *zap.Logger
}

func NewHandler(sto Lister, log *zap.Logger) *Handler {
	return &Handler{Sto: sto, Log: log}
}

type listResponse struct {
	Items []storeruns.Run `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// List handles GET /v1/runs?page=&size=&operator_id=&since=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size := validate.ClampPage(q.Get("page"), q.Get("size"), defaultPageSize, maxPageSize)
	f := storeruns.Filter{Page: page, Size: size}

	var errs validate.Errors
	if op := strings.TrimSpace(q.Get("operator_id")); op != "" {
		if _, err := uuid.Parse(op); err != nil {
			errs = append(errs, validate.FieldError{Field: "operator_id", Code: "invalid", Message: "operator_id must be a UUID"})
		}
		f.OperatorID = op
	}
	if s := strings.TrimSpace(q.Get("since")); s != "" {
		t, err := parseSince(s)
		if err != nil {
			errs = append(errs, validate.FieldError{Field: "since", Code: "invalid", Message: "since must be YYYY-MM-DD or RFC3339"})
		}
		f.Since = &t
	}
	if len(errs) > 0 {
		apperr.HandleError(w, r, errs, "Invalid query")
		return
	}

	items, total, err := h.Sto.List(r.Context(), f)
	if err != nil {
		h.Log.Error("list runs failed", zap.String("request_id", middlewares.GetRequestID(r)), zap.Error(err))
		apperr.HandleError(w, r, err, "Failed to list runs")
		return
	}
	httpx.OK(w, listResponse{Items: items, Total: total, Page: page, Size: size})
}

func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
