package candidates

import (
	"net/http"
	"strconv"

	"github.com/5w1tchy/wordlist-api/internal/api/httpx"
	"github.com/5w1tchy/wordlist-api/internal/validate"
	"github.com/5w1tchy/wordlist-api/internal/wordlist"
)

// List handles POST /v1/candidates and returns one page of the list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, ok := h.generate(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	page, size := validate.ClampPage(q.Get("page"), q.Get("size"), wordlist.DefaultPageSize, wordlist.MaxPageSize)

	w.Header().Set("X-Total-Count", strconv.Itoa(len(items)))
	httpx.OK(w, wordlist.Paginate(items, page, size))
}
