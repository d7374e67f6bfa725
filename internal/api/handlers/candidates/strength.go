package candidates

import (
	"net/http"

	"github.com/5w1tchy/wordlist-api/internal/api/httpx"
	"github.com/5w1tchy/wordlist-api/internal/generator"
)

// Strength handles POST /v1/strength.
func (h *Handler) Strength(w http.ResponseWriter, r *http.Request) {
	var req strengthRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	httpx.OK(w, generator.Rate(req.Password))
}
