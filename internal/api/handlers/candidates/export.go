package candidates

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/api/middlewares"
	"github.com/5w1tchy/wordlist-api/internal/wordlist"
)

// Export handles POST /v1/candidates/export and streams the whole list as a
// text attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	items, ok := h.generate(w, r)
	if !ok {
		return
	}
	if len(items) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+wordlist.Filename+`"`)
	w.Header().Set("X-Total-Count", strconv.Itoa(len(items)))
	w.WriteHeader(http.StatusOK)
	if _, err := wordlist.Write(w, items); err != nil {
		// Headers are gone; all that is left is to note the broken stream.
		h.Log.Warn("export write failed",
			zap.String("request_id", middlewares.GetRequestID(r)),
			zap.Error(err))
	}
}
