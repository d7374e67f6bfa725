// Package candidates serves password candidate generation over HTTP.
package candidates

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/api/apperr"
	"github.com/5w1tchy/wordlist-api/internal/api/httpx"
	"github.com/5w1tchy/wordlist-api/internal/api/middlewares"
	"github.com/5w1tchy/wordlist-api/internal/config"
	"github.com/5w1tchy/wordlist-api/internal/generator"
	"github.com/5w1tchy/wordlist-api/internal/metrics"
	"github.com/5w1tchy/wordlist-api/internal/store/runs"
	"github.com/5w1tchy/wordlist-api/internal/validate"
)

// RunRecorder accepts audit records without blocking the request.
type RunRecorder interface {
	Enqueue(r runs.Run) bool
}

type Handler struct {
	Gen    *generator.Generator
	Limits config.Generation
	Runs   RunRecorder
	Log    *zap.Logger

	now func() time.Time
}

func NewHandler(gen *generator.Generator, limits config.Generation, rec RunRecorder, log *zap.Logger) *Handler {
	return &Handler{Gen: gen, Limits: limits, Runs: rec, Log: log, now: time.Now}
}

// generate decodes, validates and runs one request. It writes the error
// response itself and returns ok=false when the caller should stop.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req generateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return nil, false
	}
	raw := req.raw()
	if err := validate.GenerationInput(raw, h.Limits); err != nil {
		apperr.HandleError(w, r, err, "Invalid input")
		return nil, false
	}

	in := generator.Normalize(raw)
	start := h.now()
	items, st, err := h.Gen.GenerateWithStats(in)
	elapsed := h.now().Sub(start)
	aborted := errors.Is(err, generator.ErrLimitExceeded)

	metrics.ObserveGeneration(st, elapsed, aborted)
	h.record(r, in, st, aborted, elapsed)

	if err != nil {
		if !aborted {
			h.Log.Error("generation failed", zap.String("request_id", middlewares.GetRequestID(r)), zap.Error(err))
		}
		apperr.HandleError(w, r, err, "Generation failed")
		return nil, false
	}
	return items, true
}

func (h *Handler) record(r *http.Request, in generator.Input, st generator.Stats, aborted bool, elapsed time.Duration) {
	if h.Runs == nil {
		return
	}
	opID, _ := middlewares.OperatorIDFrom(r.Context())
	run := runs.Run{
		ID:             uuid.NewString(),
		OperatorID:     opID,
		Options:        in.Options,
		HasFirstName:   in.FirstName != "",
		HasLastName:    in.LastName != "",
		HasBirthdate:   in.Birthdate != nil,
		KeywordCount:   len(in.Keywords),
		CandidateCount: st.Total,
		Aborted:        aborted,
		DurationMS:     elapsed.Milliseconds(),
		CreatedAt:      h.now().UTC(),
	}
	if !h.Runs.Enqueue(run) {
		h.Log.Debug("run audit record dropped", zap.String("run_id", run.ID))
	}
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large", "request body is too large")
	case errors.Is(err, httpx.ErrNotJSON):
		apperr.WriteStatus(w, r, http.StatusUnsupportedMediaType, "Unsupported Media Type", err.Error())
	default:
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "malformed JSON body")
	}
}
