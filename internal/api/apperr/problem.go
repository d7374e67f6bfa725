package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/5w1tchy/wordlist-api/internal/generator"
	"github.com/5w1tchy/wordlist-api/internal/validate"
)

type FieldError = validate.FieldError

type Problem struct {
	Type        string       `json:"type,omitempty"`   // RFC7807 type URI
	Title       string       `json:"title"`            // short summary
	Status      int          `json:"status"`           // HTTP status code
	Detail      string       `json:"detail,omitempty"` // human details
	Instance    string       `json:"instance,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
	Retryable   bool         `json:"retryable,omitempty"`
}

func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	if p.Instance == "" && r != nil {
		p.Instance = r.URL.Path
	}
	if p.RequestID == "" && r != nil {
		if rid := r.Header.Get("X-Request-ID"); rid != "" {
			p.RequestID = rid
		}
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// WriteStatus writes a problem with just status, title and detail.
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	Write(w, r, Problem{Status: status, Title: title, Detail: detail})
}

// FromValidation maps validate.Errors to a 400 problem.
func FromValidation(err error) (Problem, bool) {
	var ve validate.Errors
	if !errors.As(err, &ve) {
		return Problem{}, false
	}
	return Problem{
		Type:        "about:blank#invalid-input",
		Status:      http.StatusBadRequest,
		Title:       "Bad Request",
		FieldErrors: ve,
	}, true
}

// FromGeneration maps generator errors. An exceeded candidate limit is the
// caller asking for too much, not a server fault.
func FromGeneration(err error) (Problem, bool) {
	if !errors.Is(err, generator.ErrLimitExceeded) {
		return Problem{}, false
	}
	return Problem{
		Type:   "about:blank#limit-exceeded",
		Status: http.StatusUnprocessableEntity,
		Title:  "Generation aborted",
		Detail: "the requested options produce more candidates than allowed; disable some mutations or trim keywords",
		FieldErrors: []FieldError{{
			Field:   "max_candidates",
			Code:    "limit_exceeded",
			Message: err.Error(),
		}},
	}, true
}

// HandleError writes the best matching problem for err. Returns false for nil.
func HandleError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	for _, m := range []func(error) (Problem, bool){FromValidation, FromGeneration, FromPG} {
		if p, ok := m(err); ok {
			Write(w, r, p)
			return true
		}
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
