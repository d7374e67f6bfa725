package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var constraintField = map[string]string{
	"operators_email_key":              "email",
	"operators_role_check":             "role",
	"generation_runs_operator_id_fkey": "operator_id",
}

func fieldFromDetail(detail string) string {
	for _, k := range []string{"email", "role", "operator_id", "id"} {
		if strings.Contains(detail, k) {
			return k
		}
	}
	return ""
}

// FromPG maps a *pgconn.PgError to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{Title: "Database error", Status: http.StatusInternalServerError}

	field := constraintField[pg.ConstraintName]
	if field == "" && pg.Detail != "" {
		field = fieldFromDetail(pg.Detail)
	}
	if field == "" && pg.ColumnName != "" {
		field = pg.ColumnName
	}
	if field == "" {
		field = "field"
	}

	switch pg.Code {
	case "23505": // unique_violation
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.FieldErrors = []FieldError{{Field: field, Code: "unique", Message: "value already exists"}}
	case "23503": // foreign_key_violation
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.FieldErrors = []FieldError{{Field: field, Code: "fk", Message: "referenced record does not exist"}}
	case "23502": // not_null_violation
		p.Status, p.Title = http.StatusBadRequest, "Bad Request"
		p.FieldErrors = []FieldError{{Field: field, Code: "not_null", Message: "required field is missing"}}
	case "23514": // check_violation
		p.Status, p.Title = http.StatusUnprocessableEntity, "Unprocessable Entity"
		p.FieldErrors = []FieldError{{Field: field, Code: "check", Message: "constraint failed"}}
	case "22P02": // invalid_text_representation, e.g. a bad uuid
		p.Status, p.Title = http.StatusBadRequest, "Bad Request"
		p.FieldErrors = []FieldError{{Field: field, Code: "invalid", Message: "invalid format"}}
	case "40001": // serialization_failure
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.Detail = "transaction conflict, please retry"
		p.Retryable = true
	case "40P01": // deadlock_detected
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.Detail = "deadlock detected, please retry"
		p.Retryable = true
	}
	return p, true
}
