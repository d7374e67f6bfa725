// Package runs stores generation audit records. A record describes the shape
// of a request and its outcome; it never holds inputs or candidates.
package runs

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/wordlist-api/internal/generator"
	"github.com/5w1tchy/wordlist-api/internal/store/dbx"
)

type Run struct {
	ID             string            `json:"id"`
	OperatorID     string            `json:"operator_id,omitempty"`
	Options        generator.Options `json:"options"`
	HasFirstName   bool              `json:"has_first_name"`
	HasLastName    bool              `json:"has_last_name"`
	HasBirthdate   bool              `json:"has_birthdate"`
	KeywordCount   int               `json:"keyword_count"`
	CandidateCount int               `json:"candidate_count"`
	Aborted        bool              `json:"aborted"`
	DurationMS     int64             `json:"duration_ms"`
	CreatedAt      time.Time         `json:"created_at"`
}

type Filter struct {
	OperatorID string
	Since      *time.Time
	Page       int
	Size       int
}

type Store struct{ db dbx.DB }

func New(db dbx.DB) *Store { return &Store{db: db} }

const (
	insertCols = `id, operator_id, opt_numbers, opt_special, opt_caps, opt_leet,
		has_first_name, has_last_name, has_birthdate,
		keyword_count, candidate_count, aborted, duration_ms, created_at`
	colCount = 14

	// keeps each statement well under the 65535 parameter cap
	maxRowsPerInsert = 500
)

// InsertBatch writes rs in one transaction, chunked into multi-row INSERTs.
func (s *Store) InsertBatch(ctx context.Context, rs []Run) error {
	if len(rs) == 0 {
		return nil
	}
	return dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		for start := 0; start < len(rs); start += maxRowsPerInsert {
			chunk := rs[start:min(start+maxRowsPerInsert, len(rs))]
			args := make([]any, 0, len(chunk)*colCount)
			for _, r := range chunk {
				var op any
				if r.OperatorID != "" {
					op = r.OperatorID
				}
				args = append(args,
					r.ID, op,
					r.Options.Numbers, r.Options.SpecialChars, r.Options.Capitalization, r.Options.Substitutions,
					r.HasFirstName, r.HasLastName, r.HasBirthdate,
					r.KeywordCount, r.CandidateCount, r.Aborted, r.DurationMS, r.CreatedAt,
				)
			}
			q := `INSERT INTO public.generation_runs (` + insertCols + `) VALUES ` + dbx.Placeholders(len(chunk), colCount)
			if _, err := tx.ExecContext(ctx, q, args...); err != nil {
				return fmt.Errorf("insert generation_runs: %w", err)
			}
		}
		return nil
	})
}

func buildWhere(f Filter) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if f.OperatorID != "" {
		args = append(args, f.OperatorID)
		clauses = append(clauses, fmt.Sprintf("operator_id = $%d", len(args)))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// List returns one page of runs, newest first, plus the total match count.
func (s *Store) List(ctx context.Context, f Filter) ([]Run, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 {
		f.Size = 25
	}
	where, args := buildWhere(f)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM public.generation_runs `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT id::text, COALESCE(operator_id::text,''), opt_numbers, opt_special, opt_caps, opt_leet,
		has_first_name, has_last_name, has_birthdate,
		keyword_count, candidate_count, aborted, duration_ms, created_at
		FROM public.generation_runs %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Size, (f.Page-1)*f.Size)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Run, 0, f.Size)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.OperatorID,
			&r.Options.Numbers, &r.Options.SpecialChars, &r.Options.Capitalization, &r.Options.Substitutions,
			&r.HasFirstName, &r.HasLastName, &r.HasBirthdate,
			&r.KeywordCount, &r.CandidateCount, &r.Aborted, &r.DurationMS, &r.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// DeleteOlderThan prunes runs created before cutoff.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM public.generation_runs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
