package runs_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/5w1tchy/wordlist-api/internal/generator"
	"github.com/5w1tchy/wordlist-api/internal/store/runs"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func sampleRun(id, op string, at time.Time) runs.Run {
	return runs.Run{
		ID:             id,
		OperatorID:     op,
		Options:        generator.Options{Numbers: true},
		HasFirstName:   true,
		KeywordCount:   2,
		CandidateCount: 480,
		DurationMS:     3,
		CreatedAt:      at,
	}
}

func TestInsertBatch(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)INSERT INTO public\.generation_runs \(.+\) VALUES \(\$1,.+\$14\),\(\$15,.+\$28\)$`).
		WithArgs(
			"r1", "op-1", true, false, false, false, true, false, false, 2, 480, false, int64(3), at,
			"r2", nil, true, false, false, false, true, false, false, 2, 480, false, int64(3), at,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := runs.New(db).InsertBatch(t.Context(), []runs.Run{sampleRun("r1", "op-1", at), sampleRun("r2", "", at)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertBatch_RollsBack(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO public\.generation_runs`).WillReturnError(errors.New("conn reset"))
	mock.ExpectRollback()

	err := runs.New(db).InsertBatch(t.Context(), []runs.Run{sampleRun("r1", "", time.Now())})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertBatch_Empty(t *testing.T) {
	db, mock := newMock(t)
	if err := runs.New(db).InsertBatch(t.Context(), nil); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestList_FilteredByOperator(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM public.generation_runs WHERE operator_id = $1`)).
		WithArgs("op-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`FROM public\.generation_runs WHERE operator_id = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2 OFFSET \$3`).
		WithArgs("op-1", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "operator_id", "opt_numbers", "opt_special", "opt_caps", "opt_leet",
			"has_first_name", "has_last_name", "has_birthdate",
			"keyword_count", "candidate_count", "aborted", "duration_ms", "created_at",
		}).AddRow("r1", "op-1", true, false, true, false, true, true, false, 1, 99, false, int64(7), at))

	items, total, err := runs.New(db).List(t.Context(), runs.Filter{OperatorID: "op-1", Page: 2, Size: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("want 1 item, got total=%d len=%d", total, len(items))
	}
	got := items[0]
	if got.ID != "r1" || !got.Options.Capitalization || got.CandidateCount != 99 || got.DurationMS != 7 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteOlderThan(t *testing.T) {
	db, mock := newMock(t)
	cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM public.generation_runs WHERE created_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	n, err := runs.New(db).DeleteOlderThan(t.Context(), cutoff)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 12 {
		t.Fatalf("want 12, got %d", n)
	}
}
