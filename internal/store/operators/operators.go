package operators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/5w1tchy/wordlist-api/internal/store/dbx"
)

var ErrNotFound = errors.New("operator not found")

const (
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

type Operator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	TokenVersion int       `json:"-"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"created_at"`
}

type Store struct{ db dbx.DB }

func New(db dbx.DB) *Store { return &Store{db: db} }

const selectCols = `id::text, email, password_hash, role, token_version, disabled, created_at`

func scan(row interface{ Scan(...any) error }) (Operator, error) {
	var o Operator
	err := row.Scan(&o.ID, &o.Email, &o.PasswordHash, &o.Role, &o.TokenVersion, &o.Disabled, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Operator{}, ErrNotFound
	}
	return o, err
}

// Create inserts an operator with a fresh id. email is lowercased.
func (s *Store) Create(ctx context.Context, email, passwordHash, role string) (Operator, error) {
	if role != RoleOperator && role != RoleAdmin {
		return Operator{}, fmt.Errorf("unknown role %q", role)
	}
	const q = `
		INSERT INTO public.operators (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + selectCols
	return scan(s.db.QueryRowContext(ctx, q, uuid.NewString(), strings.ToLower(strings.TrimSpace(email)), passwordHash, role))
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Operator, error) {
	q := `SELECT ` + selectCols + ` FROM public.operators WHERE email = $1 LIMIT 1`
	return scan(s.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(email))))
}

func (s *Store) FindByID(ctx context.Context, id string) (Operator, error) {
	q := `SELECT ` + selectCols + ` FROM public.operators WHERE id = $1 LIMIT 1`
	return scan(s.db.QueryRowContext(ctx, q, id))
}

// TokenState returns what the auth middleware checks on every request.
func (s *Store) TokenState(ctx context.Context, id string) (version int, role string, disabled bool, err error) {
	const q = `SELECT token_version, role, disabled FROM public.operators WHERE id = $1`
	err = s.db.QueryRowContext(ctx, q, id).Scan(&version, &role, &disabled)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	}
	return version, role, disabled, err
}

// UpdatePasswordHash swaps the hash in place (used for transparent rehash).
func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	const q = `UPDATE public.operators SET password_hash = $1, updated_at = now() WHERE id = $2`
	return s.execOne(ctx, q, hash, id)
}

// RevokeTokens bumps token_version, invalidating every issued token.
func (s *Store) RevokeTokens(ctx context.Context, id string) error {
	const q = `UPDATE public.operators SET token_version = token_version + 1, updated_at = now() WHERE id = $1`
	return s.execOne(ctx, q, id)
}

func (s *Store) execOne(ctx context.Context, q string, args ...any) error {
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
