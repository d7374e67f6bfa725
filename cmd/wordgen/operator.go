package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/5w1tchy/wordlist-api/internal/config"
	"github.com/5w1tchy/wordlist-api/internal/repository/sqlconnect"
	"github.com/5w1tchy/wordlist-api/internal/security/password"
	"github.com/5w1tchy/wordlist-api/internal/store/operators"
)

// operatorStore is what the operator commands need from the database.
type operatorStore interface {
	Create(ctx context.Context, email, passwordHash, role string) (operators.Operator, error)
	FindByEmail(ctx context.Context, email string) (operators.Operator, error)
	RevokeTokens(ctx context.Context, id string) error
}

// openStore is swapped in tests.
var openStore = func(ctx context.Context) (operatorStore, func() error, error) {
	cfg := config.Load()
	db, err := sqlconnect.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return operators.New(db), db.Close, nil
}

func newOperatorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Manage API operators",
	}
	cmd.AddCommand(newOperatorCreateCmd(), newOperatorRevokeCmd())
	return cmd
}

func newOperatorCreateCmd() *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator; the password is read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" {
				return errors.New("--email is required")
			}
			if role != operators.RoleOperator && role != operators.RoleAdmin {
				return fmt.Errorf("--role must be %q or %q", operators.RoleOperator, operators.RoleAdmin)
			}

			pw, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			local, _, _ := strings.Cut(email, "@")
			pw, warn, err := password.Validate(pw, local)
			if err != nil {
				return fmt.Errorf("password must be at least %d characters", password.MinLen)
			}
			if warn != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s (score %d, %s)\n", warn.Message, warn.Score, warn.Label)
			}
			phc, err := password.NewHasher(password.LoadParamsFromEnv()).Hash(pw)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			sto, closeFn, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			op, err := sto.Create(ctx, email, phc, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s operator %s (%s)\n", op.Role, op.Email, op.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "operator email")
	cmd.Flags().StringVar(&role, "role", operators.RoleOperator, "operator or admin")
	return cmd
}

func newOperatorRevokeCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Invalidate every access token issued to an operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			sto, closeFn, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			op, err := sto.FindByEmail(ctx, email)
			if err != nil {
				return err
			}
			if err := sto.RevokeTokens(ctx, op.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked tokens for %s\n", op.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "operator email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password on stdin")
	}
	return line, nil
}
