// Package auth_repo provides PostgreSQL persistence for user accounts.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/auth"
	"factura/internal/infrastructure/storage/postgres"
)

var userCols = postgres.ExtractDBColumns[auth.User]()

// UserRepo implements auth.Repository.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *UserRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new user. A unique violation on email yields
// DUPLICATE_ENTRY.
func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	data := postgres.StructToMap(u)

	filtered := make(map[string]any, len(userCols))
	for _, col := range userCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.Builder().
		Insert("users").
		SetMap(filtered)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("user", "email", u.Email).WithCause(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByEmail loads a user by login email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, email)
}

// GetByID loads a user by id.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": userID}, userID.String())
}

func (r *UserRepo) getOne(ctx context.Context, cond squirrel.Eq, ref string) (*auth.User, error) {
	q := r.Builder().
		Select(userCols...).
		From("users").
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	u := &auth.User{}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", ref)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

var _ auth.Repository = (*UserRepo)(nil)
