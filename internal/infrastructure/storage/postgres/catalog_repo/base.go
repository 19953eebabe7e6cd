// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories. Every query is scoped by owner_id; a row belonging to
// another owner behaves exactly like a missing row.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain"
	"factura/internal/infrastructure/storage/postgres"
)

// BaseRepo provides common owner-scoped CRUD operations for catalog
// entities. Embed this in specific catalog repositories.
type BaseRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	entityName string
	selectCols []string
	searchCols []string
	newFn      func() T
}

// NewBaseRepo creates a new base catalog repository.
func NewBaseRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	entityName string,
	selectCols []string,
	searchCols []string,
	newFn func() T,
) *BaseRepo[T] {
	return &BaseRepo[T]{
		txm:        txm,
		tableName:  tableName,
		entityName: entityName,
		selectCols: selectCols,
		searchCols: searchCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate(r.entityName, "unique field", pgErr.ConstraintName).
				WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// GetByID retrieves entity by ID within the owner's data.
func (r *BaseRepo[T]) GetByID(ctx context.Context, ownerID, entityID id.ID) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.entityName, entityID.String())
		}
		return entity, fmt.Errorf("get %s by id: %w", r.tableName, err)
	}

	return entity, nil
}

// Update modifies an existing entity with optimistic locking.
func (r *BaseRepo[T]) Update(ctx context.Context, ownerID id.ID, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "version", "owner_id":
			// immutable; version is managed below
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, ownerID, entity)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound(r.entityName, fmt.Sprintf("%v", entityID))
		}
		return apperror.NewConflict("entity was modified concurrently").
			WithDetail("entity", r.entityName).
			WithDetail("id", entityID)
	}

	if v, ok := any(entity).(interface{ SetVersion(int) }); ok {
		v.SetVersion(version + 1)
	}

	return nil
}

// Delete performs physical removal from the database.
func (r *BaseRepo[T]) Delete(ctx context.Context, ownerID, entityID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"owner_id": ownerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		// Foreign key violation (23503): referenced by invoice lines
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("cannot delete: referenced by existing documents").
				WithDetail("entity", r.entityName).
				WithDetail("id", entityID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID.String())
	}

	return nil
}

// List retrieves the owner's entities with filtering and pagination.
func (r *BaseRepo[T]) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"owner_id": ownerID})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	// Count total before pagination
	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count %s: %w", r.tableName, err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", r.tableName, err)
	}

	return result, nil
}

func (r *BaseRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

func (r *BaseRepo[T]) exists(ctx context.Context, ownerID id.ID, entity T) (bool, error) {
	data := postgres.StructToMap(entity)

	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": data["id"]}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}

func (r *BaseRepo[T]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "name ASC", nil
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}

	return field + " " + direction, nil
}
