package reference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var tables = map[Kind]string{
	KindAuthor:    "authors",
	KindGenre:     "genres",
	KindPublisher: "publishers",
}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func tableFor(kind Kind) (string, error) {
	table, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("unknown reference kind %q", kind)
	}
	return table, nil
}

func scanEntities(kind Kind, rows pgx.Rows) ([]Entity, error) {
	defer rows.Close()
	var out []Entity
	for rows.Next() {
		e := Entity{Kind: kind}
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, e *Entity) error {
	table, err := tableFor(e.Kind)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(`
		INSERT INTO %s (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id`, table)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, sql, e.Name, e.CreatedAt, e.UpdatedAt).Scan(&e.ID); err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("create %s: %w", e.Kind, err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, kind Kind, id int64) (Entity, error) {
	table, err := tableFor(kind)
	if err != nil {
		return Entity{}, err
	}
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s WHERE id = $1`, table)

	e := Entity{Kind: kind}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err = r.db.QueryRow(timeoutCtx, query, id).Scan(&e.ID, &e.Name, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entity{}, NotFound(kind)
		}
		return Entity{}, fmt.Errorf("get %s: %w", kind, err)
	}
	return e, nil
}

func (r *PostgresRepo) GetMany(ctx context.Context, kind Kind, ids []int64) ([]Entity, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s WHERE id = ANY($1)`, table)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get %s batch: %w", kind, err)
	}
	return scanEntities(kind, rows)
}

func (r *PostgresRepo) List(ctx context.Context, kind Kind) ([]Entity, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s ORDER BY name ASC, id ASC`, table)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return scanEntities(kind, rows)
}

func (r *PostgresRepo) Update(ctx context.Context, e *Entity) error {
	table, err := tableFor(e.Kind)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(`UPDATE %s SET name = $2, updated_at = $3 WHERE id = $1`, table)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql, e.ID, e.Name, e.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("update %s: %w", e.Kind, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound(e.Kind)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, kind Kind, id int64) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql, id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return ErrInUse
		}
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound(kind)
	}
	return nil
}
