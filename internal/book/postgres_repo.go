package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var filterColumns = map[Field]string{
	FieldDeletedAt:   "b.deleted_at",
	FieldAuthorID:    "b.author_id",
	FieldPublisherID: "b.publisher_id",
	FieldGenreID:     "b.genre_id",
	FieldAvailable:   "b.available",
	FieldTitle:       "b.title",
}

// Titles sort bytewise so the order matches the in-memory store.
var sortColumns = map[SortKey]string{
	SortTitle:     `b.title COLLATE "C"`,
	SortPrice:     "b.price",
	SortCreatedAt: "b.created_at",
}

const bookColumns = `b.id, b.title, b.price::text, b.available, b.image_url,
		       b.author_id, b.genre_id, b.publisher_id,
		       b.created_at, b.updated_at, b.deleted_at`

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

// whereClause renders f with positional arguments starting at $1.
func whereClause(f Filter) (string, []any, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	for _, p := range f {
		col, ok := filterColumns[p.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field %q", p.Field)
		}
		switch p.Op {
		case OpIsNull:
			clauses = append(clauses, col+" IS NULL")
		case OpEq:
			clauses = append(clauses, fmt.Sprintf("%s = $%d", col, argn))
			args = append(args, p.Value)
			argn++
		case OpContainsFold:
			clauses = append(clauses, fmt.Sprintf(`LOWER(%s) LIKE $%d ESCAPE '\'`, col, argn))
			args = append(args, "%"+postgres.EscapeLike(p.Value.(string))+"%")
			argn++
		default:
			return "", nil, fmt.Errorf("unknown filter op %d", p.Op)
		}
	}
	return "WHERE " + strings.Join(clauses, " AND "), args, nil
}

func orderClause(s Sort) string {
	col, ok := sortColumns[s.Key]
	if !ok {
		col = sortColumns[SortTitle]
	}
	dir := "ASC"
	if s.Dir == Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, b.id %s", col, dir, dir)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (Book, error) {
	var b Book
	var price string
	if err := row.Scan(
		&b.ID, &b.Title, &price, &b.Available, &b.ImageURL,
		&b.AuthorID, &b.GenreID, &b.PublisherID,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	); err != nil {
		return Book{}, err
	}
	p, err := ParsePrice(price)
	if err != nil {
		return Book{}, fmt.Errorf("book %d has unreadable price %q: %w", b.ID, price, err)
	}
	b.Price = p
	return b, nil
}

func (r *PostgresRepo) Count(ctx context.Context, f Filter) (int, error) {
	where, args, err := whereClause(f)
	if err != nil {
		return 0, err
	}
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM books b %s", where)

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresRepo) Find(ctx context.Context, plan Plan) ([]Book, error) {
	where, args, err := whereClause(plan.Filter)
	if err != nil {
		return nil, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s
		FROM books b
		%s
		%s`,
		bookColumns, where, orderClause(plan.Sort))
	if plan.Window != nil {
		dataSQL += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, plan.Window.Limit, plan.Window.Offset)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, dataSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64, includeDeleted bool) (Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books b WHERE b.id = $1`, bookColumns)
	if !includeDeleted {
		query += " AND b.deleted_at IS NULL"
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (title, price, available, image_url, author_id, genre_id, publisher_id, created_at, updated_at)
		VALUES ($1, $2::numeric, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql,
		b.Title, b.Price.String(), b.Available, b.ImageURL,
		b.AuthorID, b.GenreID, b.PublisherID, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return ErrDanglingRelation
		}
		return err
	}
	return nil
}

// Update overwrites every column of the stored row, tombstone included.
func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const sql = `
		UPDATE books SET
			title = $2,
			price = $3::numeric,
			available = $4,
			image_url = $5,
			author_id = $6,
			genre_id = $7,
			publisher_id = $8,
			updated_at = $9,
			deleted_at = $10
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql,
		b.ID, b.Title, b.Price.String(), b.Available, b.ImageURL,
		b.AuthorID, b.GenreID, b.PublisherID, b.UpdatedAt, b.DeletedAt,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return ErrDanglingRelation
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
