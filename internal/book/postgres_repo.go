package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresRepo(db *sql.DB, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	const query = `
		SELECT id, title, author, genre, year, created_at, updated_at
		FROM books
		ORDER BY id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (Book, error) {
	const query = `
		SELECT id, title, author, genre, year, created_at, updated_at
		FROM books
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRowContext(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("find book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
		INSERT INTO books (title, author, genre, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRowContext(timeoutCtx, query, b.Title, b.Author, nullString(b.Genre), b.Year).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapWriteError("create book", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const query = `
		UPDATE books
		SET title = $1, author = $2, genre = $3, year = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRowContext(timeoutCtx, query, b.Title, b.Author, nullString(b.Genre), b.Year, b.ID).
		Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return mapWriteError(fmt.Sprintf("update book %d", b.ID), err)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete book %d: %w", id, ErrServer)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (Book, error) {
	var (
		b     Book
		genre sql.NullString
		year  sql.NullInt64
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &genre, &year, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return Book{}, err
	}
	b.Genre = genre.String
	if year.Valid {
		y := int(year.Int64)
		b.Year = &y
	}
	return b, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// columnField maps constraint names to form fields.
var columnField = map[string]string{
	"books_title_not_blank":  "title",
	"books_author_not_blank": "author",
}

// mapWriteError turns constraint violations and out-of-range values into a
// *ValidationError and wraps everything else.
func mapWriteError(op string, err error) error {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch pg.Code {
	case "22003": // numeric_value_out_of_range; year is the only numeric column
		return &ValidationError{Fields: []FieldError{{
			Field:   "year",
			Message: `Please provide a valid number for "Year"`,
		}}}
	case "23502", "23514": // not_null_violation, check_violation
	default:
		return fmt.Errorf("%s: %w", op, err)
	}

	field := columnField[pg.ConstraintName]
	if field == "" {
		field = pg.ColumnName
	}
	if field == "" {
		field = "book"
	}
	label := strings.ToUpper(field[:1]) + field[1:]
	return &ValidationError{Fields: []FieldError{{
		Field:   field,
		Message: fmt.Sprintf("Please provide a value for %q", label),
	}}}
}
