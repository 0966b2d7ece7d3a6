package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"catalog-backend/pkg/database"
)

// pgUniqueViolation là SQLSTATE của unique constraint violation
const pgUniqueViolation = "23505"

// Pool is the subset of *pgxpool.Pool the Postgres backend needs.
type Pool interface {
	database.Beginner
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresBackend stores records in PostgreSQL tables whose column names
// match Record.Columns.
type PostgresBackend struct {
	pool Pool
}

// NewPostgresBackend creates a backend on top of pool.
func NewPostgresBackend(pool Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

// Fetch implements Backend.
func (b *PostgresBackend) Fetch(ctx context.Context, table string, columns []string, next func() []any) error {
	query := fmt.Sprintf("SELECT %s FROM %s", quoteColumns(columns), pgx.Identifier{table}.Sanitize())

	rows, err := b.pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := rows.Scan(next()...); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
	}
	return rows.Err()
}

// Apply implements Backend. All mutations run in one transaction.
func (b *PostgresBackend) Apply(ctx context.Context, mutations []Mutation) error {
	return database.WithTransaction(ctx, b.pool, func(tx pgx.Tx) error {
		for i, m := range mutations {
			if err := execMutation(ctx, tx, m); err != nil {
				return fmt.Errorf("mutation %d (%s %s): %w", i, m.Kind, m.Table, err)
			}
		}
		return nil
	})
}

func execMutation(ctx context.Context, tx pgx.Tx, m Mutation) error {
	if len(m.Columns) != len(m.Values) {
		return ErrColumnMismatch
	}

	var (
		query string
		args  []any
	)
	switch m.Kind {
	case MutationInsert:
		query, args = insertSQL(m)
	case MutationUpdate:
		query, args = updateSQL(m)
	default:
		return fmt.Errorf("unsupported mutation kind %d", m.Kind)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pgErr.ConstraintName)
		}
		return err
	}

	if m.Kind == MutationUpdate && tag.RowsAffected() == 0 {
		if m.Versioned {
			return ErrVersionConflict
		}
		return ErrRowNotFound
	}
	return nil
}

// insertSQL: INSERT INTO "t" ("a", "b") VALUES ($1, $2)
func insertSQL(m Mutation) (string, []any) {
	placeholders := make([]string, len(m.Columns))
	for i := range m.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{m.Table}.Sanitize(),
		quoteColumns(m.Columns),
		strings.Join(placeholders, ", "),
	)
	return query, m.Values
}

// updateSQL: UPDATE "t" SET "a" = $1, "b" = $2 WHERE "id" = $3 [AND "version" = $4]
func updateSQL(m Mutation) (string, []any) {
	sets := make([]string, 0, len(m.Columns))
	args := make([]any, 0, len(m.Values)+2)
	for i, col := range m.Columns {
		if col == IDColumn {
			continue
		}
		args = append(args, m.Values[i])
		sets = append(sets, fmt.Sprintf("%s = $%d", pgx.Identifier{col}.Sanitize(), len(args)))
	}

	args = append(args, m.ID)
	where := fmt.Sprintf("%s = $%d", pgx.Identifier{IDColumn}.Sanitize(), len(args))
	if m.Versioned {
		args = append(args, m.ExpectedVersion)
		where += fmt.Sprintf(" AND %s = $%d", pgx.Identifier{VersionColumn}.Sanitize(), len(args))
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		pgx.Identifier{m.Table}.Sanitize(),
		strings.Join(sets, ", "),
		where,
	)
	return query, args
}

func quoteColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}
