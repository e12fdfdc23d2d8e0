// Package sqlitestore implements the domain repositories on SQLite.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store owns the database connection and hands out repositories.
// Every committed write is announced on the publisher.
type Store struct {
	db  *sql.DB
	pub domain.ChangePublisher
}

// Open opens (creating if needed) the database at path and migrates it.
// A nil publisher disables change notifications.
func Open(ctx context.Context, path string, pub domain.ChangePublisher) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps one writer and one shared in-memory database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			closeDB(db)
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := runMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, pub: pub}, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Boards returns the board repository.
func (s *Store) Boards() *BoardRepository { return &BoardRepository{s} }

// Labels returns the label repository.
func (s *Store) Labels() *LabelRepository { return &LabelRepository{s} }

// Refs returns the board-label ref repository.
func (s *Store) Refs() *RefRepository { return &RefRepository{s} }

// Tasks returns the task repository.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s} }

// Subtasks returns the subtask repository.
func (s *Store) Subtasks() *SubtaskRepository { return &SubtaskRepository{s} }

// notify announces topics when n rows changed.
func (s *Store) notify(n int, topics ...domain.Topic) {
	if s.pub == nil || n == 0 {
		return
	}
	for _, t := range topics {
		s.pub.Publish(t)
	}
}

// withTx executes fn within a transaction, rolling back on error.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// errRowMissing aborts an updateEach transaction.
var errRowMissing = errors.New("row missing")

// execEach runs query once per argument list in one transaction and
// returns the total rows affected.
func (s *Store) execEach(ctx context.Context, query string, argLists [][]any) (int, error) {
	return s.runEach(ctx, query, argLists, false)
}

// updateEach is execEach for updates keyed by id. Every statement must
// affect one row; otherwise the transaction rolls back and it returns 0.
func (s *Store) updateEach(ctx context.Context, query string, argLists [][]any) (int, error) {
	n, err := s.runEach(ctx, query, argLists, true)
	if errors.Is(err, errRowMissing) {
		return 0, nil
	}
	return n, err
}

func (s *Store) runEach(ctx context.Context, query string, argLists [][]any, strict bool) (int, error) {
	if len(argLists) == 0 {
		return 0, nil
	}
	total := 0
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, args := range argLists {
			res, err := stmt.ExecContext(ctx, args...)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if strict && n == 0 {
				return errRowMissing
			}
			total += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// removeIDs deletes rows of table by id and returns the rows affected.
// Dependent rows go with them through ON DELETE CASCADE.
func (s *Store) removeIDs(ctx context.Context, table string, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", table, placeholders(len(ids)))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// insert runs an INSERT and returns the new row id.
func (s *Store) insert(ctx context.Context, query string, args ...any) (int, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// isForeignKeyViolation reports whether err is a failed FOREIGN KEY
// constraint, which on insert means the parent row is gone.
func isForeignKeyViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(serr.Error(), "FOREIGN KEY")
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and scans every row.
func queryAll[T any](ctx context.Context, db *sql.DB, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// queryOne scans a single row, returning the zero value when there is none.
func queryOne[T any](ctx context.Context, db *sql.DB, scan func(scanner) (T, error), query string, args ...any) (T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, nil
	}
	return v, err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// Nullable column conversions. Timestamps are stored as Unix milliseconds.

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func fromNullMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromMillis(v.Int64)
	return &t
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
