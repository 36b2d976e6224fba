package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store owns the SQLite connection and hands out the per-aggregate
// repositories.
type Store struct {
	db         *sql.DB
	actors     *ActorRepository
	rooms      *RoomRepository
	payments   *PaymentRepository
	complaints *ComplaintRepository
}

// New opens a SQLite database, runs migrations, and returns a ready store.
func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys (off by default in SQLite).
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// One writer at a time keeps assignment transactions serialized and
	// avoids SQLITE_BUSY when the job queue shares the database.
	db.SetMaxOpenConns(1)

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and
// returns a ready store. Use this when the *sql.DB has been
// pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*Store, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		actors:     &ActorRepository{db: db},
		rooms:      &RoomRepository{db: db},
		payments:   &PaymentRepository{db: db},
		complaints: &ComplaintRepository{db: db},
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for use by other
// adapters (e.g., river).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Actors returns the actor repository.
func (s *Store) Actors() *ActorRepository { return s.actors }

// Rooms returns the room repository.
func (s *Store) Rooms() *RoomRepository { return s.rooms }

// Payments returns the payment repository.
func (s *Store) Payments() *PaymentRepository { return s.payments }

// Complaints returns the complaint repository.
func (s *Store) Complaints() *ComplaintRepository { return s.complaints }

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = "2006-01-02T15:04:05Z"

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint
// violation on the given column.
func isUniqueViolation(err error, column string) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), column)
}
