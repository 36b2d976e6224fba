package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// ActorRepository implements domain.ActorRepository using SQLite.
type ActorRepository struct {
	db *sql.DB
}

// Compile-time check: ActorRepository implements domain.ActorRepository.
var _ domain.ActorRepository = (*ActorRepository)(nil)

const actorColumns = `id, stay_id, username, email, name, password_hash, role, room_id, created_at, updated_at`

func (r *ActorRepository) Create(ctx context.Context, a domain.Actor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+actorColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.StayID, a.Username, a.Email, a.Name, a.PasswordHash, string(a.Role),
		nullableString(a.RoomID),
		a.CreatedAt.Format(timeFormat),
		a.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return &domain.EmailConflictError{Email: a.Email}
		}
		return fmt.Errorf("inserting actor: %w", err)
	}
	return nil
}

func (r *ActorRepository) GetByID(ctx context.Context, stayID, id string) (domain.Actor, error) {
	return scanActor(r.db.QueryRowContext(ctx,
		`SELECT `+actorColumns+` FROM users WHERE stay_id = ? AND id = ?`, stayID, id,
	))
}

func (r *ActorRepository) GetByEmail(ctx context.Context, stayID, email string) (domain.Actor, error) {
	return scanActor(r.db.QueryRowContext(ctx,
		`SELECT `+actorColumns+` FROM users WHERE stay_id = ? AND email = ?`, stayID, email,
	))
}

func (r *ActorRepository) ListTenants(ctx context.Context, stayID string) ([]domain.Actor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+actorColumns+` FROM users
		 WHERE stay_id = ? AND role = ? ORDER BY username`, stayID, string(domain.RoleTenant),
	)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var actors []domain.Actor
	for rows.Next() {
		a, err := scanActorFromRows(rows)
		if err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

func (r *ActorRepository) CountByStay(ctx context.Context, stayID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE stay_id = ?`, stayID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting actors: %w", err)
	}
	return count, nil
}

func (r *ActorRepository) UpdateProfile(ctx context.Context, a domain.Actor) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, updated_at = ?
		 WHERE stay_id = ? AND id = ?`,
		a.Name, a.Email, time.Now().UTC().Format(timeFormat), a.StayID, a.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return &domain.EmailConflictError{Email: a.Email}
		}
		return fmt.Errorf("updating profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrActorNotFound
	}
	return nil
}

type actorScanner interface {
	Scan(dest ...any) error
}

func scanActorFrom(row actorScanner) (domain.Actor, error) {
	var a domain.Actor
	var role, createdAt, updatedAt string
	var roomID sql.NullString

	err := row.Scan(&a.ID, &a.StayID, &a.Username, &a.Email, &a.Name,
		&a.PasswordHash, &role, &roomID, &createdAt, &updatedAt)
	if err != nil {
		return domain.Actor{}, err
	}

	a.Role = domain.Role(role)
	if roomID.Valid {
		a.RoomID = &roomID.String
	}
	if a.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return domain.Actor{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return domain.Actor{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return a, nil
}

func scanActor(row *sql.Row) (domain.Actor, error) {
	a, err := scanActorFrom(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Actor{}, domain.ErrActorNotFound
		}
		return domain.Actor{}, fmt.Errorf("scanning actor: %w", err)
	}
	return a, nil
}

func scanActorFromRows(rows *sql.Rows) (domain.Actor, error) {
	a, err := scanActorFrom(rows)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("scanning actor row: %w", err)
	}
	return a, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
