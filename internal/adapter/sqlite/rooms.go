package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// RoomRepository implements domain.RoomRepository using SQLite.
//
// AssignTenant and RemoveTenant run inside a single transaction and
// re-validate occupancy against the rooms row's version column, so a
// concurrent assignment against the same room leaves exactly one winner.
type RoomRepository struct {
	db *sql.DB
}

// Compile-time check: RoomRepository implements domain.RoomRepository.
var _ domain.RoomRepository = (*RoomRepository)(nil)

const roomColumns = `id, stay_id, room_number, floor, capacity, occupied_count, rent_amount, version, created_at, updated_at`

func (r *RoomRepository) Create(ctx context.Context, room domain.Room) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (`+roomColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		room.ID, room.StayID, room.RoomNumber, room.Floor, room.Capacity,
		room.OccupiedCount, room.RentAmount, room.Version,
		room.CreatedAt.Format(timeFormat),
		room.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err, "rooms.room_number") {
			return &domain.RoomNumberConflictError{RoomNumber: room.RoomNumber}
		}
		return fmt.Errorf("inserting room: %w", err)
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, stayID, id string) (domain.Room, error) {
	room, err := scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE stay_id = ? AND id = ?`, stayID, id,
	))
	if err != nil {
		return domain.Room{}, err
	}

	room.Tenants, err = r.roomTenants(ctx, r.db, room.ID)
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (r *RoomRepository) List(ctx context.Context, stayID string) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms
		 WHERE stay_id = ? ORDER BY floor, room_number`, stayID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoomFromRows(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range rooms {
		rooms[i].Tenants, err = r.roomTenants(ctx, r.db, rooms[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

func (r *RoomRepository) AssignTenant(ctx context.Context, stayID, roomID, tenantID string) (domain.Room, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Room{}, fmt.Errorf("beginning assignment: %w", err)
	}
	defer tx.Rollback()

	room, err := scanRoom(tx.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE stay_id = ? AND id = ?`, stayID, roomID,
	))
	if err != nil {
		return domain.Room{}, err
	}

	var currentRoom sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT room_id FROM users WHERE stay_id = ? AND id = ?`, stayID, tenantID,
	).Scan(&currentRoom)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Room{}, domain.ErrActorNotFound
		}
		return domain.Room{}, fmt.Errorf("reading tenant assignment: %w", err)
	}
	if currentRoom.Valid {
		return domain.Room{}, &domain.TenantAssignedError{TenantID: tenantID}
	}

	if room.OccupiedCount >= room.Capacity {
		return domain.Room{}, &domain.RoomFullError{RoomNumber: room.RoomNumber, Capacity: room.Capacity}
	}

	now := time.Now().UTC().Format(timeFormat)

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET room_id = ?, updated_at = ?
		 WHERE stay_id = ? AND id = ? AND room_id IS NULL`,
		roomID, now, stayID, tenantID,
	)
	if err != nil {
		return domain.Room{}, fmt.Errorf("assigning tenant: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.Room{}, &domain.TenantAssignedError{TenantID: tenantID}
	}

	// Version check: if another transaction touched the room since the
	// read above, back off and let the caller retry.
	result, err = tx.ExecContext(ctx,
		`UPDATE rooms SET occupied_count = occupied_count + 1, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ? AND occupied_count < capacity`,
		now, roomID, room.Version,
	)
	if err != nil {
		return domain.Room{}, fmt.Errorf("updating occupancy: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.Room{}, domain.ErrVersionConflict
	}

	if err := tx.Commit(); err != nil {
		return domain.Room{}, fmt.Errorf("committing assignment: %w", err)
	}

	return r.GetByID(ctx, stayID, roomID)
}

func (r *RoomRepository) RemoveTenant(ctx context.Context, stayID, tenantID string) (domain.Room, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Room{}, fmt.Errorf("beginning removal: %w", err)
	}
	defer tx.Rollback()

	var currentRoom sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT room_id FROM users WHERE stay_id = ? AND id = ?`, stayID, tenantID,
	).Scan(&currentRoom)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Room{}, domain.ErrActorNotFound
		}
		return domain.Room{}, fmt.Errorf("reading tenant assignment: %w", err)
	}
	if !currentRoom.Valid {
		return domain.Room{}, &domain.TenantNotAssignedError{TenantID: tenantID}
	}
	roomID := currentRoom.String

	now := time.Now().UTC().Format(timeFormat)

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET room_id = NULL, updated_at = ?
		 WHERE stay_id = ? AND id = ?`, now, stayID, tenantID,
	); err != nil {
		return domain.Room{}, fmt.Errorf("removing tenant: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rooms SET occupied_count = occupied_count - 1, version = version + 1, updated_at = ?
		 WHERE id = ?`, now, roomID,
	); err != nil {
		return domain.Room{}, fmt.Errorf("updating occupancy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Room{}, fmt.Errorf("committing removal: %w", err)
	}

	return r.GetByID(ctx, stayID, roomID)
}

func (r *RoomRepository) Delete(ctx context.Context, stayID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	room, err := scanRoom(tx.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE stay_id = ? AND id = ?`, stayID, id,
	))
	if err != nil {
		return err
	}
	if room.OccupiedCount > 0 {
		return &domain.RoomOccupiedError{RoomNumber: room.RoomNumber, OccupiedCount: room.OccupiedCount}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	return tx.Commit()
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *RoomRepository) roomTenants(ctx context.Context, q querier, roomID string) ([]domain.TenantRef, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, username, email FROM users WHERE room_id = ? ORDER BY username`, roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing room tenants: %w", err)
	}
	defer rows.Close()

	var refs []domain.TenantRef
	for rows.Next() {
		var ref domain.TenantRef
		if err := rows.Scan(&ref.ID, &ref.Username, &ref.Email); err != nil {
			return nil, fmt.Errorf("scanning tenant ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

type roomScanner interface {
	Scan(dest ...any) error
}

func scanRoomFrom(row roomScanner) (domain.Room, error) {
	var room domain.Room
	var createdAt, updatedAt string

	err := row.Scan(&room.ID, &room.StayID, &room.RoomNumber, &room.Floor,
		&room.Capacity, &room.OccupiedCount, &room.RentAmount, &room.Version,
		&createdAt, &updatedAt)
	if err != nil {
		return domain.Room{}, err
	}

	if room.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return domain.Room{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if room.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return domain.Room{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return room, nil
}

func scanRoom(row *sql.Row) (domain.Room, error) {
	room, err := scanRoomFrom(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("scanning room: %w", err)
	}
	return room, nil
}

func scanRoomFromRows(rows *sql.Rows) (domain.Room, error) {
	room, err := scanRoomFrom(rows)
	if err != nil {
		return domain.Room{}, fmt.Errorf("scanning room row: %w", err)
	}
	return room, nil
}
