package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// ComplaintRepository implements domain.ComplaintRepository using SQLite.
type ComplaintRepository struct {
	db *sql.DB
}

// Compile-time check: ComplaintRepository implements domain.ComplaintRepository.
var _ domain.ComplaintRepository = (*ComplaintRepository)(nil)

const complaintColumns = `id, stay_id, tenant_id, room_id, category, description, status, created_at, resolved_at`

func (r *ComplaintRepository) Create(ctx context.Context, c domain.Complaint) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO complaints (`+complaintColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.StayID, c.TenantID, c.RoomID, c.Category, c.Description,
		string(c.Status), c.CreatedAt.Format(timeFormat), nullableTime(c.ResolvedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting complaint: %w", err)
	}
	return nil
}

func (r *ComplaintRepository) GetByID(ctx context.Context, stayID, id string) (domain.Complaint, error) {
	c, err := scanComplaintFrom(r.db.QueryRowContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE stay_id = ? AND id = ?`, stayID, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Complaint{}, domain.ErrComplaintNotFound
		}
		return domain.Complaint{}, fmt.Errorf("scanning complaint: %w", err)
	}
	return c, nil
}

func (r *ComplaintRepository) List(ctx context.Context, stayID string) ([]domain.Complaint, error) {
	return r.list(ctx,
		`SELECT `+complaintColumns+` FROM complaints
		 WHERE stay_id = ? ORDER BY created_at DESC`, stayID)
}

func (r *ComplaintRepository) ListByTenant(ctx context.Context, stayID, tenantID string) ([]domain.Complaint, error) {
	return r.list(ctx,
		`SELECT `+complaintColumns+` FROM complaints
		 WHERE stay_id = ? AND tenant_id = ? ORDER BY created_at DESC`, stayID, tenantID)
}

func (r *ComplaintRepository) list(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing complaints: %w", err)
	}
	defer rows.Close()

	var complaints []domain.Complaint
	for rows.Next() {
		c, err := scanComplaintFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning complaint row: %w", err)
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (r *ComplaintRepository) Update(ctx context.Context, c domain.Complaint) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE complaints SET status = ?, resolved_at = ?
		 WHERE stay_id = ? AND id = ?`,
		string(c.Status), nullableTime(c.ResolvedAt), c.StayID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating complaint: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrComplaintNotFound
	}
	return nil
}

type complaintScanner interface {
	Scan(dest ...any) error
}

func scanComplaintFrom(row complaintScanner) (domain.Complaint, error) {
	var c domain.Complaint
	var status, createdAt string
	var resolvedAt sql.NullString

	err := row.Scan(&c.ID, &c.StayID, &c.TenantID, &c.RoomID, &c.Category,
		&c.Description, &status, &createdAt, &resolvedAt)
	if err != nil {
		return domain.Complaint{}, err
	}

	c.Status = domain.Status(status)
	if c.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return domain.Complaint{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if resolvedAt.Valid {
		t, err := time.Parse(timeFormat, resolvedAt.String)
		if err != nil {
			return domain.Complaint{}, fmt.Errorf("parsing resolved_at: %w", err)
		}
		c.ResolvedAt = &t
	}
	return c, nil
}
