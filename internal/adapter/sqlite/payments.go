package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// PaymentRepository implements domain.PaymentRepository using SQLite.
type PaymentRepository struct {
	db *sql.DB
}

// Compile-time check: PaymentRepository implements domain.PaymentRepository.
var _ domain.PaymentRepository = (*PaymentRepository)(nil)

const paymentColumns = `id, stay_id, tenant_id, room_id, amount, month, year, status, paid_at, provider_ref, created_at`

func (r *PaymentRepository) Create(ctx context.Context, p domain.Payment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.StayID, p.TenantID, p.RoomID, p.Amount, p.Month, p.Year,
		string(p.Status), nullableTime(p.PaidAt), p.ProviderRef,
		p.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err, "payments.tenant_id") {
			return &domain.DuplicatePeriodError{TenantID: p.TenantID, Month: p.Month, Year: p.Year}
		}
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, stayID, id string) (domain.Payment, error) {
	p, err := scanPaymentFrom(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE stay_id = ? AND id = ?`, stayID, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Payment{}, domain.ErrPaymentNotFound
		}
		return domain.Payment{}, fmt.Errorf("scanning payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) List(ctx context.Context, stayID string) ([]domain.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE stay_id = ? ORDER BY year DESC, month DESC`, stayID)
}

func (r *PaymentRepository) ListByTenant(ctx context.Context, stayID, tenantID string) ([]domain.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE stay_id = ? AND tenant_id = ? ORDER BY year DESC, month DESC`, stayID, tenantID)
}

func (r *PaymentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPaymentFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) ExistsForPeriod(ctx context.Context, tenantID string, month, year int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE tenant_id = ? AND month = ? AND year = ?`,
		tenantID, month, year,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking billing period: %w", err)
	}
	return count > 0, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p domain.Payment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = ?, paid_at = ?, provider_ref = ?
		 WHERE stay_id = ? AND id = ?`,
		string(p.Status), nullableTime(p.PaidAt), p.ProviderRef, p.StayID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, stayID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM payments WHERE stay_id = ? AND id = ?`, stayID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

type paymentScanner interface {
	Scan(dest ...any) error
}

func scanPaymentFrom(row paymentScanner) (domain.Payment, error) {
	var p domain.Payment
	var status, createdAt string
	var paidAt sql.NullString

	err := row.Scan(&p.ID, &p.StayID, &p.TenantID, &p.RoomID, &p.Amount,
		&p.Month, &p.Year, &status, &paidAt, &p.ProviderRef, &createdAt)
	if err != nil {
		return domain.Payment{}, err
	}

	p.Status = domain.Status(status)
	if paidAt.Valid {
		t, err := time.Parse(timeFormat, paidAt.String)
		if err != nil {
			return domain.Payment{}, fmt.Errorf("parsing paid_at: %w", err)
		}
		p.PaidAt = &t
	}
	if p.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return domain.Payment{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return p, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeFormat)
}
