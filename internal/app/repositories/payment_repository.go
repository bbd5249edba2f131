package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/dberrors"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// PaymentRepository handles payment database operations. Payments are
// append-only: there is no update or delete.
type PaymentRepository struct {
	db db.Querier
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(q db.Querier) *PaymentRepository {
	return &PaymentRepository{
		db: q,
	}
}

// WithTx returns a copy bound to tx
func (r *PaymentRepository) WithTx(tx pgx.Tx) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

// Create inserts a payment and fills in its generated id
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (student_id, amount, payment_date, method)
		VALUES ($1, $2, $3, $4)
		RETURNING payment_id
	`

	err := r.db.QueryRow(ctx, query, p.StudentID, p.Amount, p.PaymentDate, p.Method).Scan(&p.ID)
	if err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrStudentNotFound
		case dberrors.IsCheckViolation(err):
			return apperrors.NewValidationError("Amount must be positive and method one of Cash, UPI, Card, Other.")
		}
		logger.Error().Err(err).Msg("Error creating payment")
		return wrapError("create payment", err)
	}
	return nil
}

// ExistsForStudent reports whether any payment references the student
func (r *PaymentRepository) ExistsForStudent(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payments WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, wrapError("check student payments", err)
	}
	return exists, nil
}

// ListHistory retrieves every payment, newest first, joined to the payer's
// name. Payments whose student no longer exists are kept with a nil name.
func (r *PaymentRepository) ListHistory(ctx context.Context) ([]*models.PaymentHistoryEntry, error) {
	query := `
		SELECT p.payment_id, p.student_id, s.name, p.amount, p.payment_date, p.method
		FROM payments p
		LEFT JOIN students s ON p.student_id = s.student_id
		ORDER BY p.payment_date DESC, p.payment_id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, wrapError("list payments", err)
	}
	defer rows.Close()

	entries := make([]*models.PaymentHistoryEntry, 0)
	for rows.Next() {
		var e models.PaymentHistoryEntry
		if err := rows.Scan(&e.PaymentID, &e.StudentID, &e.StudentName, &e.Amount, &e.PaymentDate, &e.Method); err != nil {
			return nil, wrapError("scan payment", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate payments", err)
	}
	return entries, nil
}
