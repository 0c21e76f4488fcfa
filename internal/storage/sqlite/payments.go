package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
)

const paymentColumns = "id, group_id, from_member, to_member, amount, note, created_at"

// RecordPayment persists a payment and bumps the payer/receiver totals in one
// transaction. Totals are incremented in place, so concurrent payments never
// overwrite each other.
func (s *SQLiteStore) RecordPayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkMembers(ctx, tx, payment.GroupID, payment.From, payment.To); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO payments ("+paymentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			payment.ID, payment.GroupID, payment.From, payment.To,
			payment.Amount, nullString(payment.Note), payment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		if err := addMemberTotals(ctx, tx, payment.GroupID, payment.From, payment.Amount, 0); err != nil {
			return err
		}
		return addMemberTotals(ctx, tx, payment.GroupID, payment.To, 0, payment.Amount)
	})
}

// GetPayment retrieves a payment by ID.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := scanPayment(s.db.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id = ?",
		paymentID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("payment", paymentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// ListPayments retrieves all payments of a group, newest first.
func (s *SQLiteStore) ListPayments(ctx context.Context, groupID string) ([]*models.Payment, error) {
	return listPayments(ctx, s.db, groupID)
}

func listPayments(ctx context.Context, q queryer, groupID string) ([]*models.Payment, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE group_id = ? ORDER BY created_at DESC, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by group: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	p := &models.Payment{}
	var note sql.NullString
	if err := row.Scan(&p.ID, &p.GroupID, &p.From, &p.To, &p.Amount, &note, &p.CreatedAt); err != nil {
		return nil, err
	}
	if note.Valid {
		p.Note = note.String
	}
	return p, nil
}
