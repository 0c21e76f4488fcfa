package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
)

const expenseColumns = "id, group_id, amount, description, category, paid_by, split_type, created_at"

// CreateExpense persists a new expense with its split and adds the amount
// to the group total.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if err := expense.Validate(); err != nil {
		return fmt.Errorf("invalid expense: %w", err)
	}

	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.Participants = models.SplitParticipants(expense.Split)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkMembers(ctx, tx, expense.GroupID, expenseMembers(expense)...); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			expense.ID, expense.GroupID, expense.Amount, expense.Description,
			expense.Category, expense.PaidBy, expense.SplitType, expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		if err := insertSplit(ctx, tx, expense.ID, expense.Split); err != nil {
			return err
		}
		return addToGroupTotal(ctx, tx, expense.GroupID, expense.Amount)
	})
}

// GetExpense retrieves an expense by ID, including its split.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return getExpense(ctx, s.db, expenseID)
}

func getExpense(ctx context.Context, q queryer, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(q.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?",
		expenseID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("expense", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.Split, err = getSplit(ctx, q, expenseID); err != nil {
		return nil, err
	}
	expense.Participants = models.SplitParticipants(expense.Split)
	return expense, nil
}

// UpdateExpense applies a patch. A patch carrying a split replaces the stored
// split as a whole; the group total moves by the amount delta.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expenseID string, patch storage.ExpensePatch) (*models.Expense, error) {
	var updated *models.Expense
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		expense, err := getExpense(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		oldAmount := expense.Amount

		if err := patch.Apply(expense); err != nil {
			return fmt.Errorf("invalid expense: %w", err)
		}
		if err := checkMembers(ctx, tx, expense.GroupID, expenseMembers(expense)...); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE expenses SET amount = ?, description = ?, category = ?, paid_by = ?, split_type = ?
			 WHERE id = ?`,
			expense.Amount, expense.Description, expense.Category, expense.PaidBy, expense.SplitType,
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}

		if patch.Split != nil {
			if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expense.ID); err != nil {
				return fmt.Errorf("failed to clear split: %w", err)
			}
			if err := insertSplit(ctx, tx, expense.ID, expense.Split); err != nil {
				return err
			}
		}

		if delta := expense.Amount - oldAmount; delta != 0 {
			if err := addToGroupTotal(ctx, tx, expense.GroupID, delta); err != nil {
				return err
			}
		}

		updated = expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExpense removes an expense and subtracts it from the group total.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var groupID string
		var amount money.Money
		err := tx.QueryRowContext(ctx,
			"SELECT group_id, amount FROM expenses WHERE id = ?", expenseID,
		).Scan(&groupID, &amount)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("expense", expenseID)
		}
		if err != nil {
			return fmt.Errorf("failed to check expense existence: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return addToGroupTotal(ctx, tx, groupID, -amount)
	})
}

// ListExpenses retrieves all expenses of a group, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, groupID)
}

func listExpenses(ctx context.Context, q queryer, groupID string) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Split = make(map[string]money.Money)
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	// One query for all splits instead of one per expense
	splitRows, err := q.QueryContext(ctx,
		`SELECT s.expense_id, s.member_id, s.share
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.group_id = ?`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID, memberID string
		var share money.Money
		if err := splitRows.Scan(&expenseID, &memberID, &share); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Split[memberID] = share
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	for _, e := range expenses {
		e.Participants = models.SplitParticipants(e.Split)
	}
	return expenses, nil
}

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	e := &models.Expense{}
	err := row.Scan(&e.ID, &e.GroupID, &e.Amount, &e.Description,
		&e.Category, &e.PaidBy, &e.SplitType, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func getSplit(ctx context.Context, q queryer, expenseID string) (map[string]money.Money, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT member_id, share FROM expense_splits WHERE expense_id = ?",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	defer rows.Close()

	split := make(map[string]money.Money)
	for rows.Next() {
		var memberID string
		var share money.Money
		if err := rows.Scan(&memberID, &share); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split[memberID] = share
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split: %w", err)
	}
	return split, nil
}

func insertSplit(ctx context.Context, q queryer, expenseID string, split map[string]money.Money) error {
	for _, memberID := range models.SplitParticipants(split) {
		_, err := q.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_id, share) VALUES (?, ?, ?)",
			expenseID, memberID, split[memberID],
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

func addToGroupTotal(ctx context.Context, q queryer, groupID string, delta money.Money) error {
	result, err := q.ExecContext(ctx,
		"UPDATE groups SET total_amount = total_amount + ? WHERE id = ?",
		delta, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group total: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("group", groupID)
	}
	return nil
}

// expenseMembers lists the payer followed by every split key.
func expenseMembers(e *models.Expense) []string {
	return append([]string{e.PaidBy}, models.SplitParticipants(e.Split)...)
}
