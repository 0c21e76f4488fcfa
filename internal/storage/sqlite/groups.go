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

// CreateGroup persists a new group and its initial members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate IDs if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO groups (id, name, created_by, total_amount, created_at) VALUES (?, ?, ?, ?, ?)",
			group.ID, group.Name, group.CreatedBy, group.TotalAmount, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		for i := range group.Members {
			if err := insertMember(ctx, tx, group.ID, &group.Members[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return getGroup(ctx, s.db, groupID)
}

func getGroup(ctx context.Context, q queryer, groupID string) (*models.Group, error) {
	group, err := scanGroup(q.QueryRowContext(ctx,
		"SELECT id, name, created_by, total_amount, created_at FROM groups WHERE id = ?",
		groupID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	group.Members, err = listMembers(ctx, q, groupID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns every group with its members, newest first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_by, total_amount, created_at FROM groups ORDER BY created_at DESC, name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	rows.Close()

	for _, group := range groups {
		if group.Members, err = listMembers(ctx, s.db, group.ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// DeleteGroup removes a group. Members, expenses and payments cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return notFound("group", groupID)
	}
	return nil
}

// AddMember adds a member to an existing group.
func (s *SQLiteStore) AddMember(ctx context.Context, groupID string, member *models.Member) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "SELECT 1 FROM groups WHERE id = ?", groupID)
		if err != nil {
			return fmt.Errorf("failed to check group existence: %w", err)
		}
		if !ok {
			return notFound("group", groupID)
		}
		return insertMember(ctx, tx, groupID, member)
	})
}

// RemoveMember deletes a member that no expense or payment refers to.
func (s *SQLiteStore) RemoveMember(ctx context.Context, groupID, memberID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err := memberExists(ctx, tx, groupID, memberID)
		if err != nil {
			return fmt.Errorf("failed to check member existence: %w", err)
		}
		if !ok {
			return notFound("member", memberID)
		}

		inUse, err := exists(ctx, tx, `
			SELECT 1 FROM expenses WHERE group_id = ?1 AND paid_by = ?2
			UNION ALL
			SELECT 1 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
			  WHERE e.group_id = ?1 AND s.member_id = ?2
			UNION ALL
			SELECT 1 FROM payments WHERE group_id = ?1 AND (from_member = ?2 OR to_member = ?2)
			LIMIT 1`,
			groupID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to check member references: %w", err)
		}
		if inUse {
			return fmt.Errorf("member %s: %w", memberID, storage.ErrMemberInUse)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM members WHERE group_id = ? AND id = ?", groupID, memberID,
		); err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		return nil
	})
}

func insertMember(ctx context.Context, q queryer, groupID string, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	_, err := q.ExecContext(ctx,
		"INSERT INTO members (group_id, id, name, paid, owes) VALUES (?, ?, ?, ?, ?)",
		groupID, member.ID, member.Name, member.Paid, member.Owes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func listMembers(ctx context.Context, q queryer, groupID string) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, paid, owes FROM members WHERE group_id = ? ORDER BY name, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Paid, &m.Owes); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// addMemberTotals adds to a member's realized Paid/Owes totals.
func addMemberTotals(ctx context.Context, q queryer, groupID, memberID string, paid, owes money.Money) error {
	result, err := q.ExecContext(ctx,
		"UPDATE members SET paid = paid + ?, owes = owes + ? WHERE group_id = ? AND id = ?",
		paid, owes, groupID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("member", memberID)
	}
	return nil
}
