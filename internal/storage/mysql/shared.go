package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flatplan/internal/storage"
)

// CreateSharedAccess stores an access-code grant for a layout.
func (s *Storage) CreateSharedAccess(ctx context.Context, access storage.SharedAccess) error {
	const op = "storage.mysql.CreateSharedAccess"

	stmt := `INSERT INTO shared_access (layout_id, email, access_code, created_at)
	         VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, stmt, access.LayoutID, access.Email, access.AccessCode, access.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetSharedAccess verifies an access code against a layout.
func (s *Storage) GetSharedAccess(ctx context.Context, layoutID, accessCode string) (*storage.SharedAccess, error) {
	const op = "storage.mysql.GetSharedAccess"

	query := `
		SELECT layout_id, email, access_code, created_at
		FROM shared_access
		WHERE layout_id = ? AND access_code = ?
	`

	access := &storage.SharedAccess{}
	err := s.db.QueryRowContext(ctx, query, layoutID, accessCode).Scan(
		&access.LayoutID,
		&access.Email,
		&access.AccessCode,
		&access.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: layout id=%s: %w", op, layoutID, storage.ErrSharedAccessNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return access, nil
}
