package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"flatplan/internal/layout"
	"flatplan/internal/storage"
)

// GetLayout fetches one layout document, page array included.
func (s *Storage) GetLayout(ctx context.Context, id string) (*storage.Layout, error) {
	const op = "storage.mysql.GetLayout"

	query := `
		SELECT id, account_id, publication_name, issue_name, publication_date, modified_date, pages
		FROM layouts
		WHERE id = ?
	`

	doc := &storage.Layout{}

	var pagesJSON string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.AccountID,
		&doc.PublicationName,
		&doc.IssueName,
		&doc.PublicationDate,
		&doc.ModifiedDate,
		&pagesJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: layout id=%s: %w", op, id, storage.ErrLayoutNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal([]byte(pagesJSON), &doc.Pages); err != nil {
		return nil, fmt.Errorf("%s: parsing pages JSON: %w", op, err)
	}
	if doc.Pages == nil {
		doc.Pages = []layout.PageRecord{}
	}

	return doc, nil
}

// GetLayoutsByAccount returns all layouts owned by one account, page
// arrays included so summaries can be computed without a second round
// trip.
func (s *Storage) GetLayoutsByAccount(ctx context.Context, accountID string) ([]*storage.Layout, error) {
	const op = "storage.mysql.GetLayoutsByAccount"

	stmt := `
		SELECT id, account_id, publication_name, issue_name, publication_date, modified_date, pages
		FROM layouts
		WHERE account_id = ?
		ORDER BY modified_date DESC
	`

	rows, err := s.db.QueryContext(ctx, stmt, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanLayouts(op, rows)
}

// GetAllLayouts returns every stored layout, for the admin view.
func (s *Storage) GetAllLayouts(ctx context.Context) ([]*storage.Layout, error) {
	const op = "storage.mysql.GetAllLayouts"

	stmt := `
		SELECT id, account_id, publication_name, issue_name, publication_date, modified_date, pages
		FROM layouts
		ORDER BY modified_date DESC
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanLayouts(op, rows)
}

func scanLayouts(op string, rows *sql.Rows) ([]*storage.Layout, error) {
	var layouts []*storage.Layout

	for rows.Next() {
		doc := &storage.Layout{}

		var pagesJSON string
		err := rows.Scan(&doc.ID, &doc.AccountID, &doc.PublicationName, &doc.IssueName,
			&doc.PublicationDate, &doc.ModifiedDate, &pagesJSON)
		if err != nil {
			return nil, fmt.Errorf("%s: scanning row: %w", op, err)
		}

		if err := json.Unmarshal([]byte(pagesJSON), &doc.Pages); err != nil {
			return nil, fmt.Errorf("%s: parsing pages JSON: %w", op, err)
		}
		if doc.Pages == nil {
			doc.Pages = []layout.PageRecord{}
		}

		layouts = append(layouts, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterating rows: %w", op, err)
	}

	return layouts, nil
}

// CreateLayout inserts a new layout and returns its generated id.
func (s *Storage) CreateLayout(ctx context.Context, res storage.NewLayout) (string, error) {
	const op = "storage.mysql.CreateLayout"

	if res.Pages == nil {
		res.Pages = []layout.PageRecord{}
	}
	pagesJSON, err := json.Marshal(res.Pages)
	if err != nil {
		return "", fmt.Errorf("%s: serializing pages: %w", op, err)
	}

	id := uuid.NewString()

	stmt := `INSERT INTO layouts (id, account_id, publication_name, issue_name, publication_date, modified_date, pages)
	         VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, stmt, id, res.AccountID, res.PublicationName,
		res.IssueName, res.PublicationDate, time.Now().UTC(), string(pagesJSON))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateLayoutPages replaces the whole page array of a layout. The save
// round trip is last-write-wins at document granularity.
func (s *Storage) UpdateLayoutPages(ctx context.Context, id string, pages []layout.PageRecord) error {
	const op = "storage.mysql.UpdateLayoutPages"

	if pages == nil {
		pages = []layout.PageRecord{}
	}
	pagesJSON, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("%s: serializing pages: %w", op, err)
	}

	stmt := `UPDATE layouts SET pages=?, modified_date=? WHERE id=?`

	res, err := s.db.ExecContext(ctx, stmt, string(pagesJSON), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// RowsAffected is zero both for a missing row and for a byte-identical
	// update, so a no-op save needs the existence check to tell them apart.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.checkLayoutExists(ctx, op, id)
	}

	return nil
}

func (s *Storage) checkLayoutExists(ctx context.Context, op, id string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM layouts WHERE id=?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: layout id=%s: %w", op, id, storage.ErrLayoutNotFound)
	}
	return nil
}

// UpdateLayoutMetadata updates the issue metadata of a layout.
func (s *Storage) UpdateLayoutMetadata(ctx context.Context, id string, update storage.LayoutMetadata) error {
	const op = "storage.mysql.UpdateLayoutMetadata"

	stmt := `UPDATE layouts SET publication_name=?, issue_name=?, publication_date=?, modified_date=? WHERE id=?`

	res, err := s.db.ExecContext(ctx, stmt, update.PublicationName, update.IssueName,
		update.PublicationDate, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.checkLayoutExists(ctx, op, id)
	}

	return nil
}

// DeleteLayout removes a layout permanently.
func (s *Storage) DeleteLayout(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteLayout"

	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: layout id=%s: %w", op, id, storage.ErrLayoutNotFound)
	}

	return nil
}
