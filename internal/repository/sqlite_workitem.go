package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/db"
	"github.com/ameliebergh/traject/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `id, scope_id, parent_id, order_index, title, status,
		effort, created_at, done_at, updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo using a SQLite database.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

// NewSQLiteWorkItemRepo creates a new SQLiteWorkItemRepo.
func NewSQLiteWorkItemRepo(conn db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: conn}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	query := `INSERT INTO work_items (id, scope_id, parent_id, order_index, title, status,
		effort, created_at, done_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.ScopeID,
		nullableStrToValue(w.ParentID),
		w.OrderIndex,
		w.Title,
		string(w.Status),
		nullableIntToValue(w.Effort),
		w.CreatedAt.UTC().Format(timestampLayout),
		nullableTimeToString(w.DoneAt),
		w.UpdatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkItemRepo) ListByScope(ctx context.Context, scopeID string) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE scope_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("listing work items by scope: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteWorkItemRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE parent_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child work items: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteWorkItemRepo) Update(ctx context.Context, w *domain.WorkItem) error {
	query := `UPDATE work_items SET scope_id = ?, parent_id = ?, order_index = ?, title = ?,
		status = ?, effort = ?, done_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		w.ScopeID,
		nullableStrToValue(w.ParentID),
		w.OrderIndex,
		w.Title,
		string(w.Status),
		nullableIntToValue(w.Effort),
		nullableTimeToString(w.DoneAt),
		w.UpdatedAt.UTC().Format(timestampLayout),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting work item: %w", err)
	}
	return nil
}

// scanItem scans a single work item from *sql.Row.
func (r *SQLiteWorkItemRepo) scanItem(row *sql.Row) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var parentID, doneAt sql.NullString
	var effort sql.NullInt64
	var statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&w.ID, &w.ScopeID, &parentID, &w.OrderIndex, &w.Title, &statusStr,
		&effort, &createdAtStr, &doneAt, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}
	return buildItem(&w, parentID, statusStr, effort, createdAtStr, doneAt, updatedAtStr)
}

// scanItems scans multiple work item rows from *sql.Rows.
func (r *SQLiteWorkItemRepo) scanItems(rows *sql.Rows) ([]*domain.WorkItem, error) {
	var items []*domain.WorkItem
	for rows.Next() {
		var w domain.WorkItem
		var parentID, doneAt sql.NullString
		var effort sql.NullInt64
		var statusStr, createdAtStr, updatedAtStr string

		err := rows.Scan(
			&w.ID, &w.ScopeID, &parentID, &w.OrderIndex, &w.Title, &statusStr,
			&effort, &createdAtStr, &doneAt, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning work item: %w", err)
		}
		item, err := buildItem(&w, parentID, statusStr, effort, createdAtStr, doneAt, updatedAtStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}

// buildItem finishes a scanned row: nullable columns and timestamp parsing.
func buildItem(
	w *domain.WorkItem,
	parentID sql.NullString,
	statusStr string,
	effort sql.NullInt64,
	createdAtStr string,
	doneAt sql.NullString,
	updatedAtStr string,
) (*domain.WorkItem, error) {
	if parentID.Valid {
		p := parentID.String
		w.ParentID = &p
	}
	w.Status = domain.StatusCategory(statusStr)
	if effort.Valid {
		e := int(effort.Int64)
		w.Effort = &e
	}

	var parseErr error
	w.CreatedAt, parseErr = time.Parse(timestampLayout, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.DoneAt = parseNullableTime(doneAt)
	w.UpdatedAt, parseErr = time.Parse(timestampLayout, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return w, nil
}
