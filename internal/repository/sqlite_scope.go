package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/db"
	"github.com/ameliebergh/traject/internal/domain"
)

// SQLiteScopeRepo implements ScopeRepo using a SQLite database.
type SQLiteScopeRepo struct {
	db db.DBTX
}

// NewSQLiteScopeRepo creates a new SQLiteScopeRepo.
func NewSQLiteScopeRepo(conn db.DBTX) *SQLiteScopeRepo {
	return &SQLiteScopeRepo{db: conn}
}

func (r *SQLiteScopeRepo) Create(ctx context.Context, s *domain.Scope) error {
	query := `INSERT INTO scopes (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.CreatedAt.UTC().Format(timestampLayout),
		s.UpdatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting scope: %w", err)
	}
	return nil
}

func (r *SQLiteScopeRepo) GetByID(ctx context.Context, id string) (*domain.Scope, error) {
	query := `SELECT id, name, created_at, updated_at FROM scopes WHERE id = ?`
	return r.scanScope(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteScopeRepo) List(ctx context.Context) ([]*domain.Scope, error) {
	query := `SELECT id, name, created_at, updated_at FROM scopes ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing scopes: %w", err)
	}
	defer rows.Close()

	var scopes []*domain.Scope
	for rows.Next() {
		s, err := scanScopeRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scopes: %w", err)
	}
	return scopes, nil
}

func (r *SQLiteScopeRepo) Update(ctx context.Context, s *domain.Scope) error {
	query := `UPDATE scopes SET name = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.UpdatedAt.UTC().Format(timestampLayout),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating scope: %w", err)
	}
	return nil
}

func (r *SQLiteScopeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scopes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting scope: %w", err)
	}
	return nil
}

func (r *SQLiteScopeRepo) scanScope(row *sql.Row) (*domain.Scope, error) {
	s, err := scanScopeRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scope: %w", ErrNotFound)
	}
	return s, err
}

func scanScopeRow(scan func(dest ...any) error) (*domain.Scope, error) {
	var s domain.Scope
	var createdAtStr, updatedAtStr string

	if err := scan(&s.ID, &s.Name, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning scope: %w", err)
	}

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(timestampLayout, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(timestampLayout, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &s, nil
}
