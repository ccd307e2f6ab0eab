package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/db"
	"github.com/ameliebergh/traject/internal/domain"
)

// dependencyColumns is the canonical SELECT column list for dependencies.
const dependencyColumns = `id, source_id, target_id, state, health,
		source_planned_on, target_planned_on, is_active, removed_on, removed_by_id,
		created_at, updated_at`

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO dependencies (id, source_id, target_id, state, health,
		source_planned_on, target_planned_on, is_active, removed_on, removed_by_id,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.SourceID,
		d.TargetID,
		string(d.State),
		string(d.Health),
		nullableTimeToString(d.SourcePlannedOn),
		nullableTimeToString(d.TargetPlannedOn),
		boolToInt(d.IsActive),
		nullableTimeToString(d.RemovedOn),
		d.RemovedByID,
		d.CreatedAt.UTC().Format(timestampLayout),
		d.UpdatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

// GetByPair returns the active edge for the ordered (source, target) pair.
func (r *SQLiteDependencyRepo) GetByPair(ctx context.Context, sourceID, targetID string) (*domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies
		WHERE source_id = ? AND target_id = ? AND is_active = 1`
	return r.scanDependency(r.db.QueryRowContext(ctx, query, sourceID, targetID))
}

func (r *SQLiteDependencyRepo) ListByScope(ctx context.Context, scopeID string, includeRemoved bool) ([]*domain.Dependency, error) {
	query := `SELECT ` + aliasDependencyColumns("d") + ` FROM dependencies d
		JOIN work_items w ON d.source_id = w.id
		WHERE w.scope_id = ?`
	if !includeRemoved {
		query += ` AND d.is_active = 1`
	}
	query += ` ORDER BY d.created_at`
	rows, err := r.db.QueryContext(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies by scope: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListForItem(ctx context.Context, itemID string, includeRemoved bool) ([]*domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies
		WHERE (source_id = ? OR target_id = ?)`
	if !includeRemoved {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, itemID, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies for item: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) Update(ctx context.Context, d *domain.Dependency) error {
	query := `UPDATE dependencies SET state = ?, health = ?,
		source_planned_on = ?, target_planned_on = ?, is_active = ?,
		removed_on = ?, removed_by_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(d.State),
		string(d.Health),
		nullableTimeToString(d.SourcePlannedOn),
		nullableTimeToString(d.TargetPlannedOn),
		boolToInt(d.IsActive),
		nullableTimeToString(d.RemovedOn),
		d.RemovedByID,
		d.UpdatedAt.UTC().Format(timestampLayout),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating dependency: %w", err)
	}
	return nil
}

// scanDependency scans a single dependency from *sql.Row.
func (r *SQLiteDependencyRepo) scanDependency(row *sql.Row) (*domain.Dependency, error) {
	d, err := scanDependencyFields(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("dependency: %w", ErrNotFound)
		}
		return nil, err
	}
	return d, nil
}

// scanDependencies scans multiple dependency rows from *sql.Rows.
func (r *SQLiteDependencyRepo) scanDependencies(rows *sql.Rows) ([]*domain.Dependency, error) {
	var deps []*domain.Dependency
	for rows.Next() {
		d, err := scanDependencyFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}

func scanDependencyFields(scan func(dest ...any) error) (*domain.Dependency, error) {
	var d domain.Dependency
	var stateStr, healthStr, createdAtStr, updatedAtStr string
	var sourcePlanned, targetPlanned, removedOn, removedBy sql.NullString
	var isActive int

	err := scan(
		&d.ID, &d.SourceID, &d.TargetID, &stateStr, &healthStr,
		&sourcePlanned, &targetPlanned, &isActive, &removedOn, &removedBy,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning dependency: %w", err)
	}

	d.State = domain.DependencyState(stateStr)
	d.Health = domain.DependencyHealth(healthStr)
	d.SourcePlannedOn = parseNullableTime(sourcePlanned)
	d.TargetPlannedOn = parseNullableTime(targetPlanned)
	d.IsActive = isActive != 0
	d.RemovedOn = parseNullableTime(removedOn)
	if removedBy.Valid {
		d.RemovedByID = removedBy.String
	}

	var parseErr error
	d.CreatedAt, parseErr = time.Parse(timestampLayout, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = time.Parse(timestampLayout, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &d, nil
}

// aliasDependencyColumns prefixes the canonical column list for join queries.
func aliasDependencyColumns(alias string) string {
	return alias + `.id, ` + alias + `.source_id, ` + alias + `.target_id, ` +
		alias + `.state, ` + alias + `.health, ` +
		alias + `.source_planned_on, ` + alias + `.target_planned_on, ` +
		alias + `.is_active, ` + alias + `.removed_on, ` + alias + `.removed_by_id, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}
