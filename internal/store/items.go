package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rinna/internal/item"
	"rinna/internal/workflow"
)

// Create inserts a new work item at version 0.
func (s *Store) Create(ctx context.Context, it item.WorkItem) error {
	watchers, err := encodeWatchers(it.Watchers)
	if err != nil {
		return fmt.Errorf("encode watchers: %w", err)
	}
	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO work_items (
            id, title, item_type, status, priority, description,
            assignee, parent_id, watchers, created_at, updated_at, version
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		it.ID,
		it.Title,
		string(it.Type),
		string(it.Status),
		string(it.Priority),
		nullableString(it.Description),
		nullableString(it.Assignee),
		nullableString(it.ParentID),
		watchers,
		it.CreatedAt.UTC().Format(time.RFC3339Nano),
		it.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert work item: %w", err)
	}
	return nil
}

// Save persists a mutated copy of an existing work item. The caller's
// Version must match the stored row; the write itself advances the stored
// version by exactly one and the returned item reflects the new version.
// A mismatch yields ConflictError with the currently stored version.
func (s *Store) Save(ctx context.Context, it item.WorkItem) (item.WorkItem, error) {
	watchers, err := encodeWatchers(it.Watchers)
	if err != nil {
		return item.WorkItem{}, fmt.Errorf("encode watchers: %w", err)
	}

	res, err := s.execWithRetry(
		ctx,
		`UPDATE work_items
         SET title = ?, item_type = ?, status = ?, priority = ?, description = ?,
             assignee = ?, parent_id = ?, watchers = ?, updated_at = ?, version = version + 1
         WHERE id = ? AND version = ?`,
		it.Title,
		string(it.Type),
		string(it.Status),
		string(it.Priority),
		nullableString(it.Description),
		nullableString(it.Assignee),
		nullableString(it.ParentID),
		watchers,
		it.UpdatedAt.UTC().Format(time.RFC3339Nano),
		it.ID,
		it.Version,
	)
	if err != nil {
		return item.WorkItem{}, fmt.Errorf("update work item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return item.WorkItem{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var stored int64
		row := s.db.QueryRowContext(ensureContext(ctx), `SELECT version FROM work_items WHERE id = ?`, it.ID)
		if scanErr := row.Scan(&stored); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return item.WorkItem{}, &NotFoundError{Kind: "work item", ID: it.ID}
			}
			return item.WorkItem{}, fmt.Errorf("read stored version: %w", scanErr)
		}
		return item.WorkItem{}, &ConflictError{ID: it.ID, Expected: it.Version, Stored: stored}
	}

	saved := it
	saved.Version = it.Version + 1
	return saved, nil
}

// GetByID fetches a work item by identifier. A missing id yields nil.
func (s *Store) GetByID(ctx context.Context, id string) (*item.WorkItem, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+itemColumns+` FROM work_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get work item: %w", err)
	}
	return it, nil
}

// Filter narrows List results. Zero-valued fields match everything.
type Filter struct {
	Status   workflow.State
	Type     item.Type
	Assignee string
	ParentID string
}

// List returns work items matching the filter ordered by creation time.
func (s *Store) List(ctx context.Context, filter Filter) ([]item.WorkItem, error) {
	query := `SELECT ` + itemColumns + ` FROM work_items`
	var (
		clauses []string
		args    []any
	)
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Type != "" {
		clauses = append(clauses, "item_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Assignee != "" {
		clauses = append(clauses, "assignee = ?")
		args = append(args, filter.Assignee)
	}
	if filter.ParentID != "" {
		clauses = append(clauses, "parent_id = ?")
		args = append(args, filter.ParentID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + joinClauses(clauses)
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	defer rows.Close()

	var items []item.WorkItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// Remove deletes a work item by identifier.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete work item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats returns a count of work items grouped by status.
func (s *Store) Stats(ctx context.Context) (map[workflow.State]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT status, COUNT(1) FROM work_items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("work item stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[workflow.State]int)
	for rows.Next() {
		var status workflow.State
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// HasAncestor walks the parent chain upward from startID and reports whether
// candidateID appears in it. The walk tolerates corrupt data by refusing to
// revisit an id.
func (s *Store) HasAncestor(ctx context.Context, startID, candidateID string) (bool, error) {
	ctx = ensureContext(ctx)
	visited := map[string]struct{}{}
	current := startID
	for current != "" {
		if current == candidateID {
			return true, nil
		}
		if _, seen := visited[current]; seen {
			return false, fmt.Errorf("parent chain of %s contains a cycle at %s", startID, current)
		}
		visited[current] = struct{}{}

		var parent sql.NullString
		row := s.db.QueryRowContext(ctx, `SELECT parent_id FROM work_items WHERE id = ?`, current)
		if err := row.Scan(&parent); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, fmt.Errorf("read parent of %s: %w", current, err)
		}
		current = parent.String
	}
	return false, nil
}
