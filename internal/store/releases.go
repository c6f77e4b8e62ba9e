package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rinna/internal/item"
)

// CreateRelease inserts a new release. Version strings are unique across all
// releases; a duplicate fails validation.
func (s *Store) CreateRelease(ctx context.Context, rel item.Release) error {
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO releases (id, version, created_at) VALUES (?, ?, ?)`,
		rel.ID,
		rel.Version,
		rel.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &item.ValidationError{Field: "version", Reason: fmt.Sprintf("release %s already exists", rel.Version)}
		}
		return fmt.Errorf("insert release: %w", err)
	}
	return nil
}

// AddReleaseItem appends a work item to a release. The item set is
// append-only; adding an item twice is a no-op.
func (s *Store) AddReleaseItem(ctx context.Context, releaseID, itemID string) error {
	rel, err := s.GetRelease(ctx, releaseID)
	if err != nil {
		return err
	}
	if rel == nil {
		return &NotFoundError{Kind: "release", ID: releaseID}
	}
	it, err := s.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it == nil {
		return &NotFoundError{Kind: "work item", ID: itemID}
	}

	_, err = s.execWithRetry(
		ctx,
		`INSERT OR IGNORE INTO release_items (release_id, item_id, added_at) VALUES (?, ?, ?)`,
		releaseID,
		itemID,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("add release item: %w", err)
	}
	return nil
}

// GetRelease fetches a release with its item set ordered by insertion.
// A missing id yields nil.
func (s *Store) GetRelease(ctx context.Context, id string) (*item.Release, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT id, version, created_at FROM releases WHERE id = ?`, id)
	rel, err := scanRelease(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get release: %w", err)
	}
	if err := s.loadReleaseItems(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// GetReleaseByVersion fetches a release by its version string.
func (s *Store) GetReleaseByVersion(ctx context.Context, version string) (*item.Release, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT id, version, created_at FROM releases WHERE version = ?`, version)
	rel, err := scanRelease(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get release by version: %w", err)
	}
	if err := s.loadReleaseItems(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// ListReleases returns all releases ordered by creation time, item sets
// included.
func (s *Store) ListReleases(ctx context.Context) ([]item.Release, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT id, version, created_at FROM releases ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	defer rows.Close()

	var releases []*item.Release
	for rows.Next() {
		rel, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]item.Release, 0, len(releases))
	for _, rel := range releases {
		if err := s.loadReleaseItems(ctx, rel); err != nil {
			return nil, err
		}
		out = append(out, *rel)
	}
	return out, nil
}

func (s *Store) loadReleaseItems(ctx context.Context, rel *item.Release) error {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT item_id FROM release_items WHERE release_id = ? ORDER BY added_at, item_id`,
		rel.ID,
	)
	if err != nil {
		return fmt.Errorf("load release items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return err
		}
		rel.Items = append(rel.Items, itemID)
	}
	return rows.Err()
}

func scanRelease(scanner interface{ Scan(dest ...any) error }) (*item.Release, error) {
	var (
		id         string
		version    string
		createdRaw string
	)
	if err := scanner.Scan(&id, &version, &createdRaw); err != nil {
		return nil, err
	}
	rel := &item.Release{ID: id, Version: version}
	if created, err := parseTimeString(createdRaw); err == nil {
		rel.CreatedAt = created
	}
	return rel, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed: releases.version")
}
