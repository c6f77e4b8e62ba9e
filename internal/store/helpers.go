package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"rinna/internal/item"
	"rinna/internal/workflow"
)

const itemColumns = "id, title, item_type, status, priority, description, assignee, parent_id, watchers, created_at, updated_at, version"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*item.WorkItem, error) {
	var (
		id          string
		title       string
		typeStr     string
		statusStr   string
		priorityStr string
		description sql.NullString
		assignee    sql.NullString
		parentID    sql.NullString
		watchersRaw sql.NullString
		createdRaw  string
		updatedRaw  string
		version     int64
	)

	if err := scanner.Scan(
		&id,
		&title,
		&typeStr,
		&statusStr,
		&priorityStr,
		&description,
		&assignee,
		&parentID,
		&watchersRaw,
		&createdRaw,
		&updatedRaw,
		&version,
	); err != nil {
		return nil, err
	}

	watchers, err := decodeWatchers(watchersRaw.String)
	if err != nil {
		return nil, fmt.Errorf("decode watchers for %s: %w", id, err)
	}

	it := &item.WorkItem{
		ID:          id,
		Title:       title,
		Type:        item.Type(typeStr),
		Status:      workflow.State(statusStr),
		Priority:    item.Priority(priorityStr),
		Description: description.String,
		Assignee:    assignee.String,
		ParentID:    parentID.String,
		Watchers:    watchers,
		Version:     version,
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		it.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		it.UpdatedAt = updated
	}
	return it, nil
}

func encodeWatchers(watchers []string) (any, error) {
	if len(watchers) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(watchers)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func decodeWatchers(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var watchers []string
	if err := json.Unmarshal([]byte(raw), &watchers); err != nil {
		return nil, err
	}
	return watchers, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func joinClauses(clauses []string) string {
	return strings.Join(clauses, " AND ")
}
