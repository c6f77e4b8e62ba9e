package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"rinna/internal/config"
	"rinna/internal/item"
	"rinna/internal/store"
	"rinna/internal/workflow"
)

// CreateItemRequest carries the string-typed fields accepted at the CLI edge.
type CreateItemRequest struct {
	Title       string
	Type        string
	Description string
	Priority    string
	Assignee    string
	ParentID    string
}

// CreateItem validates and persists a new work item.
func CreateItem(ctx context.Context, cfg *config.Config, logger *slog.Logger, req CreateItemRequest) (ItemView, error) {
	itemType, ok := item.ParseType(req.Type)
	if !ok {
		return ItemView{}, &item.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", req.Type)}
	}
	var priority item.Priority
	if strings.TrimSpace(req.Priority) != "" {
		priority, ok = item.ParsePriority(req.Priority)
		if !ok {
			return ItemView{}, &item.ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", req.Priority)}
		}
	}

	sess, err := openSession(cfg, logger)
	if err != nil {
		return ItemView{}, err
	}
	defer sess.Close()

	created, err := sess.engine.Create(ctx, item.CreateRequest{
		Title:       req.Title,
		Type:        itemType,
		Description: req.Description,
		Priority:    priority,
		Assignee:    req.Assignee,
		ParentID:    req.ParentID,
	})
	if err != nil {
		return ItemView{}, err
	}
	return FromWorkItem(created), nil
}

// GetItem returns the current snapshot of one work item.
func GetItem(ctx context.Context, cfg *config.Config, logger *slog.Logger, id string) (ItemView, error) {
	sess, err := openSession(cfg, logger)
	if err != nil {
		return ItemView{}, err
	}
	defer sess.Close()

	it, err := sess.engine.Get(ctx, id)
	if err != nil {
		return ItemView{}, err
	}
	return FromWorkItem(it), nil
}

// ItemFilter narrows ListItems output. Empty fields match everything.
type ItemFilter struct {
	Status   string
	Type     string
	Assignee string
	ParentID string
}

// ListItems returns work items matching the filter, oldest first.
func ListItems(ctx context.Context, cfg *config.Config, logger *slog.Logger, filter ItemFilter) ([]ItemView, error) {
	storeFilter := store.Filter{
		Assignee: filter.Assignee,
		ParentID: filter.ParentID,
	}
	if strings.TrimSpace(filter.Status) != "" {
		state, ok := workflow.ParseState(filter.Status)
		if !ok {
			return nil, &item.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", filter.Status)}
		}
		storeFilter.Status = state
	}
	if strings.TrimSpace(filter.Type) != "" {
		itemType, ok := item.ParseType(filter.Type)
		if !ok {
			return nil, &item.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", filter.Type)}
		}
		storeFilter.Type = itemType
	}

	sess, err := openSession(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	items, err := sess.engine.List(ctx, storeFilter)
	if err != nil {
		return nil, err
	}
	return ItemViews(items), nil
}

// TransitionItem moves a work item to the target state on behalf of the actor.
func TransitionItem(ctx context.Context, cfg *config.Config, logger *slog.Logger, id, target, actor string) (ItemView, error) {
	state, ok := workflow.ParseState(target)
	if !ok {
		return ItemView{}, &item.ValidationError{Field: "state", Reason: fmt.Sprintf("unknown state %q", target)}
	}

	sess, err := openSession(cfg, logger)
	if err != nil {
		return ItemView{}, err
	}
	defer sess.Close()

	moved, err := sess.engine.Transition(ctx, id, state, actor)
	if err != nil {
		return ItemView{}, err
	}
	return FromWorkItem(moved), nil
}

// AssignItem sets or clears the assignee on behalf of the actor.
func AssignItem(ctx context.Context, cfg *config.Config, logger *slog.Logger, id, assignee, actor string) (ItemView, error) {
	sess, err := openSession(cfg, logger)
	if err != nil {
		return ItemView{}, err
	}
	defer sess.Close()

	assigned, err := sess.engine.Assign(ctx, id, assignee, actor)
	if err != nil {
		return ItemView{}, err
	}
	return FromWorkItem(assigned), nil
}

// WatchItem adds a user to the item's watcher set.
func WatchItem(ctx context.Context, cfg *config.Config, logger *slog.Logger, id, user string) (ItemView, error) {
	sess, err := openSession(cfg, logger)
	if err != nil {
		return ItemView{}, err
	}
	defer sess.Close()

	watched, err := sess.engine.Watch(ctx, id, user)
	if err != nil {
		return ItemView{}, err
	}
	return FromWorkItem(watched), nil
}

// ReparentItem moves a work item under a new parent; empty parent detaches.
func ReparentItem(ctx context.Context, cfg *config.Config, logger *slog.Logger, id, parentID string) (ItemView, error) {
	sess, err := openSession(cfg, logger)
	if err != nil {
		return ItemView{}, err
	}
	defer sess.Close()

	moved, err := sess.engine.Reparent(ctx, id, parentID)
	if err != nil {
		return ItemView{}, err
	}
	return FromWorkItem(moved), nil
}

// ItemStats returns the count of work items per lifecycle state.
func ItemStats(ctx context.Context, cfg *config.Config, logger *slog.Logger) (map[string]int, error) {
	sess, err := openSession(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	stats, err := sess.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(stats))
	for state, count := range stats {
		out[string(state)] = count
	}
	return out, nil
}
