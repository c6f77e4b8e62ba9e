package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rinna/internal/config"
	"rinna/internal/item"
	"rinna/internal/logging"
	"rinna/internal/notifications"
	"rinna/internal/store"
	"rinna/internal/workflow"
)

// Engine coordinates work-item lifecycle operations: it loads the current
// snapshot, validates the change against the state machine, persists through
// the versioned store, and fans out notifications after commit. It carries no
// state of its own; concurrency control is the store's version check.
type Engine struct {
	cfg      *config.Config
	store    *store.Store
	logger   *slog.Logger
	notifier notifications.Service
	now      func() time.Time
}

// Option configures optional Engine behavior.
type Option func(*Engine)

// WithNow overrides the clock, used in tests for deterministic timestamps.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New constructs an engine over the given store and notifier.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger, notifier notifications.Service, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(nil, nil, nil)
	}
	e := &Engine{
		cfg:      cfg,
		store:    st,
		logger:   logging.NewComponentLogger(logger, "engine"),
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Create validates the request, persists a new work item at version 0, and
// notifies the initial assignee when one is set.
func (e *Engine) Create(ctx context.Context, req item.CreateRequest) (item.WorkItem, error) {
	if req.Priority == "" {
		if priority, ok := item.ParsePriority(e.cfg.Workflow.DefaultPriority); ok {
			req.Priority = priority
		}
	}

	it, err := item.New(req, e.now())
	if err != nil {
		return item.WorkItem{}, err
	}

	if it.ParentID != "" {
		parent, err := e.store.GetByID(ctx, it.ParentID)
		if err != nil {
			return item.WorkItem{}, err
		}
		if parent == nil {
			return item.WorkItem{}, &store.NotFoundError{Kind: "work item", ID: it.ParentID}
		}
	}

	if err := e.store.Create(ctx, it); err != nil {
		return item.WorkItem{}, err
	}

	e.logger.Info("work item created",
		logging.String(logging.FieldItemID, it.ID),
		logging.String("item_type", string(it.Type)),
		logging.String(logging.FieldTo, string(it.Status)))

	if it.Assignee != "" {
		e.notify(ctx, func(ctx context.Context) error {
			return e.notifier.NotifyAssignment(ctx, it, "")
		}, it.ID, "assignment")
	}
	return it, nil
}

// Get returns the current snapshot of a work item.
func (e *Engine) Get(ctx context.Context, id string) (item.WorkItem, error) {
	return e.load(ctx, id)
}

// List returns work items matching the filter, oldest first.
func (e *Engine) List(ctx context.Context, filter store.Filter) ([]item.WorkItem, error) {
	return e.store.List(ctx, filter)
}

// Transition moves a work item to the target state. The change is validated
// against the state machine before persisting; a stale snapshot surfaces as a
// ConflictError from the store and is never retried here. Notification
// failures are logged, not propagated: the transition has already committed.
func (e *Engine) Transition(ctx context.Context, id string, target workflow.State, actor string) (item.WorkItem, error) {
	current, err := e.load(ctx, id)
	if err != nil {
		return item.WorkItem{}, err
	}

	if !workflow.IsLegal(current.Status, target) {
		return item.WorkItem{}, &workflow.InvalidTransitionError{From: current.Status, To: target}
	}

	updated := current.WithStatus(target, e.tick(current.UpdatedAt))
	saved, err := e.store.Save(ctx, updated)
	if err != nil {
		return item.WorkItem{}, err
	}

	e.logger.Info("work item transitioned",
		logging.String(logging.FieldItemID, saved.ID),
		logging.String(logging.FieldFrom, string(current.Status)),
		logging.String(logging.FieldTo, string(target)),
		logging.String(logging.FieldActor, actor),
		logging.Bool("reopen", workflow.IsReopen(current.Status, target)))

	e.notify(ctx, func(ctx context.Context) error {
		return e.notifier.NotifyTransition(ctx, saved, current.Status, target, actor)
	}, saved.ID, "transition")

	return saved, nil
}

// Assign sets or clears the assignee. A new assignee is notified; clearing or
// reasserting the same assignee is persisted silently.
func (e *Engine) Assign(ctx context.Context, id, assignee, actor string) (item.WorkItem, error) {
	current, err := e.load(ctx, id)
	if err != nil {
		return item.WorkItem{}, err
	}

	updated := current.WithAssignee(assignee, e.tick(current.UpdatedAt))
	saved, err := e.store.Save(ctx, updated)
	if err != nil {
		return item.WorkItem{}, err
	}

	e.logger.Info("work item assigned",
		logging.String(logging.FieldItemID, saved.ID),
		logging.String(logging.FieldUser, saved.Assignee),
		logging.String(logging.FieldActor, actor))

	if saved.Assignee != "" && saved.Assignee != current.Assignee {
		e.notify(ctx, func(ctx context.Context) error {
			return e.notifier.NotifyAssignment(ctx, saved, actor)
		}, saved.ID, "assignment")
	}
	return saved, nil
}

// Watch adds a user to the item's watcher set. Watching twice is a no-op on
// the set.
func (e *Engine) Watch(ctx context.Context, id, user string) (item.WorkItem, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return item.WorkItem{}, &item.ValidationError{Field: "user", Reason: "must not be empty"}
	}

	current, err := e.load(ctx, id)
	if err != nil {
		return item.WorkItem{}, err
	}
	if current.IsWatchedBy(user) {
		return current, nil
	}

	updated := current.WithWatcher(user, e.tick(current.UpdatedAt))
	return e.store.Save(ctx, updated)
}

// Reparent moves a work item under a new parent, or detaches it when
// parentID is empty. The parent must exist and must not be a descendant of
// the item; a cycle through the ancestor chain is refused.
func (e *Engine) Reparent(ctx context.Context, id, parentID string) (item.WorkItem, error) {
	current, err := e.load(ctx, id)
	if err != nil {
		return item.WorkItem{}, err
	}

	parentID = strings.TrimSpace(parentID)
	if parentID != "" {
		if parentID == id {
			return item.WorkItem{}, &item.ValidationError{Field: "parent_id", Reason: "item cannot be its own parent"}
		}
		parent, err := e.store.GetByID(ctx, parentID)
		if err != nil {
			return item.WorkItem{}, err
		}
		if parent == nil {
			return item.WorkItem{}, &store.NotFoundError{Kind: "work item", ID: parentID}
		}
		cyclic, err := e.store.HasAncestor(ctx, parentID, id)
		if err != nil {
			return item.WorkItem{}, err
		}
		if cyclic {
			return item.WorkItem{}, &item.ValidationError{
				Field:  "parent_id",
				Reason: fmt.Sprintf("%s is a descendant of %s", parentID, id),
			}
		}
	}

	updated := current.WithParent(parentID, e.tick(current.UpdatedAt))
	return e.store.Save(ctx, updated)
}

func (e *Engine) load(ctx context.Context, id string) (item.WorkItem, error) {
	it, err := e.store.GetByID(ctx, id)
	if err != nil {
		return item.WorkItem{}, err
	}
	if it == nil {
		return item.WorkItem{}, &store.NotFoundError{Kind: "work item", ID: id}
	}
	return *it, nil
}

// tick returns the current time, nudged forward when the clock has not
// advanced past the item's last update so UpdatedAt stays strictly
// increasing.
func (e *Engine) tick(prev time.Time) time.Time {
	now := e.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func (e *Engine) notify(ctx context.Context, send func(context.Context) error, itemID, kind string) {
	if err := send(ctx); err != nil {
		e.logger.Warn("notification delivery failed",
			logging.String(logging.FieldItemID, itemID),
			logging.String("notification_kind", kind),
			logging.Error(err))
	}
}
