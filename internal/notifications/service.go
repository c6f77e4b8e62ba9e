package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rinna/internal/config"
	"rinna/internal/item"
	"rinna/internal/logging"
	"rinna/internal/workflow"
)

// Service defines the notification surface exposed to lifecycle components.
type Service interface {
	NotifyAssignment(ctx context.Context, it item.WorkItem, actor string) error
	NotifyTransition(ctx context.Context, it item.WorkItem, from, to workflow.State, actor string) error
	NotifySystem(ctx context.Context, user, message string) error
}

// NewService builds a notification service backed by the durable per-user
// logs. When notifications are disabled in configuration, a noop
// implementation is returned.
func NewService(cfg *config.Config, store *Store, logger *slog.Logger) Service {
	if cfg == nil || store == nil || !cfg.Notifications.Enabled {
		return noopService{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &logService{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "notifications"),
	}
}

type logService struct {
	cfg    *config.Config
	store  *Store
	logger *slog.Logger
}

func (s *logService) NotifyAssignment(ctx context.Context, it item.WorkItem, actor string) error {
	if !s.cfg.Notifications.Assignment {
		return nil
	}
	assignee := strings.TrimSpace(it.Assignee)
	if assignee == "" {
		return nil
	}
	if assignee == actor && !s.cfg.Workflow.NotifyActor {
		return nil
	}
	n := Notification{
		Type:          TypeAssignment,
		Message:       fmt.Sprintf("You were assigned %q", it.Title),
		Source:        sourceFor(actor),
		RelatedItemID: it.ID,
		Priority:      PriorityMedium,
	}
	return s.deliver([]string{assignee}, n)
}

func (s *logService) NotifyTransition(ctx context.Context, it item.WorkItem, from, to workflow.State, actor string) error {
	kind, priority := classifyTransition(to)
	if !s.enabled(kind) {
		return nil
	}

	recipients := it.Recipients(actor)
	if s.cfg.Workflow.NotifyActor && strings.TrimSpace(actor) != "" {
		recipients = append(recipients, actor)
	}
	if len(recipients) == 0 {
		return nil
	}

	n := Notification{
		Type:          kind,
		Message:       transitionMessage(it, from, to),
		Source:        sourceFor(actor),
		RelatedItemID: it.ID,
		Priority:      priority,
	}
	return s.deliver(recipients, n)
}

func (s *logService) NotifySystem(ctx context.Context, user, message string) error {
	if !s.cfg.Notifications.System {
		return nil
	}
	n := Notification{
		Type:     TypeSystem,
		Message:  message,
		Source:   "rinna",
		Priority: PriorityMedium,
	}
	return s.deliver([]string{user}, n)
}

func (s *logService) enabled(kind Type) bool {
	switch kind {
	case TypeCompletion:
		return s.cfg.Notifications.Completion
	case TypeAttention:
		return s.cfg.Notifications.Attention
	default:
		return s.cfg.Notifications.Update
	}
}

// deliver appends one copy per recipient. A failed recipient does not block
// the rest; failures are joined so the caller can log them.
func (s *logService) deliver(recipients []string, n Notification) error {
	var errs []error
	for _, recipient := range recipients {
		copyN := n
		copyN.TargetUser = recipient
		if _, err := s.store.Append(copyN); err != nil {
			errs = append(errs, fmt.Errorf("notify %q: %w", recipient, err))
			continue
		}
		s.logger.Debug("notification delivered",
			logging.String(logging.FieldUser, recipient),
			logging.String("notification_type", string(n.Type)),
			logging.String(logging.FieldItemID, n.RelatedItemID))
	}
	return errors.Join(errs...)
}

func classifyTransition(to workflow.State) (Type, Priority) {
	switch to {
	case workflow.StateDone:
		return TypeCompletion, PriorityHigh
	case workflow.StateBlocked:
		return TypeAttention, PriorityHigh
	default:
		return TypeUpdate, PriorityMedium
	}
}

func transitionMessage(it item.WorkItem, from, to workflow.State) string {
	switch to {
	case workflow.StateDone:
		return fmt.Sprintf("%q is done", it.Title)
	case workflow.StateBlocked:
		return fmt.Sprintf("%q is blocked and needs attention", it.Title)
	default:
		return fmt.Sprintf("%q moved from %s to %s", it.Title, from, to)
	}
}

func sourceFor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "rinna"
	}
	return actor
}

type noopService struct{}

func (noopService) NotifyAssignment(context.Context, item.WorkItem, string) error {
	return nil
}

func (noopService) NotifyTransition(context.Context, item.WorkItem, workflow.State, workflow.State, string) error {
	return nil
}

func (noopService) NotifySystem(context.Context, string, string) error {
	return nil
}
