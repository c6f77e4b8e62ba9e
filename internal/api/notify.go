package api

import (
	"context"
	"time"

	"rinna/internal/config"
)

// ListNotifications returns a user's notifications newest first.
func ListNotifications(ctx context.Context, cfg *config.Config, user string, unreadOnly bool) ([]NotificationView, error) {
	st, err := openNotifications(cfg)
	if err != nil {
		return nil, err
	}
	entries, err := st.List(user, unreadOnly)
	if err != nil {
		return nil, err
	}
	return NotificationViews(entries), nil
}

// MarkNotificationRead marks one notification read and reports whether it
// exists.
func MarkNotificationRead(ctx context.Context, cfg *config.Config, user, id string) (bool, error) {
	st, err := openNotifications(cfg)
	if err != nil {
		return false, err
	}
	return st.MarkRead(user, id)
}

// MarkAllNotificationsRead marks every unread notification read and returns
// how many changed state.
func MarkAllNotificationsRead(ctx context.Context, cfg *config.Config, user string) (int, error) {
	st, err := openNotifications(cfg)
	if err != nil {
		return 0, err
	}
	return st.MarkAllRead(user)
}

// PruneNotifications removes notifications older than the given age. An empty
// user prunes every user's log. When onlyRead is set, unread entries survive
// regardless of age. Returns the total number pruned.
func PruneNotifications(ctx context.Context, cfg *config.Config, user string, olderThan time.Duration, onlyRead bool) (int, error) {
	st, err := openNotifications(cfg)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().UTC().Add(-olderThan)

	if user != "" {
		return st.Prune(user, cutoff, onlyRead)
	}

	users, err := st.Users()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, owner := range users {
		removed, err := st.Prune(owner, cutoff, onlyRead)
		if err != nil {
			return total, err
		}
		total += removed
	}
	return total, nil
}

// UnreadSummary is the short notification digest shown by the CLI.
type UnreadSummary struct {
	User    string             `json:"user"`
	Total   int                `json:"total"`
	Preview []NotificationView `json:"preview,omitempty"`
}

// NotificationSummary returns the unread count plus a preview capped by the
// configured display limit.
func NotificationSummary(ctx context.Context, cfg *config.Config, user string) (UnreadSummary, error) {
	st, err := openNotifications(cfg)
	if err != nil {
		return UnreadSummary{}, err
	}
	unread, err := st.List(user, true)
	if err != nil {
		return UnreadSummary{}, err
	}

	limit := cfg.Notifications.MaxUnreadDisplay
	if limit <= 0 || limit > len(unread) {
		limit = len(unread)
	}
	return UnreadSummary{
		User:    user,
		Total:   len(unread),
		Preview: NotificationViews(unread[:limit]),
	}, nil
}
