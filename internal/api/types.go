package api

import (
	"time"

	"rinna/internal/item"
	"rinna/internal/notifications"
	"rinna/internal/workflow"
)

// ItemView is the transport representation of a work item. Enums are exposed
// as lowercase strings; timestamps are UTC.
type ItemView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Description string    `json:"description,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	ParentID    string    `json:"parentId,omitempty"`
	Watchers    []string  `json:"watchers,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int64     `json:"version"`
	NextStates  []string  `json:"nextStates,omitempty"`
}

// FromWorkItem converts an internal work item into its transport form,
// including the states currently reachable from it.
func FromWorkItem(it item.WorkItem) ItemView {
	next := workflow.AllowedTransitions(it.Status)
	nextStates := make([]string, 0, len(next))
	for _, state := range next {
		nextStates = append(nextStates, string(state))
	}
	return ItemView{
		ID:          it.ID,
		Title:       it.Title,
		Type:        string(it.Type),
		Status:      string(it.Status),
		Priority:    string(it.Priority),
		Description: it.Description,
		Assignee:    it.Assignee,
		ParentID:    it.ParentID,
		Watchers:    append([]string(nil), it.Watchers...),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
		Version:     it.Version,
		NextStates:  nextStates,
	}
}

// ReleaseView is the transport representation of a release.
type ReleaseView struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Items     []string  `json:"items,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromRelease converts an internal release into its transport form.
func FromRelease(rel item.Release) ReleaseView {
	return ReleaseView{
		ID:        rel.ID,
		Version:   rel.Version,
		Items:     append([]string(nil), rel.Items...),
		CreatedAt: rel.CreatedAt,
	}
}

// NotificationView is the transport representation of a notification.
type NotificationView struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	Source        string    `json:"source,omitempty"`
	TargetUser    string    `json:"targetUser"`
	RelatedItemID string    `json:"relatedItemId,omitempty"`
	Priority      string    `json:"priority"`
	CreatedAt     time.Time `json:"createdAt"`
	Read          bool      `json:"read"`
}

// FromNotification converts an internal notification into its transport form.
func FromNotification(n notifications.Notification) NotificationView {
	return NotificationView{
		ID:            n.ID,
		Type:          string(n.Type),
		Message:       n.Message,
		Source:        n.Source,
		TargetUser:    n.TargetUser,
		RelatedItemID: n.RelatedItemID,
		Priority:      string(n.Priority),
		CreatedAt:     n.CreatedAt,
		Read:          n.Read,
	}
}

// ItemViews converts a slice of work items.
func ItemViews(items []item.WorkItem) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, FromWorkItem(it))
	}
	return out
}

// ReleaseViews converts a slice of releases.
func ReleaseViews(releases []item.Release) []ReleaseView {
	out := make([]ReleaseView, 0, len(releases))
	for _, rel := range releases {
		out = append(out, FromRelease(rel))
	}
	return out
}

// NotificationViews converts a slice of notifications.
func NotificationViews(entries []notifications.Notification) []NotificationView {
	out := make([]NotificationView, 0, len(entries))
	for _, n := range entries {
		out = append(out, FromNotification(n))
	}
	return out
}
