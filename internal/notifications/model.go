package notifications

import (
	"time"
)

// Type categorizes a notification for delivery switches and display.
type Type string

const (
	TypeAssignment Type = "assignment"
	TypeUpdate     Type = "update"
	TypeComment    Type = "comment"
	TypeDeadline   Type = "deadline"
	TypeMention    Type = "mention"
	TypeSecurity   Type = "security"
	TypeSystem     Type = "system"
	TypeCompletion Type = "completion"
	TypeAttention  Type = "attention"
)

// Priority is the display urgency of a notification. It is independent of
// work-item priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Notification is one entry in a user's durable notification log.
type Notification struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Message       string    `json:"message"`
	Source        string    `json:"source"`
	TargetUser    string    `json:"target_user"`
	RelatedItemID string    `json:"related_item_id,omitempty"`
	Priority      Priority  `json:"priority"`
	CreatedAt     time.Time `json:"created_at"`
	Read          bool      `json:"read"`
}
