package model

import (
	"time"

	"golang.org/x/xerrors"
)

// BroadcastUserID is the reserved user_id value for notifications addressed
// to every user. It only appears at the storage boundary; code should go
// through Recipient instead of comparing against it directly.
const BroadcastUserID = "all"

type Category string

const (
	CategoryAssigned  Category = "assigned"
	CategorySubmitted Category = "submitted"
	CategoryApproved  Category = "approved"
	CategoryRejected  Category = "rejected"
	CategoryReminder  Category = "reminder"
	CategoryReward    Category = "reward"
	CategoryPenalty   Category = "penalty"
	CategoryDeadline  Category = "deadline"
)

var categories = map[Category]bool{
	CategoryAssigned:  true,
	CategorySubmitted: true,
	CategoryApproved:  true,
	CategoryRejected:  true,
	CategoryReminder:  true,
	CategoryReward:    true,
	CategoryPenalty:   true,
	CategoryDeadline:  true,
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !categories[c] {
		return "", xerrors.Errorf("unrecognized notification category: %s", s)
	}
	return c, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !priorities[p] {
		return "", xerrors.Errorf("unrecognized notification priority: %s", s)
	}
	return p, nil
}

// Recipient is the tagged form of a notification's target: either a single
// user or a broadcast to everyone. Keeping the broadcast case out of the
// user-id namespace avoids colliding with a real identifier.
type Recipient struct {
	userID    string
	broadcast bool
}

func UserRecipient(userID string) Recipient {
	return Recipient{userID: userID}
}

func Broadcast() Recipient {
	return Recipient{broadcast: true}
}

// ParseRecipient maps a stored user_id column value back to its tagged form.
func ParseRecipient(s string) Recipient {
	if s == BroadcastUserID {
		return Broadcast()
	}
	return UserRecipient(s)
}

func (r Recipient) IsBroadcast() bool {
	return r.broadcast
}

// Matches reports whether a notification with this recipient is visible to
// the given user. An empty user id matches nothing, broadcasts included.
func (r Recipient) Matches(userID string) bool {
	if userID == "" {
		return false
	}
	return r.broadcast || r.userID == userID
}

// String returns the storage form of the recipient.
func (r Recipient) String() string {
	if r.broadcast {
		return BroadcastUserID
	}
	return r.userID
}

type Notification struct {
	ID     string `gorm:"primarykey" json:"id"`
	UserID string `gorm:"index" json:"userId"`

	Category Category `json:"category"`
	Priority Priority `json:"priority"`

	Read      bool      `gorm:"index" json:"read"`
	CreatedAt time.Time `json:"createdAt"`

	Title   string `json:"title"`
	Message string `json:"message"`

	ActionLabel string `json:"actionLabel,omitempty"`
	ActionURL   string `json:"actionUrl,omitempty"`

	// Metadata for reward, penalty and deadline notifications. Amounts are in
	// cents.
	BonusAmount   *int64     `json:"bonusAmount,omitempty"`
	PenaltyAmount *int64     `json:"penaltyAmount,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

func (n Notification) Recipient() Recipient {
	return ParseRecipient(n.UserID)
}

// Validate checks the closed-enumeration fields. Unrecognized values are
// rejected at construction time rather than leaking into the store.
func (n Notification) Validate() error {
	if _, err := ParseCategory(string(n.Category)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(n.Priority)); err != nil {
		return err
	}
	return nil
}
