// Package notif holds the notification read model: how a user's recent
// alerts are derived from the store, and what happens when one is selected.
package notif

import (
	"sort"

	logging "github.com/ipfs/go-log/v2"

	"github.com/taskhub-app/taskhub/model"
)

var log = logging.Logger("notif")

// RecentLimit caps how many items the summary shows.
const RecentLimit = 5

// Summary is the derived view over a snapshot of notifications for one user.
// Recent holds the newest visible items; Unread counts unread items across
// the whole visible set, not just the recent ones.
type Summary struct {
	Recent []model.Notification `json:"recent"`
	Unread int                  `json:"unread"`
}

// VisibleTo filters items down to the ones the user may see: their own plus
// broadcasts. No user means nothing is visible. The input is never mutated.
func VisibleTo(items []model.Notification, userID string) []model.Notification {
	visible := make([]model.Notification, 0, len(items))
	if userID == "" {
		return visible
	}
	for _, n := range items {
		if n.Recipient().Matches(userID) {
			visible = append(visible, n)
		}
	}
	return visible
}

// Summarize recomputes the summary from scratch. It is a pure function of
// its inputs and safe to call on every render.
func Summarize(items []model.Notification, userID string) Summary {
	visible := VisibleTo(items, userID)

	unread := 0
	for _, n := range visible {
		if !n.Read {
			unread++
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	if len(visible) > RecentLimit {
		visible = visible[:RecentLimit]
	}

	return Summary{Recent: visible, Unread: unread}
}
