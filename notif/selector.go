package notif

import (
	"context"
	"time"

	"github.com/taskhub-app/taskhub/model"
)

// Store is the slice of the notification store the selector needs.
type Store interface {
	MarkRead(ctx context.Context, id string) error
}

// Navigator performs a full-page navigation to a URL.
type Navigator interface {
	Navigate(url string)
}

const markReadTimeout = time.Second * 5

// Selector implements what happens when a user picks a notification: an
// unread item is marked read best-effort, then the item's action target is
// navigated to. Navigation is never gated on the mark-read call.
type Selector struct {
	store Store
	nav   Navigator
}

func NewSelector(store Store, nav Navigator) *Selector {
	return &Selector{store: store, nav: nav}
}

// Select never blocks on the store and never fails. A mark-read error is
// logged and swallowed; the user still lands on the action target.
func (s *Selector) Select(n model.Notification) {
	if !n.Read {
		go func() {
			// Detached from any request context on purpose: the navigation
			// that follows may tear the caller down before the write lands.
			ctx, cancel := context.WithTimeout(context.Background(), markReadTimeout)
			defer cancel()

			if err := s.store.MarkRead(ctx, n.ID); err != nil {
				log.Warnf("failed to mark notification %s read: %s", n.ID, err)
			}
		}()
	}

	if n.ActionURL != "" {
		s.nav.Navigate(n.ActionURL)
	}
}
