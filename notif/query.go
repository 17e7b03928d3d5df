package notif

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskhub-app/taskhub/model"
)

// NotificationsQuery is a one-shot query builder over the notifications
// table. Construct a fresh one per query.
type NotificationsQuery struct{ DB *gorm.DB }

func NewNotificationsQuery(db *gorm.DB) *NotificationsQuery {
	return &NotificationsQuery{DB: db.Model(&model.Notification{})}
}

// VisibleTo narrows the query to notifications the user may see: their own
// plus broadcasts. An empty user id matches nothing.
func (q *NotificationsQuery) VisibleTo(userID string) *NotificationsQuery {
	if userID == "" {
		q.DB = q.DB.Where("1 = 0")
		return q
	}
	q.DB = q.DB.Where("user_id = ? OR user_id = ?", userID, model.BroadcastUserID)
	return q
}

func (q *NotificationsQuery) Unread() *NotificationsQuery {
	q.DB = q.DB.Where("NOT read")
	return q
}

func (q *NotificationsQuery) WithID(id string) *NotificationsQuery {
	q.DB = q.DB.Where("id = ?", id)
	return q
}

// List returns matching notifications, most recent first.
func (q *NotificationsQuery) List(ctx context.Context) ([]model.Notification, error) {
	var items []model.Notification
	if err := q.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (q *NotificationsQuery) Get(ctx context.Context) (model.Notification, error) {
	var n model.Notification
	if err := q.DB.WithContext(ctx).Take(&n).Error; err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func (q *NotificationsQuery) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := q.DB.WithContext(ctx).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create validates the enum fields and inserts the notification, assigning
// an id when the caller left it empty.
func (q *NotificationsQuery) Create(ctx context.Context, n *model.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return q.DB.WithContext(ctx).Create(n).Error
}

// GormStore adapts a database handle to the selector's Store interface.
type GormStore struct{ DB *gorm.DB }

// MarkRead flips the read flag on one notification. Marking an already-read
// or unknown id is not an error; the write is best effort by contract.
func (s GormStore) MarkRead(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}
