package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskhub-app/taskhub/config"
	"github.com/taskhub-app/taskhub/model"
	"github.com/taskhub-app/taskhub/notif"
	"github.com/taskhub-app/taskhub/util"
)

func initAPI(t *testing.T) (*apiV1, *echo.Echo, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Notification{}))

	s := NewAPIV1(config.NewTaskhub("test-version"), db)
	e := echo.New()
	e.HTTPErrorHandler = util.ErrorHandler
	s.RegisterRoutes(e)
	return s, e, db
}

func seedNotification(t *testing.T, db *gorm.DB, n model.Notification) model.Notification {
	require.NoError(t, notif.NewNotificationsQuery(db).Create(context.Background(), &n))
	return n
}

func TestHandleNotificationSummary(t *testing.T) {
	_, e, db := initAPI(t)

	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	seedNotification(t, db, model.Notification{
		UserID: "u1", Category: model.CategoryAssigned, Priority: model.PriorityMedium,
		Title: "task assigned", CreatedAt: t1,
	})
	seedNotification(t, db, model.Notification{
		UserID: model.BroadcastUserID, Category: model.CategoryReminder, Priority: model.PriorityLow,
		Title: "maintenance window", Read: true, CreatedAt: t1.Add(time.Hour),
	})
	seedNotification(t, db, model.Notification{
		UserID: "u2", Category: model.CategoryAssigned, Priority: model.PriorityMedium,
		Title: "someone else's", CreatedAt: t1,
	})

	req := httptest.NewRequest(echo.GET, "/v1/notifications/summary", nil)
	req.Header.Set(SessionUserHeader, "u1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)

	var summary notif.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Recent, 2)
	assert.Equal(t, "maintenance window", summary.Recent[0].Title)
	assert.Equal(t, "task assigned", summary.Recent[1].Title)
	assert.Equal(t, 1, summary.Unread)
}

func TestHandleNotificationSummaryNoUser(t *testing.T) {
	_, e, _ := initAPI(t)

	req := httptest.NewRequest(echo.GET, "/v1/notifications/summary", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, 204, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleOpenNotification(t *testing.T) {
	_, e, db := initAPI(t)

	n := seedNotification(t, db, model.Notification{
		UserID: "u1", Category: model.CategoryApproved, Priority: model.PriorityHigh,
		ActionURL: "/tasks/7",
	})

	req := httptest.NewRequest(echo.GET, "/v1/notifications/"+n.ID+"/open", nil)
	req.Header.Set(SessionUserHeader, "u1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, 302, rec.Code)
	assert.Equal(t, "/tasks/7", rec.Header().Get(echo.HeaderLocation))

	// mark-read is fire and forget; the flag flips shortly after
	assert.Eventually(t, func() bool {
		got, err := notif.NewNotificationsQuery(db).WithID(n.ID).Get(context.Background())
		return err == nil && got.Read
	}, time.Second, 10*time.Millisecond)
}

func TestHandleOpenNotificationNoActionTarget(t *testing.T) {
	_, e, db := initAPI(t)

	n := seedNotification(t, db, model.Notification{
		UserID: "u1", Category: model.CategoryReward, Priority: model.PriorityMedium,
	})

	req := httptest.NewRequest(echo.GET, "/v1/notifications/"+n.ID+"/open", nil)
	req.Header.Set(SessionUserHeader, "u1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}

func TestHandleMarkNotificationRead(t *testing.T) {
	_, e, db := initAPI(t)

	n := seedNotification(t, db, model.Notification{
		UserID: "u1", Category: model.CategoryDeadline, Priority: model.PriorityUrgent,
	})

	req := httptest.NewRequest(echo.POST, "/v1/notifications/"+n.ID+"/read", nil)
	req.Header.Set(SessionUserHeader, "u1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 204, rec.Code)

	got, err := notif.NewNotificationsQuery(db).WithID(n.ID).Get(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Read)
}

func TestHandleMarkNotificationReadForeignUser(t *testing.T) {
	_, e, db := initAPI(t)

	n := seedNotification(t, db, model.Notification{
		UserID: "u1", Category: model.CategoryDeadline, Priority: model.PriorityUrgent,
	})

	req := httptest.NewRequest(echo.POST, "/v1/notifications/"+n.ID+"/read", nil)
	req.Header.Set(SessionUserHeader, "u2")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)

	got, err := notif.NewNotificationsQuery(db).WithID(n.ID).Get(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Read, "another user's selection must not mark it read")
}
