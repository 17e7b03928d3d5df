package api

import (
	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/taskhub-app/taskhub/config"
)

var log = logging.Logger("api-v1")

// SessionUserHeader carries the current user's identifier, set by the session
// layer in front of this API. Authentication itself is out of scope here.
const SessionUserHeader = "X-Taskhub-User"

type apiV1 struct {
	cfg *config.Taskhub
	DB  *gorm.DB
}

func NewAPIV1(cfg *config.Taskhub, db *gorm.DB) *apiV1 {
	return &apiV1{
		cfg: cfg,
		DB:  db,
	}
}

func (s *apiV1) RegisterRoutes(e *echo.Echo) {
	notifications := e.Group("/v1/notifications")
	notifications.GET("", s.handleListNotifications)
	notifications.GET("/summary", s.handleNotificationSummary)
	notifications.POST("/:id/read", s.handleMarkNotificationRead)
	notifications.GET("/:id/open", s.handleOpenNotification)
}
