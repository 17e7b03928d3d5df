package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"
	"gorm.io/gorm"

	"github.com/taskhub-app/taskhub/notif"
	"github.com/taskhub-app/taskhub/util"
)

func currentUser(c echo.Context) string {
	return c.Request().Header.Get(SessionUserHeader)
}

func (s *apiV1) handleListNotifications(c echo.Context) error {
	user := currentUser(c)
	if user == "" {
		return c.NoContent(http.StatusNoContent)
	}

	items, err := notif.NewNotificationsQuery(s.DB).VisibleTo(user).List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (s *apiV1) handleNotificationSummary(c echo.Context) error {
	user := currentUser(c)
	if user == "" {
		return c.NoContent(http.StatusNoContent)
	}

	items, err := notif.NewNotificationsQuery(s.DB).VisibleTo(user).List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notif.Summarize(items, user))
}

func (s *apiV1) handleMarkNotificationRead(c echo.Context) error {
	user := currentUser(c)
	if user == "" {
		return &util.HttpError{
			Code:    http.StatusForbidden,
			Message: util.ERR_SESSION_MISSING,
		}
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := notif.NewNotificationsQuery(s.DB).VisibleTo(user).WithID(id).Get(ctx); err != nil {
		if xerrors.Is(err, gorm.ErrRecordNotFound) {
			return &util.HttpError{
				Code:    http.StatusNotFound,
				Message: util.ERR_NOTIFICATION_NOT_FOUND,
			}
		}
		return err
	}

	if err := (notif.GormStore{DB: s.DB}).MarkRead(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handleOpenNotification is the selection contract over HTTP: an unread item
// is marked read best-effort, then the caller is redirected to the item's
// action target.
func (s *apiV1) handleOpenNotification(c echo.Context) error {
	user := currentUser(c)
	if user == "" {
		return &util.HttpError{
			Code:    http.StatusForbidden,
			Message: util.ERR_SESSION_MISSING,
		}
	}

	ctx := c.Request().Context()
	n, err := notif.NewNotificationsQuery(s.DB).VisibleTo(user).WithID(c.Param("id")).Get(ctx)
	if err != nil {
		if xerrors.Is(err, gorm.ErrRecordNotFound) {
			return &util.HttpError{
				Code:    http.StatusNotFound,
				Message: util.ERR_NOTIFICATION_NOT_FOUND,
			}
		}
		return err
	}

	nav := &echoNavigator{c: c}
	notif.NewSelector(notif.GormStore{DB: s.DB}, nav).Select(n)

	if !nav.redirected {
		return &util.HttpError{
			Code:    http.StatusNotFound,
			Message: util.ERR_NO_ACTION_TARGET,
			Details: "notification has no action URL",
		}
	}
	return nil
}

type echoNavigator struct {
	c          echo.Context
	redirected bool
}

func (n *echoNavigator) Navigate(url string) {
	if err := n.c.Redirect(http.StatusFound, url); err != nil {
		log.Warnf("redirect to %s failed: %s", url, err)
		return
	}
	n.redirected = true
}
