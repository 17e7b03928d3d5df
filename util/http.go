package util

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("util")

const (
	ERR_SESSION_MISSING        = "ERR_SESSION_MISSING"
	ERR_INVALID_INPUT          = "ERR_INVALID_INPUT"
	ERR_NOTIFICATION_NOT_FOUND = "ERR_NOTIFICATION_NOT_FOUND"
	ERR_NO_ACTION_TARGET       = "ERR_NO_ACTION_TARGET"
	ERR_NOT_AUTHORIZED         = "ERR_NOT_AUTHORIZED"
)

type HttpError struct {
	Code    int
	Message string
	Details string
}

func (he HttpError) Error() string {
	return he.Message
}

func ErrorHandler(err error, ctx echo.Context) {
	log.Errorf("handler error: %s", err)
	var herr *HttpError
	if xerrors.As(err, &herr) {
		res := map[string]string{
			"error": herr.Message,
		}
		if herr.Details != "" {
			res["details"] = herr.Details
		}
		ctx.JSON(herr.Code, res)
		return
	}

	var echoErr *echo.HTTPError
	if xerrors.As(err, &echoErr) {
		ctx.JSON(echoErr.Code, map[string]interface{}{
			"error": echoErr.Message,
		})
		return
	}

	_ = ctx.JSON(500, map[string]interface{}{
		"error": err.Error(),
	})
}
