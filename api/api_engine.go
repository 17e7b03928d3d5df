package api

import (
	httpprof "net/http/pprof"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taskhub-app/taskhub/config"
	"github.com/taskhub-app/taskhub/util"
)

type IRegister interface {
	RegisterRoutes(en *echo.Echo)
}

type ApiEngine struct {
	eng *echo.Echo
	cfg *config.Taskhub
}

func NewEngine(cfg *config.Taskhub) *ApiEngine {
	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())

	if cfg.LoggingConfig.ApiEndpointLogging {
		e.Use(middleware.Logger())
	}

	e.Use(util.AppVersionMiddleware(cfg.AppVersion))
	e.HTTPErrorHandler = util.ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/debug/pprof/:prof", func(c echo.Context) error {
		httpprof.Handler(c.Param("prof")).ServeHTTP(c.Response().Writer, c.Request())
		return nil
	})

	return &ApiEngine{eng: e, cfg: cfg}
}

func (apiEng *ApiEngine) Start() error {
	return apiEng.eng.Start(apiEng.cfg.ApiListen)
}

func (apiEng *ApiEngine) RegisterAPI(api IRegister) {
	api.RegisterRoutes(apiEng.eng)
}
