package http_api

import (
	"context"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"

	"github.com/lidofinance/ensreg/client/api/http_api/handlers"
	"github.com/lidofinance/ensreg/client/api/http_api/router"
	"github.com/lidofinance/ensreg/client/config"
	"github.com/lidofinance/ensreg/client/modules/logger"
	"github.com/lidofinance/ensreg/client/services/registration"
)

type RESTApiProvider struct {
	config       *config.HttpApiConfig
	echoInstance *echo.Echo
}

func (p *RESTApiProvider) NewServer(
	config *config.HttpApiConfig,
	registrationService registration.RegistrationService,
	l logger.Logger,
) error {
	p.config = config

	p.echoInstance = echo.New()

	p.echoInstance.HideBanner = true
	p.echoInstance.Debug = config.Debug

	p.echoInstance.HTTPErrorHandler = customHTTPErrorHandler

	// Middlewares

	if config.Debug {
		p.echoInstance.Use(echo_middleware.Logger())
	}
	p.echoInstance.Use(echo_middleware.Recover())

	p.echoInstance.Use(contextServiceMiddleware)

	router.SetRouter(p.echoInstance, handlers.NewHTTPApp(registrationService, l))

	return nil
}

// Handler exposes the routes for in-process use.
func (p *RESTApiProvider) Handler() *echo.Echo {
	return p.echoInstance
}

func (p *RESTApiProvider) Start() error {
	return p.echoInstance.Start(p.config.ListenAddr)
}

func (p *RESTApiProvider) Stop(ctx context.Context) error {
	return p.echoInstance.Shutdown(ctx)
}
