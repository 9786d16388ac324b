package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lidofinance/ensreg/client/api/http_api/handlers"
)

func SetRouter(e *echo.Echo, h *handlers.HTTPApp) {
	e.POST("/registrations", h.StartRegistration)
	e.GET("/registrations", h.ListRegistrations)

	e.GET("/registrations/:name/status", h.GetRegistrationStatus)
	e.POST("/registrations/:name/action", h.RunRegistrationAction)
	e.DELETE("/registrations/:name", h.AbandonRegistration)
}
