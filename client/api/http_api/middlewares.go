package http_api

import (
	"net/http"

	. "github.com/labstack/echo/v4"

	cs "github.com/lidofinance/ensreg/client/api/http_api/context_service"
)

func contextServiceMiddleware(next HandlerFunc) HandlerFunc {
	return func(ctx Context) error {
		return next(cs.New(ctx))
	}
}

// Custom error handler
func customHTTPErrorHandler(err error, c Context) {
	code := http.StatusInternalServerError
	csError, ok := err.(*cs.CSErrorResp)
	if !ok {
		if he, ok := err.(*HTTPError); ok {
			code = he.Code
			csError = &cs.CSErrorResp{
				Result:       struct{}{},
				ErrorMessage: http.StatusText(he.Code),
			}
			if msg, ok := he.Message.(string); ok {
				csError.ErrorMessage = msg
			}
		} else {
			csError = &cs.CSErrorResp{
				Result:       struct{}{},
				ErrorMessage: http.StatusText(http.StatusInternalServerError),
			}
		}
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, csError)
}
