package handlers

import (
	"errors"
	"net/http"

	"github.com/lidofinance/ensreg/client/modules/logger"
	registrationRepo "github.com/lidofinance/ensreg/client/repositories/registration"
	"github.com/lidofinance/ensreg/client/services/registration"
)

type HTTPApp struct {
	registration registration.RegistrationService
	logger       logger.Logger
}

func NewHTTPApp(registrationService registration.RegistrationService, l logger.Logger) *HTTPApp {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &HTTPApp{
		registration: registrationService,
		logger:       l,
	}
}

// errorStatus maps service errors onto response codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, registrationRepo.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, registrationRepo.ErrRecordExists):
		return http.StatusConflict
	case errors.Is(err, registration.ErrObserver):
		return http.StatusForbidden
	case errors.Is(err, registration.ErrInvalidName),
		errors.Is(err, registration.ErrInvalidMode),
		errors.Is(err, registration.ErrMissingTransfer),
		errors.Is(err, registration.ErrMissingSalt):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
