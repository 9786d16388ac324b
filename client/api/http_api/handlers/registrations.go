package handlers

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	. "github.com/lidofinance/ensreg/client/api/dto"
	cs "github.com/lidofinance/ensreg/client/api/http_api/context_service"
	req "github.com/lidofinance/ensreg/client/api/http_api/requests"
	"github.com/lidofinance/ensreg/client/api/http_api/responses"
	"github.com/lidofinance/ensreg/client/services/registration"
	"github.com/lidofinance/ensreg/client/types"
)

const yearSeconds = 60 * 60 * 24 * 365

func (a *HTTPApp) StartRegistration(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &StartRegistrationDTO{}
	if err := stx.BindToDTO(&req.StartRegistrationForm{}, formDTO); err != nil {
		return err
	}

	params, err := startParameters(formDTO)
	if err != nil {
		return stx.JsonError(http.StatusBadRequest, err)
	}

	status, err := a.registration.Start(params)
	if err != nil {
		return stx.JsonError(errorStatus(err), err)
	}
	return stx.Json(http.StatusOK, status)
}

func (a *HTTPApp) ListRegistrations(c echo.Context) error {
	stx := c.(*cs.ContextService)
	statuses, err := a.registration.List()
	if err != nil {
		return stx.JsonError(http.StatusInternalServerError, err)
	}
	return stx.Json(http.StatusOK, statuses)
}

func (a *HTTPApp) GetRegistrationStatus(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &RegistrationNameDTO{}
	if err := stx.BindToDTO(&req.RegistrationNameForm{}, formDTO); err != nil {
		return err
	}

	status, err := a.registration.Status(formDTO.Name)
	if err != nil {
		return stx.JsonError(errorStatus(err), err)
	}
	return stx.Json(http.StatusOK, status)
}

// RunRegistrationAction runs the action of the current step. The request
// returns once the transaction was handed off, its completion is logged.
func (a *HTTPApp) RunRegistrationAction(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &RegistrationNameDTO{}
	if err := stx.BindToDTO(&req.RegistrationNameForm{}, formDTO); err != nil {
		return err
	}

	name := formDTO.Name
	step, err := a.registration.Action(c.Request().Context(), name, func() {
		a.logger.Log("%s: action completed", name)
	})
	if err != nil {
		return stx.JsonError(errorStatus(err), fmt.Errorf("failed to run %s action: %w", step, err))
	}
	return stx.Json(http.StatusOK, &responses.ActionResponse{Name: name, Step: step})
}

func (a *HTTPApp) AbandonRegistration(c echo.Context) error {
	stx := c.(*cs.ContextService)
	formDTO := &RegistrationNameDTO{}
	if err := stx.BindToDTO(&req.RegistrationNameForm{}, formDTO); err != nil {
		return err
	}

	if err := a.registration.Abandon(formDTO.Name); err != nil {
		return stx.JsonError(errorStatus(err), err)
	}
	return stx.Json(http.StatusOK, responses.Abandoned)
}

func startParameters(form *StartRegistrationDTO) (registration.StartParameters, error) {
	params := registration.StartParameters{
		Name:             form.Name,
		Mode:             types.Mode(form.Mode),
		Duration:         form.DurationYears * yearSeconds,
		SetReverseRecord: form.SetReverseRecord,
	}
	if params.Mode == "" {
		params.Mode = types.ModeCreate
	}
	if form.DurationYears < 0 {
		return params, fmt.Errorf("negative duration")
	}
	if (params.Mode == types.ModeCreate || params.Mode == types.ModeRenew) && form.DurationYears == 0 {
		params.Duration = yearSeconds
	}

	if form.Owner != "" {
		if !common.IsHexAddress(form.Owner) {
			return params, fmt.Errorf("invalid owner address %s", form.Owner)
		}
		params.OwnerAddress = common.HexToAddress(form.Owner)
	}

	if len(form.Records) > 0 {
		params.Records = make(types.Records, len(form.Records))
		for _, r := range form.Records {
			params.Records[r.Key] = r.Value
		}
	}
	if len(form.Images) > 0 {
		params.Images = make(map[string]types.ImageMetadata, len(form.Images))
		for _, img := range form.Images {
			if img.Key != types.RecordAvatar && img.Key != types.RecordHeader {
				return params, fmt.Errorf("images are only supported for %s and %s", types.RecordAvatar, types.RecordHeader)
			}
			params.Images[img.Key] = types.ImageMetadata{Path: img.Path, Mime: img.Mime, Filename: img.Filename}
		}
	}

	if form.TransferTo != "" {
		if !common.IsHexAddress(form.TransferTo) {
			return params, fmt.Errorf("invalid transfer address %s", form.TransferTo)
		}
		params.Transfer = &types.TransferParameters{
			ToAddress:       common.HexToAddress(form.TransferTo),
			ClearRecords:    form.ClearRecords,
			SetAddress:      form.SetAddress,
			TransferControl: form.TransferControl,
		}
	}
	return params, nil
}
