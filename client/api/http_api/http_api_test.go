package http_api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/lidofinance/ensreg/client/config"
	registrationRepo "github.com/lidofinance/ensreg/client/repositories/registration"
	"github.com/lidofinance/ensreg/client/services/registration"
	"github.com/lidofinance/ensreg/client/types"
	"github.com/lidofinance/ensreg/mocks/apiMocks"
)

type testResponse struct {
	Result       json.RawMessage `json:"result"`
	ErrorMessage string          `json:"error_message"`
}

func newTestServer(t *testing.T, svc registration.RegistrationService) *RESTApiProvider {
	p := &RESTApiProvider{}
	require.NoError(t, p.NewServer(&config.HttpApiConfig{ListenAddr: "localhost:0"}, svc, nil))
	return p
}

func do(t *testing.T, p *RESTApiProvider, method, path, body string) (int, testResponse) {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	p.Handler().ServeHTTP(w, r)

	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestRESTApi_StartRegistration(t *testing.T) {
	var (
		req   = require.New(t)
		ctrl  = gomock.NewController(t)
		owner = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	)
	defer ctrl.Finish()

	svc := apiMocks.NewMockRegistrationService(ctrl)
	svc.EXPECT().Start(registration.StartParameters{
		Name:         "alice",
		Mode:         types.ModeCreate,
		Duration:     2 * 31536000,
		OwnerAddress: owner,
		Records:      types.Records{"url": "https://alice.example"},
		Images: map[string]types.ImageMetadata{
			types.RecordAvatar: {Path: "~/avatar.png", Mime: "image/png", Filename: "avatar.png"},
		},
		SetReverseRecord: true,
	}).Return(&types.Status{Name: "alice.eth", Step: types.StepCommit}, nil)

	p := newTestServer(t, svc)
	code, resp := do(t, p, http.MethodPost, "/registrations", `{
		"name": "alice",
		"duration_years": 2,
		"owner": "`+owner.Hex()+`",
		"set_reverse_record": true,
		"records": [{"key": "url", "value": "https://alice.example"}],
		"images": [{"key": "avatar", "path": "~/avatar.png", "mime": "image/png", "filename": "avatar.png"}]
	}`)
	req.Equal(http.StatusOK, code, resp.ErrorMessage)

	var status types.Status
	req.NoError(json.Unmarshal(resp.Result, &status))
	req.Equal(types.StepCommit, status.Step)
	req.Equal("alice.eth", status.Name)
}

func TestRESTApi_StartRegistrationErrors(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc := apiMocks.NewMockRegistrationService(ctrl)
	p := newTestServer(t, svc)

	// too short to be a name
	code, resp := do(t, p, http.MethodPost, "/registrations", `{"name": "ab"}`)
	req.Equal(http.StatusBadRequest, code)
	req.NotEmpty(resp.ErrorMessage)

	code, _ = do(t, p, http.MethodPost, "/registrations", `{"name": "alice", "mode": "transfer", "transfer_to": "not-an-address"}`)
	req.Equal(http.StatusBadRequest, code)

	code, _ = do(t, p, http.MethodPost, "/registrations", `{"name": "alice", "images": [{"key": "url", "path": "/tmp/x.png"}]}`)
	req.Equal(http.StatusBadRequest, code)

	svc.EXPECT().Start(gomock.Any()).Return(nil, registrationRepo.ErrRecordExists)
	code, resp = do(t, p, http.MethodPost, "/registrations", `{"name": "alice"}`)
	req.Equal(http.StatusConflict, code)
	req.Contains(resp.ErrorMessage, "already exists")
}

func TestRESTApi_Status(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc := apiMocks.NewMockRegistrationService(ctrl)
	svc.EXPECT().Status("alice.eth").Return(&types.Status{
		Name:                        "alice.eth",
		Step:                        types.StepWaitProtocolInterval,
		SecondsSinceCommitConfirmed: 42,
	}, nil)
	svc.EXPECT().Status("bob.eth").Return(nil, registrationRepo.ErrRecordNotFound)

	p := newTestServer(t, svc)

	code, resp := do(t, p, http.MethodGet, "/registrations/alice.eth/status", "")
	req.Equal(http.StatusOK, code)
	req.JSONEq(`{"name":"alice.eth","step":"WAIT_PROTOCOL_INTERVAL","seconds_since_commit_confirmed":42}`, string(resp.Result))

	code, _ = do(t, p, http.MethodGet, "/registrations/bob.eth/status", "")
	req.Equal(http.StatusNotFound, code)
}

func TestRESTApi_List(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc := apiMocks.NewMockRegistrationService(ctrl)
	svc.EXPECT().List().Return([]*types.Status{
		{Name: "alice.eth", Step: types.StepRegister, SecondsSinceCommitConfirmed: 70},
		{Name: "carol.eth", Step: types.StepCommit},
	}, nil)

	code, resp := do(t, newTestServer(t, svc), http.MethodGet, "/registrations", "")
	req.Equal(http.StatusOK, code)

	var statuses []types.Status
	req.NoError(json.Unmarshal(resp.Result, &statuses))
	req.Len(statuses, 2)
	req.Equal(types.StepRegister, statuses[0].Step)
}

func TestRESTApi_Action(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc := apiMocks.NewMockRegistrationService(ctrl)
	svc.EXPECT().Action(gomock.Any(), "alice.eth", gomock.Any()).Return(types.StepCommit, nil)
	svc.EXPECT().Action(gomock.Any(), "bob.eth", gomock.Any()).Return(types.StepRegister, errors.New("execution reverted"))

	p := newTestServer(t, svc)

	code, resp := do(t, p, http.MethodPost, "/registrations/alice.eth/action", "")
	req.Equal(http.StatusOK, code)
	req.JSONEq(`{"name":"alice.eth","step":"COMMIT"}`, string(resp.Result))

	code, resp = do(t, p, http.MethodPost, "/registrations/bob.eth/action", "")
	req.Equal(http.StatusInternalServerError, code)
	req.Contains(resp.ErrorMessage, "failed to run REGISTER action")
}

func TestRESTApi_Abandon(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc := apiMocks.NewMockRegistrationService(ctrl)
	svc.EXPECT().Abandon("alice.eth").Return(nil)

	code, resp := do(t, newTestServer(t, svc), http.MethodDelete, "/registrations/alice.eth", "")
	req.Equal(http.StatusOK, code)
	req.JSONEq(`"abandoned"`, string(resp.Result))
}
