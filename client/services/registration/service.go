package registration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	registrationRepo "github.com/lidofinance/ensreg/client/repositories/registration"
	"github.com/lidofinance/ensreg/client/types"
)

const minLabelLength = 3

var (
	ErrInvalidName = errors.New("invalid name")
	ErrInvalidMode = errors.New("invalid mode")
	ErrObserver    = errors.New("observer does not send transactions")
)

// StartParameters describe a new flow.
type StartParameters struct {
	Name             string
	Mode             types.Mode
	Duration         int64
	OwnerAddress     common.Address
	Records          types.Records
	Images           map[string]types.ImageMetadata
	SetReverseRecord bool
	Transfer         *types.TransferParameters
}

type RegistrationService interface {
	Resume() error
	Start(params StartParameters) (*types.Status, error)
	List() ([]*types.Status, error)
	Status(name string) (*types.Status, error)
	Action(ctx context.Context, name string, onComplete func()) (types.Step, error)
	Abandon(name string) error
	Stop()
}

type BaseRegistrationService struct {
	ctx        context.Context
	env        *Env
	role       types.Role
	dispatcher *ActionDispatcher

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewRegistrationService(
	ctx context.Context,
	env *Env,
	role types.Role,
	dispatcher *ActionDispatcher,
) *BaseRegistrationService {
	env.normalize()
	s := &BaseRegistrationService{
		ctx:        ctx,
		env:        env,
		role:       role,
		dispatcher: dispatcher,
		flows:      make(map[string]*Flow),
	}
	dispatcher.OnCommitHashChanged(s.refresh)
	return s
}

// NormalizeName lowercases the name and appends the .eth suffix when missing.
func NormalizeName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.HasSuffix(name, types.ENSDomain) {
		name += types.ENSDomain
	}
	label := strings.TrimSuffix(name, types.ENSDomain)
	if len(label) < minLabelLength || strings.Contains(label, ".") {
		return "", fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	return name, nil
}

func (s *BaseRegistrationService) flow(name string) *Flow {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flows[name]
	if !ok {
		f = NewFlow(s.ctx, s.env, name, s.role)
		s.flows[name] = f
	}
	return f
}

func (s *BaseRegistrationService) refresh(name string) {
	if err := s.flow(name).Refresh(); err != nil {
		s.env.Logger.Log("%s: failed to refresh flow: %v", name, err)
	}
}

// Resume restarts the watchers of every persisted record.
func (s *BaseRegistrationService) Resume() error {
	records, err := s.env.Store.ListRecords()
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	for _, record := range records {
		if err := s.flow(record.Name).Refresh(); err != nil {
			return fmt.Errorf("failed to resume %s: %w", record.Name, err)
		}
		s.env.Logger.Log("%s: resumed %s flow", record.Name, record.Mode)
	}
	return nil
}

func (s *BaseRegistrationService) Start(params StartParameters) (*types.Status, error) {
	name, err := NormalizeName(params.Name)
	if err != nil {
		return nil, err
	}
	if !params.Mode.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, params.Mode)
	}
	if params.Mode == types.ModeTransfer && params.Transfer == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingTransfer, name)
	}

	record := &types.RegistrationRecord{
		Name:             name,
		Mode:             params.Mode,
		ChangedRecords:   params.Records.Copy(),
		Images:           params.Images,
		Duration:         params.Duration,
		OwnerAddress:     params.OwnerAddress,
		SetReverseRecord: params.SetReverseRecord,
		Transfer:         params.Transfer,
		CreatedAt:        s.env.Now().UTC(),
	}
	if err := s.env.Store.SaveRecord(record); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	s.env.Logger.Log("%s: %s flow started", name, params.Mode)

	return s.Status(name)
}

func (s *BaseRegistrationService) List() ([]*types.Status, error) {
	records, err := s.env.Store.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	statuses := make([]*types.Status, 0, len(records))
	for _, record := range records {
		status, err := s.Status(record.Name)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})
	return statuses, nil
}

func (s *BaseRegistrationService) Status(name string) (*types.Status, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	status, _, err := s.status(name)
	return status, err
}

func (s *BaseRegistrationService) status(name string) (*types.Status, *types.RegistrationRecord, error) {
	status, record, err := s.flow(name).Status()
	if errors.Is(err, registrationRepo.ErrRecordNotFound) {
		s.mu.Lock()
		delete(s.flows, name)
		s.mu.Unlock()
	}
	return status, record, err
}

// Action runs the action of the current step. Once a final step completes the
// record is archived.
func (s *BaseRegistrationService) Action(ctx context.Context, name string, onComplete func()) (types.Step, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return "", err
	}
	status, record, err := s.status(name)
	if err != nil {
		return "", err
	}
	if s.role != types.RoleActive {
		return status.Step, ErrObserver
	}

	done := onComplete
	if isFinalStep(status.Step) {
		done = func() {
			if err := s.Abandon(name); err != nil {
				s.env.Logger.Log("%s: failed to archive completed flow: %v", name, err)
			}
			if onComplete != nil {
				onComplete()
			}
		}
	}

	if err := s.dispatcher.Action(record, status.Step)(ctx, done); err != nil {
		return status.Step, err
	}
	return status.Step, nil
}

// Abandon stops the watchers and archives the record.
func (s *BaseRegistrationService) Abandon(name string) error {
	name, err := NormalizeName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	f, ok := s.flows[name]
	delete(s.flows, name)
	s.mu.Unlock()
	if ok {
		f.Stop()
	}

	if err := s.env.Store.DeleteRecord(name); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	s.env.Logger.Log("%s: flow archived", name)
	return nil
}

func (s *BaseRegistrationService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, f := range s.flows {
		f.Stop()
		delete(s.flows, name)
	}
}

func isFinalStep(step types.Step) bool {
	switch step {
	case types.StepRegister, types.StepEdit, types.StepRenew, types.StepSetName, types.StepTransfer:
		return true
	}
	return false
}
