package services

import (
	"context"
	"fmt"

	"github.com/lidofinance/ensreg/client/modules/keystore"
	"github.com/lidofinance/ensreg/client/modules/logger"
	"github.com/lidofinance/ensreg/client/modules/state"
	"github.com/lidofinance/ensreg/client/services/chain"
	"github.com/lidofinance/ensreg/client/services/pipeline"
	"github.com/lidofinance/ensreg/client/services/registration"
)

var provider ServiceProvider

// ServiceProvider owns the long-lived services of the daemon.
type ServiceProvider struct {
	registrationService registration.RegistrationService
	executor            *pipeline.Executor

	state     state.State
	keyStore  keystore.KeyStore
	chain     *chain.Client
	transport pipeline.Transport
	logger    logger.Logger
}

// Init services
func (p *ServiceProvider) Init(
	registrationService registration.RegistrationService,
	executor *pipeline.Executor,
	stg state.State,
	ks keystore.KeyStore,
	chainClient *chain.Client,
	transport pipeline.Transport,
	l logger.Logger,
) {
	p.registrationService = registrationService
	p.executor = executor
	p.state = stg
	p.keyStore = ks
	p.chain = chainClient
	p.transport = transport
	p.logger = l
}

// Start consumes pipeline results in the background and resumes the
// persisted flows.
func (p *ServiceProvider) Start(ctx context.Context) error {
	if p.executor != nil {
		go func() {
			if err := p.executor.Run(ctx); err != nil && ctx.Err() == nil {
				p.logger.Log("pipeline consumer stopped: %v", err)
			}
		}()
	}
	if err := p.registrationService.Resume(); err != nil {
		return fmt.Errorf("failed to resume registrations: %w", err)
	}
	return nil
}

func (p *ServiceProvider) Close() error {
	if p.registrationService != nil {
		p.registrationService.Stop()
	}
	if p.transport != nil {
		if err := p.transport.Close(); err != nil {
			return fmt.Errorf("failed to close pipeline transport: %w", err)
		}
	}
	if p.chain != nil {
		p.chain.Close()
	}
	if p.keyStore != nil {
		if err := p.keyStore.Close(); err != nil {
			return fmt.Errorf("failed to close keystore: %w", err)
		}
	}
	if p.state != nil {
		if err := p.state.Close(); err != nil {
			return fmt.Errorf("failed to close state: %w", err)
		}
	}
	return nil
}

func (p *ServiceProvider) RegistrationService() registration.RegistrationService {
	return p.registrationService
}

func (p *ServiceProvider) Logger() logger.Logger {
	return p.logger
}

func App() *ServiceProvider {
	return &provider
}
