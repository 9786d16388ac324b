package services

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lidofinance/ensreg/client/config"
	"github.com/lidofinance/ensreg/client/modules/keystore"
	"github.com/lidofinance/ensreg/client/modules/logger"
	"github.com/lidofinance/ensreg/client/modules/state"
	registrationRepo "github.com/lidofinance/ensreg/client/repositories/registration"
	"github.com/lidofinance/ensreg/client/services/chain"
	"github.com/lidofinance/ensreg/client/services/ens"
	"github.com/lidofinance/ensreg/client/services/pipeline"
	"github.com/lidofinance/ensreg/client/services/pricing"
	"github.com/lidofinance/ensreg/client/services/registration"
	"github.com/lidofinance/ensreg/client/services/upload"
	"github.com/lidofinance/ensreg/client/types"
)

// InitServices opens the storages, connects to the chain and the pipeline and
// assembles the registration service of the configured account.
func InitServices(ctx context.Context, cfg *config.Config, role types.Role) (err error) {
	if cfg.ChainConfig == nil {
		return fmt.Errorf("chain config is required")
	}
	if cfg.KafkaConfig == nil {
		return fmt.Errorf("kafka config is required")
	}
	if cfg.AccountAddress != "" && !common.IsHexAddress(cfg.AccountAddress) {
		return fmt.Errorf("invalid account address %s", cfg.AccountAddress)
	}

	l := logger.NewLogger(cfg.Username)

	stg, err := state.NewLevelDBState(cfg.StateDBDSN, cfg.Username)
	if err != nil {
		return fmt.Errorf("failed to init state: %w", err)
	}
	defer func() {
		if err != nil {
			stg.Close()
		}
	}()

	keyStore, err := keystore.NewLevelDBKeyStore(cfg.KeyStoreDBDSN)
	if err != nil {
		return fmt.Errorf("failed to init keystore: %w", err)
	}
	defer func() {
		if err != nil {
			keyStore.Close()
		}
	}()

	chainClient, err := chain.Dial(ctx, cfg.ChainConfig.RPCURL, types.Network(cfg.ChainConfig.Network))
	if err != nil {
		return fmt.Errorf("failed to init chain client: %w", err)
	}
	defer func() {
		if err != nil {
			chainClient.Close()
		}
	}()
	network := chainClient.Network()
	l.Log("connected to %s", network)

	transport, err := newKafkaTransport(cfg.KafkaConfig)
	if err != nil {
		return fmt.Errorf("failed to init pipeline transport: %w", err)
	}

	contracts := ens.ContractsFromConfig(cfg.ChainConfig)
	executor := pipeline.NewExecutor(transport, chainClient, network, cfg.KafkaConfig.Timeout, logger.WithName(l, "pipeline"))
	if cfg.KafkaConfig.ResultSigner != "" {
		if !common.IsHexAddress(cfg.KafkaConfig.ResultSigner) {
			return fmt.Errorf("invalid result signer address %q", cfg.KafkaConfig.ResultSigner)
		}
		executor.RequireResultSigner(common.HexToAddress(cfg.KafkaConfig.ResultSigner))
	}

	uploadCfg := cfg.UploadConfig
	if uploadCfg == nil {
		uploadCfg = &config.UploadConfig{}
	}

	store := registrationRepo.NewRegistrationRepo(stg, stg.Topic())
	dispatcher := registration.NewActionDispatcher(registration.DispatcherDeps{
		Wallets:   keystore.NewWalletLoader(keyStore, cfg.Username, common.HexToAddress(cfg.AccountAddress)),
		Nonces:    chainClient,
		Pricing:   pricing.NewService(chainClient.Backend(), contracts, cfg.ChainConfig.RentPriceCacheTTL),
		Uploader:  upload.NewHTTPUploader(uploadCfg.Endpoint, uploadCfg.Token, uploadCfg.Gateway, uploadCfg.Timeout),
		Executor:  executor,
		Lookup:    chainClient,
		FeeBumper: executor,
		Resolvers: ens.NewRegistryResolverLookup(chainClient.Backend(), contracts.Registry),
		Store:     store,
		Network:   network,
		Logger:    logger.WithName(l, "dispatcher"),
	})

	registrationService := registration.NewRegistrationService(ctx, &registration.Env{
		Provider: chainClient,
		Store:    store,
		Network:  network,
		Timing:   cfg.Timing,
		Polling:  cfg.Polling,
		Logger:   l,
	}, role, dispatcher)

	provider.Init(registrationService, executor, stg, keyStore, chainClient, transport, l)
	return nil
}

func newKafkaTransport(cfg *config.KafkaPipelineConfig) (*pipeline.KafkaTransport, error) {
	tlsConfig, err := pipeline.GetTLSConfig(cfg.TrustStore)
	if err != nil {
		return nil, err
	}
	producerCreds, err := pipeline.ParseCredentials(cfg.ProducerCreds)
	if err != nil {
		return nil, fmt.Errorf("invalid producer credentials: %w", err)
	}
	consumerCreds, err := pipeline.ParseCredentials(cfg.ConsumerCreds)
	if err != nil {
		return nil, fmt.Errorf("invalid consumer credentials: %w", err)
	}

	return pipeline.NewKafkaTransport(pipeline.KafkaTransportConfig{
		Brokers:       pipeline.SplitBrokers(cfg.Brokers),
		RequestTopic:  cfg.RequestTopic,
		ResultTopic:   cfg.ResultTopic,
		ConsumerGroup: cfg.ConsumerGroup,
		TLSConfig:     tlsConfig,
		ProducerCreds: producerCreds,
		ConsumerCreds: consumerCreds,
		Timeout:       cfg.Timeout,
	})
}
