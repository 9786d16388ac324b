package config

import (
	"time"
)

type HttpApiConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Debug      bool   `mapstructure:"debug"`
}

type ChainConfig struct {
	RPCURL string `mapstructure:"rpc_url"`
	// Network overrides the network detected from the chain id when set.
	Network string `mapstructure:"network"`
	// Contract addresses, mainnet deployments by default.
	RegistryAddress         string        `mapstructure:"registry_address"`
	BaseRegistrarAddress    string        `mapstructure:"base_registrar_address"`
	ControllerAddress       string        `mapstructure:"controller_address"`
	ReverseRegistrarAddress string        `mapstructure:"reverse_registrar_address"`
	PublicResolverAddress   string        `mapstructure:"public_resolver_address"`
	RentPriceCacheTTL       time.Duration `mapstructure:"rent_price_cache_ttl"`
}

type UploadConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Token    string        `mapstructure:"token"`
	Gateway  string        `mapstructure:"gateway"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type KafkaPipelineConfig struct {
	Brokers       string        `mapstructure:"brokers"`
	RequestTopic  string        `mapstructure:"request_topic"`
	ResultTopic   string        `mapstructure:"result_topic"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	TrustStore    string        `mapstructure:"truststore_path"`
	ProducerCreds string        `mapstructure:"producer_credentials"`
	ConsumerCreds string        `mapstructure:"consumer_credentials"`
	Timeout       time.Duration `mapstructure:"timeout"`
	// ResultSigner, when set, is the only address results are accepted from.
	ResultSigner string `mapstructure:"result_signer"`
}

// Timing holds the commit-reveal waiting constants, in whole seconds.
type Timing struct {
	MinWaitSeconds             int64 `mapstructure:"min_wait_seconds"`
	ConfirmationPaddingSeconds int64 `mapstructure:"confirmation_padding_seconds"`
	WaitWithPaddingSeconds     int64 `mapstructure:"wait_with_padding_seconds"`
	ProviderLagPaddingSeconds  int64 `mapstructure:"provider_lag_padding_seconds"`
}

// Polling is the watcher cadence.
type Polling struct {
	ConfirmationInterval time.Duration `mapstructure:"confirmation_interval"`
	TickInterval         time.Duration `mapstructure:"tick_interval"`
	// ReadinessEvery throttles the block check to every n-th elapsed second.
	ReadinessEvery int64 `mapstructure:"readiness_every"`
	// CorrectionEvery re-derives the elapsed seconds from the confirmation
	// timestamp every n ticks.
	CorrectionEvery int64 `mapstructure:"correction_every"`
	// RequestTimeout bounds every chain request made by the watchers.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type Config struct {
	Username       string `mapstructure:"username"`
	StateDBDSN     string `mapstructure:"state_dbdsn"`
	KeyStoreDBDSN  string `mapstructure:"key_store_dbdsn"`
	AccountAddress string `mapstructure:"account_address"`

	HttpApiConfig *HttpApiConfig       `mapstructure:"http_api"`
	ChainConfig   *ChainConfig         `mapstructure:"chain"`
	UploadConfig  *UploadConfig        `mapstructure:"upload"`
	KafkaConfig   *KafkaPipelineConfig `mapstructure:"kafka"`
	Timing        Timing               `mapstructure:"timing"`
	Polling       Polling              `mapstructure:"polling"`
}

func DefaultTiming() Timing {
	return Timing{
		MinWaitSeconds:             60,
		ConfirmationPaddingSeconds: 5,
		WaitWithPaddingSeconds:     65,
		ProviderLagPaddingSeconds:  150,
	}
}

func DefaultPolling() Polling {
	return Polling{
		ConfirmationInterval: 2 * time.Second,
		TickInterval:         time.Second,
		ReadinessEvery:       2,
		CorrectionEvery:      10,
		RequestTimeout:       5 * time.Second,
	}
}

// Normalize fills zero values with defaults.
func (p Polling) Normalize() Polling {
	def := DefaultPolling()
	if p.ConfirmationInterval <= 0 {
		p.ConfirmationInterval = def.ConfirmationInterval
	}
	if p.TickInterval <= 0 {
		p.TickInterval = def.TickInterval
	}
	if p.ReadinessEvery <= 0 {
		p.ReadinessEvery = def.ReadinessEvery
	}
	if p.CorrectionEvery <= 0 {
		p.CorrectionEvery = def.CorrectionEvery
	}
	if p.RequestTimeout <= 0 {
		p.RequestTimeout = def.RequestTimeout
	}
	return p
}

// Normalize fills zero values with defaults and keeps the padded wait at
// least as long as the contract minimum.
func (t Timing) Normalize() Timing {
	def := DefaultTiming()
	if t.MinWaitSeconds <= 0 {
		t.MinWaitSeconds = def.MinWaitSeconds
	}
	if t.ConfirmationPaddingSeconds <= 0 {
		t.ConfirmationPaddingSeconds = def.ConfirmationPaddingSeconds
	}
	if t.WaitWithPaddingSeconds < t.MinWaitSeconds {
		t.WaitWithPaddingSeconds = t.MinWaitSeconds + t.ConfirmationPaddingSeconds
	}
	if t.ProviderLagPaddingSeconds <= 0 {
		t.ProviderLagPaddingSeconds = def.ProviderLagPaddingSeconds
	}
	return t
}
