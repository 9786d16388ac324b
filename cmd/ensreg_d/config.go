package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lidofinance/ensreg/client/config"
)

const envPrefix = "ENSREG"

const (
	flagConfig                   = "config"
	flagUserName                 = "username"
	flagAccountAddress           = "account_address"
	flagListenAddr               = "listen_addr"
	flagDebug                    = "debug"
	flagStateDBDSN               = "state_dbdsn"
	flagStoreDBDSN               = "key_store_dbdsn"
	flagRPCURL                   = "rpc_url"
	flagNetwork                  = "network"
	flagKafkaBrokers             = "kafka_brokers"
	flagKafkaRequestTopic        = "kafka_request_topic"
	flagKafkaResultTopic         = "kafka_result_topic"
	flagKafkaConsumerGroup       = "kafka_consumer_group"
	flagKafkaProducerCredentials = "producer_credentials"
	flagKafkaConsumerCredentials = "consumer_credentials"
	flagKafkaTrustStorePath      = "kafka_truststore_path"
	flagKafkaTimeout             = "kafka_timeout"
	flagUploadEndpoint           = "upload_endpoint"
	flagUploadToken              = "upload_token"
	flagUploadGateway            = "upload_gateway"
	flagObserver                 = "observer"
)

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	flagUserName:                 "username",
	flagAccountAddress:           "account_address",
	flagListenAddr:               "http_api.listen_addr",
	flagDebug:                    "http_api.debug",
	flagStateDBDSN:               "state_dbdsn",
	flagStoreDBDSN:               "key_store_dbdsn",
	flagRPCURL:                   "chain.rpc_url",
	flagNetwork:                  "chain.network",
	flagKafkaBrokers:             "kafka.brokers",
	flagKafkaRequestTopic:        "kafka.request_topic",
	flagKafkaResultTopic:         "kafka.result_topic",
	flagKafkaConsumerGroup:       "kafka.consumer_group",
	flagKafkaProducerCredentials: "kafka.producer_credentials",
	flagKafkaConsumerCredentials: "kafka.consumer_credentials",
	flagKafkaTrustStorePath:      "kafka.truststore_path",
	flagKafkaTimeout:             "kafka.timeout",
	flagUploadEndpoint:           "upload.endpoint",
	flagUploadToken:              "upload.token",
	flagUploadGateway:            "upload.gateway",
}

// configOnlyKeys have no flag but can still be set from the environment.
var configOnlyKeys = []string{
	"chain.registry_address",
	"chain.base_registrar_address",
	"chain.controller_address",
	"chain.reverse_registrar_address",
	"chain.public_resolver_address",
	"chain.rent_price_cache_ttl",
	"upload.timeout",
	"kafka.result_signer",
	"timing.min_wait_seconds",
	"timing.confirmation_padding_seconds",
	"timing.wait_with_padding_seconds",
	"timing.provider_lag_padding_seconds",
	"polling.confirmation_interval",
	"polling.tick_interval",
	"polling.readiness_every",
	"polling.correction_every",
	"polling.request_timeout",
}

func setFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(flagConfig, "", "Path to a YAML config file")
	flags.String(flagUserName, "testUser", "Username")
	flags.String(flagAccountAddress, "", "Address of the registering account, defaults to the key address")
	flags.String(flagListenAddr, "localhost:8080", "Listen Address")
	flags.Bool(flagDebug, false, "Log HTTP requests")
	flags.String(flagStateDBDSN, "./ensreg_client_state", "State DBDSN")
	flags.String(flagStoreDBDSN, "./ensreg_key_store", "Key Store DBDSN")
	flags.String(flagRPCURL, "http://localhost:8545", "Ethereum JSON-RPC endpoint")
	flags.String(flagNetwork, "", "Network name, detected from the chain id when empty")
	flags.String(flagKafkaBrokers, "localhost:9093", "Comma separated Kafka brokers")
	flags.String(flagKafkaRequestTopic, "ensreg_requests", "Topic the signed transaction requests are sent to")
	flags.String(flagKafkaResultTopic, "ensreg_results", "Topic the transaction results are read from")
	flags.String(flagKafkaConsumerGroup, "", "Kafka consumer group, defaults to the username")
	flags.String(flagKafkaProducerCredentials, "", "Producer credentials for Kafka: username:password")
	flags.String(flagKafkaConsumerCredentials, "", "Consumer credentials for Kafka: username:password")
	flags.String(flagKafkaTrustStorePath, "", "Path to kafka truststore")
	flags.Duration(flagKafkaTimeout, 0, "Time to wait for a transaction to be submitted")
	flags.String(flagUploadEndpoint, "", "Image upload endpoint")
	flags.String(flagUploadToken, "", "Image upload bearer token")
	flags.String(flagUploadGateway, "", "IPFS gateway used to build image URLs")
}

// loadConfig merges the flags, the ENSREG_ environment and the optional config
// file. Flags set on the command line win over everything else.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	for _, key := range configOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	configFile, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &config.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if cfg.KafkaConfig != nil && cfg.KafkaConfig.ConsumerGroup == "" {
		cfg.KafkaConfig.ConsumerGroup = cfg.Username
	}
	if cfg.HttpApiConfig == nil {
		cfg.HttpApiConfig = &config.HttpApiConfig{}
	}
	return cfg, nil
}
