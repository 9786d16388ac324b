package main

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/juju/fslock"
	"github.com/spf13/cobra"

	"github.com/lidofinance/ensreg/client/api/http_api"
	"github.com/lidofinance/ensreg/client/modules/keystore"
	"github.com/lidofinance/ensreg/client/modules/logger"
	"github.com/lidofinance/ensreg/client/modules/state"
	"github.com/lidofinance/ensreg/client/services"
	"github.com/lidofinance/ensreg/client/types"
)

const shutdownTimeout = 10 * time.Second

func init() {
	setFlags(rootCmd)
}

func genKeyPairCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gen_keys",
		Short: "generates a signing key and prints its backup phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			key, mnemonic, err := keystore.NewKey()
			if err != nil {
				return err
			}
			if err = putKey(cfg.KeyStoreDBDSN, cfg.Username, key); err != nil {
				return err
			}
			fmt.Printf("key %s generated for user %s and saved to %s\n",
				crypto.PubkeyToAddress(key.PublicKey).Hex(), cfg.Username, cfg.KeyStoreDBDSN)
			fmt.Printf("backup phrase: %s\n", mnemonic)
			return nil
		},
	}
}

func importKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import_keys [backup phrase words...]",
		Short: "restores a signing key from its backup phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			key, err := keystore.KeyFromBackupPhrase(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err = putKey(cfg.KeyStoreDBDSN, cfg.Username, key); err != nil {
				return err
			}
			fmt.Printf("key %s imported for user %s\n", crypto.PubkeyToAddress(key.PublicKey).Hex(), cfg.Username)
			return nil
		},
	}
}

func putKey(keyStoreDBDSN, username string, key *ecdsa.PrivateKey) error {
	keyStore, err := keystore.NewLevelDBKeyStore(keyStoreDBDSN)
	if err != nil {
		return fmt.Errorf("failed to init key store: %w", err)
	}
	defer keyStore.Close()

	if err = keyStore.PutKey(username, key); err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}
	return nil
}

const flagNewStateDBDSN = "new_state_dbdsn"

func resetStateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset_state",
		Short: "switches to a fresh state, the old state stays on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			newStateDBDSN, err := cmd.Flags().GetString(flagNewStateDBDSN)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %w", err)
			}

			lock := fslock.New(cfg.StateDBDSN + ".lock")
			if err = lock.TryLock(); err != nil {
				return fmt.Errorf("failed to lock state %s, is the daemon running? %w", cfg.StateDBDSN, err)
			}
			defer lock.Unlock()

			path, err := resetState(cfg.StateDBDSN, cfg.Username, newStateDBDSN)
			if err != nil {
				return err
			}
			fmt.Printf("state was reset, start the daemon with --%s %s\n", flagStateDBDSN, path)
			return nil
		},
	}
	cmd.Flags().String(flagNewStateDBDSN, "", "Path of the new state, defaults to the old path with a timestamp suffix")
	return cmd
}

func resetState(stateDBDSN, topic, newStateDBDSN string) (string, error) {
	stg, err := state.NewLevelDBState(stateDBDSN, topic)
	if err != nil {
		return "", fmt.Errorf("failed to init state: %w", err)
	}
	defer stg.Close()

	path, err := stg.Reset(newStateDBDSN)
	if err != nil {
		return "", fmt.Errorf("failed to reset state: %w", err)
	}
	return path, nil
}

func startClientCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "starts the ensreg daemon",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				log.Fatalf("failed to read configuration: %v", err)
			}
			observer, err := cmd.Flags().GetBool(flagObserver)
			if err != nil {
				log.Fatalf("failed to read configuration: %v", err)
			}
			role := types.RoleActive
			if observer {
				role = types.RoleObserver
			}

			// a second daemon on the same state would race the first one's watchers
			lock := fslock.New(cfg.StateDBDSN + ".lock")
			if err = lock.TryLock(); err != nil {
				log.Fatalf("failed to lock state %s: %v", cfg.StateDBDSN, err)
			}
			defer lock.Unlock()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if err = services.InitServices(ctx, cfg, role); err != nil {
				log.Fatalf("Failed to init services: %v", err)
			}
			app := services.App()
			defer func() {
				if err := app.Close(); err != nil {
					log.Printf("failed to close services: %v", err)
				}
			}()

			if err = app.Start(ctx); err != nil {
				log.Fatalf("Failed to start services: %v", err)
			}

			server := &http_api.RESTApiProvider{}
			if err = server.NewServer(cfg.HttpApiConfig, app.RegistrationService(), logger.WithName(app.Logger(), "api")); err != nil {
				log.Fatalf("Failed to init HTTP server: %v", err)
			}

			serverErr := make(chan error, 1)
			go func() {
				app.Logger().Log("HTTP API listening on %s", cfg.HttpApiConfig.ListenAddr)
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigs:
				log.Println("Received signal, stopping daemon...")
			case err = <-serverErr:
				log.Printf("HTTP server error: %v", err)
			}

			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err = server.Stop(shutdownCtx); err != nil {
				log.Printf("failed to stop HTTP server: %v", err)
			}
			log.Println("Daemon stopped, exiting")
		},
	}
	cmd.Flags().Bool(flagObserver, false, "Only report registration progress, never send transactions")
	return cmd
}

var rootCmd = &cobra.Command{
	Use:   "ensreg_d",
	Short: "ENS registration daemon",
}

func main() {
	rootCmd.AddCommand(
		startClientCommand(),
		genKeyPairCommand(),
		importKeyCommand(),
		resetStateCommand(),
	)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute root command: %v", err)
	}
}
