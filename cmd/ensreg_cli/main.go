package main

import (
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lidofinance/ensreg/client/api/dto"
	"github.com/lidofinance/ensreg/client/api/http_api/requests"
	"github.com/lidofinance/ensreg/client/api/http_api/responses"
	"github.com/lidofinance/ensreg/client/types"
)

const (
	flagListenAddr = "listen_addr"

	flagMode            = "mode"
	flagYears           = "years"
	flagOwner           = "owner"
	flagReverse         = "reverse"
	flagRecord          = "record"
	flagAvatar          = "avatar"
	flagHeader          = "header"
	flagTransferTo      = "transfer_to"
	flagClearRecords    = "clear_records"
	flagSetAddress      = "set_address"
	flagTransferControl = "transfer_control"
)

var (
	actionable = color.New(color.FgGreen).SprintFunc()
	waiting    = color.New(color.FgYellow).SprintFunc()
)

func init() {
	rootCmd.PersistentFlags().String(flagListenAddr, "localhost:8080", "Listen Address")
}

var rootCmd = &cobra.Command{
	Use:   "ensreg_cli",
	Short: "ENS registration daemon cli utilities",
}

func main() {
	rootCmd.AddCommand(
		listCommand(),
		statusCommand(),
		startCommand(),
		actionCommand(),
		abandonCommand(),
	)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute root command: %v", err)
	}
}

func clientFromFlags(cmd *cobra.Command) (*apiClient, error) {
	listenAddr, err := cmd.Flags().GetString(flagListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return newAPIClient(listenAddr), nil
}

func printStatus(out io.Writer, status *types.Status) {
	switch status.Step {
	case types.StepWaitCommitConfirmation:
		fmt.Fprintf(out, "%s: %s\n", status.Name, waiting(status.Step))
	case types.StepWaitProtocolInterval:
		fmt.Fprintf(out, "%s: %s (%ds since commit confirmation)\n",
			status.Name, waiting(status.Step), status.SecondsSinceCommitConfirmed)
	default:
		fmt.Fprintf(out, "%s: %s\n", status.Name, actionable(status.Step))
	}
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "returns all registrations in progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromFlags(cmd)
			if err != nil {
				return err
			}
			var statuses []*types.Status
			if err = client.do(http.MethodGet, "/registrations", nil, &statuses); err != nil {
				return fmt.Errorf("failed to list registrations: %w", err)
			}
			for _, status := range statuses {
				printStatus(os.Stdout, status)
			}
			return nil
		},
	}
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [name]",
		Args:  cobra.ExactArgs(1),
		Short: "returns the current step of a registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromFlags(cmd)
			if err != nil {
				return err
			}
			var status types.Status
			if err = client.do(http.MethodGet, registrationPath(args[0], "/status"), nil, &status); err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			printStatus(os.Stdout, &status)
			return nil
		},
	}
}

func startCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [name]",
		Args:  cobra.ExactArgs(1),
		Short: "starts a registration flow for the name",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromFlags(cmd)
			if err != nil {
				return err
			}
			form, err := startForm(cmd, args[0])
			if err != nil {
				return err
			}
			var status types.Status
			if err = client.do(http.MethodPost, "/registrations", form, &status); err != nil {
				return fmt.Errorf("failed to start registration: %w", err)
			}
			printStatus(os.Stdout, &status)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String(flagMode, string(types.ModeCreate), "create, edit, renew, set_name or transfer")
	flags.Int64(flagYears, 0, "Registration or renewal length in years")
	flags.String(flagOwner, "", "Owner address of the registered name")
	flags.Bool(flagReverse, false, "Set the reverse record for the owner")
	flags.StringSlice(flagRecord, nil, "Text record as key=value, can be repeated")
	flags.String(flagAvatar, "", "Local image to upload as the avatar record")
	flags.String(flagHeader, "", "Local image to upload as the header record")
	flags.String(flagTransferTo, "", "Address the name is transferred to")
	flags.Bool(flagClearRecords, false, "Clear the records before the transfer")
	flags.Bool(flagSetAddress, false, "Point the address record at the new owner")
	flags.Bool(flagTransferControl, false, "Also transfer the registry ownership")
	return cmd
}

func startForm(cmd *cobra.Command, name string) (*requests.StartRegistrationForm, error) {
	flags := cmd.Flags()
	form := &requests.StartRegistrationForm{Name: name}

	var err error
	if form.Mode, err = flags.GetString(flagMode); err != nil {
		return nil, err
	}
	if form.DurationYears, err = flags.GetInt64(flagYears); err != nil {
		return nil, err
	}
	if form.Owner, err = flags.GetString(flagOwner); err != nil {
		return nil, err
	}
	if form.SetReverseRecord, err = flags.GetBool(flagReverse); err != nil {
		return nil, err
	}
	if form.TransferTo, err = flags.GetString(flagTransferTo); err != nil {
		return nil, err
	}
	if form.ClearRecords, err = flags.GetBool(flagClearRecords); err != nil {
		return nil, err
	}
	if form.SetAddress, err = flags.GetBool(flagSetAddress); err != nil {
		return nil, err
	}
	if form.TransferControl, err = flags.GetBool(flagTransferControl); err != nil {
		return nil, err
	}

	records, err := flags.GetStringSlice(flagRecord)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		kv := strings.SplitN(record, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, fmt.Errorf("invalid record %q, expected key=value", record)
		}
		form.Records = append(form.Records, dto.RecordDTO{Key: kv[0], Value: kv[1]})
	}

	for _, image := range []struct{ key, flag string }{
		{types.RecordAvatar, flagAvatar},
		{types.RecordHeader, flagHeader},
	} {
		path, err := flags.GetString(image.flag)
		if err != nil {
			return nil, err
		}
		if path == "" {
			continue
		}
		form.Images = append(form.Images, imageDTO(image.key, path))
	}
	return form, nil
}

func imageDTO(key, path string) dto.ImageDTO {
	return dto.ImageDTO{
		Key:      key,
		Path:     path,
		Mime:     mime.TypeByExtension(filepath.Ext(path)),
		Filename: filepath.Base(path),
	}
}

func actionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "action [name]",
		Args:  cobra.ExactArgs(1),
		Short: "runs the action of the current registration step",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromFlags(cmd)
			if err != nil {
				return err
			}
			var result responses.ActionResponse
			if err = client.do(http.MethodPost, registrationPath(args[0], "/action"), nil, &result); err != nil {
				return fmt.Errorf("failed to run action: %w", err)
			}
			fmt.Printf("%s: %s action sent\n", result.Name, actionable(result.Step))
			return nil
		},
	}
}

func abandonCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon [name]",
		Args:  cobra.ExactArgs(1),
		Short: "stops tracking a registration and drops its record",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromFlags(cmd)
			if err != nil {
				return err
			}
			if err = client.do(http.MethodDelete, registrationPath(args[0], ""), nil, nil); err != nil {
				return fmt.Errorf("failed to abandon registration: %w", err)
			}
			fmt.Printf("%s: %s\n", args[0], responses.Abandoned)
			return nil
		},
	}
}
