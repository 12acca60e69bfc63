package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or change settings",
	Annotations: local(),
	Long: `Reads and writes ~/.docdesk/config.toml. Keys:

  server.url             document server URL (default http://localhost:8000)
  server.timeout         per-request timeout, e.g. 30s (0 = none)
  server.token           bearer token sent with every request
  server.rate_limit      requests per second (0 = unlimited)
  api.documents_shape    document list shape: auto, envelope or array
  search.empty_input     blank search query: warn or ignore
  chat.empty_input       blank chat message: warn or ignore
  notifications.timeout  how long TUI notifications stay visible`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:     "set [key] [value]",
	Short:   "Change a setting",
	Example: "  docdesk config set server.url https://docs.example.com",
	Args:    cobra.ExactArgs(2),
	RunE:    runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "output settings as JSON")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	entries, err := settingsService.Entries()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if configJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Settings (%s)\n\n", settingsService.Path())
	for _, e := range entries {
		value := e.Value
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-22s %s\n", e.Key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.Path())
	return nil
}
