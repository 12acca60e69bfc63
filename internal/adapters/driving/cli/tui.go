package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/logger"
)

var (
	tuiLogFile string
	tuiTab     string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface.

Tabs:
  F1 Upload     type or paste a file path and press Enter
  F2 Documents  d deletes the selected document, r refreshes
  F3 Search     keyword search with highlighted matches
  F4 Chat       ask questions, ctrl+l clears the conversation
  F5 Settings   edit settings

Tab and Shift+Tab cycle tabs. Ctrl+C quits. --tab picks the first tab.

With --verbose, logs go to a file next to the config instead of the screen.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write verbose logs to `FILE`")
	tuiCmd.Flags().StringVar(&tuiTab, "tab", "upload", "first tab (upload, documents, search, chat, settings)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	start, ok := messages.ParseTab(tuiTab)
	if !ok {
		return fmt.Errorf("unknown tab %q", tuiTab)
	}

	ports := tui.NewPorts(documentService, searchService, chatService, settingsService)
	ports.ServerURL = serverFlag
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.StartOn(start)

	if path := tuiLogPath(); path != "" {
		restore, err := logger.ToFile(path)
		if err != nil {
			return err
		}
		defer restore() //nolint:errcheck
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiLogPath returns where logs go while the TUI owns the terminal.
func tuiLogPath() string {
	if tuiLogFile != "" {
		return tuiLogFile
	}
	if !logger.IsVerbose() || settingsService == nil {
		return ""
	}
	return filepath.Join(filepath.Dir(settingsService.Path()), "tui.log")
}
