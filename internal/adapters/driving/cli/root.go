// Package cli provides the docdesk command tree.
//
// Commands share package-level services that are built once the global
// flags are parsed. main installs a Factory; tests install services
// directly with SetServices.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

// Services bundles the driving ports the commands use.
type Services struct {
	Documents driving.DocumentService
	Search    driving.SearchService
	Chat      driving.ChatService
	Settings  driving.SettingsService
}

// Options carries the global flags into a Factory.
type Options struct {
	// ServerURL overrides server.url when non-empty.
	ServerURL string

	// ConfigDir overrides the config directory when non-empty.
	ConfigDir string
}

// Factory builds services from the global flags. It may return partial
// services with an error, for example settings without a backend when the
// configured server URL is invalid, so config commands can repair it.
type Factory func(opts Options) (*Services, error)

// localAnnotation marks commands that work without a document server.
const localAnnotation = "docdesk/local"

var (
	documentService driving.DocumentService
	searchService   driving.SearchService
	chatService     driving.ChatService
	settingsService driving.SettingsService

	factory Factory
)

// Global flags.
var (
	serverFlag  string
	configFlag  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "docdesk",
	Short: "Terminal client for a document server",
	Long: `docdesk uploads, lists, searches and deletes documents on a document
server, and chats with the server about them.

Run "docdesk tui" for the interactive interface, or use the commands below
for scripting. Settings live in ~/.docdesk/config.toml.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "document server URL (overrides server.url)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config directory (default ~/.docdesk)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log requests to stderr")
}

// SetVersion sets the version reported by the CLI and the MCP server.
func SetVersion(v string) {
	version = v
	mcp.Version = v
}

// SetFactory installs the function that builds services.
func SetFactory(f Factory) {
	factory = f
}

// SetServices installs services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	documentService = s.Documents
	searchService = s.Search
	chatService = s.Chat
	settingsService = s.Settings
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which commands use for
// requests and to stop long-running work. Command output goes to stdout
// so listings and --json can be piped; errors stay on stderr.
func ExecuteContext(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)
	if factory == nil {
		return nil
	}

	svcs, err := factory(Options{ServerURL: serverFlag, ConfigDir: configFlag})
	if svcs != nil {
		SetServices(svcs)
	}
	if err != nil {
		if isLocal(cmd) {
			logger.Warn("document server unavailable: %v", err)
			return nil
		}
		return fmt.Errorf("initialise: %w", err)
	}
	return nil
}

// isLocal reports whether cmd or one of its parents is marked local.
func isLocal(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[localAnnotation]; ok {
			return true
		}
	}
	return false
}

func local() map[string]string {
	return map[string]string{localAnnotation: "true"}
}
