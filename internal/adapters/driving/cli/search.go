package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search stored documents",
	Long: `Performs a keyword search on the document server. All arguments are
joined into one query. Matches in each snippet are highlighted when the
output is a terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchText(cmd, results)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results *domain.SearchResults) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results *domain.SearchResults) {
	if results.Empty() {
		cmd.Printf("No results found for %q. Try different keywords.\n", results.Query)
		return
	}

	s := styles.DefaultStyles()
	cmd.Printf("Found %d result(s) for %q\n\n", results.TotalResults, results.Query)
	for i, hit := range results.Hits {
		cmd.Printf("[%d] %s\n", i+1, hit.Filename)
		if hit.ContentSnippet != "" {
			cmd.Printf("    %s\n", s.Highlight(hit.ContentSnippet, results.Query))
		}
		cmd.Println()
	}
	if len(results.Hits) < results.TotalResults {
		cmd.Printf("Showing %d of %d.\n", len(results.Hits), results.TotalResults)
	}
}
