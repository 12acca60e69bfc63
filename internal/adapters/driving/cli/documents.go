package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "List or delete stored documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents on the server",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Long: `Deletes a document from the server. Without --yes you are asked to
confirm; when stdin is not a terminal the command refuses instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentsDelete,
}

var (
	documentsJSON bool
	deleteYes     bool
)

// isTerminal reports whether in is an interactive terminal.
var isTerminal = func(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output documents as JSON")
	documentsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return err
	}

	if documentsJSON {
		if docs == nil {
			docs = []domain.Document{}
		}
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded yet.")
		return nil
	}

	cmd.Printf("%-36s  %-30s  %10s  %6s  %-19s  %s\n", "ID", "FILENAME", "SIZE", "WORDS", "UPLOADED", "TYPE")
	for i := range docs {
		d := &docs[i]
		cmd.Printf("%-36s  %-30s  %10s  %6s  %-19s  %s\n",
			d.ID,
			d.Filename,
			domain.FormatFileSize(d.Size),
			d.WordCountLabel(),
			domain.FormatTimestamp(d.UploadTime),
			d.FileType,
		)
	}
	cmd.Printf("\n%d document(s)\n", len(docs))
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := cmd.Context()
	id := strings.TrimSpace(args[0])
	label := id
	if docs, err := documentService.List(ctx); err == nil {
		if doc, ok := domain.FindDocument(docs, id); ok {
			label = doc.Filename
		}
	}

	if !deleteYes {
		in := cmd.InOrStdin()
		if !isTerminal(in) {
			return fmt.Errorf("%w: stdin is not a terminal, pass --yes to delete %s", domain.ErrDeleteDeclined, label)
		}
		cmd.Printf("Are you sure you want to delete %q? [y/N]: ", label)
		if !confirmed(in) {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := documentService.Delete(ctx, id); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", label)
	return nil
}

// confirmed reads one line and accepts y or yes.
func confirmed(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
