package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/watch"
	"github.com/custodia-labs/docdesk/internal/core/domain"
)

var (
	uploadJSON  bool
	uploadWatch string
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload files to the document server",
	Long: `Uploads each file under its base name. Failed uploads are reported and
the remaining files are still sent.

With --watch DIR, docdesk keeps running after the listed files are sent and
uploads every file that appears or changes in DIR until interrupted.`,
	Example: `  docdesk upload report.pdf notes.txt
  docdesk upload --watch ~/Scans`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 && uploadWatch == "" {
			return errors.New("requires at least one file or --watch DIR")
		}
		return nil
	},
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "output uploaded documents as JSON")
	uploadCmd.Flags().StringVarP(&uploadWatch, "watch", "w", "", "keep uploading new files from `DIR`")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := cmd.Context()
	uploaded := make([]domain.Document, 0, len(args))
	failed := 0

	for _, path := range args {
		doc, err := documentService.UploadFile(ctx, path)
		if err != nil {
			failed++
			cmd.PrintErrf("Upload failed: %s: %s\n", path, domain.ErrorDetail(err))
			continue
		}
		uploaded = append(uploaded, *doc)
		if !uploadJSON {
			printUploaded(cmd, doc)
		}
	}

	if uploadJSON && len(args) > 0 {
		data, err := json.MarshalIndent(uploaded, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(args))
	}

	if uploadWatch == "" {
		return nil
	}
	return watchUploads(cmd)
}

func watchUploads(cmd *cobra.Command) error {
	w := watch.New(uploadWatch, documentService, watch.WithHandler(func(o watch.Outcome) {
		switch {
		case o.Err != nil:
			cmd.PrintErrf("Upload failed: %s: %s\n", o.Path, domain.ErrorDetail(o.Err))
		case uploadJSON:
			data, err := json.Marshal(o.Document)
			if err == nil {
				cmd.Println(string(data))
			}
		default:
			printUploaded(cmd, o.Document)
		}
	}))

	if !uploadJSON {
		cmd.Printf("Watching %s for new files (Ctrl+C to stop)\n", w.Dir())
	}
	return w.Run(cmd.Context())
}

func printUploaded(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("Uploaded %s (%s, %s words) as %s\n",
		doc.Filename, domain.FormatFileSize(doc.Size), doc.WordCountLabel(), doc.ID)
}
