package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	derrors "github.com/MadMax2121/dataroom-client/internal/errors"
	"github.com/MadMax2121/dataroom-client/internal/upload"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload files to the active folder",
	Long: `Upload one or more files into a folder, sequentially.

When a file's name collides with an existing document, the batch stops
unless --on-duplicate says what to do:
  keep-both   upload under a numbered name ("Report (2).pdf")
  replace     delete the existing document first

Files already uploaded before a failure stay uploaded; the rest of the
batch is abandoned.

Example usage:
  dataroom upload nda.pdf terms.docx
  dataroom upload report.pdf --folder 12 --tags q3,finance
  dataroom upload report.pdf --on-duplicate keep-both`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if folderID, _ := cmd.Flags().GetString("folder"); folderID != "" {
			if err := a.engine.SetActiveFolder(folderID); err != nil {
				return err
			}
		}

		folder := a.engine.ActiveFolder()
		if folder == nil {
			return fmt.Errorf("%w; create one with: dataroom mkdir <name>", derrors.ErrNoActiveFolder)
		}

		tags, _ := cmd.Flags().GetStringSlice("tags")

		var files []*upload.SelectedFile

		var opened []*os.File

		defer func() {
			for _, f := range opened {
				f.Close()
			}
		}()

		for _, arg := range args {
			f, err := os.Open(arg)
			if err != nil {
				return fmt.Errorf("opening %s: %w", arg, err)
			}

			opened = append(opened, f)
			files = append(files, &upload.SelectedFile{
				Name:    filepath.Base(arg),
				Content: f,
				Tags:    tags,
			})
		}

		batch := upload.NewBatch(folder, files)

		if dups := batch.Duplicates(); len(dups) > 0 {
			onDuplicate, _ := cmd.Flags().GetString("on-duplicate")

			switch onDuplicate {
			case "keep-both":
				batch.ResolveAll(upload.KeepBoth)
			case "replace":
				batch.ResolveAll(upload.Replace)
			case "":
				for _, d := range dups {
					fmt.Fprintf(os.Stderr, "duplicate: %s already exists in %s\n", d.Name, folder.Name)
				}

				return fmt.Errorf("%w; rerun with --on-duplicate keep-both or replace", derrors.ErrUnresolvedDuplicates)
			default:
				return fmt.Errorf("unknown --on-duplicate value %q (keep-both or replace)", onDuplicate)
			}
		}

		pipeline := upload.NewPipeline(a.engine, a.logger, a.cfg.UploadNoticeDelay, func(p upload.Progress) {
			fmt.Printf("Uploaded %d/%d (%d%%)\n", p.Uploaded, p.Total, p.Percent)
		})

		results, err := pipeline.Run(ctx, batch)

		for _, r := range results {
			fmt.Printf("  %s (document id %s)\n", r.Name, r.Document.ID)
		}

		if err != nil {
			return err
		}

		fmt.Printf("Upload complete: %d file(s) in %s\n", len(results), folder.Name)

		return nil
	},
}

func init() {
	uploadCmd.Flags().String("folder", "", "Destination folder ID (defaults to the active folder)")
	uploadCmd.Flags().StringSlice("tags", nil, "Tags applied to every uploaded document")
	uploadCmd.Flags().String("on-duplicate", "", "How to resolve name collisions: keep-both or replace")

	rootCmd.AddCommand(uploadCmd)
}
