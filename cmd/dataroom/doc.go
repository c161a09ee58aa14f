package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv <document-id> <folder-id>",
	Short: "Move a document to another folder",
	Long: `Move a document to another folder.

The move is committed locally even when the remote call fails, so the
view stays responsive; a failure is reported and reconciled on the next
run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		_, holder, err := a.engine.FindDocument(args[0])
		if err != nil {
			return err
		}

		if err := a.engine.MoveDocument(ctx, args[0], holder.ID, args[1]); err != nil {
			return err
		}

		fmt.Printf("Moved document %s to folder %s\n", args[0], args[1])

		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <document-id> <new-name>",
	Short: "Rename a document",
	Long: `Rename a document. When the new name has no extension, the
original extension is kept, so "Budget.xlsx" renamed to "Budget2024"
becomes "Budget2024.xlsx".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		finalName, err := a.engine.RenameDocument(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Renamed document %s to %s\n", args[0], finalName)

		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <document-id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.engine.DeleteDocument(ctx, args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted document %s\n", args[0])

		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <document-id>",
	Short: "Download a document",
	Long: `Download a document's content to a local file. The output path
defaults to the document's name in the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		doc, _, err := a.engine.FindDocument(args[0])
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = filepath.Base(doc.Name)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()

		n, err := a.engine.DownloadDocument(ctx, args[0], f)
		if err != nil {
			os.Remove(out)
			return err
		}

		fmt.Printf("Downloaded %s (%d bytes) to %s\n", doc.Name, n, out)

		return nil
	},
}

func init() {
	downloadCmd.Flags().StringP("output", "o", "", "Output file path")

	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(downloadCmd)
}
