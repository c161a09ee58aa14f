package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MadMax2121/dataroom-client/internal/document"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Long: `Create a folder in the data room.

Example usage:
  dataroom mkdir "Due Diligence"
  dataroom mkdir Contracts --kind team`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		kind, _ := cmd.Flags().GetString("kind")

		folder, err := a.engine.CreateFolder(ctx, args[0], document.FolderKind(kind))
		if err != nil {
			return err
		}

		fmt.Printf("Created folder %s (id %s)\n", folder.Name, folder.ID)

		return nil
	},
}

var rmdirCmd = &cobra.Command{
	Use:   "rmdir <folder-id>",
	Short: "Delete a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.engine.DeleteFolder(ctx, args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted folder %s\n", args[0])

		return nil
	},
}

var renameFolderCmd = &cobra.Command{
	Use:   "rename-folder <folder-id> <new-name>",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.engine.RenameFolder(ctx, args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("Renamed folder %s to %s\n", args[0], args[1])

		return nil
	},
}

func init() {
	mkdirCmd.Flags().String("kind", string(document.KindPrivate), "Folder kind: private or team")

	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(rmdirCmd)
	rootCmd.AddCommand(renameFolderCmd)
}
