package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MadMax2121/dataroom-client/internal/document"
	derrors "github.com/MadMax2121/dataroom-client/internal/errors"
	"github.com/MadMax2121/dataroom-client/internal/search"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List folders and the active folder's documents",
	Long: `List all folders and the documents of the active folder.

The active folder and sort preference persist between runs. Selecting the
sort key you are already sorted by flips the direction.

Example usage:
  dataroom ls                    # last-used folder and sort
  dataroom ls --folder 12        # switch the active folder
  dataroom ls --sort date        # newest first on first use, then toggles`,
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

		if sortKey, _ := cmd.Flags().GetString("sort"); sortKey != "" {
			switch key := search.SortKey(sortKey); key {
			case search.SortByName, search.SortByDate, search.SortBySize:
				a.engine.SelectSortKey(key)
			default:
				return fmt.Errorf("unknown sort key %q (name, date or size)", sortKey)
			}
		}

		a.engine.SetQuery("")

		printFolders(a.engine.Folders(), a.engine.Session().ActiveFolderID)

		active := a.engine.ActiveFolder()
		if active == nil {
			fmt.Println("\nNo folders yet. Create one with: dataroom mkdir <name>")
			return nil
		}

		fmt.Printf("\nDocuments in %s:\n", active.Name)
		printDocuments(a.engine.VisibleDocuments())

		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the active folder's documents",
	Long: `Rank the active folder's documents against a query.

Matching is fuzzy: exact name matches rank first, then prefix matches,
then word-prefix matches, then in-order character matches. Document type
and tags are matched too. Non-matching documents are hidden.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		active := a.engine.ActiveFolder()
		if active == nil {
			return derrors.ErrNoActiveFolder
		}

		a.engine.SetQuery(args[0])

		docs := a.engine.VisibleDocuments()
		if len(docs) == 0 {
			fmt.Printf("No documents in %s match %q\n", active.Name, args[0])
			return nil
		}

		printDocuments(docs)

		return nil
	},
}

func printFolders(folders []*document.Folder, activeID string) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tKIND\tDOCS")

	for _, f := range folders {
		marker := " "
		if f.ID == activeID {
			marker = "*"
		}

		fmt.Fprintf(w, "%s %s\t%s\t%s\t%d\n", marker, f.ID, f.Name, f.Kind, len(f.Documents))
	}

	w.Flush()
}

func printDocuments(docs []*document.Document) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tMODIFIED\tTAGS")

	now := time.Now()

	for _, d := range docs {
		shown := document.DisplayTimestamp(d, now)

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, d.Type,
			document.FormatSize(d.SizeBytes),
			document.FormatRelativeTime(&shown),
			joinTags(d.Tags),
		)
	}

	w.Flush()
}

func joinTags(tags []string) string {
	out := ""

	for i, tag := range tags {
		if i > 0 {
			out += ", "
		}

		out += tag
	}

	return out
}

func init() {
	lsCmd.Flags().String("folder", "", "Folder ID to make active")
	lsCmd.Flags().String("sort", "", "Sort key: name, date or size")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(searchCmd)
}
