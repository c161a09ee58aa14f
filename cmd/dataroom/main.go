// Command dataroom is a CLI client for a virtual data room: it browses,
// searches, uploads, moves, renames and deletes folders and documents in
// the remote store, mirroring them in a local tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dataroom",
	Short: "Virtual data room client",
	Long: `dataroom synchronizes a local view of your data room folders and
documents with the remote store.

Configuration is read from the environment (or a .env file):
  DATAROOM_API_URL     remote store base URL (required)
  DATAROOM_API_TOKEN   API token (required)
  DATAROOM_STATE_DB    local state database path (default ~/.dataroom/state.db)
  ENVIRONMENT          "production" switches logs to JSON`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
