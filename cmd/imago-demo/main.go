// Command imago-demo serves a demo page with a live image upload
// button wired to a disk-backed upload endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "imago-demo",
		Short: "Demo server for the imago upload button",
		Long: `imago-demo serves a page with a live image upload button.

The component runs on the server: the browser talks to it over a
WebSocket, sending events and receiving DOM patches. Selected
images are validated server-side and stored through the upload
endpoint.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("imago-demo %s (%s)\n", version, commit)
		},
	}
}
