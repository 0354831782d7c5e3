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
		Use:   "bindkit-demo",
		Short: "Demo server for the bindkit UI-binding helpers",
		Long: `bindkit-demo serves a small signup form wired through the bindkit
helpers: reactive form state with validation, debounced live state
streaming over WebSocket, and an instrumented fetch proxy.`,
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
			fmt.Printf("bindkit-demo %s (%s)\n", version, commit)
		},
	}
}
