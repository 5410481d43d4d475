package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:   "askdesk",
	Short: "Upload a PDF and ask questions about it",
	Long:  "askdesk submits a PDF document to a document service and then\nanswers natural-language questions against it.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runShell,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to config file")
	pf.BoolVar(&rootFlags.debug, "debug", false, "Enable development logging")

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
