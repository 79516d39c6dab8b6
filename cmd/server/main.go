// Package main is the entry point for the AGE Toolbox server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/age-toolbox/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "age-toolbox",
	Short: "AGE Toolbox dice roller and stunt reference",
	Long: `AGE Toolbox serves an Adventure Game Engine dice roller and a searchable
stunt catalog over a JSON API, and ships a client for trying it from a terminal.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
