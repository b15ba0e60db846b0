package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mouldsite",
	Short:         "Mould & Restoration Co. website",
	Long:          "Serves the marketing site, its suburb location pages and the demo CRM API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, auditCmd, sitemapCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mouldsite:", err)
		os.Exit(1)
	}
}
