package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bizcompare/bizcompare/internal/interfaces/cli/migrate"
	"github.com/bizcompare/bizcompare/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bizcompare",
		Short: "bizcompare - business directory and price comparison service",
		Long:  `bizcompare serves aggregated company profiles, tiered subscriptions, and billing integration.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
