package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marzgate/marzgate/internal/interfaces/cli/migrate"
	"github.com/marzgate/marzgate/internal/interfaces/cli/server"
	"github.com/marzgate/marzgate/internal/interfaces/cli/superadmin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "marzgate",
		Short: "Marzgate - multi-tenant VPN reseller panel",
		Long:  `Marzgate is the backend for a multi-tenant VPN reseller panel with remote account provisioning and prepaid balance top-ups.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		superadmin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
