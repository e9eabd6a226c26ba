package app

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./cmd/app/config.yml"

// NewRootCommand returns the care2share CLI. Without a subcommand it serves the Ledger API.
func NewRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "care2share",
		Short:         "Care2Share meal swipe and dining points ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the Ledger API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Start(configPath)
			},
		},
		&cobra.Command{
			Use:   "gateway",
			Short: "Run the Composite Gateway in front of the Ledger API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return StartGateway(configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Migrate(configPath)
			},
		},
	)

	return root
}
