// Package commands wires the lurelight CLI: global flags, configuration
// loading and the subcommands.
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lurelight/lurelight/pkg/appctx"
	"github.com/lurelight/lurelight/pkg/config"
	"github.com/lurelight/lurelight/pkg/logging"
)

const cliExecutable = "lurelight"

// NewCommand constructs the top-level lurelight CLI command, wiring global
// flags and shared configuration loading.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		verbosityCount int
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Lurelight detects brand impersonation from URLs and page screenshots",
		Long: `Lurelight is a phishing decision engine. It extracts structural features
from URLs, matches page screenshots against known brand fingerprints using
perceptual hashing, and arbitrates whether the visited domain legitimately
owns the visual identity it presents.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; absent in production.
			_ = godotenv.Load()

			manager := config.NewManager()
			if err := manager.Load(cmd.Flags(), configFile); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			cfg := manager.Config()
			level := cfg.Log.Level
			switch {
			case verbosityCount == 1:
				level = "debug"
			case verbosityCount >= 2:
				level = "trace"
			}
			if err := logging.ConfigureGlobalLogging(level, cfg.Log.Format); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			ctx := appctx.WithConfig(cmd.Context(), manager)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newFeaturesCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newSnapshotCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// configFromCommand pulls the loaded configuration out of the command
// context; PersistentPreRunE guarantees it is there for subcommands.
func configFromCommand(cmd *cobra.Command) (config.Config, error) {
	manager, ok := appctx.Config(cmd.Context())
	if !ok {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return manager.Config(), nil
}
