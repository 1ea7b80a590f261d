package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lurelight/lurelight/pkg/capture"
)

func newSnapshotCommand() *cobra.Command {
	var (
		outDir string
		width  int64
		height int64
	)

	cmd := &cobra.Command{
		Use:   "snapshot <domain> <url>",
		Short: "Capture a reference screenshot for a brand domain",
		Long: `Render a page in headless Chrome and store the screenshot as a brand
fingerprint reference. The file is named <domain>.png so the visual
matcher can map it back to the owning domain.

Example:

  lurelight snapshot paypal.com https://www.paypal.com/signin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, url := args[0], args[1]

			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Engine.ScreenshotDir
			}

			opts := capture.DefaultOptions()
			if width > 0 {
				opts.Width = width
			}
			if height > 0 {
				opts.Height = height
			}

			data, err := capture.Screenshot(cmd.Context(), url, opts)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create screenshot directory: %w", err)
			}
			target := filepath.Join(outDir, domain+".png")
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("write screenshot: %w", err)
			}

			log.Info().Str("domain", domain).Str("path", target).Msg("Reference screenshot stored")
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Override the reference screenshot directory")
	cmd.Flags().Int64Var(&width, "width", 0, "Viewport width")
	cmd.Flags().Int64Var(&height, "height", 0, "Viewport height")

	return cmd
}
