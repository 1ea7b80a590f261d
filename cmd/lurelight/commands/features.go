package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lurelight/lurelight/pkg/urlfeat"
)

func newFeaturesCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "features <url>",
		Short: "Extract the structural feature vector for a URL",
		Long: `Extract the fixed-order feature vector used as classifier input.
Extraction is total: any string yields a vector, malformed URLs simply
score as abnormal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns := urlfeat.Columns()
			values := urlfeat.Extract(args[0]).Values()

			if jsonOutput {
				ordered := make(map[string]float64, urlfeat.NumFeatures)
				for i, name := range columns {
					ordered[name] = values[i]
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ordered)
			}

			for i, name := range columns {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %g\n", name, values[i])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit features as JSON")
	return cmd
}
