package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/store"
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "List stored places with their safety scores",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("migrate"); err != nil {
			return err
		}

		st, err := initMigratedStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		limit, _ := cmd.Flags().GetInt("limit")
		minScore, _ := cmd.Flags().GetFloat64("min-score")
		asJSON, _ := cmd.Flags().GetBool("json")

		places, err := st.ListPlaces(ctx, store.PlaceFilter{MinScore: minScore, Limit: limit})
		if err != nil {
			return eris.Wrap(err, "places list")
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(places)
		}
		if len(places) == 0 {
			fmt.Fprintln(os.Stderr, "No places found.")
			return nil
		}
		formatPlacesList(os.Stdout, places)
		return nil
	},
}

func formatPlacesList(w io.Writer, places []model.Place) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSAFETY\tELO\tLAT\tLNG\tUPDATED")
	for _, p := range places {
		fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%.4f\t%.4f\t%s\n",
			p.Name, p.SafetyScore, p.EloScore, p.Lat, p.Lng, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func init() {
	placesCmd.Flags().Int("limit", 100, "max places to list (0 for all)")
	placesCmd.Flags().Float64("min-score", 0, "minimum safety score (0-100)")
	placesCmd.Flags().Bool("json", false, "print JSON instead of a table")
	rootCmd.AddCommand(placesCmd)
}
