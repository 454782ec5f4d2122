package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/safety-cli/internal/ocr"
	"github.com/sells-group/safety-cli/internal/persist"
)

var (
	ingestMinParagraph int
	ingestOut          string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <pdf>",
	Short: "Classify a newspaper PDF with keyword rules and store the scored places",
	Long: "Runs the keyword-only pipeline without any remote calls and upserts every location " +
		"with known coordinates into places, place_safety_attributes and place_reviews.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pdfPath := args[0]

		if err := checkPDF(pdfPath); err != nil {
			return err
		}
		if err := cfg.Validate("ingest"); err != nil {
			return err
		}

		ex, err := ocr.NewExtractor(cfg.OCR)
		if err != nil {
			return err
		}
		p, err := buildPipeline(ex, nil, ingestMinParagraph)
		if err != nil {
			return err
		}

		st, err := initMigratedStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		report, err := runDocument(ctx, p, pdfPath, ingestOut)
		if err != nil {
			return err
		}

		res, err := persist.Persist(ctx, st, report.OrderedLocations())
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, report.Summary)
		fmt.Fprintf(os.Stdout, "Stored %d places (%d skipped without coordinates).\n", res.Persisted, res.Skipped)
		return nil
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestMinParagraph, "min-paragraph-chars", 50, "drop paragraphs of this many characters or fewer")
	ingestCmd.Flags().StringVar(&ingestOut, "out", "", "location artifact path (default <pdf>_parsed.json)")
	rootCmd.AddCommand(ingestCmd)
}
