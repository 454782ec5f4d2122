package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/safety-cli/internal/config"
	"github.com/sells-group/safety-cli/internal/ocr"
	"github.com/sells-group/safety-cli/internal/persist"
	"github.com/sells-group/safety-cli/internal/pipeline"
	anthropicpkg "github.com/sells-group/safety-cli/pkg/anthropic"
)

var (
	analyzeFormat  string
	analyzeOut     string
	analyzePersist bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf> [api-key]",
	Short: "Extract and score incidents from a newspaper PDF",
	Long: "Classifies the PDF's relevant paragraphs with the remote model, falling back to keyword rules " +
		"per chunk, writes <pdf>_parsed.json and prints the aggregated report.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pdfPath := args[0]

		if err := checkPDF(pdfPath); err != nil {
			return err
		}
		var explicitKey string
		if len(args) > 1 {
			explicitKey = args[1]
		}
		key := cfg.ResolveAnthropicKey(explicitKey)
		if key == "" {
			return eris.Errorf("missing API key: pass it as the second argument or set SAFETY_ANTHROPIC_KEY (or %s)", config.LegacyKeyEnv)
		}
		if analyzeFormat != pipeline.FormatJSON && analyzeFormat != pipeline.FormatYAML {
			return eris.Errorf("unknown format %q: use json or yaml", analyzeFormat)
		}
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		ex, err := ocr.NewExtractor(cfg.OCR)
		if err != nil {
			return err
		}
		p, err := buildPipeline(ex, anthropicpkg.NewClient(key), cfg.OCR.MinParagraphChars)
		if err != nil {
			return err
		}

		report, err := runDocument(ctx, p, pdfPath, analyzeOut)
		if err != nil {
			return err
		}

		if analyzePersist {
			if err := cfg.Validate("migrate"); err != nil {
				return err
			}
			st, err := initMigratedStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			res, err := persist.Persist(ctx, st, report.OrderedLocations())
			if err != nil {
				return err
			}
			zap.L().Info("analyze: persisted locations",
				zap.Int("persisted", res.Persisted),
				zap.Int("skipped", res.Skipped),
			)
		}

		if err := pipeline.WriteReport(os.Stdout, report, analyzeFormat); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, report.Summary)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", pipeline.FormatJSON, "report format: json or yaml")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "location artifact path (default <pdf>_parsed.json)")
	analyzeCmd.Flags().BoolVar(&analyzePersist, "persist", false, "also write scored places to the store")
	rootCmd.AddCommand(analyzeCmd)
}
