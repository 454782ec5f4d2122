package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/safety-cli/internal/classify"
	"github.com/sells-group/safety-cli/internal/geo"
	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/ocr"
	"github.com/sells-group/safety-cli/internal/pipeline"
	"github.com/sells-group/safety-cli/internal/resilience"
	"github.com/sells-group/safety-cli/internal/scorer"
	"github.com/sells-group/safety-cli/internal/store"
	anthropicpkg "github.com/sells-group/safety-cli/pkg/anthropic"
)

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}

// initMigratedStore opens the store and ensures its tables exist. Callers
// should defer st.Close().
func initMigratedStore(ctx context.Context) (store.Store, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// checkPDF verifies that path names a readable regular file.
func checkPDF(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return eris.Wrapf(err, "pdf not found: %s", path)
	}
	if info.IsDir() {
		return eris.Errorf("pdf path is a directory: %s", path)
	}
	return nil
}

// buildPipeline wires a pipeline from cfg. A nil client classifies with
// keyword rules only.
func buildPipeline(ex ocr.Extractor, client anthropicpkg.Client, minParagraphChars int) (*pipeline.Pipeline, error) {
	params := model.DefaultParameters()
	if err := scorer.ValidateParameters(params); err != nil {
		return nil, err
	}

	var primary classify.Classifier
	if client != nil {
		primary = classify.NewRemoteClassifier(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens,
			classify.WithRequestsPerMinute(cfg.Anthropic.RequestsPerMinute))
	}
	chain := classify.NewChain(primary, classify.NewDefaultRuleClassifier(),
		classify.WithRetry(resilience.FromRetrySettings(
			cfg.Classify.MaxAttempts, cfg.Classify.InitialBackoffMs, cfg.Classify.MaxBackoffMs)),
		classify.WithBreaker(resilience.FromCircuitSettings(
			"anthropic", cfg.Classify.CircuitFailureThreshold, cfg.Classify.CircuitResetTimeoutSecs)),
	)

	return pipeline.New(
		ex,
		classify.NewRelevanceFilter(classify.DefaultRelevanceKeywords),
		chain,
		geo.NewTableResolver(nil),
		geo.NewKeywordCityDetector(nil),
		params,
		pipeline.Options{
			MinParagraphChars:  minParagraphChars,
			MaxChunkChars:      cfg.Classify.MaxChunkChars,
			ChunkOverheadChars: cfg.Classify.ChunkOverheadChars,
		},
	), nil
}

// runDocument runs p on pdfPath and writes the location artifact next to
// it, or to artifactPath when set.
func runDocument(ctx context.Context, p *pipeline.Pipeline, pdfPath, artifactPath string) (*model.Report, error) {
	report, err := p.Run(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	if artifactPath == "" {
		artifactPath = pipeline.ParsedPath(pdfPath)
	}
	if err := pipeline.WriteLocations(artifactPath, report); err != nil {
		return nil, err
	}
	return report, nil
}
