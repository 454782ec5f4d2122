// Package pipeline runs a newspaper PDF through extraction, classification,
// scoring and aggregation to produce a safety report.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/safety-cli/internal/classify"
	"github.com/sells-group/safety-cli/internal/geo"
	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/ocr"
)

// ErrNoRelevantContent is returned when no paragraph of a document passes
// the relevance filter.
var ErrNoRelevantContent = eris.New("pipeline: no relevant content")

// Options holds the text budget settings of a run.
type Options struct {
	// MinParagraphChars drops shorter paragraphs at extraction.
	MinParagraphChars int
	// MaxChunkChars bounds the paragraph text sent in one classifier call.
	MaxChunkChars int
	// ChunkOverheadChars is reserved per paragraph for prompt framing.
	ChunkOverheadChars int
}

// Pipeline orchestrates a single document run. Chunks are classified one
// at a time.
type Pipeline struct {
	extractor ocr.Extractor
	filter    *classify.RelevanceFilter
	chain     *classify.Chain
	resolver  geo.Resolver
	cities    geo.CityDetector
	params    model.AlgorithmParameters
	opts      Options
}

// New creates a new Pipeline with all dependencies.
func New(
	extractor ocr.Extractor,
	filter *classify.RelevanceFilter,
	chain *classify.Chain,
	resolver geo.Resolver,
	cities geo.CityDetector,
	params model.AlgorithmParameters,
	opts Options,
) *Pipeline {
	if opts.MaxChunkChars <= 0 {
		opts.MaxChunkChars = 12000
	}
	return &Pipeline{
		extractor: extractor,
		filter:    filter,
		chain:     chain,
		resolver:  resolver,
		cities:    cities,
		params:    params,
		opts:      opts,
	}
}

// Run processes the PDF at pdfPath and returns its report.
func (p *Pipeline) Run(ctx context.Context, pdfPath string) (*model.Report, error) {
	log := zap.L().With(zap.String("pdf", pdfPath), zap.String("strategy", p.chain.Name()))
	log.Info("pipeline: starting run")
	start := time.Now()

	paragraphs, err := ocr.ExtractParagraphs(ctx, p.extractor, pdfPath, p.opts.MinParagraphChars)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: extract paragraphs")
	}

	relevant := p.filter.Filter(paragraphs)
	log.Info("pipeline: paragraphs filtered",
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("relevant", len(relevant)),
	)
	if len(relevant) == 0 {
		return nil, eris.Wrapf(ErrNoRelevantContent, "pdf %s", pdfPath)
	}

	chunks := classify.Chunk(relevant, p.opts.MaxChunkChars, p.opts.ChunkOverheadChars)
	stats := model.RunStats{
		Paragraphs:         len(paragraphs),
		RelevantParagraphs: len(relevant),
		Chunks:             len(chunks),
	}

	parts := make([]*model.Classification, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrapf(err, "pipeline: cancelled before chunk %d", i+1)
		}

		res, err := p.chain.ClassifyChunk(ctx, chunk)
		if err != nil {
			return nil, eris.Wrapf(err, "pipeline: classify chunk %d", i+1)
		}
		switch {
		case res.PrimaryErr != nil:
			stats.FallbackChunks++
		case res.Strategy == classify.StrategyRemote:
			stats.RemoteChunks++
		}

		log.Debug("pipeline: chunk classified",
			zap.Int("chunk", i+1),
			zap.Int("of", len(chunks)),
			zap.Int("paragraphs", len(chunk)),
			zap.String("strategy", res.Strategy),
			zap.Int("attempts", res.Attempts),
			zap.Int("locations", res.Classification.Len()),
		)
		parts = append(parts, res.Classification)
	}

	report := BuildReport(pdfPath, classify.Merge(parts...), p.resolver, p.cities, p.params)
	stats.Incidents = report.Stats.Incidents
	stats.PositiveEvents = report.Stats.PositiveEvents
	report.Stats = stats
	report.Summary = Summarize(report)

	log.Info("pipeline: run complete",
		zap.Int("locations", len(report.Locations)),
		zap.Int("cities", len(report.Cities)),
		zap.Int("remote_chunks", stats.RemoteChunks),
		zap.Int("fallback_chunks", stats.FallbackChunks),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// IsNoRelevantContent reports whether err means the document had nothing
// to classify.
func IsNoRelevantContent(err error) bool {
	return errors.Is(err, ErrNoRelevantContent)
}
