package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/safety-cli/internal/classify"
	"github.com/sells-group/safety-cli/internal/geo"
	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/resilience"
)

type fakeExtractor struct {
	pages []string
	err   error
}

func (f *fakeExtractor) ExtractPages(_ context.Context, _ string) ([]string, error) {
	return f.pages, f.err
}

// stubClassifier returns results in order, repeating the last one.
type stubClassifier struct {
	name    string
	results []*model.Classification
	errs    []error
	calls   int
}

func (s *stubClassifier) Name() string { return s.name }

func (s *stubClassifier) Classify(_ context.Context, _ []string) (*model.Classification, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if len(s.results) == 0 {
		return model.NewClassification(), nil
	}
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	return s.results[i], nil
}

const samplePage = "A chain snatcher struck in T Nagar. Residents were alarmed.\n\n" +
	"The weather is pleasant today.\n\n" +
	"Police announced a crackdown in Velachery."

func noSleep() resilience.RetryConfig {
	cfg := resilience.ClassifierRetryConfig()
	cfg.Sleep = func(context.Context, time.Duration) error { return nil }
	return cfg
}

func newTestPipeline(ex *fakeExtractor, chain *classify.Chain, opts Options) *Pipeline {
	return New(
		ex,
		classify.NewRelevanceFilter(classify.DefaultRelevanceKeywords),
		chain,
		geo.NewTableResolver(nil),
		geo.NewKeywordCityDetector(nil),
		model.DefaultParameters(),
		opts,
	)
}

func TestRun_RulesOnly(t *testing.T) {
	p := newTestPipeline(&fakeExtractor{pages: []string{samplePage}},
		classify.NewChain(nil, classify.NewDefaultRuleClassifier()), Options{})

	report, err := p.Run(context.Background(), "/tmp/paper.pdf")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/paper.pdf", report.Source)
	assert.Equal(t, []string{"T Nagar", "Velachery"}, report.LocationOrder)

	tn := report.Locations["T Nagar"]
	require.NotNil(t, tn)
	require.Len(t, tn.Incidents, 1)
	assert.Equal(t, model.CategoryPropertyCrime, tn.Incidents[0].Category)
	assert.Equal(t, "A chain snatcher struck in T Nagar.", tn.Incidents[0].Summary)
	assert.InDelta(t, 8.0, tn.FinalScore, 1e-9)
	assert.Equal(t, "T Nagar", tn.Place)
	assert.True(t, tn.Coordinates.Known())

	vel := report.Locations["Velachery"]
	require.NotNil(t, vel)
	assert.InDelta(t, 12.0, vel.ScoreBeforeClamp, 1e-9)
	assert.InDelta(t, 10.0, vel.FinalScore, 1e-9)

	require.Equal(t, []string{"Chennai"}, report.CityOrder)
	chennai := report.Cities["Chennai"]
	assert.Equal(t, 2, chennai.IncidentsCount)
	assert.InDelta(t, 0.0, chennai.ScoreBeforeClamp, 1e-9)
	assert.InDelta(t, 0.0, chennai.FinalScore, 1e-9)
	lat, lng, ok := chennai.Coordinates.Values()
	require.True(t, ok)
	assert.InDelta(t, (13.0399+12.9937)/2, lat, 1e-9)
	assert.InDelta(t, (80.2337+80.2230)/2, lng, 1e-9)

	assert.Equal(t, model.RunStats{
		Paragraphs:         3,
		RelevantParagraphs: 2,
		Chunks:             1,
		Incidents:          1,
		PositiveEvents:     1,
	}, report.Stats)
	assert.Contains(t, report.Summary, "1 incidents and 1 positive events across 2 locations in 1 cities")
	assert.Equal(t, model.DefaultParameters(), report.AlgorithmUsed)
}

func TestRun_NoRelevantContent(t *testing.T) {
	p := newTestPipeline(&fakeExtractor{pages: []string{"The weather is pleasant today.\n\nA new bakery opened."}},
		classify.NewChain(nil, classify.NewDefaultRuleClassifier()), Options{})

	_, err := p.Run(context.Background(), "x.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRelevantContent))
	assert.True(t, IsNoRelevantContent(err))
}

func TestRun_ShortParagraphsDropped(t *testing.T) {
	p := newTestPipeline(&fakeExtractor{pages: []string{"Police raid.\n\nThe weather is pleasant today."}},
		classify.NewChain(nil, classify.NewDefaultRuleClassifier()), Options{MinParagraphChars: 50})

	_, err := p.Run(context.Background(), "x.pdf")
	assert.True(t, IsNoRelevantContent(err))
}

func TestRun_ExtractError(t *testing.T) {
	p := newTestPipeline(&fakeExtractor{err: errors.New("corrupt pdf")},
		classify.NewChain(nil, classify.NewDefaultRuleClassifier()), Options{})

	_, err := p.Run(context.Background(), "x.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline: extract paragraphs")
	assert.False(t, IsNoRelevantContent(err))
}

func TestRun_RemoteChunksAreMerged(t *testing.T) {
	cls := model.NewClassification()
	cls.Add("Adyar", model.Incident{Category: model.CategoryViolentCrime, Summary: "s", OriginalText: "p"})
	primary := &stubClassifier{name: classify.StrategyRemote, results: []*model.Classification{cls}}

	chain := classify.NewChain(primary, classify.NewDefaultRuleClassifier(), classify.WithRetry(noSleep()))
	// A budget this small puts every paragraph in its own chunk.
	p := newTestPipeline(&fakeExtractor{pages: []string{samplePage}}, chain, Options{MaxChunkChars: 10})

	report, err := p.Run(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 2, report.Stats.Chunks)
	assert.Equal(t, 2, report.Stats.RemoteChunks)
	assert.Equal(t, 0, report.Stats.FallbackChunks)

	adyar := report.Locations["Adyar"]
	require.NotNil(t, adyar)
	assert.Len(t, adyar.Incidents, 2)
	assert.InDelta(t, 4.0, adyar.FinalScore, 1e-9)
	assert.Equal(t, []string{geo.UnknownCity}, report.CityOrder)
}

func TestRun_FallbackPerChunk(t *testing.T) {
	cls := model.NewClassification()
	cls.Add("Adyar", model.Incident{Category: model.CategoryAccident, Summary: "s", OriginalText: "p"})

	fail := errors.New("unavailable")
	// First chunk exhausts five attempts, second chunk succeeds.
	primary := &stubClassifier{
		name:    classify.StrategyRemote,
		results: []*model.Classification{nil, nil, nil, nil, nil, cls},
		errs:    []error{fail, fail, fail, fail, fail},
	}
	chain := classify.NewChain(primary, classify.NewDefaultRuleClassifier(), classify.WithRetry(noSleep()))
	p := newTestPipeline(&fakeExtractor{pages: []string{samplePage}}, chain, Options{MaxChunkChars: 10})

	report, err := p.Run(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, 6, primary.calls)
	assert.Equal(t, 1, report.Stats.FallbackChunks)
	assert.Equal(t, 1, report.Stats.RemoteChunks)
	assert.Equal(t, []string{"T Nagar", "Adyar"}, report.LocationOrder)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestPipeline(&fakeExtractor{pages: []string{samplePage}},
		classify.NewChain(nil, classify.NewDefaultRuleClassifier()), Options{})
	_, err := p.Run(ctx, "x.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBuildReport_UnknownCoordinates(t *testing.T) {
	merged := model.NewClassification()
	merged.Add("Kodambakkam High Road", model.Incident{Category: model.CategoryAccident, Summary: "s", OriginalText: "p"})
	merged.Ensure("Unknown")

	r := BuildReport("x.pdf", merged, geo.NewTableResolver(nil), geo.NewKeywordCityDetector(nil), model.DefaultParameters())

	road := r.Locations["Kodambakkam High Road"]
	assert.Equal(t, "Kodambakkam High", road.Place)
	assert.False(t, road.Coordinates.Known())

	unknown := r.Locations["Unknown"]
	assert.Empty(t, unknown.Incidents)
	assert.InDelta(t, 10.0, unknown.FinalScore, 1e-9)

	city := r.Cities[geo.UnknownCity]
	require.NotNil(t, city)
	assert.Equal(t, 1, city.IncidentsCount)
	assert.InDelta(t, -1.0, city.ScoreBeforeClamp, 1e-9)
	assert.False(t, city.Coordinates.Known())
}
