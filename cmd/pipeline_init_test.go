package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/safety-cli/internal/config"
	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/persist"
	"github.com/sells-group/safety-cli/internal/store"
)

type fakeExtractor struct {
	pages []string
}

func (f *fakeExtractor) ExtractPages(_ context.Context, _ string) ([]string, error) {
	return f.pages, nil
}

const testPage = "A chain snatcher struck in T Nagar. Residents were alarmed by it on Monday night.\n\n" +
	"The weather is pleasant today across the coastal districts this week.\n\n" +
	"Police announced a crackdown in Velachery after complaints from shop owners."

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = &config.Config{
		Store: config.StoreConfig{Driver: "sqlite", DatabaseURL: filepath.Join(t.TempDir(), "safety.db")},
		Classify: config.ClassifyConfig{
			MaxChunkChars:      12000,
			ChunkOverheadChars: 200,
			MaxAttempts:        1,
		},
	}
}

func TestCheckPDF(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))

	assert.NoError(t, checkPDF(pdf))

	err := checkPDF(filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf not found")

	err = checkPDF(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestBuildPipeline_RulesOnly(t *testing.T) {
	setTestConfig(t)
	pdf := filepath.Join(t.TempDir(), "paper.pdf")

	p, err := buildPipeline(&fakeExtractor{pages: []string{testPage}}, nil, 50)
	require.NoError(t, err)

	report, err := runDocument(context.Background(), p, pdf, "")
	require.NoError(t, err)

	tn, ok := report.Locations["T Nagar"]
	require.True(t, ok)
	assert.InDelta(t, 8.0, tn.FinalScore, 1e-9)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(pdf), "paper_parsed.json"))
	require.NoError(t, err)
	var locs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &locs))
	assert.Contains(t, locs, "T Nagar")
	assert.Contains(t, locs, "Velachery")
}

func TestRunDocument_CustomArtifactPath(t *testing.T) {
	setTestConfig(t)
	out := filepath.Join(t.TempDir(), "custom.json")

	p, err := buildPipeline(&fakeExtractor{pages: []string{testPage}}, nil, 0)
	require.NoError(t, err)

	_, err = runDocument(context.Background(), p, "paper.pdf", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestRunDocument_NoRelevantContent(t *testing.T) {
	setTestConfig(t)
	dir := t.TempDir()

	p, err := buildPipeline(&fakeExtractor{pages: []string{"Markets closed higher on Friday."}}, nil, 0)
	require.NoError(t, err)

	_, err = runDocument(context.Background(), p, filepath.Join(dir, "paper.pdf"), "")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "paper_parsed.json"))
}

func TestIngestFlow_PersistsToSQLite(t *testing.T) {
	setTestConfig(t)
	ctx := context.Background()

	st, err := initMigratedStore(ctx)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	p, err := buildPipeline(&fakeExtractor{pages: []string{testPage}}, nil, 50)
	require.NoError(t, err)
	report, err := runDocument(ctx, p, filepath.Join(t.TempDir(), "paper.pdf"), "")
	require.NoError(t, err)

	res, err := persist.Persist(ctx, st, report.OrderedLocations())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Persisted)

	places, err := st.ListPlaces(ctx, store.PlaceFilter{})
	require.NoError(t, err)
	require.Len(t, places, 2)

	byName := make(map[string]model.Place)
	for _, pl := range places {
		byName[pl.Name] = pl
	}
	assert.InDelta(t, 80.0, byName["T Nagar"].SafetyScore, 1e-9)
	assert.InDelta(t, 100.0, byName["Velachery"].SafetyScore, 1e-9)
}

func TestInitStore_UnknownDriver(t *testing.T) {
	setTestConfig(t)
	cfg.Store.Driver = "mysql"

	_, err := initStore(context.Background())
	require.Error(t, err)
}
