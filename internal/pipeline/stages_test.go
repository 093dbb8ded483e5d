package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rspipe/internal/config"
	"rspipe/internal/rsformat"
	"rspipe/internal/storage"
)

func testRunner(t *testing.T) (*Runner, config.Config) {
	t.Helper()
	base := t.TempDir()
	cfg := config.Config{
		DBPath:           filepath.Join(base, "runs.db"),
		SourceDir:        filepath.Join(base, "source"),
		ExtractedDir:     filepath.Join(base, "extracted"),
		NormalizedDir:    filepath.Join(base, "normalized"),
		TablesDir:        filepath.Join(base, "tables"),
		SchemaDir:        filepath.Join(base, "schemas"),
		NormalizeWorkers: 2,
	}
	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRunner(cfg, db, zap.NewNop()), cfg
}

func seedNormalized(t *testing.T, dir string, year int) {
	t.Helper()
	yearDir := filepath.Join(dir, "year_"+strconv.Itoa(year))
	require.NoError(t, os.MkdirAll(yearDir, 0o755))
	headers := []string{"事業名", "府省", "事業の目的", "予算の状況-2022年度当初予算（百万円）", "2022年度執行額"}
	require.NoError(t, writeCSV(
		filepath.Join(yearDir, strconv.Itoa(year)+"_レビューシート.csv"),
		headers,
		[][]string{{"X事業", "総務省", "目的", "100", "80"}},
	))
}

func TestRunBuild(t *testing.T) {
	r, cfg := testRunner(t)
	seedNormalized(t, cfg.NormalizedDir, 2022)

	require.NoError(t, r.RunBuild(context.Background(), 0))

	out := filepath.Join(cfg.TablesDir, "year_2022", rsformat.FileName(rsformat.KindProjectOverview, 2022))
	records, err := readCSV(out)
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one record")
	assert.Equal(t, "X事業", records[1][3])

	runs, err := r.Status(StageBuild, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2022, runs[0].Year)
	assert.Equal(t, 1, runs[0].Succeeded)
	assert.Equal(t, r.TraceID(), runs[0].TraceID)

	trace, err := r.LastCleanBuild()
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.Equal(t, r.TraceID(), *trace)
}

func TestRunBuildMissingYear(t *testing.T) {
	r, cfg := testRunner(t)
	seedNormalized(t, cfg.NormalizedDir, 2022)

	err := r.RunBuild(context.Background(), 2014)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year_2014")
}
