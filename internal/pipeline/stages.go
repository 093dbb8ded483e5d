package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rspipe/internal"
	"rspipe/internal/config"
	"rspipe/internal/storage"
)

const (
	StageExtract   = "extract"
	StageNormalize = "normalize"
	StageBuild     = "build"
	StageSchema    = "schema"
)

// Runner executes the pipeline stages and records every run in the runs
// log, all stages of one invocation sharing a trace ID.
type Runner struct {
	cfg     config.Config
	db      *storage.DB
	log     *zap.Logger
	traceID string
}

func NewRunner(cfg config.Config, db *storage.DB, log *zap.Logger) *Runner {
	return &Runner{cfg: cfg, db: db, log: log, traceID: uuid.NewString()}
}

// TraceID identifies this invocation in the runs log.
func (r *Runner) TraceID() string { return r.traceID }

// RunAll executes the four stages in order, stopping at the first stage
// error.
func (r *Runner) RunAll(ctx context.Context, targetYear int) error {
	if err := r.RunExtract(ctx); err != nil {
		return err
	}
	if err := r.RunNormalize(ctx); err != nil {
		return err
	}
	if err := r.RunBuild(ctx, targetYear); err != nil {
		return err
	}
	return r.RunSchema(ctx)
}

func (r *Runner) RunExtract(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	log := r.log.With(zap.String("stage", StageExtract), zap.String("trace", r.traceID))
	log.Info("starting")

	total, succeeded, failed, err := ExtractSources(log, r.cfg.SourceDir, r.cfg.ExtractedDir)
	if err != nil {
		return err
	}

	r.record(internal.RunRecord{
		Stage: StageExtract, Files: total, Succeeded: succeeded, Failed: failed,
		DurationMs: time.Since(start).Milliseconds(),
	})
	log.Info("completed", zap.Int("files", total), zap.Int("succeeded", succeeded), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("extract: %d of %d files failed", failed, total)
	}
	return nil
}

func (r *Runner) RunNormalize(ctx context.Context) error {
	start := time.Now()
	log := r.log.With(zap.String("stage", StageNormalize), zap.String("trace", r.traceID))
	log.Info("starting", zap.Int("workers", r.cfg.NormalizeWorkers))

	total, succeeded, failed, err := NormalizeDir(ctx, log, r.cfg.ExtractedDir, r.cfg.NormalizedDir, r.cfg.NormalizeWorkers)
	if err != nil {
		return err
	}

	r.record(internal.RunRecord{
		Stage: StageNormalize, Files: total, Succeeded: succeeded, Failed: failed,
		DurationMs: time.Since(start).Milliseconds(),
	})
	log.Info("completed", zap.Int("files", total), zap.Int("succeeded", succeeded), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("normalize: %d of %d files failed", failed, total)
	}
	return nil
}

var reYearDir = regexp.MustCompile(`^year_(\d{4})$`)

// RunBuild assembles the canonical tables per fiscal-year directory. A
// target year of 0 builds every year found. Per-file failures are counted
// per batch and reported after every year has been processed.
func (r *Runner) RunBuild(ctx context.Context, targetYear int) error {
	log := r.log.With(zap.String("stage", StageBuild), zap.String("trace", r.traceID))
	log.Info("starting")

	years, err := listYearDirs(r.cfg.NormalizedDir)
	if err != nil {
		return err
	}
	if targetYear != 0 {
		if _, ok := years[targetYear]; !ok {
			return fmt.Errorf("year directory not found: year_%d", targetYear)
		}
		years = map[int]string{targetYear: years[targetYear]}
	}

	sorted := make([]int, 0, len(years))
	for y := range years {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	totalFailed := 0
	for _, year := range sorted {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()

		sources, err := LoadSourceTables(years[year])
		if err != nil {
			return fmt.Errorf("year %d: %w", year, err)
		}

		tables, summary := ProcessYear(log, year, sources)
		if err := WriteYearTables(r.cfg.TablesDir, year, tables); err != nil {
			return fmt.Errorf("year %d: %w", year, err)
		}
		if r.cfg.ExportWorkbooks {
			out := filepath.Join(r.cfg.TablesDir, fmt.Sprintf("year_%d", year), fmt.Sprintf("%d_all.xlsx", year))
			if err := ExportYearWorkbook(out, tables); err != nil {
				return fmt.Errorf("year %d: workbook: %w", year, err)
			}
		}

		r.record(internal.RunRecord{
			Stage: StageBuild, Year: year,
			Files: summary.Total, Succeeded: summary.Succeeded, Failed: summary.Failed,
			Records:    summary.Records,
			DurationMs: time.Since(start).Milliseconds(),
		})
		log.Info("year built",
			zap.Int("year", year),
			zap.Int("files", summary.Total),
			zap.Int("succeeded", summary.Succeeded),
			zap.Int("failed", summary.Failed),
			zap.Int("records", summary.Records))
		totalFailed += summary.Failed
	}

	if totalFailed > 0 {
		return fmt.Errorf("build: %d files failed", totalFailed)
	}
	if err := r.db.SetMetadata("last_clean_build", r.traceID); err != nil {
		log.Warn("metadata update failed", zap.Error(err))
	}
	return nil
}

// LastCleanBuild returns the trace ID of the most recent build that
// completed without file failures, or nil when none has.
func (r *Runner) LastCleanBuild() (*string, error) {
	return r.db.GetMetadata("last_clean_build")
}

func (r *Runner) RunSchema(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	log := r.log.With(zap.String("stage", StageSchema), zap.String("trace", r.traceID))
	log.Info("starting")

	generated, err := GenerateSchemas(log, r.cfg.TablesDir, r.cfg.SchemaDir, 10000)
	if err != nil {
		return err
	}

	r.record(internal.RunRecord{
		Stage: StageSchema, Files: generated, Succeeded: generated,
		DurationMs: time.Since(start).Milliseconds(),
	})
	log.Info("completed", zap.Int("schemas", generated))
	return nil
}

// Status returns the most recent runs, newest first.
func (r *Runner) Status(stage string, limit int) ([]internal.RunRecord, error) {
	return r.db.ListRuns(stage, limit)
}

func (r *Runner) record(rec internal.RunRecord) {
	rec.TraceID = r.traceID
	if err := r.db.InsertRun(rec); err != nil {
		r.log.Warn("run record failed", zap.Error(err))
	}
}

func listYearDirs(root string) (map[int]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}
	out := map[int]string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := reYearDir.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		out[year] = filepath.Join(root, e.Name())
	}
	return out, nil
}
