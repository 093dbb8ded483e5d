package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rspipe/internal/util"
)

// NormalizeDir mirrors every raw CSV under rawDir into normDir with cells
// run through the text normalizer and headers through the header
// normalizer. Files are independent of each other, so the stage fans out
// over a bounded worker group; entity IDs are not assigned until build.
func NormalizeDir(ctx context.Context, log *zap.Logger, rawDir, normDir string, workers int) (total, succeeded, failed int, err error) {
	var files []string
	err = filepath.WalkDir(rawDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("walk %s: %w", rawDir, err)
	}

	var ok, bad atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rel, err := filepath.Rel(rawDir, path)
			if err != nil {
				return err
			}
			out := filepath.Join(normDir, rel)

			if err := normalizeFile(path, out); err != nil {
				log.Error("normalize failed", zap.String("file", rel), zap.Error(err))
				bad.Add(1)
				return nil
			}
			log.Debug("normalized", zap.String("file", rel))
			ok.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return len(files), int(ok.Load()), int(bad.Load()), err
	}
	return len(files), int(ok.Load()), int(bad.Load()), nil
}

func normalizeFile(src, dst string) error {
	records, err := readCSV(src)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = util.NormalizeHeader(h)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = util.NormalizeText(v)
		}
		rows = append(rows, row)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return writeCSV(dst, headers, rows)
}
