package pipeline

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"rspipe/internal"
	"rspipe/internal/util"
)

var (
	reNameYear = regexp.MustCompile(`(\d{4})`)
	reNameCode = regexp.MustCompile(`database_(\d{2})(\d{2})(\d{2})`)
)

// YearFromFilename derives the fiscal year of one source download. Names
// carry either a 4-digit year (database2014.xlsx) or a YYMMDD release code
// whose leading 2-digit year is a Reiwa-era 20xx from code 19 on and a
// Heisei offset before that, so database_220427.xlsx is the 2022 release.
func YearFromFilename(name string) (int, bool) {
	base := filepath.Base(name)

	if m := reNameCode.FindStringSubmatch(base); m != nil {
		code, _ := strconv.Atoi(m[1])
		if code >= 19 {
			return 2000 + code, true
		}
		return 1988 + code, true
	}

	if m := reNameYear.FindStringSubmatch(base); m != nil {
		year, _ := strconv.Atoi(m[1])
		if year >= 1990 && year <= 2100 {
			return year, true
		}
	}
	return 0, false
}

// ExtractSources decodes every workbook, archive and HTML table under
// srcDir into per-sheet raw CSVs under rawDir/year_<N>/. Files whose year
// cannot be derived are skipped with a warning.
func ExtractSources(log *zap.Logger, srcDir, rawDir string) (total, succeeded, failed int, err error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("read source dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".xlsx", ".zip", ".html", ".htm":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		total++
		year, ok := YearFromFilename(name)
		if !ok {
			log.Warn("no year in file name", zap.String("file", name))
			failed++
			continue
		}

		yearDir := filepath.Join(rawDir, fmt.Sprintf("year_%d", year))
		if err := os.MkdirAll(yearDir, 0o755); err != nil {
			return total, succeeded, failed, err
		}

		path := filepath.Join(srcDir, name)
		var extractErr error
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx":
			extractErr = extractWorkbookFile(path, year, yearDir)
		case ".zip":
			extractErr = extractArchive(path, year, yearDir)
		default:
			extractErr = extractHTMLFile(path, year, yearDir)
		}

		if extractErr != nil {
			log.Error("extract failed", zap.String("file", name), zap.Error(extractErr))
			failed++
			continue
		}
		log.Info("extracted", zap.String("file", name), zap.Int("year", year))
		succeeded++
	}
	return total, succeeded, failed, nil
}

func extractWorkbookFile(path string, year int, outDir string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return extractWorkbook(f, year, outDir)
}

func extractWorkbook(f *excelize.File, year int, outDir string) error {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		// ragged rows are padded to the header width
		width := len(rows[0])
		for i := range rows {
			for len(rows[i]) < width {
				rows[i] = append(rows[i], "")
			}
		}

		path := filepath.Join(outDir, fmt.Sprintf("%d_%s.csv", year, sheet))
		if err := writeCSV(path, rows[0], rows[1:]); err != nil {
			return err
		}
	}
	return nil
}

// extractArchive pulls every workbook out of a zip download, including
// nested directories.
func extractArchive(path string, year int, outDir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, entry := range r.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name), ".xlsx") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}

		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}
		err = extractWorkbook(f, year, outDir)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}
	}
	return nil
}

// LoadSourceTables reads the CSV files of one year directory back into
// source tables, header-normalized and in file-name order so entity IDs
// stay stable across runs.
func LoadSourceTables(dir string) ([]internal.SourceTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	tables := make([]internal.SourceTable, 0, len(names))
	for _, name := range names {
		t, err := loadSourceTable(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func loadSourceTable(path string) (internal.SourceTable, error) {
	records, err := readCSV(path)
	if err != nil {
		return internal.SourceTable{}, err
	}
	if len(records) == 0 {
		return internal.SourceTable{Name: filepath.Base(path)}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = util.NormalizeHeader(h)
	}

	rows := make([]internal.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(internal.Row, len(headers))
		for i, h := range headers {
			if i >= len(rec) {
				continue
			}
			// duplicate headers keep the first column, matching
			// BuildColumnIndex
			if _, ok := row[h]; ok {
				continue
			}
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}

	return internal.SourceTable{
		Name:    filepath.Base(path),
		Headers: headers,
		Rows:    rows,
	}, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
