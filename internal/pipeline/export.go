package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rspipe/internal/rsformat"
)

// utf8BOM keeps the CSV outputs readable in spreadsheet tools that guess
// the encoding from the first bytes.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteYearTables writes every non-empty table of one year batch as a BOM
// prefixed UTF-8 CSV under dir/year_<year>/.
func WriteYearTables(dir string, year int, tables map[rsformat.Kind]*rsformat.Table) error {
	yearDir := filepath.Join(dir, fmt.Sprintf("year_%d", year))
	if err := os.MkdirAll(yearDir, 0o755); err != nil {
		return err
	}

	for _, kind := range rsformat.AllKinds {
		t := tables[kind]
		if t == nil || len(t.Rows) == 0 {
			continue
		}
		path := filepath.Join(yearDir, rsformat.FileName(kind, year))
		if err := writeCSV(path, t.Columns, t.Rows); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func writeCSV(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// ExportYearWorkbook writes the whole year batch as a single xlsx workbook,
// one sheet per non-empty table.
func ExportYearWorkbook(outputPath string, tables map[rsformat.Kind]*rsformat.Table) error {
	f := excelize.NewFile()
	first := true

	for _, kind := range rsformat.AllKinds {
		t := tables[kind]
		if t == nil || len(t.Rows) == 0 {
			continue
		}

		// sheet names are capped at 31 chars by the format
		sheet := string(kind)
		if len([]rune(sheet)) > 31 {
			sheet = string([]rune(sheet)[:31])
		}
		if first {
			_ = f.SetSheetName(f.GetSheetName(0), sheet)
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}

		for c, h := range t.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}
		for r, row := range t.Rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
	}

	if first {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
