package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"rspipe/internal/rsformat"
)

func sampleTables() map[rsformat.Kind]*rsformat.Table {
	tables := make(map[rsformat.Kind]*rsformat.Table)
	for _, kind := range rsformat.AllKinds {
		tables[kind] = rsformat.NewTable(kind, 2022)
	}
	tables[rsformat.KindRemarks].Append(rsformat.Remarks{
		Common:  rsformat.Common{SheetKind: rsformat.SheetKindReview, FiscalYear: 2022, BusinessID: 1, ProjectName: "X事業"},
		Remarks: "特になし",
	})
	return tables
}

func TestWriteYearTablesSkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := WriteYearTables(dir, 2022, sampleTables()); err != nil {
		t.Fatal(err)
	}

	yearDir := filepath.Join(dir, "year_2022")
	entries, err := os.ReadDir(yearDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries=%d, empty tables must not produce files", len(entries))
	}
	if entries[0].Name() != rsformat.FileName(rsformat.KindRemarks, 2022) {
		t.Fatalf("name=%q", entries[0].Name())
	}

	records, err := readCSV(filepath.Join(yearDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[1][13] != "特になし" {
		t.Fatalf("records=%v", records)
	}
}

func TestExportYearWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2022_all.xlsx")
	if err := ExportYearWorkbook(path, sampleTables()); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != string(rsformat.KindRemarks) {
		t.Fatalf("sheets=%v", sheets)
	}
	v, err := f.GetCellValue(sheets[0], "D2")
	if err != nil {
		t.Fatal(err)
	}
	if v != "X事業" {
		t.Fatalf("cell=%q", v)
	}
}
