package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestYearFromFilename(t *testing.T) {
	cases := []struct {
		name string
		year int
		ok   bool
	}{
		{"database2014.xlsx", 2014, true},
		{"database_220427.xlsx", 2022, true},
		{"database_190401.zip", 2019, true},
		{"database_140722.zip", 2002, true},
		{"database_301215.xlsx", 2030, true},
		{"2022_sheet.html", 2022, true},
		{"notes.xlsx", 0, false},
		{"database9999.xlsx", 0, false},
	}
	for _, c := range cases {
		year, ok := YearFromFilename(c.name)
		if ok != c.ok || year != c.year {
			t.Errorf("YearFromFilename(%q) = %d,%v want %d,%v", c.name, year, ok, c.year, c.ok)
		}
	}
}

func mkWorkbook(t *testing.T, sheet string, rows [][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	def := f.GetSheetName(0)
	if sheet != def {
		if err := f.SetSheetName(def, sheet); err != nil {
			t.Fatal(err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	return f
}

func TestExtractWorkbookRoundTrip(t *testing.T) {
	dir := t.TempDir()
	f := mkWorkbook(t, "レビューシート", [][]any{
		{"事業名", "府省", "事業の目的"},
		{"X事業", "総務省"}, // ragged, padded on extraction
		{"Y事業", "経済産業省", "目的Y"},
	})
	if err := extractWorkbook(f, 2022, dir); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadSourceTables(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Fatalf("tables=%d", len(tables))
	}
	tbl := tables[0]
	if tbl.Name != "2022_レビューシート.csv" {
		t.Fatalf("name=%q", tbl.Name)
	}
	if len(tbl.Headers) != 3 || len(tbl.Rows) != 2 {
		t.Fatalf("headers=%d rows=%d", len(tbl.Headers), len(tbl.Rows))
	}
	if tbl.Rows[0].Get("事業の目的") != "" {
		t.Fatalf("ragged row not padded: %q", tbl.Rows[0].Get("事業の目的"))
	}
	if tbl.Rows[1].Get("府省") != "経済産業省" {
		t.Fatalf("cell=%q", tbl.Rows[1].Get("府省"))
	}
}

func TestExtractHTMLFile(t *testing.T) {
	dir := t.TempDir()
	html := `<html><body>
<table><tr><th>事業名</th><th>府省</th></tr><tr><td>X事業</td><td>総務省</td></tr></table>
<table><tr><td>only one row</td></tr></table>
</body></html>`
	src := filepath.Join(dir, "2014_review.html")
	if err := os.WriteFile(src, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	if err := extractHTMLFile(src, 2014, out); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadSourceTables(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Fatalf("tables=%d, the single-row table must be skipped", len(tables))
	}
	if tables[0].Rows[0].Get("事業名") != "X事業" {
		t.Fatalf("cell=%q", tables[0].Rows[0].Get("事業名"))
	}
}

// when a sheet repeats a header, row lookup must read the first column,
// the same one BuildColumnIndex classifies
func TestLoadSourceTableDuplicateHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.csv")
	err := writeCSV(path,
		[]string{"事業名", "備考", "事業名"},
		[][]string{{"X事業", "note", "重複列"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	table, err := loadSourceTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows=%d", len(table.Rows))
	}
	if got := table.Rows[0].Get("事業名"); got != "X事業" {
		t.Fatalf("duplicate header must keep the first column, got %q", got)
	}
	if got := table.Rows[0].Get("備考"); got != "note" {
		t.Fatalf("備考=%q", got)
	}
}

func TestWriteCSVBOMRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := writeCSV(path, []string{"a", "b"}, [][]string{{"1", "日本語"}}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 3 || data[0] != 0xEF || data[1] != 0xBB || data[2] != 0xBF {
		t.Fatal("missing UTF-8 BOM")
	}

	records, err := readCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0][0] != "a" || records[1][1] != "日本語" {
		t.Fatalf("records=%v", records)
	}
}
