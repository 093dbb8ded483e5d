package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestGenerateSchemas(t *testing.T) {
	tables := t.TempDir()
	schemas := t.TempDir()
	yearDir := filepath.Join(tables, "year_2022")
	if err := os.MkdirAll(yearDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := writeCSV(filepath.Join(yearDir, "out.csv"),
		[]string{"id", "amount", "name"},
		[][]string{
			{"1", "10.5", "X事業"},
			{"2", "", "Y事業"},
			{"3", "4", "X事業"},
		},
	); err != nil {
		t.Fatal(err)
	}

	n, err := GenerateSchemas(zap.NewNop(), tables, schemas, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("generated=%d", n)
	}

	data, err := os.ReadFile(filepath.Join(schemas, "year_2022", "out.schema.json"))
	if err != nil {
		t.Fatal(err)
	}
	var fs FileSchema
	if err := json.Unmarshal(data, &fs); err != nil {
		t.Fatal(err)
	}
	if fs.RowCount != 3 || fs.ColumnCount != 3 {
		t.Fatalf("rows=%d cols=%d", fs.RowCount, fs.ColumnCount)
	}

	id := fs.Columns[0]
	if id.DataType != "integer" || id.Nullable || id.UniqueCount != 3 {
		t.Fatalf("id column: %+v", id)
	}
	amount := fs.Columns[1]
	if amount.DataType != "number" || !amount.Nullable || amount.NullCount != 1 {
		t.Fatalf("amount column: %+v", amount)
	}
	if amount.Min == nil || *amount.Min != 4 || amount.Max == nil || *amount.Max != 10.5 {
		t.Fatalf("amount range: %+v", amount)
	}
	name := fs.Columns[2]
	if name.DataType != "string" || name.UniqueCount != 2 {
		t.Fatalf("name column: %+v", name)
	}
	if name.MinLength == nil || *name.MinLength != 3 {
		t.Fatalf("name length: %+v", name)
	}
}
