package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNormalizeDir(t *testing.T) {
	raw := t.TempDir()
	norm := t.TempDir()
	yearDir := filepath.Join(raw, "year_2014")
	if err := os.MkdirAll(yearDir, 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(yearDir, "2014_シート.csv")
	if err := writeCSV(src,
		[]string{"事業名", "平成26年度当初予算"},
		[][]string{{"①リスクコミュニケ-ション事業", "平成26年開始"}},
	); err != nil {
		t.Fatal(err)
	}

	total, ok, bad, err := NormalizeDir(context.Background(), zap.NewNop(), raw, norm, 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || ok != 1 || bad != 0 {
		t.Fatalf("total=%d ok=%d bad=%d", total, ok, bad)
	}

	records, err := readCSV(filepath.Join(norm, "year_2014", "2014_シート.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// headers keep their era expressions, cells are fully normalized
	if records[0][1] != "平成26年度当初予算" {
		t.Fatalf("header=%q", records[0][1])
	}
	if records[1][0] != "1リスクコミュニケーション事業" {
		t.Fatalf("cell=%q", records[1][0])
	}
	if records[1][1] != "2014年開始" {
		t.Fatalf("cell=%q", records[1][1])
	}
}
