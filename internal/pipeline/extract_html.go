package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractHTMLFile decodes the tables of one HTML page into raw CSVs, one
// per table element. Some early releases were published as HTML pages
// instead of workbooks.
func extractHTMLFile(path string, year int, outDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var firstErr error

	doc.Find("table").Each(func(tableIdx int, table *goquery.Selection) {
		if firstErr != nil {
			return
		}

		trs := table.Find("tr")
		if trs.Length() < 2 {
			return
		}

		var headers []string
		trs.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
		if len(headers) == 0 {
			return
		}

		var rows [][]string
		trs.Slice(1, trs.Length()).Each(func(_ int, tr *goquery.Selection) {
			row := make([]string, 0, len(headers))
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, strings.TrimSpace(cell.Text()))
			})
			for len(row) < len(headers) {
				row = append(row, "")
			}
			rows = append(rows, row[:len(headers)])
		})
		if len(rows) == 0 {
			return
		}

		name := fmt.Sprintf("%d_%s.csv", year, base)
		if tableIdx > 0 {
			name = fmt.Sprintf("%d_%s_%d.csv", year, base, tableIdx+1)
		}
		if err := writeCSV(filepath.Join(outDir, name), headers, rows); err != nil {
			firstErr = err
		}
	})

	return firstErr
}
