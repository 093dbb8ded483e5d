package pipeline

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ColumnSchema summarizes one column of an output table.
type ColumnSchema struct {
	Index        int      `json:"index"`
	Name         string   `json:"name"`
	DataType     string   `json:"data_type"`
	Nullable     bool     `json:"nullable"`
	TotalCount   int      `json:"total_count"`
	NonNullCount int      `json:"non_null_count"`
	NullCount    int      `json:"null_count"`
	UniqueCount  int      `json:"unique_count"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Mean         *float64 `json:"mean,omitempty"`
	MinLength    *int     `json:"min_length,omitempty"`
	MaxLength    *int     `json:"max_length,omitempty"`
	SampleValues []string `json:"sample_values"`
}

// FileSchema is the generated summary of one output CSV.
type FileSchema struct {
	FileName    string         `json:"file_name"`
	RowCount    int            `json:"row_count"`
	ColumnCount int            `json:"column_count"`
	Columns     []ColumnSchema `json:"columns"`
}

const schemaSampleValues = 5

// GenerateSchemas writes a JSON schema summary next to every table CSV
// under tablesDir, capped at maxRows rows per file.
func GenerateSchemas(log *zap.Logger, tablesDir, schemaDir string, maxRows int) (int, error) {
	var files []string
	err := filepath.WalkDir(tablesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", tablesDir, err)
	}

	generated := 0
	for _, path := range files {
		rel, err := filepath.Rel(tablesDir, path)
		if err != nil {
			return generated, err
		}

		schema, err := schemaForCSV(path, maxRows)
		if err != nil {
			log.Error("schema failed", zap.String("file", rel), zap.Error(err))
			continue
		}

		out := filepath.Join(schemaDir, strings.TrimSuffix(rel, ".csv")+".schema.json")
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return generated, err
		}
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return generated, err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return generated, err
		}
		generated++
	}
	return generated, nil
}

func schemaForCSV(path string, maxRows int) (FileSchema, error) {
	records, err := readCSV(path)
	if err != nil {
		return FileSchema{}, err
	}
	if len(records) == 0 {
		return FileSchema{FileName: filepath.Base(path)}, nil
	}

	headers := records[0]
	rows := records[1:]
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	schema := FileSchema{
		FileName:    filepath.Base(path),
		RowCount:    len(rows),
		ColumnCount: len(headers),
	}

	for idx, name := range headers {
		col := ColumnSchema{Index: idx, Name: name, TotalCount: len(rows)}

		unique := map[string]bool{}
		var samples []string
		allInt, allFloat := true, true
		var min, max, sum float64
		var lenMin, lenMax int
		numCount := 0

		for _, row := range rows {
			v := ""
			if idx < len(row) {
				v = strings.TrimSpace(row[idx])
			}
			if v == "" {
				col.NullCount++
				continue
			}
			col.NonNullCount++

			if !unique[v] {
				unique[v] = true
				if len(samples) < schemaSampleValues {
					samples = append(samples, v)
				}
			}

			runeLen := len([]rune(v))
			if col.NonNullCount == 1 || runeLen < lenMin {
				lenMin = runeLen
			}
			if runeLen > lenMax {
				lenMax = runeLen
			}

			if _, err := strconv.Atoi(v); err != nil {
				allInt = false
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				allFloat = false
				continue
			}
			if numCount == 0 || f < min {
				min = f
			}
			if numCount == 0 || f > max {
				max = f
			}
			sum += f
			numCount++
		}

		col.UniqueCount = len(unique)
		col.Nullable = col.NullCount > 0
		col.SampleValues = samples
		if col.SampleValues == nil {
			col.SampleValues = []string{}
		}

		switch {
		case col.NonNullCount > 0 && allInt:
			col.DataType = "integer"
		case col.NonNullCount > 0 && allFloat:
			col.DataType = "number"
		default:
			col.DataType = "string"
		}

		if (col.DataType == "integer" || col.DataType == "number") && numCount > 0 {
			mean := sum / float64(numCount)
			col.Min, col.Max, col.Mean = &min, &max, &mean
		} else if col.NonNullCount > 0 {
			col.MinLength, col.MaxLength = &lenMin, &lenMax
		}

		schema.Columns = append(schema.Columns, col)
	}
	return schema, nil
}
