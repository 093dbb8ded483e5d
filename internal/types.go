package internal

// SheetType classifies one decoded source table.
type SheetType string

const (
	SheetReview  SheetType = "review"
	SheetSegment SheetType = "segment"
	SheetUnknown SheetType = "unknown"
)

// SourceTable is one spreadsheet decoded to a header row plus string-valued
// rows. It is built per source file and discarded after assembly.
type SourceTable struct {
	Name    string // source file name, used for sheet-type hints
	Headers []string
	Rows    []Row
}

// Row maps a column header to the raw cell value. Missing cells read as "".
type Row map[string]string

func (r Row) Get(header string) string {
	return r[header]
}

// YearSummary is the outcome of one fiscal-year batch.
type YearSummary struct {
	Year      int
	Total     int
	Succeeded int
	Failed    int
	Records   int
}

// RunRecord is one pipeline invocation as stored in the runs log.
type RunRecord struct {
	TraceID    string
	Stage      string
	Year       int
	Files      int
	Succeeded  int
	Failed     int
	Records    int
	DurationMs int64
	CreatedAt  string
}
