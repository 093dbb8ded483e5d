package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rspipe/internal"
	"rspipe/internal/rsformat"
)

var errUnknownSheet = errors.New("unknown sheet type")

// ProcessYear assembles the canonical tables for one fiscal year. Entity IDs
// run from 1 across all files of the batch in input order. A file that fails
// is counted and skipped; it never aborts the batch.
func ProcessYear(log *zap.Logger, year int, sources []internal.SourceTable) (map[rsformat.Kind]*rsformat.Table, internal.YearSummary) {
	bc := NewBatchContext(year)

	out := make(map[rsformat.Kind]*rsformat.Table, len(rsformat.AllKinds))
	for _, kind := range rsformat.AllKinds {
		out[kind] = rsformat.NewTable(kind, year)
	}

	summary := internal.YearSummary{Year: year, Total: len(sources)}

	for _, src := range sources {
		err := processSource(src, bc, out)
		switch {
		case errors.Is(err, errUnknownSheet):
			log.Warn("unknown sheet type", zap.String("file", src.Name))
		case err != nil:
			log.Error("file failed", zap.String("file", src.Name), zap.Error(err))
			summary.Failed++
		default:
			summary.Succeeded++
		}
	}

	for _, t := range out {
		summary.Records += len(t.Rows)
	}
	return out, summary
}

// processSource runs one source table through detection and assembly. Panics
// from malformed inputs are converted to errors so the batch keeps going.
func processSource(src internal.SourceTable, bc *BatchContext, out map[rsformat.Kind]*rsformat.Table) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", src.Name, r)
		}
	}()

	if len(src.Rows) == 0 {
		return fmt.Errorf("%s: no data rows", src.Name)
	}

	switch DetectSheetType(src.Name, src.Headers) {
	case internal.SheetReview:
		// assembled below
	case internal.SheetSegment:
		// segment sheets carry no review-format tables
		return nil
	default:
		return errUnknownSheet
	}

	ix := BuildColumnIndex(src.Headers)

	// IDs are claimed per data row before any assembler runs, so every
	// table of this file agrees on the entity numbering.
	ids := make([]int, len(src.Rows))
	for i := range src.Rows {
		ids[i] = bc.NextID()
	}

	assembleOrganization(ix, src.Rows, ids, bc, out[rsformat.KindOrganization])
	assembleProjectOverview(ix, src.Rows, ids, bc, out[rsformat.KindProjectOverview])
	assemblePolicyLaw(ix, src.Rows, ids, bc, out[rsformat.KindPolicyLaw])
	assembleSubsidyRate(ix, src.Rows, ids, bc, out[rsformat.KindSubsidyRate])
	assembleRelatedProjects(ix, src.Rows, ids, bc, out[rsformat.KindRelatedProjects])
	assembleBudgetSummary(ix, src.Rows, ids, bc, out[rsformat.KindBudgetSummary])
	assembleBudgetCategory(ix, src.Rows, ids, bc, out[rsformat.KindBudgetCategory])
	assembleInspection(ix, src.Rows, ids, bc, out[rsformat.KindInspection])
	assembleExpenditure(ix, src.Rows, ids, bc, out[rsformat.KindExpenditure])
	assembleExpenseUsage(ix, src.Rows, ids, bc, out[rsformat.KindExpenseUsage])
	assembleContracts(ix, src.Rows, ids, bc, out[rsformat.KindContract])
	assembleRemarks(ix, src.Rows, ids, bc, out[rsformat.KindRemarks])

	return nil
}
