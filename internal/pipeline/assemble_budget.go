package pipeline

import (
	"rspipe/internal"
	"rspipe/internal/rsformat"
	"rspipe/internal/util"
)

// assembleBudgetSummary emits one record per entity per budget year. Years
// where every numeric field is missing or zero are suppressed; the wide
// layouts carry empty year blocks for padding.
func assembleBudgetSummary(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	years := ix.BudgetYears()
	if len(years) == 0 {
		return
	}
	for i, row := range rows {
		accountType := cell(ix, row, FieldAccountType)

		for _, year := range years {
			rec := rsformat.BudgetSummary{
				Common:      commonFields(ix, row, bc, ids[i]),
				BudgetYear:  year,
				AccountType: accountType,
			}

			hasData := false
			num := func(kind FieldKind) *float64 {
				h, ok := ix.BudgetHeader(kind, year)
				if !ok {
					return nil
				}
				v := util.ParseNumber(row.Get(h))
				if v != nil && *v != 0 {
					hasData = true
				}
				return v
			}

			rec.Initial = num(FieldBudgetInitial)
			rec.Supplementary = num(FieldBudgetSupplementary)
			rec.CarriedIn = num(FieldBudgetCarryIn)
			rec.CarriedOut = num(FieldBudgetCarryOut)
			rec.Reserve = num(FieldBudgetReserve)
			rec.TotalAppropr = num(FieldBudgetTotal)
			rec.Executed = num(FieldBudgetExecuted)
			rec.ExecutionRate = num(FieldBudgetExecRate)

			if hasData {
				out.Append(rec)
			}
		}
	}
}

func assembleBudgetCategory(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	seqs := ix.CategorySeqs()
	if len(seqs) == 0 {
		return
	}
	for i, row := range rows {
		accountType := clean(cell(ix, row, FieldAccountType))

		no := 1
		for _, seq := range seqs {
			kou := clean(seqCell(ix, row, FieldCatItemKou, seq))
			moku := clean(seqCell(ix, row, FieldCatItemMoku, seq))
			current := clean(seqCell(ix, row, FieldCatInitialBudget, seq))
			request := clean(seqCell(ix, row, FieldCatRequest, seq))

			if kou == "" && moku == "" && current == "" && request == "" {
				continue
			}
			out.Append(rsformat.BudgetCategory{
				Common:        commonFields(ix, row, bc, ids[i]),
				No:            no,
				AccountType:   accountType,
				ItemKou:       kou,
				ItemMoku:      moku,
				CurrentBudget: current,
				NextRequest:   request,
			})
			no++
		}
	}
}

func seqCell(ix *ColumnIndex, row internal.Row, kind FieldKind, seq int) string {
	return cellAt(ix, row, kind, "", seq)
}
