package pipeline

import (
	"rspipe/internal"
	"rspipe/internal/rsformat"
)

var inspectionKinds = []FieldKind{
	FieldInspResult, FieldInspImprove, FieldInspEffect, FieldInspExpert,
	FieldInspTeamJudgement, FieldInspTeamOpinion, FieldInspPublicProcess,
}

// assembleInspection maps the evaluation columns onto the 4-1 layout. The
// table is emitted only when at least one evaluation column exists, one
// record per entity.
func assembleInspection(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	any := false
	for _, kind := range inspectionKinds {
		if _, ok := ix.Singleton(kind); ok {
			any = true
			break
		}
	}
	if !any {
		return
	}
	for i, row := range rows {
		out.Append(rsformat.Inspection{
			Common:            commonFields(ix, row, bc, ids[i]),
			ReviewResult:      cell(ix, row, FieldInspResult),
			ImprovementPolicy: cell(ix, row, FieldInspImprove),
			EffectEvaluation:  cell(ix, row, FieldInspEffect),
			ExpertOpinion:     cell(ix, row, FieldInspExpert),
			PublicProcess:     cell(ix, row, FieldInspPublicProcess),
			TeamJudgement:     cell(ix, row, FieldInspTeamJudgement),
			TeamOpinion:       cell(ix, row, FieldInspTeamOpinion),
		})
	}
}

// assembleRemarks merges the remarks column with その他の指摘事項 when both
// are present. Every entity gets a record, empty remarks included.
func assembleRemarks(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	for i, row := range rows {
		remarks := clean(cell(ix, row, FieldRemarks))
		if other := clean(cell(ix, row, FieldOtherRemarks)); other != "" {
			if remarks != "" {
				remarks += "\n\n【その他の指摘事項】\n" + other
			} else {
				remarks = other
			}
		}
		out.Append(rsformat.Remarks{
			Common:  commonFields(ix, row, bc, ids[i]),
			Remarks: remarks,
		})
	}
}
