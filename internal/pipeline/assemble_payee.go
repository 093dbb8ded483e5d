package pipeline

import (
	"rspipe/internal"
	"rspipe/internal/rsformat"
	"rspipe/internal/util"
)

// assembleExpenditure expands the recipient-list blocks into one record per
// populated slot. Slots whose recipient cell is empty or a placeholder are
// padding and produce nothing.
func assembleExpenditure(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	keys := ix.ExpenditureKeys()
	if len(keys) == 0 {
		return
	}
	for i, row := range rows {
		for _, key := range keys {
			recipient := cellAt(ix, row, FieldExpRecipient, key.Block, key.Seq)
			if util.IsPlaceholder(recipient) {
				continue
			}
			out.Append(rsformat.Expenditure{
				Common:          commonFields(ix, row, bc, ids[i]),
				Block:           key.Block,
				Number:          key.Seq,
				Recipient:       recipient,
				CorporateNumber: cellAt(ix, row, FieldExpCorporateNo, key.Block, key.Seq),
				WorkSummary:     cellAt(ix, row, FieldExpSummary, key.Block, key.Seq),
				Amount:          util.ParseNumber(cellAt(ix, row, FieldExpAmount, key.Block, key.Seq)),
				ContractMethod:  cellAt(ix, row, FieldExpMethod, key.Block, key.Seq),
				Bidders:         util.ParseNumber(cellAt(ix, row, FieldExpBidders, key.Block, key.Seq)),
				BidRate:         util.ParseNumber(cellAt(ix, row, FieldExpBidRate, key.Block, key.Seq)),
				SoleBidReason:   cellAt(ix, row, FieldExpSoleReason, key.Block, key.Seq),
				SoleBidDetail:   cellAt(ix, row, FieldExpSoleDetail, key.Block, key.Seq),
			})
		}
	}
}

func assembleExpenseUsage(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	keys := ix.UsageKeys()
	if len(keys) == 0 {
		return
	}
	for i, row := range rows {
		no := 1
		for _, key := range keys {
			item := clean(cellAt(ix, row, FieldUsageItem, key.Block, key.Seq))
			usage := clean(cellAt(ix, row, FieldUsageUsage, key.Block, key.Seq))
			amount := clean(cellAt(ix, row, FieldUsageAmount, key.Block, key.Seq))

			if item == "" && usage == "" && amount == "" {
				continue
			}
			out.Append(rsformat.ExpenseUsage{
				Common: commonFields(ix, row, bc, ids[i]),
				No:     no,
				Block:  key.Block,
				Item:   item,
				Usage:  usage,
				Amount: amount,
			})
			no++
		}
	}
}

func assembleContracts(ix *ColumnIndex, rows []internal.Row, ids []int, bc *BatchContext, out *rsformat.Table) {
	seqs := ix.ContractSeqs()
	if len(seqs) == 0 {
		return
	}
	for i, row := range rows {
		no := 1
		for _, seq := range seqs {
			blockName := seqCell(ix, row, FieldContractBlockName, seq)
			contractor := seqCell(ix, row, FieldContractContractor, seq)
			amount := seqCell(ix, row, FieldContractAmount, seq)

			if blockName == "" && contractor == "" && amount == "" {
				continue
			}
			out.Append(rsformat.Contract{
				Common:          commonFields(ix, row, bc, ids[i]),
				No:              no,
				BlockName:       blockName,
				Contractor:      contractor,
				CorporateNumber: seqCell(ix, row, FieldContractCorporateNo, seq),
				WorkSummary:     seqCell(ix, row, FieldContractSummary, seq),
				Amount:          amount,
				Method:          seqCell(ix, row, FieldContractMethod, seq),
				Bidders:         seqCell(ix, row, FieldContractBidders, seq),
				BidRate:         seqCell(ix, row, FieldContractBidRate, seq),
				SoleBidReason:   seqCell(ix, row, FieldContractSoleReason, seq),
			})
			no++
		}
	}
}
