package pipeline

import "sort"

// RepeatKey addresses one repeated entry, a block letter plus a sequence
// number. Legacy tables use the synthetic GROUP block.
type RepeatKey struct {
	Block string
	Seq   int
}

// RelatedColumn is one related-project column with its parsed coordinates.
type RelatedColumn struct {
	Header string
	Year   int
	Seq    int
}

// ColumnIndex is the per-table classification result. It is built once per
// source table and then queried by the assemblers; lookups return the raw
// source header so callers can read row cells directly.
type ColumnIndex struct {
	Generation    Generation
	ReiwaDominant bool

	columns map[ColumnKey]string
	related []RelatedColumn
}

// BuildColumnIndex classifies every header of one table. When two headers
// resolve to the same key the first one in column order wins.
func BuildColumnIndex(headers []string) *ColumnIndex {
	ix := &ColumnIndex{
		Generation:    DetectGeneration(headers),
		ReiwaDominant: detectEraDominance(headers),
		columns:       make(map[ColumnKey]string),
	}
	for _, h := range headers {
		cc, ok := classifyHeader(h, ix.Generation, ix.ReiwaDominant)
		if !ok {
			continue
		}
		key := ColumnKey{Kind: cc.Kind, Year: cc.Year, Block: cc.Block, Seq: cc.Seq}
		if _, dup := ix.columns[key]; dup {
			continue
		}
		ix.columns[key] = cc.Header
		if cc.Kind == FieldRelatedProject {
			ix.related = append(ix.related, RelatedColumn{Header: cc.Header, Year: cc.Year, Seq: cc.Seq})
		}
	}
	sort.Slice(ix.related, func(i, j int) bool {
		if ix.related[i].Year != ix.related[j].Year {
			return ix.related[i].Year < ix.related[j].Year
		}
		return ix.related[i].Seq < ix.related[j].Seq
	})
	return ix
}

// Header returns the source header for a fully qualified key.
func (ix *ColumnIndex) Header(kind FieldKind, year int, block string, seq int) (string, bool) {
	h, ok := ix.columns[ColumnKey{Kind: kind, Year: year, Block: block, Seq: seq}]
	return h, ok
}

// Singleton returns the source header for a field with no repeat coordinates.
func (ix *ColumnIndex) Singleton(kind FieldKind) (string, bool) {
	return ix.Header(kind, 0, "", 0)
}

// Seq returns the source header for a sequence-only field such as the
// numbered project-number and contract columns.
func (ix *ColumnIndex) Seq(kind FieldKind, seq int) (string, bool) {
	return ix.Header(kind, 0, "", seq)
}

// BudgetYears lists every fiscal year that at least one budget-summary
// column was classified under, ascending.
func (ix *ColumnIndex) BudgetYears() []int {
	seen := map[int]bool{}
	for key := range ix.columns {
		switch key.Kind {
		case FieldBudgetInitial, FieldBudgetSupplementary, FieldBudgetCarryIn,
			FieldBudgetCarryOut, FieldBudgetReserve, FieldBudgetTotal,
			FieldBudgetExecuted, FieldBudgetExecRate:
			seen[key.Year] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// BudgetHeader returns the header for one budget field of one fiscal year.
func (ix *ColumnIndex) BudgetHeader(kind FieldKind, year int) (string, bool) {
	return ix.Header(kind, year, "", 0)
}

// ExpenditureKeys lists every (block, seq) pair that has at least one
// recipient-list column, ordered by block then sequence.
func (ix *ColumnIndex) ExpenditureKeys() []RepeatKey {
	return ix.repeatKeys(FieldExpNumber, FieldExpRecipient, FieldExpCorporateNo,
		FieldExpSummary, FieldExpAmount, FieldExpMethod, FieldExpBidders,
		FieldExpBidRate, FieldExpSoleReason, FieldExpSoleDetail)
}

// UsageKeys lists every (block, seq) pair of the expense/usage breakdown.
func (ix *ColumnIndex) UsageKeys() []RepeatKey {
	return ix.repeatKeys(FieldUsageItem, FieldUsageUsage, FieldUsageAmount)
}

func (ix *ColumnIndex) repeatKeys(kinds ...FieldKind) []RepeatKey {
	in := map[FieldKind]bool{}
	for _, k := range kinds {
		in[k] = true
	}
	seen := map[RepeatKey]bool{}
	for key := range ix.columns {
		if in[key.Kind] {
			seen[RepeatKey{Block: key.Block, Seq: key.Seq}] = true
		}
	}
	keys := make([]RepeatKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Block != keys[j].Block {
			return keys[i].Block < keys[j].Block
		}
		return keys[i].Seq < keys[j].Seq
	})
	return keys
}

// ContractSeqs lists the sequence numbers of the multi-year contract list.
func (ix *ColumnIndex) ContractSeqs() []int {
	return ix.seqsOf(FieldContractBlockName, FieldContractContractor,
		FieldContractCorporateNo, FieldContractSummary, FieldContractAmount,
		FieldContractMethod, FieldContractBidders, FieldContractBidRate,
		FieldContractSoleReason)
}

// CategorySeqs lists the sequence numbers of the budget category breakdown.
func (ix *ColumnIndex) CategorySeqs() []int {
	return ix.seqsOf(FieldCatItemKou, FieldCatItemMoku, FieldCatInitialBudget, FieldCatRequest)
}

func (ix *ColumnIndex) seqsOf(kinds ...FieldKind) []int {
	in := map[FieldKind]bool{}
	for _, k := range kinds {
		in[k] = true
	}
	seen := map[int]bool{}
	for key := range ix.columns {
		if in[key.Kind] {
			seen[key.Seq] = true
		}
	}
	seqs := make([]int, 0, len(seen))
	for s := range seen {
		seqs = append(seqs, s)
	}
	sort.Ints(seqs)
	return seqs
}

// RelatedColumns lists the related-project columns in (year, seq) order.
func (ix *ColumnIndex) RelatedColumns() []RelatedColumn {
	return ix.related
}
