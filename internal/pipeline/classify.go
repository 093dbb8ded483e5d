package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// FieldKind is the semantic meaning of a classified column.
type FieldKind string

const (
	// Common prefix fields.
	FieldProjectName FieldKind = "project_name"
	FieldMinistry    FieldKind = "ministry"
	FieldBureau      FieldKind = "bureau"
	FieldDepartment  FieldKind = "department"
	FieldDivision    FieldKind = "division"
	FieldOffice      FieldKind = "office"
	FieldUnit        FieldKind = "unit"
	FieldSection     FieldKind = "section"

	// Organization.
	FieldCreator     FieldKind = "creator"
	FieldDeptBureau  FieldKind = "dept_bureau"
	FieldDeptSection FieldKind = "dept_section"

	// Project overview.
	FieldPurpose          FieldKind = "purpose"
	FieldCurrentIssues    FieldKind = "current_issues"
	FieldSummary          FieldKind = "summary"
	FieldSummaryURL       FieldKind = "summary_url"
	FieldCategory         FieldKind = "category"
	FieldMajorExpense     FieldKind = "major_expense"
	FieldMethod           FieldKind = "method"
	FieldSubsidyText      FieldKind = "subsidy_text"
	FieldProjectNumber    FieldKind = "project_number"
	FieldStartYear        FieldKind = "start_year"
	FieldStartYearUnknown FieldKind = "start_year_unknown"
	FieldEndYear          FieldKind = "end_year"
	FieldNoPlannedEnd     FieldKind = "no_planned_end"

	// Policy / law / plan.
	FieldPolicy    FieldKind = "policy"
	FieldMeasure   FieldKind = "measure"
	FieldPolicyURL FieldKind = "policy_url"
	FieldLawText   FieldKind = "law_text"
	FieldPlanText  FieldKind = "plan_text"

	// Inspection / evaluation.
	FieldInspResult        FieldKind = "insp_result"
	FieldInspImprove       FieldKind = "insp_improve"
	FieldInspEffect        FieldKind = "insp_effect"
	FieldInspExpert        FieldKind = "insp_expert"
	FieldInspTeamJudgement FieldKind = "insp_team_judgement"
	FieldInspTeamOpinion   FieldKind = "insp_team_opinion"
	FieldInspPublicProcess FieldKind = "insp_public_process"

	// Remarks.
	FieldRemarks      FieldKind = "remarks"
	FieldOtherRemarks FieldKind = "other_remarks"

	// Account.
	FieldAccountType FieldKind = "account_type"

	// Budget summary, keyed by fiscal year.
	FieldBudgetInitial       FieldKind = "budget_initial"
	FieldBudgetSupplementary FieldKind = "budget_supplementary"
	FieldBudgetCarryIn       FieldKind = "budget_carry_in"
	FieldBudgetCarryOut      FieldKind = "budget_carry_out"
	FieldBudgetReserve       FieldKind = "budget_reserve"
	FieldBudgetTotal         FieldKind = "budget_total"
	FieldBudgetExecuted      FieldKind = "budget_executed"
	FieldBudgetExecRate      FieldKind = "budget_exec_rate"

	// Related projects, keyed by fiscal year and sequence.
	FieldRelatedProject FieldKind = "related_project"

	// Expenditure recipients, keyed by block and sequence.
	FieldExpNumber      FieldKind = "exp_number"
	FieldExpRecipient   FieldKind = "exp_recipient"
	FieldExpCorporateNo FieldKind = "exp_corporate_no"
	FieldExpSummary     FieldKind = "exp_summary"
	FieldExpAmount      FieldKind = "exp_amount"
	FieldExpMethod      FieldKind = "exp_method"
	FieldExpBidders     FieldKind = "exp_bidders"
	FieldExpBidRate     FieldKind = "exp_bid_rate"
	FieldExpSoleReason  FieldKind = "exp_sole_reason"
	FieldExpSoleDetail  FieldKind = "exp_sole_detail"

	// Expense / usage, keyed by block and sequence.
	FieldUsageItem   FieldKind = "usage_item"
	FieldUsageUsage  FieldKind = "usage_usage"
	FieldUsageAmount FieldKind = "usage_amount"

	// Multi-year contracts, keyed by sequence.
	FieldContractBlockName   FieldKind = "contract_block_name"
	FieldContractContractor  FieldKind = "contract_contractor"
	FieldContractCorporateNo FieldKind = "contract_corporate_no"
	FieldContractSummary     FieldKind = "contract_summary"
	FieldContractAmount      FieldKind = "contract_amount"
	FieldContractMethod      FieldKind = "contract_method"
	FieldContractBidders     FieldKind = "contract_bidders"
	FieldContractBidRate     FieldKind = "contract_bid_rate"
	FieldContractSoleReason  FieldKind = "contract_sole_reason"

	// Budget category items, keyed by sequence.
	FieldCatItemKou       FieldKind = "cat_item_kou"
	FieldCatItemMoku      FieldKind = "cat_item_moku"
	FieldCatInitialBudget FieldKind = "cat_initial_budget"
	FieldCatRequest       FieldKind = "cat_request"
)

// Generation is the header-layout generation of one source table. It is
// detected once per table; generations are never mixed within a table.
type Generation int

const (
	// GenCurrent is the 2015+ layout: <label>-<Block>.支払先-<num>-<field>.
	GenCurrent Generation = iota
	// GenLegacy is the 2014 layout: 支出先上位...-グループ-<field>-<num>.
	GenLegacy
)

// BlockGroup is the synthetic block letter for the legacy single-group layout.
const BlockGroup = "GROUP"

// ColumnKey locates one classified column: a field kind plus its optional
// repeat coordinates. Zero Year/Seq and empty Block mean a singleton field.
type ColumnKey struct {
	Kind  FieldKind
	Year  int
	Block string
	Seq   int
}

// ClassifiedColumn is the parse result for one source header.
type ClassifiedColumn struct {
	Kind   FieldKind
	Year   int
	Block  string
	Seq    int
	Header string
}

var (
	reExpendCurrent = regexp.MustCompile(`支出先上位.*?-([A-Z])\.支払先-(\d+)-`)
	reTrailingSeq   = regexp.MustCompile(`-(\d+)$`)
	reContract      = regexp.MustCompile(`国庫債務負担行為等による契約先上位10者リスト-(\d+)-(.+)`)
	reExpenseUsage  = regexp.MustCompile(`費目・使途.*-([A-D])\.支払先-(費目|使途|金額[^-]*)-(\d{2})`)
	reRelated       = regexp.MustCompile(`関連する過去のレビューシートの事業番号-(\d{4})年度-(\d{2})`)
	reBudgetYear    = regexp.MustCompile(`(\d{4})年度|令和(\d+)年度|令和元年度|平成(\d+)年度|-(\d{1,2})年度-`)
	reCatItemized   = regexp.MustCompile(`予算内訳.*歳出予算項・目-(.+)-(\d{2})`)
	reCatFlat       = regexp.MustCompile(`予算内訳.*-(歳出予算目|20\d{2}年度当初予算|20\d{2}年度要求)-(\d{2})`)
	reProjectNumber = regexp.MustCompile(`^事業番号-([1-5])$`)
)

// foldHeader folds width variants so fixed half-width patterns match headers
// regardless of the full-width digits and parentheses older releases use.
// The raw header is preserved as the row-lookup key.
func foldHeader(h string) string {
	return norm.NFKC.String(width.Fold.String(h))
}

// DetectGeneration decides which expenditure header generation a table uses,
// by presence of the legacy group token.
func DetectGeneration(headers []string) Generation {
	for _, h := range headers {
		f := foldHeader(h)
		if strings.Contains(f, "支出先上位") && strings.Contains(f, "グループ") {
			return GenLegacy
		}
	}
	return GenCurrent
}

// detectEraDominance reports whether Reiwa tokens dominate the header set.
// Used to resolve bare 1-2 digit year tokens below the Heisei threshold.
func detectEraDominance(headers []string) bool {
	reiwa, heisei := 0, 0
	for _, h := range headers {
		f := foldHeader(h)
		reiwa += strings.Count(f, "令和")
		heisei += strings.Count(f, "平成")
	}
	return reiwa > 0 && reiwa >= heisei
}

// resolveBudgetYear turns one budget-year token match into a Gregorian year.
// Bare tokens >= 20 can only be Heisei offsets; smaller tokens follow the
// table's dominant era. The threshold is a documented best-effort heuristic,
// ambiguous when era signals are mixed; see the classifier tests.
func resolveBudgetYear(m []string, reiwaDominant bool, full string) (int, bool) {
	switch {
	case m[1] != "":
		y, _ := strconv.Atoi(m[1])
		return y, true
	case m[2] != "":
		n, _ := strconv.Atoi(m[2])
		return 2018 + n, true
	case strings.Contains(full, "令和元年度"):
		return 2019, true
	case m[3] != "":
		n, _ := strconv.Atoi(m[3])
		return 1988 + n, true
	case m[4] != "":
		n, _ := strconv.Atoi(m[4])
		if n >= 20 {
			return 1988 + n, true
		}
		if reiwaDominant {
			return 2018 + n, true
		}
		return 1988 + n, true
	}
	return 0, false
}

// classifyHeader parses one header into its semantic descriptor. Repeat
// families are tried before singleton fields; the first family that claims
// the header wins. Returns false for headers with no recognized meaning.
func classifyHeader(raw string, gen Generation, reiwaDominant bool) (ClassifiedColumn, bool) {
	h := foldHeader(raw)

	if m := reRelated.FindStringSubmatch(h); m != nil {
		year, _ := strconv.Atoi(m[1])
		seq, _ := strconv.Atoi(m[2])
		return ClassifiedColumn{Kind: FieldRelatedProject, Year: year, Seq: seq, Header: raw}, true
	}

	if m := reExpenseUsage.FindStringSubmatch(h); m != nil {
		kind := FieldUsageAmount
		switch {
		case m[2] == "費目":
			kind = FieldUsageItem
		case m[2] == "使途":
			kind = FieldUsageUsage
		}
		seq, _ := strconv.Atoi(m[3])
		return ClassifiedColumn{Kind: kind, Block: m[1], Seq: seq, Header: raw}, true
	}

	if m := reContract.FindStringSubmatch(h); m != nil {
		seq, _ := strconv.Atoi(m[1])
		if kind, ok := contractField(m[2]); ok {
			return ClassifiedColumn{Kind: kind, Seq: seq, Header: raw}, true
		}
		return ClassifiedColumn{}, false
	}

	if strings.Contains(h, "支出先上位") {
		if cc, ok := classifyExpenditure(h, raw, gen); ok {
			return cc, true
		}
		return ClassifiedColumn{}, false
	}

	if cc, ok := classifyBudgetCategory(h, raw); ok {
		return cc, true
	}

	if m := reBudgetYear.FindStringSubmatch(h); m != nil {
		if year, ok := resolveBudgetYear(m, reiwaDominant, h); ok {
			if kind, ok := budgetField(h); ok {
				return ClassifiedColumn{Kind: kind, Year: year, Header: raw}, true
			}
		}
	}

	if kind, seq, ok := singletonField(h); ok {
		return ClassifiedColumn{Kind: kind, Seq: seq, Header: raw}, true
	}
	return ClassifiedColumn{}, false
}

func classifyExpenditure(h, raw string, gen Generation) (ClassifiedColumn, bool) {
	if gen == GenLegacy {
		if !strings.Contains(h, "グループ") {
			return ClassifiedColumn{}, false
		}
		m := reTrailingSeq.FindStringSubmatch(h)
		if m == nil {
			return ClassifiedColumn{}, false
		}
		seq, _ := strconv.Atoi(m[1])
		var kind FieldKind
		switch {
		case strings.Contains(h, "-番号-"):
			kind = FieldExpNumber
		case strings.Contains(h, "-支出先-"):
			kind = FieldExpRecipient
		case strings.Contains(h, "-業務概要-"):
			kind = FieldExpSummary
		case strings.Contains(h, "-支出額"):
			kind = FieldExpAmount
		case strings.Contains(h, "-入札者数-"):
			kind = FieldExpBidders
		case strings.Contains(h, "-落札率-"):
			kind = FieldExpBidRate
		default:
			return ClassifiedColumn{}, false
		}
		return ClassifiedColumn{Kind: kind, Block: BlockGroup, Seq: seq, Header: raw}, true
	}

	m := reExpendCurrent.FindStringSubmatch(h)
	if m == nil {
		return ClassifiedColumn{}, false
	}
	seq, _ := strconv.Atoi(m[2])
	var kind FieldKind
	switch {
	case strings.Contains(h, "一者応札・一者応募又は競争性のない随意契約となった理由及び改善策"):
		kind = FieldExpSoleDetail
	case strings.Contains(h, "一者応札") && strings.Contains(h, "理由"):
		kind = FieldExpSoleReason
	case strings.Contains(h, "-法人番号"):
		kind = FieldExpCorporateNo
	case strings.Contains(h, "-業務概要"):
		kind = FieldExpSummary
	case strings.Contains(h, "-支出額"):
		kind = FieldExpAmount
	case strings.Contains(h, "-契約方式"):
		kind = FieldExpMethod
	case strings.Contains(h, "-入札者数"):
		kind = FieldExpBidders
	case strings.Contains(h, "-落札率"):
		kind = FieldExpBidRate
	case strings.Contains(h, "-支出先"):
		kind = FieldExpRecipient
	default:
		return ClassifiedColumn{}, false
	}
	return ClassifiedColumn{Kind: kind, Block: m[1], Seq: seq, Header: raw}, true
}

func classifyBudgetCategory(h, raw string) (ClassifiedColumn, bool) {
	if m := reCatItemized.FindStringSubmatch(h); m != nil {
		seq, _ := strconv.Atoi(m[2])
		field := m[1]
		var kind FieldKind
		switch {
		case strings.Contains(field, "(項)"):
			kind = FieldCatItemKou
		case strings.Contains(field, "(目)"):
			kind = FieldCatItemMoku
		case strings.Contains(field, "当初予算"):
			kind = FieldCatInitialBudget
		case strings.Contains(field, "要求"):
			kind = FieldCatRequest
		default:
			return ClassifiedColumn{}, false
		}
		return ClassifiedColumn{Kind: kind, Seq: seq, Header: raw}, true
	}
	if m := reCatFlat.FindStringSubmatch(h); m != nil {
		seq, _ := strconv.Atoi(m[2])
		field := m[1]
		var kind FieldKind
		switch {
		case strings.Contains(field, "歳出予算目"):
			kind = FieldCatItemMoku
		case strings.Contains(field, "当初予算"):
			kind = FieldCatInitialBudget
		case strings.Contains(field, "要求"):
			kind = FieldCatRequest
		default:
			return ClassifiedColumn{}, false
		}
		return ClassifiedColumn{Kind: kind, Seq: seq, Header: raw}, true
	}
	return ClassifiedColumn{}, false
}

func budgetField(h string) (FieldKind, bool) {
	switch {
	case strings.Contains(h, "当初予算") && !strings.Contains(h, "補正"):
		return FieldBudgetInitial, true
	case strings.Contains(h, "補正予算") && !strings.Contains(h, "次"):
		return FieldBudgetSupplementary, true
	case strings.Contains(h, "前年度") && strings.Contains(h, "繰越"):
		return FieldBudgetCarryIn, true
	case strings.Contains(h, "翌年度") && strings.Contains(h, "繰越"):
		return FieldBudgetCarryOut, true
	case strings.Contains(h, "予備費"):
		return FieldBudgetReserve, true
	case strings.Contains(h, "執行額") && !strings.Contains(h, "割合"):
		return FieldBudgetExecuted, true
	case strings.Contains(h, "執行率") || (strings.Contains(h, "執行") && strings.Contains(h, "%")):
		return FieldBudgetExecRate, true
	case strings.Contains(h, "予算") && strings.Contains(h, "計") && !strings.Contains(h, "内訳"):
		return FieldBudgetTotal, true
	}
	return "", false
}

func contractField(field string) (FieldKind, bool) {
	switch {
	case strings.Contains(field, "一者応札") || strings.Contains(field, "競争性のない随意契約"):
		return FieldContractSoleReason, true
	case strings.Contains(field, "ブロック名"):
		return FieldContractBlockName, true
	case strings.Contains(field, "法人番号"):
		return FieldContractCorporateNo, true
	case strings.Contains(field, "業務概要"):
		return FieldContractSummary, true
	case strings.Contains(field, "契約額"):
		return FieldContractAmount, true
	case strings.Contains(field, "契約方式"):
		return FieldContractMethod, true
	case strings.Contains(field, "入札者数"):
		return FieldContractBidders, true
	case strings.Contains(field, "落札率"):
		return FieldContractBidRate, true
	case strings.Contains(field, "契約先"):
		return FieldContractContractor, true
	}
	return "", false
}

// inspectionFields maps source header names (width-folded) to their field
// kinds. These names shifted between releases; exact matching keeps a header
// from being claimed by the wrong evaluation column.
var inspectionFields = map[string]FieldKind{
	"事業所管部局による点検・改善-点検結果":               FieldInspResult,
	"事業所管部局による点検・改善-改善の方向性":             FieldInspImprove,
	"事業所管部局による点検・改善-目標年度における効果測定に関する評価": FieldInspEffect,
	"外部有識者の所見--": FieldInspExpert,
	"行政事業レビュー推進チームの所見に至る過程及び所見-判定":                     FieldInspTeamJudgement,
	"行政事業レビュー推進チームの所見に至る過程及び所見-初見":                     FieldInspTeamOpinion,
	"過去に受けた指摘事項と対応状況-公開プロセス・秋の年次公開検証(秋のレビュー)における取りまとめ": FieldInspPublicProcess,
}

func singletonField(h string) (FieldKind, int, bool) {
	if kind, ok := inspectionFields[h]; ok {
		return kind, 0, true
	}
	if m := reProjectNumber.FindStringSubmatch(h); m != nil {
		seq, _ := strconv.Atoi(m[1])
		return FieldProjectNumber, seq, true
	}

	contains := func(subs ...string) bool {
		for _, s := range subs {
			if !strings.Contains(h, s) {
				return false
			}
		}
		return true
	}

	switch {
	// Organization-specific columns come before the bare hierarchy
	// substrings: 担当部局庁 must not be swallowed by the 部 rule.
	case contains("作成責任者"):
		return FieldCreator, 0, true
	case contains("担当部局庁"):
		return FieldDeptBureau, 0, true
	case contains("担当課室"):
		return FieldDeptSection, 0, true

	case contains("事業名"):
		return FieldProjectName, 0, true
	case contains("府省") && !contains("建制順"):
		return FieldMinistry, 0, true

	case contains("事業の目的") || h == "目的":
		return FieldPurpose, 0, true
	case contains("現状", "課題"):
		return FieldCurrentIssues, 0, true
	case contains("事業概要URL"):
		return FieldSummaryURL, 0, true
	case contains("事業の概要") || h == "事業概要":
		return FieldSummary, 0, true
	case contains("事業区分"):
		return FieldCategory, 0, true
	case contains("主要経費"):
		return FieldMajorExpense, 0, true
	case h == "実施方法":
		return FieldMethod, 0, true
	case contains("補助率"):
		return FieldSubsidyText, 0, true
	case contains("不明", "開始"):
		return FieldStartYearUnknown, 0, true
	case contains("事業開始年度") || contains("開始年度"):
		return FieldStartYear, 0, true
	case contains("終了", "年度", "予定"):
		return FieldEndYear, 0, true
	case contains("終了予定なし") || contains("継続"):
		return FieldNoPlannedEnd, 0, true

	case h == "政策":
		return FieldPolicy, 0, true
	case h == "施策":
		return FieldMeasure, 0, true
	case contains("政策体系", "URL"):
		return FieldPolicyURL, 0, true
	case contains("根拠法令"):
		return FieldLawText, 0, true
	case contains("関係する計画") || contains("通知"):
		return FieldPlanText, 0, true

	case contains("会計区分"):
		return FieldAccountType, 0, true

	case h == "備考" || h == "備考--":
		return FieldRemarks, 0, true
	case contains("その他の指摘事項"):
		return FieldOtherRemarks, 0, true

	case contains("局・庁"):
		return FieldBureau, 0, true
	case contains("部"):
		return FieldDepartment, 0, true
	case contains("課"):
		return FieldDivision, 0, true
	case contains("室"):
		return FieldOffice, 0, true
	case contains("班"):
		return FieldUnit, 0, true
	case contains("係"):
		return FieldSection, 0, true
	}
	return "", 0, false
}
