package rsformat

import "strconv"

// Organization is one 1-1 組織情報 record. Unlike the other tables its
// prefix uses 建制順/所管府省庁 in place of the usual header pair.
type Organization struct {
	Common
	CreatorNo     int
	OtherMinistry string
	OtherBureau   string
	OtherDept     string
	OtherDivision string
	OtherOffice   string
	OtherUnit     string
	OtherSection  string
	Creator       string
}

var OrganizationColumns = []string{
	"シート種別", "事業年度", "予算事業ID", "事業名",
	"建制順", "所管府省庁", "府省庁",
	"局・庁", "部", "課", "室", "班", "係",
	"その他担当組織_作成責任者_no",
	"府省庁（その他担当組織）", "局・庁（その他担当組織）", "部（その他担当組織）",
	"課（その他担当組織）", "室（その他担当組織）", "班（その他担当組織）", "係（その他担当組織）",
	"作成責任者",
}

func (r Organization) Row() []string {
	return append(r.Common.row(),
		strconv.Itoa(r.CreatorNo),
		r.OtherMinistry, r.OtherBureau, r.OtherDept,
		r.OtherDivision, r.OtherOffice, r.OtherUnit, r.OtherSection,
		r.Creator,
	)
}

// ProjectOverview is one 1-2 事業概要 record.
type ProjectOverview struct {
	Common
	Purpose          string
	CurrentIssues    string
	Summary          string
	SummaryURL       string
	Category         string
	MajorExpense     string
	Method           string
	SubsidyRate      string
	LegacyProjectNo  string
	StartYear        *int
	StartYearUnknown string
	EndYear          *int
	NoPlannedEnd     string
}

var ProjectOverviewColumns = withCommon(
	"事業の目的", "現状・課題", "事業の概要", "事業概要URL",
	"事業区分", "主要経費", "実施方法", "補助率等", "旧事業番号",
	"事業開始年度", "開始年度不明", "事業終了(予定)年度", "終了予定なし",
)

func (r ProjectOverview) Row() []string {
	return append(r.Common.row(),
		r.Purpose, r.CurrentIssues, r.Summary, r.SummaryURL,
		r.Category, r.MajorExpense, r.Method, r.SubsidyRate, r.LegacyProjectNo,
		fmtInt(r.StartYear), r.StartYearUnknown, fmtInt(r.EndYear), r.NoPlannedEnd,
	)
}

// PolicyLaw is one 1-3 政策・施策、法令等 record. Exactly one of the three
// numbered sections (policy, law, plan) is populated per record.
type PolicyLaw struct {
	Common
	PolicyNo        string
	PolicyMinistryP string
	Policy          string
	Measure         string
	PolicyURL       string
	LawNo           string
	LawName         string
	LawNumber       string
	LawID           string
	Article         string
	Paragraph       string
	Item            string
	PlanNo          string
	PlanName        string
	PlanURL         string
}

var PolicyLawColumns = withCommon(
	"番号（政策・施策）", "政策所管府省庁_P", "政策", "施策", "政策・施策URL",
	"番号（根拠法令）", "法令名", "法令番号", "法令ID", "条", "項", "号・号の細分",
	"番号（関係する計画・通知等）", "計画通知名", "計画通知等URL",
)

func (r PolicyLaw) Row() []string {
	return append(r.Common.row(),
		r.PolicyNo, r.PolicyMinistryP, r.Policy, r.Measure, r.PolicyURL,
		r.LawNo, r.LawName, r.LawNumber, r.LawID, r.Article, r.Paragraph, r.Item,
		r.PlanNo, r.PlanName, r.PlanURL,
	)
}

// SubsidyRate is one 1-4 補助率等 record.
type SubsidyRate struct {
	Common
	No     int
	Target string
	Rate   string
	Limit  string
	URL    string
}

var SubsidyRateColumns = withCommon(
	"番号（補助率等）", "補助対象", "補助率", "補助上限等", "補助率URL",
)

func (r SubsidyRate) Row() []string {
	return append(r.Common.row(), strconv.Itoa(r.No), r.Target, r.Rate, r.Limit, r.URL)
}

// RelatedProject is one 1-5 関連事業 record.
type RelatedProject struct {
	Common
	No          int
	RelatedID   string
	RelatedName string
	Relation    string
}

var RelatedProjectColumns = withCommon(
	"番号（関連事業）", "関連事業の事業ID", "関連事業の事業名", "関連性",
)

func (r RelatedProject) Row() []string {
	return append(r.Common.row(), strconv.Itoa(r.No), r.RelatedID, r.RelatedName, r.Relation)
}

// BudgetSummary is one 2-1 予算・執行サマリ record, one per populated
// budget year within an entity.
type BudgetSummary struct {
	Common
	BudgetYear    int
	AccountType   string
	Initial       *float64
	Supplementary *float64
	CarriedIn     *float64
	CarriedOut    *float64
	Reserve       *float64
	TotalAppropr  *float64
	Executed      *float64
	ExecutionRate *float64
}

var BudgetSummaryColumns = withCommon(
	"予算年度", "会計区分",
	"当初予算(合計)", "補正予算(合計)", "前年度からの繰越し(合計)", "翌年度へ繰越し(合計)",
	"予備費等(合計)", "計(歳出予算現額合計)", "執行額(合計)", "執行率",
)

func (r BudgetSummary) Row() []string {
	return append(r.Common.row(),
		strconv.Itoa(r.BudgetYear), r.AccountType,
		fmtFloat(r.Initial), fmtFloat(r.Supplementary), fmtFloat(r.CarriedIn),
		fmtFloat(r.CarriedOut), fmtFloat(r.Reserve), fmtFloat(r.TotalAppropr),
		fmtFloat(r.Executed), fmtFloat(r.ExecutionRate),
	)
}

// BudgetCategory is one 2-2 予算種別・歳出予算項目 record.
type BudgetCategory struct {
	Common
	No            int
	AccountType   string
	Account       string
	Ledger        string
	ItemKou       string
	ItemMoku      string
	CurrentBudget string
	NextRequest   string
}

var BudgetCategoryColumns = withCommon(
	"番号（予算内訳）", "会計区分", "会計", "勘定",
	"歳出予算項（項）", "歳出予算項（目）",
	"当初予算（百万円）", "翌年度要求（百万円）",
)

func (r BudgetCategory) Row() []string {
	return append(r.Common.row(),
		strconv.Itoa(r.No), r.AccountType, r.Account, r.Ledger,
		r.ItemKou, r.ItemMoku, r.CurrentBudget, r.NextRequest,
	)
}

// Inspection is one 4-1 点検・評価 record.
type Inspection struct {
	Common
	ReviewResult      string // 点検結果
	ImprovementPolicy string // 改善の方向性
	EffectEvaluation  string // 目標年度における効果測定に関する評価
	ExpertOpinion     string // 外部有識者による点検ー所見
	PublicProcess     string // 公開プロセス結果概要
	TeamJudgement     string // 推進チームの所見ー判定
	TeamOpinion       string // 推進チームの所見ー所見
}

// InspectionColumns follows the RS System 2024 layout. The legacy sheets
// never carry the 最終実施年度/点検対象, 過去に受けた指摘事項 and 備考
// columns, so those render as empty strings.
var InspectionColumns = withCommon(
	"事業所管部局による点検・改善ー点検結果",
	"事業所管部局による点検・改善ー改善の方向性",
	"事業所管部局による点検・改善－目標年度における効果測定に関する評価",
	"外部有識者による点検ー最終実施年度",
	"外部有識者による点検ー点検対象",
	"外部有識者による点検ー対象の理由",
	"外部有識者による点検ー所見",
	"公開プロセス結果概要",
	"行政事業レビュー推進チームの所見ー判定",
	"行政事業レビュー推進チームの所見ー所見",
	"過去に受けた指摘事項（年度）",
	"過去に受けた指摘事項（指摘主体）",
	"過去に受けた指摘事項（指摘事項）",
	"過去に受けた指摘事項（対応状況）",
	"備考1", "備考2", "備考3", "備考4", "備考5",
	"備考6", "備考7", "備考8", "備考9", "備考10",
)

func (r Inspection) Row() []string {
	row := append(r.Common.row(),
		r.ReviewResult, r.ImprovementPolicy, r.EffectEvaluation,
		"", "", "",
		r.ExpertOpinion, r.PublicProcess, r.TeamJudgement, r.TeamOpinion,
	)
	for i := 0; i < 14; i++ {
		row = append(row, "")
	}
	return row
}

// Expenditure is one 5-1 支出先 record, one per populated recipient slot.
type Expenditure struct {
	Common
	Block           string
	Number          int
	Recipient       string
	CorporateNumber string
	WorkSummary     string
	Amount          *float64
	ContractMethod  string
	Bidders         *float64
	BidRate         *float64
	SoleBidReason   string
	SoleBidDetail   string
}

var ExpenditureColumns = withCommon(
	"支出先ブロック", "支出先番号", "支出先名", "法人番号", "業務概要",
	"支出額（百万円）", "契約方式等", "入札者数（応募者数）", "落札率",
	"一者応札理由",
	"一者応札・一者応募又は競争性のない随意契約となった理由及び改善策（支出額10億円以上）",
)

func (r Expenditure) Row() []string {
	return append(r.Common.row(),
		r.Block, strconv.Itoa(r.Number), r.Recipient, r.CorporateNumber, r.WorkSummary,
		fmtFloat(r.Amount), r.ContractMethod, fmtFloat(r.Bidders), fmtFloat(r.BidRate),
		r.SoleBidReason, r.SoleBidDetail,
	)
}

// ExpenseUsage is one 5-3 費目・使途 record.
type ExpenseUsage struct {
	Common
	No     int
	Block  string
	Item   string // 費目
	Usage  string // 使途
	Amount string
}

var ExpenseUsageColumns = withCommon(
	"番号（費目・使途）", "支払先ブロック", "費目", "使途", "金額（百万円）",
)

func (r ExpenseUsage) Row() []string {
	return append(r.Common.row(), strconv.Itoa(r.No), r.Block, r.Item, r.Usage, r.Amount)
}

// Contract is one 5-4 国庫債務負担行為等による契約 record.
type Contract struct {
	Common
	No              int
	BlockName       string
	Contractor      string
	CorporateNumber string
	WorkSummary     string
	Amount          string
	Method          string
	Bidders         string
	BidRate         string
	SoleBidReason   string
}

var ContractColumns = withCommon(
	"番号（契約）", "支出先ブロック名", "契約先", "法人番号", "業務概要",
	"契約額（百万円）", "契約方式", "入札者数（応募者数）", "落札率",
	"一者応札・一者応募又は競争性のない随意契約となった理由及び改善策",
)

func (r Contract) Row() []string {
	return append(r.Common.row(),
		strconv.Itoa(r.No), r.BlockName, r.Contractor, r.CorporateNumber, r.WorkSummary,
		r.Amount, r.Method, r.Bidders, r.BidRate, r.SoleBidReason,
	)
}

// Remarks is one 6-1 その他備考 record.
type Remarks struct {
	Common
	Remarks string
}

var RemarksColumns = withCommon("備考")

func (r Remarks) Row() []string {
	return append(r.Common.row(), r.Remarks)
}

// ColumnsFor returns the stable column order of one table kind.
func ColumnsFor(kind Kind) []string {
	switch kind {
	case KindOrganization:
		return OrganizationColumns
	case KindProjectOverview:
		return ProjectOverviewColumns
	case KindPolicyLaw:
		return PolicyLawColumns
	case KindSubsidyRate:
		return SubsidyRateColumns
	case KindRelatedProjects:
		return RelatedProjectColumns
	case KindBudgetSummary:
		return BudgetSummaryColumns
	case KindBudgetCategory:
		return BudgetCategoryColumns
	case KindInspection:
		return InspectionColumns
	case KindExpenditure:
		return ExpenditureColumns
	case KindExpenseUsage:
		return ExpenseUsageColumns
	case KindContract:
		return ContractColumns
	case KindRemarks:
		return RemarksColumns
	}
	return nil
}

// NewTable returns an empty table for one kind and year.
func NewTable(kind Kind, year int) *Table {
	return &Table{Kind: kind, Year: year, Columns: ColumnsFor(kind)}
}
