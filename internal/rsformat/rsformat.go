// Package rsformat defines the canonical RS-format output tables: one typed
// record variant per table kind, each with a stable column order, plus the
// common prefix every record carries.
package rsformat

import "strconv"

// Kind identifies one canonical output table.
type Kind string

const (
	KindOrganization    Kind = "organization"
	KindProjectOverview Kind = "project_overview"
	KindPolicyLaw       Kind = "policy_law"
	KindSubsidyRate     Kind = "subsidy_rate"
	KindRelatedProjects Kind = "related_projects"
	KindBudgetSummary   Kind = "budget_summary"
	KindBudgetCategory  Kind = "budget_category"
	KindInspection      Kind = "inspection_evaluation"
	KindExpenditure     Kind = "expenditure"
	KindExpenseUsage    Kind = "expense_usage"
	KindContract        Kind = "multi_year_contract"
	KindRemarks         Kind = "remarks"
)

// fileTag holds the RS numbering prefix and Japanese label used to name the
// per-year output file, e.g. 1-1_2023_基本情報_組織情報.csv.
type fileTag struct {
	Prefix string
	Label  string
}

var fileTags = map[Kind]fileTag{
	KindOrganization:    {"1-1", "基本情報_組織情報"},
	KindProjectOverview: {"1-2", "基本情報_事業概要"},
	KindPolicyLaw:       {"1-3", "基本情報_政策・施策、法令等"},
	KindSubsidyRate:     {"1-4", "基本情報_補助率等"},
	KindRelatedProjects: {"1-5", "基本情報_関連事業"},
	KindBudgetSummary:   {"2-1", "予算・執行_サマリ"},
	KindBudgetCategory:  {"2-2", "予算・執行_予算種別・歳出予算項目"},
	KindInspection:      {"4-1", "点検・評価"},
	KindExpenditure:     {"5-1", "支出先_支出情報"},
	KindExpenseUsage:    {"5-3", "支出先_費目・使途"},
	KindContract:        {"5-4", "支出先_国庫債務負担行為等による契約"},
	KindRemarks:         {"6-1", "その他備考"},
}

// FileName returns the canonical output file name for one table and year.
func FileName(kind Kind, year int) string {
	tag := fileTags[kind]
	return tag.Prefix + "_" + strconv.Itoa(year) + "_" + tag.Label + ".csv"
}

// AllKinds lists every table kind in output order.
var AllKinds = []Kind{
	KindOrganization, KindProjectOverview, KindPolicyLaw, KindSubsidyRate,
	KindRelatedProjects, KindBudgetSummary, KindBudgetCategory, KindInspection,
	KindExpenditure, KindExpenseUsage, KindContract, KindRemarks,
}

// Table is one assembled canonical table: a stable column order plus rows of
// already-rendered string values aligned to it.
type Table struct {
	Kind    Kind
	Year    int
	Columns []string
	Rows    [][]string
}

// Append renders a record onto the table.
func (t *Table) Append(r Record) {
	t.Rows = append(t.Rows, r.Row())
}

// Record is one output row of a specific table kind.
type Record interface {
	Row() []string
}

// SheetKindReview is the common シート種別 value for review-sheet output.
const SheetKindReview = "レビューシート"

// Common is the prefix every output record carries.
type Common struct {
	SheetKind      string
	FiscalYear     int
	BusinessID     int
	ProjectName    string
	MinistryOrder  int // 府省庁の建制順, 0 when unknown
	PolicyMinistry string
	Ministry       string
	Bureau         string // 局・庁
	Department     string // 部
	Division       string // 課
	Office         string // 室
	Unit           string // 班
	Section        string // 係
}

var commonColumns = []string{
	"シート種別", "事業年度", "予算事業ID", "事業名",
	"府省庁の建制順", "政策所管府省庁", "府省庁",
	"局・庁", "部", "課", "室", "班", "係",
}

func (c Common) row() []string {
	return []string{
		c.SheetKind,
		strconv.Itoa(c.FiscalYear),
		strconv.Itoa(c.BusinessID),
		c.ProjectName,
		fmtOrder(c.MinistryOrder),
		c.PolicyMinistry,
		c.Ministry,
		c.Bureau,
		c.Department,
		c.Division,
		c.Office,
		c.Unit,
		c.Section,
	}
}

func fmtOrder(order int) string {
	if order == 0 {
		return ""
	}
	return strconv.Itoa(order)
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fmtInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func withCommon(extra ...string) []string {
	cols := make([]string, 0, len(commonColumns)+len(extra))
	cols = append(cols, commonColumns...)
	cols = append(cols, extra...)
	return cols
}
