package rsformat

import "testing"

// every record type must render exactly as many cells as its table declares
func TestRowWidthsMatchColumns(t *testing.T) {
	records := map[Kind]Record{
		KindOrganization:    Organization{},
		KindProjectOverview: ProjectOverview{},
		KindPolicyLaw:       PolicyLaw{},
		KindSubsidyRate:     SubsidyRate{},
		KindRelatedProjects: RelatedProject{},
		KindBudgetSummary:   BudgetSummary{},
		KindBudgetCategory:  BudgetCategory{},
		KindInspection:      Inspection{},
		KindExpenditure:     Expenditure{},
		KindExpenseUsage:    ExpenseUsage{},
		KindContract:        Contract{},
		KindRemarks:         Remarks{},
	}
	for _, kind := range AllKinds {
		rec, ok := records[kind]
		if !ok {
			t.Fatalf("no record fixture for %s", kind)
		}
		cols := ColumnsFor(kind)
		if len(cols) == 0 {
			t.Fatalf("no columns for %s", kind)
		}
		if got := len(rec.Row()); got != len(cols) {
			t.Errorf("%s: row has %d cells, table has %d columns", kind, got, len(cols))
		}
	}
}

// the 4-1 table always carries the full 2024 column set, with the
// columns absent from legacy sheets rendered empty
func TestInspectionFullColumnSet(t *testing.T) {
	wantTail := []string{
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
	}
	cols := ColumnsFor(KindInspection)
	tail := cols[len(cols)-len(wantTail):]
	for i, want := range wantTail {
		if tail[i] != want {
			t.Fatalf("column %d: got %q, want %q", i, tail[i], want)
		}
	}

	rec := Inspection{ExpertOpinion: "妥当", TeamJudgement: "現状通り"}
	row := rec.Row()
	byName := make(map[string]string, len(cols))
	for i, c := range cols {
		byName[c] = row[i]
	}
	if byName["外部有識者による点検ー所見"] != "妥当" {
		t.Fatalf("所見 misplaced: %q", byName["外部有識者による点検ー所見"])
	}
	if byName["行政事業レビュー推進チームの所見ー判定"] != "現状通り" {
		t.Fatalf("判定 misplaced: %q", byName["行政事業レビュー推進チームの所見ー判定"])
	}
	for _, c := range []string{"外部有識者による点検ー最終実施年度", "過去に受けた指摘事項（年度）", "備考1", "備考10"} {
		if byName[c] != "" {
			t.Fatalf("%s should render empty, got %q", c, byName[c])
		}
	}
}

func TestCanonicalMinistry(t *testing.T) {
	if got := CanonicalMinistry("厚労省"); got != "厚生労働省" {
		t.Fatalf("got %q", got)
	}
	if got := CanonicalMinistry("未知の省庁"); got != "未知の省庁" {
		t.Fatalf("unknown names must pass through, got %q", got)
	}
}

func TestMinistryOrder(t *testing.T) {
	if MinistryOrder("内閣官房") != 1 {
		t.Fatal("内閣官房 should lead the 建制順")
	}
	if MinistryOrder("総務省") == 0 {
		t.Fatal("総務省 missing from master")
	}
	if MinistryOrder("未知の省庁") != 0 {
		t.Fatal("unknown ministries have no order")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(KindProjectOverview, 2022); got != "1-2_2022_基本情報_事業概要.csv" {
		t.Fatalf("got %q", got)
	}
}
