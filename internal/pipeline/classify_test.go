package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHeaderRepeatFamilies(t *testing.T) {
	cases := []struct {
		header string
		gen    Generation
		kind   FieldKind
		year   int
		block  string
		seq    int
	}{
		{"支出先上位１０者リスト-A.支払先-3-支出額（百万円）", GenCurrent, FieldExpAmount, 0, "A", 3},
		{"支出先上位１０者リスト-B.支払先-1-支出先", GenCurrent, FieldExpRecipient, 0, "B", 1},
		{"支出先上位10者リスト-A.支払先-2-法人番号", GenCurrent, FieldExpCorporateNo, 0, "A", 2},
		{"支出先上位10者リスト-A.支払先-1-一者応札・一者応募又は競争性のない随意契約となった理由及び改善策", GenCurrent, FieldExpSoleDetail, 0, "A", 1},
		{"支出先上位１０者リスト-グループ-支出先-5", GenLegacy, FieldExpRecipient, 0, BlockGroup, 5},
		{"支出先上位10者リスト-グループ-落札率-2", GenLegacy, FieldExpBidRate, 0, BlockGroup, 2},
		{"費目・使途-A.支払先-費目-01", GenCurrent, FieldUsageItem, 0, "A", 1},
		{"費目・使途-C.支払先-金額（百万円）-03", GenCurrent, FieldUsageAmount, 0, "C", 3},
		{"国庫債務負担行為等による契約先上位10者リスト-1-契約先", GenCurrent, FieldContractContractor, 0, "", 1},
		{"国庫債務負担行為等による契約先上位10者リスト-2-契約額（百万円）", GenCurrent, FieldContractAmount, 0, "", 2},
		{"関連する過去のレビューシートの事業番号-2020年度-01", GenCurrent, FieldRelatedProject, 2020, "", 1},
	}
	for _, c := range cases {
		cc, ok := classifyHeader(c.header, c.gen, false)
		require.True(t, ok, "header %q not classified", c.header)
		assert.Equal(t, c.kind, cc.Kind, c.header)
		assert.Equal(t, c.year, cc.Year, c.header)
		assert.Equal(t, c.block, cc.Block, c.header)
		assert.Equal(t, c.seq, cc.Seq, c.header)
		assert.Equal(t, c.header, cc.Header, "raw header must be preserved")
	}
}

func TestClassifyHeaderBudgetSummary(t *testing.T) {
	cases := []struct {
		header        string
		reiwaDominant bool
		kind          FieldKind
		year          int
	}{
		{"予算の状況-2022年度当初予算（百万円）", false, FieldBudgetInitial, 2022},
		{"予算の状況-令和3年度補正予算（百万円）", false, FieldBudgetSupplementary, 2021},
		{"予算の状況-令和元年度予備費等（百万円）", false, FieldBudgetReserve, 2019},
		{"予算の状況-平成30年度前年度から繰越し（百万円）", false, FieldBudgetCarryIn, 2018},
		{"予算の状況-05年度-当初予算（百万円）", true, FieldBudgetInitial, 2023},
		{"予算の状況-05年度-当初予算（百万円）", false, FieldBudgetInitial, 1993},
		{"予算の状況-25年度-執行額（百万円）", true, FieldBudgetExecuted, 2013},
		{"2022年度執行率（%）", false, FieldBudgetExecRate, 2022},
	}
	for _, c := range cases {
		cc, ok := classifyHeader(c.header, GenCurrent, c.reiwaDominant)
		require.True(t, ok, "header %q not classified", c.header)
		assert.Equal(t, c.kind, cc.Kind, c.header)
		assert.Equal(t, c.year, cc.Year, c.header)
	}
}

func TestClassifyHeaderSingletons(t *testing.T) {
	cases := []struct {
		header string
		kind   FieldKind
		seq    int
	}{
		{"事業名", FieldProjectName, 0},
		{"府省", FieldMinistry, 0},
		{"作成責任者", FieldCreator, 0},
		{"担当部局庁", FieldDeptBureau, 0},
		{"担当課室", FieldDeptSection, 0},
		{"事業番号-3", FieldProjectNumber, 3},
		{"事業の目的", FieldPurpose, 0},
		{"事業概要URL", FieldSummaryURL, 0},
		{"根拠法令（具体的な条項も記載）", FieldLawText, 0},
		{"会計区分", FieldAccountType, 0},
		{"備考", FieldRemarks, 0},
		{"行政事業レビュー推進チームの所見に至る過程及び所見-初見", FieldInspTeamOpinion, 0},
		{"外部有識者の所見--", FieldInspExpert, 0},
		{"過去に受けた指摘事項と対応状況-公開プロセス・秋の年次公開検証（秋のレビュー）における取りまとめ", FieldInspPublicProcess, 0},
	}
	for _, c := range cases {
		cc, ok := classifyHeader(c.header, GenCurrent, false)
		require.True(t, ok, "header %q not classified", c.header)
		assert.Equal(t, c.kind, cc.Kind, c.header)
		assert.Equal(t, c.seq, cc.Seq, c.header)
	}
}

func TestClassifyHeaderUnknown(t *testing.T) {
	for _, h := range []string{"", "メモ欄", "チェック"} {
		_, ok := classifyHeader(h, GenCurrent, false)
		assert.False(t, ok, "header %q should not classify", h)
	}
}

func TestDetectGeneration(t *testing.T) {
	legacy := []string{"事業名", "支出先上位１０者リスト-グループ-支出先-1"}
	current := []string{"事業名", "支出先上位10者リスト-A.支払先-1-支出先"}
	assert.Equal(t, GenLegacy, DetectGeneration(legacy))
	assert.Equal(t, GenCurrent, DetectGeneration(current))
	assert.Equal(t, GenCurrent, DetectGeneration([]string{"事業名"}))
}

func TestDetectEraDominance(t *testing.T) {
	assert.True(t, detectEraDominance([]string{"令和3年度当初予算", "令和2年度執行額"}))
	assert.True(t, detectEraDominance([]string{"令和3年度当初予算", "平成30年度執行額", "令和4年度要求"}))
	assert.False(t, detectEraDominance([]string{"平成30年度当初予算", "平成29年度執行額"}))
	assert.False(t, detectEraDominance([]string{"2020年度当初予算"}))
}

func TestBuildColumnIndex(t *testing.T) {
	headers := []string{
		"事業名",
		"府省",
		"予算の状況-2023年度当初予算（百万円）",
		"予算の状況-2022年度当初予算（百万円）",
		"予算の状況-2022年度執行額（百万円）",
		"支出先上位10者リスト-A.支払先-1-支出先",
		"支出先上位10者リスト-A.支払先-2-支出先",
		"支出先上位10者リスト-B.支払先-1-支出先",
		"関連する過去のレビューシートの事業番号-2021年度-02",
		"関連する過去のレビューシートの事業番号-2020年度-01",
		"事業名", // duplicate, first wins
	}
	ix := BuildColumnIndex(headers)

	h, ok := ix.Singleton(FieldProjectName)
	require.True(t, ok)
	assert.Equal(t, "事業名", h)

	assert.Equal(t, []int{2022, 2023}, ix.BudgetYears())

	keys := ix.ExpenditureKeys()
	assert.Equal(t, []RepeatKey{{"A", 1}, {"A", 2}, {"B", 1}}, keys)

	related := ix.RelatedColumns()
	require.Len(t, related, 2)
	assert.Equal(t, 2020, related[0].Year)
	assert.Equal(t, 2021, related[1].Year)

	_, ok = ix.BudgetHeader(FieldBudgetExecuted, 2023)
	assert.False(t, ok)
}
