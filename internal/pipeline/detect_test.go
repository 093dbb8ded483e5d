package pipeline

import (
	"testing"

	"rspipe/internal"
)

func TestDetectSheetType(t *testing.T) {
	review := []string{"事業名", "府省", "事業の目的", "予算の状況-2022年度当初予算", "2022年度執行額"}
	segment := []string{"セグメント名", "達成目標", "測定指標"}

	cases := []struct {
		name     string
		filename string
		headers  []string
		want     internal.SheetType
	}{
		{"review headers", "2022_シート1.csv", review, internal.SheetReview},
		{"segment headers", "2022_シート2.csv", segment, internal.SheetSegment},
		{"filename beats headers", "2022_セグメント.csv", review, internal.SheetSegment},
		{"review filename hint", "2022_レビューシート.csv", nil, internal.SheetReview},
		{"ascii filename hint", "2022_review_sheet.csv", nil, internal.SheetReview},
		{"unknown", "2022_data.csv", []string{"メモ", "チェック"}, internal.SheetUnknown},
		{"too few indicators", "2022_data.csv", []string{"事業名", "府省"}, internal.SheetUnknown},
	}
	for _, c := range cases {
		if got := DetectSheetType(c.filename, c.headers); got != c.want {
			t.Errorf("%s: DetectSheetType = %v, want %v", c.name, got, c.want)
		}
	}
}
