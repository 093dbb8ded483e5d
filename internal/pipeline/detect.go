package pipeline

import (
	"strings"

	"rspipe/internal"
)

var reviewIndicators = []string{"事業名", "府省", "事業の目的", "予算", "執行"}

var segmentIndicators = []string{"セグメント", "達成目標", "測定指標"}

// DetectSheetType decides whether a source table is a review sheet or a
// segment sheet. Filename hints are authoritative when present; otherwise
// the decision falls back to indicator co-occurrence across the headers.
func DetectSheetType(filename string, headers []string) internal.SheetType {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(filename, "レビューシート") || strings.Contains(name, "review"):
		return internal.SheetReview
	case strings.Contains(filename, "セグメント") || strings.Contains(name, "segment"):
		return internal.SheetSegment
	}

	joined := foldHeader(strings.Join(headers, "\n"))
	review := 0
	for _, kw := range reviewIndicators {
		if strings.Contains(joined, kw) {
			review++
		}
	}
	segment := 0
	for _, kw := range segmentIndicators {
		if strings.Contains(joined, kw) {
			segment++
		}
	}

	if review >= 3 {
		return internal.SheetReview
	}
	if segment >= 2 {
		return internal.SheetSegment
	}
	return internal.SheetUnknown
}
