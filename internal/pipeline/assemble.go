package pipeline

import (
	"strings"

	"rspipe/internal"
	"rspipe/internal/util"
)

// cell reads a singleton field value from one row, trimmed.
func cell(ix *ColumnIndex, row internal.Row, kind FieldKind) string {
	h, ok := ix.Singleton(kind)
	if !ok {
		return ""
	}
	return strings.TrimSpace(row.Get(h))
}

// cellAt reads a repeat field value, trimmed.
func cellAt(ix *ColumnIndex, row internal.Row, kind FieldKind, block string, seq int) string {
	h, ok := ix.Header(kind, 0, block, seq)
	if !ok {
		return ""
	}
	return strings.TrimSpace(row.Get(h))
}

// clean maps placeholder tokens to the empty string.
func clean(s string) string {
	if util.IsPlaceholder(s) {
		return ""
	}
	return s
}
