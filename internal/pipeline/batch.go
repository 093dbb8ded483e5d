package pipeline

// BatchContext carries the per-year entity ID counter. One context is shared
// by every file of a fiscal-year batch, so IDs are unique within the year
// regardless of how rows are split across files.
type BatchContext struct {
	year   int
	nextID int
}

// NewBatchContext starts a context for one fiscal year with IDs from 1.
func NewBatchContext(year int) *BatchContext {
	return &BatchContext{year: year, nextID: 1}
}

// Year is the fiscal year this batch assembles.
func (b *BatchContext) Year() int { return b.year }

// NextID hands out the next entity ID.
func (b *BatchContext) NextID() int {
	id := b.nextID
	b.nextID++
	return id
}

// ResetForYear rewinds the counter for a new fiscal year.
func (b *BatchContext) ResetForYear(year int) {
	b.year = year
	b.nextID = 1
}
