package pipeline

import "testing"

func TestBatchContextIDs(t *testing.T) {
	bc := NewBatchContext(2022)
	if bc.Year() != 2022 {
		t.Fatalf("Year = %d", bc.Year())
	}
	for want := 1; want <= 5; want++ {
		if got := bc.NextID(); got != want {
			t.Fatalf("NextID = %d, want %d", got, want)
		}
	}

	bc.ResetForYear(2023)
	if bc.Year() != 2023 {
		t.Fatalf("Year after reset = %d", bc.Year())
	}
	if got := bc.NextID(); got != 1 {
		t.Fatalf("NextID after reset = %d, want 1", got)
	}
}
