package sheets

import (
	"testing"

	"slotdesk/pkg/model"
)

func TestCellCoercion(t *testing.T) {
	row := []any{"text", float64(7), nil, "12", "not a number"}

	tests := []struct {
		name    string
		idx     int
		wantStr string
		wantInt int
	}{
		{name: "string cell", idx: 0, wantStr: "text", wantInt: 0},
		{name: "numeric cell", idx: 1, wantStr: "7", wantInt: 7},
		{name: "nil cell", idx: 2, wantStr: "", wantInt: 0},
		{name: "numeric string", idx: 3, wantStr: "12", wantInt: 12},
		{name: "non-numeric string", idx: 4, wantStr: "not a number", wantInt: 0},
		{name: "out of range", idx: 9, wantStr: "", wantInt: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellString(row, tt.idx); got != tt.wantStr {
				t.Errorf("cellString(%d) = %q, want %q", tt.idx, got, tt.wantStr)
			}
			if got := cellInt(row, tt.idx); got != tt.wantInt {
				t.Errorf("cellInt(%d) = %d, want %d", tt.idx, got, tt.wantInt)
			}
		})
	}
}

func TestSlotFromRow(t *testing.T) {
	slot := slotFromRow(5, []any{"2026-09-01", "10am-12pm", float64(3), float64(1)})

	want := model.Slot{
		ID:        5,
		Date:      "2026-09-01",
		Label:     "10am-12pm",
		Capacity:  3,
		Taken:     1,
		Available: 2,
	}
	if slot != want {
		t.Errorf("slotFromRow = %+v, want %+v", slot, want)
	}
}

func TestSlotFromRowClampsAvailable(t *testing.T) {
	// taken above capacity must never surface negative availability
	slot := slotFromRow(3, []any{"2026-09-01", "1pm-3pm", float64(2), float64(5)})
	if slot.Available != 0 {
		t.Errorf("Available = %d, want 0", slot.Available)
	}
}

func TestSlotFromRowShortRow(t *testing.T) {
	slot := slotFromRow(2, []any{"2026-09-01"})
	if slot.Capacity != 0 || slot.Taken != 0 || slot.Label != "" {
		t.Errorf("short row should default missing cells, got %+v", slot)
	}
}

func TestSignupRoundTrip(t *testing.T) {
	in := model.Signup{
		Timestamp: "2026-08-31T10:00:00-04:00",
		Date:      "2026-09-01",
		SlotLabel: "2026-09-01 10am-12pm",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "+15551234567",
		Category:  "general",
		Notes:     "first visit",
		SlotRowID: 5,
		Status:    model.StatusActive,
	}

	out := signupFromRow(10, signupToRow(in))

	in.RowID = 10
	if out != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestRangeHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "row range", got: rowRange("Slots", 5, colSlotDate, colSlotAvailable), want: "Slots!A5:E5"},
		{name: "taken cell", got: cellRange("Slots", 5, colSlotTaken), want: "Slots!D5:D5"},
		{name: "status cell", got: cellRange("Signups", 10, colSignupStatus), want: "Signups!J10:J10"},
		{name: "data range", got: dataRange("Signups", colSignupStatus), want: "Signups!A2:J"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
