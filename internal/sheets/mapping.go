package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"slotdesk/pkg/model"
)

// Fixed zero-based column layout of the two sheets. Row 1 of each sheet
// is a header; data rows start at row 2, and a row's 1-based sheet
// position is its identity.
const (
	colSlotDate = iota
	colSlotLabel
	colSlotCapacity
	colSlotTaken
	colSlotAvailable
)

const (
	colSignupTimestamp = iota
	colSignupDate
	colSignupSlotLabel
	colSignupName
	colSignupEmail
	colSignupPhone
	colSignupCategory
	colSignupNotes
	colSignupSlotRowID
	colSignupStatus
)

const firstDataRow = 2

// cellString coerces a cell to a string; out-of-range or nil cells
// yield "".
func cellString(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; sheet cells hold integers.
		return strconv.Itoa(int(v))
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// cellInt coerces a cell to an int; non-numeric cells yield 0.
func cellInt(row []any, idx int) int {
	if idx >= len(row) || row[idx] == nil {
		return 0
	}
	switch v := row[idx].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func slotFromRow(rowID int, row []any) model.Slot {
	slot := model.Slot{
		ID:       rowID,
		Date:     cellString(row, colSlotDate),
		Label:    cellString(row, colSlotLabel),
		Capacity: cellInt(row, colSlotCapacity),
		Taken:    cellInt(row, colSlotTaken),
	}
	slot.Available = slot.Availability()
	return slot
}

func signupFromRow(rowID int, row []any) model.Signup {
	return model.Signup{
		RowID:     rowID,
		Timestamp: cellString(row, colSignupTimestamp),
		Date:      cellString(row, colSignupDate),
		SlotLabel: cellString(row, colSignupSlotLabel),
		Name:      cellString(row, colSignupName),
		Email:     cellString(row, colSignupEmail),
		Phone:     cellString(row, colSignupPhone),
		Category:  cellString(row, colSignupCategory),
		Notes:     cellString(row, colSignupNotes),
		SlotRowID: cellInt(row, colSignupSlotRowID),
		Status:    cellString(row, colSignupStatus),
	}
}

func signupToRow(s model.Signup) []any {
	return []any{
		s.Timestamp,
		s.Date,
		s.SlotLabel,
		s.Name,
		s.Email,
		s.Phone,
		s.Category,
		s.Notes,
		s.SlotRowID,
		s.Status,
	}
}

// columnLetter converts a zero-based column index to its A1 letter.
// The two sheets fit comfortably inside A-Z.
func columnLetter(idx int) string {
	return string(rune('A' + idx))
}

func rowRange(sheet string, rowID, firstCol, lastCol int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", sheet, columnLetter(firstCol), rowID, columnLetter(lastCol), rowID)
}

func cellRange(sheet string, rowID, col int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", sheet, columnLetter(col), rowID, columnLetter(col), rowID)
}

func dataRange(sheet string, lastCol int) string {
	return fmt.Sprintf("%s!A%d:%s", sheet, firstDataRow, columnLetter(lastCol))
}
