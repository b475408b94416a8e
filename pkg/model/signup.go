package model

import "strings"

const (
	StatusActive          = "ACTIVE"
	StatusCancelledPrefix = "CANCELLED:"
)

// Signup is one person's claim on one slot. Rows are never deleted;
// cancellation flips Status to "CANCELLED:<timestamp>" so the sheet stays
// an append-only audit trail.
type Signup struct {
	RowID     int    `json:"signupRowId"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	SlotLabel string `json:"slotLabel"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone"`
	Category  string `json:"category"`
	Notes     string `json:"notes,omitempty"`
	SlotRowID int    `json:"slotRowId"`
	Status    string `json:"status"`
}

func (s *Signup) IsActive() bool {
	return s.Status == StatusActive
}

func (s *Signup) IsCancelled() bool {
	return strings.HasPrefix(s.Status, StatusCancelledPrefix)
}

// BookingRequest is the POST / body. Field length caps are configured at
// runtime and enforced by the validator, not by struct tags.
type BookingRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Category string `json:"category" validate:"required"`
	Notes    string `json:"notes"`
	SlotIDs  []int  `json:"slotIds" validate:"required,min=1,dive,gt=0"`
}

// CancelRequest is the PATCH / body. Phone is the only authorization
// mechanism: it must match the phone stored on the signup row.
type CancelRequest struct {
	SignupRowID int    `json:"signupRowId" validate:"required,gt=0"`
	SlotRowID   int    `json:"slotRowId" validate:"required,gt=0"`
	Phone       string `json:"phone" validate:"required"`
}
