package service

import (
	"context"
	"fmt"
	"time"

	"slotdesk/internal/sheets"
	apperrors "slotdesk/pkg/errors"
	"slotdesk/pkg/events"
	"slotdesk/pkg/model"
	"slotdesk/pkg/sanitizer"
)

// Cancel flips a signup row to CANCELLED and decrements the slot's taken
// count in one batched write. The stored phone is the only authorization
// mechanism. Rows are never deleted; the sheet keeps its audit history.
func (s *bookingService) Cancel(ctx context.Context, req *model.CancelRequest) error {
	if err := s.validator.ValidateCancel(req); err != nil {
		s.cfg.Log.Warn("Cancel validation failed", "error", err)
		return apperrors.Validation("Invalid cancellation request", map[string]any{"error": err.Error()})
	}

	phone := sanitizer.NormalizePhone(req.Phone)
	if phone == "" {
		return apperrors.InvalidInput("A valid phone number is required")
	}

	signup, err := s.store.GetSignup(ctx, req.SignupRowID)
	if err != nil {
		s.cfg.Log.Error("Failed to read signup row", "signup_row_id", req.SignupRowID, "error", err)
		return apperrors.Internal("Failed to look up booking", err)
	}
	if signup == nil {
		return apperrors.NotFound("Booking")
	}
	if signup.Phone != phone {
		s.cfg.Log.Warn("Cancellation phone mismatch", "signup_row_id", req.SignupRowID)
		return apperrors.Forbidden("Phone number does not match this booking")
	}
	if !signup.IsActive() {
		// re-cancelling would decrement taken a second time
		return apperrors.Conflict("This booking is already cancelled")
	}
	if signup.SlotRowID != req.SlotRowID {
		return apperrors.InvalidInput("Slot does not match this booking")
	}

	slots, err := s.store.GetSlotsByID(ctx, []int{req.SlotRowID})
	if err != nil {
		s.cfg.Log.Error("Failed to read slot row", "slot_row_id", req.SlotRowID, "error", err)
		return apperrors.Internal("Failed to look up slot", err)
	}
	if slots[0] == nil {
		return apperrors.InvalidInput(fmt.Sprintf("Slot %d does not exist", req.SlotRowID))
	}

	newTaken := 0
	if slots[0].Taken > 0 {
		newTaken = slots[0].Taken - 1
	}

	timestamp := s.now().Format(time.RFC3339)
	batch := sheets.WriteBatch{
		SetStatus: []sheets.StatusUpdate{
			{SignupRowID: req.SignupRowID, Status: model.StatusCancelledPrefix + timestamp},
		},
		SetTaken: []sheets.TakenUpdate{
			{SlotRowID: req.SlotRowID, Taken: newTaken},
		},
	}

	err = s.store.Apply(ctx, batch)
	s.cache.Invalidate()
	if err != nil {
		s.cfg.Log.Error("Failed to write cancellation", "signup_row_id", req.SignupRowID, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled",
		"phone", phone,
		"signup_row_id", req.SignupRowID,
		"slot_row_id", req.SlotRowID,
	)
	s.publish(ctx, events.Event{
		Type:        events.TypeBookingCancelled,
		Phone:       phone,
		SignupRowID: req.SignupRowID,
		SlotRowIDs:  []int{req.SlotRowID},
		At:          timestamp,
	})

	return nil
}
