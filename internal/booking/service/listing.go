package service

import (
	"context"

	apperrors "slotdesk/pkg/errors"
	"slotdesk/pkg/model"
	"slotdesk/pkg/sanitizer"
)

// GetAvailability returns the availability listing, served from cache
// while fresh. Rows with no capacity or a past date are filtered out;
// slots keep their row order within each date.
func (s *bookingService) GetAvailability(ctx context.Context) (*model.Listing, error) {
	if cached := s.cache.Get(); cached != nil {
		return cached, nil
	}

	slots, err := s.store.GetSlots(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load slot range", "error", err)
		return nil, apperrors.Internal("Failed to load availability", err)
	}

	// ISO dates compare correctly as strings
	today := s.now().Format(dateLayout)

	listing := &model.Listing{Dates: make(map[string][]model.Slot)}
	for _, slot := range slots {
		if slot.Capacity <= 0 || slot.Date == "" {
			continue
		}
		if slot.Date < today {
			continue
		}
		listing.Dates[slot.Date] = append(listing.Dates[slot.Date], slot)
	}

	s.cache.Set(listing)
	return listing, nil
}

// GetBookings returns the caller's ACTIVE signups, matched on the
// sanitized phone.
func (s *bookingService) GetBookings(ctx context.Context, phone string) ([]model.Signup, error) {
	normalized := sanitizer.NormalizePhone(phone)
	if normalized == "" {
		return nil, apperrors.InvalidInput("A valid phone number is required")
	}

	signups, err := s.store.GetSignups(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load signup range", "error", err)
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	bookings := make([]model.Signup, 0)
	for _, signup := range signups {
		if signup.IsActive() && signup.Phone == normalized {
			bookings = append(bookings, signup)
		}
	}
	return bookings, nil
}
