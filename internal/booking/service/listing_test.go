package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "slotdesk/pkg/errors"
	"slotdesk/pkg/model"
)

func fixedNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func TestGetAvailabilityGroupsAndFilters(t *testing.T) {
	store := &mockStore{
		getSlotsFunc: func(_ context.Context) ([]model.Slot, error) {
			return []model.Slot{
				{ID: 2, Date: "2026-09-15", Label: "10am-12pm", Capacity: 3, Taken: 1, Available: 2},
				{ID: 3, Date: "2026-09-15", Label: "2pm-4pm", Capacity: 2, Taken: 2, Available: 0},
				{ID: 4, Date: "2026-09-16", Label: "10am-12pm", Capacity: 5, Taken: 0, Available: 5},
				{ID: 5, Date: "2026-08-01", Label: "past", Capacity: 3, Taken: 0, Available: 3},
				{ID: 6, Date: "2026-09-17", Label: "no capacity", Capacity: 0, Taken: 0, Available: 0},
				{ID: 7, Date: "", Label: "blank row", Capacity: 3, Taken: 0, Available: 3},
			}, nil
		},
	}
	svc := newTestService(store, testConfig())
	svc.now = fixedNow

	listing, err := svc.GetAvailability(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(listing.Dates) != 2 {
		t.Fatalf("expected 2 dates, got %d: %v", len(listing.Dates), listing.Dates)
	}
	sept15 := listing.Dates["2026-09-15"]
	if len(sept15) != 2 || sept15[0].ID != 2 || sept15[1].ID != 3 {
		t.Errorf("2026-09-15 should keep row order, got %+v", sept15)
	}
	if len(listing.Dates["2026-09-16"]) != 1 {
		t.Errorf("2026-09-16 mismatch: %+v", listing.Dates["2026-09-16"])
	}
}

func TestGetAvailabilityKeepsFullSlots(t *testing.T) {
	store := &mockStore{
		getSlotsFunc: func(_ context.Context) ([]model.Slot, error) {
			return []model.Slot{
				{ID: 2, Date: "2026-09-15", Label: "10am-12pm", Capacity: 2, Taken: 2, Available: 0},
			}, nil
		},
	}
	svc := newTestService(store, testConfig())
	svc.now = fixedNow

	listing, err := svc.GetAvailability(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listing.Dates["2026-09-15"]) != 1 {
		t.Error("a fully booked slot is still listed, just with zero availability")
	}
}

func TestGetAvailabilityServedFromCache(t *testing.T) {
	store := &mockStore{
		getSlotsFunc: func(_ context.Context) ([]model.Slot, error) {
			return []model.Slot{
				{ID: 2, Date: "2026-09-15", Label: "10am-12pm", Capacity: 3, Taken: 1, Available: 2},
			}, nil
		},
	}
	svc := newTestService(store, testConfig())
	svc.now = fixedNow

	for i := 0; i < 3; i++ {
		if _, err := svc.GetAvailability(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if store.slotReads != 1 {
		t.Errorf("expected a single store read within the TTL, got %d", store.slotReads)
	}

	svc.cache.Invalidate()
	if _, err := svc.GetAvailability(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.slotReads != 2 {
		t.Errorf("invalidation should force a fresh read, got %d reads", store.slotReads)
	}
}

func TestGetAvailabilityStoreFailure(t *testing.T) {
	store := &mockStore{
		getSlotsFunc: func(_ context.Context) ([]model.Slot, error) {
			return nil, errors.New("store unavailable")
		},
	}
	svc := newTestService(store, testConfig())

	_, err := svc.GetAvailability(context.Background())
	assertCode(t, err, apperrors.CodeInternal)
}

func TestGetBookingsFiltersByPhoneAndStatus(t *testing.T) {
	store := &mockStore{
		getSignupsFunc: func(_ context.Context) ([]model.Signup, error) {
			return []model.Signup{
				{RowID: 2, Phone: "+15551234567", Status: model.StatusActive, Date: "2026-09-15"},
				{RowID: 3, Phone: "+15551234567", Status: "CANCELLED:2026-08-30T12:00:00Z", Date: "2026-09-15"},
				{RowID: 4, Phone: "+15559876543", Status: model.StatusActive, Date: "2026-09-16"},
			}, nil
		},
	}
	svc := newTestService(store, testConfig())

	bookings, err := svc.GetBookings(context.Background(), "(555) 123-4567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 1 || bookings[0].RowID != 2 {
		t.Errorf("expected only the caller's active booking, got %+v", bookings)
	}
}

func TestGetBookingsNoMatchesReturnsEmptySlice(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store, testConfig())

	bookings, err := svc.GetBookings(context.Background(), "5551234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookings == nil || len(bookings) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", bookings)
	}
}

func TestGetBookingsInvalidPhone(t *testing.T) {
	svc := newTestService(&mockStore{}, testConfig())

	_, err := svc.GetBookings(context.Background(), "not a phone")
	assertCode(t, err, apperrors.CodeInvalidInput)
}
