package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"slotdesk/internal/booking/validator"
	"slotdesk/internal/sheets"
	"slotdesk/pkg/config"
	apperrors "slotdesk/pkg/errors"
	"slotdesk/pkg/events"
	"slotdesk/pkg/model"
	"slotdesk/pkg/sanitizer"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type BookingService interface {
	Book(ctx context.Context, req *model.BookingRequest) (*Confirmation, error)
	Cancel(ctx context.Context, req *model.CancelRequest) error
	GetAvailability(ctx context.Context) (*model.Listing, error)
	GetBookings(ctx context.Context, phone string) ([]model.Signup, error)
}

// Publisher emits booking lifecycle events. A nil publisher disables
// event emission entirely.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// Confirmation is the success result of a booking.
type Confirmation struct {
	Code  string
	Slots []string
}

func (c *Confirmation) Message() string {
	return fmt.Sprintf("Booked %d slot(s). Confirmation code: %s", len(c.Slots), c.Code)
}

type bookingService struct {
	store     sheets.Store
	validator *validator.BookingValidator
	throttle  *Throttle
	cache     *ListingCache
	publisher Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	store sheets.Store,
	bookingValidator *validator.BookingValidator,
	throttle *Throttle,
	cache *ListingCache,
	publisher Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		store:     store,
		validator: bookingValidator,
		throttle:  throttle,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest) (*Confirmation, error) {
	s.sanitize(req)
	if err := s.validator.ValidateBooking(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	phone := sanitizer.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, apperrors.InvalidInput("A valid phone number is required")
	}

	if !s.throttle.TryAcquire(phone) {
		s.cfg.Log.Warn("Concurrent booking limit reached", "phone", phone)
		return nil, apperrors.RateLimited("Too many booking attempts in progress for this phone")
	}
	defer s.throttle.Release(phone)

	slots, signups, err := s.readBookingState(ctx, req.SlotIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to read booking state", "error", err)
		return nil, apperrors.Internal("Failed to read slot data", err)
	}

	// Any single-slot failure aborts the whole request; no partial
	// booking across the requested set.
	for i, id := range req.SlotIDs {
		slot := slots[i]
		if slot == nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("Slot %d does not exist", id))
		}
		if conflict := findActiveSignup(signups, phone, id); conflict != nil {
			return nil, apperrors.Conflict(fmt.Sprintf("You already have a booking for %s %s", slot.Date, slot.Label))
		}
		if slot.Taken >= slot.Capacity {
			return nil, apperrors.Conflict(fmt.Sprintf("%s %s is fully booked", slot.Date, slot.Label))
		}
	}

	timestamp := s.now().Format(time.RFC3339)
	confirmation := &Confirmation{Code: uuid.NewString()}
	batch := sheets.WriteBatch{}

	for i, id := range req.SlotIDs {
		slot := slots[i]
		slotLabel := fmt.Sprintf("%s %s", slot.Date, slot.Label)
		confirmation.Slots = append(confirmation.Slots, slotLabel)

		batch.AppendSignups = append(batch.AppendSignups, model.Signup{
			Timestamp: timestamp,
			Date:      slot.Date,
			SlotLabel: slotLabel,
			Name:      req.Name,
			Email:     req.Email,
			Phone:     phone,
			Category:  req.Category,
			Notes:     req.Notes,
			SlotRowID: id,
			Status:    model.StatusActive,
		})
		batch.SetTaken = append(batch.SetTaken, sheets.TakenUpdate{
			SlotRowID: id,
			Taken:     slot.Taken + 1,
		})
	}

	// The span between the reads above and this write is not protected
	// by any store-side lock: two requests from different phones can
	// both observe taken < capacity and both increment. The store has no
	// conditional writes, so this residual race is accepted; the
	// per-phone throttle only bounds it.
	err = s.store.Apply(ctx, batch)
	// Drop the cached listing even when the write errored: the outcome
	// of a failed batched write is ambiguous from here.
	s.cache.Invalidate()
	if err != nil {
		s.cfg.Log.Error("Failed to write booking", "phone", phone, "slot_ids", req.SlotIDs, "error", err)
		return nil, apperrors.Internal("Failed to save booking", err)
	}

	s.cfg.Log.Info("Booking created",
		"phone", phone,
		"slot_ids", req.SlotIDs,
		"confirmation_code", confirmation.Code,
	)
	s.publish(ctx, events.Event{
		Type:             events.TypeBookingCreated,
		Phone:            phone,
		ConfirmationCode: confirmation.Code,
		SlotRowIDs:       req.SlotIDs,
		At:               timestamp,
	})

	return confirmation, nil
}

// readBookingState performs the two logically independent reads of a
// booking attempt in parallel: the requested slot rows and the full
// signup range used for duplicate detection.
func (s *bookingService) readBookingState(ctx context.Context, slotIDs []int) ([]*model.Slot, []model.Signup, error) {
	var slots []*model.Slot
	var signups []model.Signup
	var errSlots, errSignups error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		slots, errSlots = s.store.GetSlotsByID(ctx, slotIDs)
	}()

	go func() {
		defer wg.Done()
		signups, errSignups = s.store.GetSignups(ctx)
	}()

	wg.Wait()
	if errSlots != nil {
		return nil, nil, errSlots
	}
	if errSignups != nil {
		return nil, nil, errSignups
	}
	return slots, signups, nil
}

// findActiveSignup scans the full signup range for an ACTIVE row with
// the given phone and slot. O(n) per booking; fine at this scale.
func findActiveSignup(signups []model.Signup, phone string, slotRowID int) *model.Signup {
	for i := range signups {
		if signups[i].IsActive() && signups[i].Phone == phone && signups[i].SlotRowID == slotRowID {
			return &signups[i]
		}
	}
	return nil
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Category = sanitizer.TrimAndNormalize(req.Category)
	req.Notes = sanitizer.TrimAndNormalize(req.Notes)
}

func (s *bookingService) publish(ctx context.Context, ev events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "type", ev.Type, "error", err)
	}
}
