package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slotdesk/internal/booking/service"
	apperrors "slotdesk/pkg/errors"
	"slotdesk/pkg/logger"
	"slotdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	bookFunc            func(ctx context.Context, req *model.BookingRequest) (*service.Confirmation, error)
	cancelFunc          func(ctx context.Context, req *model.CancelRequest) error
	getAvailabilityFunc func(ctx context.Context) (*model.Listing, error)
	getBookingsFunc     func(ctx context.Context, phone string) ([]model.Signup, error)
}

func (m *mockBookingService) Book(ctx context.Context, req *model.BookingRequest) (*service.Confirmation, error) {
	if m.bookFunc != nil {
		return m.bookFunc(ctx, req)
	}
	return &service.Confirmation{Code: "abc-123", Slots: []string{"2026-09-15 10am-12pm"}}, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, req *model.CancelRequest) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, req)
	}
	return nil
}

func (m *mockBookingService) GetAvailability(ctx context.Context) (*model.Listing, error) {
	if m.getAvailabilityFunc != nil {
		return m.getAvailabilityFunc(ctx)
	}
	return &model.Listing{Dates: map[string][]model.Slot{}}, nil
}

func (m *mockBookingService) GetBookings(ctx context.Context, phone string) ([]model.Signup, error) {
	if m.getBookingsFunc != nil {
		return m.getBookingsFunc(ctx, phone)
	}
	return []model.Signup{}, nil
}

func newTestRouter(svc service.BookingService) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "test",
	})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestGetAvailability(t *testing.T) {
	svc := &mockBookingService{
		getAvailabilityFunc: func(_ context.Context) (*model.Listing, error) {
			return &model.Listing{Dates: map[string][]model.Slot{
				"2026-09-15": {{ID: 5, Date: "2026-09-15", Label: "10am-12pm", Capacity: 3, Taken: 1, Available: 2}},
			}}, nil
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp availabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.OK {
		t.Error("ok should be true")
	}
	if len(resp.Dates["2026-09-15"]) != 1 {
		t.Errorf("unexpected dates: %+v", resp.Dates)
	}
}

func TestGetBookingsWithPhone(t *testing.T) {
	var gotPhone string
	svc := &mockBookingService{
		getBookingsFunc: func(_ context.Context, phone string) ([]model.Signup, error) {
			gotPhone = phone
			return []model.Signup{{RowID: 2, Phone: "+15551234567", Status: model.StatusActive}}, nil
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?phone=5551234567", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotPhone != "5551234567" {
		t.Errorf("raw phone should be passed through, got %q", gotPhone)
	}

	var resp bookingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.OK || len(resp.Bookings) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestBookSuccess(t *testing.T) {
	var gotReq *model.BookingRequest
	svc := &mockBookingService{
		bookFunc: func(_ context.Context, req *model.BookingRequest) (*service.Confirmation, error) {
			gotReq = req
			return &service.Confirmation{Code: "abc-123", Slots: []string{"2026-09-15 10am-12pm", "2026-09-15 2pm-4pm"}}, nil
		},
	}

	body := `{"name":"Jane Doe","phone":"5551234567","category":"general","slotIds":[5,6]}`
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if gotReq == nil || len(gotReq.SlotIDs) != 2 {
		t.Fatalf("request not decoded: %+v", gotReq)
	}
	if !strings.Contains(rec.Body.String(), "Booked 2 slot(s)") || !strings.Contains(rec.Body.String(), "abc-123") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestBookMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&mockBookingService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBookErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.Validation("SlotIDs is required", nil), http.StatusBadRequest},
		{"slot full", apperrors.Conflict("2026-09-15 10am-12pm is fully booked"), http.StatusConflict},
		{"throttled", apperrors.RateLimited("Too many booking attempts in flight"), http.StatusTooManyRequests},
		{"store down", apperrors.Internal("Failed to save booking", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				bookFunc: func(_ context.Context, _ *model.BookingRequest) (*service.Confirmation, error) {
					return nil, tt.err
				},
			}

			body := `{"name":"Jane Doe","phone":"5551234567","category":"general","slotIds":[5]}`
			rec := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), `"ok":false`) {
				t.Errorf("error envelope missing ok:false: %s", rec.Body.String())
			}
		})
	}
}

func TestCancelSuccess(t *testing.T) {
	var gotReq *model.CancelRequest
	svc := &mockBookingService{
		cancelFunc: func(_ context.Context, req *model.CancelRequest) error {
			gotReq = req
			return nil
		},
	}

	body := `{"signupRowId":10,"slotRowId":5,"phone":"5551234567"}`
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if gotReq == nil || gotReq.SignupRowID != 10 || gotReq.SlotRowID != 5 {
		t.Fatalf("request not decoded: %+v", gotReq)
	}
	if !strings.Contains(rec.Body.String(), "Booking cancelled") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestCancelErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.NotFound("Booking"), http.StatusNotFound},
		{"wrong phone", apperrors.Forbidden("Phone number does not match this booking"), http.StatusForbidden},
		{"already cancelled", apperrors.Conflict("This booking is already cancelled"), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				cancelFunc: func(_ context.Context, _ *model.CancelRequest) error {
					return tt.err
				},
			}

			body := `{"signupRowId":10,"slotRowId":5,"phone":"5551234567"}`
			rec := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&mockBookingService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
