package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"automobile_shop/internal/adapter/http/handlers/mocks"
	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase"
	"automobile_shop/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newAppointmentRouter(t *testing.T) (*gin.Engine, *mocks.MockIAppointmentUseCase, *mocks.MockIInvoiceUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAppointmentUseCase(ctrl)
	invoices := mocks.NewMockIInvoiceUseCase(ctrl)
	h := NewAppointmentHandler(uc, invoices, nil)

	r := gin.New()
	r.POST("/v1/appointments", h.CreateAppointment)
	r.GET("/v1/appointments", h.ListAppointments)
	r.GET("/v1/appointments/:appointment_id", h.GetAppointment)
	r.PATCH("/v1/appointments/:appointment_id/status", h.PatchStatus)
	r.PATCH("/v1/appointments/:appointment_id/schedule", h.PatchSchedule)
	r.PUT("/v1/appointments/:appointment_id/invoice", h.PutInvoice)
	return r, uc, invoices
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAppointmentHandler_CreateAppointment(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		r, _, _ := newAppointmentRouter(t)
		w := serve(r, http.MethodPost, "/v1/appointments", `{"customer_id":"c1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		uc.EXPECT().Create(gomock.Any(), usecase.CreateAppointmentInput{
			CustomerID:  "c1",
			VehicleID:   "v1",
			ServiceIDs:  []string{"oil"},
			ScheduledAt: at,
		}).Return(entities.Appointment{ID: "a1", CustomerID: "c1", VehicleID: "v1", ServiceIDs: []string{"oil"}, ScheduledAt: at, Status: entities.AppointmentStatusBooked}, nil)

		w := serve(r, http.MethodPost, "/v1/appointments",
			`{"customer_id":"c1","vehicle_id":"v1","service_ids":["oil"],"scheduled_at":"2026-03-01T09:00:00Z"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["appointment_id"] != "a1" || body["status"] != "BOOKED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("usecase validation error", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Appointment{}, usecase.ErrInvalidAppointmentInput)

		w := serve(r, http.MethodPost, "/v1/appointments",
			`{"customer_id":" ","vehicle_id":"v1","service_ids":["oil"],"scheduled_at":"2026-03-01T09:00:00Z"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestAppointmentHandler_GetAppointment(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Appointment{}, entities.ErrAppointmentNotFound)

		w := serve(r, http.MethodGet, "/v1/appointments/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["code"] != "APPOINTMENT_NOT_FOUND" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusOngoing}, nil)

		w := serve(r, http.MethodGet, "/v1/appointments/a1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestAppointmentHandler_ListAppointments(t *testing.T) {
	t.Run("unknown status filter", func(t *testing.T) {
		r, _, _ := newAppointmentRouter(t)
		w := serve(r, http.MethodGet, "/v1/appointments?status=PAID", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("filters are forwarded", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().List(gomock.Any(), interfaces.AppointmentFilter{
			CustomerID: "c1",
			Status:     entities.AppointmentStatusBooked,
		}).Return([]entities.Appointment{{ID: "a1"}, {ID: "a2"}}, nil)

		w := serve(r, http.MethodGet, "/v1/appointments?customer_id=c1&status=booked", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("service and schedule window", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f interfaces.AppointmentFilter) ([]entities.Appointment, error) {
			from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
			if f.ServiceID != "brakes" || !f.ScheduledFrom.Equal(from) || !f.ScheduledTo.Equal(from.AddDate(0, 0, 7)) {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return nil, nil
		})

		w := serve(r, http.MethodGet, "/v1/appointments?service_id=brakes&scheduled_from=2026-04-01T00:00:00Z&scheduled_to=2026-04-08T00:00:00Z", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("malformed schedule window", func(t *testing.T) {
		r, _, _ := newAppointmentRouter(t)
		w := serve(r, http.MethodGet, "/v1/appointments?scheduled_from=yesterday", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestAppointmentHandler_PatchStatus(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		r, _, _ := newAppointmentRouter(t)
		w := serve(r, http.MethodPatch, "/v1/appointments/a1/status", `{"status":"PAID"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().Transition(gomock.Any(), "a1", entities.AppointmentStatusBooked).
			Return(entities.Appointment{}, nil, &entities.InvalidTransitionError{From: entities.AppointmentStatusCompleted, To: entities.AppointmentStatusBooked})

		w := serve(r, http.MethodPatch, "/v1/appointments/a1/status", `{"status":"BOOKED"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["code"] != "INVALID_TRANSITION" || body["details"] != "COMPLETED -> BOOKED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("completed carries invoice", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		inv := entities.NewInvoice("inv-1", "a1", time.Now())
		uc.EXPECT().Transition(gomock.Any(), "a1", entities.AppointmentStatusCompleted).
			Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusCompleted}, &inv, nil)

		w := serve(r, http.MethodPatch, "/v1/appointments/a1/status", `{"status":"COMPLETED"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		invoice, ok := body["invoice"].(map[string]any)
		if !ok || invoice["invoice_id"] != "inv-1" {
			t.Fatalf("expected invoice in body: %s", w.Body.String())
		}
	})

	t.Run("ongoing has no invoice", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().Transition(gomock.Any(), "a1", entities.AppointmentStatusOngoing).
			Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusOngoing}, nil, nil)

		w := serve(r, http.MethodPatch, "/v1/appointments/a1/status", `{"status":"ONGOING"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if _, ok := decodeBody(t, w)["invoice"]; ok {
			t.Fatalf("unexpected invoice in body: %s", w.Body.String())
		}
	})
}

func TestAppointmentHandler_PatchSchedule(t *testing.T) {
	at := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().Reschedule(gomock.Any(), "a1", at).Return(entities.Appointment{ID: "a1", ScheduledAt: at}, nil)

		w := serve(r, http.MethodPatch, "/v1/appointments/a1/schedule", `{"scheduled_at":"2026-04-02T10:30:00Z"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("closed appointment", func(t *testing.T) {
		r, uc, _ := newAppointmentRouter(t)
		uc.EXPECT().Reschedule(gomock.Any(), "a1", at).
			Return(entities.Appointment{}, &entities.AppointmentClosedError{Status: entities.AppointmentStatusCancelled})

		w := serve(r, http.MethodPatch, "/v1/appointments/a1/schedule", `{"scheduled_at":"2026-04-02T10:30:00Z"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["code"] != "APPOINTMENT_CLOSED" || body["details"] != "CANCELLED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestAppointmentHandler_PutInvoice(t *testing.T) {
	t.Run("unknown appointment", func(t *testing.T) {
		r, _, invoices := newAppointmentRouter(t)
		invoices.EXPECT().GetOrCreateInvoice(gomock.Any(), "missing").Return(entities.Invoice{}, entities.ErrAppointmentNotFound)

		w := serve(r, http.MethodPut, "/v1/appointments/missing/invoice", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, _, invoices := newAppointmentRouter(t)
		invoices.EXPECT().GetOrCreateInvoice(gomock.Any(), "a1").Return(entities.NewInvoice("inv-1", "a1", time.Now()), nil)

		w := serve(r, http.MethodPut, "/v1/appointments/a1/invoice", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestMapAppointmentError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{&entities.InvalidTransitionError{From: entities.AppointmentStatusBooked, To: entities.AppointmentStatusBooked}, http.StatusConflict},
		{entities.ErrInvalidTransition, http.StatusConflict},
		{&entities.AppointmentClosedError{Status: entities.AppointmentStatusCompleted}, http.StatusConflict},
		{entities.ErrDuplicateInvoice, http.StatusConflict},
		{entities.ErrAppointmentNotFound, http.StatusNotFound},
		{usecase.ErrInvalidAppointmentID, http.StatusBadRequest},
		{usecase.ErrInvalidAppointmentInput, http.StatusBadRequest},
		{usecase.ErrInvalidStatus, http.StatusBadRequest},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapAppointmentError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
