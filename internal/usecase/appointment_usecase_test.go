package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
	mock_interfaces "automobile_shop/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestAppointmentUseCase_Create(t *testing.T) {
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	t.Run("invalid input", func(t *testing.T) {
		uc := NewAppointmentUseCase(nil, nil, nil, nil)
		cases := []CreateAppointmentInput{
			{VehicleID: "v1", ServiceIDs: []string{"s1"}, ScheduledAt: at},
			{CustomerID: "c1", ServiceIDs: []string{"s1"}, ScheduledAt: at},
			{CustomerID: "c1", VehicleID: "v1", ServiceIDs: []string{" "}, ScheduledAt: at},
			{CustomerID: "c1", VehicleID: "v1", ServiceIDs: []string{"s1"}},
		}
		for _, in := range cases {
			if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidAppointmentInput) {
				t.Fatalf("expected ErrInvalidAppointmentInput for %+v, got %v", in, err)
			}
		}
	})

	t.Run("starts booked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a entities.Appointment) (entities.Appointment, error) {
			return a, nil
		})

		a, err := uc.Create(context.Background(), CreateAppointmentInput{
			CustomerID:  " c1 ",
			VehicleID:   "v1",
			ServiceIDs:  []string{"s2", "s1", "s2"},
			ScheduledAt: at,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.ID == "" || a.Status != entities.AppointmentStatusBooked || a.CustomerID != "c1" {
			t.Fatalf("unexpected appointment: %+v", a)
		}
		if len(a.ServiceIDs) != 2 || a.ServiceIDs[0] != "s2" {
			t.Fatalf("expected deduplicated services in order, got %v", a.ServiceIDs)
		}
	})
}

func TestAppointmentUseCase_GetByID(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		uc := NewAppointmentUseCase(nil, nil, nil, nil)
		if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidAppointmentID) {
			t.Fatalf("expected ErrInvalidAppointmentID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{}, nil)
		if _, err := uc.GetByID(context.Background(), "a1"); !errors.Is(err, entities.ErrAppointmentNotFound) {
			t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
		}
	})
}

func TestAppointmentUseCase_Transition(t *testing.T) {
	t.Run("rejected transition leaves status unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusBooked}, nil)

		_, _, err := uc.Transition(context.Background(), "a1", entities.AppointmentStatusCompleted)
		var te *entities.InvalidTransitionError
		if !errors.As(err, &te) || te.From != entities.AppointmentStatusBooked || te.To != entities.AppointmentStatusCompleted {
			t.Fatalf("expected InvalidTransitionError BOOKED->COMPLETED, got %v", err)
		}
	})

	t.Run("same status is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusOngoing}, nil)

		if _, _, err := uc.Transition(context.Background(), "a1", entities.AppointmentStatusOngoing); !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		uc := NewAppointmentUseCase(nil, nil, nil, nil)
		if _, _, err := uc.Transition(context.Background(), "a1", "PAUSED"); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("completing provisions the invoice first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewAppointmentUseCase(repo, invoices, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusOngoing}, nil)
		gomock.InOrder(
			invoices.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv entities.Invoice) (entities.Invoice, bool, error) {
				return inv, true, nil
			}),
			repo.EXPECT().UpdateStatus(gomock.Any(), "a1", entities.AppointmentStatusOngoing, entities.AppointmentStatusCompleted).
				Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusCompleted}, nil),
		)

		a, inv, err := uc.Transition(context.Background(), "a1", entities.AppointmentStatusCompleted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Status != entities.AppointmentStatusCompleted {
			t.Fatalf("expected COMPLETED, got %s", a.Status)
		}
		if inv == nil || inv.AppointmentID != "a1" || inv.ID == "" {
			t.Fatalf("expected provisioned invoice, got %+v", inv)
		}
	})

	t.Run("provisioning failure keeps status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewAppointmentUseCase(repo, invoices, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusOngoing}, nil)
		invoices.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(entities.Invoice{}, false, errors.New("db"))

		if _, _, err := uc.Transition(context.Background(), "a1", entities.AppointmentStatusCompleted); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("lost race reports the winning status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusBooked}, nil),
			repo.EXPECT().UpdateStatus(gomock.Any(), "a1", entities.AppointmentStatusBooked, entities.AppointmentStatusOngoing).
				Return(entities.Appointment{}, interfaces.ErrConditionFailed),
			repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusCancelled}, nil),
		)

		_, _, err := uc.Transition(context.Background(), "a1", entities.AppointmentStatusOngoing)
		var te *entities.InvalidTransitionError
		if !errors.As(err, &te) || te.From != entities.AppointmentStatusCancelled {
			t.Fatalf("expected InvalidTransitionError from CANCELLED, got %v", err)
		}
	})

	t.Run("lost race discards the invoice it provisioned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewAppointmentUseCase(repo, invoices, nil, nil)

		var provisioned entities.Invoice
		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusOngoing}, nil),
			invoices.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv entities.Invoice) (entities.Invoice, bool, error) {
				provisioned = inv
				return inv, true, nil
			}),
			repo.EXPECT().UpdateStatus(gomock.Any(), "a1", entities.AppointmentStatusOngoing, entities.AppointmentStatusCompleted).
				Return(entities.Appointment{}, interfaces.ErrConditionFailed),
			invoices.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv entities.Invoice) error {
				if inv.ID != provisioned.ID {
					t.Fatalf("expected rollback of %s, got %s", provisioned.ID, inv.ID)
				}
				return nil
			}),
			repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusCancelled}, nil),
		)

		_, inv, err := uc.Transition(context.Background(), "a1", entities.AppointmentStatusCompleted)
		if !errors.Is(err, entities.ErrInvalidTransition) || inv != nil {
			t.Fatalf("expected ErrInvalidTransition without invoice, got %+v, %v", inv, err)
		}
	})

	t.Run("lost race keeps an invoice it did not create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewAppointmentUseCase(repo, invoices, nil, nil)

		existing := entities.Invoice{ID: "i1", AppointmentID: "a1"}
		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusOngoing}, nil),
			invoices.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(existing, false, nil),
			repo.EXPECT().UpdateStatus(gomock.Any(), "a1", entities.AppointmentStatusOngoing, entities.AppointmentStatusCompleted).
				Return(entities.Appointment{}, interfaces.ErrConditionFailed),
			repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusCompleted}, nil),
		)

		if _, _, err := uc.Transition(context.Background(), "a1", entities.AppointmentStatusCompleted); !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestAppointmentUseCase_Reschedule(t *testing.T) {
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("terminal appointment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusCompleted}, nil)
		_, err := uc.Reschedule(context.Background(), "a1", at)
		var closed *entities.AppointmentClosedError
		if !errors.As(err, &closed) || closed.Status != entities.AppointmentStatusCompleted {
			t.Fatalf("expected AppointmentClosedError for COMPLETED, got %v", err)
		}
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected closed error to match ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("closed while rescheduling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusBooked}, nil),
			repo.EXPECT().UpdateScheduledAt(gomock.Any(), "a1", entities.AppointmentStatusBooked, at).
				Return(entities.Appointment{}, interfaces.ErrConditionFailed),
			repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusCancelled}, nil),
		)

		if _, err := uc.Reschedule(context.Background(), "a1", at); !errors.Is(err, entities.ErrAppointmentClosed) {
			t.Fatalf("expected ErrAppointmentClosed, got %v", err)
		}
	})

	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusBooked}, nil)
		repo.EXPECT().UpdateScheduledAt(gomock.Any(), "a1", entities.AppointmentStatusBooked, at).
			Return(entities.Appointment{ID: "a1", Status: entities.AppointmentStatusBooked, ScheduledAt: at}, nil)

		a, err := uc.Reschedule(context.Background(), "a1", at)
		if err != nil || !a.ScheduledAt.Equal(at) {
			t.Fatalf("unexpected result %+v, %v", a, err)
		}
	})

	t.Run("zero time", func(t *testing.T) {
		uc := NewAppointmentUseCase(nil, nil, nil, nil)
		if _, err := uc.Reschedule(context.Background(), "a1", time.Time{}); !errors.Is(err, ErrInvalidAppointmentInput) {
			t.Fatalf("expected ErrInvalidAppointmentInput, got %v", err)
		}
	})
}

func TestAppointmentUseCase_List(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("inverted window", func(t *testing.T) {
		uc := NewAppointmentUseCase(nil, nil, nil, nil)
		_, err := uc.List(context.Background(), interfaces.AppointmentFilter{ScheduledFrom: from, ScheduledTo: from})
		if !errors.Is(err, ErrInvalidAppointmentInput) {
			t.Fatalf("expected ErrInvalidAppointmentInput, got %v", err)
		}
	})

	t.Run("trimmed filter reaches the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewAppointmentUseCase(repo, nil, nil, nil)

		repo.EXPECT().List(gomock.Any(), interfaces.AppointmentFilter{ServiceID: "brakes", ScheduledFrom: from}).Return(nil, nil)
		if _, err := uc.List(context.Background(), interfaces.AppointmentFilter{ServiceID: " brakes ", ScheduledFrom: from}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
