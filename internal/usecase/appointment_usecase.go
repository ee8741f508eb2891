package usecase

import (
	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidAppointmentID    = errors.New("invalid appointment id")
	ErrInvalidAppointmentInput = errors.New("invalid appointment input")
	ErrInvalidStatus           = errors.New("invalid appointment status")
)

// CreateAppointmentInput is the command accepted by Create.
type CreateAppointmentInput struct {
	CustomerID  string
	VehicleID   string
	ServiceIDs  []string
	ScheduledAt time.Time
}

// IAppointmentUseCase is the lifecycle coordinator for appointments.
//
// Transition binds the status machine to invoice provisioning: entering
// COMPLETED guarantees an invoice exists for the appointment.

type IAppointmentUseCase interface {
	Create(ctx context.Context, in CreateAppointmentInput) (entities.Appointment, error)
	GetByID(ctx context.Context, id string) (entities.Appointment, error)
	List(ctx context.Context, filter interfaces.AppointmentFilter) ([]entities.Appointment, error)
	Reschedule(ctx context.Context, id string, scheduledAt time.Time) (entities.Appointment, error)
	Transition(ctx context.Context, id string, to entities.AppointmentStatus) (entities.Appointment, *entities.Invoice, error)
}

type AppointmentUseCase struct {
	repo     interfaces.IAppointmentRepository
	invoices interfaces.IInvoiceRepository
	recorder interfaces.IRecorder
	log      *zap.Logger
	now      func() time.Time
}

var _ IAppointmentUseCase = (*AppointmentUseCase)(nil)

func NewAppointmentUseCase(repo interfaces.IAppointmentRepository, invoices interfaces.IInvoiceRepository, recorder interfaces.IRecorder, log *zap.Logger) *AppointmentUseCase {
	if recorder == nil {
		recorder = interfaces.NopRecorder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AppointmentUseCase{
		repo:     repo,
		invoices: invoices,
		recorder: recorder,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *AppointmentUseCase) Create(ctx context.Context, in CreateAppointmentInput) (entities.Appointment, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	vehicleID := strings.TrimSpace(in.VehicleID)
	serviceIDs := entities.NormalizeIDs(in.ServiceIDs)
	if customerID == "" || vehicleID == "" || len(serviceIDs) == 0 || in.ScheduledAt.IsZero() {
		return entities.Appointment{}, ErrInvalidAppointmentInput
	}

	now := u.now()
	a := entities.Appointment{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		ServiceIDs:  serviceIDs,
		ScheduledAt: in.ScheduledAt.UTC(),
		Status:      entities.AppointmentStatusBooked,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := u.repo.Create(ctx, a)
	if err != nil {
		return entities.Appointment{}, err
	}
	u.log.Info("[appointment][usecase] create success",
		zap.String("appointment_id", created.ID),
		zap.String("customer_id", created.CustomerID),
		zap.Int("services", len(created.ServiceIDs)),
	)
	return created, nil
}

func (u *AppointmentUseCase) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}

	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if a.ID == "" {
		return entities.Appointment{}, entities.ErrAppointmentNotFound
	}
	return a, nil
}

func (u *AppointmentUseCase) List(ctx context.Context, filter interfaces.AppointmentFilter) ([]entities.Appointment, error) {
	filter.CustomerID = strings.TrimSpace(filter.CustomerID)
	filter.VehicleID = strings.TrimSpace(filter.VehicleID)
	filter.ServiceID = strings.TrimSpace(filter.ServiceID)
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if !filter.ScheduledFrom.IsZero() && !filter.ScheduledTo.IsZero() && !filter.ScheduledFrom.Before(filter.ScheduledTo) {
		return nil, ErrInvalidAppointmentInput
	}
	return u.repo.List(ctx, filter)
}

// Reschedule moves ScheduledAt while the appointment is not terminal.
func (u *AppointmentUseCase) Reschedule(ctx context.Context, id string, scheduledAt time.Time) (entities.Appointment, error) {
	if scheduledAt.IsZero() {
		return entities.Appointment{}, ErrInvalidAppointmentInput
	}
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if !current.CanReschedule() {
		return entities.Appointment{}, &entities.AppointmentClosedError{Status: current.Status}
	}

	updated, err := u.repo.UpdateScheduledAt(ctx, current.ID, current.Status, scheduledAt.UTC())
	if errors.Is(err, interfaces.ErrConditionFailed) {
		latest, lerr := u.GetByID(ctx, current.ID)
		if lerr != nil {
			return entities.Appointment{}, lerr
		}
		if !latest.CanReschedule() {
			return entities.Appointment{}, &entities.AppointmentClosedError{Status: latest.Status}
		}
		return entities.Appointment{}, &entities.InvalidTransitionError{From: latest.Status, To: current.Status}
	}
	if err != nil {
		return entities.Appointment{}, err
	}
	return updated, nil
}

// Transition applies one status change.
//
// The status is re-read right before validating and written conditionally on the
// read value, so an interleaved request fails with InvalidTransition instead of
// overwriting. Entering COMPLETED provisions the invoice before the status write,
// so a COMPLETED appointment never exists without one. An invoice created by this
// call is discarded again when the status write fails.
func (u *AppointmentUseCase) Transition(ctx context.Context, id string, to entities.AppointmentStatus) (entities.Appointment, *entities.Invoice, error) {
	if !to.IsValid() {
		return entities.Appointment{}, nil, ErrInvalidStatus
	}
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Appointment{}, nil, err
	}
	from := current.Status

	if err := entities.ValidateTransition(from, to); err != nil {
		u.recorder.ObserveTransition(string(from), string(to), "rejected")
		u.log.Warn("[appointment][usecase] transition rejected",
			zap.String("appointment_id", current.ID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return entities.Appointment{}, nil, err
	}

	var (
		invoice *entities.Invoice
		created bool
	)
	if to == entities.AppointmentStatusCompleted {
		inv, ok, err := provisionInvoice(ctx, u.invoices, current.ID, u.now())
		if err != nil {
			u.recorder.ObserveTransition(string(from), string(to), "error")
			return entities.Appointment{}, nil, fmt.Errorf("provision invoice: %w", err)
		}
		u.recorder.ObserveInvoiceProvisioned(ok)
		invoice, created = &inv, ok
	}

	updated, err := u.repo.UpdateStatus(ctx, current.ID, from, to)
	if err != nil && created {
		u.rollbackInvoice(ctx, *invoice)
	}
	if errors.Is(err, interfaces.ErrConditionFailed) {
		u.recorder.ObserveTransition(string(from), string(to), "conflict")
		return entities.Appointment{}, nil, u.staleTransition(ctx, current.ID, to)
	}
	if err != nil {
		u.recorder.ObserveTransition(string(from), string(to), "error")
		return entities.Appointment{}, nil, err
	}

	u.recorder.ObserveTransition(string(from), string(to), "ok")
	u.log.Info("[appointment][usecase] transition success",
		zap.String("appointment_id", updated.ID),
		zap.String("from", string(from)),
		zap.String("to", string(updated.Status)),
		zap.Bool("invoice_attached", invoice != nil),
	)
	return updated, invoice, nil
}

// rollbackInvoice removes an invoice provisioned for a status write that did not land.
// The invoice is still empty, so the version guard of Delete holds unless someone
// already edited it; in that case it is kept and logged.
func (u *AppointmentUseCase) rollbackInvoice(ctx context.Context, inv entities.Invoice) {
	if err := u.invoices.Delete(ctx, inv); err != nil {
		u.log.Warn("[appointment][usecase] invoice rollback failed",
			zap.String("appointment_id", inv.AppointmentID),
			zap.String("invoice_id", inv.ID),
			zap.Error(err),
		)
	}
}

// staleTransition reports the status that won a concurrent update.
func (u *AppointmentUseCase) staleTransition(ctx context.Context, id string, requested entities.AppointmentStatus) error {
	latest, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if latest.ID == "" {
		return entities.ErrAppointmentNotFound
	}
	return &entities.InvalidTransitionError{From: latest.Status, To: requested}
}
