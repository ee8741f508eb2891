package usecase

import (
	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvalidInvoiceID      = errors.New("invalid invoice id")
	ErrInvalidPartID         = errors.New("invalid part id")
	ErrRendererNotConfigured = errors.New("invoice renderer not configured")
)

const (
	defaultPartUpdateAttempts = 5
	partLockBackoff           = 20 * time.Millisecond
)

// IInvoiceUseCase exposes the invoice aggregator operations.
//
// Part operations keep the used-part line and the inventory ledger consistent:
// both change or neither does.

type IInvoiceUseCase interface {
	GetOrCreateInvoice(ctx context.Context, appointmentID string) (entities.Invoice, error)
	CreateInvoice(ctx context.Context, appointmentID string) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByAppointmentID(ctx context.Context, appointmentID string) (entities.Invoice, error)
	AddOrIncrementPart(ctx context.Context, invoiceID, partID string, count int) (entities.Invoice, error)
	SetPartCount(ctx context.Context, invoiceID, partID string, count int) (entities.Invoice, error)
	RemovePart(ctx context.Context, invoiceID, partID string) (entities.Invoice, error)
	ListInvoices(ctx context.Context, filter interfaces.InvoiceFilter) ([]entities.Invoice, error)
	SetLabourCost(ctx context.Context, invoiceID string, amount decimal.Decimal) (entities.Invoice, error)
	SetTaxPercentage(ctx context.Context, invoiceID string, pct decimal.Decimal) (entities.Invoice, error)
	SetCharges(ctx context.Context, invoiceID string, charges interfaces.ChargesUpdate) (entities.Invoice, error)
	SetMechanics(ctx context.Context, invoiceID string, mechanicIDs []string) (entities.Invoice, error)
	ComputeTotals(ctx context.Context, invoiceID string) (entities.InvoiceTotals, error)
	FinalizeForPrint(ctx context.Context, invoiceID string) (entities.PrintableInvoice, error)
	RenderPDF(ctx context.Context, invoiceID string) ([]byte, error)
	Discard(ctx context.Context, invoiceID string) error
}

// InvoiceDependencies groups the collaborators of InvoiceUseCase.
// Locker, Renderer, Recorder and Log are optional.
type InvoiceDependencies struct {
	Invoices     interfaces.IInvoiceRepository
	Appointments interfaces.IAppointmentRepository
	Ledger       interfaces.IInventoryLedger
	Catalog      interfaces.ICatalog
	Locker       interfaces.ILocker
	Renderer     interfaces.IInvoiceRenderer
	Recorder     interfaces.IRecorder
	Log          *zap.Logger
	// Attempts bounds the compare-and-set loop of part operations.
	Attempts int
}

type InvoiceUseCase struct {
	invoices     interfaces.IInvoiceRepository
	appointments interfaces.IAppointmentRepository
	ledger       interfaces.IInventoryLedger
	catalog      interfaces.ICatalog
	locker       interfaces.ILocker
	renderer     interfaces.IInvoiceRenderer
	recorder     interfaces.IRecorder
	log          *zap.Logger
	attempts     int
	now          func() time.Time
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(deps InvoiceDependencies) *InvoiceUseCase {
	u := &InvoiceUseCase{
		invoices:     deps.Invoices,
		appointments: deps.Appointments,
		ledger:       deps.Ledger,
		catalog:      deps.Catalog,
		locker:       deps.Locker,
		renderer:     deps.Renderer,
		recorder:     deps.Recorder,
		log:          deps.Log,
		attempts:     deps.Attempts,
		now:          func() time.Time { return time.Now().UTC() },
	}
	if u.recorder == nil {
		u.recorder = interfaces.NopRecorder{}
	}
	if u.log == nil {
		u.log = zap.NewNop()
	}
	if u.attempts <= 0 {
		u.attempts = defaultPartUpdateAttempts
	}
	return u
}

// GetOrCreateInvoice is idempotent: repeated calls return the same invoice id.
func (u *InvoiceUseCase) GetOrCreateInvoice(ctx context.Context, appointmentID string) (entities.Invoice, error) {
	appointment, err := u.loadAppointment(ctx, appointmentID)
	if err != nil {
		return entities.Invoice{}, err
	}

	inv, created, err := provisionInvoice(ctx, u.invoices, appointment.ID, u.now())
	if err != nil {
		return entities.Invoice{}, err
	}
	u.recorder.ObserveInvoiceProvisioned(created)
	u.log.Info("[invoice][usecase] get-or-create success",
		zap.String("appointment_id", appointment.ID),
		zap.String("invoice_id", inv.ID),
		zap.Bool("created", created),
	)
	return inv, nil
}

// CreateInvoice is the strict variant: an existing invoice is a conflict.
func (u *InvoiceUseCase) CreateInvoice(ctx context.Context, appointmentID string) (entities.Invoice, error) {
	appointment, err := u.loadAppointment(ctx, appointmentID)
	if err != nil {
		return entities.Invoice{}, err
	}

	inv, created, err := provisionInvoice(ctx, u.invoices, appointment.ID, u.now())
	if err != nil {
		return entities.Invoice{}, err
	}
	if !created {
		return entities.Invoice{}, entities.ErrDuplicateInvoice
	}
	u.recorder.ObserveInvoiceProvisioned(true)
	return inv, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	inv, err := u.invoices.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) GetByAppointmentID(ctx context.Context, appointmentID string) (entities.Invoice, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return entities.Invoice{}, ErrInvalidAppointmentID
	}

	inv, err := u.invoices.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

// ListInvoices returns the invoices of the appointments matching filter, in
// appointment schedule order. Appointments without an invoice are skipped.
func (u *InvoiceUseCase) ListInvoices(ctx context.Context, filter interfaces.InvoiceFilter) ([]entities.Invoice, error) {
	appointments, err := u.appointments.List(ctx, interfaces.AppointmentFilter{
		CustomerID: strings.TrimSpace(filter.CustomerID),
		VehicleID:  strings.TrimSpace(filter.VehicleID),
	})
	if err != nil {
		return nil, err
	}

	out := make([]entities.Invoice, 0, len(appointments))
	for _, a := range appointments {
		inv, err := u.invoices.GetByAppointmentID(ctx, a.ID)
		if err != nil {
			return nil, fmt.Errorf("invoice for appointment %s: %w", a.ID, err)
		}
		if inv.ID == "" {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

// AddOrIncrementPart records count more units of partID and takes them from inventory.
func (u *InvoiceUseCase) AddOrIncrementPart(ctx context.Context, invoiceID, partID string, count int) (entities.Invoice, error) {
	if count <= 0 {
		return entities.Invoice{}, entities.ErrInvalidAmount
	}
	return u.changePart(ctx, "add", invoiceID, partID, func(current int) int {
		return current + count
	})
}

// SetPartCount sets an absolute count; the difference moves inventory. Zero removes the line.
func (u *InvoiceUseCase) SetPartCount(ctx context.Context, invoiceID, partID string, count int) (entities.Invoice, error) {
	if count < 0 {
		return entities.Invoice{}, entities.ErrInvalidAmount
	}
	return u.changePart(ctx, "set", invoiceID, partID, func(int) int {
		return count
	})
}

// RemovePart deletes the line and restores its full count. Absent lines are a no-op.
func (u *InvoiceUseCase) RemovePart(ctx context.Context, invoiceID, partID string) (entities.Invoice, error) {
	return u.changePart(ctx, "remove", invoiceID, partID, func(int) int {
		return 0
	})
}

// changePart runs a compare-and-set loop under the per-part lock: read the line,
// check stock for growth, then apply the change conditionally on the read count.
// Exhausted retries surface as ErrInsufficientStock.
func (u *InvoiceUseCase) changePart(ctx context.Context, op, invoiceID, partID string, next func(current int) int) (entities.Invoice, error) {
	partID = strings.TrimSpace(partID)
	if partID == "" {
		return entities.Invoice{}, ErrInvalidPartID
	}
	inv, err := u.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}

	var result entities.Invoice
	err = u.withPartLock(ctx, partID, func(ctx context.Context) error {
		for attempt := 0; attempt < u.attempts; attempt++ {
			current, err := u.invoices.GetByAppointmentID(ctx, inv.AppointmentID)
			if err != nil {
				return err
			}
			if current.ID == "" {
				return ErrInvoiceNotFound
			}

			change := interfaces.PartChange{
				PartID:        partID,
				ExpectedCount: current.PartCount(partID),
			}
			change.NewCount = next(change.ExpectedCount)
			if change.Delta() == 0 {
				result = current
				return nil
			}
			if change.Delta() > 0 {
				available, err := u.ledger.QuantityAvailable(ctx, partID)
				if err != nil {
					return lookupError("inventory part", partID, err)
				}
				if available < change.Delta() {
					return fmt.Errorf("%w: part %s has %d available, %d requested", entities.ErrInsufficientStock, partID, available, change.Delta())
				}
			}

			updated, err := u.invoices.ApplyPartChange(ctx, current.AppointmentID, change)
			if errors.Is(err, interfaces.ErrConditionFailed) {
				u.log.Warn("[invoice][usecase] part change lost a race; retrying",
					zap.String("invoice_id", current.ID),
					zap.String("part_id", partID),
					zap.Int("attempt", attempt+1),
				)
				continue
			}
			if err != nil {
				return err
			}
			result = updated
			return nil
		}
		return fmt.Errorf("%w: part %s changed concurrently %d times", entities.ErrInsufficientStock, partID, u.attempts)
	})
	if err != nil {
		u.recorder.ObservePartOperation(op, errorResult(err))
		return entities.Invoice{}, err
	}

	u.recorder.ObservePartOperation(op, "ok")
	u.log.Info("[invoice][usecase] part "+op+" success",
		zap.String("invoice_id", result.ID),
		zap.String("part_id", partID),
		zap.Int("count", result.PartCount(partID)),
	)
	return result, nil
}

// withPartLock serializes check-then-decrement per part. Non-blocking lockers are
// retried with a linear backoff.
func (u *InvoiceUseCase) withPartLock(ctx context.Context, partID string, fn func(ctx context.Context) error) error {
	if u.locker == nil {
		return fn(ctx)
	}
	key := "inventory:part:" + partID
	for attempt := 1; ; attempt++ {
		err := u.locker.WithLock(ctx, key, fn)
		if !errors.Is(err, interfaces.ErrLockNotAcquired) {
			return err
		}
		if attempt >= u.attempts {
			return fmt.Errorf("%w: part %s is locked by another update", entities.ErrInsufficientStock, partID)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * partLockBackoff):
		}
	}
}

func (u *InvoiceUseCase) SetLabourCost(ctx context.Context, invoiceID string, amount decimal.Decimal) (entities.Invoice, error) {
	return u.SetCharges(ctx, invoiceID, interfaces.ChargesUpdate{LabourCost: &amount})
}

func (u *InvoiceUseCase) SetTaxPercentage(ctx context.Context, invoiceID string, pct decimal.Decimal) (entities.Invoice, error) {
	return u.SetCharges(ctx, invoiceID, interfaces.ChargesUpdate{TaxPercentage: &pct})
}

// SetCharges validates every set amount before writing any of them, then stores
// them in one update. An empty update returns the invoice unchanged.
func (u *InvoiceUseCase) SetCharges(ctx context.Context, invoiceID string, charges interfaces.ChargesUpdate) (entities.Invoice, error) {
	for _, amount := range []*decimal.Decimal{charges.LabourCost, charges.TaxPercentage} {
		if amount == nil {
			continue
		}
		if err := entities.ValidateAmount(*amount); err != nil {
			return entities.Invoice{}, err
		}
	}
	inv, err := u.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if charges.IsEmpty() {
		return inv, nil
	}
	return u.checkUpdated(u.invoices.UpdateCharges(ctx, inv.AppointmentID, charges))
}

// SetMechanics replaces the mechanic set wholesale.
func (u *InvoiceUseCase) SetMechanics(ctx context.Context, invoiceID string, mechanicIDs []string) (entities.Invoice, error) {
	inv, err := u.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	return u.checkUpdated(u.invoices.UpdateMechanics(ctx, inv.AppointmentID, entities.NormalizeMechanics(mechanicIDs)))
}

func (u *InvoiceUseCase) checkUpdated(inv entities.Invoice, err error) (entities.Invoice, error) {
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) ComputeTotals(ctx context.Context, invoiceID string) (entities.InvoiceTotals, error) {
	inv, err := u.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.InvoiceTotals{}, err
	}
	return u.totals(ctx, inv)
}

func (u *InvoiceUseCase) totals(ctx context.Context, inv entities.Invoice) (entities.InvoiceTotals, error) {
	return inv.ComputeTotals(func(partID string) (decimal.Decimal, error) {
		price, err := u.catalog.UnitPrice(ctx, partID)
		if err != nil {
			return decimal.Zero, lookupError("part", partID, err)
		}
		return price, nil
	})
}

// FinalizeForPrint builds the read-only snapshot with totals and resolved names.
func (u *InvoiceUseCase) FinalizeForPrint(ctx context.Context, invoiceID string) (entities.PrintableInvoice, error) {
	inv, err := u.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.PrintableInvoice{}, err
	}
	appointment, err := u.loadAppointment(ctx, inv.AppointmentID)
	if err != nil {
		return entities.PrintableInvoice{}, err
	}
	totals, err := u.totals(ctx, inv)
	if err != nil {
		return entities.PrintableInvoice{}, err
	}

	out := entities.PrintableInvoice{
		InvoiceID:     inv.ID,
		AppointmentID: inv.AppointmentID,
		CustomerID:    appointment.CustomerID,
		VehicleID:     appointment.VehicleID,
		ScheduledAt:   appointment.ScheduledAt,
		Lines:         make([]entities.PrintableLine, 0, len(totals.Lines)),
		Mechanics:     make([]entities.PrintableMechanic, 0, len(inv.Mechanics)),
		PartsTotal:    totals.PartsTotal,
		LabourCost:    totals.LabourCost,
		Subtotal:      totals.Subtotal,
		TaxPercentage: totals.TaxPercentage,
		Tax:           totals.Tax,
		GrandTotal:    totals.GrandTotal,
		FinalizedAt:   u.now(),
	}
	for _, line := range totals.Lines {
		name, err := u.catalog.PartName(ctx, line.PartID)
		if err != nil {
			return entities.PrintableInvoice{}, lookupError("part", line.PartID, err)
		}
		out.Lines = append(out.Lines, entities.PrintableLine{
			PartID:    line.PartID,
			Name:      name,
			Count:     line.Count,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		})
	}
	for _, mechanicID := range inv.Mechanics {
		name, err := u.catalog.MechanicName(ctx, mechanicID)
		if err != nil {
			return entities.PrintableInvoice{}, lookupError("mechanic", mechanicID, err)
		}
		out.Mechanics = append(out.Mechanics, entities.PrintableMechanic{MechanicID: mechanicID, Name: name})
	}
	return out, nil
}

func (u *InvoiceUseCase) RenderPDF(ctx context.Context, invoiceID string) ([]byte, error) {
	if u.renderer == nil {
		return nil, ErrRendererNotConfigured
	}
	snapshot, err := u.FinalizeForPrint(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return u.renderer.RenderPDF(ctx, snapshot)
}

// Discard deletes the invoice and returns every used part to inventory.
func (u *InvoiceUseCase) Discard(ctx context.Context, invoiceID string) error {
	inv, err := u.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < u.attempts; attempt++ {
		current, err := u.invoices.GetByAppointmentID(ctx, inv.AppointmentID)
		if err != nil {
			return err
		}
		if current.ID == "" {
			return ErrInvoiceNotFound
		}
		err = u.invoices.Delete(ctx, current)
		if errors.Is(err, interfaces.ErrConditionFailed) {
			continue
		}
		if err != nil {
			return err
		}
		u.recorder.ObservePartOperation("discard", "ok")
		u.log.Info("[invoice][usecase] discard success",
			zap.String("invoice_id", current.ID),
			zap.Int("restored_lines", len(current.UsedParts)),
		)
		return nil
	}
	u.recorder.ObservePartOperation("discard", "conflict")
	return fmt.Errorf("discard invoice %s: %w", inv.ID, interfaces.ErrConditionFailed)
}

func (u *InvoiceUseCase) loadAppointment(ctx context.Context, appointmentID string) (entities.Appointment, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}
	a, err := u.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return entities.Appointment{}, err
	}
	if a.ID == "" {
		return entities.Appointment{}, entities.ErrAppointmentNotFound
	}
	return a, nil
}

// lookupError surfaces a missing catalog/ledger entry as ErrCatalogLookupFailed.
func lookupError(kind, id string, err error) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", entities.ErrCatalogLookupFailed, kind, id)
	}
	return err
}

func errorResult(err error) string {
	switch {
	case errors.Is(err, entities.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, entities.ErrCatalogLookupFailed):
		return "catalog_lookup_failed"
	case errors.Is(err, ErrInvoiceNotFound):
		return "not_found"
	default:
		return "error"
	}
}
