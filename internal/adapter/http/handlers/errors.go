package handlers

import (
	"errors"
	"net/http"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase"
	"automobile_shop/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// mapEngineError maps the domain taxonomy shared by appointment and invoice routes.
// ok is false when err is not part of it.
func mapEngineError(err error) (appErr *pkg.AppError, ok bool) {
	var (
		transition *entities.InvalidTransitionError
		closed     *entities.AppointmentClosedError
	)
	switch {
	case errors.As(err, &closed):
		return pkg.NewDomainErrorSimple("APPOINTMENT_CLOSED", "Appointment is closed", http.StatusConflict).
			WithDetails(string(closed.Status)), true
	case errors.As(err, &transition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Invalid status transition", http.StatusConflict).
			WithDetails(string(transition.From) + " -> " + string(transition.To)), true
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Invalid status transition", http.StatusConflict), true
	case errors.Is(err, entities.ErrDuplicateInvoice):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_EXISTS", "Invoice already exists for this appointment", http.StatusConflict), true
	case errors.Is(err, entities.ErrInsufficientStock):
		return pkg.NewDomainErrorSimple("INSUFFICIENT_STOCK", "Insufficient stock", http.StatusConflict), true
	case errors.Is(err, entities.ErrAppointmentNotFound):
		return pkg.NewDomainErrorSimple("APPOINTMENT_NOT_FOUND", "Appointment not found", http.StatusNotFound), true
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound), true
	case errors.Is(err, entities.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Invalid amount", http.StatusBadRequest), true
	case errors.Is(err, entities.ErrCatalogLookupFailed):
		return pkg.NewDomainError("CATALOG_LOOKUP_FAILED", "Catalog lookup failed", err, http.StatusUnprocessableEntity), true
	case errors.Is(err, usecase.ErrInvalidAppointmentID),
		errors.Is(err, usecase.ErrInvalidAppointmentInput),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidInvoiceID),
		errors.Is(err, usecase.ErrInvalidPartID):
		return errInvalidRequest, true
	}
	return nil, false
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
