package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	request "automobile_shop/internal/adapter/http/dto/request"
	response "automobile_shop/internal/adapter/http/dto/response"
	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase"
	"automobile_shop/internal/usecase/interfaces"
	"automobile_shop/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidInvoicePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)
)

// InvoiceHandler handles HTTP requests for invoices, their parts and exports.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
	log     *zap.Logger
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase, log *zap.Logger) *InvoiceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceHandler{usecase: uc, log: log}
}

// CreateInvoice godoc
// @Summary      Create the invoice of an appointment
// @Description  Fails with 409 when the appointment already has one.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateInvoiceRequest  true  "appointment"
// @Success      201   {object}  response.InvoiceResponse
// @Failure      409   {object}  pkg.HTTPError
// @Router       /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidInvoicePayload)
		return
	}

	inv, err := h.usecase.CreateInvoice(c.Request.Context(), payload.AppointmentID)
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

// ListInvoices godoc
// @Summary      List invoices by customer and/or vehicle
// @Tags         invoices
// @Produce      json
// @Param        customer_id  query     string  false  "customer id"
// @Param        vehicle_id   query     string  false  "vehicle id"
// @Success      200          {array}   response.InvoiceResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var q request.InvoiceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	items, err := h.usecase.ListInvoices(c.Request.Context(), interfaces.InvoiceFilter{
		CustomerID: q.CustomerID,
		VehicleID:  q.VehicleID,
	})
	if err != nil {
		h.fail(c, "list", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(items))
}

// GetInvoice godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        invoice_id  path      string  true  "invoice id"
// @Success      200         {object}  response.InvoiceResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("invoice_id")
	inv, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// GetInvoiceByAppointment godoc
// @Summary      Get the invoice of an appointment
// @Tags         invoices
// @Produce      json
// @Param        appointment_id  path      string  true  "appointment id"
// @Success      200             {object}  response.InvoiceResponse
// @Failure      404             {object}  pkg.HTTPError
// @Router       /invoices/appointment/{appointment_id} [get]
func (h *InvoiceHandler) GetInvoiceByAppointment(c *gin.Context) {
	appointmentID := c.Param("appointment_id")
	inv, err := h.usecase.GetByAppointmentID(c.Request.Context(), appointmentID)
	if err != nil {
		h.fail(c, "get-by-appointment", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// PatchCharges godoc
// @Summary      Set labour cost and/or tax percentage
// @Description  Both amounts are validated before either is stored.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice_id  path      string                  true  "invoice id"
// @Param        body        body      request.ChargesRequest  true  "charges"
// @Success      200         {object}  response.InvoiceResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id}/charges [patch]
func (h *InvoiceHandler) PatchCharges(c *gin.Context) {
	id := c.Param("invoice_id")
	var payload request.ChargesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidInvoicePayload)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(c, errInvalidInvoicePayload)
		return
	}

	inv, err := h.usecase.SetCharges(c.Request.Context(), id, interfaces.ChargesUpdate{
		LabourCost:    payload.LabourCost,
		TaxPercentage: payload.TaxPercentage,
	})
	if err != nil {
		h.fail(c, "set-charges", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// PutMechanics godoc
// @Summary      Replace the mechanics of an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice_id  path      string                    true  "invoice id"
// @Param        body        body      request.MechanicsRequest  true  "mechanic ids"
// @Success      200         {object}  response.InvoiceResponse
// @Router       /invoices/{invoice_id}/mechanics [put]
func (h *InvoiceHandler) PutMechanics(c *gin.Context) {
	id := c.Param("invoice_id")
	var payload request.MechanicsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidInvoicePayload)
		return
	}

	inv, err := h.usecase.SetMechanics(c.Request.Context(), id, payload.MechanicIDs)
	if err != nil {
		h.fail(c, "set-mechanics", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// AddPart godoc
// @Summary      Add units of a part
// @Description  Takes the units from inventory; 409 when stock is short.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice_id  path      string                    true  "invoice id"
// @Param        part_id     path      string                    true  "part id"
// @Param        body        body      request.PartCountRequest  true  "units to add"
// @Success      200         {object}  response.InvoiceResponse
// @Failure      409         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id}/parts/{part_id} [post]
func (h *InvoiceHandler) AddPart(c *gin.Context) {
	h.changePart(c, "add-part", h.usecase.AddOrIncrementPart)
}

// SetPart godoc
// @Summary      Set the count of a part
// @Description  The difference moves inventory; 0 removes the line.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice_id  path      string                    true  "invoice id"
// @Param        part_id     path      string                    true  "part id"
// @Param        body        body      request.PartCountRequest  true  "absolute count"
// @Success      200         {object}  response.InvoiceResponse
// @Failure      409         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id}/parts/{part_id} [put]
func (h *InvoiceHandler) SetPart(c *gin.Context) {
	h.changePart(c, "set-part", h.usecase.SetPartCount)
}

// RemovePart godoc
// @Summary      Remove a part and restore its stock
// @Tags         invoices
// @Produce      json
// @Param        invoice_id  path      string  true  "invoice id"
// @Param        part_id     path      string  true  "part id"
// @Success      200         {object}  response.InvoiceResponse
// @Router       /invoices/{invoice_id}/parts/{part_id} [delete]
func (h *InvoiceHandler) RemovePart(c *gin.Context) {
	id := c.Param("invoice_id")
	inv, err := h.usecase.RemovePart(c.Request.Context(), id, strings.TrimSpace(c.Param("part_id")))
	if err != nil {
		h.fail(c, "remove-part", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

func (h *InvoiceHandler) changePart(
	c *gin.Context,
	op string,
	apply func(ctx context.Context, invoiceID, partID string, count int) (entities.Invoice, error),
) {
	id := c.Param("invoice_id")
	var payload request.PartCountRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidInvoicePayload)
		return
	}

	inv, err := apply(c.Request.Context(), id, strings.TrimSpace(c.Param("part_id")), *payload.Count)
	if err != nil {
		h.fail(c, op, id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// GetTotals godoc
// @Summary      Compute invoice totals
// @Tags         invoices
// @Produce      json
// @Param        invoice_id  path      string  true  "invoice id"
// @Success      200         {object}  response.TotalsResponse
// @Failure      422         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id}/totals [get]
func (h *InvoiceHandler) GetTotals(c *gin.Context) {
	id := c.Param("invoice_id")
	totals, err := h.usecase.ComputeTotals(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "totals", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTotals(strings.TrimSpace(id), totals))
}

// GetPrintable godoc
// @Summary      Finalized invoice snapshot
// @Tags         invoices
// @Produce      json
// @Param        invoice_id  path      string  true  "invoice id"
// @Success      200         {object}  response.PrintableInvoiceResponse
// @Failure      422         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id}/print [get]
func (h *InvoiceHandler) GetPrintable(c *gin.Context) {
	id := c.Param("invoice_id")
	snapshot, err := h.usecase.FinalizeForPrint(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "print", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPrintableInvoice(snapshot))
}

// GetPDF godoc
// @Summary      Finalized invoice as PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        invoice_id  path  string  true  "invoice id"
// @Success      200
// @Router       /invoices/{invoice_id}/print.pdf [get]
func (h *InvoiceHandler) GetPDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("invoice_id"))
	doc, err := h.usecase.RenderPDF(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "render-pdf", id, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="invoice-`+id+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// DeleteInvoice godoc
// @Summary      Discard an invoice and restore its parts
// @Tags         invoices
// @Param        invoice_id  path  string  true  "invoice id"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id := c.Param("invoice_id")
	if err := h.usecase.Discard(c.Request.Context(), id); err != nil {
		h.fail(c, "discard", id, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) fail(c *gin.Context, op, id string, err error) {
	appErr := mapInvoiceError(err)
	h.log.Warn("[invoice][handler] "+op+" failed",
		zap.String("invoice_id", id),
		zap.Int("status", appErr.HTTPStatus),
		zap.Error(err),
	)
	writeError(c, appErr)
}

func mapInvoiceError(err error) *pkg.AppError {
	if appErr, ok := mapEngineError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrRendererNotConfigured):
		return pkg.NewDomainErrorSimple("PDF_EXPORT_UNAVAILABLE", "PDF export is not configured", http.StatusNotImplemented)
	case errors.Is(err, interfaces.ErrConditionFailed):
		return pkg.NewDomainErrorSimple("INVOICE_CHANGED", "Invoice changed concurrently, retry", http.StatusConflict)
	default:
		return internalError(err)
	}
}
