package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	response "automobile_shop/internal/adapter/http/dto/response"
	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase"
	"automobile_shop/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoicePaymentHandler handles HTTP requests for invoice payments.

type InvoicePaymentHandler struct {
	usecase  usecase.IInvoicePaymentUseCase
	mockMode bool
	log      *zap.Logger
}

// NewInvoicePaymentHandler builds the handler. In mock mode an unreadable
// payload falls back to an empty one.
func NewInvoicePaymentHandler(uc usecase.IInvoicePaymentUseCase, mockMode bool, log *zap.Logger) *InvoicePaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoicePaymentHandler{usecase: uc, mockMode: mockMode, log: log}
}

// CreatePayment godoc
// @Summary      Pay an invoice through Mercado Pago
// @Description  The invoice's appointment must be COMPLETED. The body is the Mercado Pago payload, optionally wrapped in mp_payload.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        invoice_id  path      string                                 true   "invoice id"
// @Param        body        body      request.InvoicePaymentCreateRequest    false  "payload"
// @Success      200         {object}  response.InvoicePaymentResponse
// @Failure      409         {object}  pkg.HTTPError
// @Router       /payments/{invoice_id} [post]
func (h *InvoicePaymentHandler) CreatePayment(c *gin.Context) {
	invoiceID := c.Param("invoice_id")
	h.log.Debug("[payment][handler] create start", zap.String("invoice_id", invoiceID))

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			h.log.Warn("[payment][handler] invalid payload", zap.String("invoice_id", invoiceID), zap.Error(err))
			writeError(c, errInvalidRequest)
			return
		}
		h.log.Info("[payment][handler] payload invalid in mock mode; fallback to empty payload",
			zap.String("invoice_id", invoiceID), zap.Error(err))
		mpPayload = json.RawMessage("{}")
	}

	created, err := h.usecase.CreateAndApprove(c.Request.Context(), invoiceID, mpPayload)
	if err != nil {
		h.fail(c, "create", invoiceID, err)
		return
	}
	h.log.Info("[payment][handler] create success",
		zap.String("invoice_id", invoiceID),
		zap.String("payment_id", created.ID),
		zap.String("status", string(created.Status)),
	)
	c.JSON(http.StatusOK, response.FromInvoicePayment(created))
}

// GetPayment godoc
// @Summary      Latest payment of an invoice
// @Tags         payments
// @Produce      json
// @Param        invoice_id  path      string  true  "invoice id"
// @Success      200         {object}  response.InvoicePaymentResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /payments/{invoice_id} [get]
func (h *InvoicePaymentHandler) GetPayment(c *gin.Context) {
	invoiceID := c.Param("invoice_id")

	payments, err := h.usecase.ListByInvoiceID(c.Request.Context(), invoiceID)
	if err != nil {
		h.fail(c, "get-by-invoice", invoiceID, err)
		return
	}
	if len(payments) == 0 {
		h.fail(c, "get-by-invoice", invoiceID, usecase.ErrInvoicePaymentNotFound)
		return
	}

	c.JSON(http.StatusOK, response.FromInvoicePayment(latestPayment(payments)))
}

func latestPayment(payments []entities.InvoicePayment) entities.InvoicePayment {
	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return latest
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			trimmed := strings.TrimSpace(string(wrapped))
			if trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func (h *InvoicePaymentHandler) fail(c *gin.Context, op, invoiceID string, err error) {
	appErr := mapInvoicePaymentError(err)
	h.log.Warn("[payment][handler] "+op+" failed",
		zap.String("invoice_id", invoiceID),
		zap.Int("status", appErr.HTTPStatus),
		zap.Error(err),
	)
	writeError(c, appErr)
}

func mapInvoicePaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest), errors.Is(err, usecase.ErrInvalidPaymentID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrAppointmentNotCompleted):
		return pkg.NewDomainErrorSimple("APPOINTMENT_NOT_COMPLETED", "Appointment not completed", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvoicePaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	}
	if appErr, ok := mapEngineError(err); ok {
		return appErr
	}
	return internalError(err)
}
