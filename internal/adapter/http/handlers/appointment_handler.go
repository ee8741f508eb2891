package handlers

import (
	"net/http"
	"strings"

	request "automobile_shop/internal/adapter/http/dto/request"
	response "automobile_shop/internal/adapter/http/dto/response"
	"automobile_shop/internal/usecase"
	"automobile_shop/internal/usecase/interfaces"
	"automobile_shop/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidAppointmentPayload = pkg.NewDomainErrorSimple("INVALID_APPOINTMENT_INPUT", "Invalid appointment payload", http.StatusBadRequest)
)

// AppointmentHandler handles HTTP requests for the appointment lifecycle.

type AppointmentHandler struct {
	usecase  usecase.IAppointmentUseCase
	invoices usecase.IInvoiceUseCase
	log      *zap.Logger
}

func NewAppointmentHandler(uc usecase.IAppointmentUseCase, invoices usecase.IInvoiceUseCase, log *zap.Logger) *AppointmentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppointmentHandler{usecase: uc, invoices: invoices, log: log}
}

// CreateAppointment godoc
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateAppointmentRequest  true  "appointment"
// @Success      201   {object}  response.AppointmentResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var payload request.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidAppointmentPayload)
		return
	}

	a, err := h.usecase.Create(c.Request.Context(), usecase.CreateAppointmentInput{
		CustomerID:  payload.CustomerID,
		VehicleID:   payload.VehicleID,
		ServiceIDs:  payload.ServiceIDs,
		ScheduledAt: payload.ScheduledAt,
	})
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromAppointment(a))
}

// GetAppointment godoc
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Param        appointment_id  path      string  true  "appointment id"
// @Success      200             {object}  response.AppointmentResponse
// @Failure      404             {object}  pkg.HTTPError
// @Router       /appointments/{appointment_id} [get]
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id := c.Param("appointment_id")
	a, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(a))
}

// ListAppointments godoc
// @Summary      List appointments ordered by schedule
// @Tags         appointments
// @Produce      json
// @Param        customer_id     query     string  false  "customer id"
// @Param        vehicle_id      query     string  false  "vehicle id"
// @Param        service_id      query     string  false  "service id"
// @Param        status          query     string  false  "status"
// @Param        scheduled_from  query     string  false  "RFC 3339, inclusive"
// @Param        scheduled_to    query     string  false  "RFC 3339, exclusive"
// @Success      200             {array}   response.AppointmentResponse
// @Failure      400             {object}  pkg.HTTPError
// @Router       /appointments [get]
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	var q request.AppointmentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	status, err := q.ResolveStatus()
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	items, err := h.usecase.List(c.Request.Context(), interfaces.AppointmentFilter{
		CustomerID:    q.CustomerID,
		VehicleID:     q.VehicleID,
		ServiceID:     q.ServiceID,
		Status:        status,
		ScheduledFrom: q.ScheduledFrom,
		ScheduledTo:   q.ScheduledTo,
	})
	if err != nil {
		h.fail(c, "list", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromAppointments(items))
}

// PatchStatus godoc
// @Summary      Transition an appointment
// @Description  Entering COMPLETED returns the invoice provisioned for the appointment.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        appointment_id  path      string                      true  "appointment id"
// @Param        body            body      request.TransitionRequest   true  "target status"
// @Success      200             {object}  response.TransitionResponse
// @Failure      409             {object}  pkg.HTTPError
// @Router       /appointments/{appointment_id}/status [patch]
func (h *AppointmentHandler) PatchStatus(c *gin.Context) {
	id := c.Param("appointment_id")
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	to, err := payload.ResolveStatus()
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	a, inv, err := h.usecase.Transition(c.Request.Context(), id, to)
	if err != nil {
		h.fail(c, "transition", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTransition(a, inv))
}

// PatchSchedule godoc
// @Summary      Reschedule a non-terminal appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        appointment_id  path      string                     true  "appointment id"
// @Param        body            body      request.RescheduleRequest  true  "new time"
// @Success      200             {object}  response.AppointmentResponse
// @Failure      409             {object}  pkg.HTTPError
// @Router       /appointments/{appointment_id}/schedule [patch]
func (h *AppointmentHandler) PatchSchedule(c *gin.Context) {
	id := c.Param("appointment_id")
	var payload request.RescheduleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	a, err := h.usecase.Reschedule(c.Request.Context(), id, payload.ScheduledAt)
	if err != nil {
		h.fail(c, "reschedule", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(a))
}

// PutInvoice godoc
// @Summary      Get or create the appointment invoice
// @Tags         appointments
// @Produce      json
// @Param        appointment_id  path      string  true  "appointment id"
// @Success      200             {object}  response.InvoiceResponse
// @Failure      404             {object}  pkg.HTTPError
// @Router       /appointments/{appointment_id}/invoice [put]
func (h *AppointmentHandler) PutInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("appointment_id"))
	inv, err := h.invoices.GetOrCreateInvoice(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get-or-create-invoice", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

func (h *AppointmentHandler) fail(c *gin.Context, op, id string, err error) {
	appErr := mapAppointmentError(err)
	h.log.Warn("[appointment][handler] "+op+" failed",
		zap.String("appointment_id", id),
		zap.Int("status", appErr.HTTPStatus),
		zap.Error(err),
	)
	writeError(c, appErr)
}

func mapAppointmentError(err error) *pkg.AppError {
	if appErr, ok := mapEngineError(err); ok {
		return appErr
	}
	return internalError(err)
}
