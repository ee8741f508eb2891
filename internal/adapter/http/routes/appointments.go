package routes

import (
	"automobile_shop/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAppointments = "/appointments"
)

func addAppointmentRoutes(rg *gin.RouterGroup, h *handlers.AppointmentHandler) {
	appointments := rg.Group(PathAppointments)
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:appointment_id", h.GetAppointment)
		appointments.PATCH("/:appointment_id/status", h.PatchStatus)
		appointments.PATCH("/:appointment_id/schedule", h.PatchSchedule)
		appointments.PUT("/:appointment_id/invoice", h.PutInvoice)
	}
}
