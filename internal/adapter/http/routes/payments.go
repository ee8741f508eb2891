package routes

import (
	"automobile_shop/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.InvoicePaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:invoice_id", h.CreatePayment)
		payments.GET("/:invoice_id", h.GetPayment)
	}
}
