package routes

import (
	"automobile_shop/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathInvoices = "/invoices"
)

func addInvoiceRoutes(rg *gin.RouterGroup, h *handlers.InvoiceHandler) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/appointment/:appointment_id", h.GetInvoiceByAppointment)
		invoices.GET("/:invoice_id", h.GetInvoice)
		invoices.DELETE("/:invoice_id", h.DeleteInvoice)
		invoices.PATCH("/:invoice_id/charges", h.PatchCharges)
		invoices.PUT("/:invoice_id/mechanics", h.PutMechanics)
		invoices.GET("/:invoice_id/totals", h.GetTotals)
		invoices.GET("/:invoice_id/print", h.GetPrintable)
		invoices.GET("/:invoice_id/print.pdf", h.GetPDF)

		parts := invoices.Group("/:invoice_id/parts")
		parts.POST("/:part_id", h.AddPart)
		parts.PUT("/:part_id", h.SetPart)
		parts.DELETE("/:part_id", h.RemovePart)
	}
}
