package pdf

import (
	"context"
	"fmt"
	"time"

	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// InvoiceRenderer lays out a finalized invoice as a one-table PDF.
type InvoiceRenderer struct {
	shopName string
}

var _ interfaces.IInvoiceRenderer = (*InvoiceRenderer)(nil)

func NewInvoiceRenderer(shopName string) *InvoiceRenderer {
	return &InvoiceRenderer{shopName: shopName}
}

func (r *InvoiceRenderer) RenderPDF(ctx context.Context, inv entities.PrintableInvoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, r.shopName, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left}),
		text.NewCol(4, "Invoice", props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Right}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New("Invoice: "+inv.InvoiceID, props.Text{Top: 0, Size: 9}),
			text.New("Appointment: "+inv.AppointmentID, props.Text{Top: 5, Size: 9}),
			text.New("Scheduled: "+formatDate(inv.ScheduledAt), props.Text{Top: 10, Size: 9}),
			text.New("Issued: "+formatDate(inv.FinalizedAt), props.Text{Top: 15, Size: 9}),
		),
		col.New(6).Add(
			text.New("Customer: "+inv.CustomerID, props.Text{Top: 0, Size: 9, Align: align.Right}),
			text.New("Vehicle: "+inv.VehicleID, props.Text{Top: 5, Size: 9, Align: align.Right}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Part", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, line := range inv.Lines {
		m.AddRow(8,
			text.NewCol(6, line.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", line.Count), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(line.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(line.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	if len(inv.Mechanics) > 0 {
		m.AddRow(10, text.NewCol(12, "Mechanics", props.Text{Style: fontstyle.Bold, Size: 9, Top: 3}))
		for _, mechanic := range inv.Mechanics {
			m.AddRow(6, text.NewCol(12, mechanic.Name, props.Text{Size: 9}))
		}
	}

	totals := []struct {
		label string
		value string
		bold  bool
	}{
		{"Parts", money(inv.PartsTotal), false},
		{"Labour", money(inv.LabourCost), false},
		{"Subtotal", money(inv.Subtotal), false},
		{fmt.Sprintf("Tax (%s%%)", inv.TaxPercentage.String()), money(inv.Tax), false},
		{"Total", money(inv.GrandTotal), true},
	}
	for _, t := range totals {
		style := fontstyle.Normal
		if t.bold {
			style = fontstyle.Bold
		}
		m.AddRow(7,
			col.New(8),
			text.NewCol(2, t.label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, t.value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(entities.CurrencyPrecision)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}
