package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg, "test")

	r.ObserveTransition("BOOKED", "ONGOING", "ok")
	r.ObserveTransition("BOOKED", "ONGOING", "ok")
	r.ObservePartOperation("add", "insufficient_stock")
	r.ObserveInvoiceProvisioned(true)
	r.ObserveInvoiceProvisioned(false)
	r.ObservePayment("approved")

	if got := testutil.ToFloat64(r.transitions.WithLabelValues("BOOKED", "ONGOING", "ok")); got != 2 {
		t.Fatalf("expected 2 transitions, got %v", got)
	}
	if got := testutil.ToFloat64(r.partOperations.WithLabelValues("add", "insufficient_stock")); got != 1 {
		t.Fatalf("expected 1 part operation, got %v", got)
	}
	if got := testutil.ToFloat64(r.invoiceProvisioned.WithLabelValues("false")); got != 1 {
		t.Fatalf("expected 1 reused invoice, got %v", got)
	}
	count, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := count; got != 5 {
		t.Fatalf("expected 5 series, got %d", got)
	}
}
