package interfaces

// IRecorder receives lifecycle events for metrics.
type IRecorder interface {
	ObserveTransition(from, to, result string)
	ObservePartOperation(op, result string)
	ObserveInvoiceProvisioned(created bool)
	ObservePayment(result string)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) ObserveTransition(string, string, string) {}
func (NopRecorder) ObservePartOperation(string, string)      {}
func (NopRecorder) ObserveInvoiceProvisioned(bool)           {}
func (NopRecorder) ObservePayment(string)                    {}
