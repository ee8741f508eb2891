package metrics

import (
	"net/http"
	"strconv"

	"automobile_shop/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exports lifecycle events as Prometheus counters.
type Recorder struct {
	transitions        *prometheus.CounterVec
	partOperations     *prometheus.CounterVec
	invoiceProvisioned *prometheus.CounterVec
	payments           *prometheus.CounterVec
}

var _ interfaces.IRecorder = (*Recorder)(nil)

// NewRecorder registers the counters on registerer (prometheus.DefaultRegisterer when nil).
func NewRecorder(registerer prometheus.Registerer, env string) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if env == "" {
		env = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": "automobile_shop",
		"env":     env,
	}

	r := &Recorder{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_transitions_total",
			Help:        "Appointment status transition attempts by outcome.",
			ConstLabels: constLabels,
		}, []string{"from", "to", "result"}),
		partOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoice_part_operations_total",
			Help:        "Invoice used-part changes by operation and outcome.",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),
		invoiceProvisioned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoice_provisioning_total",
			Help:        "Invoice get-or-create calls by whether the invoice was created.",
			ConstLabels: constLabels,
		}, []string{"created"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoice_payments_total",
			Help:        "Invoice payment attempts by outcome.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	registerer.MustRegister(r.transitions, r.partOperations, r.invoiceProvisioned, r.payments)
	return r
}

func (r *Recorder) ObserveTransition(from, to, result string) {
	r.transitions.WithLabelValues(from, to, result).Inc()
}

func (r *Recorder) ObservePartOperation(op, result string) {
	r.partOperations.WithLabelValues(op, result).Inc()
}

func (r *Recorder) ObserveInvoiceProvisioned(created bool) {
	r.invoiceProvisioned.WithLabelValues(strconv.FormatBool(created)).Inc()
}

func (r *Recorder) ObservePayment(result string) {
	r.payments.WithLabelValues(result).Inc()
}

// Handler serves the default gatherer in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
