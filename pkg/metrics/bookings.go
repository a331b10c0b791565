package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics records the outcome of booking and matching attempts.
type BookingMetrics struct {
	duration  *prometheus.HistogramVec
	created   prometheus.Counter
	conflicts prometheus.Counter
	matches   *prometheus.CounterVec
}

// NewBookingMetrics registers the booking metrics on the provided registerer.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_operation_duration_seconds",
		Help:    "Duration of booking ledger operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Successfully created bookings.",
	})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_conflicts_total",
		Help: "Booking attempts rejected because the unit was already booked.",
	})
	matches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transaction_matches_total",
		Help: "Transaction match attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, created, conflicts, matches)
	return &BookingMetrics{
		duration:  duration,
		created:   created,
		conflicts: conflicts,
		matches:   matches,
	}
}

// ObserveDuration records the duration for the named operation.
func (b *BookingMetrics) ObserveDuration(operation string, duration time.Duration) {
	if b == nil || b.duration == nil {
		return
	}
	b.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncCreated increments the successful booking counter.
func (b *BookingMetrics) IncCreated() {
	if b == nil || b.created == nil {
		return
	}
	b.created.Inc()
}

// IncConflict increments the booking conflict counter.
func (b *BookingMetrics) IncConflict() {
	if b == nil || b.conflicts == nil {
		return
	}
	b.conflicts.Inc()
}

// IncMatch increments the transaction match counter for the given outcome.
func (b *BookingMetrics) IncMatch(outcome string) {
	if b == nil || b.matches == nil {
		return
	}
	b.matches.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
