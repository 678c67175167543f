// README: Prometheus counters for bookings, dispatch, logins and HTTP responses.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxi/internal/types"
)

type Collector struct {
	bookings     *prometheus.CounterVec
	fareTotal    prometheus.Counter
	dispatches   *prometheus.CounterVec
	logins       *prometheus.CounterVec
	signups      *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
}

// NewCollector registers the collector's metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_bookings_total",
			Help: "Bookings created, by whether a driver was assigned.",
		}, []string{"driver_assigned"}),
		fareTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taxi_booked_fare_total",
			Help: "Sum of booked fares in major currency units.",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_dispatch_total",
			Help: "Driver dispatch attempts, by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_logins_total",
			Help: "Login attempts, by kind and result.",
		}, []string{"kind", "result"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_signups_total",
			Help: "Account creation attempts, by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_http_requests_total",
			Help: "HTTP responses, by status code.",
		}, []string{"status_code"}),
	}
	reg.MustRegister(c.bookings, c.fareTotal, c.dispatches, c.logins, c.signups, c.httpRequests)
	return c
}

func (c *Collector) RecordBooking(driverAssigned bool, fare types.Money) {
	c.bookings.WithLabelValues(strconv.FormatBool(driverAssigned)).Inc()
	c.fareTotal.Add(fare.Float())
}

func (c *Collector) RecordDispatch(assigned bool) {
	outcome := "assigned"
	if !assigned {
		outcome = "no_driver"
	}
	c.dispatches.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordLogin(kind string, ok bool) {
	c.logins.WithLabelValues(kind, result(ok)).Inc()
}

func (c *Collector) RecordSignup(ok bool) {
	c.signups.WithLabelValues(result(ok)).Inc()
}

func (c *Collector) RecordHTTPStatus(code int) {
	c.httpRequests.WithLabelValues(strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "rejected"
}
