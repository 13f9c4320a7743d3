package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gallery"

// Recorder owns the service's prometheus collectors.
type Recorder struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	resizeTotal      *prometheus.CounterVec
	httpTotal        *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "dispatch_total",
				Help:      "Events dispatched, by event and result",
			},
			[]string{"event", "result"},
		),
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "dispatch_duration_seconds",
				Help:      "Time spent running all listeners for one event",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"event"},
		),
		resizeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "media",
				Name:      "resize_total",
				Help:      "Resize requests handled by a media engine",
			},
			[]string{"engine", "fit", "result"},
		),
		httpTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
	}

	reg.MustRegister(r.dispatchTotal, r.dispatchDuration, r.resizeTotal, r.httpTotal, r.httpDuration)
	return r
}

func (r *Recorder) ObserveDispatch(event string, took time.Duration, err error) {
	r.dispatchTotal.WithLabelValues(event, result(err)).Inc()
	r.dispatchDuration.WithLabelValues(event).Observe(took.Seconds())
}

func (r *Recorder) ObserveResize(engine, fit string, err error) {
	r.resizeTotal.WithLabelValues(engine, fit, result(err)).Inc()
}

func (r *Recorder) ObserveHTTP(path, method string, status int, took time.Duration) {
	r.httpTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(path, method).Observe(took.Seconds())
}

// Handler serves the registry in the prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
