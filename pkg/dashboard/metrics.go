package dashboard

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the dashboard's prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	actionCounter   *prometheus.CounterVec
	actionDuration  *prometheus.HistogramVec
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		actionCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tokendash",
				Subsystem: "dashboard",
				Name:      "actions_total",
				Help:      "Number of dashboard actions by outcome",
			},
			[]string{"action", "outcome"},
		),
		actionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tokendash",
				Subsystem: "dashboard",
				Name:      "action_duration_seconds",
				Help:      "Duration of dashboard actions, including ledger round-trips",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"action"},
		),
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tokendash",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tokendash",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "path"},
		),
	}
}

func (m *Metrics) observeAction(action string, outcome Outcome, duration time.Duration) {
	if m == nil {
		return
	}
	m.actionCounter.WithLabelValues(action, string(outcome)).Inc()
	m.actionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.requestCounter.WithLabelValues(method, path, status).Inc()
			m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
