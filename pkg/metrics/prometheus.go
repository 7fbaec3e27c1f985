package metrics

import (
	"account_ledger/internal/domain"
	"account_ledger/internal/service"
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
)

var (
	_ service.Observer        = (*MetricsCollector)(nil)
	_ service.BalanceObserver = (*MetricsCollector)(nil)
)

type MetricsCollector struct {
	registry           *prometheus.Registry
	operationsTotal    *prometheus.CounterVec
	operationsInFlight prometheus.Gauge
	operationDuration  *prometheus.HistogramVec
	accountBalance     *prometheus.GaugeVec
	logger             *slog.Logger
}

func NewMetricsCollector(logger *slog.Logger) *MetricsCollector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		registry: registry,
		operationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Ledger operations by name and outcome",
		}, []string{"operation", "outcome"}),
		operationsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_operations_in_flight",
			Help: "Ledger operations currently executing",
		}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Time taken to execute a ledger operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		accountBalance: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Current account balance",
		}, []string{"branch", "account"}),
		logger: logger,
	}
}

func (m *MetricsCollector) BeforeOperation(ctx context.Context, op string) {
	m.operationsInFlight.Inc()
}

func (m *MetricsCollector) AfterOperation(ctx context.Context, outcome service.Outcome) {
	m.operationsInFlight.Dec()
	m.operationsTotal.WithLabelValues(outcome.Operation, domain.Reason(outcome.Err)).Inc()
	m.operationDuration.WithLabelValues(outcome.Operation).Observe(outcome.Duration.Seconds())
}

func (m *MetricsCollector) BalanceChanged(ctx context.Context, branch string, number int, balance decimal.Decimal) {
	m.accountBalance.WithLabelValues(branch, strconv.Itoa(number)).Set(balance.InexactFloat64())
}

// OperationCount reads the current value of the operations counter.
func (m *MetricsCollector) OperationCount(op, outcome string) float64 {
	metric := &dto.Metric{}
	if err := m.operationsTotal.WithLabelValues(op, outcome).Write(metric); err != nil {
		return 0
	}
	if metric.Counter != nil && metric.Counter.Value != nil {
		return *metric.Counter.Value
	}
	return 0
}

func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *MetricsCollector) NewMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.GetHandler())

	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}
