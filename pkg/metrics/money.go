package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MoneyOpMetrics counts the money-moving operations and their outcomes.
type MoneyOpMetrics struct {
	operations    *prometheus.CounterVec
	failures      *prometheus.CounterVec
	ledgerEntries *prometheus.CounterVec
}

// Operation labels used across the service layer.
const (
	OpOrderCreate   = "order_create"
	OpOrderStatus   = "order_status"
	OpOrderCancel   = "order_cancel"
	OpPaymentRecord = "payment_record"
	OpPaymentDelete = "payment_delete"
	OpExpenseCreate = "expense_create"
)

// NewMoneyOpMetrics registers the counters on the provided registerer.
func NewMoneyOpMetrics(reg prometheus.Registerer) *MoneyOpMetrics {
	if reg == nil {
		return &MoneyOpMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_money_operations_total",
		Help: "Completed money-moving operations.",
	}, []string{"operation"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_money_operation_failures_total",
		Help: "Failed money-moving operations.",
	}, []string{"operation"})
	ledgerEntries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_ledger_entries_total",
		Help: "Ledger rows written, by account.",
	}, []string{"account"})
	reg.MustRegister(operations, failures, ledgerEntries)
	return &MoneyOpMetrics{
		operations:    operations,
		failures:      failures,
		ledgerEntries: ledgerEntries,
	}
}

// IncOperation increments the completed counter for the named operation.
func (m *MoneyOpMetrics) IncOperation(operation string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *MoneyOpMetrics) IncFailure(operation string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncLedgerEntry increments the ledger row counter for the named account.
func (m *MoneyOpMetrics) IncLedgerEntry(account string) {
	if m == nil || m.ledgerEntries == nil {
		return
	}
	m.ledgerEntries.WithLabelValues(normalizeLabel(account)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
