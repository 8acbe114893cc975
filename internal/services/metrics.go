package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var expensesCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "expense_share",
		Subsystem: "expenses",
		Name:      "created_total",
		Help:      "Expenses stored, by split type.",
	},
	[]string{"split_type"},
)

var remindersSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "expense_share",
		Subsystem: "reminders",
		Name:      "sent_total",
		Help:      "Debtor reminder emails attempted, by result.",
	},
	[]string{"result"},
)

// ObserveReminder records the outcome of one reminder email.
func ObserveReminder(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	remindersSent.WithLabelValues(result).Inc()
}
