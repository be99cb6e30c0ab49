package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfhl_operations_total",
			Help: "Total number of operations executed, by operation",
		},
		[]string{"operation"},
	)

	aiAnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfhl_ai_answers_total",
			Help: "Total number of AI answers, by outcome",
		},
		[]string{"outcome"},
	)
)
