package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParticipantsCreated counts new participants per assigned kind
	ParticipantsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ultimatum_participants_created_total",
		Help: "Number of participants created, by assigned opponent kind.",
	}, []string{"kind"})

	// RoundsRecorded counts persisted round decisions
	RoundsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ultimatum_rounds_recorded_total",
		Help: "Number of round decisions recorded.",
	})

	// QuestionnairesCompleted counts finished questionnaires
	QuestionnairesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ultimatum_questionnaires_completed_total",
		Help: "Number of questionnaires submitted to the last page.",
	})

	// ExperimentsCompleted counts issued completion tokens
	ExperimentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ultimatum_experiments_completed_total",
		Help: "Number of participants who reached the completion screen.",
	})
)
