package driven

import "time"

// Outcome labels for metrics.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeCancelled = "cancelled"
	OutcomeInvalid   = "invalid"
)

// Metrics records read and write path activity.
type Metrics interface {
	// ObserveFetch records one endpoint request of a fetch cycle.
	ObserveFetch(source string, outcome string, elapsed time.Duration)

	// ObserveSubmit records one form submission attempt.
	ObserveSubmit(form string, outcome string)
}

// NopMetrics discards all observations.
type NopMetrics struct{}

// ObserveFetch implements Metrics.
func (NopMetrics) ObserveFetch(string, string, time.Duration) {}

// ObserveSubmit implements Metrics.
func (NopMetrics) ObserveSubmit(string, string) {}
