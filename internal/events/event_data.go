// Package events provides the pub/sub event bus used to broadcast analytics
// lifecycle events to stream subscribers.
package events

import "time"

// EventType identifies the kind of event on the bus
type EventType string

const (
	// RiskComputed fires after a risk metrics run persists its rows
	RiskComputed EventType = "risk_computed"
	// AttributionComputed fires after an attribution run persists its rows
	AttributionComputed EventType = "attribution_computed"
	// ScreeningCompleted fires after a factor screening request finishes
	ScreeningCompleted EventType = "screening_completed"
	// JobFailed fires when a scheduled analytics job returns an error
	JobFailed EventType = "job_failed"
)

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// RiskComputedData contains data for RiskComputed events
type RiskComputedData struct {
	RunID    string `json:"run_id"`
	AsOfDate string `json:"asof_date"`
	Metrics  int    `json:"metrics"`
}

// EventType returns the event type for RiskComputedData
func (d *RiskComputedData) EventType() EventType {
	return RiskComputed
}

// AttributionComputedData contains data for AttributionComputed events
type AttributionComputedData struct {
	RunID        string `json:"run_id"`
	AsOfDate     string `json:"asof_date"`
	LookbackDays int    `json:"lookback_days"`
	Rows         int    `json:"rows"`
	Skipped      bool   `json:"skipped,omitempty"` // stale-data runs persist nothing
}

// EventType returns the event type for AttributionComputedData
func (d *AttributionComputedData) EventType() EventType {
	return AttributionComputed
}

// ScreeningCompletedData contains data for ScreeningCompleted events
type ScreeningCompletedData struct {
	RequestID string `json:"request_id"`
	Style     string `json:"style"`
	Scored    int    `json:"scored"`
	Ranked    int    `json:"ranked"`
}

// EventType returns the event type for ScreeningCompletedData
func (d *ScreeningCompletedData) EventType() EventType {
	return ScreeningCompleted
}

// JobFailedData contains data for JobFailed events
type JobFailedData struct {
	Job   string `json:"job"`
	Error string `json:"error"`
}

// EventType returns the event type for JobFailedData
func (d *JobFailedData) EventType() EventType {
	return JobFailed
}

// Event is the envelope published on the bus
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data"`
}
