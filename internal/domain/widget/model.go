package widget

import (
	"time"

	"github.com/yanqian/skycast/internal/domain/location"
	"github.com/yanqian/skycast/internal/domain/presenter"
	"github.com/yanqian/skycast/pkg/metrics"
)

// DefaultCity is searched on initial load when none is configured.
const DefaultCity = "London"

// Phase is what the widget currently shows. Exactly one phase is active.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseContent Phase = "content"
)

// Trigger identifies the user action that started a query.
type Trigger string

const (
	TriggerSearchButton    Trigger = "search_button"
	TriggerEnterKey        Trigger = "enter_key"
	TriggerCurrentLocation Trigger = "current_location"
	TriggerInitialLoad     Trigger = "initial_load"
)

// Valid reports whether t is a known trigger.
func (t Trigger) Valid() bool {
	switch t {
	case TriggerSearchButton, TriggerEnterKey, TriggerCurrentLocation, TriggerInitialLoad:
		return true
	default:
		return false
	}
}

// State is the query state of one widget session. Message is only set in
// PhaseError; Display, Location and Timings only in PhaseContent.
type State struct {
	SessionID string                `json:"sessionId"`
	Phase     Phase                 `json:"phase"`
	QueryID   uint64                `json:"queryId"`
	Trigger   Trigger               `json:"trigger,omitempty"`
	Message   string                `json:"message,omitempty"`
	Code      string                `json:"code,omitempty"`
	Location  *location.Location    `json:"location,omitempty"`
	Display   *presenter.Display    `json:"display,omitempty"`
	Timings   *metrics.QueryTimings `json:"timings,omitempty"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Config wires runtime knobs for the orchestrator.
type Config struct {
	DefaultCity string
}
