// Package models defines the data structures used throughout the application.
package models

import "time"

// State represents an application mode that bindings can attach to.
type State string

const (
	// StateAll is the base layer inherited by every other state.
	StateAll State = "all"
	// StateDeckBrowser is the deck list screen.
	StateDeckBrowser State = "deckBrowser"
	// StateOverview is the single-deck overview screen.
	StateOverview State = "overview"
	// StateReview is the layer shared by question and answer. It is never
	// reported as a runtime state, but bindings may be stored under it.
	StateReview State = "review"
	// StateQuestion is the question side of a card under review.
	StateQuestion State = "question"
	// StateAnswer is the answer side of a card under review.
	StateAnswer State = "answer"
	// StateDialog is any recognized dialog window.
	StateDialog State = "dialog"
	// StateConfig is the options window.
	StateConfig State = "config"
	// StateNoFocus means no recognized window has focus.
	StateNoFocus State = "NoFocus"
)

// BindingStates lists every state a binding may be stored under, in
// display order.
func BindingStates() []State {
	return []State{
		StateAll,
		StateDeckBrowser,
		StateOverview,
		StateReview,
		StateQuestion,
		StateAnswer,
		StateDialog,
		StateConfig,
		StateNoFocus,
	}
}

// ConcreteStates lists the states shown when materializing inherited
// bindings: the screens a user can actually be on, excluding the "all"
// and "review" layers and the NoFocus pseudo-state.
func ConcreteStates() []State {
	return []State{
		StateDeckBrowser,
		StateOverview,
		StateQuestion,
		StateAnswer,
		StateDialog,
		StateConfig,
	}
}

// ValidState reports whether s is a storable binding state.
func ValidState(s State) bool {
	for _, v := range BindingStates() {
		if s == v {
			return true
		}
	}
	return false
}

// Entry describes one controller model in the catalog.
type Entry struct {
	Name        string         `yaml:"name"`
	Buttons     map[int]string `yaml:"buttons"`
	AxisButtons map[int]string `yaml:"axis_buttons"`
	Axes        map[int]string `yaml:"axes"`
	NumButtons  int            `yaml:"num_buttons"`
	NumAxes     int            `yaml:"num_axes"`
	HasStick    bool           `yaml:"has_stick"`
	HasDpad     bool           `yaml:"has_dpad"`
	Supported   bool           `yaml:"supported"`
}

// DetectionEvent records one hardware identification, as reported by the
// input layer and as resolved by the identity resolver.
type DetectionEvent struct {
	ID         string    `json:"id"`
	RawID      string    `json:"raw_id"`
	Buttons    int       `json:"buttons"`
	Axes       int       `json:"axes"`
	Controller string    `json:"controller,omitempty"` // resolved name, empty if rejected
	Profile    string    `json:"profile,omitempty"`
	DetectedAt time.Time `json:"detected_at"`
}
