package profile

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rmrfslashbin/padbind/pkg/models"
)

// Document is the persisted form of a profile. Nested mapping keys are
// strings for JSON compatibility and are coerced back to integers when a
// Profile is constructed.
type Document struct {
	Name         string                       `json:"name"`
	Size         [2]int                       `json:"size"`
	Controller   string                       `json:"controller"`
	QuickSelect  map[string]any               `json:"quick_select"`
	Bindings     map[string]map[string]string `json:"bindings"`
	AxesBindings map[string]string            `json:"axes_bindings"`
}

var requiredKeys = []string{
	"name", "size", "controller", "quick_select", "bindings", "axes_bindings",
}

// ParseDocument decodes a profile document and verifies its structural
// shape. Shape failures (including the legacy list-wrapped binding
// format) report as Malformed so callers can skip or convert the profile
// instead of crashing.
func ParseDocument(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", models.ErrMalformed, err)
	}

	var violations []string
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			violations = append(violations, fmt.Sprintf("missing required key %q", key))
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", models.ErrMalformed, err)
	}
	if len(violations) > 0 {
		return Document{}, &models.ValidationError{Name: doc.Name, Violations: violations}
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks every invariant of the document and reports all
// violations at once rather than failing on the first.
func (d Document) Validate() error {
	var violations []string
	if d.Name == "" {
		violations = append(violations, "name is empty")
	}
	if d.Size[0] < 0 || d.Size[1] < 0 {
		violations = append(violations, fmt.Sprintf("size %v is negative", d.Size))
	}
	for state, stateBindings := range d.Bindings {
		if !models.ValidState(models.State(state)) {
			violations = append(violations, fmt.Sprintf("unknown state %q", state))
			continue
		}
		for key := range stateBindings {
			if _, err := strconv.Atoi(key); err != nil {
				violations = append(violations,
					fmt.Sprintf("state %q has non-integer button key %q", state, key))
			}
		}
	}
	for key := range d.AxesBindings {
		if _, err := strconv.Atoi(key); err != nil {
			violations = append(violations, fmt.Sprintf("non-integer axis key %q", key))
		}
	}
	if len(violations) > 0 {
		return &models.ValidationError{Name: d.Name, Violations: violations}
	}
	return nil
}

// Marshal renders the document as indented JSON, the user-editable
// persisted form.
func (d Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}
