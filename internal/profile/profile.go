// Package profile implements binding profiles: layered (state, button)
// to action mappings with JSON persistence.
package profile

import (
	"fmt"
	"strconv"

	"github.com/rmrfslashbin/padbind/internal/catalog"
	"github.com/rmrfslashbin/padbind/pkg/models"
)

// FocusAction is the synthetic binding injected at (NoFocus, 0) on every
// construction, so an unfocused application can always be recalled.
const FocusAction = "Focus Main Window"

// Profile stores control bindings for one controller. Profiles are never
// shared: every construction from a document yields an independent copy.
type Profile struct {
	name           string
	lenButtons     int
	lenAxes        int
	controller     *catalog.Controller
	controllerName string
	bindings       map[models.State]map[int]string
	axes           map[int]string
	quickSelect    map[string]any
	cat            *catalog.Catalog
}

// New constructs a profile from its persisted document form. The
// controller name is resolved against the catalog when possible;
// otherwise it is kept as an unresolved placeholder so the profile still
// loads for hardware missing from the catalog.
func New(doc Document, cat *catalog.Catalog) (*Profile, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	p := &Profile{
		name:           doc.Name,
		lenButtons:     doc.Size[0],
		lenAxes:        doc.Size[1],
		controllerName: doc.Controller,
		bindings:       make(map[models.State]map[int]string),
		axes:           make(map[int]string),
		quickSelect:    copyMap(doc.QuickSelect),
		cat:            cat,
	}

	for state, stateBindings := range doc.Bindings {
		for key, action := range stateBindings {
			if action == "" {
				continue
			}
			button, err := strconv.Atoi(key)
			if err != nil {
				// Validate has already rejected this; kept as a guard.
				return nil, fmt.Errorf("%w: bad button key %q", models.ErrMalformed, key)
			}
			p.insert(models.State(state), button, action)
		}
	}
	for key, action := range doc.AxesBindings {
		if action == "" {
			continue
		}
		axis, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: bad axis key %q", models.ErrMalformed, key)
		}
		p.axes[axis] = action
	}

	if cat != nil && cat.Has(doc.Controller) {
		ctrl, err := catalog.NewController(cat, doc.Controller)
		if err != nil {
			return nil, err
		}
		p.controller = ctrl
	}

	// Unconditional, overwrites any loaded value for this key.
	p.insert(models.StateNoFocus, 0, FocusAction)

	return p, nil
}

func (p *Profile) insert(state models.State, button int, action string) {
	if p.bindings[state] == nil {
		p.bindings[state] = make(map[int]string)
	}
	p.bindings[state][button] = action
}

// Name returns the profile name, which is also its persistence key after
// slugification.
func (p *Profile) Name() string { return p.name }

// SetName renames the profile in memory.
func (p *Profile) SetName(name string) { p.name = name }

// Size returns the (buttons, axes) input index space the profile was
// built for.
func (p *Profile) Size() (buttons, axes int) { return p.lenButtons, p.lenAxes }

// Controller returns the bound controller, if the profile's controller
// name resolved in the catalog.
func (p *Profile) Controller() (*catalog.Controller, bool) {
	return p.controller, p.controller != nil
}

// ControllerName returns the controller name, resolved or placeholder.
func (p *Profile) ControllerName() string {
	if p.controller != nil {
		return p.controller.Name()
	}
	return p.controllerName
}

// BindController attaches a resolved controller to the profile.
func (p *Profile) BindController(ctrl *catalog.Controller) {
	p.controller = ctrl
	p.controllerName = ctrl.Name()
}

// QuickSelect returns the opaque quick-select configuration. Its
// structure is owned by the UI layer.
func (p *Profile) QuickSelect() map[string]any { return p.quickSelect }

// Get resolves the action for a button under a state. Resolution is
// layered: the exact binding wins; question and answer fall back to the
// review layer; everything falls back to the "all" layer; unmapped
// buttons resolve to "".
func (p *Profile) Get(state models.State, button int) string {
	if action := p.bindings[state][button]; action != "" {
		return action
	}
	if state == models.StateQuestion || state == models.StateAnswer {
		if action := p.bindings[models.StateReview][button]; action != "" {
			return action
		}
	}
	return p.bindings[models.StateAll][button]
}

// Set inserts or overwrites a binding. States outside the enumerated set
// are rejected and the profile is left unmodified.
func (p *Profile) Set(state models.State, button int, action string) error {
	if !models.ValidState(state) {
		return fmt.Errorf("state %q: %w", state, models.ErrInvalidState)
	}
	p.insert(state, button, action)
	return nil
}

// Remove deletes an explicit binding, re-exposing the inherited value.
func (p *Profile) Remove(state models.State, button int) {
	delete(p.bindings[state], button)
}

// AxisAction returns the action bound to an axis. Axes are not
// state-layered.
func (p *Profile) AxisAction(axis int) string { return p.axes[axis] }

// SetAxisAction binds an action to an axis.
func (p *Profile) SetAxisAction(axis int, action string) {
	p.axes[axis] = action
}

// InheritedBindings materializes the fully resolved action for every
// concrete state and every button index in range, so effective bindings
// can be displayed without per-query recomputation.
func (p *Profile) InheritedBindings() map[models.State]map[int]string {
	inherited := make(map[models.State]map[int]string)
	for _, state := range models.ConcreteStates() {
		inherited[state] = make(map[int]string, p.lenButtons)
		for button := 0; button < p.lenButtons; button++ {
			inherited[state][button] = p.Get(state, button)
		}
	}
	return inherited
}

// Document copies the profile to its persisted form with string keys.
func (p *Profile) Document() Document {
	bindings := make(map[string]map[string]string)
	for state, stateBindings := range p.bindings {
		for button, action := range stateBindings {
			if bindings[string(state)] == nil {
				bindings[string(state)] = make(map[string]string)
			}
			bindings[string(state)][strconv.Itoa(button)] = action
		}
	}
	axes := make(map[string]string, len(p.axes))
	for axis, action := range p.axes {
		axes[strconv.Itoa(axis)] = action
	}
	return Document{
		Name:         p.name,
		Size:         [2]int{p.lenButtons, p.lenAxes},
		Controller:   p.ControllerName(),
		QuickSelect:  copyMap(p.quickSelect),
		Bindings:     bindings,
		AxesBindings: axes,
	}
}

// Copy returns an independent deep copy of the profile.
func (p *Profile) Copy() (*Profile, error) {
	return New(p.Document(), p.cat)
}

// copyMap deep-copies a JSON-shaped map.
func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
