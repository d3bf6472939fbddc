package catalog

import (
	"github.com/rmrfslashbin/padbind/pkg/models"
)

// Controller is a resolved, immutable view over one catalog entry.
// Derived facts (D-pad indices, stick-click index) are computed once at
// construction.
type Controller struct {
	entry       models.Entry
	dpadButtons [4]int
	hasDpad     bool
	stickButton int
	hasStick    bool
}

// NewController resolves a canonical name against the catalog.
func NewController(c *Catalog, name string) (*Controller, error) {
	entry, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	ctrl := &Controller{entry: entry, stickButton: -1}
	ctrl.dpadButtons, ctrl.hasDpad = dpadButtons(entry)
	ctrl.stickButton, ctrl.hasStick = stickButton(entry)
	return ctrl, nil
}

// dpadButtons returns the (up, down, left, right) button indices, present
// only when the entry has a D-pad and all four named buttons exist.
func dpadButtons(entry models.Entry) ([4]int, bool) {
	if !entry.HasDpad {
		return [4]int{}, false
	}
	names := [4]string{"D-Pad Up", "D-Pad Down", "D-Pad Left", "D-Pad Right"}
	var indices [4]int
	for i, want := range names {
		index, ok := buttonIndex(entry, want)
		if !ok {
			return [4]int{}, false
		}
		indices[i] = index
	}
	return indices, true
}

// stickButton returns the index of the first stick-click button found.
func stickButton(entry models.Entry) (int, bool) {
	for _, want := range []string{"Stick Click", "Left Stick Click", "Right Stick Click"} {
		if index, ok := buttonIndex(entry, want); ok {
			return index, true
		}
	}
	return -1, false
}

func buttonIndex(entry models.Entry, name string) (int, bool) {
	for index, got := range entry.Buttons {
		if got == name {
			return index, true
		}
	}
	return -1, false
}

// Name returns the canonical catalog name.
func (c *Controller) Name() string { return c.entry.Name }

// Button returns the name of a button by index, or "" if unmapped.
func (c *Controller) Button(index int) string { return c.entry.Buttons[index] }

// Axis returns the name of an axis by index, or "" if unmapped.
func (c *Controller) Axis(index int) string { return c.entry.Axes[index] }

// AxisButton returns the name of an axis-derived pseudo-button, or "".
func (c *Controller) AxisButton(index int) string { return c.entry.AxisButtons[index] }

// NumButtons returns the button capacity.
func (c *Controller) NumButtons() int { return c.entry.NumButtons }

// NumAxes returns the axis capacity.
func (c *Controller) NumAxes() int { return c.entry.NumAxes }

// HasStick reports whether the entry declares an analog stick.
func (c *Controller) HasStick() bool { return c.entry.HasStick }

// HasDpad reports whether the entry declares a D-pad.
func (c *Controller) HasDpad() bool { return c.entry.HasDpad }

// Supported reports whether the entry is exposed to users.
func (c *Controller) Supported() bool { return c.entry.Supported }

// DpadButtons returns the (up, down, left, right) button indices. The
// second return is false when any of the four D-pad buttons is missing.
func (c *Controller) DpadButtons() ([4]int, bool) {
	return c.dpadButtons, c.hasDpad
}

// StickButton returns the stick-click button index, if any.
func (c *Controller) StickButton() (int, bool) {
	return c.stickButton, c.hasStick
}

// Equal compares controllers by canonical name.
func (c *Controller) Equal(other *Controller) bool {
	return other != nil && c.entry.Name == other.entry.Name
}
