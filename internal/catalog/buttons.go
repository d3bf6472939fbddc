package catalog

// ButtonOrder is the canonical button-name vocabulary, in display order.
// Every catalog entry's button names must come from this list.
var ButtonOrder = []string{
	"Left Shoulder",
	"Right Shoulder",
	"Left Trigger",
	"Right Trigger",
	"L1",
	"R1",
	"L2",
	"R2",
	"Triangle",
	"Circle",
	"Square",
	"Cross",
	"Y",
	"X",
	"B",
	"A",
	"D-Pad Up",
	"D-Pad Down",
	"D-Pad Left",
	"D-Pad Right",
	"Up",
	"Down",
	"Left",
	"Right",
	"Z",
	"LZ",
	"RZ",
	"Capture",
	"Plus",
	"Minus",
	"Menu",
	"View",
	"Start",
	"Select",
	"Star",
	"Steam",
	"Forward",
	"Back",
	"Xbox",
	"Home",
	"Share",
	"Options",
	"Left Stick Click",
	"Right Stick Click",
	"Stick Click",
	"Left Grip",
	"Right Grip",
	"Pad",
	"PS",
}

// leftSideButtons lists the names found on the left half of a pad, used
// to lay out bindings in two columns.
var leftSideButtons = map[string]bool{
	"Left Shoulder":    true,
	"Left Trigger":     true,
	"L1":               true,
	"L2":               true,
	"LZ":               true,
	"D-Pad Up":         true,
	"D-Pad Down":       true,
	"D-Pad Left":       true,
	"D-Pad Right":      true,
	"Up":               true,
	"Down":             true,
	"Left":             true,
	"Right":            true,
	"Capture":          true,
	"Minus":            true,
	"View":             true,
	"Select":           true,
	"Back":             true,
	"Share":            true,
	"Left Stick Click": true,
	"Left Grip":        true,
	"Stick Click":      true,
	"PS":               true,
}

var knownButtons = buildKnownButtons()

func buildKnownButtons() map[string]bool {
	known := make(map[string]bool, len(ButtonOrder))
	for _, name := range ButtonOrder {
		known[name] = true
	}
	return known
}

// KnownButton reports whether name is in the canonical vocabulary.
func KnownButton(name string) bool {
	return knownButtons[name]
}

// IsLeftSide reports whether a button sits on the left half of a pad.
func IsLeftSide(name string) bool {
	return leftSideButtons[name]
}
