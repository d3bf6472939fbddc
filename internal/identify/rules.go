package identify

// The identification heuristics are kept as data rather than branching
// code. Tables are evaluated strictly in order: earlier rules encode
// real-world disambiguation priority (e.g. "dualsense" must win over the
// generic Sony branch), so new hardware quirks are added as new rows, not
// by reordering existing ones.

// rejectPatterns lists lowercase substrings of raw ids that identify a
// secondary enumeration of hardware already handled through another
// device node. Matching ids produce no identity at all.
var rejectPatterns = []string{
	"joy-con l+r",
	"motion sensors",
	"touchpad",
	"accelerometer",
	"keyboard",
}

// override resolves a (vendor, product, buttonCount) triple to a specific
// catalog name. Overrides exist for rebranded or compatibility-mode
// hardware that reports another manufacturer's codes, so they take
// precedence over the generic vendor/product lookup.
type override struct {
	vendor  string
	product string
	buttons int
	name    string
}

var overrides = []override{
	// 8BitDo Pro in PS4 mode reports DualShock 4 v1 codes.
	{"054c", "05c4", 18, "8BitDo Pro (A)"},
	// 8BitDo Pro in Switch mode reports Pro Controller codes but one
	// extra button.
	{"057e", "2009", 19, "8BitDo Pro"},
	// 8BitDo Zero in XInput mode reports Xbox 360 codes.
	{"045e", "028e", 12, "8BitDo Zero"},
}

// rule matches a lowercased raw id (plus the reported button count) and
// produces a canonical name.
type rule struct {
	match func(id string, buttons int) bool
	name  func(id string, buttons int) string
}

var heuristics = []rule{
	{contains("dualsense"), fixed("DualSense")},
	{contains("dualshock 3"), fixed("DualShock 3")},
	{contains("dualshock 4"), fixed("DualShock 4")},
	{contains("ps5"), fixed("DualSense")},
	{contains("ps4"), fixed("DualShock 4")},
	{contains("ps3"), fixed("DualShock 3")},
	// Generic Sony branch: the generation is disambiguated by button
	// count. 17 buttons is the DualShock 3 class, 18 the DualShock 4.
	{anyOf("dualshock", "playstation", "sony"), byButtons("DualShock 4", map[int]string{
		17: "DualShock 3",
		18: "DualShock 4",
	})},
	{contains("xbox 360"), fixed("Xbox 360")},
	{anyOf("xbox one", "xbox series"), fixed("Xbox One")},
	{anyOf("xbox", "microsoft"), byButtons("Xbox One", map[int]string{
		17: "Xbox 360",
	})},
	{allOf(anyOf("joycon", "joy-con"), anyOf("(l)", "left")), fixed("Joy-Con Left")},
	{allOf(anyOf("joycon", "joy-con"), anyOf("(r)", "right")), fixed("Joy-Con Right")},
	{anyOf("joycon", "joy-con"), fixed("Joy-Con")},
	{allOf(anyOf("switch", "nintendo"), contains("pro")), fixed("Switch Pro Controller")},
	{contains("wii"), fixed("Wii Remote")},
	{anyOf("steam", "valve"), fixed("Steam Controller")},
	{contains("8bitdo"), byButtons("8BitDo Pro", map[int]string{
		12: "8BitDo Zero",
	})},
}

func contains(substr string) func(string, int) bool {
	return func(id string, _ int) bool {
		return stringsContains(id, substr)
	}
}

func anyOf(substrs ...string) func(string, int) bool {
	return func(id string, _ int) bool {
		for _, s := range substrs {
			if stringsContains(id, s) {
				return true
			}
		}
		return false
	}
}

func allOf(matchers ...func(string, int) bool) func(string, int) bool {
	return func(id string, buttons int) bool {
		for _, m := range matchers {
			if !m(id, buttons) {
				return false
			}
		}
		return true
	}
}

func fixed(name string) func(string, int) string {
	return func(string, int) string { return name }
}

// byButtons picks a name by exact button count, falling back to a default
// for counts outside the table.
func byButtons(fallback string, names map[int]string) func(string, int) string {
	return func(_ string, buttons int) string {
		if name, ok := names[buttons]; ok {
			return name
		}
		return fallback
	}
}
