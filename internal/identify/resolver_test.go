package identify

import (
	"testing"

	"github.com/rmrfslashbin/padbind/internal/catalog"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	cat, err := catalog.LoadBuiltin()
	if err != nil {
		t.Fatalf("catalog.LoadBuiltin() error = %v", err)
	}
	db, err := LoadBuiltinVendorDB()
	if err != nil {
		t.Fatalf("LoadBuiltinVendorDB() error = %v", err)
	}
	return NewResolver(cat, db)
}

func TestIdentify(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name    string
		rawID   string
		buttons int
		axes    int
		want    string // "" means nil identity
	}{
		// Known-bad duplicate enumerations are dropped entirely.
		{"reject joycon pair node", "Nintendo Joy-Con L+R", 18, 4, ""},
		{"reject touchpad node", "Wireless Controller Touchpad", 0, 2, ""},
		{"reject motion sensors", "DualShock 4 Motion Sensors", 0, 6, ""},
		{"reject keyboard", "Gaming Keyboard", 104, 0, ""},

		// Devices the vendor database marks invalid are dropped too.
		{"invalid product code", "Wireless Controller (Vendor: 054c Product: 05c5)", 18, 4, ""},
		{"invalid charging grip", "Pro Controller (Vendor: 057e Product: 200e)", 18, 4, ""},

		// Compatibility-mode overrides beat the generic code lookup.
		{"8bitdo in ps4 mode", "Vendor: 054c Product: 05c4", 18, 4, "8BitDo Pro (A)"},
		{"8bitdo in switch mode", "Vendor: 057e Product: 2009", 19, 4, "8BitDo Pro"},
		{"8bitdo zero in xinput mode", "Vendor: 045e Product: 028e", 12, 0, "8BitDo Zero"},

		// Plain vendor/product lookups.
		{"dualshock 4 v2 codes", "Wireless Controller (Vendor: 054c Product: 09cc)", 18, 4, "DualShock 4"},
		{"dualsense codes", "Vendor: 054c Product: 0ce6", 18, 4, "DualSense"},
		{"switch pro with normal buttons", "Vendor: 057e Product: 2009", 18, 4, "Switch Pro Controller"},
		{"steam controller codes", "Vendor: 28de Product: 1102", 14, 4, "Steam Controller"},

		// Without both hex tokens the heuristics take over.
		{"vendor token alone", "Xbox Controller Vendor: 045e", 17, 6, "Xbox 360"},

		// Free-text heuristics, earlier rules win.
		{"dualsense by name", "DualSense Wireless Controller", 18, 4, "DualSense"},
		{"ps5 alias", "PS5 Controller", 18, 4, "DualSense"},
		{"sony by button count 17", "Sony Interactive Entertainment Controller", 17, 4, "DualShock 3"},
		{"sony by button count 18", "Sony Interactive Entertainment Controller", 18, 4, "DualShock 4"},
		{"sony odd button count", "Sony Interactive Entertainment Controller", 20, 4, "DualShock 4"},
		{"xbox 360 by name", "Xbox 360 Controller for Windows", 17, 6, "Xbox 360"},
		{"xbox series", "Xbox Series X Controller", 17, 6, "Xbox One"},
		{"generic xbox 17 buttons", "Microsoft Controller", 17, 6, "Xbox 360"},
		{"generic xbox other count", "Microsoft Controller", 16, 6, "Xbox One"},
		{"joycon left", "Joy-Con (L)", 8, 2, "Joy-Con Left"},
		{"joycon right", "Joy-Con (R)", 8, 2, "Joy-Con Right"},
		{"joycon pair by name", "Joycon Controller", 18, 4, "Joy-Con"},
		{"switch pro by name", "Nintendo Switch Pro Controller", 18, 4, "Switch Pro Controller"},
		{"wii remote", "Wii Remote Controller", 9, 0, "Wii Remote"},
		{"valve alias", "Valve Software Gamepad", 14, 4, "Steam Controller"},
		{"8bitdo by name", "8BitDo SN30 Pro", 18, 4, "8BitDo Pro"},
		{"8bitdo zero by buttons", "8BitDo Gamepad", 12, 0, "8BitDo Zero"},

		// Unrecognized hardware keeps its raw id as the identity.
		{"unknown pad", "USB Gamepad Deluxe", 10, 2, "USB Gamepad Deluxe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Identify(tt.rawID, tt.buttons, tt.axes)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Identify() = %q, want nil", got.Name)
				}
				return
			}
			if got == nil {
				t.Fatalf("Identify() = nil, want %q", tt.want)
			}
			if got.Name != tt.want {
				t.Errorf("Identify() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestIdentify_Deterministic(t *testing.T) {
	r := newTestResolver(t)

	first := r.Identify("Sony Interactive Entertainment Controller", 18, 4)
	second := r.Identify("Sony Interactive Entertainment Controller", 18, 4)
	if first == nil || second == nil {
		t.Fatal("Identify() returned nil")
	}
	if first.Name != second.Name || first.Disambiguated != second.Disambiguated {
		t.Errorf("Identify() not deterministic: %+v vs %+v", first, second)
	}
}

func TestIdentify_Disambiguated(t *testing.T) {
	r := newTestResolver(t)

	got := r.Identify("DualSense Wireless Controller", 18, 4)
	if got == nil {
		t.Fatal("Identify() = nil")
	}
	if got.Disambiguated != "DualSense (18 buttons)" {
		t.Errorf("Disambiguated = %q, want DualSense (18 buttons)", got.Disambiguated)
	}

	got = r.Identify("USB Gamepad Deluxe", 10, 2)
	if got == nil {
		t.Fatal("Identify() = nil")
	}
	if got.Disambiguated != "USB Gamepad Deluxe (10 buttons)" {
		t.Errorf("Disambiguated = %q, want USB Gamepad Deluxe (10 buttons)", got.Disambiguated)
	}
}

func TestExtractCodes(t *testing.T) {
	tests := []struct {
		name        string
		rawID       string
		wantVendor  string
		wantProduct string
		wantOK      bool
	}{
		{"both tokens", "Pad (Vendor: 054C Product: 05c4)", "054c", "05c4", true},
		{"vendor only", "Pad (Vendor: 054c)", "", "", false},
		{"product only", "Pad (Product: 05c4)", "", "", false},
		{"no tokens", "Pad", "", "", false},
		{"short hex", "Vendor: 05 Product: 05c4", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vendor, product, ok := extractCodes(tt.rawID)
			if ok != tt.wantOK {
				t.Fatalf("extractCodes() ok = %v, want %v", ok, tt.wantOK)
			}
			if vendor != tt.wantVendor || product != tt.wantProduct {
				t.Errorf("extractCodes() = (%q, %q), want (%q, %q)", vendor, product, tt.wantVendor, tt.wantProduct)
			}
		})
	}
}

func TestVendorDB_Lookup(t *testing.T) {
	db, err := LoadBuiltinVendorDB()
	if err != nil {
		t.Fatalf("LoadBuiltinVendorDB() error = %v", err)
	}

	if name, ok := db.Lookup("054c", "09cc"); !ok || name != "DualShock 4" {
		t.Errorf("Lookup(054c, 09cc) = (%q, %v), want (DualShock 4, true)", name, ok)
	}
	if name, ok := db.Lookup("054C", "09CC"); !ok || name != "DualShock 4" {
		t.Errorf("Lookup() uppercase = (%q, %v), want (DualShock 4, true)", name, ok)
	}
	if name, ok := db.Lookup("054c", "05c5"); !ok || name != Invalid {
		t.Errorf("Lookup(054c, 05c5) = (%q, %v), want (invalid, true)", name, ok)
	}
	if _, ok := db.Lookup("ffff", "0001"); ok {
		t.Error("Lookup(ffff, 0001) ok = true, want false")
	}
}

func TestParseVendorDB_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"no devices", `{"vendors": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseVendorDB([]byte(tt.data)); err == nil {
				t.Error("ParseVendorDB() error = nil, want error")
			}
		})
	}
}
