package profile

import (
	"errors"
	"testing"

	"github.com/rmrfslashbin/padbind/internal/catalog"
	"github.com/rmrfslashbin/padbind/pkg/models"
)

func testDocument() Document {
	return Document{
		Name:       "Test Profile",
		Size:       [2]int{18, 4},
		Controller: "DualShock 4",
		QuickSelect: map[string]any{
			"actions": []any{"Undo", "Sync"},
		},
		Bindings: map[string]map[string]string{
			"all": {
				"0": "Enter",
				"1": "Back",
			},
			"review": {
				"4": "Flag Card",
			},
			"question": {
				"0": "Show Answer",
			},
			"answer": {
				"0": "Good",
			},
		},
		AxesBindings: map[string]string{
			"0": "Cursor Horizontal",
		},
	}
}

func newTestProfile(t *testing.T) *Profile {
	t.Helper()
	cat, err := catalog.LoadBuiltin()
	if err != nil {
		t.Fatalf("catalog.LoadBuiltin() error = %v", err)
	}
	p, err := New(testDocument(), cat)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestGet_Layering(t *testing.T) {
	p := newTestProfile(t)

	tests := []struct {
		name   string
		state  models.State
		button int
		want   string
	}{
		{"exact binding wins", models.StateQuestion, 0, "Show Answer"},
		{"answer exact beats review", models.StateAnswer, 0, "Good"},
		{"question inherits review", models.StateQuestion, 4, "Flag Card"},
		{"answer inherits review", models.StateAnswer, 4, "Flag Card"},
		{"concrete state skips review", models.StateDeckBrowser, 4, ""},
		{"everything inherits all", models.StateDeckBrowser, 1, "Back"},
		{"question inherits all", models.StateQuestion, 1, "Back"},
		{"unmapped resolves empty", models.StateOverview, 9, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Get(tt.state, tt.button); got != tt.want {
				t.Errorf("Get(%s, %d) = %q, want %q", tt.state, tt.button, got, tt.want)
			}
		})
	}
}

func TestNew_InjectsFocusBinding(t *testing.T) {
	cat, err := catalog.LoadBuiltin()
	if err != nil {
		t.Fatalf("catalog.LoadBuiltin() error = %v", err)
	}

	// Even a document that binds something else at (NoFocus, 0) ends up
	// with the focus action there.
	doc := testDocument()
	doc.Bindings["NoFocus"] = map[string]string{"0": "Enter"}
	p, err := New(doc, cat)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := p.Get(models.StateNoFocus, 0); got != FocusAction {
		t.Errorf("Get(NoFocus, 0) = %q, want %q", got, FocusAction)
	}
}

func TestSet(t *testing.T) {
	p := newTestProfile(t)

	if err := p.Set(models.StateOverview, 2, "Study"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := p.Get(models.StateOverview, 2); got != "Study" {
		t.Errorf("Get() after Set = %q, want Study", got)
	}
}

func TestSet_InvalidState(t *testing.T) {
	p := newTestProfile(t)

	err := p.Set(models.State("editing"), 0, "Enter")
	if !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("Set() error = %v, want ErrInvalidState", err)
	}
	// The failed write must not leave a partial binding behind.
	if p.bindings["editing"] != nil {
		t.Error("failed Set() created a state layer")
	}
}

func TestRemove_ReexposesInherited(t *testing.T) {
	p := newTestProfile(t)

	// question/0 is explicitly "Show Answer"; removing it falls back to
	// the review layer, then all.
	p.Remove(models.StateQuestion, 0)
	if got := p.Get(models.StateQuestion, 0); got != "Enter" {
		t.Errorf("Get(question, 0) after Remove = %q, want Enter", got)
	}
}

func TestInheritedBindings(t *testing.T) {
	p := newTestProfile(t)

	inherited := p.InheritedBindings()
	for _, state := range models.ConcreteStates() {
		if _, ok := inherited[state]; !ok {
			t.Errorf("InheritedBindings() missing state %s", state)
		}
	}
	if _, ok := inherited[models.StateAll]; ok {
		t.Error("InheritedBindings() includes the all layer")
	}
	if _, ok := inherited[models.StateReview]; ok {
		t.Error("InheritedBindings() includes the review layer")
	}

	if got := inherited[models.StateQuestion][4]; got != "Flag Card" {
		t.Errorf("inherited question/4 = %q, want Flag Card", got)
	}
	if got := inherited[models.StateDeckBrowser][0]; got != "Enter" {
		t.Errorf("inherited deckBrowser/0 = %q, want Enter", got)
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	cat, err := catalog.LoadBuiltin()
	if err != nil {
		t.Fatalf("catalog.LoadBuiltin() error = %v", err)
	}

	p := newTestProfile(t)
	doc := p.Document()

	if doc.Name != "Test Profile" {
		t.Errorf("Document() name = %q, want Test Profile", doc.Name)
	}
	if doc.Size != [2]int{18, 4} {
		t.Errorf("Document() size = %v, want [18 4]", doc.Size)
	}
	if doc.Bindings["NoFocus"]["0"] != FocusAction {
		t.Errorf("Document() NoFocus/0 = %q, want %q", doc.Bindings["NoFocus"]["0"], FocusAction)
	}

	again, err := New(doc, cat)
	if err != nil {
		t.Fatalf("New() from round-tripped document error = %v", err)
	}
	for _, state := range models.BindingStates() {
		for button := 0; button < 18; button++ {
			if got, want := again.Get(state, button), p.Get(state, button); got != want {
				t.Errorf("round trip Get(%s, %d) = %q, want %q", state, button, got, want)
			}
		}
	}
	if got := again.AxisAction(0); got != "Cursor Horizontal" {
		t.Errorf("round trip AxisAction(0) = %q, want Cursor Horizontal", got)
	}
}

func TestCopy_Independent(t *testing.T) {
	p := newTestProfile(t)

	dup, err := p.Copy()
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if err := dup.Set(models.StateAll, 0, "Sync"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := p.Get(models.StateAll, 0); got != "Enter" {
		t.Errorf("original Get(all, 0) = %q after modifying copy, want Enter", got)
	}
	dup.QuickSelect()["actions"] = []any{}
	if actions := p.QuickSelect()["actions"].([]any); len(actions) != 2 {
		t.Errorf("original quick select mutated through copy: %v", actions)
	}
}

func TestNew_UnresolvedController(t *testing.T) {
	cat, err := catalog.LoadBuiltin()
	if err != nil {
		t.Fatalf("catalog.LoadBuiltin() error = %v", err)
	}

	doc := testDocument()
	doc.Controller = "Mystery Pad"
	p, err := New(doc, cat)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := p.Controller(); ok {
		t.Error("Controller() resolved for a name missing from the catalog")
	}
	if got := p.ControllerName(); got != "Mystery Pad" {
		t.Errorf("ControllerName() = %q, want Mystery Pad", got)
	}
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		malformed bool
	}{
		{"not json", `{{{`, true},
		{"missing keys", `{"name": "X"}`, true},
		{
			"legacy list-wrapped bindings",
			`{"name": "X", "size": [18, 4], "controller": "", "quick_select": {},
			  "bindings": {"all": [{"0": "Enter"}]}, "axes_bindings": {}}`,
			true,
		},
		{
			"unknown state",
			`{"name": "X", "size": [18, 4], "controller": "", "quick_select": {},
			  "bindings": {"editing": {"0": "Enter"}}, "axes_bindings": {}}`,
			true,
		},
		{
			"non-integer button key",
			`{"name": "X", "size": [18, 4], "controller": "", "quick_select": {},
			  "bindings": {"all": {"zero": "Enter"}}, "axes_bindings": {}}`,
			true,
		},
		{
			"negative size",
			`{"name": "X", "size": [-1, 4], "controller": "", "quick_select": {},
			  "bindings": {}, "axes_bindings": {}}`,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data))
			if err == nil {
				t.Fatal("ParseDocument() error = nil, want error")
			}
			if tt.malformed && !errors.Is(err, models.ErrMalformed) {
				t.Errorf("ParseDocument() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	doc := Document{
		Size: [2]int{-1, 0},
		Bindings: map[string]map[string]string{
			"editing": {"0": "Enter"},
			"all":     {"zero": "Enter"},
		},
	}
	err := doc.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error type = %T, want *models.ValidationError", err)
	}
	// empty name, negative size, unknown state, bad button key
	if len(verr.Violations) != 4 {
		t.Errorf("Validate() violations = %d (%v), want 4", len(verr.Violations), verr.Violations)
	}
}
