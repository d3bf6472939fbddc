package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmrfslashbin/padbind/internal/profile"
)

// Legacy profiles wrapped each state's bindings in a single-element list
// and used the removed "mod" action for the quick-select modifier.
// Conversion flattens the wrapper, rebinds "mod" as "Toggle Quick Select"
// at the "all" layer, and rebuilds everything else from a freshly matched
// template.

// ConvertProfiles migrates every user profile still in the legacy
// format. One bad profile is logged and skipped; it never aborts
// conversion of the others.
func (s *Store) ConvertProfiles() error {
	entries, err := os.ReadDir(filepath.Join(s.dir, "profiles"))
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, "profiles", entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("failed to read profile for conversion", "file", entry.Name(), "error", err)
			continue
		}
		if _, err := profile.ParseDocument(data); err == nil {
			continue // already current format
		}
		s.logger.Info("converting legacy profile", "file", entry.Name())
		if err := s.convertFile(path, data); err != nil {
			s.logger.Warn("failed to convert profile", "file", entry.Name(), "error", err)
		}
	}
	return nil
}

// ConvertProfile converts a single legacy profile by name.
func (s *Store) ConvertProfile(name string) error {
	path := s.profilePath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profile %q: %w", name, err)
	}
	if _, err := profile.ParseDocument(data); err == nil {
		s.logger.Debug("profile already valid", "name", name)
		return nil
	}
	return s.convertFile(path, data)
}

func (s *Store) convertFile(path string, data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("legacy profile is not valid JSON: %w", err)
	}

	name, _ := raw["name"].(string)
	if name == "" {
		return fmt.Errorf("legacy profile has no name")
	}
	controller, _ := raw["controller"].(string)
	buttons, axes, err := legacySize(raw["size"])
	if err != nil {
		return err
	}
	rawBindings, ok := raw["bindings"].(map[string]any)
	if !ok {
		return fmt.Errorf("legacy profile has no bindings object")
	}

	flattened, err := flattenBindings(rawBindings)
	if err != nil {
		return err
	}
	rebindQuickSelect(flattened)

	// Keep the legacy document recoverable.
	if err := os.WriteFile(path+".bak", data, 0644); err != nil {
		return fmt.Errorf("failed to back up legacy profile: %w", err)
	}

	templateName, err := s.FindProfile(controller, buttons, axes)
	if err != nil {
		return err
	}
	template, err := s.LoadProfile(templateName)
	if err != nil {
		return err
	}

	doc := template.Document()
	doc.Name = name
	doc.Size = [2]int{buttons, axes}
	doc.Bindings = flattened

	converted, err := profile.New(doc, s.cat)
	if err != nil {
		return err
	}
	if err := s.SaveProfile(converted); err != nil {
		return err
	}
	s.logger.Info("converted legacy profile", "name", name)
	return nil
}

func legacySize(v any) (buttons, axes int, err error) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return 0, 0, fmt.Errorf("legacy profile has no size pair")
	}
	b, bok := pair[0].(float64)
	a, aok := pair[1].(float64)
	if !bok || !aok {
		return 0, 0, fmt.Errorf("legacy profile size is not numeric")
	}
	return int(b), int(a), nil
}

// flattenBindings unwraps the legacy list-wrapped per-state binding maps.
// Already-flat maps pass through unchanged.
func flattenBindings(rawBindings map[string]any) (map[string]map[string]string, error) {
	flattened := make(map[string]map[string]string, len(rawBindings))
	for state, value := range rawBindings {
		var inner map[string]any
		switch v := value.(type) {
		case []any:
			if len(v) == 0 {
				continue
			}
			m, ok := v[0].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("state %q wraps a non-object value", state)
			}
			inner = m
		case map[string]any:
			inner = v
		default:
			return nil, fmt.Errorf("state %q has unexpected binding shape", state)
		}
		flattened[state] = make(map[string]string, len(inner))
		for key, action := range inner {
			text, _ := action.(string)
			flattened[state][key] = text
		}
	}
	return flattened, nil
}

// rebindQuickSelect replaces the removed "mod" action with "Toggle Quick
// Select" bound once at the "all" layer for the same button index.
func rebindQuickSelect(bindings map[string]map[string]string) {
	modKey := ""
	for _, stateBindings := range bindings {
		for key, action := range stateBindings {
			if action == "mod" {
				modKey = key
				stateBindings[key] = ""
			}
		}
	}
	if modKey == "" {
		return
	}
	if bindings["all"] == nil {
		bindings["all"] = make(map[string]string)
	}
	bindings["all"][modKey] = "Toggle Quick Select"
}
