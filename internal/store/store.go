// Package store persists binding profiles, associates detected
// controllers with them, and creates new profiles from templates.
package store

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rmrfslashbin/padbind/internal/catalog"
	"github.com/rmrfslashbin/padbind/internal/profile"
	"github.com/rmrfslashbin/padbind/pkg/models"
)

//go:embed data/profiles/*.json
var builtinProfiles embed.FS

// fallbackTemplate is used when neither the controller name nor the
// reported shape matches a built-in template.
const fallbackTemplate = "Standard Gamepad (18 Buttons 4 Axes)"

// associationsFile maps controller names to profile names. Absence of a
// key means unmapped.
const associationsFile = "controllers.json"

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a profile name into its persistence key.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// Store manages the on-disk profile set plus the built-in templates
// compiled into the binary. User profiles live under dir/profiles; the
// controller association record lives at dir/controllers.json.
type Store struct {
	dir      string
	cat      *catalog.Catalog
	logger   *slog.Logger
	defaults map[string]string // built-in profile name -> embedded path
}

// New opens a profile store rooted at dir, creating it if needed.
func New(dir string, cat *catalog.Catalog, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Join(dir, "profiles"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	s := &Store{dir: dir, cat: cat, logger: logger, defaults: make(map[string]string)}

	entries, err := fs.ReadDir(builtinProfiles, "data/profiles")
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in profiles: %w", err)
	}
	for _, entry := range entries {
		path := "data/profiles/" + entry.Name()
		data, err := builtinProfiles.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in profile %s: %w", entry.Name(), err)
		}
		doc, err := profile.ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("built-in profile %s: %w", entry.Name(), err)
		}
		s.defaults[doc.Name] = path
	}
	return s, nil
}

func (s *Store) profilePath(name string) string {
	return filepath.Join(s.dir, "profiles", Slugify(name)+".json")
}

// IsBuiltin reports whether name is a built-in default profile.
func (s *Store) IsBuiltin(name string) bool {
	_, ok := s.defaults[name]
	return ok
}

// UserProfileNames returns the names of all valid user profiles, sorted.
// Invalid profile files are skipped, not fatal.
func (s *Store) UserProfileNames() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "profiles"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, "profiles", entry.Name()))
		if err != nil {
			s.logger.Warn("failed to read profile file", "file", entry.Name(), "error", err)
			continue
		}
		doc, err := profile.ParseDocument(data)
		if err != nil {
			s.logger.Debug("skipping invalid profile file", "file", entry.Name(), "error", err)
			continue
		}
		names = append(names, doc.Name)
	}
	sort.Strings(names)
	return names, nil
}

// ProfileNames returns user profile names, plus built-in names when
// includeDefaults is set. The result is sorted.
func (s *Store) ProfileNames(includeDefaults bool) ([]string, error) {
	names, err := s.UserProfileNames()
	if err != nil {
		return nil, err
	}
	if includeDefaults {
		for name := range s.defaults {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	return names, nil
}

// LoadProfile loads a profile by name, preferring a user profile over a
// built-in of the same name.
func (s *Store) LoadProfile(name string) (*profile.Profile, error) {
	doc, err := s.loadDocument(name)
	if err != nil {
		return nil, err
	}
	return profile.New(doc, s.cat)
}

func (s *Store) loadDocument(name string) (profile.Document, error) {
	if data, err := os.ReadFile(s.profilePath(name)); err == nil {
		return profile.ParseDocument(data)
	}
	if path, ok := s.defaults[name]; ok {
		data, err := builtinProfiles.ReadFile(path)
		if err != nil {
			return profile.Document{}, fmt.Errorf("failed to read built-in profile: %w", err)
		}
		return profile.ParseDocument(data)
	}
	return profile.Document{}, fmt.Errorf("profile %q: %w", name, models.ErrNotFound)
}

// SaveProfile writes a profile to the user profile directory. Last writer
// wins; profile files are not locked.
func (s *Store) SaveProfile(p *profile.Profile) error {
	data, err := p.Document().Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.profilePath(p.Name()), data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// CreateProfile copies an existing profile to a new name. The new name
// must not collide with any user or built-in profile.
func (s *Store) CreateProfile(template, newName string) (*profile.Profile, error) {
	if err := s.checkConflict(newName); err != nil {
		return nil, err
	}
	return s.copyProfile(template, newName)
}

func (s *Store) checkConflict(name string) error {
	if s.IsBuiltin(name) {
		return fmt.Errorf("profile name %q conflicts with a built-in profile: %w", name, models.ErrConflict)
	}
	if _, err := os.Stat(s.profilePath(name)); err == nil {
		return fmt.Errorf("profile name %q already in use: %w", name, models.ErrConflict)
	}
	return nil
}

// copyProfile duplicates a profile under a new name and saves it. Used
// both by CreateProfile and by the matcher, which has already decided the
// target name is free.
func (s *Store) copyProfile(name, newName string) (*profile.Profile, error) {
	p, err := s.LoadProfile(name)
	if err != nil {
		return nil, err
	}
	p.SetName(newName)
	if err := s.SaveProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}

// RenameProfile renames a user profile on disk.
func (s *Store) RenameProfile(name, newName string) error {
	if s.IsBuiltin(name) {
		return fmt.Errorf("cannot rename %q: %w", name, models.ErrBuiltin)
	}
	if err := s.checkConflict(newName); err != nil {
		return err
	}
	p, err := s.LoadProfile(name)
	if err != nil {
		return err
	}
	p.SetName(newName)
	if err := s.SaveProfile(p); err != nil {
		return err
	}
	if err := os.Remove(s.profilePath(name)); err != nil {
		return fmt.Errorf("failed to remove old profile: %w", err)
	}
	return nil
}

// DeleteProfile removes a user profile. Deleting a built-in profile is a
// logic error and always fails loudly.
func (s *Store) DeleteProfile(name string) error {
	path := s.profilePath(name)
	if _, err := os.Stat(path); err == nil {
		s.logger.Debug("deleting profile", "name", name, "path", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		return nil
	}
	if s.IsBuiltin(name) {
		return fmt.Errorf("cannot delete %q: %w", name, models.ErrBuiltin)
	}
	return fmt.Errorf("profile %q: %w", name, models.ErrNotFound)
}

// FindProfile returns the profile name for a detected controller,
// creating one lazily from a template when no match exists. Every
// detected controller ends up with exactly one profile; calling this
// twice for the same controller is idempotent.
func (s *Store) FindProfile(controller string, buttons, axes int) (string, error) {
	s.logger.Debug("finding profile", "controller", controller, "buttons", buttons, "axes", axes)

	assoc, err := s.loadAssociations()
	if err != nil {
		return "", err
	}
	userProfiles, err := s.UserProfileNames()
	if err != nil {
		return "", err
	}

	if name, ok := assoc[controller]; ok {
		if containsName(userProfiles, name) {
			s.logger.Debug("found associated profile", "controller", controller, "profile", name)
			return name, nil
		}
		// Stale association: the profile was deleted or renamed.
		delete(assoc, controller)
		if err := s.saveAssociations(assoc); err != nil {
			return "", err
		}
		s.logger.Debug("cleared stale association", "controller", controller, "profile", name)
	}

	if containsName(userProfiles, controller) {
		if err := s.setAssociation(controller, controller); err != nil {
			return "", err
		}
		return controller, nil
	}

	template := fallbackTemplate
	if s.IsBuiltin(controller) {
		template = controller
	} else if shaped := fmt.Sprintf("Standard Gamepad (%d Buttons %d Axes)", buttons, axes); s.IsBuiltin(shaped) {
		template = shaped
	}

	p, err := s.copyProfile(template, controller)
	if err != nil {
		return "", err
	}
	if err := s.setAssociation(controller, p.Name()); err != nil {
		return "", err
	}
	if s.cat.Has(controller) {
		ctrl, err := catalog.NewController(s.cat, controller)
		if err != nil {
			return "", err
		}
		p.BindController(ctrl)
		if err := s.SaveProfile(p); err != nil {
			return "", err
		}
	}
	s.logger.Info("created profile", "controller", controller, "template", template)
	return p.Name(), nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// loadAssociations reads the controller association record. A missing
// file means no controller is mapped yet.
func (s *Store) loadAssociations() (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, associationsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read controller associations: %w", err)
	}
	assoc := map[string]string{}
	if err := json.Unmarshal(data, &assoc); err != nil {
		return nil, fmt.Errorf("failed to parse controller associations: %w", err)
	}
	return assoc, nil
}

func (s *Store) saveAssociations(assoc map[string]string) error {
	data, err := json.MarshalIndent(assoc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal controller associations: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, associationsFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write controller associations: %w", err)
	}
	return nil
}

func (s *Store) setAssociation(controller, profileName string) error {
	assoc, err := s.loadAssociations()
	if err != nil {
		return err
	}
	assoc[controller] = profileName
	return s.saveAssociations(assoc)
}
