// Package prefs persists dashboard user preferences.
// Preferences are stored in ~/.config/churrasco/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/churrascode/churrasco/internal/atomicfile"
	"github.com/churrascode/churrasco/internal/config"
	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
	// Filter is the last roster status filter ("Todos", "Com pagamento",
	// "Sem pagamento"). Empty means all.
	Filter string `toml:"filter,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/churrasco/prefs.toml"
	defaultTheme     = "Brasa"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// DefaultTheme returns the theme used when none is stored.
func DefaultTheme() string {
	return defaultTheme
}

// Load reads preferences from the given path. A missing file yields the
// defaults and no error. An unreadable or malformed file also yields the
// defaults, together with an error saying why it was ignored.
func Load(path string) (Prefs, error) {
	defaults := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults, fmt.Errorf("resolve path: %w", err)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("read prefs: %w", err)
	}
	prefs := defaults
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return defaults, fmt.Errorf("parse %s: %w", resolved, err)
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	prefs.Filter = strings.TrimSpace(prefs.Filter)
	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
// The file is replaced atomically.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := atomicfile.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
