// Package prefs handles user preference persistence. Preferences are
// stored as TOML next to the credential store in the data directory.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds the user preferences worth keeping between runs.
type Prefs struct {
	// Series is the last-viewed chart series (plato, temperature, voltage).
	Series string `toml:"series"`
}

const (
	fileName      = "prefs.toml"
	defaultSeries = "plato"
)

// Path returns the preferences file path inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, fileName)
}

// Load reads preferences from path, falling back to defaults if the file
// is missing or unreadable. Preferences are never load-bearing, so every
// failure degrades to defaults.
func Load(path string) Prefs {
	prefs := Prefs{Series: defaultSeries}

	raw, err := os.ReadFile(path)
	if err != nil {
		// Missing or unreadable file both degrade to defaults.
		return prefs
	}

	if err := toml.Unmarshal(raw, &prefs); err != nil {
		return Prefs{Series: defaultSeries}
	}

	if strings.TrimSpace(prefs.Series) == "" {
		prefs.Series = defaultSeries
	}

	return prefs
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}
