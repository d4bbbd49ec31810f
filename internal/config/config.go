// Package config loads the CLI/server's optional TOML defaults file,
// mirroring the teacher's toml.Unmarshal-into-tagged-struct convention.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hghwng/cfgtool/internal/automaton"
	"github.com/hghwng/cfgtool/internal/cfgerrors"
)

// Config holds the optional TOML defaults. cfgtool reads only
// DotOutputDir, the directory DOT dumps are written to (empty means the
// working directory); DefaultVariant and Color are loaded but no command
// reads them, and no command-line flag sets any of these keys.
type Config struct {
	DefaultVariant string `toml:"default_variant"`
	DotOutputDir   string `toml:"dot_output_dir"`
	Color          bool   `toml:"color"`
}

// Load reads and unmarshals the TOML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, cfgerrors.WrapLoad(err, "reading config file "+path)
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, cfgerrors.WrapLoad(err, "parsing config file "+path)
	}
	return c, nil
}

// Variant resolves the configured default variant name to an
// automaton.Variant, falling back to LR1 if unset or unrecognized.
func (c Config) Variant() automaton.Variant {
	switch c.DefaultVariant {
	case "lr0":
		return automaton.LR0
	case "slr1":
		return automaton.SLR1
	case "lalr1":
		return automaton.LALR1
	case "lr1", "":
		return automaton.LR1
	default:
		return automaton.LR1
	}
}
