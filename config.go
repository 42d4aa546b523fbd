package paperdoll

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Config holds the settings a host usually keeps in a paperdoll.ini file:
//
//	debug = false
//
//	[assets]
//	roots = assets, ../shared/assets
//	default_roots = true
//
//	[grid]
//	columns = 8
//	rows = 8
//	cell_width = 32
//	cell_height = 32
type Config struct {
	// Roots are scanned in order; the first root to provide a file wins.
	Roots []string
	// DefaultRoots appends DefaultRoots(cwd) after Roots.
	DefaultRoots bool
	// Debug logs scan statistics after every publish.
	Debug bool
	Grid  Grid
}

// DefaultConfig scans only the default roots with the default grid.
func DefaultConfig() Config {
	return Config{DefaultRoots: true, Grid: DefaultGrid}
}

// LoadConfig reads an INI file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("paperdoll: read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("paperdoll: config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses INI data. Keys that are absent keep their defaults;
// grid dimensions are normalised.
func ParseConfig(data []byte) (Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	cfg.Debug = f.Section("").Key("debug").MustBool(cfg.Debug)

	assets := f.Section("assets")
	if assets.HasKey("roots") {
		cfg.Roots = nil
		for _, r := range assets.Key("roots").Strings(",") {
			if r != "" {
				cfg.Roots = append(cfg.Roots, r)
			}
		}
	}
	cfg.DefaultRoots = assets.Key("default_roots").MustBool(cfg.DefaultRoots)

	grid := f.Section("grid")
	cfg.Grid = Grid{
		Columns:    grid.Key("columns").MustInt(cfg.Grid.Columns),
		Rows:       grid.Key("rows").MustInt(cfg.Grid.Rows),
		CellWidth:  grid.Key("cell_width").MustInt(cfg.Grid.CellWidth),
		CellHeight: grid.Key("cell_height").MustInt(cfg.Grid.CellHeight),
		OffsetX:    grid.Key("offset_x").MustInt(cfg.Grid.OffsetX),
		OffsetY:    grid.Key("offset_y").MustInt(cfg.Grid.OffsetY),
	}.Normalize()
	return cfg, nil
}

// RootsFor returns the roots to scan from cwd: the configured roots (made
// absolute against cwd) followed by the default roots when enabled.
func (c Config) RootsFor(cwd string) []string {
	roots := make([]string, 0, len(c.Roots))
	for _, r := range c.Roots {
		if !filepath.IsAbs(r) {
			r = filepath.Join(cwd, r)
		}
		roots = append(roots, filepath.Clean(r))
	}
	if c.DefaultRoots {
		roots = append(roots, DefaultRoots(cwd)...)
	}
	return dedupeStrings(roots)
}

// AssetRoots is RootsFor the process working directory.
func (c Config) AssetRoots() []string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return c.RootsFor(cwd)
}
