package paperdoll

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Skip records a file or directory left out of a scan.
type Skip struct {
	Path string
	Err  error
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// ScanReport summarises a part scan. Skips never abort a scan.
type ScanReport struct {
	Roots   []string // resolved roots actually walked, in precedence order
	Files   int      // candidate files examined
	Parts   int
	Skipped []Skip
}

// SkipMessages returns the skips as display strings.
func (r *ScanReport) SkipMessages() []string {
	out := make([]string, len(r.Skipped))
	for i, s := range r.Skipped {
		out[i] = s.String()
	}
	return out
}

// Empty reports whether the scan found no parts at all.
func (r *ScanReport) Empty() bool {
	return r.Parts == 0
}

// DefaultRoots returns the candidate asset roots for a working directory:
// <cwd>/assets, <cwd>/asset_hander/assets, then <ancestor>/assets for each
// ancestor. Earlier roots take precedence.
func DefaultRoots(cwd string) []string {
	cwd = filepath.Clean(cwd)
	roots := []string{
		filepath.Join(cwd, "assets"),
		filepath.Join(cwd, "asset_hander", "assets"),
	}
	for dir := cwd; ; {
		roots = append(roots, filepath.Join(dir, "assets"))
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dedupeStrings(roots)
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// resolveRoots makes roots absolute, resolves symlinks and drops roots that
// do not exist or repeat an earlier one.
func resolveRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	seen := make(map[string]bool, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			logger.Debug("asset root unavailable", zap.String("root", root), zap.Error(err))
			continue
		}
		info, err := os.Stat(resolved)
		if err != nil || !info.IsDir() {
			continue
		}
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		out = append(out, resolved)
	}
	return out
}

// walkRoots visits every regular file under each root in lexical order,
// including symlinks to files inside the same root. rel is root-relative with
// forward slashes. Unreadable directories are reported through onErr and
// skipped.
func walkRoots(roots []string, visit func(root, rel, name string), onErr func(path string, err error)) {
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				onErr(path, err)
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			switch {
			case d.IsDir():
				return nil
			case d.Type()&fs.ModeSymlink != 0:
				if !fileWithinRoot(root, path) {
					return nil
				}
			case !d.Type().IsRegular():
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				onErr(path, err)
				return nil
			}
			visit(root, filepath.ToSlash(rel), d.Name())
			return nil
		})
	}
}

// fileWithinRoot reports whether the symlink at path resolves to a regular
// file inside root. Directory links are never followed; a target inside root
// is walked anyway.
func fileWithinRoot(root, path string) bool {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && info.Mode().IsRegular()
}

// ScanParts walks roots in order and builds a part catalog. The first root
// to contain a given root-relative path wins; within the surviving files the
// first occurrence of a part key wins. Malformed names and I/O failures are
// recorded in the report.
func ScanParts(roots []string) (*PartCatalog, ScanReport) {
	report := ScanReport{Roots: resolveRoots(roots)}
	var parts []PartDef
	seenPaths := make(map[string]bool)
	seenKeys := make(map[string]string)

	walkRoots(report.Roots, func(root, rel, name string) {
		if !strings.HasPrefix(name, baseToken+"_") {
			return
		}
		report.Files++
		if seenPaths[rel] {
			return
		}
		seenPaths[rel] = true
		full := filepath.Join(root, filepath.FromSlash(rel))
		id, err := ParsePartFilename(name)
		if err != nil {
			// The skip path already names the file.
			var pe *ParseError
			if errors.As(err, &pe) {
				err = &ParseError{Reason: pe.Reason}
			}
			report.Skipped = append(report.Skipped, Skip{Path: full, Err: err})
			logger.Debug("skipping part", zap.String("path", full), zap.Error(err))
			return
		}

		def := NewPartDef(id, root, rel)
		if first, dup := seenKeys[def.Key]; dup {
			err := fmt.Errorf("duplicate part key %s (already provided by %s)", def.Key, first)
			report.Skipped = append(report.Skipped, Skip{Path: full, Err: err})
			return
		}
		seenKeys[def.Key] = full
		parts = append(parts, def)
	}, func(path string, err error) {
		report.Skipped = append(report.Skipped, Skip{Path: path, Err: err})
	})

	report.Parts = len(parts)
	catalog := BuildCatalog(parts)
	logger.Info("part scan complete",
		zap.Int("parts", report.Parts),
		zap.Int("skipped", len(report.Skipped)),
		zap.Strings("roots", report.Roots))
	return catalog, report
}

// ScanPalettes walks roots in order and collects every png under a
// "palettes" folder. The first root to contain a given relative path wins.
func ScanPalettes(roots []string) *PaletteCatalog {
	var defs []PaletteDef
	seen := make(map[string]bool)
	walkRoots(resolveRoots(roots), func(root, rel, name string) {
		if !strings.EqualFold(filepath.Ext(name), ".png") {
			return
		}
		if !IsPaletteAssetPath(rel) || seen[rel] {
			return
		}
		seen[rel] = true
		defs = append(defs, PaletteDef{
			Key:       PaletteKeyFromAssetPath(rel),
			ImagePath: rel,
			Root:      root,
		})
	}, func(path string, err error) {
		logger.Debug("palette scan skip", zap.String("path", path), zap.Error(err))
	})
	return BuildPaletteCatalog(defs)
}
