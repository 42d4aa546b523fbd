package paperdoll

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writePart(t *testing.T, root, rel string) {
	t.Helper()
	writeTestPNG(t, filepath.Join(root, filepath.FromSlash(rel)), solidImage(4, 4, rgb(1, 2, 3)))
}

func TestScanParts_SkipsMalformed(t *testing.T) {
	root := t.TempDir()
	writePart(t, root, "farmer/fbas_01body_human_00.png")
	writePart(t, root, "farmer/fbas_04lwr1_pants_00a.png")
	writePart(t, root, "farmer/fbas_01body_human_01a.png")
	writePart(t, root, "farmer/fbas_99nope_x_00.png")
	writePart(t, root, "farmer/readme.png")
	writeTestFile(t, filepath.Join(root, "farmer", "fbas_notes.txt"), "x")

	c, report := ScanParts([]string{root})
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if report.Parts != 2 {
		t.Errorf("report.Parts = %d, want 2", report.Parts)
	}
	if len(report.Skipped) != 3 {
		t.Fatalf("Skipped = %v, want 3 entries", report.SkipMessages())
	}
	for _, s := range report.Skipped {
		if s.Err == nil || s.Path == "" {
			t.Errorf("skip missing detail: %+v", s)
		}
	}
	if report.Empty() {
		t.Error("report should not be empty")
	}
}

func TestScanParts_FirstRootWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writePart(t, first, "farmer/fbas_01body_human_00.png")
	writePart(t, second, "farmer/fbas_01body_human_00.png")
	writePart(t, second, "farmer/fbas_13hair_bob_00.png")

	c, report := ScanParts([]string{first, second})
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if len(report.Skipped) != 0 {
		t.Errorf("same relative path should be shadowed silently, got %v", report.SkipMessages())
	}
	i := mustIndex(t, c, "01body/human/00")
	p, _ := c.Part(i)
	resolved, _ := filepath.EvalSymlinks(first)
	if p.Root != resolved {
		t.Errorf("Root = %q, want %q", p.Root, resolved)
	}
}

func TestScanParts_ShadowedMalformedReportedOnce(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writePart(t, first, "farmer/fbas_99xx_thing_00.png")
	writePart(t, second, "farmer/fbas_99xx_thing_00.png")

	_, report := ScanParts([]string{first, second})
	if len(report.Skipped) != 1 {
		t.Errorf("Skipped = %v, want 1 entry", report.SkipMessages())
	}
}

func TestScanParts_SkipMessageNamesFileOnce(t *testing.T) {
	root := t.TempDir()
	writePart(t, root, "fbas_99xx_thing_00.png")

	_, report := ScanParts([]string{root})
	msgs := report.SkipMessages()
	if len(msgs) != 1 {
		t.Fatalf("Skipped = %v, want 1 entry", msgs)
	}
	if n := strings.Count(msgs[0], "fbas_99xx_thing_00.png"); n != 1 {
		t.Errorf("message %q names the file %d times, want 1", msgs[0], n)
	}
	if !strings.HasSuffix(msgs[0], ": unknown layer code: 99xx") {
		t.Errorf("message = %q", msgs[0])
	}
}

func TestScanParts_Symlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writePart(t, root, "sheets/cap.png")
	writePart(t, outside, "hair.png")
	writePart(t, outside, "fbas_01body_human_00.png")
	if err := os.MkdirAll(filepath.Join(root, "farmer"), 0o755); err != nil {
		t.Fatal(err)
	}

	links := map[string]string{
		filepath.Join(root, "farmer", "fbas_14head_cap_01.png"): filepath.Join(root, "sheets", "cap.png"),
		filepath.Join(root, "farmer", "fbas_13hair_bob_00.png"): filepath.Join(outside, "hair.png"),
		filepath.Join(root, "elsewhere"):                        outside,
	}
	for link, target := range links {
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	c, report := ScanParts([]string{root})
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want only the in-root link", c.Len())
	}
	mustIndex(t, c, "14head/cap/01")
	if len(report.Skipped) != 0 {
		t.Errorf("Skipped = %v", report.SkipMessages())
	}
}

func TestScanParts_DuplicateKeyIsSkipped(t *testing.T) {
	root := t.TempDir()
	writePart(t, root, "a/fbas_01body_human_00.png")
	writePart(t, root, "b/fbas_01body_human_00.png")

	c, report := ScanParts([]string{root})
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if len(report.Skipped) != 1 || !strings.Contains(report.Skipped[0].Err.Error(), "duplicate") {
		t.Errorf("Skipped = %v", report.SkipMessages())
	}
	p, _ := c.Part(0)
	if p.ImagePath != "a/fbas_01body_human_00.png" {
		t.Errorf("ImagePath = %q, want the lexically first file", p.ImagePath)
	}
}

func TestScanParts_Deterministic(t *testing.T) {
	root := t.TempDir()
	for _, n := range []string{
		"z/fbas_05shrt_tunic_00b.png",
		"a/fbas_05shrt_apron_00a.png",
		"m/fbas_13hair_bob_00.png",
	} {
		writePart(t, root, n)
	}
	a, _ := ScanParts([]string{root})
	b, _ := ScanParts([]string{root})
	if !slices.EqualFunc(a.Parts(), b.Parts(), func(x, y PartDef) bool { return x.Key == y.Key }) {
		t.Error("two scans of the same tree disagree")
	}
}

func TestScanParts_MissingRoots(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	c, report := ScanParts([]string{missing})
	if c.Len() != 0 || !report.Empty() {
		t.Error("missing root should yield an empty catalog")
	}
	if len(report.Roots) != 0 {
		t.Errorf("Roots = %v, want none", report.Roots)
	}
}

func TestScanParts_DuplicateRootScannedOnce(t *testing.T) {
	root := t.TempDir()
	writePart(t, root, "fbas_01body_human_00.png")
	c, report := ScanParts([]string{root, root + string(os.PathSeparator)})
	if c.Len() != 1 || len(report.Skipped) != 0 {
		t.Errorf("Len = %d, skipped = %v", c.Len(), report.SkipMessages())
	}
	if len(report.Roots) != 1 {
		t.Errorf("Roots = %v, want 1", report.Roots)
	}
}

func TestScanPalettes(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writePart(t, first, "palettes/mana seed 3-color ramps.png")
	writePart(t, first, "Palettes/base ramps/3-color base ramp (00a).png")
	writePart(t, second, "palettes/mana seed 3-color ramps.png")
	writePart(t, second, "farmer/palettes/extra.PNG")
	writePart(t, second, "farmer/fbas_01body_human_00.png")
	writeTestFile(t, filepath.Join(second, "palettes", "notes.txt"), "x")

	pc := ScanPalettes([]string{first, second})
	var keys []string
	for _, p := range pc.Palettes() {
		keys = append(keys, p.Key)
	}
	want := []string{
		"Palettes/base ramps/3-color base ramp (00a)",
		"farmer/palettes/extra",
		"palettes/mana seed 3-color ramps",
	}
	if !slices.Equal(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
	def, ok := pc.FindByTail(seed3Ramps)
	if !ok {
		t.Fatal("canonical ramp not found")
	}
	resolved, _ := filepath.EvalSymlinks(first)
	if def.Root != resolved {
		t.Errorf("Root = %q, want first root %q", def.Root, resolved)
	}
}

func TestDefaultRoots(t *testing.T) {
	cwd := filepath.Join(string(os.PathSeparator), "home", "me", "proj")
	got := DefaultRoots(cwd)
	want := []string{
		filepath.Join(cwd, "assets"),
		filepath.Join(cwd, "asset_hander", "assets"),
		filepath.Join(string(os.PathSeparator), "home", "me", "assets"),
		filepath.Join(string(os.PathSeparator), "home", "assets"),
		filepath.Join(string(os.PathSeparator), "assets"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("DefaultRoots = %v, want %v", got, want)
	}
}

func TestScanReport_SkipMessages(t *testing.T) {
	r := ScanReport{Skipped: []Skip{{Path: "x.png", Err: &ParseError{Reason: "bad"}}}}
	if got := r.SkipMessages(); len(got) != 1 || got[0] != "x.png: bad" {
		t.Errorf("SkipMessages = %v", got)
	}
}
