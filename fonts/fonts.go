package fonts

import (
	"fmt"
	"image/color"
	"os"

	"github.com/tdewolff/canvas"
)

// Face names resolved by the registry. Zebra's proprietary fonts are
// approximated with DejaVu: designator '0' maps to the condensed bold
// face, everything else to the regular sans.
const (
	Sans          = "DejaVu Sans"
	SansBold      = "DejaVu Sans Bold"
	CondensedBold = "DejaVu Sans Condensed Bold"
)

// searchPaths lists candidate files per face: a copy under fonts/
// relative to the working directory first, then common system locations.
var searchPaths = map[string][]string{
	Sans: {
		"fonts/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/Library/Fonts/DejaVuSans.ttf",
	},
	SansBold: {
		"fonts/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
		"/Library/Fonts/DejaVuSans-Bold.ttf",
	},
	CondensedBold: {
		"fonts/DejaVuSansCondensed-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSansCondensed-Bold.ttf",
		"/usr/share/fonts/dejavu/DejaVuSansCondensed-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSansCondensed-Bold.ttf",
		"/Library/Fonts/DejaVuSansCondensed-Bold.ttf",
	},
}

// One canvas unit is one dot; faces take point sizes, so a height in dots
// converts through the pt/mm ratio.
const ptPerDot = 72.0 / 25.4

// Registry lazily loads the scalable faces used for measurement and
// painting. The first Ensure performs file I/O; by contract it is not
// thread-safe and callers serialize the first load. Once Ensure has
// returned the registry is read-only and may be shared freely.
type Registry struct {
	loaded   bool
	err      error
	families map[string]*canvas.FontFamily
}

// Default is the process-wide registry.
var Default = NewRegistry()

// NewRegistry returns an empty registry; faces load on first use.
func NewRegistry() *Registry {
	return &Registry{families: map[string]*canvas.FontFamily{}}
}

// Ensure loads the three faces on first demand; subsequent calls are
// no-ops with the same result. Bold variants are best-effort: a missing
// bold file does not fail registration, only a missing regular face does.
func (r *Registry) Ensure() error {
	if r.loaded {
		return r.err
	}
	r.loaded = true
	for _, name := range []string{Sans, SansBold, CondensedBold} {
		if err := r.load(name); err != nil && name == Sans {
			r.err = err
		}
	}
	return r.err
}

func (r *Registry) load(name string) error {
	data, err := readFirst(searchPaths[name])
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	r.families[name] = family
	return nil
}

func readFirst(paths []string) ([]byte, error) {
	var firstErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = os.ErrNotExist
	}
	return nil, firstErr
}

// Family resolves a ZPL font designator to a loaded family. Designator
// '0' prefers the condensed bold face, then plain bold, then regular;
// every other designator uses the regular sans.
func (r *Registry) Family(designator string) (*canvas.FontFamily, error) {
	if err := r.Ensure(); err != nil {
		return nil, err
	}
	if designator == "0" {
		if f, ok := r.families[CondensedBold]; ok {
			return f, nil
		}
		if f, ok := r.families[SansBold]; ok {
			return f, nil
		}
	}
	if f, ok := r.families[Sans]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no usable face for designator %q", designator)
}

// Face returns a face for the designator whose em height is height dots.
func (r *Registry) Face(designator string, height float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.Family(designator)
	if err != nil {
		return nil, err
	}
	return family.Face(height*ptPerDot, col, canvas.FontRegular, canvas.FontNormal), nil
}
