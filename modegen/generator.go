// Package modegen synthesizes display timings from a requested geometry with
// the VESA CVT and GTF algorithms.
//
// All generators are pure functions of their inputs: they touch no shared
// state and may be called concurrently. Every call returns a fresh mode that
// belongs to the caller.
package modegen

import (
	"fmt"
	"sort"

	"github.com/sarchlab/modeline/mode"
)

// Request describes the display geometry a generator should produce timings
// for.
type Request struct {
	HDisplay   int  `json:"hdisplay"`
	VDisplay   int  `json:"vdisplay"`
	VRefresh   int  `json:"vrefresh"`
	Reduced    bool `json:"reduced,omitempty"`
	Interlaced bool `json:"interlaced,omitempty"`
	Margins    bool `json:"margins,omitempty"`
}

// A Generator turns a request into a display mode.
type Generator interface {
	// Name returns the name the generator is registered under.
	Name() string

	// Generate computes the timings for the request.
	Generate(req Request) *mode.DisplayMode
}

// CVT generates modes with the Coordinated Video Timing algorithm. If
// ReducedBlanking is set, every mode uses reduced blanking regardless of the
// request.
type CVT struct {
	ReducedBlanking bool
}

// Name returns "cvt", or "cvt-rb" for the reduced-blanking generator.
func (g CVT) Name() string {
	if g.ReducedBlanking {
		return "cvt-rb"
	}

	return "cvt"
}

// Generate runs CVTMode.
func (g CVT) Generate(req Request) *mode.DisplayMode {
	return CVTMode(req.HDisplay, req.VDisplay, req.VRefresh,
		req.Reduced || g.ReducedBlanking, req.Interlaced, req.Margins)
}

// GTF generates modes with the Generalized Timing Formula. The request's
// Reduced field is ignored.
type GTF struct {
	Coefficients GTFCoefficients
}

// Name returns "gtf".
func (g GTF) Name() string {
	return "gtf"
}

// Generate runs GTFModeComplex with the generator's coefficients.
func (g GTF) Generate(req Request) *mode.DisplayMode {
	return GTFModeComplex(req.HDisplay, req.VDisplay, req.VRefresh,
		req.Interlaced, req.Margins, g.Coefficients)
}

var registry = map[string]Generator{
	"cvt":    CVT{},
	"cvt-rb": CVT{ReducedBlanking: true},
	"gtf":    GTF{Coefficients: DefaultGTF},
}

// Lookup returns the generator registered under the name.
func Lookup(name string) (Generator, error) {
	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown timing algorithm %q", name)
	}

	return g, nil
}

// Names lists the registered generator names in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}
