// Package mode defines the display mode value type shared by the timing
// generators, the mode catalog and the HTTP API.
package mode

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned by Check when the sync marks of a mode are out of
// order.
var ErrInvalidMode = errors.New("invalid display mode")

// DisplayMode describes one display timing configuration. Horizontal values
// are in pixels, vertical values in lines and Clock in kHz.
type DisplayMode struct {
	HDisplay   int `json:"hdisplay" yaml:"hdisplay"`
	HSyncStart int `json:"hsync_start" yaml:"hsync_start"`
	HSyncEnd   int `json:"hsync_end" yaml:"hsync_end"`
	HTotal     int `json:"htotal" yaml:"htotal"`

	VDisplay   int `json:"vdisplay" yaml:"vdisplay"`
	VSyncStart int `json:"vsync_start" yaml:"vsync_start"`
	VSyncEnd   int `json:"vsync_end" yaml:"vsync_end"`
	VTotal     int `json:"vtotal" yaml:"vtotal"`
	VScan      int `json:"vscan" yaml:"vscan"`

	Clock int   `json:"clock" yaml:"clock"`
	Flags Flags `json:"flags" yaml:"flags"`
}

// New creates a new, cleared display mode.
func New() *DisplayMode {
	return &DisplayMode{}
}

// Clone returns a copy of the mode that shares nothing with the original.
func (m *DisplayMode) Clone() *DisplayMode {
	if m == nil {
		return nil
	}

	c := *m

	return &c
}

// Name returns the conventional mode name, for example "1920x1080" or
// "1920x1080i" for interlaced modes.
func (m *DisplayMode) Name() string {
	name := fmt.Sprintf("%dx%d", m.HDisplay, m.VDisplay)
	if m.Flags.Interlace {
		name += "i"
	}

	return name
}

// VRefresh returns the vertical refresh rate in Hz, rounded to the closest
// integer. It returns 0 if the totals are not set.
func (m *DisplayMode) VRefresh() int {
	if m.HTotal <= 0 || m.VTotal <= 0 {
		return 0
	}

	num := int64(m.Clock) * 1000
	den := int64(m.HTotal) * int64(m.VTotal)

	if m.Flags.Interlace {
		num *= 2
	}

	if m.Flags.DblScan {
		den *= 2
	}

	if m.VScan > 1 {
		den *= int64(m.VScan)
	}

	return int((num + den/2) / den)
}

// HSync returns the horizontal line rate in kHz, rounded to the closest
// integer.
func (m *DisplayMode) HSync() int {
	if m.HTotal <= 0 {
		return 0
	}

	hsync := int64(m.Clock) * 1000 / int64(m.HTotal)

	return int((hsync + 500) / 1000)
}

// Check verifies that the horizontal and vertical sync marks are ordered
// within their totals.
func (m *DisplayMode) Check() error {
	if m.HDisplay <= 0 || m.VDisplay <= 0 {
		return fmt.Errorf("%w: empty active area %dx%d",
			ErrInvalidMode, m.HDisplay, m.VDisplay)
	}

	if !(m.HDisplay <= m.HSyncStart &&
		m.HSyncStart <= m.HSyncEnd &&
		m.HSyncEnd <= m.HTotal) {
		return fmt.Errorf("%w: horizontal marks %d %d %d %d out of order",
			ErrInvalidMode, m.HDisplay, m.HSyncStart, m.HSyncEnd, m.HTotal)
	}

	if !(m.VDisplay <= m.VSyncStart &&
		m.VSyncStart <= m.VSyncEnd &&
		m.VSyncEnd <= m.VTotal) {
		return fmt.Errorf("%w: vertical marks %d %d %d %d out of order",
			ErrInvalidMode, m.VDisplay, m.VSyncStart, m.VSyncEnd, m.VTotal)
	}

	if m.Clock <= 0 {
		return fmt.Errorf("%w: clock %d kHz", ErrInvalidMode, m.Clock)
	}

	return nil
}
