package mode

import (
	"log"
	"time"
)

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
)

// Period returns the time between two consecutive ticks
func (f Freq) Period() time.Duration {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return time.Duration(float64(time.Second) / float64(f))
}

// In returns the frequency expressed in the given unit.
func (f Freq) In(unit Freq) float64 {
	return float64(f / unit)
}

// PixelFreq returns the pixel clock.
func (m *DisplayMode) PixelFreq() Freq {
	return Freq(m.Clock) * KHz
}

// HFreq returns the exact horizontal line rate.
func (m *DisplayMode) HFreq() Freq {
	if m.HTotal <= 0 {
		return 0
	}

	return m.PixelFreq() / Freq(m.HTotal)
}

// VFreq returns the exact vertical refresh rate, counting fields for
// interlaced modes the same way VRefresh does.
func (m *DisplayMode) VFreq() Freq {
	if m.HTotal <= 0 || m.VTotal <= 0 {
		return 0
	}

	f := m.HFreq() / Freq(m.VTotal)

	if m.Flags.Interlace {
		f *= 2
	}

	if m.Flags.DblScan {
		f /= 2
	}

	if m.VScan > 1 {
		f /= Freq(m.VScan)
	}

	return f
}
