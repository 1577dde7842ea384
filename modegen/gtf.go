package modegen

import "github.com/sarchlab/modeline/mode"

const (
	// top/bottom margin size, in per mille of the active area
	gtfMarginPercentage = 18
	// character cell horizontal granularity (pixels)
	gtfCellGran = 8
	// minimum vertical porch (lines)
	gtfMinVPorch = 1
	// width of vsync in lines
	gtfVSyncRqd = 3
	// width of hsync as % of total line
	gtfHSyncPercent = 8
	// min time of vsync + back porch (us)
	gtfMinVSyncPlusBP = 550
)

// GTFCoefficients are the blanking formula parameters of the Generalized
// Timing Formula. C and J are carried doubled, as the formula uses them.
type GTFCoefficients struct {
	M  int `json:"m" yaml:"m"`
	C2 int `json:"c2" yaml:"c2"`
	K  int `json:"k" yaml:"k"`
	J2 int `json:"j2" yaml:"j2"`
}

// DefaultGTF holds the VESA standard coefficients M=600, C=40, K=128, J=20.
var DefaultGTF = GTFCoefficients{M: 600, C2: 40 * 2, K: 128, J2: 20 * 2}

// IsDefault reports whether the coefficients are exactly the VESA standard
// ones.
func (c GTFCoefficients) IsDefault() bool {
	return c == DefaultGTF
}

// CPrime returns C' = (((2C-2J)*K/256)+2J)/2.
func (c GTFCoefficients) CPrime() int {
	return int((((int32(c.C2) - int32(c.J2)) * int32(c.K) / 256) +
		int32(c.J2)) / 2)
}

// MPrime returns M' = K*M/256.
func (c GTFCoefficients) MPrime() int {
	return int(int32(c.K) * int32(c.M) / 256)
}

// GTFMode creates a modeline with the Generalized Timing Formula and the
// standard VESA coefficients.
func GTFMode(
	hdisplay, vdisplay, vrefresh int,
	interlaced, margins bool,
) *mode.DisplayMode {
	return GTFModeComplex(hdisplay, vdisplay, vrefresh,
		interlaced, margins, DefaultGTF)
}

// GTFModeComplex creates a modeline with the Generalized Timing Formula and
// the given blanking coefficients, in fixed-point integer arithmetic.
//
// Unlike CVT, hdisplay is rounded to the nearest character cell, the pixel
// clock is not quantized and vrefresh has no default. The sync polarity is
// assigned after the interlace step and replaces every flag set before it:
// an interlaced GTF mode keeps its doubled vtotal but not its interlace flag.
func GTFModeComplex(
	hdisplay, vdisplay, vrefresh int,
	interlaced, margins bool,
	c GTFCoefficients,
) *mode.DisplayMode {
	m := mode.New()

	// round to the nearest character cell boundary
	hdisplayRnd := uint32((int32(hdisplay) + gtfCellGran/2) / gtfCellGran)
	hdisplayRnd *= gtfCellGran

	// lines per field
	vdisplayRnd := uint32(int32(vdisplay))
	if interlaced {
		vdisplayRnd = uint32(int32(vdisplay) / 2)
	}

	vfieldrateRqd := uint32(int32(vrefresh))
	if interlaced {
		vfieldrateRqd = uint32(int32(vrefresh) * 2)
	}

	var topMargin int32
	if margins {
		topMargin = int32((vdisplayRnd*gtfMarginPercentage + 500) / 1000)
	}

	bottomMargin := topMargin

	var interlace uint32
	if interlaced {
		interlace = 1
	}

	// estimate the horizontal frequency
	tmp1 := (1000000 - gtfMinVSyncPlusBP*vfieldrateRqd) / 500
	tmp2 := (vdisplayRnd+2*uint32(topMargin)+gtfMinVPorch)*2 + interlace
	hfreqEst := udiv(tmp2*1000*vfieldrateRqd, tmp1)

	// lines in vsync + back porch, rounded
	vsyncPlusBP := int32(gtfMinVSyncPlusBP * hfreqEst / 1000)
	vsyncPlusBP = (vsyncPlusBP + 500) / 1000

	vtotalLines := vdisplayRnd + uint32(topMargin) + uint32(bottomMargin) +
		uint32(vsyncPlusBP) + gtfMinVPorch

	var leftMargin int32
	if margins {
		leftMargin = int32((hdisplayRnd*gtfMarginPercentage + 500) / 1000)
	}

	rightMargin := leftMargin

	totalActivePixels := hdisplayRnd + uint32(leftMargin) + uint32(rightMargin)

	idealDutyCycle := uint32(int32(c.CPrime())*1000) -
		udiv(uint32(int32(c.MPrime())*1000000), hfreqEst)

	// blanking to the nearest double character cell
	hblank := udiv(totalActivePixels*idealDutyCycle, 100000-idealDutyCycle)
	hblank = (hblank + gtfCellGran) / (2 * gtfCellGran)
	hblank *= 2 * gtfCellGran

	totalPixels := totalActivePixels + hblank
	pixelFreq := totalPixels * hfreqEst / 1000

	hsync := int32(gtfHSyncPercent * totalPixels / 100)
	hsync = (hsync + gtfCellGran/2) / gtfCellGran
	hsync *= gtfCellGran

	hfrontPorch := int32(hblank/2 - uint32(hsync))
	voddFrontPorchLines := int32(gtfMinVPorch)

	m.HDisplay = int(int32(hdisplayRnd))
	m.HSyncStart = int(int32(hdisplayRnd) + hfrontPorch)
	m.HSyncEnd = m.HSyncStart + int(hsync)
	m.HTotal = int(int32(totalPixels))
	m.VDisplay = int(int32(vdisplayRnd))
	m.VSyncStart = int(int32(vdisplayRnd) + voddFrontPorchLines)
	m.VSyncEnd = m.VSyncStart + gtfVSyncRqd
	m.VTotal = int(int32(vtotalLines))
	m.Clock = int(int32(pixelFreq))

	if interlaced {
		doubleFields(m)
	}

	if c.IsDefault() {
		m.Flags = mode.Flags{NHSync: true, PVSync: true}
	} else {
		m.Flags = mode.Flags{PHSync: true, NVSync: true}
	}

	return m
}
