package modegen

import "github.com/sarchlab/modeline/mode"

const (
	hvFactor = 1000

	// top/bottom margin size, in per mille of the active area
	cvtMarginPercentage = 18
	// character cell horizontal granularity (pixels)
	cvtHGranularity = 8
	// minimum vertical porch (lines)
	cvtMinVPorch = 3
	// minimum number of vertical back porch lines
	cvtMinVBPorch = 6
	// pixel clock step (kHz)
	cvtClockStep = 250

	// minimum time of vertical sync + back porch interval (us)
	cvtMinVSyncBP = 550
	// nominal hsync width (% of line period)
	cvtHSyncPercentage = 8

	// blanking formula gradient (%/kHz), offset (%), scaling factor and
	// scaling factor weighting
	cvtMFactor = 600
	cvtCFactor = 40
	cvtKFactor = 128
	cvtJFactor = 20
	cvtMPrime  = cvtMFactor * cvtKFactor / 256
	cvtCPrime  = (cvtCFactor-cvtJFactor)*cvtKFactor/256 + cvtJFactor

	// reduced blanking: minimum vertical blanking interval (us), fixed
	// hsync and hblank widths (pixels), fixed vertical front porch (lines)
	cvtRBMinVBlank = 460
	cvtRBHSync     = 32
	cvtRBHBlank    = 160
	cvtRBVFPorch   = 3
)

// CVTMode creates a modeline with the VESA Coordinated Video Timing
// algorithm, computed in fixed-point integer arithmetic.
//
// A vrefresh of 0 selects the CVT default of 60 Hz. Reduced selects the
// reduced-blanking timings, interlaced computes a field-based mode with the
// doubled vtotal, and margins adds 1.8% borders on every side. Inputs are not
// validated: nonsensical geometries give nonsensical timings.
func CVTMode(
	hdisplay, vdisplay, vrefresh int,
	reduced, interlaced, margins bool,
) *mode.DisplayMode {
	m := mode.New()

	if vrefresh == 0 {
		vrefresh = 60
	}

	h, v := int32(hdisplay), int32(vdisplay)

	vfieldrate := uint32(int32(vrefresh))
	if interlaced {
		vfieldrate = uint32(int32(vrefresh) * 2)
	}

	hdisplayRnd := h - h%cvtHGranularity

	var hmargin int32
	if margins {
		hmargin = hdisplayRnd * cvtMarginPercentage / 1000
		hmargin -= hmargin % cvtHGranularity
	}

	hdisp := hdisplayRnd + 2*hmargin

	vdisplayRnd := v
	if interlaced {
		vdisplayRnd = v / 2
	}

	var vmargin int32
	if margins {
		vmargin = vdisplayRnd * cvtMarginPercentage / 1000
	}

	vdisp := v + 2*vmargin

	var interlace int32
	if interlaced {
		interlace = 1
	}

	vsync := cvtVSyncWidth(h, v)

	activeLines := vdisplayRnd + 2*vmargin

	var (
		hperiod                      uint32
		hsyncStart, hsyncEnd, htotal int32
		vsyncStart, vsyncEnd, vtotal int32
	)

	if !reduced {
		// estimate the horizontal period
		budget := int32(hvFactor*1000000 - cvtMinVSyncBP*hvFactor*vfieldrate)
		linesX2 := (activeLines+cvtMinVPorch)*2 + interlace
		hperiod = udiv(uint32(budget*2), uint32(linesX2)*vfieldrate)

		vsyncAndBackPorch := int32(udiv(cvtMinVSyncBP*hvFactor, hperiod) + 1)
		if vsyncAndBackPorch < vsync+cvtMinVPorch {
			vsyncAndBackPorch = vsync + cvtMinVPorch
		}

		vtotal = activeLines + vsyncAndBackPorch + cvtMinVPorch

		// ideal blanking duty cycle
		hblankPercentage := uint32(cvtCPrime*hvFactor) -
			cvtMPrime*hperiod/1000
		if hblankPercentage < 20*hvFactor {
			hblankPercentage = 20 * hvFactor
		}

		hblank := int32(udiv(uint32(hdisp)*hblankPercentage,
			100*hvFactor-hblankPercentage))
		hblank -= hblank % (2 * cvtHGranularity)

		htotal = hdisp + hblank
		hsyncEnd = hdisp + hblank/2
		hsyncStart = hsyncEnd - htotal*cvtHSyncPercentage/100
		hsyncStart += cvtHGranularity - hsyncStart%cvtHGranularity

		vsyncStart = vdisp + cvtMinVPorch
		vsyncEnd = vsyncStart + vsync
	} else {
		budget := int32(hvFactor*1000000 - cvtRBMinVBlank*hvFactor*vfieldrate)
		hperiod = udiv(uint32(budget), uint32(activeLines)*vfieldrate)

		vbiLines := int32(udiv(cvtRBMinVBlank*hvFactor, hperiod) + 1)
		if vbiLines < cvtRBVFPorch+vsync+cvtMinVBPorch {
			vbiLines = cvtRBVFPorch + vsync + cvtMinVBPorch
		}

		vtotal = activeLines + vbiLines

		htotal = hdisp + cvtRBHBlank
		hsyncEnd = hdisp + cvtRBHBlank/2
		hsyncStart = hsyncEnd - cvtRBHSync

		vsyncStart = vdisp + cvtRBVFPorch
		vsyncEnd = vsyncStart + vsync
	}

	m.HDisplay = int(hdisp)
	m.HSyncStart = int(hsyncStart)
	m.HSyncEnd = int(hsyncEnd)
	m.HTotal = int(htotal)
	m.VDisplay = int(vdisp)
	m.VSyncStart = int(vsyncStart)
	m.VSyncEnd = int(vsyncEnd)
	m.VTotal = int(vtotal)

	m.Clock = cvtClock(htotal, hperiod)

	if interlaced {
		doubleFields(m)
	}

	if reduced {
		m.Flags.PHSync = true
		m.Flags.NVSync = true
	} else {
		m.Flags.PVSync = true
		m.Flags.NHSync = true
	}

	return m
}

// cvtVSyncWidth picks the vsync width of the standard aspect ratio that
// matches the requested geometry.
func cvtVSyncWidth(h, v int32) int32 {
	switch {
	case v%3 == 0 && v*4/3 == h:
		return 4
	case v%9 == 0 && v*16/9 == h:
		return 5
	case v%10 == 0 && v*16/10 == h:
		return 6
	case v%4 == 0 && v*5/4 == h:
		return 7
	case v%9 == 0 && v*15/9 == h:
		return 7
	default:
		return 10
	}
}

// cvtClock converts the line period into a pixel clock in kHz, rounded down
// to the clock step. The product is taken in 64 bits so that 4K line widths
// do not wrap.
func cvtClock(htotal int32, hperiod uint32) int {
	if hperiod == 0 {
		return 0
	}

	clock := uint64(uint32(htotal)) * hvFactor * 1000 / uint64(hperiod)
	clock -= clock % cvtClockStep

	return int(clock)
}

// doubleFields turns a per-field timing into an interlaced frame timing.
func doubleFields(m *mode.DisplayMode) {
	m.VTotal *= 2
	m.Flags.Interlace = true
}

// udiv divides like the fixed-point formulas expect, except that a zero
// divisor yields 0 instead of a runtime panic.
func udiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}

	return a / b
}
