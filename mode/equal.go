package mode

// Equal reports whether two modes are identical, pixel clock included.
func Equal(a, b *DisplayMode) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Clock != b.Clock {
		return false
	}

	return EqualNoClocks(a, b)
}

// EqualNoClocks reports whether two modes are equivalent without looking at
// the pixel clocks. The stereo layouts must match.
func EqualNoClocks(a, b *DisplayMode) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Flags.Bits()&Stereo3DMask != b.Flags.Bits()&Stereo3DMask {
		return false
	}

	return EqualNoClocksNoStereo(a, b)
}

// EqualNoClocksNoStereo reports whether two modes are equivalent without
// looking at the pixel clocks, the stereo layout or the 4:2:0 subsampling
// bits. It is used to de-duplicate modes that come from different sources and
// only differ in clock rounding.
func EqualNoClocksNoStereo(a, b *DisplayMode) bool {
	if a == nil || b == nil {
		return a == b
	}

	const ignored = Stereo3DMask | YCbCr420Mask

	return a.HDisplay == b.HDisplay &&
		a.HSyncStart == b.HSyncStart &&
		a.HSyncEnd == b.HSyncEnd &&
		a.HTotal == b.HTotal &&
		a.VDisplay == b.VDisplay &&
		a.VSyncStart == b.VSyncStart &&
		a.VSyncEnd == b.VSyncEnd &&
		a.VTotal == b.VTotal &&
		a.VScan == b.VScan &&
		a.Flags.Bits()&^ignored == b.Flags.Bits()&^ignored
}
