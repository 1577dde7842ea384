package mode_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/modeline/mode"
)

var _ = Describe("Equality", func() {
	var a, b *mode.DisplayMode

	BeforeEach(func() {
		a = &mode.DisplayMode{
			HDisplay:   1920,
			HSyncStart: 2008,
			HSyncEnd:   2052,
			HTotal:     2200,
			VDisplay:   1080,
			VSyncStart: 1084,
			VSyncEnd:   1089,
			VTotal:     1125,
			Clock:      148500,
			Flags:      mode.Flags{PHSync: true, PVSync: true},
		}
		b = a.Clone()
	})

	It("should be reflexive", func() {
		Expect(mode.EqualNoClocksNoStereo(a, a)).To(BeTrue())
		Expect(mode.EqualNoClocks(a, a)).To(BeTrue())
		Expect(mode.Equal(a, a)).To(BeTrue())
	})

	It("should ignore the clock", func() {
		b.Clock = 148750

		Expect(mode.EqualNoClocks(a, b)).To(BeTrue())
		Expect(mode.EqualNoClocks(b, a)).To(BeTrue())
		Expect(mode.EqualNoClocksNoStereo(a, b)).To(BeTrue())
		Expect(mode.Equal(a, b)).To(BeFalse())
	})

	It("should ignore stereo and 4:2:0 bits when asked to", func() {
		b.Flags.Stereo3D = mode.Stereo3DFramePacking
		b.Flags.YCbCr420 = true

		Expect(mode.EqualNoClocksNoStereo(a, b)).To(BeTrue())
		Expect(mode.EqualNoClocksNoStereo(b, a)).To(BeTrue())
	})

	It("should require the stereo layout to match", func() {
		b.Flags.Stereo3D = mode.Stereo3DFramePacking

		Expect(mode.EqualNoClocks(a, b)).To(BeFalse())
		Expect(mode.EqualNoClocks(b, a)).To(BeFalse())
	})

	It("should ignore 4:2:0 bits even when the stereo layout must match", func() {
		b.Flags.YCbCr420Only = true

		Expect(mode.EqualNoClocks(a, b)).To(BeTrue())
	})

	It("should compare the other flags", func() {
		b.Flags.Interlace = true

		Expect(mode.EqualNoClocksNoStereo(a, b)).To(BeFalse())
	})

	It("should compare every timing field", func() {
		mutations := []func(m *mode.DisplayMode){
			func(m *mode.DisplayMode) { m.HDisplay++ },
			func(m *mode.DisplayMode) { m.HSyncStart++ },
			func(m *mode.DisplayMode) { m.HSyncEnd++ },
			func(m *mode.DisplayMode) { m.HTotal++ },
			func(m *mode.DisplayMode) { m.VDisplay++ },
			func(m *mode.DisplayMode) { m.VSyncStart++ },
			func(m *mode.DisplayMode) { m.VSyncEnd++ },
			func(m *mode.DisplayMode) { m.VTotal++ },
			func(m *mode.DisplayMode) { m.VScan++ },
		}

		for _, mutate := range mutations {
			c := a.Clone()
			mutate(c)
			Expect(mode.EqualNoClocksNoStereo(a, c)).To(BeFalse())
		}
	})

	It("should handle nil modes", func() {
		Expect(mode.EqualNoClocks(nil, nil)).To(BeTrue())
		Expect(mode.EqualNoClocks(a, nil)).To(BeFalse())
		Expect(mode.Equal(nil, b)).To(BeFalse())
	})
})
