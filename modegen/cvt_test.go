package modegen

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/modeline/mode"
)

var _ = Describe("CVT", func() {
	It("should generate 1920x1080@60", func() {
		m := CVTMode(1920, 1080, 60, false, false, false)

		Expect(*m).To(Equal(mode.DisplayMode{
			HDisplay:   1920,
			HSyncStart: 2048,
			HSyncEnd:   2248,
			HTotal:     2576,
			VDisplay:   1080,
			VSyncStart: 1083,
			VSyncEnd:   1088,
			VTotal:     1120,
			Clock:      173000,
			Flags:      mode.Flags{NHSync: true, PVSync: true},
		}))
		Expect(m.VSyncEnd - m.VSyncStart).To(Equal(5))
	})

	It("should generate 1024x768@60", func() {
		m := CVTMode(1024, 768, 60, false, false, false)

		Expect(m.String()).To(Equal(`Modeline "1024x768" 63.50 ` +
			`1024 1072 1176 1328 768 771 775 798 -hsync +vsync`))
	})

	It("should default the refresh rate to 60", func() {
		Expect(*CVTMode(1920, 1080, 0, false, false, false)).
			To(Equal(*CVTMode(1920, 1080, 60, false, false, false)))
	})

	It("should not wrap the clock on 4K modes", func() {
		m := CVTMode(3840, 2160, 60, false, false, false)

		Expect(m.HTotal).To(Equal(5312))
		Expect(m.Clock).To(Equal(712750))
	})

	It("should generate reduced blanking", func() {
		m := CVTMode(1920, 1080, 60, true, false, false)

		Expect(*m).To(Equal(mode.DisplayMode{
			HDisplay:   1920,
			HSyncStart: 1968,
			HSyncEnd:   2000,
			HTotal:     2080,
			VDisplay:   1080,
			VSyncStart: 1083,
			VSyncEnd:   1088,
			VTotal:     1111,
			Clock:      138500,
			Flags:      mode.Flags{PHSync: true, NVSync: true},
		}))
	})

	It("should enforce the minimum vertical blanking in reduced mode", func() {
		m := CVTMode(1024, 768, 60, true, false, false)

		Expect(m.VTotal).To(Equal(790))
		Expect(m.HTotal).To(Equal(1184))
		Expect(m.Clock).To(Equal(56000))
	})

	It("should double vtotal and flag interlaced modes", func() {
		m := CVTMode(1920, 1080, 60, false, true, false)

		Expect(m.VTotal).To(Equal(2 * 582))
		Expect(m.VDisplay).To(Equal(1080))
		Expect(m.Clock).To(Equal(179750))
		Expect(m.Flags).To(Equal(mode.Flags{
			NHSync: true, PVSync: true, Interlace: true,
		}))
	})

	It("should add margins", func() {
		m := CVTMode(1920, 1080, 60, false, false, true)

		Expect(m.HDisplay).To(Equal(1920 + 2*32))
		Expect(m.VDisplay).To(Equal(1080 + 2*19))
		Expect(m.VTotal).To(Equal(1160))
		Expect(m.Clock % 250).To(BeZero())
	})

	It("should round the width down to the cell granularity", func() {
		m := CVTMode(1366, 768, 60, false, false, false)

		Expect(m.HDisplay).To(Equal(1360))
	})

	DescribeTable("vsync width from the aspect ratio",
		func(h, v, want int) {
			m := CVTMode(h, v, 60, false, false, false)
			Expect(m.VSyncEnd - m.VSyncStart).To(Equal(want))
		},
		Entry("4:3", 1024, 768, 4),
		Entry("16:9", 1280, 720, 5),
		Entry("16:10", 1680, 1050, 6),
		Entry("5:4", 1280, 1024, 7),
		Entry("15:9", 1200, 720, 7),
		Entry("custom", 1366, 700, 10),
	)

	It("should not panic on degenerate input", func() {
		Expect(func() { CVTMode(0, 0, 60, true, false, false) }).NotTo(Panic())
		Expect(func() { CVTMode(0, 0, 60, false, true, true) }).NotTo(Panic())
	})

	It("should double the field count", func() {
		m := &mode.DisplayMode{VTotal: 582}

		doubleFields(m)

		Expect(m.VTotal).To(Equal(1164))
		Expect(m.Flags.Interlace).To(BeTrue())
	})
})
