package mode_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/modeline/mode"
)

var _ = Describe("Modeline", func() {
	It("should format an X11 modeline", func() {
		m := &mode.DisplayMode{
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
		}

		Expect(m.String()).To(Equal(
			`Modeline "1920x1080" 173.00 1920 2048 2248 2576 ` +
				`1080 1083 1088 1120 -hsync +vsync`))
	})

	It("should keep kHz precision", func() {
		m := &mode.DisplayMode{Clock: 172781}
		Expect(m.Modeline("x")).To(HavePrefix(`Modeline "x" 172.781 `))

		m.Clock = 172780
		Expect(m.Modeline("x")).To(HavePrefix(`Modeline "x" 172.78 `))
	})

	It("should list interlace after the polarities", func() {
		m := &mode.DisplayMode{
			HDisplay: 1920, VDisplay: 1080, Clock: 179750,
			Flags: mode.Flags{NHSync: true, PVSync: true, Interlace: true},
		}

		Expect(m.String()).To(HaveSuffix("-hsync +vsync Interlace"))
		Expect(m.String()).To(ContainSubstring(`"1920x1080i"`))
	})

	It("should parse a modeline", func() {
		m, name, err := mode.Parse(
			`Modeline "1920x1080_60.00" 172.80 1920 2040 2248 2576 ` +
				`1080 1081 1084 1118 -HSync +Vsync`)

		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("1920x1080_60.00"))
		Expect(m.Clock).To(Equal(172800))
		Expect(m.HSyncStart).To(Equal(2040))
		Expect(m.VTotal).To(Equal(1118))
		Expect(m.Flags).To(Equal(mode.Flags{NHSync: true, PVSync: true}))
	})

	It("should parse a quoted name with spaces", func() {
		m, name, err := mode.Parse(
			`Modeline "My Mode" 148.50 1920 2008 2052 2200 ` +
				`1080 1084 1089 1125 +hsync +vsync`)

		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("My Mode"))
		Expect(m.Clock).To(Equal(148500))
		Expect(m.VTotal).To(Equal(1125))
		Expect(m.Flags).To(Equal(mode.Flags{PHSync: true, PVSync: true}))
	})

	It("should round trip a name with spaces", func() {
		m := &mode.DisplayMode{
			HDisplay: 1024, HSyncStart: 1072, HSyncEnd: 1176, HTotal: 1328,
			VDisplay: 768, VSyncStart: 771, VSyncEnd: 775, VTotal: 798,
			Clock: 63500,
			Flags: mode.Flags{NHSync: true, PVSync: true},
		}

		parsed, name, err := mode.Parse(m.Modeline("XGA 60 Hz"))

		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("XGA 60 Hz"))
		Expect(mode.Equal(parsed, m)).To(BeTrue())
	})

	It("should reject an unterminated name", func() {
		_, _, err := mode.Parse(`Modeline "1920x1080 148.5 1920 2008`)
		Expect(err).To(HaveOccurred())
	})

	It("should parse a bare timing line", func() {
		m, name, err := mode.Parse("148.5 1920 2008 2052 2200 1080 1084 1089 1125")

		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("1920x1080"))
		Expect(m.Clock).To(Equal(148500))
	})

	It("should round trip", func() {
		m := &mode.DisplayMode{
			HDisplay: 1024, HSyncStart: 1072, HSyncEnd: 1176, HTotal: 1328,
			VDisplay: 768, VSyncStart: 771, VSyncEnd: 775, VTotal: 798,
			Clock: 63500,
			Flags: mode.Flags{NHSync: true, PVSync: true, DblScan: true},
		}

		parsed, _, err := mode.Parse(m.String())

		Expect(err).NotTo(HaveOccurred())
		Expect(mode.Equal(parsed, m)).To(BeTrue())
	})

	It("should reject short lines", func() {
		_, _, err := mode.Parse("Modeline 148.5 1920 2008")
		Expect(err).To(HaveOccurred())
	})

	It("should reject bad numbers", func() {
		_, _, err := mode.Parse("abc 1920 2008 2052 2200 1080 1084 1089 1125")
		Expect(err).To(HaveOccurred())

		_, _, err = mode.Parse("148.5 1920 2008 x 2200 1080 1084 1089 1125")
		Expect(err).To(HaveOccurred())
	})

	It("should reject unknown flags", func() {
		_, _, err := mode.Parse("148.5 1920 2008 2052 2200 1080 1084 1089 1125 +foo")
		Expect(err).To(HaveOccurred())
	})
})
