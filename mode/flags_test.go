package mode_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/modeline/mode"
)

var _ = Describe("Flags", func() {
	It("should pack sync polarities into the low bits", func() {
		f := mode.Flags{PHSync: true, NVSync: true}

		Expect(f.Bits()).To(Equal(mode.FlagPHSync | mode.FlagNVSync))
		Expect(f.Bits()).To(Equal(uint32(0x9)))
	})

	It("should pack the stereo layout inside the stereo mask", func() {
		f := mode.Flags{Stereo3D: mode.Stereo3DTopAndBottom}

		Expect(f.Bits()).To(Equal(uint32(7) << 14))
		Expect(f.Bits() &^ mode.Stereo3DMask).To(BeZero())
	})

	It("should pack 4:2:0 bits inside the 4:2:0 mask", func() {
		f := mode.Flags{YCbCr420: true, YCbCr420Only: true}

		Expect(f.Bits()).To(Equal(mode.YCbCr420Mask))
	})

	It("should unpack what it packs", func() {
		f := mode.Flags{
			NHSync:    true,
			PVSync:    true,
			Interlace: true,
			DblClk:    true,
			Stereo3D:  mode.Stereo3DSideBySideHalf,
			YCbCr420:  true,
		}

		Expect(mode.FlagsFromBits(f.Bits())).To(Equal(f))
	})

	It("should drop unnamed bits", func() {
		f := mode.FlagsFromBits(mode.FlagInterlace | 1<<9 | 1<<30)

		Expect(f).To(Equal(mode.Flags{Interlace: true}))
	})

	It("should name stereo layouts", func() {
		Expect(mode.Stereo3DFramePacking.String()).To(Equal("frame-packing"))
		Expect(mode.Stereo3D(30).String()).To(Equal("unknown"))
	})
})
