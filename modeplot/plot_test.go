package modeplot

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/modeline/mode"
	"github.com/sarchlab/modeline/modegen"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

var _ = Describe("Plot", func() {
	m := modegen.CVTMode(1920, 1080, 60, false, false, false)

	It("should split the scan line", func() {
		Expect(Horizontal(m)).To(Equal([]Segment{
			{"active", 0, 1920},
			{"front porch", 1920, 128},
			{"sync", 2048, 200},
			{"back porch", 2248, 328},
		}))
	})

	It("should split the frame", func() {
		Expect(Vertical(m)).To(Equal([]Segment{
			{"active", 0, 1080},
			{"front porch", 1080, 3},
			{"sync", 1083, 5},
			{"back porch", 1088, 32},
		}))
	})

	It("should draw the bars scaled to the totals", func() {
		img := Render(m, 800, 400)

		Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 800, 400)))

		y := 160
		Expect(nrgbaAt(img, margin+10, y)).To(Equal(segmentColors["active"]))

		syncX := float64(2148) * 760 / 2576
		syncMid := margin + int(syncX)
		Expect(nrgbaAt(img, syncMid, y)).To(Equal(segmentColors["sync"]))

		Expect(nrgbaAt(img, 799, 399)).To(Equal(background))
	})

	It("should draw an empty mode without bars", func() {
		img := Render(mode.New(), 200, 100)

		Expect(nrgbaAt(img, 100, 40)).To(Equal(background))
	})

	It("should save a PNG file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "mode.png")

		Expect(SavePNG(m, path, 640, 320)).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(BeNumerically(">", 0))
	})

	It("should report write errors", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "mode.png")

		Expect(SavePNG(m, path, 64, 32)).NotTo(Succeed())
	})
})
