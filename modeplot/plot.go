// Package modeplot draws the timing diagram of a display mode.
package modeplot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/sarchlab/modeline/mode"
)

// Segment is one part of a scan line or of a frame.
type Segment struct {
	Name   string
	Start  int
	Length int
}

// Horizontal splits a scan line into its active, front porch, sync and back
// porch parts, in pixels.
func Horizontal(m *mode.DisplayMode) []Segment {
	return split(m.HDisplay, m.HSyncStart, m.HSyncEnd, m.HTotal)
}

// Vertical splits a frame into its active, front porch, sync and back porch
// parts, in lines.
func Vertical(m *mode.DisplayMode) []Segment {
	return split(m.VDisplay, m.VSyncStart, m.VSyncEnd, m.VTotal)
}

func split(display, syncStart, syncEnd, total int) []Segment {
	return []Segment{
		{"active", 0, display},
		{"front porch", display, syncStart - display},
		{"sync", syncStart, syncEnd - syncStart},
		{"back porch", syncEnd, total - syncEnd},
	}
}

var (
	background = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	foreground = color.NRGBA{0x20, 0x20, 0x20, 0xff}

	segmentColors = map[string]color.NRGBA{
		"active":      {0x40, 0x8c, 0xd9, 0xff},
		"front porch": {0xf2, 0xbf, 0x4d, 0xff},
		"sync":        {0xd9, 0x4d, 0x4d, 0xff},
		"back porch":  {0x8c, 0xbf, 0x73, 0xff},
	}
)

const margin = 20

// Render draws the horizontal and the vertical timing bars of the mode,
// scaled to their totals, on a width by height image.
func Render(m *mode.DisplayMode, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()

	dc.SetColor(foreground)
	dc.DrawString(fmt.Sprintf("%s  %.2f MHz  %.2f kHz  %.2f Hz",
		m.Name(), m.PixelFreq().In(mode.MHz), m.HFreq().In(mode.KHz),
		m.VFreq().In(mode.Hz)), margin, margin)

	barHeight := float64(height) / 5
	drawBar(dc, "horizontal (pixels)", Horizontal(m), m.HTotal,
		float64(height)*0.3, barHeight)
	drawBar(dc, "vertical (lines)", Vertical(m), m.VTotal,
		float64(height)*0.65, barHeight)

	return dc.Image()
}

func drawBar(
	dc *gg.Context,
	title string,
	segments []Segment,
	total int,
	y, barHeight float64,
) {
	dc.SetColor(foreground)
	dc.DrawString(title, margin, y-6)

	if total <= 0 {
		return
	}

	barWidth := float64(dc.Width() - 2*margin)
	scale := barWidth / float64(total)

	for _, s := range segments {
		if s.Length <= 0 {
			continue
		}

		x := margin + float64(s.Start)*scale
		w := float64(s.Length) * scale

		dc.SetColor(segmentColors[s.Name])
		dc.DrawRectangle(x, y, w, barHeight)
		dc.Fill()

		dc.SetColor(foreground)
		dc.DrawStringAnchored(fmt.Sprintf("%d", s.Length),
			x+w/2, y+barHeight+14, 0.5, 0)
	}

	dc.SetLineWidth(1)
	dc.DrawRectangle(margin, y, barWidth, barHeight)
	dc.Stroke()
}

// SavePNG renders the mode and writes the image to a PNG file.
func SavePNG(m *mode.DisplayMode, path string, width, height int) error {
	img := Render(m, width, height)

	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}
