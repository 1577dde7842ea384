package mode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Modeline formats the mode as an X11 modeline under the given name.
func (m *DisplayMode) Modeline(name string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Modeline %q %s %d %d %d %d %d %d %d %d",
		name, formatMHz(m.Clock),
		m.HDisplay, m.HSyncStart, m.HSyncEnd, m.HTotal,
		m.VDisplay, m.VSyncStart, m.VSyncEnd, m.VTotal)

	for _, kw := range modelineKeywords {
		if kw.isSet(m.Flags) {
			b.WriteString(" ")
			b.WriteString(kw.word)
		}
	}

	return b.String()
}

func (m *DisplayMode) String() string {
	return m.Modeline(m.Name())
}

func formatMHz(clock int) string {
	mhz := float64(clock) / 1000
	if clock%10 == 0 {
		return strconv.FormatFloat(mhz, 'f', 2, 64)
	}

	return strconv.FormatFloat(mhz, 'f', 3, 64)
}

type modelineKeyword struct {
	word  string
	isSet func(f Flags) bool
	set   func(f *Flags)
}

var modelineKeywords = []modelineKeyword{
	{"+hsync", func(f Flags) bool { return f.PHSync }, func(f *Flags) { f.PHSync = true }},
	{"-hsync", func(f Flags) bool { return f.NHSync }, func(f *Flags) { f.NHSync = true }},
	{"+vsync", func(f Flags) bool { return f.PVSync }, func(f *Flags) { f.PVSync = true }},
	{"-vsync", func(f Flags) bool { return f.NVSync }, func(f *Flags) { f.NVSync = true }},
	{"Interlace", func(f Flags) bool { return f.Interlace }, func(f *Flags) { f.Interlace = true }},
	{"DoubleScan", func(f Flags) bool { return f.DblScan }, func(f *Flags) { f.DblScan = true }},
	{"Composite", func(f Flags) bool { return f.CSync }, func(f *Flags) { f.CSync = true }},
	{"+CSync", func(f Flags) bool { return f.PCSync }, func(f *Flags) { f.PCSync = true }},
	{"-CSync", func(f Flags) bool { return f.NCSync }, func(f *Flags) { f.NCSync = true }},
}

// Parse reads an X11 modeline. The leading "Modeline" keyword and the quoted
// name are optional, and the name may contain spaces. It returns the mode and
// the name found in the line.
func Parse(line string) (*DisplayMode, string, error) {
	rest := strings.TrimSpace(line)
	if len(rest) >= len("modeline") &&
		strings.EqualFold(rest[:len("modeline")], "modeline") {
		rest = strings.TrimSpace(rest[len("modeline"):])
	}

	name := ""
	if strings.HasPrefix(rest, `"`) {
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return nil, "", fmt.Errorf("parse modeline %q: unterminated name",
				line)
		}

		name = rest[1 : end+1]
		rest = rest[end+2:]
	}

	fields := strings.Fields(rest)

	if len(fields) < 9 {
		return nil, "", fmt.Errorf(
			"parse modeline %q: need clock and 8 timings, got %d fields",
			line, len(fields))
	}

	mhz, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, "", fmt.Errorf("parse modeline %q: clock: %w", line, err)
	}

	var timings [8]int
	for i := range timings {
		timings[i], err = strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, "", fmt.Errorf("parse modeline %q: timing %d: %w",
				line, i, err)
		}
	}

	m := &DisplayMode{
		Clock:      int(math.Round(mhz * 1000)),
		HDisplay:   timings[0],
		HSyncStart: timings[1],
		HSyncEnd:   timings[2],
		HTotal:     timings[3],
		VDisplay:   timings[4],
		VSyncStart: timings[5],
		VSyncEnd:   timings[6],
		VTotal:     timings[7],
	}

	for _, word := range fields[9:] {
		if !applyKeyword(&m.Flags, word) {
			return nil, "", fmt.Errorf("parse modeline %q: unknown flag %q",
				line, word)
		}
	}

	if name == "" {
		name = m.Name()
	}

	return m, name, nil
}

func applyKeyword(f *Flags, word string) bool {
	for _, kw := range modelineKeywords {
		if strings.EqualFold(kw.word, word) {
			kw.set(f)
			return true
		}
	}

	return false
}
