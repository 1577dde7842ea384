package mode

// Stereo3D is the stereo layout of a mode.
type Stereo3D uint8

// The stereo layouts, numbered as in the DRM flag word.
const (
	Stereo3DNone Stereo3D = iota
	Stereo3DFramePacking
	Stereo3DFieldAlternative
	Stereo3DLineAlternative
	Stereo3DSideBySideFull
	Stereo3DLDepth
	Stereo3DLDepthGfxGfxDepth
	Stereo3DTopAndBottom
	Stereo3DSideBySideHalf
)

var stereo3DNames = [...]string{
	"none",
	"frame-packing",
	"field-alternative",
	"line-alternative",
	"side-by-side-full",
	"l-depth",
	"l-depth-gfx-gfx-depth",
	"top-and-bottom",
	"side-by-side-half",
}

func (s Stereo3D) String() string {
	if int(s) < len(stereo3DNames) {
		return stereo3DNames[s]
	}

	return "unknown"
}

// Bit positions of the DRM flag word.
const (
	FlagPHSync    uint32 = 1 << 0
	FlagNHSync    uint32 = 1 << 1
	FlagPVSync    uint32 = 1 << 2
	FlagNVSync    uint32 = 1 << 3
	FlagInterlace uint32 = 1 << 4
	FlagDblScan   uint32 = 1 << 5
	FlagCSync     uint32 = 1 << 6
	FlagPCSync    uint32 = 1 << 7
	FlagNCSync    uint32 = 1 << 8
	FlagDblClk    uint32 = 1 << 12

	stereo3DShift = 14

	// Stereo3DMask covers the stereo layout field.
	Stereo3DMask uint32 = 0x1f << stereo3DShift

	FlagYCbCr420     uint32 = 1 << 23
	FlagYCbCr420Only uint32 = 1 << 24

	// YCbCr420Mask covers both 4:2:0 subsampling bits.
	YCbCr420Mask uint32 = FlagYCbCr420 | FlagYCbCr420Only
)

// Flags is the set of sync polarities and layout properties of a mode.
type Flags struct {
	PHSync    bool `json:"phsync,omitempty" yaml:"phsync,omitempty"`
	NHSync    bool `json:"nhsync,omitempty" yaml:"nhsync,omitempty"`
	PVSync    bool `json:"pvsync,omitempty" yaml:"pvsync,omitempty"`
	NVSync    bool `json:"nvsync,omitempty" yaml:"nvsync,omitempty"`
	Interlace bool `json:"interlace,omitempty" yaml:"interlace,omitempty"`
	DblScan   bool `json:"dblscan,omitempty" yaml:"dblscan,omitempty"`
	CSync     bool `json:"csync,omitempty" yaml:"csync,omitempty"`
	PCSync    bool `json:"pcsync,omitempty" yaml:"pcsync,omitempty"`
	NCSync    bool `json:"ncsync,omitempty" yaml:"ncsync,omitempty"`
	DblClk    bool `json:"dblclk,omitempty" yaml:"dblclk,omitempty"`

	Stereo3D     Stereo3D `json:"stereo_3d,omitempty" yaml:"stereo_3d,omitempty"`
	YCbCr420     bool     `json:"ycbcr420,omitempty" yaml:"ycbcr420,omitempty"`
	YCbCr420Only bool     `json:"ycbcr420_only,omitempty" yaml:"ycbcr420_only,omitempty"`
}

var boolBits = []struct {
	bit uint32
	get func(f *Flags) *bool
}{
	{FlagPHSync, func(f *Flags) *bool { return &f.PHSync }},
	{FlagNHSync, func(f *Flags) *bool { return &f.NHSync }},
	{FlagPVSync, func(f *Flags) *bool { return &f.PVSync }},
	{FlagNVSync, func(f *Flags) *bool { return &f.NVSync }},
	{FlagInterlace, func(f *Flags) *bool { return &f.Interlace }},
	{FlagDblScan, func(f *Flags) *bool { return &f.DblScan }},
	{FlagCSync, func(f *Flags) *bool { return &f.CSync }},
	{FlagPCSync, func(f *Flags) *bool { return &f.PCSync }},
	{FlagNCSync, func(f *Flags) *bool { return &f.NCSync }},
	{FlagDblClk, func(f *Flags) *bool { return &f.DblClk }},
	{FlagYCbCr420, func(f *Flags) *bool { return &f.YCbCr420 }},
	{FlagYCbCr420Only, func(f *Flags) *bool { return &f.YCbCr420Only }},
}

// Bits packs the flags into the DRM flag word.
func (f Flags) Bits() uint32 {
	var bits uint32

	for _, b := range boolBits {
		if *b.get(&f) {
			bits |= b.bit
		}
	}

	bits |= (uint32(f.Stereo3D) << stereo3DShift) & Stereo3DMask

	return bits
}

// FlagsFromBits unpacks a DRM flag word. Bits that have no named field are
// dropped.
func FlagsFromBits(bits uint32) Flags {
	f := Flags{}

	for _, b := range boolBits {
		*b.get(&f) = bits&b.bit != 0
	}

	f.Stereo3D = Stereo3D((bits & Stereo3DMask) >> stereo3DShift)

	return f
}
