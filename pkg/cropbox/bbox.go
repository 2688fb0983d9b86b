package cropbox

import (
	"fmt"
	"math"
)

const (
	// PostScript points per inch and millimeters per inch.
	PointsPerInch = 72.0
	MMPerInch     = 25.4

	// SVG user units run at 96 per inch while PDF point space runs at 72,
	// so every linear quantity probed from a markup-converted baseline PDF
	// must be multiplied by 96/72 before being reported.
	SvgPointScale = 96.0 / 72.0
)

// Source tags identifying which strategy produced a bounding box.
const (
	SourceEpsHeader   = "eps_header"
	SourceGhostscript = "ghostscript"
)

// PtToMM converts points to millimeters (72 pt = 25.4 mm).
func PtToMM(pt float64) float64 {
	return pt * MMPerInch / PointsPerInch
}

// MMToPt converts millimeters to points.
func MMToPt(mm float64) float64 {
	return mm * PointsPerInch / MMPerInch
}

// Round2 rounds to two decimal places, the precision reported for both
// millimeter and point dimensions.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BoundingBox is the smallest axis-aligned rectangle, in point coordinates,
// enclosing all rendered marks on a page. Immutable after construction.
type BoundingBox struct {
	LLX    float64
	LLY    float64
	URX    float64
	URY    float64
	Source string
}

// NewBoundingBox builds a bounding box from its corners. Inverted corners
// are a probe failure, never silently accepted.
func NewBoundingBox(llx, lly, urx, ury float64, source string) (BoundingBox, error) {
	if urx < llx || ury < lly {
		return BoundingBox{}, fmt.Errorf("inverted bounding box [%g %g %g %g]: %w", llx, lly, urx, ury, ErrProbeParse)
	}
	return BoundingBox{LLX: llx, LLY: lly, URX: urx, URY: ury, Source: source}, nil
}

func (b BoundingBox) WidthPt() float64 {
	return b.URX - b.LLX
}

func (b BoundingBox) HeightPt() float64 {
	return b.URY - b.LLY
}

func (b BoundingBox) WidthMM() float64 {
	return Round2(PtToMM(b.WidthPt()))
}

func (b BoundingBox) HeightMM() float64 {
	return Round2(PtToMM(b.HeightPt()))
}

// HasArea reports whether the box encloses any content at all. Degenerate
// boxes must be rejected before any crop is attempted.
func (b BoundingBox) HasArea() bool {
	return b.WidthPt() > 0 && b.HeightPt() > 0
}

// Scale multiplies every corner by factor. Used for the 96/72 DPI
// correction after probing a markup-converted baseline PDF.
func (b BoundingBox) Scale(factor float64) BoundingBox {
	return BoundingBox{
		LLX:    b.LLX * factor,
		LLY:    b.LLY * factor,
		URX:    b.URX * factor,
		URY:    b.URY * factor,
		Source: b.Source,
	}
}

// Tag appends a suffix to the source tag, e.g. "_svg" or "_cropped".
func (b BoundingBox) Tag(suffix string) BoundingBox {
	b.Source += suffix
	return b
}
