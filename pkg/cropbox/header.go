package cropbox

import (
	"regexp"
	"strconv"
)

// EPS/PS documents may self-report their bounding box in a DSC comment of
// the form "%%BoundingBox: 0 0 200 100". Corners are whole points only;
// "(atend)" and malformed variants deliberately do not match.
var headerBoundingBoxRe = regexp.MustCompile(`(?m)^%%BoundingBox:[ \t]+(-?\d+)[ \t]+(-?\d+)[ \t]+(-?\d+)[ \t]+(-?\d+)`)

// ReadHeaderBoundingBox scans raw EPS/PS bytes for a bounding box comment.
// It never touches an external process; a miss returns ErrHeaderParseMiss
// and the caller falls back to the render probe.
func ReadHeaderBoundingBox(data []byte) (BoundingBox, error) {
	m := headerBoundingBoxRe.FindSubmatch(data)
	if m == nil {
		return BoundingBox{}, ErrHeaderParseMiss
	}

	corners := make([]float64, 4)
	for i := range corners {
		n, err := strconv.Atoi(string(m[i+1]))
		if err != nil {
			return BoundingBox{}, ErrHeaderParseMiss
		}
		corners[i] = float64(n)
	}

	box, err := NewBoundingBox(corners[0], corners[1], corners[2], corners[3], SourceEpsHeader)
	if err != nil {
		// An inverted header box is as good as no header at all.
		return BoundingBox{}, ErrHeaderParseMiss
	}
	return box, nil
}
