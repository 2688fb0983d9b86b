package cropbox

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Rasterizer measures and rewrites page geometry by rendering documents.
// The pipeline only ever talks to this interface so tests can run against
// a fake without invoking real binaries.
type Rasterizer interface {
	// ProbeBoundingBox measures the rendered extent of the document's
	// first page without producing raster output.
	ProbeBoundingBox(ctx context.Context, path string) (BoundingBox, error)

	// ToPdf materializes a PostScript-family document as a baseline PDF
	// with no box adjustments applied.
	ToPdf(ctx context.Context, inPath, outPath string) error

	// Crop produces a PDF whose page size equals the box dimensions and
	// whose content is shifted so the box's lower-left corner lands at
	// the origin. Content is translated, never rescaled.
	Crop(ctx context.Context, inPath, outPath string, box BoundingBox) error
}

// The bbox device emits both an integer %%BoundingBox and a
// %%HiResBoundingBox record. Only the high-resolution one is useful here:
// millimeter conversion amplifies integer rounding downstream.
var hiResBoundingBoxRe = regexp.MustCompile(`%%HiResBoundingBox:[ \t]+(-?[0-9.]+)[ \t]+(-?[0-9.]+)[ \t]+(-?[0-9.]+)[ \t]+(-?[0-9.]+)`)

// DefaultGhostscriptBin returns the Ghostscript binary name for the
// current platform. Resolved once at startup, not per call.
func DefaultGhostscriptBin() string {
	if runtime.GOOS == "windows" {
		return "gswin64c"
	}
	return "gs"
}

// Ghostscript shells out to gs for probing, PS-to-PDF conversion and the
// geometric crop pass. Every invocation is bounded by a wall-clock timeout
// so a hung interpreter cannot block a request indefinitely.
type Ghostscript struct {
	bin     string
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewGhostscript(bin string, timeout time.Duration, logger *zap.SugaredLogger) *Ghostscript {
	if bin == "" {
		bin = DefaultGhostscriptBin()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Ghostscript{bin: bin, timeout: timeout, logger: logger}
}

// run executes gs with batch/sandbox flags prepended so the interpreter
// never prompts and never escapes the filesystem. Returns the combined
// stdout+stderr because the bbox device reports on stderr.
func (g *Ghostscript) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	full := append([]string{"-dBATCH", "-dNOPAUSE", "-dQUIET", "-dSAFER"}, args...)
	g.logger.Debugf("running %s %v", g.bin, full)
	cmd := exec.CommandContext(ctx, g.bin, full...)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return out, fmt.Errorf("%s timed out after %s", g.bin, g.timeout)
	}
	if err != nil {
		return out, fmt.Errorf("%s exited: %v: %s", g.bin, err, out)
	}
	return out, nil
}

func (g *Ghostscript) ProbeBoundingBox(ctx context.Context, path string) (BoundingBox, error) {
	out, err := g.run(ctx, "-sDEVICE=bbox", path)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("bbox probe of %s: %v: %w", filepath.Base(path), err, ErrProbeProcess)
	}
	box, err := parseHiResBoundingBox(out)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("bbox probe of %s: %w", filepath.Base(path), err)
	}
	return box, nil
}

func (g *Ghostscript) ToPdf(ctx context.Context, inPath, outPath string) error {
	if _, err := g.run(ctx, "-sDEVICE=pdfwrite", "-o", outPath, inPath); err != nil {
		return fmt.Errorf("pdfwrite conversion of %s: %v: %w", filepath.Base(inPath), err, ErrConversion)
	}
	return nil
}

func (g *Ghostscript) Crop(ctx context.Context, inPath, outPath string, box BoundingBox) error {
	if !box.HasArea() {
		return fmt.Errorf("refusing to crop %s to %.2fx%.2fpt: %w", filepath.Base(inPath), box.WidthPt(), box.HeightPt(), ErrDegenerateBox)
	}

	// Fixed page size plus a PageOffset shift maps the content's lower-left
	// corner onto the new origin. pdfwrite translates, it never zooms.
	offset := fmt.Sprintf("<</PageOffset [%.4f %.4f]>> setpagedevice", -box.LLX, -box.LLY)
	args := []string{
		"-sDEVICE=pdfwrite",
		fmt.Sprintf("-dDEVICEWIDTHPOINTS=%.4f", box.WidthPt()),
		fmt.Sprintf("-dDEVICEHEIGHTPOINTS=%.4f", box.HeightPt()),
		"-dFIXEDMEDIA",
		"-o", outPath,
		"-c", offset,
		"-f", inPath,
	}
	if _, err := g.run(ctx, args...); err != nil {
		return fmt.Errorf("crop pass on %s: %v: %w", filepath.Base(inPath), err, ErrCrop)
	}
	return nil
}

// parseHiResBoundingBox extracts the first high-resolution bounding box
// record from the bbox device's diagnostic output.
func parseHiResBoundingBox(out []byte) (BoundingBox, error) {
	m := hiResBoundingBoxRe.FindSubmatch(out)
	if m == nil {
		return BoundingBox{}, fmt.Errorf("missing %%%%HiResBoundingBox record: %w", ErrProbeParse)
	}

	corners := make([]float64, 4)
	for i := range corners {
		v, err := strconv.ParseFloat(string(m[i+1]), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("malformed %%%%HiResBoundingBox record: %w", ErrProbeParse)
		}
		corners[i] = v
	}

	return NewBoundingBox(corners[0], corners[1], corners[2], corners[3], SourceGhostscript)
}
