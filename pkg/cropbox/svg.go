package cropbox

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

// MarkupConverter materializes vector markup (SVG) as a baseline PDF.
// The baseline must not clip or rescale content; it exists solely so the
// same rasterizer tooling can probe and crop the document. Both
// implementations leave lengths in the 96-units-per-inch SVG convention,
// so probed quantities need the SvgPointScale correction afterwards.
type MarkupConverter interface {
	ToPdf(ctx context.Context, inPath, outPath string) error
}

// CanvasConverter renders SVG to PDF in-process via tdewolff/canvas.
type CanvasConverter struct{}

func (CanvasConverter) ToPdf(_ context.Context, inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open svg %s: %v: %w", filepath.Base(inPath), err, ErrConversion)
	}
	defer f.Close()

	c, err := canvas.ParseSVG(f)
	if err != nil {
		return fmt.Errorf("parse svg %s: %v: %w", filepath.Base(inPath), err, ErrConversion)
	}

	if err := renderers.Write(outPath, c); err != nil {
		return fmt.Errorf("write pdf for %s: %v: %w", filepath.Base(inPath), err, ErrConversion)
	}
	return nil
}

// RsvgConverter shells out to rsvg-convert. Kept as an alternative for
// documents that exercise SVG features canvas does not cover (filters,
// some text layout).
type RsvgConverter struct {
	bin     string
	timeout time.Duration
}

func NewRsvgConverter(bin string, timeout time.Duration) *RsvgConverter {
	if bin == "" {
		bin = "rsvg-convert"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RsvgConverter{bin: bin, timeout: timeout}
}

func (r *RsvgConverter) ToPdf(ctx context.Context, inPath, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.bin, "-f", "pdf", "-o", outPath, inPath)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out after %s converting %s: %w", r.bin, r.timeout, filepath.Base(inPath), ErrConversion)
	}
	if err != nil {
		return fmt.Errorf("%s on %s: %v: %s: %w", r.bin, filepath.Base(inPath), err, out, ErrConversion)
	}
	return nil
}
