package cropbox

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// Normalizer rewrites a PDF so its page geometry equals a content bounding
// box: the rasterizer performs the geometric pass (page size + content
// offset), then an optional second pass forces all five page boxes to
// [0 0 w h] directly. The second pass is defensive; its failure is logged
// and the geometrically cropped PDF is still delivered.
type Normalizer struct {
	ras        Rasterizer
	boxRewrite bool
	logger     *zap.SugaredLogger
}

func NewNormalizer(ras Rasterizer, boxRewrite bool, logger *zap.SugaredLogger) *Normalizer {
	return &Normalizer{ras: ras, boxRewrite: boxRewrite, logger: logger}
}

func (n *Normalizer) Normalize(ctx context.Context, inPath, outPath string, box BoundingBox) error {
	if !box.HasArea() {
		return fmt.Errorf("cannot normalize to a %.2fx%.2fpt page: %w", box.WidthPt(), box.HeightPt(), ErrDegenerateBox)
	}

	if err := n.ras.Crop(ctx, inPath, outPath, box); err != nil {
		return err
	}

	if !n.boxRewrite {
		return nil
	}
	if err := rewritePageBoxes(outPath, box.WidthPt(), box.HeightPt()); err != nil {
		n.logger.Warnf("page box rewrite on %s failed, keeping cropped output: %v", outPath, err)
	}
	return nil
}

// rewritePageBoxes sets media, crop, bleed, trim and art boxes of page 1
// to [0 0 w h] in place.
func rewritePageBoxes(path string, w, h float64) error {
	rect := fmt.Sprintf("[0 0 %.2f %.2f]", w, h)
	spec := fmt.Sprintf("media:%s, crop:%s, bleed:%s, trim:%s, art:%s", rect, rect, rect, rect, rect)

	pb, err := model.ParsePageBoundaries(spec, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to build page boundaries: %w", err)
	}

	tmp := path + ".boxes"
	if err := api.AddBoxesFile(path, tmp, []string{"1"}, pb, nil); err != nil {
		return fmt.Errorf("failed to rewrite page boxes: %w", err)
	}
	return os.Rename(tmp, path)
}
