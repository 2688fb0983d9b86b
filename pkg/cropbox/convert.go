package cropbox

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ConversionResult describes the persisted canonical PDF. Box fields carry
// the same semantics as AnalysisReport.
type ConversionResult struct {
	Ok          bool    `json:"ok"`
	PdfPath     string  `json:"pdfPath"`
	PdfFileName string  `json:"pdfFileName"`
	Format      string  `json:"format"`
	LLX         float64 `json:"llx"`
	LLY         float64 `json:"lly"`
	URX         float64 `json:"urx"`
	URY         float64 `json:"ury"`
	WidthPt     float64 `json:"widthPt"`
	HeightPt    float64 `json:"heightPt"`
	WidthMM     float64 `json:"width_mm"`
	HeightMM    float64 `json:"height_mm"`
	Source      string  `json:"source"`
}

// Storage persists a finished artifact under objectName and returns the
// public path it will be served from. Ownership of the artifact transfers
// to the storage backend.
type Storage interface {
	Store(ctx context.Context, localPath, objectName string) (publicPath string, err error)
}

// Pipeline is the end-to-end convert operation: materialize a baseline PDF
// if needed, probe it, normalize its page boxes to the content bounding
// box and persist the cropped result. Any mandatory stage failure aborts
// the whole request; intermediates are removed best-effort on every path.
type Pipeline struct {
	ras    Rasterizer
	conv   MarkupConverter
	norm   *Normalizer
	store  Storage
	logger *zap.SugaredLogger
}

func NewPipeline(ras Rasterizer, conv MarkupConverter, norm *Normalizer, store Storage, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{ras: ras, conv: conv, norm: norm, store: store, logger: logger}
}

func (p *Pipeline) ConvertToPdf(ctx context.Context, path, originalName string) (ConversionResult, error) {
	format := Format(originalName)

	baseline := path
	switch format {
	case "pdf":
		if err := ValidatePdf(path); err != nil {
			return ConversionResult{}, err
		}
	case "ai":
		// AI containers are PDF-compatible but may carry PostScript
		// private data; rewriting through the rasterizer yields a clean
		// baseline the box rewrite pass can operate on.
		baseline = path + ".pdf"
		if err := p.ras.ToPdf(ctx, path, baseline); err != nil {
			return ConversionResult{}, err
		}
		defer p.removeQuietly(baseline)
	case "svg":
		baseline = path + ".pdf"
		if err := p.conv.ToPdf(ctx, path, baseline); err != nil {
			return ConversionResult{}, err
		}
		defer p.removeQuietly(baseline)
	default:
		return ConversionResult{}, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}

	box, err := p.ras.ProbeBoundingBox(ctx, baseline)
	if err != nil {
		return ConversionResult{}, err
	}
	if format == "svg" {
		box = box.Scale(SvgPointScale).Tag("_svg")
	}
	if !box.HasArea() {
		return ConversionResult{}, fmt.Errorf("%s has no visible content: %w", originalName, ErrDegenerateBox)
	}

	cropped := strings.TrimSuffix(path, "."+format) + "_cropped.pdf"
	if err := p.norm.Normalize(ctx, baseline, cropped, box); err != nil {
		return ConversionResult{}, err
	}
	defer p.removeQuietly(cropped)

	if w, h, err := FirstPageDims(cropped); err == nil {
		p.logger.Debugf("cropped %s to a %.2fx%.2fpt page", originalName, w, h)
	} else {
		p.logger.Debugf("could not read cropped page size of %s: %v", originalName, err)
	}

	objectName := OutputFileName(originalName)
	publicPath, err := p.store.Store(ctx, cropped, objectName)
	if err != nil {
		return ConversionResult{}, fmt.Errorf("failed to persist %s: %w", objectName, err)
	}

	if format != "svg" {
		box = box.Tag("_" + format)
	}
	box = box.Tag("_cropped")

	return ConversionResult{
		Ok:          true,
		PdfPath:     publicPath,
		PdfFileName: objectName,
		Format:      "pdf",
		LLX:         Round2(box.LLX),
		LLY:         Round2(box.LLY),
		URX:         Round2(box.URX),
		URY:         Round2(box.URY),
		WidthPt:     Round2(box.WidthPt()),
		HeightPt:    Round2(box.HeightPt()),
		WidthMM:     box.WidthMM(),
		HeightMM:    box.HeightMM(),
		Source:      box.Source,
	}, nil
}

func (p *Pipeline) removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.Warnf("failed to remove intermediate %s: %v", path, err)
	}
}
