package cropbox

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// AnalysisReport is the result of measuring one uploaded document.
// Dimensions describe the first page only; multi-page documents are
// analyzed for their first page's rendered extent.
type AnalysisReport struct {
	FileName  string  `json:"fileName"`
	Format    string  `json:"format"`
	PageCount int     `json:"pageCount"`
	LLX       float64 `json:"llx"`
	LLY       float64 `json:"lly"`
	URX       float64 `json:"urx"`
	URY       float64 `json:"ury"`
	WidthPt   float64 `json:"widthPt"`
	HeightPt  float64 `json:"heightPt"`
	WidthMM   float64 `json:"width_mm"`
	HeightMM  float64 `json:"height_mm"`
	Source    string  `json:"source"`
}

func newReport(fileName, format string, box BoundingBox) AnalysisReport {
	return AnalysisReport{
		FileName:  fileName,
		Format:    format,
		PageCount: 1,
		LLX:       Round2(box.LLX),
		LLY:       Round2(box.LLY),
		URX:       Round2(box.URX),
		URY:       Round2(box.URY),
		WidthPt:   Round2(box.WidthPt()),
		HeightPt:  Round2(box.HeightPt()),
		WidthMM:   box.WidthMM(),
		HeightMM:  box.HeightMM(),
		Source:    box.Source,
	}
}

// Analyzer selects a bounding box strategy per format and assembles the
// final dimension report. It holds no per-request state.
type Analyzer struct {
	ras    Rasterizer
	conv   MarkupConverter
	logger *zap.SugaredLogger
}

func NewAnalyzer(ras Rasterizer, conv MarkupConverter, logger *zap.SugaredLogger) *Analyzer {
	return &Analyzer{ras: ras, conv: conv, logger: logger}
}

// Analyze measures the document at path. originalName is used only to
// derive the format, case-insensitively.
func (a *Analyzer) Analyze(ctx context.Context, path, originalName string) (AnalysisReport, error) {
	format := Format(originalName)

	var box BoundingBox
	var err error
	switch format {
	case "eps", "ps":
		box, err = a.epsBoundingBox(ctx, path)
	case "pdf", "ai":
		// AI files are PDF-compatible containers, probe them directly.
		box, err = a.ras.ProbeBoundingBox(ctx, path)
	case "svg":
		box, err = a.svgBoundingBox(ctx, path)
	default:
		return AnalysisReport{}, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return AnalysisReport{}, err
	}

	report := newReport(originalName, format, box)
	if format == "pdf" || format == "ai" {
		// Best-effort; the box describes page 1 either way.
		if n, err := PageCount(path); err == nil {
			report.PageCount = n
		} else {
			a.logger.Debugf("could not count pages of %s: %v", path, err)
		}
	}
	return report, nil
}

// epsBoundingBox tries the cheap header read first and only rasterizes
// when the document does not self-report a usable box.
func (a *Analyzer) epsBoundingBox(ctx context.Context, path string) (BoundingBox, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		box, err := ReadHeaderBoundingBox(data)
		if err == nil {
			return box, nil
		}
		a.logger.Debugf("no bounding box header in %s, falling back to render probe", path)
	} else {
		a.logger.Debugf("could not read %s for header scan, falling back to render probe: %v", path, err)
	}

	return a.ras.ProbeBoundingBox(ctx, path)
}

// svgBoundingBox converts the markup to a baseline PDF, probes that, and
// corrects the result for the 96/72 unit mismatch. The correction comes
// after the probe because the probe measures the converted file's own
// point space.
func (a *Analyzer) svgBoundingBox(ctx context.Context, path string) (BoundingBox, error) {
	baseline := path + ".pdf"
	defer func() {
		if err := os.Remove(baseline); err != nil && !os.IsNotExist(err) {
			a.logger.Warnf("failed to remove baseline pdf %s: %v", baseline, err)
		}
	}()

	if err := a.conv.ToPdf(ctx, path, baseline); err != nil {
		return BoundingBox{}, err
	}

	box, err := a.ras.ProbeBoundingBox(ctx, baseline)
	if err != nil {
		return BoundingBox{}, err
	}

	return box.Scale(SvgPointScale).Tag("_svg"), nil
}
