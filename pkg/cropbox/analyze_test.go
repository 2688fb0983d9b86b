package cropbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// fakeRasterizer implements Rasterizer without invoking any binary.
type fakeRasterizer struct {
	box        BoundingBox
	probeErr   error
	probeCalls int
	cropErr    error
	cropBoxes  []BoundingBox
}

func (f *fakeRasterizer) ProbeBoundingBox(_ context.Context, path string) (BoundingBox, error) {
	f.probeCalls++
	if f.probeErr != nil {
		return BoundingBox{}, f.probeErr
	}
	return f.box, nil
}

func (f *fakeRasterizer) ToPdf(_ context.Context, inPath, outPath string) error {
	return os.WriteFile(outPath, []byte("%fake baseline pdf"), 0644)
}

func (f *fakeRasterizer) Crop(_ context.Context, inPath, outPath string, box BoundingBox) error {
	f.cropBoxes = append(f.cropBoxes, box)
	if f.cropErr != nil {
		return f.cropErr
	}
	return os.WriteFile(outPath, []byte("%fake cropped pdf"), 0644)
}

// fakeConverter implements MarkupConverter by writing a placeholder file.
type fakeConverter struct {
	calls int
	err   error
}

func (f *fakeConverter) ToPdf(_ context.Context, inPath, outPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, []byte("%fake baseline pdf"), 0644)
}

func writeUpload(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write upload: %v", err)
	}
	return path
}

func newTestAnalyzer(ras Rasterizer, conv MarkupConverter) *Analyzer {
	return NewAnalyzer(ras, conv, zap.NewNop().Sugar())
}

func TestAnalyzeEpsHeaderSkipsProbe(t *testing.T) {
	path := writeUpload(t, "sample.eps", "%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 0 0 200 100\n")
	ras := &fakeRasterizer{}

	report, err := newTestAnalyzer(ras, &fakeConverter{}).Analyze(context.Background(), path, "sample.eps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ras.probeCalls != 0 {
		t.Errorf("header read must not invoke the render probe, got %d probe calls", ras.probeCalls)
	}

	want := AnalysisReport{
		FileName: "sample.eps", Format: "eps", PageCount: 1,
		LLX: 0, LLY: 0, URX: 200, URY: 100,
		WidthPt: 200, HeightPt: 100,
		WidthMM: 70.56, HeightMM: 35.28,
		Source: SourceEpsHeader,
	}
	if report != want {
		t.Errorf("got %+v, want %+v", report, want)
	}
}

func TestAnalyzeEpsWithoutHeaderFallsBackToProbe(t *testing.T) {
	path := writeUpload(t, "noheader.eps", "%!PS-Adobe-3.0\n0 0 moveto 100 0 lineto stroke\n")
	box, _ := NewBoundingBox(0, 0, 100, 50, SourceGhostscript)
	ras := &fakeRasterizer{box: box}

	report, err := newTestAnalyzer(ras, &fakeConverter{}).Analyze(context.Background(), path, "noheader.eps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ras.probeCalls != 1 {
		t.Errorf("expected exactly one probe call, got %d", ras.probeCalls)
	}
	if report.Source != SourceGhostscript {
		t.Errorf("source = %q, want %q", report.Source, SourceGhostscript)
	}
	if report.WidthPt != 100 || report.HeightPt != 50 {
		t.Errorf("got %gx%gpt, want 100x50pt", report.WidthPt, report.HeightPt)
	}
}

func TestAnalyzePdfProbesDirectly(t *testing.T) {
	path := writeUpload(t, "page.pdf", "%PDF-1.4")
	box, _ := NewBoundingBox(10, 10, 110, 60, SourceGhostscript)
	ras := &fakeRasterizer{box: box}
	conv := &fakeConverter{}

	report, err := newTestAnalyzer(ras, conv).Analyze(context.Background(), path, "page.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conv.calls != 0 {
		t.Errorf("pdf analysis must not run the markup converter")
	}
	if report.Format != "pdf" || report.WidthPt != 100 || report.HeightPt != 50 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestAnalyzeSvgAppliesDpiCorrection(t *testing.T) {
	path := writeUpload(t, "sample.svg", `<svg xmlns="http://www.w3.org/2000/svg"/>`)
	box, _ := NewBoundingBox(0, 0, 100, 50, SourceGhostscript)
	ras := &fakeRasterizer{box: box}
	conv := &fakeConverter{}

	report, err := newTestAnalyzer(ras, conv).Analyze(context.Background(), path, "sample.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conv.calls != 1 {
		t.Fatalf("expected one converter call, got %d", conv.calls)
	}
	if ras.probeCalls != 1 {
		t.Fatalf("expected one probe call, got %d", ras.probeCalls)
	}

	// Probed 100x50pt in baseline space, reported * 96/72.
	if report.WidthPt != 133.33 || report.HeightPt != 66.67 {
		t.Errorf("got %gx%gpt, want 133.33x66.67pt", report.WidthPt, report.HeightPt)
	}
	if want := Round2(PtToMM(100 * SvgPointScale)); report.WidthMM != want {
		t.Errorf("width_mm = %g, want mm conversion of the corrected width %g", report.WidthMM, want)
	}
	if want := Round2(PtToMM(50 * SvgPointScale)); report.HeightMM != want {
		t.Errorf("height_mm = %g, want mm conversion of the corrected height %g", report.HeightMM, want)
	}
	if report.Source != "ghostscript_svg" {
		t.Errorf("source = %q, want ghostscript_svg", report.Source)
	}

	// The baseline PDF is an intermediate and must not survive.
	if _, err := os.Stat(path + ".pdf"); !os.IsNotExist(err) {
		t.Errorf("baseline pdf was not cleaned up")
	}
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	path := writeUpload(t, "photo.png", "not a vector")

	_, err := newTestAnalyzer(&fakeRasterizer{}, &fakeConverter{}).Analyze(context.Background(), path, "photo.png")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestAnalyzePropagatesProbeFailure(t *testing.T) {
	path := writeUpload(t, "broken.pdf", "%PDF-1.4")
	ras := &fakeRasterizer{probeErr: ErrProbeProcess}

	_, err := newTestAnalyzer(ras, &fakeConverter{}).Analyze(context.Background(), path, "broken.pdf")
	if !errors.Is(err, ErrProbeProcess) {
		t.Errorf("expected ErrProbeProcess, got %v", err)
	}
}
