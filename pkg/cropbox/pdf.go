package cropbox

import (
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount returns the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages of %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// FirstPageDims returns the first page's media box dimensions in points.
func FirstPageDims(path string) (width, height float64, err error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read page dimensions of %s: %w", filepath.Base(path), err)
	}
	if len(dims) == 0 {
		return 0, 0, fmt.Errorf("%s has no pages", filepath.Base(path))
	}
	return dims[0].Width, dims[0].Height, nil
}

// ValidatePdf checks that an uploaded PDF/AI container is structurally
// sound before the probe touches it, so broken uploads fail fast.
func ValidatePdf(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("%s is not a valid pdf: %v: %w", filepath.Base(path), err, ErrConversion)
	}
	return nil
}
