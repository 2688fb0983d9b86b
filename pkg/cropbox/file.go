package cropbox

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Format derives the normalized lowercase format from a file name,
// e.g. "Logo.EPS" -> "eps".
func Format(fileName string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
}

// SanitizeBaseName strips the extension and replaces every character
// outside [A-Za-z0-9_-] with an underscore, so the result is always safe
// to use as a path segment. An empty result falls back to "file".
func SanitizeBaseName(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	if base == "" {
		return "file"
	}
	return base
}

// OutputFileName builds the persisted artifact name,
// "{unixMillis}_{sanitizedBase}.pdf".
func OutputFileName(originalName string) string {
	return fmt.Sprintf("%d_%s.pdf", time.Now().UnixMilli(), SanitizeBaseName(originalName))
}
