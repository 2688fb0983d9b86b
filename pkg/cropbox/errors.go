package cropbox

import "errors"

// Failure taxonomy for the analyze/convert pipeline. Controllers map these
// to HTTP statuses with errors.Is, so every error leaving this package wraps
// exactly one of them.
var (
	ErrNoFileProvided    = errors.New("no file provided")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrHeaderParseMiss is non-fatal: callers fall back to the render probe.
	ErrHeaderParseMiss = errors.New("no bounding box header found")
	ErrProbeProcess    = errors.New("bounding box probe process failed")
	ErrProbeParse      = errors.New("no usable bounding box in probe output")
	ErrConversion      = errors.New("conversion to pdf failed")
	ErrCrop            = errors.New("page box crop failed")
	ErrDegenerateBox   = errors.New("bounding box has no area")
)
