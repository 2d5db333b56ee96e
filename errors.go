package gopresentation

import (
	"errors"
	"fmt"
)

// Precondition errors.
var (
	// ErrNilPresentation is returned when a writer is asked to export a nil presentation.
	ErrNilPresentation = errors.New("presentation is nil")

	// ErrNoSlides is returned when a presentation has no slides to export.
	ErrNoSlides = errors.New("presentation has no slides")

	// ErrInvalidPresentation wraps the list of problems found by Validate.
	ErrInvalidPresentation = errors.New("validation failed")

	// ErrMissingChartData is returned when a chart has no plot type or no series.
	ErrMissingChartData = errors.New("chart has no data")

	// ErrInvalidChartValue is returned for a NaN or infinite series value or
	// axis setting.
	ErrInvalidChartValue = errors.New("chart value is not a finite number")

	// ErrUnsupportedFormat is returned by NewWriter for an unknown WriterType.
	ErrUnsupportedFormat = errors.New("unsupported writer format")

	// ErrInvalidProperty is returned by SetCustomProperty.
	ErrInvalidProperty = errors.New("invalid custom property")

	// ErrGroupCycle is returned when a group contains itself, directly or
	// through nested groups.
	ErrGroupCycle = errors.New("group contains itself")
)

// Cross-reference errors.
var (
	// ErrUnsupportedChartType is returned when a chart's plot type has no writer.
	ErrUnsupportedChartType = errors.New("unsupported chart type")

	// ErrLayoutNotFound is returned when a slide names a layout the layout pack does not contain.
	ErrLayoutNotFound = errors.New("slide layout not found in layout pack")

	// ErrInvalidHyperlink is returned for internal links pointing outside the slide range
	// and external links without a URL.
	ErrInvalidHyperlink = errors.New("invalid hyperlink")

	// ErrMissingSpreadsheet is returned when a chart requests an embedded workbook
	// and the spreadsheet encoder produced nothing.
	ErrMissingSpreadsheet = errors.New("embedded spreadsheet missing")

	// ErrBindingsMismatch is returned by Render when the bindings were prepared
	// for a different presentation or format.
	ErrBindingsMismatch = errors.New("bindings were not prepared for this presentation")
)

// External resource errors.
var (
	// ErrUnsupportedImage is returned when image bytes cannot be identified as a supported format.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrImageSource is returned when a picture has no path, no data and no render callback.
	ErrImageSource = errors.New("image has no source")

	// ErrImageTooLarge is returned for image files above the size limit.
	ErrImageTooLarge = errors.New("image file too large")
)

// PartError reports a failure while rendering one archive part.
type PartError struct {
	Path string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *PartError) Unwrap() error { return e.Err }

// errOutOfRange is the shared index error used by the model accessors.
var errOutOfRange = errors.New("index out of range")
