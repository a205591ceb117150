package report

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	msgMissingRange  = "Por favor selecciona un rango de fechas"
	msgInvertedRange = "La fecha de inicio debe ser anterior o igual a la fecha de término"
	msgInvalidDate   = "Fecha inválida: %q"
)

// InvalidRangeError is returned when the requested date range is missing, malformed or inverted.
// It aborts report generation before anything is rendered.
type InvalidRangeError struct {
	From, To string
	msg      string
}

func (e *InvalidRangeError) Error() string { return e.msg }

// IsInvalidRange reports whether the cause of err is an *InvalidRangeError.
func IsInvalidRange(err error) bool {
	_, ok := errors.Cause(err).(*InvalidRangeError)
	return ok
}

type WarningKind string

const (
	// AssetLoadWarning: the header logo could not be loaded; the header is text-only.
	AssetLoadWarning WarningKind = "asset_load"
	// MalformedCourseCodeWarning: a course code matched no known pattern and was printed verbatim.
	MalformedCourseCodeWarning WarningKind = "malformed_course_code"
)

// Warning is a recovered degradation noted while building a report.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Detail string      `json:"detail"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}
