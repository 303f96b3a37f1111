package ptime

import (
	"fmt"
	"log/slog"
	"time"
)

// ValidationResult contains the result of validating a local time.
type ValidationResult struct {
	ValidTime time.Time // The validated time (adjusted if necessary)
	Warnings  []string  // Any warnings about time adjustments
}

// LocalTimeValidator builds wall-clock times in one zone and reports
// Daylight Saving Time edge cases:
//   - Invalid local times (spring forward gap) are moved forward.
//   - Ambiguous local times (fall back) keep the first occurrence.
type LocalTimeValidator struct {
	location *time.Location
	logger   *slog.Logger
}

// NewLocalTimeValidator creates a validator for loc.
func NewLocalTimeValidator(loc *time.Location, logger *slog.Logger) *LocalTimeValidator {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalTimeValidator{location: loc, logger: logger}
}

// ValidateLocalTime builds the given wall-clock time. Day overflow is
// normalized by time.Date, so day may be past the end of the month.
func (v *LocalTimeValidator) ValidateLocalTime(year int, month time.Month, day, hour, min int) *ValidationResult {
	var warnings []string

	t := time.Date(year, month, day, hour, min, 0, 0, v.location)

	// time.Date moves a nonexistent time past the gap.
	if t.Hour() != hour {
		warnings = append(warnings, fmt.Sprintf(
			"horário %02d:%02d não existe em %s (horário de verão), ajustado para %02d:%02d",
			hour, min, t.Format("2006-01-02"), t.Hour(), t.Minute()))
		v.logger.Debug("local time adjusted for DST gap",
			"requested_hour", hour,
			"adjusted_hour", t.Hour(),
			"timezone", v.location.String())
	}

	if v.isAmbiguous(t) {
		warnings = append(warnings, fmt.Sprintf(
			"horário %02d:%02d em %s é ambíguo (fim do horário de verão), usando a primeira ocorrência",
			hour, min, t.Format("2006-01-02")))
		v.logger.Debug("ambiguous local time",
			"hour", hour,
			"min", min,
			"timezone", v.location.String())
	}

	return &ValidationResult{ValidTime: t, Warnings: warnings}
}

// isAmbiguous reports whether the same wall clock occurs again one hour
// later, which happens in the hour before clocks fall back.
func (v *LocalTimeValidator) isAmbiguous(t time.Time) bool {
	_, offset := t.Zone()
	_, offsetLater := t.Add(time.Hour).Zone()
	return offsetLater < offset
}
