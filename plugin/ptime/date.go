package ptime

import (
	"strconv"
	"time"
)

// DateKind tags the variant held by DateComponents.
type DateKind int

const (
	DateNone DateKind = iota
	DateRelative
	DateWeekday
	DateAbsolute
)

// DateComponents is the outcome of the date resolver.
//
// DayOffset is always filled for a match: calendar days from the reference
// date to the resolved date.
type DateComponents struct {
	Kind      DateKind
	Tag       DateTag
	DayOffset int

	// Weekday and ForceNext are set for DateWeekday.
	Weekday   Weekday
	ForceNext bool

	// Day, Month and Year are set for DateAbsolute.
	Day   int
	Month time.Month
	Year  int

	Span Span
}

// Found reports whether a date phrase was recognized.
func (d DateComponents) Found() bool {
	return d.Kind != DateNone
}

// dateInterpreters turn a pattern hit into components. ok=false lets the next
// pattern in the bank try.
var dateInterpreters = map[DateTag]func(h hit, text string, ref time.Time) (DateComponents, bool){
	DateTagToday: func(h hit, _ string, _ time.Time) (DateComponents, bool) {
		return DateComponents{Kind: DateRelative, DayOffset: 0, Span: h.span}, true
	},
	DateTagDayAfterTomorrow: func(h hit, _ string, _ time.Time) (DateComponents, bool) {
		return DateComponents{Kind: DateRelative, DayOffset: 2, Span: h.span}, true
	},
	DateTagTomorrow: func(h hit, _ string, _ time.Time) (DateComponents, bool) {
		return DateComponents{Kind: DateRelative, DayOffset: 1, Span: h.span}, true
	},
	DateTagWeekday: interpretWeekday,
	DateTagAbsolute: interpretAbsolute,
}

// ResolveDate finds the highest-priority date phrase in text relative to ref.
// The decision depends only on text and ref's calendar date and weekday.
func ResolveDate(text string, ref time.Time) (DateComponents, bool) {
	for _, p := range datePatterns {
		h, ok := findFirst(p.Pattern, text)
		if !ok {
			continue
		}
		dc, ok := dateInterpreters[p.Tag](h, text, ref)
		if !ok {
			continue
		}
		dc.Tag = p.Tag
		return dc, true
	}
	return DateComponents{Kind: DateNone}, false
}

func interpretWeekday(h hit, _ string, ref time.Time) (DateComponents, bool) {
	target, ok := weekdayLexicon[lookupKey(h.groups[1])]
	if !ok {
		return DateComponents{}, false
	}
	forceNext := h.groups[0] != "" || h.groups[2] != ""

	offset := WeekdayOf(ref).DaysUntil(target)
	if offset <= 0 {
		offset += 7
	}
	// "próxima" never lands inside the coming seven days.
	if forceNext && offset < 7 {
		offset += 7
	}
	return DateComponents{
		Kind:      DateWeekday,
		DayOffset: offset,
		Weekday:   target,
		ForceNext: forceNext,
		Span:      h.span,
	}, true
}

func interpretAbsolute(h hit, _ string, ref time.Time) (DateComponents, bool) {
	day, _ := strconv.Atoi(h.groups[0])
	month, _ := strconv.Atoi(h.groups[1])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return DateComponents{}, false
	}

	refDate := civilDate(ref.Year(), ref.Month(), ref.Day())
	year := ref.Year()
	explicitYear := h.groups[2] != ""
	if explicitYear {
		year, _ = strconv.Atoi(h.groups[2])
		if len(h.groups[2]) == 2 {
			year += 2000
		}
	}

	target := civilDate(year, time.Month(month), day)
	// time.Date normalizes 31/02 into March; such dates are not real.
	if target.Day() != day || int(target.Month()) != month {
		return DateComponents{}, false
	}
	if !explicitYear && target.Before(refDate) {
		year++
		target = civilDate(year, time.Month(month), day)
		if target.Day() != day {
			return DateComponents{}, false
		}
	}

	return DateComponents{
		Kind:      DateAbsolute,
		DayOffset: daysBetween(refDate, target),
		Day:       day,
		Month:     time.Month(month),
		Year:      year,
		Span:      h.span,
	}, true
}

// civilDate is a calendar date at UTC midnight, free of DST effects.
func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
