package ptime

import (
	"strconv"
)

// TimeComponents is a wall-clock time in 24-hour form.
type TimeComponents struct {
	Hour   int
	Minute int
	Tag    TimeTag
	Span   Span
}

// clockInterpreters turn a pattern hit into an hour and minute. ok=false
// rejects the hit; the caller then tries the next hit or pattern.
var clockInterpreters = map[TimeTag]func(h hit, text string) (hour, minute int, ok bool){
	TimeTagColon: func(h hit, _ string) (int, int, bool) {
		return atoiClock(h.groups[0], h.groups[1])
	},
	TimeTagHourMark: func(h hit, _ string) (int, int, bool) {
		return atoiClock(h.groups[0], h.groups[1])
	},
	TimeTagAt: func(h hit, _ string) (int, int, bool) {
		hour, _, ok := atoiClock(h.groups[0], "")
		if !ok {
			return 0, 0, false
		}
		return hour, minuteLexicon[lookupKey(h.groups[1])], true
	},
	TimeTagTrailing: func(h hit, text string) (int, int, bool) {
		return atoiClock(text[h.span.Start:h.span.End], "")
	},
	TimeTagSpelled: interpretSpelled,
	TimeTagPeriod: func(h hit, _ string) (int, int, bool) {
		hour, ok := periodHours[lookupKey(h.groups[0])]
		return hour, 0, ok
	},
}

// ResolveTime extracts the highest-priority clock phrase from text. Patterns
// are tried in bank order and the first accepted hit wins.
func ResolveTime(text string) (TimeComponents, bool) {
	for _, p := range timePatterns {
		for _, h := range findAll(p.Pattern, text) {
			hour, minute, ok := clockInterpreters[p.Tag](h, text)
			if !ok {
				continue
			}
			hour = applyPeriod(p.Tag, h, text, hour)
			return TimeComponents{Hour: hour, Minute: minute, Tag: p.Tag, Span: h.span}, true
		}
	}
	return TimeComponents{}, false
}

// dayPart is the part of the day a period phrase refers to.
type dayPart int

const (
	partNone dayPart = iota
	partMorning
	partDawn
	partAfternoon
	partNight
)

// applyPeriod converts a 12-hour reading to 24-hour form. "HH:MM" and a bare
// trailing number are taken as written. "HHh" only follows a period phrase
// attached to it. "às NN" and spelled hours prefer an attached phrase and
// otherwise take an afternoon or evening marker anywhere in the text.
func applyPeriod(tag TimeTag, h hit, text string, hour int) int {
	switch tag {
	case TimeTagHourMark:
		return shiftHour(hour, followingPart(text[h.span.End:]))
	case TimeTagAt, TimeTagSpelled:
		part := followingPart(text[h.span.End:])
		if part == partNone {
			part = textPart(text)
		}
		return shiftHour(hour, part)
	default:
		return hour
	}
}

func shiftHour(hour int, part dayPart) int {
	switch {
	case hour == 12 && (part == partNight || part == partDawn):
		return 0
	case hour >= 1 && hour <= 11 && (part == partAfternoon || part == partNight):
		return hour + 12
	default:
		return hour
	}
}

// followingPart reads a period phrase at the start of rest.
func followingPart(rest string) dayPart {
	m := periodFollowPattern.FindStringSubmatch(rest)
	if m == nil {
		return partNone
	}
	return partOf(m[1] + m[2])
}

// textPart reports an afternoon or evening marker anywhere in text.
func textPart(text string) dayPart {
	h, ok := findFirst(pmPattern, text)
	if !ok {
		return partNone
	}
	if h.groups[0] == "" {
		return partAfternoon
	}
	return partOf(h.groups[0])
}

func partOf(word string) dayPart {
	switch lookupKey(word) {
	case "tarde", "pm", "p.m.":
		return partAfternoon
	case "noite":
		return partNight
	case "madrugada":
		return partDawn
	default:
		return partMorning
	}
}

func interpretSpelled(h hit, text string) (int, int, bool) {
	prep, hourWord, minuteWord, hoursWord := h.groups[0], h.groups[1], h.groups[2], h.groups[3]
	key := lookupKey(hourWord)
	hour, ok := hourLexicon[key]
	if !ok {
		return 0, 0, false
	}
	minute := minuteLexicon[lookupKey(minuteWord)]

	// A bare number word is usually not a time ("uma reunião", "dez pessoas").
	noonOrMidnight := key != "doze" && (hour == 12 || hour == 0)
	anchored := noonOrMidnight || prep != "" || minuteWord != "" || hoursWord != "" ||
		periodFollowPattern.MatchString(text[h.span.End:])
	if !anchored {
		return 0, 0, false
	}
	return hour, minute, true
}

func atoiClock(hourStr, minuteStr string) (int, int, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute := 0
	if minuteStr != "" {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil || minute < 0 || minute > 59 {
			return 0, 0, false
		}
	}
	return hour, minute, true
}
