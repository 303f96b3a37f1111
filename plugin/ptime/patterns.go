package ptime

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Go's \b only knows ASCII word characters, which breaks on "às" or "amanhã".
// Standalone words are delimited by any non letter/digit rune instead.
const (
	wordStart = `(?:^|[^\p{L}\p{N}])`
	wordEnd   = `(?:$|[^\p{L}\p{N}])`
)

// word compiles a case-insensitive standalone-word pattern. Group 1 is the
// matched phrase; the core's own groups follow from index 2.
func word(core string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + wordStart + `(` + core + `)` + wordEnd)
}

// Span is a byte range [Start, End) in the original utterance.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// DateTag names a date pattern of the lexical bank.
type DateTag string

const (
	DateTagToday            DateTag = "hoje"
	DateTagDayAfterTomorrow DateTag = "depois de amanha"
	DateTagTomorrow         DateTag = "amanha"
	DateTagWeekday          DateTag = "weekday"
	DateTagAbsolute         DateTag = "absolute"
)

// TimeTag names a time pattern of the lexical bank.
type TimeTag string

const (
	TimeTagColon    TimeTag = "hh:mm"
	TimeTagHourMark TimeTag = "hh h mm"
	TimeTagAt       TimeTag = "as NN"
	TimeTagTrailing TimeTag = "trailing number"
	TimeTagSpelled  TimeTag = "spelled word"
	TimeTagPeriod   TimeTag = "period"
)

// DatePattern pairs a date regular expression with its semantic tag.
type DatePattern struct {
	Tag     DateTag
	Pattern *regexp.Regexp
}

// TimePattern pairs a time regular expression with its semantic tag.
type TimePattern struct {
	Tag     TimeTag
	Pattern *regexp.Regexp
}

const (
	dayNames    = `segunda|terça|terca|quarta|quinta|sexta|sábado|sabado|domingo`
	atPrefix    = `(?:(?:às|as|à)\s+)?`
	hourMarks   = `(?:h|hs|horas?)`
	minuteWords = `meia|quinze|vinte|trinta|quarenta e cinco|quarenta|dez`
	hourWords   = `uma|duas|três|tres|quatro|cinco|seis|sete|oito|nove|dez|onze|doze|meio[-\s]dia|meia[-\s]noite`
	periodWords = `manhã|manha|tarde|noite|madrugada`
)

// Order is priority: the first pattern that matches wins.
var datePatterns = []DatePattern{
	{DateTagToday, word(`hoje`)},
	{DateTagDayAfterTomorrow, word(`depois\s+de\s+(?:amanhã|amanha)`)},
	{DateTagTomorrow, word(`amanhã|amanha`)},
	{DateTagWeekday, word(
		`(?:(?:na|no|nesta|neste|nessa|nesse|esta|este|essa|esse)\s+)?` +
			`(?:(próxima|proxima|próximo|proximo)\s+)?` +
			`(` + dayNames + `)(?:[-\s]feira)?` +
			`(?:\s+(que\s+vem))?`)},
	{DateTagAbsolute, word(`(?:dia\s+)?(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?`)},
}

// Order is priority: an explicit "10:00" must win over a vaguer "às 10".
var timePatterns = []TimePattern{
	{TimeTagColon, word(atPrefix + `([01]?\d|2[0-3]):([0-5]\d)(?:\s*` + hourMarks + `)?`)},
	{TimeTagHourMark, word(atPrefix + `(\d{1,2})\s?` + hourMarks + `(?:\s?([0-5]\d))?`)},
	{TimeTagAt, word(`(?:às|as|à)\s+(\d{1,2})(?:\s+e\s+(` + minuteWords + `))?`)},
	{TimeTagTrailing, regexp.MustCompile(`(?:^|[^\p{L}\p{N}:/])(\d{1,2})\s*$`)},
	{TimeTagSpelled, word(`(?:(às|as|à)\s+)?(` + hourWords + `)(?:\s+e\s+(` + minuteWords + `))?(?:\s+(horas?))?`)},
	{TimeTagPeriod, word(`(?:(?:de|da|pela|à|a)\s+)?(` + periodWords + `)`)},
}

var (
	// pmPattern marks afternoon/evening hours that shift 1-11 by twelve.
	pmPattern = word(`(?:da|de|à|a)\s+(tarde|noite)|pm|p\.m\.`)
	// periodPhrasePattern covers every period phrase, stripped from titles.
	periodPhrasePattern = word(`(?:da|de|à|a)\s+(?:` + periodWords + `)|pm|p\.m\.|am|a\.m\.`)
	// periodFollowPattern matches a period phrase right after a clock phrase.
	periodFollowPattern = regexp.MustCompile(`(?i)^\s*(?:(?:da|de|à|a)\s+(` + periodWords + `)|(pm|p\.m\.|am|a\.m\.))` + wordEnd)
)

var weekdayLexicon = map[string]Weekday{
	"segunda": Monday,
	"terça":   Tuesday,
	"terca":   Tuesday,
	"quarta":  Wednesday,
	"quinta":  Thursday,
	"sexta":   Friday,
	"sábado":  Saturday,
	"sabado":  Saturday,
	"domingo": Sunday,
}

var hourLexicon = map[string]int{
	"uma":        1,
	"duas":       2,
	"três":       3,
	"tres":       3,
	"quatro":     4,
	"cinco":      5,
	"seis":       6,
	"sete":       7,
	"oito":       8,
	"nove":       9,
	"dez":        10,
	"onze":       11,
	"doze":       12,
	"meio-dia":   12,
	"meio dia":   12,
	"meia-noite": 0,
	"meia noite": 0,
}

var minuteLexicon = map[string]int{
	"dez":              10,
	"quinze":           15,
	"vinte":            20,
	"meia":             30,
	"trinta":           30,
	"quarenta":         40,
	"quarenta e cinco": 45,
}

// periodHours are the hours assumed when only a part of the day is given.
var periodHours = map[string]int{
	"madrugada": 2,
	"manhã":     9,
	"manha":     9,
	"tarde":     14,
	"noite":     19,
}

// DatePatterns returns the ordered date patterns.
func DatePatterns() []DatePattern {
	out := make([]DatePattern, len(datePatterns))
	copy(out, datePatterns)
	return out
}

// TimePatterns returns the ordered time patterns.
func TimePatterns() []TimePattern {
	out := make([]TimePattern, len(timePatterns))
	copy(out, timePatterns)
	return out
}

// hit is one match of a pattern: the phrase span and the core's groups.
type hit struct {
	span   Span
	groups []string
}

func hitFromIndex(text string, idx []int) hit {
	h := hit{span: Span{Start: idx[2], End: idx[3]}}
	for i := 4; i+1 < len(idx); i += 2 {
		if idx[i] < 0 {
			h.groups = append(h.groups, "")
			continue
		}
		h.groups = append(h.groups, text[idx[i]:idx[i+1]])
	}
	return h
}

// findFirst returns the leftmost match of re in text.
func findFirst(re *regexp.Regexp, text string) (hit, bool) {
	idx := re.FindStringSubmatchIndex(text)
	if idx == nil {
		return hit{}, false
	}
	return hitFromIndex(text, idx), true
}

// findAll returns every match of re in text. The search restarts at the end of
// each phrase so a consumed delimiter never hides the next word.
func findAll(re *regexp.Regexp, text string) []hit {
	var hits []hit
	pos := 0
	for pos <= len(text) {
		idx := re.FindStringSubmatchIndex(text[pos:])
		if idx == nil {
			break
		}
		h := hitFromIndex(text[pos:], idx)
		h.span.Start += pos
		h.span.End += pos
		hits = append(hits, h)
		if h.span.End <= pos {
			pos++
			continue
		}
		pos = h.span.End
	}
	return hits
}

// Normalize lower-cases text with Brazilian Portuguese rules, collapses runs
// of whitespace and trims it.
func Normalize(text string) string {
	lower := cases.Lower(language.BrazilianPortuguese).String(text)
	return strings.Join(strings.Fields(lower), " ")
}

// lookupKey folds a matched phrase to the form used by the lexicon maps.
func lookupKey(s string) string {
	return Normalize(s)
}
