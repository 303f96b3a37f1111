package ptime

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// edgeStopWords are dropped only at the start or end of a title, so
// "reunião com João" keeps its inner "com".
var edgeStopWords = map[string]bool{
	"à": true, "a": true, "às": true, "as": true, "ao": true, "até": true,
	"com": true, "de": true, "da": true, "do": true, "dia": true, "e": true,
	"em": true, "na": true, "no": true, "para": true, "pra": true, "pro": true,
	"pela": true, "pelo": true,
}

// titleReference anchors date matching while extracting titles. Only which
// phrase matched matters here, not the resolved day; a leap year keeps 29/02.
var titleReference = time.Date(2000, time.January, 3, 12, 0, 0, 0, time.UTC)

// ExtractEventTitle removes the winning date and time phrases plus edge stop
// words from utterance. Stripping repeats until nothing changes, so applying
// it to its own output is a no-op. When nothing but temporal words would be
// left, utterance is returned untouched.
func ExtractEventTitle(utterance string) string {
	cur := collapseSpaces(utterance)
	if cur == "" {
		return utterance
	}
	for {
		next := stripTemporal(cur)
		if next == "" {
			return utterance
		}
		if next == cur {
			return cur
		}
		cur = next
	}
}

func stripTemporal(text string) string {
	var spans []Span

	if date, ok := ResolveDate(text, titleReference); ok {
		spans = append(spans, date.Span)
	}
	if clock, ok := ResolveTime(text); ok {
		spans = append(spans, clock.Span)
		for _, h := range findAll(periodPhrasePattern, text) {
			spans = append(spans, h.span)
		}
	}

	return trimEdges(collapseSpaces(cutSpans(text, spans)))
}

// cutSpans removes the byte ranges from text, replacing each with a space.
func cutSpans(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.Empty() || sp.End <= pos {
			continue
		}
		if sp.Start > pos {
			b.WriteString(text[pos:sp.Start])
		}
		b.WriteByte(' ')
		pos = sp.End
	}
	b.WriteString(text[pos:])
	return b.String()
}

func trimEdges(text string) string {
	words := strings.Fields(text)
	for len(words) > 0 && isEdgeNoise(words[0]) {
		words = words[1:]
	}
	for len(words) > 0 && isEdgeNoise(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	out := strings.Join(words, " ")
	return strings.TrimFunc(out, isEdgePunct)
}

func isEdgeNoise(w string) bool {
	trimmed := strings.TrimFunc(w, isEdgePunct)
	return trimmed == "" || edgeStopWords[Normalize(trimmed)]
}

func isEdgePunct(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(",.;:!?-–—", r)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
