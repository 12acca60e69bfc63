package domain

import (
	"strings"
	"unicode/utf8"
)

// Marker delimits a highlighted match.
type Marker struct {
	Open  string
	Close string
}

// MarkTag wraps matches in HTML <mark> tags, the form search servers emit.
var MarkTag = Marker{Open: "<mark>", Close: "</mark>"}

// Segment is a run of text that either matches the highlight term or not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight wraps every case-insensitive occurrence of term in text with
// <mark> tags, preserving the case of the source text. Text without a match
// is returned unchanged.
func Highlight(text, term string) string {
	return HighlightWith(text, term, MarkTag)
}

// HighlightWith is Highlight with a custom marker.
func HighlightWith(text, term string, m Marker) string {
	segments := HighlightSegments(text, term)
	if len(segments) == 1 && !segments[0].Match {
		return text
	}

	var b strings.Builder
	for _, seg := range segments {
		if seg.Match {
			b.WriteString(m.Open)
			b.WriteString(seg.Text)
			b.WriteString(m.Close)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// HighlightSegments splits text into alternating non-matching and matching
// runs for term, compared case-insensitively. An empty term, or a term that
// does not occur, yields the whole text as a single non-matching segment.
func HighlightSegments(text, term string) []Segment {
	term = strings.TrimSpace(term)
	if term == "" || text == "" {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	rest := text
	for rest != "" {
		start, end, ok := indexFold(rest, term)
		if !ok {
			break
		}
		if start > 0 {
			segments = append(segments, Segment{Text: rest[:start]})
		}
		segments = append(segments, Segment{Text: rest[start:end], Match: true})
		rest = rest[end:]
	}
	if rest != "" || len(segments) == 0 {
		segments = append(segments, Segment{Text: rest})
	}
	return segments
}

// indexFold finds the first case-insensitive occurrence of term in s and
// returns its byte bounds in s. Matching walks runes so that byte offsets
// stay valid even when case folding changes a rune's encoded width.
func indexFold(s, term string) (int, int, bool) {
	termRunes := utf8.RuneCountInString(term)
	for i := range s {
		end := i
		n := 0
		for end < len(s) && n < termRunes {
			_, w := utf8.DecodeRuneInString(s[end:])
			end += w
			n++
		}
		if n < termRunes {
			return 0, 0, false
		}
		if strings.EqualFold(s[i:end], term) {
			return i, end, true
		}
	}
	return 0, 0, false
}

// StripMarks removes <mark> tags a server may already have inserted,
// so that highlighting is applied exactly once by the client.
func StripMarks(text string) string {
	text = strings.ReplaceAll(text, MarkTag.Open, "")
	return strings.ReplaceAll(text, MarkTag.Close, "")
}
