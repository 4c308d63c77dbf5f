package terms

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Pattern matches one term inside free text.
type Pattern struct {
	re        *regexp.Regexp
	wordStart bool
	wordEnd   bool
}

// BuildPattern compiles the case-insensitive matcher for term.
//
// Terms containing CJK script match anywhere. Terms ending in something other
// than a letter or digit ("N.T.S.", "Typ.") only need a word boundary before
// them. Everything else must stand as a whole word.
func BuildPattern(term string) *Pattern {
	p := &Pattern{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))}
	if isCJK(term) {
		return p
	}
	p.wordStart = true
	last, _ := utf8.DecodeLastRuneInString(term)
	p.wordEnd = unicode.IsLetter(last) || unicode.IsDigit(last)
	return p
}

func isCJK(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x3040 && r <= 0x30FF, // hiragana, katakana
			r >= 0x3400 && r <= 0x4DBF, // CJK extension A
			r >= 0x4E00 && r <= 0x9FFF, // CJK unified ideographs
			r >= 0xAC00 && r <= 0xD7AF: // hangul syllables
			return true
		}
	}
	return false
}

// isWord reports whether r counts as part of a word. Combining marks are
// included so decomposed Vietnamese diacritics do not split a word.
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// boundary reports whether a word boundary sits between prev and next.
// A missing neighbor is passed as utf8.RuneError.
func boundary(prev, next rune) bool {
	return isWord(prev) != isWord(next)
}

// MatchString reports whether the term occurs in s.
func (p *Pattern) MatchString(s string) bool {
	_, _, ok := p.find(s, 0, utf8.RuneError, utf8.RuneError)
	return ok
}

// find returns the first acceptable match at or after off. before and after
// are the runes just outside s, used for boundary checks at its edges.
func (p *Pattern) find(s string, off int, before, after rune) (int, int, bool) {
	for off <= len(s) {
		loc := p.re.FindStringIndex(s[off:])
		if loc == nil {
			return 0, 0, false
		}
		start, end := off+loc[0], off+loc[1]
		if end > start && p.accept(s, start, end, before, after) {
			return start, end, true
		}
		if start >= len(s) {
			return 0, 0, false
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		off = start + size
	}
	return 0, 0, false
}

func (p *Pattern) accept(s string, start, end int, before, after rune) bool {
	if p.wordStart {
		prev := before
		if start > 0 {
			prev, _ = utf8.DecodeLastRuneInString(s[:start])
		}
		first, _ := utf8.DecodeRuneInString(s[start:end])
		if !boundary(prev, first) {
			return false
		}
	}
	if p.wordEnd {
		next := after
		if end < len(s) {
			next, _ = utf8.DecodeRuneInString(s[end:])
		}
		last, _ := utf8.DecodeLastRuneInString(s[start:end])
		if !boundary(last, next) {
			return false
		}
	}
	return true
}

// span is a piece of text under substitution. Replaced spans are final and
// never matched again.
type span struct {
	text  string
	fixed bool
}

// replace substitutes every acceptable match of p in the unfixed spans.
func (p *Pattern) replace(spans []span, repl string) []span {
	out := make([]span, 0, len(spans))
	for i, sp := range spans {
		if sp.fixed || sp.text == "" {
			out = append(out, sp)
			continue
		}
		before, after := utf8.RuneError, utf8.RuneError
		if i > 0 {
			before, _ = utf8.DecodeLastRuneInString(spans[i-1].text)
		}
		if i+1 < len(spans) {
			after, _ = utf8.DecodeRuneInString(spans[i+1].text)
		}

		text, off := sp.text, 0
		for {
			start, end, ok := p.find(text, off, before, after)
			if !ok {
				break
			}
			if start > 0 {
				out = append(out, span{text: text[:start]})
			}
			out = append(out, span{text: repl, fixed: true})
			before, _ = utf8.DecodeLastRuneInString(text[start:end])
			text, off = text[end:], 0
		}
		if text != "" {
			out = append(out, span{text: text})
		}
	}
	return out
}
