// Package mask hides MText control sequences from a translation step and
// restores them afterwards.
//
// Every recognized code is replaced by a numbered placeholder " [ID:n] "
// padded with spaces so the translator sees it as an isolated word. Unmask
// puts the codes back, drops that padding and undoes the spacing the
// translator introduced around line breaks and formatting directives.
package mask

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineBreak is the MText paragraph break marker.
const LineBreak = `\P`

// codePattern is a single ordered alternation: overlapping candidates resolve
// leftmost-first, in the order listed.
var codePattern = regexp.MustCompile(`(?i)` +
	`(\\U\+[0-9a-f]{4})` + // unicode escapes
	`|(\\[acfhqtw][^;]*;|(?-i:\\p[ilqrtx][^;\\]*;))` + // inline formatting
	`|(\\S[^;]*;)` + // stacked fractions
	`|(%%[cdpuo])` + // standard percent codes
	`|(%%[0-9]{3})` + // character codes
	`|(\\P)` + // line break
	`|(\\[lok])` + // underline / overline / strike toggles
	`|(\\[\\{}])` + // escaped literals
	`|([{}])`) // grouping braces

var (
	placeholderPattern = regexp.MustCompile(`(?i)\[\s*ID\s*:\s*(\d+)\s*\]`)
	strictPlaceholder  = regexp.MustCompile(`\[ID:\d+\]`)

	spaceAroundBreak  = regexp.MustCompile(`\s*(\\P)\s*`)
	spaceAfterFormat  = regexp.MustCompile(`(?i)(\\[acfhqtw][^;]*;|\\S[^;]*;|(?-i:\\p[ilqrtx][^;\\]*;))\s+`)
	spaceAfterToggle  = regexp.MustCompile(`(?i)(\\[lok])\s+`)
	spaceAfterPercent = regexp.MustCompile(`(?i)(%%[cdpuo])\s+`)
)

// Spacing is the number of blanks around a code in the masked input. A code
// at either end of the input counts one blank on that side.
type Spacing struct {
	Before, After int
}

// Masked is the translation-safe form of a string.
type Masked struct {
	// Body is the input with every code replaced by a placeholder.
	Body string
	// Codes holds the replaced codes; Codes[n] belongs to placeholder n.
	Codes []string
	// Spacing[n] records the blanks around Codes[n] in the input.
	Spacing []Spacing
}

// Placeholder returns the padded placeholder for code index n.
func Placeholder(n int) string {
	return fmt.Sprintf(" [ID:%d] ", n)
}

// Mask replaces every control sequence in text with a numbered placeholder.
func Mask(text string) Masked {
	m := Masked{Body: text}
	locs := codePattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return m
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		m.Codes = append(m.Codes, text[loc[0]:loc[1]])
		m.Spacing = append(m.Spacing, Spacing{
			Before: blanksBefore(text, loc[0]),
			After:  blanksAfter(text, loc[1]),
		})
		b.WriteString(Placeholder(len(m.Codes) - 1))
		last = loc[1]
	}
	b.WriteString(text[last:])
	m.Body = b.String()
	return m
}

func blanksBefore(s string, i int) int {
	if i == 0 {
		return 1
	}
	n := 0
	for i > 0 && isBlank(s[i-1]) {
		i--
		n++
	}
	return n
}

func blanksAfter(s string, i int) int {
	if i == len(s) {
		return 1
	}
	n := 0
	for i < len(s) && isBlank(s[i]) {
		i++
		n++
	}
	return n
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// FullyMasked reports whether nothing translatable is left in the body.
func (m Masked) FullyMasked() bool {
	return IsFullyMasked(m.Body)
}

// Unmask restores the codes into translated. The blanks around each code are
// the ones it had in the input, whatever padding the translation step kept
// or collapsed.
func (m Masked) Unmask(translated string) string {
	if len(m.Spacing) != len(m.Codes) {
		return Unmask(translated, m.Codes)
	}
	if translated == "" || len(m.Codes) == 0 {
		return strings.TrimSpace(translated)
	}
	return cleanup(restore(translated, m.Codes, func(g *gap) {
		for i := range g.blanks {
			n := 0
			if i > 0 {
				n = m.Spacing[g.codes[i-1]].After
			}
			if i < len(g.codes) {
				n = max(n, m.Spacing[g.codes[i]].Before)
			}
			g.blanks[i] = n
		}
	}))
}

// IsFullyMasked reports whether body holds only placeholders, digits,
// punctuation, symbols and whitespace.
func IsFullyMasked(body string) bool {
	rest := strictPlaceholder.ReplaceAllString(body, "")
	return !strings.ContainsFunc(rest, unicode.IsLetter)
}

// Unmask puts codes back into translated and normalizes the whitespace
// the translation step introduced. Only the bracketed placeholder is
// replaced; the blanks around it lose the padding Mask added, but a blank
// separating two words is always kept.
func Unmask(translated string, codes []string) string {
	if translated == "" || len(codes) == 0 {
		return strings.TrimSpace(translated)
	}
	return cleanup(restore(translated, codes, dropPadding))
}

func cleanup(out string) string {
	out = spaceAroundBreak.ReplaceAllLiteralString(out, LineBreak)
	out = spaceAfterFormat.ReplaceAllString(out, "$1")
	out = spaceAfterToggle.ReplaceAllString(out, "$1")
	out = spaceAfterPercent.ReplaceAllString(out, "$1")

	lines := strings.Split(out, LineBreak)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, LineBreak)
}

// gap is a run of restored codes with only blanks between them.
type gap struct {
	codes []int
	// blanks[i] precedes codes[i]; the last entry follows the last code.
	blanks []int
	// words is set when letters or digits border the gap on both sides.
	words bool
	// closing is set when the gap opens with a group-closing brace.
	closing bool
}

// dropPadding removes one blank per side of every placeholder.
func dropPadding(g *gap) {
	first, kept := -1, 0
	for i, n := range g.blanks {
		if n > 0 && first < 0 {
			first = i
		}
		pad := 2
		if i == 0 || i == len(g.blanks)-1 {
			pad = 1
		}
		g.blanks[i] = max(0, n-pad)
		kept += g.blanks[i]
	}
	if !g.words || first < 0 || kept > 0 {
		return
	}
	// the kept blank goes outside the group a brace closes
	if g.closing {
		g.blanks[len(g.blanks)-1] = 1
		return
	}
	g.blanks[first] = 1
}

// restore replaces the placeholders of translated with codes. space decides
// the blanks of every gap.
func restore(translated string, codes []string, space func(*gap)) string {
	texts, idx := split(translated, len(codes))

	var b strings.Builder
	head := texts[0]
	for j := 0; j < len(idx); {
		l := j
		for l+1 < len(idx) && strings.Trim(texts[l+1], " \t") == "" {
			l++
		}
		left := strings.TrimRight(head, " \t")
		tail := texts[l+1]
		right := strings.TrimLeft(tail, " \t")

		g := gap{
			codes:   idx[j : l+1],
			blanks:  make([]int, l-j+2),
			words:   endsWithWord(left) && startsWithWord(right),
			closing: codes[idx[j]] == "}",
		}
		g.blanks[0] = len(head) - len(left)
		for k := j + 1; k <= l; k++ {
			g.blanks[k-j] = len(texts[k])
		}
		g.blanks[l-j+1] = len(tail) - len(right)
		space(&g)

		b.WriteString(left)
		for k, c := range g.codes {
			b.WriteString(strings.Repeat(" ", g.blanks[k]))
			b.WriteString(codes[c])
		}
		b.WriteString(strings.Repeat(" ", g.blanks[len(g.codes)]))
		head = right
		j = l + 1
	}
	b.WriteString(head)
	return b.String()
}

// split cuts translated at every placeholder with a known index. Placeholders
// naming no code stay in the text.
func split(translated string, n int) (texts []string, idx []int) {
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(translated, -1) {
		k, err := strconv.Atoi(translated[loc[2]:loc[3]])
		if err != nil || k >= n {
			continue
		}
		texts = append(texts, translated[last:loc[0]])
		idx = append(idx, k)
		last = loc[1]
	}
	return append(texts, translated[last:]), idx
}

func endsWithWord(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return s != "" && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func startsWithWord(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
