// Package vnenc converts Vietnamese text between Unicode and the legacy
// 8-bit VNI and TCVN3 (ABC) encodings, and guesses which one a string uses.
//
// Legacy text is expected as a Go string whose runes are the 8-bit code
// points of the legacy font (the way CAD hosts hand it over). Use DecodeBytes
// for raw file contents.
package vnenc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

type charset struct {
	vniToUni  *strings.Replacer
	vniMulti  []string // VNI sequences of two or more code units
	uniToVni  map[rune]string
	tcvnToUni map[rune]rune
	uniToTcvn map[rune]rune
	letters   map[rune]struct{}
}

// tables is built on first use and only read afterwards.
var tables = sync.OnceValue(func() *charset {
	cs := &charset{
		uniToVni:  make(map[rune]string, len(unicodeLetters)),
		tcvnToUni: make(map[rune]rune, len(unicodeLetters)),
		uniToTcvn: make(map[rune]rune, len(unicodeLetters)),
		letters:   make(map[rune]struct{}, len(unicodeLetters)),
	}

	vniToUni := make(map[string]string, len(vniSequences))
	var keys []string
	for i, u := range unicodeLetters {
		v := vniSequences[i]
		if _, ok := vniToUni[v]; !ok {
			vniToUni[v] = string(u)
			keys = append(keys, v)
		}
		if _, ok := cs.uniToVni[u]; !ok {
			cs.uniToVni[u] = v
		}

		t := tcvnRunes[i]
		if _, ok := cs.tcvnToUni[t]; !ok {
			cs.tcvnToUni[t] = u
		}
		if _, ok := cs.uniToTcvn[u]; !ok {
			cs.uniToTcvn[u] = t
		}
		cs.letters[u] = struct{}{}
	}

	// strings.Replacer tries old strings in argument order at each position,
	// so longer sequences must come first.
	sort.SliceStable(keys, func(i, j int) bool {
		return utf8.RuneCountInString(keys[i]) > utf8.RuneCountInString(keys[j])
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, vniToUni[k])
		if utf8.RuneCountInString(k) >= 2 {
			cs.vniMulti = append(cs.vniMulti, k)
		}
	}
	cs.vniToUni = strings.NewReplacer(pairs...)
	return cs
})

var (
	detectFormat = regexp.MustCompile(`\\[ACFHQTWacfhqtw][^;]*;`)
	detectBreak  = regexp.MustCompile(`\\P`)
	detectBraces = regexp.MustCompile(`[{}]`)
	detectToggle = regexp.MustCompile(`\\[LloOkK]`)

	fontOverride  = regexp.MustCompile(`\\[Ff][^;]*;`)
	unicodeEscape = regexp.MustCompile(`\\?U\+([0-9A-Fa-f]{4})`)
)

// Convert re-encodes input from source to target. When source is Auto the
// input is first repaired (see Repair) and then detected. Characters with no
// mapping pass through unchanged.
func Convert(input string, source, target Encoding) string {
	if input == "" || source == target {
		return input
	}
	if source == Auto {
		if fixed, ok := Repair(input); ok {
			input = fixed
		}
		source = Detect(input)
	}

	cs := tables()
	text := input
	switch source {
	case TCVN3:
		text = cs.tcvnToUnicode(text)
	case VNI:
		text = cs.vniToUni.Replace(text)
	}

	switch target {
	case TCVN3:
		return cs.unicodeToTCVN(norm.NFC.String(text))
	case VNI:
		return cs.unicodeToVNI(norm.NFC.String(text))
	}
	return text
}

func (cs *charset) tcvnToUnicode(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if u, ok := cs.tcvnToUni[r]; ok {
			r = u
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (cs *charset) unicodeToTCVN(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if t, ok := cs.uniToTcvn[r]; ok {
			r = t
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (cs *charset) unicodeToVNI(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if v, ok := cs.uniToVni[r]; ok {
			b.WriteString(v)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scores holds the evidence Detect weighed.
type Scores struct {
	TCVN3   int
	VNI     int
	Unicode int
}

// Detect guesses the encoding of text. Empty text is Unicode.
func Detect(text string) Encoding {
	enc, _ := DetectScores(text)
	return enc
}

// DetectScores is Detect that also returns the scores behind the decision.
//
// MText directives, line breaks, toggles and braces are removed first. TCVN3
// scores one per character found in its table, VNI one per non-overlapping
// multi-unit sequence, Unicode one per composed Vietnamese letter. VNI wins
// when it beats TCVN3 and is not behind Unicode; TCVN3 wins only when it
// strictly beats both.
func DetectScores(text string) (Encoding, Scores) {
	var sc Scores
	if text == "" {
		return Unicode, sc
	}

	clean := detectFormat.ReplaceAllString(text, "")
	clean = detectBreak.ReplaceAllString(clean, "")
	clean = detectBraces.ReplaceAllString(clean, "")
	clean = detectToggle.ReplaceAllString(clean, "")

	cs := tables()
	for _, r := range clean {
		if _, ok := cs.tcvnToUni[r]; ok {
			sc.TCVN3++
		}
		if _, ok := cs.letters[r]; ok {
			sc.Unicode++
		}
	}
	for _, k := range cs.vniMulti {
		sc.VNI += strings.Count(clean, k)
	}

	switch {
	case sc.VNI > sc.TCVN3 && sc.VNI >= sc.Unicode:
		return VNI, sc
	case sc.TCVN3 > sc.VNI && sc.TCVN3 > sc.Unicode:
		return TCVN3, sc
	}
	return Unicode, sc
}

// Repair undoes the common mojibake where UTF-8 Vietnamese was read as
// Windows-1252 ("chÆ°Æ¡ng" for "chương"). It reports false and returns text
// unchanged unless every rune fits Windows-1252, the resulting bytes are
// valid UTF-8 and the decoded text contains Vietnamese letters.
func Repair(text string) (string, bool) {
	if isASCII(text) {
		return text, false
	}
	raw, err := charmap.Windows1252.NewEncoder().String(text)
	if err != nil || !utf8.ValidString(raw) || raw == text {
		return text, false
	}
	if !ContainsVietnamese(raw) {
		return text, false
	}
	return raw, true
}

// ContainsVietnamese reports whether text holds a composed Vietnamese letter.
func ContainsVietnamese(text string) bool {
	cs := tables()
	for _, r := range text {
		if _, ok := cs.letters[r]; ok {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// CleanMText prepares MText contents for conversion. Font overrides are
// dropped and \U+XXXX escapes are decoded.
func CleanMText(text string) string {
	text = fontOverride.ReplaceAllString(text, "")
	return unicodeEscape.ReplaceAllStringFunc(text, func(esc string) string {
		hex := unicodeEscape.FindStringSubmatch(esc)[1]
		cp, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return esc
		}
		return string(rune(cp))
	})
}
