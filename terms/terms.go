// Package terms substitutes drafting terminology between languages.
//
// Every glossary is keyed by English, so any pair of supported languages is
// bridged by looking a localized term up in its source glossary, taking the
// English key and rendering it with the target glossary.
package terms

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// rule replaces one source term with its rendering.
type rule struct {
	pattern *Pattern
	from    string
	to      string
}

type dictionary struct {
	lang    string
	keys    []string         // lower-cased English keys, in insertion order
	entries map[string]Entry // by lower-cased English key
	forward []rule           // English -> local, longest English first
	reverse []rule           // local -> English, longest local first
}

// Glossary is an immutable set of per-language dictionaries. It is safe for
// concurrent use.
type Glossary struct {
	files []File
	langs []string
	dicts map[string]*dictionary
}

var defaultGlossary = sync.OnceValues(func() (*Glossary, error) {
	files, err := loadBuiltin()
	if err != nil {
		return nil, err
	}
	return New(files...)
})

// Default returns the glossary built from the embedded dictionaries.
func Default() *Glossary {
	g, err := defaultGlossary()
	if err != nil {
		panic(fmt.Sprintf("terms: embedded dictionaries: %v", err))
	}
	return g
}

// New builds a glossary from files. A later entry with the same English key
// (case-insensitive) as an earlier one for the same language replaces its
// rendering in place.
func New(files ...File) (*Glossary, error) {
	g := &Glossary{dicts: make(map[string]*dictionary)}
	for _, f := range files {
		if err := f.validate("glossary"); err != nil {
			return nil, err
		}
		g.files = append(g.files, f)

		d := g.dicts[f.Lang]
		if d == nil {
			d = &dictionary{lang: f.Lang, entries: make(map[string]Entry)}
			g.dicts[f.Lang] = d
			g.langs = append(g.langs, f.Lang)
		}
		for _, e := range f.Entries() {
			key := strings.ToLower(strings.TrimSpace(e.English))
			if _, ok := d.entries[key]; !ok {
				d.keys = append(d.keys, key)
			}
			d.entries[key] = e
		}
	}
	for _, d := range g.dicts {
		d.index()
	}
	return g, nil
}

// With returns a new glossary with files layered over g.
func (g *Glossary) With(files ...File) (*Glossary, error) {
	all := make([]File, 0, len(g.files)+len(files))
	all = append(all, g.files...)
	all = append(all, files...)
	return New(all...)
}

func (d *dictionary) index() {
	d.forward = make([]rule, 0, len(d.keys))
	for _, key := range d.keys {
		e := d.entries[key]
		d.forward = append(d.forward, rule{pattern: BuildPattern(e.English), from: e.English, to: e.Local})
	}
	sortLongestFirst(d.forward)

	// Group on the localized term; the first English key seen wins.
	seen := make(map[string]bool)
	d.reverse = make([]rule, 0, len(d.keys))
	for _, key := range d.keys {
		e := d.entries[key]
		if seen[e.Local] {
			continue
		}
		seen[e.Local] = true
		d.reverse = append(d.reverse, rule{pattern: BuildPattern(e.Local), from: e.Local, to: e.English})
	}
	for _, key := range d.keys {
		e := d.entries[key]
		for _, alias := range e.Aliases {
			if alias == "" || seen[alias] {
				continue
			}
			seen[alias] = true
			d.reverse = append(d.reverse, rule{pattern: BuildPattern(alias), from: alias, to: e.English})
		}
	}
	sortLongestFirst(d.reverse)
}

func sortLongestFirst(rules []rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return utf8.RuneCountInString(rules[i].from) > utf8.RuneCountInString(rules[j].from)
	})
}

// NormalizeLang maps a language code onto the glossary keys: lower case,
// "" is English, every Chinese variant is zh-CN and regional suffixes are
// dropped ("pt-BR" and "pt_BR" become "pt").
func NormalizeLang(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	switch {
	case c == "":
		return "en"
	case c == "auto":
		return c
	case strings.HasPrefix(c, "zh"):
		return "zh-CN"
	}
	if i := strings.IndexAny(c, "-_"); i > 0 {
		return c[:i]
	}
	return c
}

// Apply replaces the terms of sourceLang found in text with their
// targetLang rendering. With sourceLang "auto" the built-in languages are
// tried in order and the first one that changes the text wins; if none
// does, the text is treated as English. Unsupported languages leave the text
// unchanged.
func (g *Glossary) Apply(text, sourceLang, targetLang string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	src, tgt := NormalizeLang(sourceLang), NormalizeLang(targetLang)
	if src != "auto" {
		return g.apply(text, src, tgt)
	}
	for _, lang := range builtinOrder {
		if _, ok := g.dicts[lang]; !ok {
			continue
		}
		if out := g.apply(text, lang, tgt); out != text {
			return out
		}
	}
	return g.apply(text, "en", tgt)
}

// apply handles a concrete source language.
func (g *Glossary) apply(text, src, tgt string) string {
	if src == tgt {
		return text
	}

	if src == "en" {
		d, ok := g.dicts[tgt]
		if !ok {
			return text
		}
		return substitute(text, d.forward, nil)
	}

	source, ok := g.dicts[src]
	if !ok {
		return text
	}
	if tgt == "en" {
		return substitute(text, source.reverse, nil)
	}

	target, ok := g.dicts[tgt]
	if !ok {
		return text
	}
	return substitute(text, source.reverse, func(r rule) (string, bool) {
		e, ok := target.entries[strings.ToLower(r.to)]
		return e.Local, ok
	})
}

// substitute runs rules over text in order. render, when set, maps a rule to
// its output; rules it rejects are skipped.
func substitute(text string, rules []rule, render func(rule) (string, bool)) string {
	spans := []span{{text: text}}
	for _, r := range rules {
		to := r.to
		if render != nil {
			var ok bool
			if to, ok = render(r); !ok {
				continue
			}
		}
		spans = r.pattern.replace(spans, to)
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, sp := range spans {
		b.WriteString(sp.text)
	}
	return b.String()
}

// Languages lists the languages that have a glossary.
func (g *Glossary) Languages() []string {
	return append([]string(nil), g.langs...)
}

// Lookup returns the rendering of an English term in lang.
func (g *Glossary) Lookup(lang, english string) (string, bool) {
	d, ok := g.dicts[NormalizeLang(lang)]
	if !ok {
		return "", false
	}
	e, ok := d.entries[strings.ToLower(strings.TrimSpace(english))]
	return e.Local, ok
}

// Entries returns the entries for lang in dictionary order.
func (g *Glossary) Entries(lang string) []Entry {
	d, ok := g.dicts[NormalizeLang(lang)]
	if !ok {
		return nil
	}
	out := make([]Entry, 0, len(d.keys))
	for _, key := range d.keys {
		out = append(out, d.entries[key])
	}
	return out
}
