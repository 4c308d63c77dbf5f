// Package memory implements the translation memory: a YAML file that
// remembers every fragment already translated for a language pair, keyed by
// the MD5 checksum of the source text. Title blocks, room tags and notes
// repeated across layouts are then sent to the translation endpoint once.
//
// A project keeps its memory next to .cadtext.yaml as cadtext.memory.yaml.
// Without a project file the shared memory in the XDG data directory is used:
//
//	$XDG_DATA_HOME/cadtext/memory.yaml  (default: ~/.local/share/cadtext/)
package memory

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileName is the default memory file name.
const FileName = "cadtext.memory.yaml"

// Version is the memory file format version.
const Version = 1

const dataDirName = "cadtext"

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Entry is one remembered translation.
type Entry struct {
	Source string `yaml:"source"`
	Text   string `yaml:"text"`
}

// Memory is the translation memory file. It is safe for concurrent use.
type Memory struct {
	Version int                         `yaml:"version"`
	Pairs   map[string]map[string]Entry `yaml:"pairs"` // "sl>tl" -> md5 -> entry

	mu    sync.Mutex `yaml:"-"`
	path  string     `yaml:"-"`
	dirty bool       `yaml:"-"`
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a memory file. A missing file yields an empty memory that will
// be created by Save.
func Load(path string) (*Memory, error) {
	m := &Memory{
		Version: Version,
		Pairs:   make(map[string]map[string]Entry),
		path:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Version > Version {
		return nil, fmt.Errorf("%s: format version %d is newer than supported %d", path, m.Version, Version)
	}
	m.path = path

	if m.Pairs == nil {
		m.Pairs = make(map[string]map[string]Entry)
	}

	return m, nil
}

// LoadDir reads FileName from dir.
func LoadDir(dir string) (*Memory, error) {
	return Load(filepath.Join(dir, FileName))
}

// DataDir returns the shared data directory.
// Respects $XDG_DATA_HOME (falls back to ~/.local/share).
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

// DefaultPath returns the path of the shared memory file.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "memory.yaml"), nil
}

// Save writes the memory to disk if anything changed since it was loaded.
func (m *Memory) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.path == "" {
		return fmt.Errorf("memory file path not set")
	}
	if !m.dirty {
		return nil
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling memory: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(m.path), err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", m.path, err)
	}
	m.dirty = false

	return nil
}

// Path returns the memory file path.
func (m *Memory) Path() string {
	return m.path
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

// NoTerms is the variant holding translations made without the glossary
// pre-pass.
const NoTerms = "noterms"

// Variant is a view of a Memory whose pair keys carry a name, e.g.
// "en>vi+noterms", so translations made under different settings never
// answer for each other.
type Variant struct {
	m    *Memory
	name string
}

// Variant returns the view of m named name. The empty name is m itself.
func (m *Memory) Variant(name string) *Variant {
	return &Variant{m: m, name: name}
}

func (v *Variant) pair(sl, tl string) string {
	if v.name == "" {
		return PairKey(sl, tl)
	}
	return PairKey(sl, tl) + "+" + v.name
}

// Lookup returns the remembered translation of text in this variant.
func (v *Variant) Lookup(text, sl, tl string) (string, bool) {
	return v.m.lookup(v.pair(sl, tl), text)
}

// Store records a translation in this variant.
func (v *Variant) Store(text, sl, tl, translated string) {
	v.m.store(v.pair(sl, tl), text, translated)
}

// Prune is Memory.Prune for this variant.
func (v *Variant) Prune(sl, tl string, current []string) int {
	return v.m.prune(v.pair(sl, tl), current)
}

// Hash computes the MD5 hex digest of a string.
func Hash(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}

// PairKey builds the key of a language pair, e.g. "en>vi".
func PairKey(sl, tl string) string {
	norm := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return "auto"
		}
		return s
	}
	return norm(sl) + ">" + norm(tl)
}

// Lookup returns the remembered translation of text.
func (m *Memory) Lookup(text, sl, tl string) (string, bool) {
	return m.lookup(PairKey(sl, tl), text)
}

// Store records a translation.
func (m *Memory) Store(text, sl, tl, translated string) {
	m.store(PairKey(sl, tl), text, translated)
}

// Prune removes the entries of a pair whose source is not in current.
// It returns the number of entries removed.
func (m *Memory) Prune(sl, tl string, current []string) int {
	return m.prune(PairKey(sl, tl), current)
}

func (m *Memory) lookup(pair, text string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.Pairs[pair]
	if !ok {
		return "", false
	}
	e, ok := entries[Hash(text)]
	if !ok || e.Source != text {
		return "", false
	}
	return e.Text, true
}

func (m *Memory) store(pair, text, translated string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Pairs[pair] == nil {
		m.Pairs[pair] = make(map[string]Entry)
	}
	key := Hash(text)
	if old, ok := m.Pairs[pair][key]; ok && old.Source == text && old.Text == translated {
		return
	}
	m.Pairs[pair][key] = Entry{Source: text, Text: translated}
	m.dirty = true
}

func (m *Memory) prune(pair string, current []string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.Pairs[pair]
	if existing == nil {
		return 0
	}

	valid := make(map[string]bool, len(current))
	for _, s := range current {
		valid[Hash(s)] = true
	}

	removed := 0
	for k := range existing {
		if !valid[k] {
			delete(existing, k)
			removed++
		}
	}
	if removed > 0 {
		m.dirty = true
	}
	return removed
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats returns the number of language pairs and total entries.
func (m *Memory) Stats() (pairs, entries int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pairs = len(m.Pairs)
	for _, e := range m.Pairs {
		entries += len(e)
	}
	return
}

// PairKeys returns the sorted language pair keys.
func (m *Memory) PairKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.Pairs))
	for k := range m.Pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Summary returns a human-readable summary string.
func (m *Memory) Summary() string {
	pairs, entries := m.Stats()
	if pairs == 0 {
		return "empty"
	}

	var parts []string
	for _, p := range m.PairKeys() {
		m.mu.Lock()
		n := len(m.Pairs[p])
		m.mu.Unlock()
		parts = append(parts, fmt.Sprintf("%s: %d", p, n))
	}
	return fmt.Sprintf("%d pairs, %d entries (%s)", pairs, entries, strings.Join(parts, ", "))
}
