package terms

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Glossary file schema
// ---------------------------------------------------------------------------

// Entry is one term: its English key and the localized rendering.
type Entry struct {
	English string `yaml:"en" toml:"en"`
	Local   string `yaml:"local" toml:"local"`
	// Aliases are alternate localized spellings recognized when reading the
	// language. They are never produced as output.
	Aliases []string `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
}

// Section groups related entries (commands, titles, materials...).
type Section struct {
	Name  string  `yaml:"name" toml:"name"`
	Terms []Entry `yaml:"terms" toml:"terms"`
}

// File is a glossary for one language, as stored on disk.
//
//	lang: vi
//	sections:
//	  - name: rooms
//	    terms:
//	      - {en: Kitchen, local: Bếp}
//
// User glossaries may list entries under terms directly instead.
type File struct {
	Lang     string    `yaml:"lang" toml:"lang"`
	Sections []Section `yaml:"sections,omitempty" toml:"sections,omitempty"`
	Terms    []Entry   `yaml:"terms,omitempty" toml:"terms,omitempty"`
}

// Entries returns the file's entries in file order, sections first.
func (f File) Entries() []Entry {
	var out []Entry
	for _, s := range f.Sections {
		out = append(out, s.Terms...)
	}
	return append(out, f.Terms...)
}

func (f *File) validate(name string) error {
	if strings.TrimSpace(f.Lang) == "" {
		return fmt.Errorf("%s: missing lang", name)
	}
	f.Lang = NormalizeLang(f.Lang)
	if f.Lang == "en" || f.Lang == "auto" {
		return fmt.Errorf("%s: lang %q cannot hold a glossary", name, f.Lang)
	}
	for i, e := range f.Entries() {
		if strings.TrimSpace(e.English) == "" || strings.TrimSpace(e.Local) == "" {
			return fmt.Errorf("%s: entry #%d needs both en and local", name, i+1)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

//go:embed dict/*.yaml
var builtin embed.FS

// builtinOrder is the order built-in languages are listed and auto-detected in.
var builtinOrder = []string{"vi", "ja", "ko", "zh-CN"}

func loadBuiltin() ([]File, error) {
	files := make([]File, 0, len(builtinOrder))
	for _, lang := range builtinOrder {
		name := path.Join("dict", lang+".yaml")
		data, err := fs.ReadFile(builtin, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		f, err := parse(name, data)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// LoadFile reads a user glossary in YAML (.yaml, .yml) or TOML (.toml).
func LoadFile(filename string) (File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	return parse(filename, data)
}

func parse(name string, data []byte) (File, error) {
	var f File
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parsing %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		return File{}, fmt.Errorf("%s: unsupported glossary format (want .yaml or .toml)", name)
	}
	if err := f.validate(name); err != nil {
		return File{}, err
	}
	return f, nil
}

// LoadDefault returns the built-in glossary with the user glossaries at
// paths layered over it, in order.
func LoadDefault(paths ...string) (*Glossary, error) {
	if len(paths) == 0 {
		return Default(), nil
	}
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return Default().With(files...)
}
