// Package textfile reads and writes fragment dump files: the text of a
// drawing exported outside the CAD host so it can be translated or converted
// in bulk. Two formats are supported:
//
// A nested YAML map with string leaves, keyed however the exporter likes
// (layout, entity handle, attribute tag):
//
//	Model:
//	  1A2F: '{\fArial|b1;FLOOR PLAN}\PScale 1:100'
//	  1A30: KITCHEN
//	Layout1:
//	  TITLE: Section A-A
//
// A plain text file with one fragment per line. MText paragraphs are
// written as \P, so a fragment never spans lines. Plain text files may use
// a legacy 8-bit charset, which matters for VNI and TCVN3 drawings.
//
// Every fragment implements translate.Holder.
package textfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadtext/cadtext/translate"
	"github.com/cadtext/cadtext/vnenc"
)

// Format is a dump file format.
type Format int

const (
	// FormatYAML is a nested YAML map.
	FormatYAML Format = iota
	// FormatLines is one fragment per line.
	FormatLines
)

func (f Format) String() string {
	if f == FormatLines {
		return "lines"
	}
	return "yaml"
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".txt", ".lst", "":
		return FormatLines, nil
	}
	return 0, fmt.Errorf("%s: unsupported file type (expected .yaml, .yml or .txt)", path)
}

// ---------------------------------------------------------------------------
// Fragment
// ---------------------------------------------------------------------------

// Fragment is one translatable string of a dump file.
type Fragment struct {
	// ID is the dot-joined key path (YAML) or the 1-based line number.
	ID string

	text    string
	changed bool
}

// Text returns the fragment text; false for blank fragments.
func (f *Fragment) Text() (string, bool) {
	if strings.TrimSpace(f.text) == "" {
		return f.text, false
	}
	return f.text, true
}

// SetText replaces the fragment text.
func (f *Fragment) SetText(s string) {
	if s != f.text {
		f.text = s
		f.changed = true
	}
}

// Changed reports whether SetText modified the fragment.
func (f *Fragment) Changed() bool { return f.changed }

// ---------------------------------------------------------------------------
// File
// ---------------------------------------------------------------------------

// File is a parsed dump file.
type File struct {
	Format Format
	// Charset of a lines file; YAML is always UTF-8.
	Charset string

	fragments []*Fragment
	yaml      *yamlDoc
	lines     *linesDoc
}

// Open reads a dump file, choosing the format from its extension. charset
// applies to plain text files only; empty means UTF-8.
func Open(path, charset string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f *File
	switch format {
	case FormatYAML:
		f, err = ParseYAML(data)
	default:
		f, err = ParseLines(data, charset)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Fragments returns the fragments in document order.
func (f *File) Fragments() []*Fragment {
	return f.fragments
}

// Holders returns the fragments as translate holders.
func (f *File) Holders() []translate.Holder {
	out := make([]translate.Holder, len(f.fragments))
	for i, fr := range f.fragments {
		out[i] = fr
	}
	return out
}

// Texts returns the non-blank fragment texts.
func (f *File) Texts() []string {
	var out []string
	for _, fr := range f.fragments {
		if s, ok := fr.Text(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the text of the fragment with the given ID.
func (f *File) Get(id string) (string, bool) {
	for _, fr := range f.fragments {
		if fr.ID == id {
			return fr.text, true
		}
	}
	return "", false
}

// Stats returns (total, non-blank, changed) fragment counts.
func (f *File) Stats() (total, nonBlank, changed int) {
	for _, fr := range f.fragments {
		total++
		if _, ok := fr.Text(); ok {
			nonBlank++
		}
		if fr.changed {
			changed++
		}
	}
	return
}

// Convert re-encodes every fragment from source to target and returns the
// number of fragments that changed. With clean set, MText font overrides
// and \U+XXXX escapes are resolved first.
func (f *File) Convert(source, target vnenc.Encoding, clean bool) int {
	n := 0
	for _, fr := range f.fragments {
		text, ok := fr.Text()
		if !ok {
			continue
		}
		if clean {
			text = vnenc.CleanMText(text)
		}
		out := vnenc.Convert(text, source, target)
		if out != fr.text {
			fr.SetText(out)
			n++
		}
	}
	return n
}

// Marshal serializes the file back to its format.
func (f *File) Marshal() ([]byte, error) {
	if f.Format == FormatYAML {
		return f.yaml.marshal(f.fragments)
	}
	return f.lines.marshal(f.fragments, f.Charset)
}

// WriteFile serializes the file and writes it to the given path.
func (f *File) WriteFile(path string) error {
	data, err := f.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
