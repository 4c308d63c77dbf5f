package vnenc

import (
	"fmt"
	"strings"
)

// Encoding identifies how Vietnamese text is stored.
type Encoding int

const (
	// Auto asks Convert to detect the source encoding. Only valid as a source.
	Auto Encoding = iota
	Unicode
	VNI
	TCVN3
)

var encodingNames = map[Encoding]string{
	Auto:    "auto",
	Unicode: "unicode",
	VNI:     "vni",
	TCVN3:   "tcvn3",
}

// Encodings lists the selectable encodings in display order.
func Encodings() []Encoding {
	return []Encoding{Auto, Unicode, VNI, TCVN3}
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding parses an encoding name. Accepted names are auto, unicode
// (or utf8), vni and tcvn3 (or abc), in any case.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto", "":
		return Auto, nil
	case "unicode", "utf8", "utf-8":
		return Unicode, nil
	case "vni", "vni-windows":
		return VNI, nil
	case "tcvn3", "tcvn", "abc":
		return TCVN3, nil
	}
	return Auto, fmt.Errorf("unknown encoding %q (expected auto, unicode, vni or tcvn3)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (e Encoding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Encoding) UnmarshalText(text []byte) error {
	parsed, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Set implements pflag.Value.
func (e *Encoding) Set(value string) error {
	return e.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.
func (e *Encoding) Type() string {
	return "encoding"
}
