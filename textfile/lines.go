package textfile

import (
	"strconv"
	"strings"

	"github.com/cadtext/cadtext/vnenc"
)

type linesDoc struct {
	crlf     bool
	trailing bool
}

// ParseLines parses a one-fragment-per-line file. charset names the byte
// encoding; empty means UTF-8.
func ParseLines(data []byte, charset string) (*File, error) {
	if charset == "" {
		charset = "utf-8"
	}
	text, err := vnenc.DecodeBytes(data, charset)
	if err != nil {
		return nil, err
	}
	text = strings.TrimPrefix(text, "\uFEFF")

	doc := &linesDoc{
		crlf:     strings.Contains(text, "\r\n"),
		trailing: strings.HasSuffix(text, "\n"),
	}
	f := &File{Format: FormatLines, Charset: charset, lines: doc}
	if text == "" {
		return f, nil
	}

	body := strings.TrimSuffix(text, "\n")
	for i, line := range strings.Split(body, "\n") {
		f.fragments = append(f.fragments, &Fragment{
			ID:   strconv.Itoa(i + 1),
			text: strings.TrimSuffix(line, "\r"),
		})
	}
	return f, nil
}

func (d *linesDoc) marshal(fragments []*Fragment, charset string) ([]byte, error) {
	sep := "\n"
	if d.crlf {
		sep = "\r\n"
	}
	var b strings.Builder
	for i, fr := range fragments {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(fr.text)
	}
	if d.trailing && len(fragments) > 0 {
		b.WriteString(sep)
	}
	return vnenc.EncodeString(b.String(), charset)
}
