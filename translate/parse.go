package translate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNoSegment = errors.New("no translated segment in payload")

// ErrUnreadablePayload is returned by GoogleClient when a 200 response holds
// no translated text (a captcha page, an unexpected shape). The job keeps
// its text and is not remembered.
var ErrUnreadablePayload = errors.New("unreadable translation payload")

// ParseStrict extracts the translated text from a gtx payload, returning
// fallback when the payload holds no segment or cannot be read.
//
// The payload looks like [[["Xin chào","Hello",...],["...","...",...]],...].
// Only the first string of every array at nesting depth 3 is translated
// text; the scan stops when the depth-2 array closes.
func ParseStrict(payload, fallback string) string {
	out, err := parseSegments([]byte(payload))
	if err != nil {
		return fallback
	}
	return out
}

func parseSegments(payload []byte) (string, error) {
	var b strings.Builder
	depth := 0
	inString := false
	wantSegment := false
	start := 0

	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
				if depth == 3 && wantSegment {
					var seg string
					if err := json.Unmarshal(payload[start:i+1], &seg); err != nil {
						return "", fmt.Errorf("decoding segment at offset %d: %w", start, err)
					}
					b.WriteString(seg)
					wantSegment = false
				}
			}
			continue
		}

		switch c {
		case '[':
			depth++
			if depth == 3 {
				wantSegment = true
			}
		case ']':
			if depth == 2 {
				return finish(b.String())
			}
			depth--
		case '"':
			inString = true
			start = i
		}
	}
	return finish(b.String())
}

func finish(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", errNoSegment
	}
	return s, nil
}
