// Package textdoc turns uploaded document bytes into clean plain text.
// The extraction core itself does no file handling; this is the boundary
// step that feeds it.
package textdoc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Result is a decoded text document.
type Result struct {
	Text     string `json:"text"`
	Encoding string `json:"encoding"`
	Size     int    `json:"size"`
}

// maxReplacementRatio is the share of replacement runes above which a
// candidate decoding is rejected as the wrong charset.
const maxReplacementRatio = 0.1

type candidate struct {
	name     string
	encoding encoding.Encoding
}

// candidates are tried in order; the first decoding that yields mostly
// valid runes and no NUL bytes wins. Latin-1 comes before UTF-16 because
// UTF-16 text read as latin-1 always surfaces NULs and falls through,
// while the reverse misread can look plausible. Decoders are created per
// call since they carry state.
var candidates = []candidate{
	{"utf-8", unicode.UTF8},
	{"latin-1", charmap.ISO8859_1},
	{"utf-16le", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
}

// Decode converts raw document bytes into cleaned text, sweeping a small
// set of encodings and picking the first that decodes cleanly. Falls back
// to UTF-8 with replacement runes when nothing fits.
func Decode(data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	for _, c := range candidates {
		decoded, err := c.encoding.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		text := string(decoded)
		// NUL bytes mean a wide encoding read through a narrow decoder.
		if strings.ContainsRune(text, 0) {
			continue
		}
		if replacementRatio(text) < maxReplacementRatio {
			return &Result{
				Text:     Clean(text),
				Encoding: c.name,
				Size:     len(data),
			}, nil
		}
	}

	return &Result{
		Text:     Clean(strings.ToValidUTF8(string(data), string(utf8.RuneError))),
		Encoding: "utf-8",
		Size:     len(data),
	}, nil
}

func replacementRatio(text string) float64 {
	if text == "" {
		return 1
	}
	count := strings.Count(text, string(utf8.RuneError))
	return float64(count) / float64(utf8.RuneCountInString(text))
}

var controlChars = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")

// Clean strips control characters and normalizes line endings. Whitespace
// shaping beyond that belongs to the preprocess package.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = controlChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
