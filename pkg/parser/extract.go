package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNoObject means the text has no '{' at all
	ErrNoObject = errors.New("no JSON object found in response")
	// ErrUnbalanced means an object was opened but never closed
	ErrUnbalanced = errors.New("unbalanced JSON object in response")
	// ErrInvalidJSON means the extracted span still isn't valid after repair
	ErrInvalidJSON = errors.New("extracted object is not valid JSON")
)

// ExtractObject returns the first balanced {...} span in text. Braces inside
// string literals don't count, so prose or code fences around the object and
// "}" characters inside values are fine.
func ExtractObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoObject
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", ErrUnbalanced
}

// RepairJSON drops trailing commas before a closing '}' or ']'.
// Commas inside strings are left alone.
func RepairJSON(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			inString = true
		case ',':
			// look past whitespace for a closer
			j := i + 1
			for j < len(raw) && isSpace(raw[j]) {
				j++
			}
			if j < len(raw) && (raw[j] == '}' || raw[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}

	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// ParseObject runs extraction and repair and hands back the parsed object
func ParseObject(text string) (gjson.Result, error) {
	raw, err := ExtractObject(text)
	if err != nil {
		return gjson.Result{}, err
	}

	repaired := RepairJSON(raw)
	if !gjson.Valid(repaired) {
		return gjson.Result{}, fmt.Errorf("%w: %d bytes", ErrInvalidJSON, len(repaired))
	}
	return gjson.Parse(repaired), nil
}
