package parser

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Text reads a field as a trimmed string. Numbers and bools come back in
// their JSON spelling, objects and arrays as empty.
func Text(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return strings.TrimSpace(r.String())
	default:
		return ""
	}
}

// TextOr is Text with a default for missing or blank values
func TextOr(r gjson.Result, def string) string {
	if s := Text(r); s != "" {
		return s
	}
	return def
}

// StringList reads a field that should be a list of strings. A lone string
// counts as a one-item list; blank items are dropped.
func StringList(r gjson.Result) []string {
	if !r.IsArray() {
		if s := Text(r); s != "" {
			return []string{s}
		}
		return nil
	}

	var out []string
	for _, item := range r.Array() {
		if s := Text(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// StringListOr is StringList with a default for an empty result
func StringListOr(r gjson.Result, def []string) []string {
	if list := StringList(r); len(list) > 0 {
		return list
	}
	return append([]string(nil), def...)
}

// Objects returns the object items of an array field, skipping anything else
func Objects(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}

	var out []gjson.Result
	for _, item := range r.Array() {
		if item.IsObject() {
			out = append(out, item)
		}
	}
	return out
}
