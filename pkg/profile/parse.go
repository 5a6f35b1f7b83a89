package profile

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ParseStringList decodes a list-valued input field. Form submissions deliver
// these in one of three shapes, tried in fixed priority order:
//
//  1. a native JSON array of strings
//  2. an index-keyed object, e.g. {"0": "Go", "1": "Rust"}
//  3. a JSON-encoded string containing an array, e.g. "[\"Go\",\"Rust\"]"
//
// JSON null decodes to an empty list. Anything else is a parse failure.
func ParseStringList(raw []byte) (items []string, err error) {
	result := gjson.ParseBytes(raw)

	switch {
	case result.IsArray():
		items = stringsFromArray(result)
		return items, err

	case result.IsObject():
		items = stringsFromIndexedObject(result)
		return items, err

	case result.Type == gjson.String:
		inner := gjson.Parse(result.String())
		if !inner.IsArray() {
			err = errors.Errorf("string value does not contain a JSON array: %q", result.String())
			return items, err
		}
		items = stringsFromArray(inner)
		return items, err

	case result.Type == gjson.Null:
		items = []string{}
		return items, err

	default:
		err = errors.Errorf("unsupported list shape: %s", result.Type)
		return items, err
	}
}

// stringsFromArray collects the scalar elements of a gjson array.
func stringsFromArray(result gjson.Result) (items []string) {
	items = []string{}
	for _, elem := range result.Array() {
		if elem.IsObject() || elem.IsArray() {
			continue
		}
		items = append(items, elem.String())
	}
	return items
}

// stringsFromIndexedObject collects the values of an index-keyed object in
// numeric key order. Non-numeric keys are ignored.
func stringsFromIndexedObject(result gjson.Result) (items []string) {
	type indexed struct {
		index int
		value string
	}

	collected := []indexed{}
	result.ForEach(func(key, value gjson.Result) bool {
		idx, convErr := strconv.Atoi(key.String())
		if convErr != nil {
			return true
		}
		if value.IsObject() || value.IsArray() {
			return true
		}
		collected = append(collected, indexed{index: idx, value: value.String()})
		return true
	})

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	items = []string{}
	for _, entry := range collected {
		items = append(items, entry.value)
	}
	return items
}

// StringList is an ordered list of strings that accepts any of the input
// shapes understood by ParseStringList. Unparseable input decodes to an
// empty list rather than failing the enclosing document: malformed external
// input must never make a mutation error out.
type StringList []string

// UnmarshalJSON decodes via ParseStringList, failing open to an empty list.
func (l *StringList) UnmarshalJSON(data []byte) (err error) {
	items, parseErr := ParseStringList(data)
	if parseErr != nil {
		*l = StringList{}
		return err
	}

	*l = StringList(items)
	return err
}
