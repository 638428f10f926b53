// Package patch applies shallow JSON merges to records: each top-level key of
// the update body replaces the record's value for that key, everything else is
// kept.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var ErrInvalidPatch = errors.New("invalid patch body")

// Apply merges body into dst. Keys listed in protected are ignored so clients
// cannot rewrite identifiers or timestamps. It returns the keys that were
// applied.
func Apply(dst any, body []byte, protected ...string) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidPatch)
	}
	update := gjson.ParseBytes(body)
	if !update.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidPatch)
	}

	current, err := json.Marshal(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	var applied []string
	var setErr error
	update.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if slices.Contains(protected, k) {
			return true
		}
		current, setErr = sjson.SetRawBytes(current, escapeKey(k), []byte(value.Raw))
		if setErr != nil {
			return false
		}
		applied = append(applied, k)
		return true
	})
	if setErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, setErr)
	}

	// Decode into a zero value so nested objects are replaced, not merged.
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return nil, fmt.Errorf("patch target must be a non-nil pointer, got %T", dst)
	}
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(current, fresh.Interface()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	target.Elem().Set(fresh.Elem())
	return applied, nil
}

// escapeKey keeps sjson from reading dots and wildcards in a key as a path.
func escapeKey(k string) string {
	out := make([]rune, 0, len(k))
	for _, r := range k {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
