package deploy

import (
	"encoding/json"
	"fmt"
	"strings"

	"deployScope/internal/model"
)

// ExtractJSON parses an embedded JSON field. On success the parsed value is
// returned; on any parse failure the original text is kept under a failure
// flag so malformed metadata stays visible downstream instead of being
// swallowed.
func ExtractJSON(raw string) model.ParsedOrRaw {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		return model.ParsedOrRaw{Raw: raw, ParseFailed: true}
	}
	// Trailing garbage after a valid prefix is still a parse failure.
	if decoder.More() {
		return model.ParsedOrRaw{Raw: raw, ParseFailed: true}
	}
	return model.ParsedOrRaw{Parsed: parsed}
}

// ContextID surfaces the id member of a parsed context object. Absent
// context, failed parses, and objects without an id all yield the explicit
// "not available" marker, never an empty string.
func ContextID(context *model.ParsedOrRaw) string {
	if context == nil || context.ParseFailed {
		return model.ContextIDUnavailable
	}
	obj, ok := context.Parsed.(map[string]any)
	if !ok {
		return model.ContextIDUnavailable
	}
	id, ok := obj["id"]
	if !ok {
		return model.ContextIDUnavailable
	}

	switch typed := id.(type) {
	case string:
		if typed == "" {
			return model.ContextIDUnavailable
		}
		return typed
	case json.Number:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
