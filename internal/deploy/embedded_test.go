package deploy

import (
	"encoding/json"
	"testing"

	"deployScope/internal/model"
)

func TestExtractJSONValid(t *testing.T) {
	got := ExtractJSON(`{"a":1,"b":["x"]}`)
	if got.ParseFailed {
		t.Fatalf("valid json flagged as failed")
	}
	obj, ok := got.Parsed.(map[string]any)
	if !ok {
		t.Fatalf("parsed value has type %T", got.Parsed)
	}
	if n, ok := obj["a"].(json.Number); !ok || n.String() != "1" {
		t.Fatalf("member a = %v", obj["a"])
	}
}

func TestExtractJSONKeepsRawOnFailure(t *testing.T) {
	inputs := []string{
		"{not json",
		"",
		`{"a":1} trailing`,
	}
	for _, input := range inputs {
		got := ExtractJSON(input)
		if !got.ParseFailed {
			t.Fatalf("input %q should fail to parse", input)
		}
		if got.Raw != input {
			t.Fatalf("raw text not preserved: %q != %q", got.Raw, input)
		}
	}
}

func TestContextID(t *testing.T) {
	cases := []struct {
		name    string
		context *model.ParsedOrRaw
		want    string
	}{
		{"nil context", nil, model.ContextIDUnavailable},
		{"failed parse", &model.ParsedOrRaw{Raw: "{oops", ParseFailed: true}, model.ContextIDUnavailable},
		{"non-object", parsed(`[1,2]`), model.ContextIDUnavailable},
		{"no id member", parsed(`{"interface":"farcaster"}`), model.ContextIDUnavailable},
		{"string id", parsed(`{"id":"xyz"}`), "xyz"},
		{"numeric id", parsed(`{"id":1}`), "1"},
		{"empty string id", parsed(`{"id":""}`), model.ContextIDUnavailable},
	}

	for _, tc := range cases {
		if got := ContextID(tc.context); got != tc.want {
			t.Fatalf("%s: ContextID = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func parsed(text string) *model.ParsedOrRaw {
	value := ExtractJSON(text)
	return &value
}
