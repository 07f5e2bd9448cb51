package deploy

import (
	"errors"
	"testing"
)

func TestLegacyDecoderFullTuple(t *testing.T) {
	payload := `{"params":[[
		["Moon Token","MOON","0x00","https://img/moon","{\"a\":1}","{\"id\":\"xyz\"}"],
		[],
		[],
		[],
		["40","0x2222222222222222222222222222222222222222"]
	]]}`

	call, err := NewLegacyDecoder(nil).Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if call.FunctionName != DeployTokenName {
		t.Fatalf("function name mismatch: %s", call.FunctionName)
	}

	for field, want := range map[string]string{
		"name":     "Moon Token",
		"symbol":   "MOON",
		"image":    "https://img/moon",
		"metadata": `{"a":1}`,
		"context":  `{"id":"xyz"}`,
	} {
		value, ok := call.Arg(field)
		if !ok {
			t.Fatalf("argument %s missing", field)
		}
		got, ok := value.AsString()
		if !ok || got != want {
			t.Fatalf("argument %s = %q, want %q", field, got, want)
		}
	}

	recipient, ok := call.Arg("creatorRewardRecipient")
	if !ok {
		t.Fatalf("creatorRewardRecipient missing")
	}
	addr, ok := recipient.AsAddress()
	if !ok || addr != "0x2222222222222222222222222222222222222222" {
		t.Fatalf("creatorRewardRecipient = %q", addr)
	}
}

func TestLegacyDecoderShortTupleShiftsContext(t *testing.T) {
	// Five token columns: the metadata column is gone and context sits at
	// slot 4, the shape observed on older deployments.
	payload := `{"params":[["","","","https://img/m","{\"id\":1}"]]}`

	call, err := NewLegacyDecoder(nil).Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	image, ok := call.Arg("image")
	if !ok {
		t.Fatalf("image missing")
	}
	if got, _ := image.AsString(); got != "https://img/m" {
		t.Fatalf("image = %q", got)
	}

	context, ok := call.Arg("context")
	if !ok {
		t.Fatalf("context missing")
	}
	if got, _ := context.AsString(); got != `{"id":1}` {
		t.Fatalf("context = %q", got)
	}

	if _, ok := call.Arg("metadata"); ok {
		t.Fatalf("metadata should be absent for the five-column shape")
	}
	if _, ok := call.Arg("creatorRewardRecipient"); ok {
		t.Fatalf("recipient should be absent when the rewards slot is missing")
	}
}

func TestLegacyDecoderFlatWideTuple(t *testing.T) {
	// Six columns in the flat shape: the metadata column is back at slot 4
	// and context moves to 5. No rewards sub-array exists in this shape.
	payload := `{"params":[["Wide","WIDE","0x00","https://img/w","{\"a\":2}","{\"id\":\"w-1\"}"]]}`

	call, err := NewLegacyDecoder(nil).Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	metadata, ok := call.Arg("metadata")
	if !ok {
		t.Fatalf("metadata missing")
	}
	if got, _ := metadata.AsString(); got != `{"a":2}` {
		t.Fatalf("metadata = %q", got)
	}
	context, ok := call.Arg("context")
	if !ok {
		t.Fatalf("context missing")
	}
	if got, _ := context.AsString(); got != `{"id":"w-1"}` {
		t.Fatalf("context = %q", got)
	}
	if _, ok := call.Arg("creatorRewardRecipient"); ok {
		t.Fatalf("recipient should be absent in the flat shape")
	}
}

func TestLegacyDecoderMalformedJSON(t *testing.T) {
	_, err := NewLegacyDecoder(nil).Decode([]byte(`{"params":[[`))
	if !errors.Is(err, &DecodeError{Kind: ErrMalformedJSON}) {
		t.Fatalf("expected malformed json error, got %v", err)
	}
}

func TestLegacyDecoderShapeMismatch(t *testing.T) {
	cases := []string{
		`{}`,                                  // no params
		`{"params":[]}`,                       // empty params
		`{"params":"nope"}`,                   // params is a string, not an array
		`{"params":["not a tuple"]}`,          // main tuple is a string
		`{"params":[[42]]}`,                   // token config slot is a number
		`{"params":[[["a","b","c",7,"{}"]]]}`, // image column is a number
	}
	for _, payload := range cases {
		_, err := NewLegacyDecoder(nil).Decode([]byte(payload))
		if !errors.Is(err, &DecodeError{Kind: ErrShapeMismatch}) {
			t.Fatalf("payload %s: expected shape mismatch, got %v", payload, err)
		}
	}
}

func TestLegacyDecoderForeignMethodPassesThrough(t *testing.T) {
	payload := `{"method":"transfer","params":[[["","","","",""]]]}`

	call, err := NewLegacyDecoder(nil).Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if call.FunctionName != "transfer" {
		t.Fatalf("function name = %s, want transfer", call.FunctionName)
	}
}

func TestLegacyDecoderCustomLayout(t *testing.T) {
	layouts := []LegacyLayout{
		{
			MinTokenArity:      0,
			TokenConfigIndex:   1,
			NameIndex:          0,
			SymbolIndex:        -1,
			ImageIndex:         -1,
			MetadataIndex:      -1,
			ContextIndex:       2,
			RewardsConfigIndex: 0,
			RecipientIndex:     0,
		},
	}
	payload := `{"params":[[["0xabc"],["Alt","skip","{\"id\":9}"]]]}`

	call, err := NewLegacyDecoder(layouts).Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	name, _ := call.Arg("name")
	if got, _ := name.AsString(); got != "Alt" {
		t.Fatalf("name = %q", got)
	}
	context, _ := call.Arg("context")
	if got, _ := context.AsString(); got != `{"id":9}` {
		t.Fatalf("context = %q", got)
	}
	recipient, _ := call.Arg("creatorRewardRecipient")
	if got, _ := recipient.AsAddress(); got != "0xabc" {
		t.Fatalf("recipient = %q", got)
	}
}
