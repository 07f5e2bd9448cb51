package deploy

import (
	"encoding/hex"
	"testing"
)

func TestClassifyJSONText(t *testing.T) {
	inputs := []string{
		`{"params":[[]]}`,
		`   {"method":"deployToken"}`,
		"\n\t{}",
	}
	for _, input := range inputs {
		if got := Classify(input); got != AlreadyJSON {
			t.Fatalf("Classify(%q) = %s, want json", input, got)
		}
	}
}

func TestClassifyHexEncodedText(t *testing.T) {
	payload := hex.EncodeToString([]byte(`{"params":[["a"]]}`))

	if got := Classify("0x" + payload); got != HexEncodedText {
		t.Fatalf("prefixed hex text classified as %s", got)
	}
	if got := Classify(payload); got != HexEncodedText {
		t.Fatalf("unprefixed hex text classified as %s", got)
	}
}

func TestClassifyABIBinary(t *testing.T) {
	inputs := []string{
		"0xdeadbeef",
		"0x90f08a5e0000000000000000000000000000000000000000000000000000000000000020",
		"not hex at all",
		"0xzzzz",
		"0x123", // odd length
	}
	for _, input := range inputs {
		if got := Classify(input); got != ABIBinary {
			t.Fatalf("Classify(%q) = %s, want abi_binary", input, got)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"0x",
		string([]byte{0x00, 0xff, 0xfe}),
		"0x" + hex.EncodeToString([]byte{0x00, 0xff, 0xfe, 0x7b}),
	}
	for _, input := range inputs {
		got := Classify(input)
		if got != AlreadyJSON && got != HexEncodedText && got != ABIBinary {
			t.Fatalf("Classify(%q) yielded unknown class %d", input, got)
		}
	}
}

func TestDecodeHexText(t *testing.T) {
	text := `{"params":[[]]}`
	payload := "0x" + hex.EncodeToString([]byte(text))

	got, err := DecodeHexText(payload)
	if err != nil {
		t.Fatalf("decode hex text: %v", err)
	}
	if got != text {
		t.Fatalf("decoded text mismatch: %q != %q", got, text)
	}
}

func TestDecodeHexTextInvalidUTF8(t *testing.T) {
	payload := "0x" + hex.EncodeToString(append([]byte{0xff, 0xfe}, []byte(`{"a":1}`)...))

	got, err := DecodeHexText(payload)
	if err != nil {
		t.Fatalf("decode hex text: %v", err)
	}
	if got == "" {
		t.Fatalf("expected replacement-substituted text, got empty string")
	}
}

func TestDecodeHexTextMalformed(t *testing.T) {
	_, err := DecodeHexText("0xzz")
	if err == nil {
		t.Fatalf("expected malformed hex error")
	}
	decodeErr, ok := err.(*DecodeError)
	if !ok || decodeErr.Kind != ErrMalformedHex {
		t.Fatalf("unexpected error: %v", err)
	}
}
