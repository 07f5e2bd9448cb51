package deploy

import (
	"encoding/hex"
	"strings"
)

// PayloadClass is the decode path selected for a raw transaction input.
type PayloadClass int

const (
	// AlreadyJSON means the input is JSON text as-is.
	AlreadyJSON PayloadClass = iota
	// HexEncodedText means the input is hex-encoded JSON text.
	HexEncodedText
	// ABIBinary means the input is binary ABI-encoded call data.
	ABIBinary
)

func (c PayloadClass) String() string {
	switch c {
	case AlreadyJSON:
		return "json"
	case HexEncodedText:
		return "hex_text"
	case ABIBinary:
		return "abi_binary"
	default:
		return "unknown"
	}
}

// Classify inspects a raw call-data string and picks the decode path. It is
// total: any input, including empty or binary garbage, yields exactly one
// class. A hex decode failure falls back to ABIBinary, since real ABI call
// data is rarely valid UTF-8 JSON by chance.
func Classify(raw string) PayloadClass {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		return AlreadyJSON
	}

	data, err := hex.DecodeString(strings.TrimPrefix(trimmed, "0x"))
	if err != nil {
		return ABIBinary
	}

	text := strings.TrimSpace(strings.ToValidUTF8(string(data), "�"))
	if strings.HasPrefix(text, "{") {
		return HexEncodedText
	}
	return ABIBinary
}

// decodeHexBytes converts an ABI-binary payload string into raw bytes.
func decodeHexBytes(raw string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	data, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, newDecodeError(ErrMalformedHex, "call data", err)
	}
	return data, nil
}

// DecodeHexText hex-decodes a classified HexEncodedText payload into its
// JSON text, substituting the replacement rune for invalid UTF-8 sequences.
func DecodeHexText(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	data, err := hex.DecodeString(trimmed)
	if err != nil {
		return "", newDecodeError(ErrMalformedHex, "call data", err)
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(data), "�")), nil
}
