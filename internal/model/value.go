package model

import (
	"fmt"
	"math/big"
)

// ValueKind discriminates the variants of a decoded argument Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindBool
	KindAddress
	KindBytes
	KindStruct
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindAddress:
		return "address"
	case KindBytes:
		return "bytes"
	case KindStruct:
		return "struct"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged union over the shapes a decoded call argument can take:
// scalars, named-field structs, and lists. Only the member matching Kind is
// meaningful.
type Value struct {
	Kind ValueKind

	Str    string
	Int    *big.Int
	Bool   bool
	Addr   string
	Bytes  []byte
	Fields map[string]Value
	Items  []Value
}

func StringValue(s string) Value     { return Value{Kind: KindString, Str: s} }
func IntValue(i *big.Int) Value      { return Value{Kind: KindInt, Int: i} }
func BoolValue(b bool) Value         { return Value{Kind: KindBool, Bool: b} }
func AddressValue(addr string) Value { return Value{Kind: KindAddress, Addr: addr} }
func BytesValue(data []byte) Value   { return Value{Kind: KindBytes, Bytes: data} }
func ListValue(items []Value) Value  { return Value{Kind: KindList, Items: items} }
func StructValue(fields map[string]Value) Value {
	return Value{Kind: KindStruct, Fields: fields}
}

// AsString returns the string payload when the value is a string.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// AsInt returns the integer payload when the value is an integer.
func (v Value) AsInt() (*big.Int, bool) {
	if v.Kind != KindInt {
		return nil, false
	}
	return v.Int, true
}

// AsAddress returns the hex address payload when the value is an address.
func (v Value) AsAddress() (string, bool) {
	if v.Kind != KindAddress {
		return "", false
	}
	return v.Addr, true
}

// Field resolves a named member of a struct value.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != KindStruct {
		return Value{}, false
	}
	field, ok := v.Fields[name]
	return field, ok
}

// DecodedCall is the transient result of decoding one transaction input.
type DecodedCall struct {
	FunctionName string
	Args         map[string]Value
}

// Arg resolves a top-level argument by name.
func (c *DecodedCall) Arg(name string) (Value, bool) {
	if c == nil || c.Args == nil {
		return Value{}, false
	}
	value, ok := c.Args[name]
	return value, ok
}
