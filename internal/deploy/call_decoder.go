package deploy

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"deployScope/internal/model"
)

// CallDecoder decodes binary ABI call data against a single declared
// function interface. It is purely functional over the byte buffer and safe
// for concurrent use.
type CallDecoder struct {
	iface *FunctionInterface
}

// NewCallDecoder builds a decoder bound to one function interface.
func NewCallDecoder(iface *FunctionInterface) *CallDecoder {
	return &CallDecoder{iface: iface}
}

// Decode converts ABI call data into a DecodedCall. Nested tuples become
// struct values keyed by their declared field names, not positions, so
// downstream consumers survive field reordering.
func (d *CallDecoder) Decode(data []byte) (*model.DecodedCall, error) {
	if len(data) < 4 {
		return nil, newDecodeError(ErrTruncatedData, fmt.Sprintf("call data is %d bytes, selector needs 4", len(data)), nil)
	}

	selector := data[:4]
	if !bytes.Equal(selector, d.iface.Selector()) {
		return nil, newDecodeError(ErrSelectorMismatch,
			fmt.Sprintf("got %s, want %s for %s", hexutil.Encode(selector), hexutil.Encode(d.iface.Selector()), d.iface.Name()), nil)
	}

	inputs := d.iface.Inputs()
	payload := data[4:]
	if len(payload) < 32*len(inputs) {
		return nil, newDecodeError(ErrTruncatedData,
			fmt.Sprintf("head region needs %d bytes, got %d", 32*len(inputs), len(payload)), nil)
	}

	unpacked, err := inputs.UnpackValues(payload)
	if err != nil {
		return nil, newDecodeError(classifyUnpackError(err), "unpack call data", err)
	}

	args := make(map[string]model.Value, len(inputs))
	for i, input := range inputs {
		value, err := valueFromABI(input.Type, unpacked[i])
		if err != nil {
			return nil, newDecodeError(ErrShapeMismatch, fmt.Sprintf("argument %s", input.Name), err)
		}
		args[input.Name] = value
	}

	return &model.DecodedCall{
		FunctionName: d.iface.Name(),
		Args:         args,
	}, nil
}

// classifyUnpackError sorts go-ethereum unpack failures into the decode
// taxonomy. The abi package returns untyped errors, so the only handle is the
// message: "length insufficient" means the buffer ended before the data a
// valid offset pointed at, anything else is an offset or length word that
// does not fit the buffer.
func classifyUnpackError(err error) DecodeErrorKind {
	if strings.Contains(err.Error(), "length insufficient") {
		return ErrTruncatedData
	}
	return ErrInvalidOffset
}

// valueFromABI converts one go-ethereum unpacked value into the tagged
// Value tree, recursing through tuples and arrays per the declared type.
func valueFromABI(t abi.Type, raw interface{}) (model.Value, error) {
	switch t.T {
	case abi.TupleTy:
		rv := reflect.Indirect(reflect.ValueOf(raw))
		if rv.Kind() != reflect.Struct || rv.NumField() < len(t.TupleRawNames) {
			return model.Value{}, fmt.Errorf("tuple value has unexpected shape %T", raw)
		}
		fields := make(map[string]model.Value, len(t.TupleRawNames))
		for i, name := range t.TupleRawNames {
			sub, err := valueFromABI(*t.TupleElems[i], rv.Field(i).Interface())
			if err != nil {
				return model.Value{}, fmt.Errorf("field %s: %w", name, err)
			}
			fields[name] = sub
		}
		return model.StructValue(fields), nil

	case abi.SliceTy, abi.ArrayTy:
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return model.Value{}, fmt.Errorf("array value has unexpected shape %T", raw)
		}
		items := make([]model.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := valueFromABI(*t.Elem, rv.Index(i).Interface())
			if err != nil {
				return model.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return model.ListValue(items), nil

	case abi.StringTy:
		s, ok := raw.(string)
		if !ok {
			return model.Value{}, fmt.Errorf("string value has unexpected shape %T", raw)
		}
		return model.StringValue(s), nil

	case abi.AddressTy:
		addr, ok := raw.(common.Address)
		if !ok {
			return model.Value{}, fmt.Errorf("address value has unexpected shape %T", raw)
		}
		return model.AddressValue(addr.Hex()), nil

	case abi.BoolTy:
		b, ok := raw.(bool)
		if !ok {
			return model.Value{}, fmt.Errorf("bool value has unexpected shape %T", raw)
		}
		return model.BoolValue(b), nil

	case abi.IntTy, abi.UintTy:
		n, err := toBigInt(raw)
		if err != nil {
			return model.Value{}, err
		}
		return model.IntValue(n), nil

	case abi.BytesTy:
		data, ok := raw.([]byte)
		if !ok {
			return model.Value{}, fmt.Errorf("bytes value has unexpected shape %T", raw)
		}
		return model.BytesValue(data), nil

	case abi.FixedBytesTy:
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Array {
			return model.Value{}, fmt.Errorf("fixed bytes value has unexpected shape %T", raw)
		}
		data := make([]byte, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			data[i] = byte(rv.Index(i).Uint())
		}
		return model.BytesValue(data), nil

	default:
		return model.Value{}, fmt.Errorf("unsupported abi type %s", t.String())
	}
}

func toBigInt(raw interface{}) (*big.Int, error) {
	switch typed := raw.(type) {
	case *big.Int:
		return typed, nil
	case uint8:
		return new(big.Int).SetUint64(uint64(typed)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(typed)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(typed)), nil
	case uint64:
		return new(big.Int).SetUint64(typed), nil
	case int8:
		return big.NewInt(int64(typed)), nil
	case int16:
		return big.NewInt(int64(typed)), nil
	case int32:
		return big.NewInt(int64(typed)), nil
	case int64:
		return big.NewInt(typed), nil
	default:
		return nil, fmt.Errorf("integer value has unexpected shape %T", raw)
	}
}
