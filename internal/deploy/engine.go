// Package deploy converts the raw call data of a deploy-token transaction,
// in any of its historical encodings, into one canonical deployment record.
package deploy

import (
	"go.uber.org/zap"

	"deployScope/internal/labels"
	"deployScope/internal/model"
)

// EngineConfig carries the immutable tables the engine decodes against.
type EngineConfig struct {
	Interface *FunctionInterface
	Layouts   []LegacyLayout
	Labels    *labels.Table
	Logger    *zap.Logger
}

// Engine wires the classifier, the two decoders, the normalizer, and the
// label table into one pipeline. It holds no per-request state: every decode
// is a pure function over the input and the shared read-only tables, so
// concurrent use needs no synchronization.
type Engine struct {
	callDecoder   *CallDecoder
	legacyDecoder *LegacyDecoder
	labels        *labels.Table
	logger        *zap.Logger
}

// NewEngine builds an engine. A nil interface falls back to the built-in
// deployToken interface.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	iface := cfg.Interface
	if iface == nil {
		var err error
		iface, err = DeployTokenInterface()
		if err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		callDecoder:   NewCallDecoder(iface),
		legacyDecoder: NewLegacyDecoder(cfg.Layouts),
		labels:        cfg.Labels,
		logger:        logger,
	}, nil
}

// DecodeInput runs the full pipeline on one raw call-data string: classify,
// decode along the selected path, normalize, and attach the sender label.
// Every failure is a typed error; nothing panics on untrusted input.
func (e *Engine) DecodeInput(raw string, sender string) (*model.DeploymentRecord, error) {
	call, err := e.DecodeCall(raw)
	if err != nil {
		return nil, err
	}

	record, err := Normalize(call)
	if err != nil {
		return nil, err
	}

	record.SenderAddress = sender
	if label, ok := e.labels.Lookup(sender); ok {
		record.SenderLabel = label
	}

	e.logger.Debug("input decoded",
		zap.String("function", call.FunctionName),
		zap.String("token_name", record.Token.Name),
		zap.String("token_symbol", record.Token.Symbol),
		zap.String("context_id", record.ContextID),
	)

	return record, nil
}

// DecodeCall decodes raw call data into the intermediate DecodedCall without
// normalizing it.
func (e *Engine) DecodeCall(raw string) (*model.DecodedCall, error) {
	switch Classify(raw) {
	case AlreadyJSON:
		return e.legacyDecoder.Decode([]byte(raw))
	case HexEncodedText:
		text, err := DecodeHexText(raw)
		if err != nil {
			return nil, err
		}
		return e.legacyDecoder.Decode([]byte(text))
	default:
		data, err := decodeHexBytes(raw)
		if err != nil {
			return nil, err
		}
		return e.callDecoder.Decode(data)
	}
}
