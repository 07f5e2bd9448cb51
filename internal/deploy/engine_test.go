package deploy

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"deployScope/internal/labels"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine(EngineConfig{
		Labels: labels.NewTable(map[string]string{
			"0x9999999999999999999999999999999999999999": "Clanker Deployer",
		}),
		Logger: zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineDecodesABICallData(t *testing.T) {
	engine := newTestEngine(t)

	data := packDeployToken(t, defaultDeployArgs())
	sender := "0x9999999999999999999999999999999999999999"

	record, err := engine.DecodeInput(hexutil.Encode(data), sender)
	if err != nil {
		t.Fatalf("decode input: %v", err)
	}

	if record.Token.Name != "DOGE" || record.Token.Symbol != "DOGE" {
		t.Fatalf("token mismatch: %+v", record.Token)
	}
	if record.Rewards.CreatorRewardRecipient != "0x2222222222222222222222222222222222222222" {
		t.Fatalf("recipient mismatch: %s", record.Rewards.CreatorRewardRecipient)
	}
	if record.ContextID != "xyz" {
		t.Fatalf("context id = %q, want xyz", record.ContextID)
	}
	if record.SenderAddress != sender {
		t.Fatalf("sender mismatch: %s", record.SenderAddress)
	}
	if record.SenderLabel != "Clanker Deployer" {
		t.Fatalf("sender label = %q", record.SenderLabel)
	}
}

func TestEngineDecodesHexEncodedLegacyText(t *testing.T) {
	engine := newTestEngine(t)

	// Hex encoding of {"params":[["","","","https://img/m","{\"id\":1}"]]},
	// an old five-column token config with no rewards slot.
	raw := "0x" + hex.EncodeToString([]byte(`{"params":[["","","","https://img/m","{\"id\":1}"]]}`))

	call, err := engine.DecodeCall(raw)
	if err != nil {
		t.Fatalf("decode call: %v", err)
	}

	image, ok := call.Arg("image")
	if !ok {
		t.Fatalf("image missing")
	}
	if got, _ := image.AsString(); got != "https://img/m" {
		t.Fatalf("image = %q", got)
	}
	if _, ok := call.Arg("metadata"); ok {
		t.Fatalf("metadata should be absent")
	}

	context, ok := call.Arg("context")
	if !ok {
		t.Fatalf("context missing")
	}
	contextText, _ := context.AsString()
	extracted := ExtractJSON(contextText)
	if extracted.ParseFailed {
		t.Fatalf("context should parse: %+v", extracted)
	}
	if got := ContextID(&extracted); got != "1" {
		t.Fatalf("context id = %q, want 1", got)
	}

	// The required columns the short shape cannot supply are reported
	// together, not one at a time.
	_, err = Normalize(call)
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected missing fields error, got %v", err)
	}
	wantMissing := map[string]bool{"metadata": true, "creatorRewardRecipient": true}
	for _, field := range missing.Fields {
		delete(wantMissing, field)
	}
	if len(wantMissing) != 0 {
		t.Fatalf("missing fields %v do not cover %v", missing.Fields, wantMissing)
	}
}

func TestEngineDecodesPlainJSONLegacyPayload(t *testing.T) {
	engine := newTestEngine(t)

	payload := `{"params":[[
		["Moon Token","MOON","0x00","https://img/moon","{\"a\":1}","{\"id\":\"m-7\"}"],
		[],
		[],
		[],
		["40","0x2222222222222222222222222222222222222222"]
	]]}`

	record, err := engine.DecodeInput(payload, "")
	if err != nil {
		t.Fatalf("decode input: %v", err)
	}
	if record.Token.Name != "Moon Token" || record.Token.Symbol != "MOON" {
		t.Fatalf("token mismatch: %+v", record.Token)
	}
	if record.ContextID != "m-7" {
		t.Fatalf("context id = %q, want m-7", record.ContextID)
	}
	if record.SenderLabel != "" {
		t.Fatalf("unexpected sender label %q", record.SenderLabel)
	}
}

func TestEngineRejectsForeignFunction(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.DecodeInput(`{"method":"transfer","params":[[["","","","",""]]]}`, "")
	var unsupported *UnsupportedFunctionError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected unsupported function error, got %v", err)
	}
	if unsupported.Name != "transfer" {
		t.Fatalf("unsupported name = %s", unsupported.Name)
	}
}

func TestEngineNeverPanicsOnGarbage(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []string{
		"",
		"0x",
		"0xdeadbeef",
		"garbage",
		`{"params":"nope"}`,
		string([]byte{0x00, 0x01, 0x02}),
	}
	for _, input := range inputs {
		record, err := engine.DecodeInput(input, "")
		if err == nil {
			t.Fatalf("input %q unexpectedly decoded: %+v", input, record)
		}
	}
}

func TestEngineRecordIsIndependentPerCall(t *testing.T) {
	engine := newTestEngine(t)
	raw := hexutil.Encode(packDeployToken(t, defaultDeployArgs()))

	first, err := engine.DecodeInput(raw, "")
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	second, err := engine.DecodeInput(raw, "")
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if first == second {
		t.Fatalf("records must not be shared across calls")
	}

	first.Token.Name = "mutated"
	if second.Token.Name == "mutated" {
		t.Fatalf("mutation leaked between records")
	}
}
