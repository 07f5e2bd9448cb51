package deploy

import (
	"encoding/json"
	"fmt"
	"sort"

	"deployScope/internal/model"
)

// LegacyLayout maps the positional slots of one historical wire shape. The
// legacy convention identifies arguments by pre-agreed positions inside
// nested arrays, not by field name, and the column positions shifted between
// contract versions, so the indices are configuration rather than constants.
// A column index of -1 marks a column the version does not carry.
type LegacyLayout struct {
	// MinTokenArity selects this layout: it applies when the token config
	// array has at least this many slots. Layouts are tried largest first.
	MinTokenArity int `json:"min_token_arity" mapstructure:"min_token_arity"`

	TokenConfigIndex   int `json:"token_config_index" mapstructure:"token_config_index"`
	NameIndex          int `json:"name_index" mapstructure:"name_index"`
	SymbolIndex        int `json:"symbol_index" mapstructure:"symbol_index"`
	ImageIndex         int `json:"image_index" mapstructure:"image_index"`
	MetadataIndex      int `json:"metadata_index" mapstructure:"metadata_index"`
	ContextIndex       int `json:"context_index" mapstructure:"context_index"`
	RewardsConfigIndex int `json:"rewards_config_index" mapstructure:"rewards_config_index"`
	RecipientIndex     int `json:"recipient_index" mapstructure:"recipient_index"`
}

// DefaultLegacyLayouts returns the layouts observed on historical
// deployments: six or more token columns place metadata at 4 and context at
// 5; five columns drop the metadata column and place context at 4.
func DefaultLegacyLayouts() []LegacyLayout {
	return []LegacyLayout{
		{
			MinTokenArity:      6,
			TokenConfigIndex:   0,
			NameIndex:          0,
			SymbolIndex:        1,
			ImageIndex:         3,
			MetadataIndex:      4,
			ContextIndex:       5,
			RewardsConfigIndex: 4,
			RecipientIndex:     1,
		},
		{
			MinTokenArity:      0,
			TokenConfigIndex:   0,
			NameIndex:          0,
			SymbolIndex:        1,
			ImageIndex:         3,
			MetadataIndex:      -1,
			ContextIndex:       4,
			RewardsConfigIndex: 4,
			RecipientIndex:     1,
		},
	}
}

// LegacyDecoder extracts deployment fields from the legacy JSON wire shape.
type LegacyDecoder struct {
	layouts []LegacyLayout
}

// NewLegacyDecoder builds a decoder over the given layouts, falling back to
// the defaults when none are supplied.
func NewLegacyDecoder(layouts []LegacyLayout) *LegacyDecoder {
	if len(layouts) == 0 {
		layouts = DefaultLegacyLayouts()
	}
	sorted := make([]LegacyLayout, len(layouts))
	copy(sorted, layouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinTokenArity > sorted[j].MinTokenArity
	})
	return &LegacyDecoder{layouts: sorted}
}

type legacyPayload struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Decode parses a legacy JSON payload into a DecodedCall under flat
// synthetic argument names. A structurally wrong slot fails with a shape
// mismatch; a missing trailing value column simply yields no argument.
func (d *LegacyDecoder) Decode(data []byte) (*model.DecodedCall, error) {
	var payload legacyPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, newDecodeError(ErrMalformedJSON, "legacy payload", err)
	}
	if len(payload.Params) == 0 {
		return nil, newDecodeError(ErrShapeMismatch, "params array is empty or absent", nil)
	}
	var params []any
	if err := json.Unmarshal(payload.Params, &params); err != nil {
		return nil, newDecodeError(ErrShapeMismatch, "params is not an array", err)
	}
	if len(params) == 0 {
		return nil, newDecodeError(ErrShapeMismatch, "params array is empty or absent", nil)
	}

	mainTuple, ok := params[0].([]any)
	if !ok {
		return nil, newDecodeError(ErrShapeMismatch, fmt.Sprintf("params[0] is %T, want array", params[0]), nil)
	}

	layout, tokenConfig, flat, err := d.selectLayout(mainTuple)
	if err != nil {
		return nil, err
	}

	args := make(map[string]model.Value)
	columns := []struct {
		name  string
		index int
	}{
		{"name", layout.NameIndex},
		{"symbol", layout.SymbolIndex},
		{"image", layout.ImageIndex},
		{"metadata", layout.MetadataIndex},
		{"context", layout.ContextIndex},
	}
	for _, col := range columns {
		value, present, err := stringColumn(tokenConfig, col.index, col.name)
		if err != nil {
			return nil, err
		}
		if present {
			args[col.name] = model.StringValue(value)
		}
	}

	if !flat && layout.RewardsConfigIndex >= 0 && layout.RewardsConfigIndex < len(mainTuple) {
		rewardsConfig, ok := mainTuple[layout.RewardsConfigIndex].([]any)
		if !ok {
			return nil, newDecodeError(ErrShapeMismatch,
				fmt.Sprintf("rewards config slot %d is %T, want array", layout.RewardsConfigIndex, mainTuple[layout.RewardsConfigIndex]), nil)
		}
		recipient, present, err := stringColumn(rewardsConfig, layout.RecipientIndex, "creatorRewardRecipient")
		if err != nil {
			return nil, err
		}
		if present {
			args["creatorRewardRecipient"] = model.AddressValue(recipient)
		}
	}

	name := payload.Method
	if name == "" {
		name = DeployTokenName
	}

	return &model.DecodedCall{
		FunctionName: name,
		Args:         args,
	}, nil
}

// selectLayout resolves the token config array behind params[0]. Two wire
// variants exist: the nested shape, where one slot of the main tuple holds
// the token config array, and the flat shape, where the main tuple is the
// token config itself. A leading string marks the flat shape, since in the
// nested shape every occupied slot holds a sub-array; the flat shape carries
// no rewards sub-array, so the returned flag suppresses that lookup.
func (d *LegacyDecoder) selectLayout(mainTuple []any) (LegacyLayout, []any, bool, error) {
	if len(mainTuple) > 0 {
		if _, ok := mainTuple[0].(string); ok {
			layout, err := d.layoutForArity(len(mainTuple))
			if err != nil {
				return LegacyLayout{}, nil, false, err
			}
			return layout, mainTuple, true, nil
		}
	}

	for _, layout := range d.layouts {
		if layout.TokenConfigIndex < 0 || layout.TokenConfigIndex >= len(mainTuple) {
			continue
		}
		tokenConfig, ok := mainTuple[layout.TokenConfigIndex].([]any)
		if !ok {
			return LegacyLayout{}, nil, false, newDecodeError(ErrShapeMismatch,
				fmt.Sprintf("token config slot %d is %T, want array", layout.TokenConfigIndex, mainTuple[layout.TokenConfigIndex]), nil)
		}
		if len(tokenConfig) >= layout.MinTokenArity {
			return layout, tokenConfig, false, nil
		}
	}
	return LegacyLayout{}, nil, false, newDecodeError(ErrShapeMismatch, "no layout matches the token config slot", nil)
}

func (d *LegacyDecoder) layoutForArity(arity int) (LegacyLayout, error) {
	for _, layout := range d.layouts {
		if arity >= layout.MinTokenArity {
			return layout, nil
		}
	}
	return LegacyLayout{}, newDecodeError(ErrShapeMismatch, "no layout matches the token config arity", nil)
}

// stringColumn reads a string column. Columns the layout omits (-1) or slots
// past the end of the array are reported absent, not failed; a slot holding
// a non-string is a shape mismatch rather than a silent guess.
func stringColumn(arr []any, index int, column string) (string, bool, error) {
	if index < 0 || index >= len(arr) {
		return "", false, nil
	}
	value, ok := arr[index].(string)
	if !ok {
		return "", false, newDecodeError(ErrShapeMismatch,
			fmt.Sprintf("column %s at slot %d is %T, want string", column, index, arr[index]), nil)
	}
	return value, true, nil
}
