package deploy

import (
	"deployScope/internal/model"
)

// Normalize maps a decoded call, in either the named-struct shape produced
// by the ABI decoder or the flat positional shape produced by the legacy
// decoder, into the canonical DeploymentRecord. Extraction is total: every
// missing required field accumulates into one MissingFieldsError instead of
// stopping at the first, and optional fields become absent markers.
func Normalize(call *model.DecodedCall) (*model.DeploymentRecord, error) {
	if call == nil {
		return nil, &MissingFieldsError{Fields: []string{"deploymentConfig"}}
	}
	if call.FunctionName != "" && call.FunctionName != DeployTokenName {
		return nil, &UnsupportedFunctionError{Name: call.FunctionName}
	}

	if config, ok := call.Arg("deploymentConfig"); ok && config.Kind == model.KindStruct {
		return normalizeNamed(config)
	}
	return normalizeFlat(call)
}

func normalizeNamed(config model.Value) (*model.DeploymentRecord, error) {
	var missing []string

	token := model.TokenInfo{}
	var metadataText, contextText string
	var metadataPresent, contextPresent bool

	tokenConfig, ok := config.Field("tokenConfig")
	if !ok || tokenConfig.Kind != model.KindStruct {
		missing = append(missing, "tokenConfig")
	} else {
		token.Name = requireString(tokenConfig, "name", &missing)
		token.Symbol = requireString(tokenConfig, "symbol", &missing)
		if image, ok := optionalString(tokenConfig, "image"); ok {
			token.ImageURL = image
		}
		metadataText = requireString(tokenConfig, "metadata", &missing)
		metadataPresent = fieldPresent(tokenConfig, "metadata")
		contextText = requireString(tokenConfig, "context", &missing)
		contextPresent = fieldPresent(tokenConfig, "context")
		if chainID, ok := tokenConfig.Field("originatingChainId"); ok {
			if n, ok := chainID.AsInt(); ok {
				token.OriginatingChainID = n.String()
			}
		}
	}

	rewards := model.RewardsInfo{}
	rewardsConfig, ok := config.Field("rewardsConfig")
	if !ok || rewardsConfig.Kind != model.KindStruct {
		missing = append(missing, "creatorRewardRecipient")
	} else if recipient, ok := rewardsConfig.Field("creatorRewardRecipient"); ok {
		if addr, ok := recipient.AsAddress(); ok {
			rewards.CreatorRewardRecipient = addr
		} else if s, ok := recipient.AsString(); ok {
			rewards.CreatorRewardRecipient = s
		} else {
			missing = append(missing, "creatorRewardRecipient")
		}
	} else {
		missing = append(missing, "creatorRewardRecipient")
	}

	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	return assembleRecord(token, rewards, metadataText, metadataPresent, contextText, contextPresent), nil
}

func normalizeFlat(call *model.DecodedCall) (*model.DeploymentRecord, error) {
	var missing []string

	token := model.TokenInfo{}
	token.Name = requireFlatString(call, "name", &missing)
	token.Symbol = requireFlatString(call, "symbol", &missing)
	if image, ok := call.Arg("image"); ok {
		if s, ok := image.AsString(); ok {
			token.ImageURL = s
		}
	}

	metadataText := requireFlatString(call, "metadata", &missing)
	_, metadataPresent := call.Arg("metadata")
	contextText := requireFlatString(call, "context", &missing)
	_, contextPresent := call.Arg("context")

	rewards := model.RewardsInfo{}
	if recipient, ok := call.Arg("creatorRewardRecipient"); ok {
		if addr, ok := recipient.AsAddress(); ok {
			rewards.CreatorRewardRecipient = addr
		} else if s, ok := recipient.AsString(); ok {
			rewards.CreatorRewardRecipient = s
		} else {
			missing = append(missing, "creatorRewardRecipient")
		}
	} else {
		missing = append(missing, "creatorRewardRecipient")
	}

	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	return assembleRecord(token, rewards, metadataText, metadataPresent, contextText, contextPresent), nil
}

func assembleRecord(token model.TokenInfo, rewards model.RewardsInfo,
	metadataText string, metadataPresent bool, contextText string, contextPresent bool) *model.DeploymentRecord {

	if metadataPresent {
		metadata := ExtractJSON(metadataText)
		token.Metadata = &metadata
	}
	if contextPresent {
		context := ExtractJSON(contextText)
		token.Context = &context
	}

	return &model.DeploymentRecord{
		Token:     token,
		Rewards:   rewards,
		ContextID: ContextID(token.Context),
	}
}

func optionalString(parent model.Value, name string) (string, bool) {
	field, ok := parent.Field(name)
	if !ok {
		return "", false
	}
	return field.AsString()
}

func requireString(parent model.Value, name string, missing *[]string) string {
	field, ok := parent.Field(name)
	if !ok {
		*missing = append(*missing, name)
		return ""
	}
	s, ok := field.AsString()
	if !ok {
		*missing = append(*missing, name)
		return ""
	}
	return s
}

func requireFlatString(call *model.DecodedCall, name string, missing *[]string) string {
	arg, ok := call.Arg(name)
	if !ok {
		*missing = append(*missing, name)
		return ""
	}
	s, ok := arg.AsString()
	if !ok {
		*missing = append(*missing, name)
		return ""
	}
	return s
}

func fieldPresent(parent model.Value, name string) bool {
	field, ok := parent.Field(name)
	if !ok {
		return false
	}
	_, ok = field.AsString()
	return ok
}
