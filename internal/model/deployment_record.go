package model

import "encoding/json"

// ContextIDUnavailable marks a record whose context payload carried no id.
const ContextIDUnavailable = "N/A"

// ParsedOrRaw holds an embedded JSON field either as its parsed value or,
// when parsing failed, as the original raw text. The raw text is never
// dropped on failure so malformed upstream data stays diagnosable.
type ParsedOrRaw struct {
	Parsed      any    `json:"parsed,omitempty"`
	Raw         string `json:"raw,omitempty"`
	ParseFailed bool   `json:"parse_failed,omitempty"`
}

// TokenInfo is the canonical token section of a deployment record.
// Metadata and Context are nil when the source schema had no such column;
// OriginatingChainID is empty when the contract version predates it.
type TokenInfo struct {
	Name               string       `json:"name"`
	Symbol             string       `json:"symbol"`
	ImageURL           string       `json:"image_url,omitempty"`
	OriginatingChainID string       `json:"originating_chain_id,omitempty"`
	Metadata           *ParsedOrRaw `json:"metadata,omitempty"`
	Context            *ParsedOrRaw `json:"context,omitempty"`
}

// RewardsInfo is the canonical rewards section of a deployment record.
type RewardsInfo struct {
	CreatorRewardRecipient string `json:"creator_reward_recipient"`
}

// DeploymentRecord is the one canonical shape every upstream schema variant
// normalizes into.
type DeploymentRecord struct {
	Token         TokenInfo   `json:"token"`
	Rewards       RewardsInfo `json:"rewards"`
	SenderAddress string      `json:"sender_address,omitempty"`
	SenderLabel   string      `json:"sender_label,omitempty"`
	ContextID     string      `json:"context_id"`
}

// MarshalJSON ensures DeploymentRecord is encoded with stable field names.
func (r DeploymentRecord) MarshalJSON() ([]byte, error) {
	type Alias DeploymentRecord
	return json.Marshal(Alias(r))
}

// UnmarshalJSON decodes a DeploymentRecord from JSON.
func (r *DeploymentRecord) UnmarshalJSON(data []byte) error {
	type Alias DeploymentRecord
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = DeploymentRecord(a)
	return nil
}
