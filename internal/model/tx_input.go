package model

// TxInput is one raw transaction input line for batch decoding.
type TxInput struct {
	TxHash          string `json:"tx_hash"`
	ContractAddress string `json:"contract_address,omitempty"`
	From            string `json:"from,omitempty"`
	Input           string `json:"input"`
}

// DeploymentRow pairs a decoded record with its transaction provenance for
// storage sinks.
type DeploymentRow struct {
	TxHash          string           `json:"tx_hash"`
	ContractAddress string           `json:"contract_address,omitempty"`
	Record          DeploymentRecord `json:"record"`
	DecodedAt       string           `json:"decoded_at"`
}
