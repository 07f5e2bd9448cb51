package model

// DecodeFailure records a decode failure for one transaction input line.
type DecodeFailure struct {
	TxHash          string `json:"tx_hash"`
	ContractAddress string `json:"contract_address,omitempty"`
	Stage           string `json:"stage"`
	Error           string `json:"error"`
}
