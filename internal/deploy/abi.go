package deploy

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const deployTokenABIJSON = `[
  {
    "inputs": [
      {
        "components": [
          {
            "components": [
              {"internalType": "string", "name": "name", "type": "string"},
              {"internalType": "string", "name": "symbol", "type": "string"},
              {"internalType": "bytes32", "name": "salt", "type": "bytes32"},
              {"internalType": "string", "name": "image", "type": "string"},
              {"internalType": "string", "name": "metadata", "type": "string"},
              {"internalType": "string", "name": "context", "type": "string"},
              {"internalType": "uint256", "name": "originatingChainId", "type": "uint256"}
            ],
            "internalType": "struct IClanker.TokenConfig",
            "name": "tokenConfig",
            "type": "tuple"
          },
          {
            "components": [
              {"internalType": "uint8", "name": "vaultPercentage", "type": "uint8"},
              {"internalType": "uint256", "name": "vaultDuration", "type": "uint256"}
            ],
            "internalType": "struct IClanker.VaultConfig",
            "name": "vaultConfig",
            "type": "tuple"
          },
          {
            "components": [
              {"internalType": "address", "name": "pairedToken", "type": "address"},
              {"internalType": "int24", "name": "tickIfToken0IsNewToken", "type": "int24"}
            ],
            "internalType": "struct IClanker.PoolConfig",
            "name": "poolConfig",
            "type": "tuple"
          },
          {
            "components": [
              {"internalType": "uint24", "name": "pairedTokenPoolFee", "type": "uint24"},
              {"internalType": "uint256", "name": "pairedTokenSwapAmountOutMinimum", "type": "uint256"}
            ],
            "internalType": "struct IClanker.InitialBuyConfig",
            "name": "initialBuyConfig",
            "type": "tuple"
          },
          {
            "components": [
              {"internalType": "uint256", "name": "creatorReward", "type": "uint256"},
              {"internalType": "address", "name": "creatorAdmin", "type": "address"},
              {"internalType": "address", "name": "creatorRewardRecipient", "type": "address"},
              {"internalType": "address", "name": "interfaceAdmin", "type": "address"},
              {"internalType": "address", "name": "interfaceRewardRecipient", "type": "address"}
            ],
            "internalType": "struct IClanker.RewardsConfig",
            "name": "rewardsConfig",
            "type": "tuple"
          }
        ],
        "internalType": "struct IClanker.DeploymentConfig",
        "name": "deploymentConfig",
        "type": "tuple"
      }
    ],
    "name": "deployToken",
    "outputs": [{"internalType": "address", "name": "tokenAddress", "type": "address"}],
    "stateMutability": "payable",
    "type": "function"
  }
]`

// DeployTokenName is the only function this engine decodes.
const DeployTokenName = "deployToken"

// FunctionInterface describes the single supported function: its name,
// selector, and parameter type tree. Immutable after construction.
type FunctionInterface struct {
	method abi.Method
}

// NewFunctionInterface parses a contract ABI JSON and binds the named
// function.
func NewFunctionInterface(abiJSON, functionName string) (*FunctionInterface, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}
	method, ok := parsed.Methods[functionName]
	if !ok {
		return nil, fmt.Errorf("function %s not found in abi", functionName)
	}
	return &FunctionInterface{method: method}, nil
}

// Name returns the bound function name.
func (f *FunctionInterface) Name() string {
	return f.method.Name
}

// Selector returns the 4-byte function selector.
func (f *FunctionInterface) Selector() []byte {
	return f.method.ID
}

// Inputs returns the function's parameter list.
func (f *FunctionInterface) Inputs() abi.Arguments {
	return f.method.Inputs
}

var (
	deployTokenIface     *FunctionInterface
	deployTokenIfaceOnce sync.Once
	deployTokenIfaceErr  error
)

// DeployTokenInterface returns the parsed built-in deployToken interface.
func DeployTokenInterface() (*FunctionInterface, error) {
	deployTokenIfaceOnce.Do(func() {
		deployTokenIface, deployTokenIfaceErr = NewFunctionInterface(deployTokenABIJSON, DeployTokenName)
	})
	return deployTokenIface, deployTokenIfaceErr
}
