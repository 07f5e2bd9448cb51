package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client wraps go-ethereum RPC and provides transaction lookup helpers.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client

	mu      sync.Mutex
	chainID *big.Int
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// ChainID returns the chain ID, fetched once and cached.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chainID != nil {
		return c.chainID, nil
	}

	chainID, err := c.ethClient.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	c.chainID = chainID
	return chainID, nil
}

// TransactionInput returns the raw input data and the recovered sender of a
// transaction.
func (c *Client) TransactionInput(ctx context.Context, txHash string) (string, string, error) {
	data, err := hexutil.Decode(txHash)
	if err != nil || len(data) != 32 {
		return "", "", fmt.Errorf("invalid tx hash: %s", txHash)
	}

	tx, pending, err := c.ethClient.TransactionByHash(ctx, common.BytesToHash(data))
	if err != nil {
		return "", "", fmt.Errorf("fetch transaction: %w", err)
	}
	if pending {
		return "", "", fmt.Errorf("transaction %s is still pending", txHash)
	}

	chainID, err := c.ChainID(ctx)
	if err != nil {
		return "", "", fmt.Errorf("fetch chain id: %w", err)
	}

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
	if err != nil {
		return "", "", fmt.Errorf("recover sender: %w", err)
	}

	return hexutil.Encode(tx.Data()), sender.Hex(), nil
}
