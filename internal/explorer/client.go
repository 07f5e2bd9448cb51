// Package explorer talks to an Etherscan-compatible block-explorer API to
// find a contract's creation transaction and its raw input data.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Config configures the explorer client.
type Config struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Logger       *zap.Logger
}

// Client is an Etherscan-style REST client. Requests are retried with capped
// exponential backoff since public explorer endpoints rate-limit freely.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	maxRetries   int
	retryBackoff time.Duration
	logger       *zap.Logger
}

// NewClient creates an explorer client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("explorer base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		httpClient:   &http.Client{Timeout: timeout},
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       logger,
	}, nil
}

type creationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  []struct {
		ContractAddress string `json:"contractAddress"`
		ContractCreator string `json:"contractCreator"`
		TxHash          string `json:"txHash"`
	} `json:"result"`
}

// ContractCreation returns the hash of the transaction that created the
// contract.
func (c *Client) ContractCreation(ctx context.Context, contractAddress string) (string, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "getcontractcreation")
	params.Set("contractaddresses", contractAddress)

	var parsed creationResponse
	if err := c.get(ctx, params, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Result) == 0 {
		return "", fmt.Errorf("no creation transaction for %s: %s", contractAddress, parsed.Message)
	}
	if parsed.Result[0].TxHash == "" {
		return "", fmt.Errorf("creation result for %s has no tx hash", contractAddress)
	}
	return parsed.Result[0].TxHash, nil
}

type proxyTxResponse struct {
	Result *struct {
		From  string `json:"from"`
		Input string `json:"input"`
	} `json:"result"`
}

// TransactionInput returns the raw input data and sender of a transaction
// via the explorer's eth_getTransactionByHash proxy.
func (c *Client) TransactionInput(ctx context.Context, txHash string) (string, string, error) {
	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", "eth_getTransactionByHash")
	params.Set("txhash", txHash)

	var parsed proxyTxResponse
	if err := c.get(ctx, params, &parsed); err != nil {
		return "", "", err
	}
	if parsed.Result == nil {
		return "", "", fmt.Errorf("transaction %s not found", txHash)
	}
	return parsed.Result.Input, parsed.Result.From, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	endpoint := fmt.Sprintf("%s/api?%s", c.baseURL, params.Encode())

	return withRetry(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Debug("explorer request failed", zap.String("action", params.Get("action")), zap.Error(err))
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("explorer returned %d", resp.StatusCode)
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		return nil
	})
}
