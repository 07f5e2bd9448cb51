package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deployScope/internal/chain"
	"deployScope/internal/config"
	"deployScope/internal/explorer"
)

func runFetch(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFetch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	contractAddress := args[0]
	if !common.IsHexAddress(contractAddress) {
		return fmt.Errorf("invalid contract address: %s", contractAddress)
	}
	if cfg.ExplorerURL == "" {
		return fmt.Errorf("explorer url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	explorerClient, err := explorer.NewClient(explorer.Config{
		BaseURL:      cfg.ExplorerURL,
		APIKey:       cfg.ExplorerAPIKey,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	txHash, err := explorerClient.ContractCreation(ctx, contractAddress)
	if err != nil {
		return fmt.Errorf("find creation tx: %w", err)
	}

	logger.Info("creation transaction found",
		zap.String("contract", contractAddress),
		zap.String("tx_hash", txHash),
	)

	var input, sender string
	if cfg.RPCURL != "" {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()
		input, sender, err = chainClient.TransactionInput(ctx, txHash)
		if err != nil {
			return err
		}
	} else {
		input, sender, err = explorerClient.TransactionInput(ctx, txHash)
		if err != nil {
			return err
		}
	}
	if input == "" || input == "0x" {
		return fmt.Errorf("transaction %s has no input data", txHash)
	}

	engine, err := buildEngine(cfg.Engine, logger)
	if err != nil {
		return err
	}

	record, err := engine.DecodeInput(input, sender)
	if err != nil {
		return err
	}

	return printRecord(record)
}
