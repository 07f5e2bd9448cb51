package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"deployScope/internal/config"
	"deployScope/internal/deploy"
	"deployScope/internal/labels"
	"deployScope/internal/model"
)

func main() {
	root := &cobra.Command{
		Use:          "deployscope",
		Short:        "Decode deploy-token transaction inputs into canonical deployment records",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	decodeCmd := &cobra.Command{
		Use:   "decode [raw-input]",
		Short: "Decode one raw call-data payload",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDecode,
	}

	decodeCmd.Flags().String("input", "", "raw call data (json, hex-encoded json, or abi hex)")
	decodeCmd.Flags().String("input-file", "", "file containing the raw call data")
	decodeCmd.Flags().String("sender", "", "transaction sender address")
	decodeCmd.Flags().String("abi-path", "", "contract ABI JSON path (built-in deployToken ABI when empty)")
	decodeCmd.Flags().String("function", "", "function name inside the ABI")
	decodeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(decodeCmd)

	fetchCmd := &cobra.Command{
		Use:   "fetch <contract-address>",
		Short: "Fetch a contract's creation transaction and decode its input",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("explorer-url", "", "block explorer API base URL")
	fetchCmd.Flags().String("explorer-api-key", "", "block explorer API key")
	fetchCmd.Flags().String("rpc", "", "RPC URL for direct transaction lookup (explorer proxy when empty)")
	fetchCmd.Flags().Duration("timeout", 10*time.Second, "explorer request timeout")
	fetchCmd.Flags().Int("max-retries", 3, "maximum retry attempts")
	fetchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	fetchCmd.Flags().String("abi-path", "", "contract ABI JSON path (built-in deployToken ABI when empty)")
	fetchCmd.Flags().String("function", "", "function name inside the ABI")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Decode transaction inputs from JSONL into deployment records",
		RunE:  runBatch,
	}

	batchCmd.Flags().String("in", "", "input transaction JSONL")
	batchCmd.Flags().String("out", "./data/deployments.jsonl", "output deployment records JSONL")
	batchCmd.Flags().String("errors", "./data/decode_failures.jsonl", "decode failures JSONL")
	batchCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for record upserts")
	batchCmd.Flags().String("abi-path", "", "contract ABI JSON path (built-in deployToken ABI when empty)")
	batchCmd.Flags().String("function", "", "function name inside the ABI")
	batchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(batchCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDecode(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	raw := cfg.Input
	if raw == "" && len(args) > 0 {
		raw = args[0]
	}
	if raw == "" && cfg.InputFile != "" {
		data, err := os.ReadFile(cfg.InputFile)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		raw = strings.TrimSpace(string(data))
	}
	if raw == "" {
		return fmt.Errorf("raw input is required (argument, --input, or --input-file)")
	}

	engine, err := buildEngine(cfg.Engine, logger)
	if err != nil {
		return err
	}

	record, err := engine.DecodeInput(raw, cfg.Sender)
	if err != nil {
		return err
	}

	return printRecord(record)
}

func buildEngine(settings config.EngineSettings, logger *zap.Logger) (*deploy.Engine, error) {
	var iface *deploy.FunctionInterface
	if settings.ABIPath != "" {
		data, err := os.ReadFile(settings.ABIPath)
		if err != nil {
			return nil, fmt.Errorf("read abi: %w", err)
		}
		iface, err = deploy.NewFunctionInterface(string(data), settings.Function)
		if err != nil {
			return nil, err
		}
	}

	return deploy.NewEngine(deploy.EngineConfig{
		Interface: iface,
		Layouts:   settings.Layouts,
		Labels:    labels.NewTable(settings.Labels),
		Logger:    logger,
	})
}

func printRecord(record *model.DeploymentRecord) error {
	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
