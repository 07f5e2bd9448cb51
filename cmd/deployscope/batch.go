package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deployScope/internal/config"
	"deployScope/internal/deploy"
	"deployScope/internal/model"
	"deployScope/internal/storage"
	"deployScope/internal/storage/postgres"
)

func runBatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadBatch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.Errors == "" {
		return fmt.Errorf("errors path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := buildEngine(cfg.Engine, logger)
	if err != nil {
		return err
	}

	sinks := []storage.Storage{storage.NewJsonlStorage(cfg.Out)}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sinks = append(sinks, store)
	}

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	errWriter, err := newJSONLWriter(cfg.Errors, false)
	if err != nil {
		return err
	}
	defer errWriter.Close()

	logger.Info("batch decode start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	scanner := bufio.NewScanner(inputFile)
	scanBuf := make([]byte, 0, 64*1024)
	scanner.Buffer(scanBuf, 10*1024*1024)

	var total, decoded, failed int
	var rows []model.DeploymentRow
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var tx model.TxInput
		if err := json.Unmarshal(line, &tx); err != nil {
			failed++
			writeFailure(errWriter, model.DecodeFailure{Stage: "input", Error: err.Error()})
			continue
		}

		record, err := engine.DecodeInput(tx.Input, tx.From)
		if err != nil {
			failed++
			writeFailure(errWriter, model.DecodeFailure{
				TxHash:          tx.TxHash,
				ContractAddress: tx.ContractAddress,
				Stage:           failureStage(err),
				Error:           err.Error(),
			})
			continue
		}

		rows = append(rows, model.DeploymentRow{
			TxHash:          tx.TxHash,
			ContractAddress: tx.ContractAddress,
			Record:          *record,
			DecodedAt:       time.Now().UTC().Format(time.RFC3339),
		})
		decoded++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	for _, sink := range sinks {
		if err := sink.PutDeploymentBatch(rows); err != nil {
			return fmt.Errorf("store records: %w", err)
		}
	}

	logger.Info("batch decode complete",
		zap.Int("total", total),
		zap.Int("decoded", decoded),
		zap.Int("failed", failed),
	)

	return nil
}

// failureStage attributes a failure to its pipeline stage for the error log.
func failureStage(err error) string {
	var decodeErr *deploy.DecodeError
	if errors.As(err, &decodeErr) {
		return "decode"
	}
	var unsupported *deploy.UnsupportedFunctionError
	var missing *deploy.MissingFieldsError
	if errors.As(err, &unsupported) || errors.As(err, &missing) {
		return "normalize"
	}
	return "unknown"
}

type jsonlWriter struct {
	file   *os.File
	writer *bufio.Writer
}

func newJSONLWriter(path string, appendMode bool) (*jsonlWriter, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &jsonlWriter{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (w *jsonlWriter) Write(value interface{}) error {
	line, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.writer.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

func (w *jsonlWriter) Close() error {
	if w == nil {
		return nil
	}
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

func writeFailure(writer *jsonlWriter, failure model.DecodeFailure) {
	if writer == nil {
		return
	}
	_ = writer.Write(failure)
}
