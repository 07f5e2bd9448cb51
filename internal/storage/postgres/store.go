package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"deployScope/internal/model"
)

// Store provides Postgres persistence for decoded deployment records.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertDeployments inserts or updates deployment rows keyed by tx hash.
func (s *Store) UpsertDeployments(ctx context.Context, rows []model.DeploymentRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		record, err := json.Marshal(row.Record)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", row.TxHash, err)
		}
		batch.Queue(`
			INSERT INTO deployments (
				tx_hash, contract_address, token_name, token_symbol, context_id,
				creator_reward_recipient, sender_address, sender_label, record, decoded_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
			ON CONFLICT (tx_hash)
			DO UPDATE SET
				contract_address = EXCLUDED.contract_address,
				token_name = EXCLUDED.token_name,
				token_symbol = EXCLUDED.token_symbol,
				context_id = EXCLUDED.context_id,
				creator_reward_recipient = EXCLUDED.creator_reward_recipient,
				sender_address = EXCLUDED.sender_address,
				sender_label = EXCLUDED.sender_label,
				record = EXCLUDED.record,
				decoded_at = EXCLUDED.decoded_at,
				updated_at = now()
		`,
			row.TxHash,
			row.ContractAddress,
			row.Record.Token.Name,
			row.Record.Token.Symbol,
			row.Record.ContextID,
			row.Record.Rewards.CreatorRewardRecipient,
			row.Record.SenderAddress,
			row.Record.SenderLabel,
			record,
			row.DecodedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutDeploymentBatch implements the storage.Storage sink interface.
func (s *Store) PutDeploymentBatch(rows []model.DeploymentRow) error {
	return s.UpsertDeployments(context.Background(), rows)
}
