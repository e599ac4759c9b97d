package sqlite

import (
	"context"

	"github.com/vaultkit/vaultkit/pkg/ledger"
)

// InsertTransaction implements ledger.Storage.
func (s *Storage) InsertTransaction(ctx context.Context, tx ledger.Transaction) error {
	const query = `
		INSERT INTO transactions (id, owner, type, amount, category, note_ciphertext, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.Owner,
		tx.Type,
		tx.Amount,
		tx.Category,
		tx.NoteCiphertext,
		tx.CreatedAt,
	)
	return err
}

// ListTransactions implements ledger.Storage, newest first.
func (s *Storage) ListTransactions(ctx context.Context, owner string, limit int) ([]ledger.Transaction, error) {
	const query = `
		SELECT id, owner, type, amount, category, note_ciphertext, created_at
		FROM transactions
		WHERE owner = ?
		ORDER BY seq DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		var tx ledger.Transaction
		if err := rows.Scan(&tx.ID, &tx.Owner, &tx.Type, &tx.Amount, &tx.Category, &tx.NoteCiphertext, &tx.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
