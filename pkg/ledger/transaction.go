package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vaultkit/vaultkit/pkg/notecipher"
)

// Type classifies a transaction as money in or money out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether the type is one of the two known kinds.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Input limits. Notes are bounded in plaintext, before encryption.
const (
	MaxCategoryLength = 50
	MaxNoteLength     = 1000
)

// Transaction is a ledger row as persisted: type, amount, and category are
// plaintext, the note travels as an opaque ciphertext and is only decrypted
// at read time.
type Transaction struct {
	ID             uuid.UUID `json:"id"`
	Owner          string    `json:"owner"`
	Type           Type      `json:"type"`
	Amount         float64   `json:"amount"`
	Category       string    `json:"category"`
	NoteCiphertext string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Entry is a transaction as presented to the owner, with the note decrypted.
// An undecryptable note renders as a placeholder; it never fails the read.
type Entry struct {
	Transaction
	Note notecipher.Note `json:"note"`
}

// Storage persists transactions per owner.
type Storage interface {
	// InsertTransaction appends a transaction to the owner's ledger.
	InsertTransaction(ctx context.Context, tx Transaction) error

	// ListTransactions returns the owner's transactions, newest first,
	// capped at limit.
	ListTransactions(ctx context.Context, owner string, limit int) ([]Transaction, error)
}
