package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vaultkit/vaultkit/pkg/audit"
	"github.com/vaultkit/vaultkit/pkg/notecipher"
)

// DefaultListLimit caps ListTransactions when the caller passes a
// non-positive limit.
const DefaultListLimit = 50

// Service records and lists transactions. Notes are encrypted before they
// reach storage and decrypted only on the way out; every recorded
// transaction leaves an audit event. Access control is the caller's job:
// the service trusts the owner it is given.
type Service struct {
	storage Storage
	cipher  *notecipher.Cipher
	auditor *audit.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a ledger service. All collaborators are required.
func NewService(storage Storage, cipher *notecipher.Cipher, auditor *audit.Logger, opts ...Option) *Service {
	if storage == nil {
		panic("ledger: storage cannot be nil")
	}
	if cipher == nil {
		panic("ledger: cipher cannot be nil")
	}
	if auditor == nil {
		panic("ledger: audit logger cannot be nil")
	}

	s := &Service{
		storage: storage,
		cipher:  cipher,
		auditor: auditor,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddTransaction validates the input, encrypts the note, and appends the
// transaction to the owner's ledger. An empty note is stored as the no-note
// sentinel, not encrypted.
func (s *Service) AddTransaction(ctx context.Context, owner string, txType Type, amount float64, category, note string) (Transaction, error) {
	if owner == "" {
		return Transaction{}, ErrOwnerRequired
	}
	if !txType.Valid() {
		return Transaction{}, ErrInvalidType
	}
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return Transaction{}, ErrCategoryRequired
	}
	if len(category) > MaxCategoryLength {
		return Transaction{}, ErrCategoryTooLong
	}
	if len(note) > MaxNoteLength {
		return Transaction{}, ErrNoteTooLong
	}

	ciphertext, err := s.cipher.Encrypt(note)
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		ID:             uuid.New(),
		Owner:          owner,
		Type:           txType,
		Amount:         amount,
		Category:       category,
		NoteCiphertext: ciphertext,
		CreatedAt:      s.now(),
	}

	if err := s.storage.InsertTransaction(ctx, tx); err != nil {
		return Transaction{}, err
	}

	s.auditor.Log(ctx, owner, audit.ActionAddTransaction,
		fmt.Sprintf("type=%s amount=%.2f category=%s", txType, amount, category))

	return tx, nil
}

// ListTransactions returns the owner's transactions, newest first, with
// notes decrypted. A note that cannot be decrypted comes back as the
// unreadable placeholder; it never fails the listing.
func (s *Service) ListTransactions(ctx context.Context, owner string, limit int) ([]Entry, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	txs, err := s.storage.ListTransactions(ctx, owner, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(txs))
	for i, tx := range txs {
		// Decrypt yields an unreadable Note on failure; the cause is dropped
		// here because a bad note must not fail the listing.
		note, _ := s.cipher.Decrypt(tx.NoteCiphertext)
		entries[i] = Entry{Transaction: tx, Note: note}
	}

	return entries, nil
}
