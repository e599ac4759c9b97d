// Package ledger records income and expense transactions with encrypted
// free-text notes.
//
// Type, amount, and category are stored in the clear; the note is sealed by
// the note cipher before it reaches storage and opened only when the owner
// lists their transactions. A note that fails to decrypt renders as a fixed
// placeholder instead of failing the read. Every recorded transaction emits
// an add_transaction audit event.
package ledger
