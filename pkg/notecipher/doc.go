// Package notecipher provides authenticated encryption for free-text
// transaction notes using AES-256-GCM under a single process-wide key.
//
// Decryption is tri-state: a stored value is an empty note, a readable note,
// or unreadable. Read paths render unreadable notes as a placeholder and
// carry on: a tampered or foreign ciphertext can never crash a listing, and
// can never be mistaken for a legitimately empty note.
//
// Ciphertext layout is nonce + encrypted data + auth tag, base64-encoded for
// storage in a text column.
package notecipher
