package notecipher

// NoteKind discriminates the three decryption outcomes. A stored note is
// either absent, readable, or unreadable, and an unreadable note must never
// be confused with an empty one.
type NoteKind int

const (
	// NoteEmpty means no note was attached to the record.
	NoteEmpty NoteKind = iota
	// NotePlaintext means the note decrypted successfully.
	NotePlaintext
	// NoteUnreadable means the ciphertext was malformed, truncated, or
	// produced under a different key.
	NoteUnreadable
)

// UnreadablePlaceholder is the display text for notes that failed to decrypt.
const UnreadablePlaceholder = "[unreadable note]"

// Note is the tri-state result of decrypting a stored note.
type Note struct {
	Kind      NoteKind
	Plaintext string
}

// Display returns the user-visible rendering of the note: the plaintext, the
// empty string for an absent note, or a fixed placeholder when decryption
// failed.
func (n Note) Display() string {
	switch n.Kind {
	case NotePlaintext:
		return n.Plaintext
	case NoteUnreadable:
		return UnreadablePlaceholder
	default:
		return ""
	}
}
